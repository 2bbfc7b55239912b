package api

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/moments/internal/services"
	"github.com/valyala/fasthttp"
)

const eventStreamKeepAlive = 15 * time.Second

var streamableTopics = []string{
	services.PlannedMomentsKey,
	services.PhotoMomentsKey,
	services.LocalNotificationsKey,
	services.ProfileKey,
}

// Events streams the names of changed storage keys as server-sent events.
// ?topics=a,b narrows the stream to those keys.
func (handler *Handler) Events(c *fiber.Ctx) error {
	topics := parseEventTopics(c.Query("topics"))
	if len(topics) == 0 {
		return apiError(c, fiber.StatusBadRequest, services.FailureInvalidInput)
	}

	changes := make(chan string, 16)
	unsubscribes := make([]func(), 0, len(topics))
	for _, topic := range topics {
		topic := topic
		unsubscribes = append(unsubscribes, handler.hub.Topic(topic).Subscribe(func() {
			select {
			case changes <- topic:
			default:
				// The client is behind; one pending change is enough.
			}
		}))
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	done := handler.streamsDone
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(writer *bufio.Writer) {
		defer func() {
			for _, unsubscribe := range unsubscribes {
				unsubscribe()
			}
		}()
		ticker := time.NewTicker(eventStreamKeepAlive)
		defer ticker.Stop()
		writeEventStream(writer, changes, ticker.C, done)
	}))
	return nil
}

// writeEventStream runs until done closes or the client goes away.
func writeEventStream(writer *bufio.Writer, changes <-chan string, keepAlive <-chan time.Time, done <-chan struct{}) {
	if !writeEvent(writer, "ready", "{}") {
		return
	}
	for {
		select {
		case <-done:
			return
		case topic := <-changes:
			if !writeEvent(writer, "change", topic) {
				return
			}
		case <-keepAlive:
			if _, err := writer.WriteString(": keep-alive\n\n"); err != nil {
				return
			}
			if err := writer.Flush(); err != nil {
				return
			}
		}
	}
}

func writeEvent(writer *bufio.Writer, name string, data string) bool {
	if _, err := fmt.Fprintf(writer, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return false
	}
	return writer.Flush() == nil
}

func parseEventTopics(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		result := make([]string, len(streamableTopics))
		copy(result, streamableTopics)
		return result
	}

	allowed := make(map[string]bool, len(streamableTopics))
	for _, topic := range streamableTopics {
		allowed[topic] = true
	}
	seen := make(map[string]bool)
	topics := make([]string, 0, len(streamableTopics))
	for _, part := range strings.Split(raw, ",") {
		topic := strings.TrimSpace(part)
		if !allowed[topic] || seen[topic] {
			continue
		}
		seen[topic] = true
		topics = append(topics, topic)
	}
	return topics
}
