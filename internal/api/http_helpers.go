package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/moments/internal/services"
)

// apiError writes {"error": kind, "message": localized text}.
func apiError(c *fiber.Ctx, status int, kind string) error {
	body := fiber.Map{"error": kind}
	if messages, ok := c.Locals(contextMessagesKey).(map[string]string); ok {
		if message, found := messages["error."+kind]; found && strings.TrimSpace(message) != "" {
			body["message"] = message
		}
	}
	return c.Status(status).JSON(body)
}

func (handler *Handler) storeError(c *fiber.Ctx, err error) error {
	kind := services.FailureKind(err)
	status := failureStatus(kind)
	if status >= fiber.StatusInternalServerError {
		handler.logger.Error().Err(err).Str("path", c.Path()).Str("kind", kind).Msg("store operation failed")
	}
	return apiError(c, status, kind)
}

func failureStatus(kind string) int {
	switch kind {
	case services.FailureDuplicateDate, services.FailureDuplicateID:
		return fiber.StatusConflict
	case services.FailureStorageFull:
		return fiber.StatusInsufficientStorage
	case services.FailureNotFound, services.FailureNoDraft:
		return fiber.StatusNotFound
	case services.FailureInvalidInput:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func parseMomentID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
