package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/moments/internal/models"
)

const (
	shareDateLayout = "Monday, January 2, 2006"
	shareTimeLayout = "3:04 PM"
)

// PlannedMomentShareText renders the invitation a user sends for a planned
// moment. Missing names and titles fall back to neutral wording.
func PlannedMomentShareText(moment models.PlannedMoment, displayName string) string {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = "Someone"
	}
	title := strings.TrimSpace(moment.Title)
	if title == "" {
		title = "a moment"
	}

	return fmt.Sprintf(
		"%s planned %s with you on %s at %s. To create a moment with %s…",
		name,
		title,
		formatShareDate(moment.Date),
		formatShareTime(moment.Time),
		name,
	)
}

func formatShareDate(date string) string {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return date
	}
	return parsed.Format(shareDateLayout)
}

func formatShareTime(clock string) string {
	parsed, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return clock
	}
	return parsed.Format(shareTimeLayout)
}
