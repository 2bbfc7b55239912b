package models

import "strings"

type Feeling string

const (
	FeelingJoyful     Feeling = "Joyful"
	FeelingGrateful   Feeling = "Grateful"
	FeelingPeaceful   Feeling = "Peaceful"
	FeelingExcited    Feeling = "Excited"
	FeelingLoved      Feeling = "Loved"
	FeelingContent    Feeling = "Content"
	FeelingHopeful    Feeling = "Hopeful"
	FeelingProud      Feeling = "Proud"
	FeelingMeaningful Feeling = "Meaningful"
	FeelingGood       Feeling = "Good"
	FeelingOkay       Feeling = "Okay"
	FeelingReflective Feeling = "Reflective"
)

const defaultFeelingEmoji = "😊"

type FeelingOption struct {
	Value Feeling `json:"value"`
	Label string  `json:"label"`
	Emoji string  `json:"emoji"`
}

var feelingOptions = []FeelingOption{
	{Value: FeelingJoyful, Label: "Joyful", Emoji: "😊"},
	{Value: FeelingGrateful, Label: "Grateful", Emoji: "🙏"},
	{Value: FeelingPeaceful, Label: "Peaceful", Emoji: "😌"},
	{Value: FeelingExcited, Label: "Excited", Emoji: "🤩"},
	{Value: FeelingLoved, Label: "Loved", Emoji: "❤️"},
	{Value: FeelingContent, Label: "Content", Emoji: "😊"},
	{Value: FeelingHopeful, Label: "Hopeful", Emoji: "🌟"},
	{Value: FeelingProud, Label: "Proud", Emoji: "💪"},
	{Value: FeelingMeaningful, Label: "Meaningful", Emoji: "✨"},
	{Value: FeelingGood, Label: "Good", Emoji: "🙂"},
	{Value: FeelingOkay, Label: "Okay", Emoji: "😐"},
	{Value: FeelingReflective, Label: "Reflective", Emoji: "🤔"},
}

// FeelingOptions returns the catalog in display order. The slice is a copy.
func FeelingOptions() []FeelingOption {
	result := make([]FeelingOption, len(feelingOptions))
	copy(result, feelingOptions)
	return result
}

func FeelingOptionFor(feeling Feeling) (FeelingOption, bool) {
	for _, option := range feelingOptions {
		if option.Value == feeling {
			return option, true
		}
	}
	return FeelingOption{}, false
}

func FeelingEmoji(feeling Feeling) string {
	if option, ok := FeelingOptionFor(feeling); ok {
		return option.Emoji
	}
	return defaultFeelingEmoji
}

// FeelingLabel falls back to the raw value for feelings outside the catalog.
func FeelingLabel(feeling Feeling) string {
	if option, ok := FeelingOptionFor(feeling); ok {
		return option.Label
	}
	return string(feeling)
}

// ParseFeeling matches raw case-insensitively against the catalog.
func ParseFeeling(raw string) (Feeling, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, option := range feelingOptions {
		if strings.EqualFold(string(option.Value), trimmed) {
			return option.Value, true
		}
	}
	return "", false
}
