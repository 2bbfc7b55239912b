package services

import (
	"time"
	"unicode/utf16"
)

// DatePalette is the only palette planned-moment colors come from.
var DatePalette = [...]string{
	"oklch(0.72 0.16 25)",
	"oklch(0.78 0.14 70)",
	"oklch(0.80 0.15 130)",
	"oklch(0.74 0.12 180)",
	"oklch(0.70 0.14 250)",
	"oklch(0.66 0.16 300)",
	"oklch(0.72 0.15 350)",
}

// ColorForDate maps a calendar date key to a palette entry using a 31-based
// rolling hash over UTF-16 code units with 32-bit wraparound.
func ColorForDate(date string) string {
	return DatePalette[paletteIndex(date)]
}

func paletteIndex(date string) int {
	var hash int32
	for _, unit := range utf16.Encode([]rune(date)) {
		hash = hash*31 + int32(unit)
	}
	magnitude := int64(hash)
	if magnitude < 0 {
		magnitude = -magnitude
	}
	return int(magnitude % int64(len(DatePalette)))
}

// DateKey formats the calendar fields of value as YYYY-MM-DD without any
// time zone conversion.
func DateKey(value time.Time) string {
	return value.Format(dateLayout)
}
