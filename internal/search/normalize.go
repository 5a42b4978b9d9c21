// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Shared normalization helpers for the unified course schema. Each platform
// reports durations, levels and ratings in its own units; these helpers
// bring them to the documented shapes without inventing values.

// humanizeEnum lowercases an upstream enum value and replaces underscores
// with spaces ("ALL_LEVELS" → "all levels", "BEGINNER" → "beginner").
func humanizeEnum(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", " ")
}

// roundRating rounds an average rating to one decimal place.
func roundRating(r float64) float64 {
	return math.Round(r*10) / 10
}

// formatSeconds renders a duration in seconds as "XhYm".
func formatSeconds(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// isoDurationPattern matches the ISO-8601 subset the YouTube Data API emits.
var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// formatISODuration converts an ISO-8601 duration ("PT1H23M45S") to a
// readable form: "1h 23m", "23m", or "45s". Returns "" for values it cannot
// parse, so unknown upstream formats stay absent rather than wrong.
func formatISODuration(iso string) string {
	m := isoDurationPattern.FindStringSubmatch(iso)
	if m == nil {
		return ""
	}

	hours, _ := strconv.Atoi(zeroIfEmpty(m[1]))
	minutes, _ := strconv.Atoi(zeroIfEmpty(m[2]))
	seconds, _ := strconv.Atoi(zeroIfEmpty(m[3]))

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	case seconds > 0:
		return fmt.Sprintf("%ds", seconds)
	default:
		return ""
	}
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// ratingPtr and countPtr convert upstream rating values to the schema's
// pointer fields, keeping "absent" distinct from zero.
func ratingPtr(r float64) *float64 {
	rounded := roundRating(r)
	return &rounded
}

func countPtr(n int) *int {
	return &n
}
