package services

import (
	"regexp"
	"strconv"
	"strings"

	"wayfarer/internal/models/trip_models"
)

const placeCapture = `(?P<place>[\p{L}][\p{L}\s'-]*?)`

const placeEnd = `(?:\s+for\b|\s+during\b|\s+\d|$)`

// Location templates, tried in order. The first non-empty capture wins.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:to|in|visit|at)\s+` + placeCapture + placeEnd),
	regexp.MustCompile(`(?i)\d+\s*-?\s*days?\s+(?:in|to|at)\s+` + placeCapture + placeEnd),
	regexp.MustCompile(`(?i)\bplan\b.*?\b(?:to|in)\s+` + placeCapture + placeEnd),
	regexp.MustCompile(`(?i)\btrip\s+(?:to|in)\s+` + placeCapture + placeEnd),
	regexp.MustCompile(`(?i)\b(?:places|hotels|restaurants)\s+(?:in|at)\s+` + placeCapture + placeEnd),
	regexp.MustCompile(`(?i)\b(?:near|close to|around)\s+` + placeCapture + placeEnd),
	regexp.MustCompile(`(?i)\b(?:itinerary|trip|vacation|holiday)\s+for\s+` + placeCapture + placeEnd),
}

var durationRe = regexp.MustCompile(`(?i)(\d+)\s*-?\s*days?\b`)

var (
	leadingWords       = []string{"visit ", "see ", "explore ", "in ", "to ", "at "}
	trailingConnectors = []string{" for", " during", " in", " at", " to"}
)

// ExtractLocation returns the destination named in text, if any.
func ExtractLocation(text string) (string, bool) {
	cleaned := strings.TrimRight(strings.TrimSpace(text), "?!.,;: ")
	for _, re := range locationPatterns {
		m := re.FindStringSubmatch(cleaned)
		if m == nil {
			continue
		}
		if place := tidyPlace(m[re.SubexpIndex("place")]); place != "" {
			return place, true
		}
	}
	return "", false
}

func tidyPlace(s string) string {
	s = strings.TrimSpace(s)
	for trimmed := true; trimmed; {
		trimmed = false
		for _, w := range leadingWords {
			if len(s) > len(w) && strings.EqualFold(s[:len(w)], w) {
				s = strings.TrimSpace(s[len(w):])
				trimmed = true
			}
		}
	}
	for trimmed := true; trimmed; {
		trimmed = false
		s = strings.TrimRight(s, "0123456789 -'")
		for _, c := range trailingConnectors {
			if len(s) >= len(c) && strings.EqualFold(s[len(s)-len(c):], c) {
				s = s[:len(s)-len(c)]
				trimmed = true
			}
		}
	}
	return strings.TrimSpace(s)
}

// ExtractDuration returns the first "<n> day(s)" count in text, or the default.
// Bounds are checked by callers.
func ExtractDuration(text string) int {
	m := durationRe.FindStringSubmatch(text)
	if m == nil {
		return trip_models.DefaultDurationDays
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return trip_models.DefaultDurationDays
	}
	return n
}

func ExtractParameters(text string) trip_models.TripParameters {
	params := trip_models.TripParameters{
		DurationDays: ExtractDuration(text),
		Query:        text,
	}
	if loc, ok := ExtractLocation(text); ok {
		params.LocationName = &loc
	}
	return params
}
