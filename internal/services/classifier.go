package services

import (
	"regexp"
	"strings"

	"wayfarer/internal/models/trip_models"
)

var travelKeywords = []string{
	"trip", "travel", "visit", "tour", "vacation", "holiday", "destination",
	"hotel", "accommodation", "stay", "lodge", "resort", "motel", "booking", "book",
	"restaurant", "food", "eat", "dining", "cuisine", "meal",
	"place", "attraction", "landmark", "sightseeing", "tourist", "museum",
	"itinerary", "plan", "schedule", "route", "guide",
	"flight", "train", "transport", "airport", "bus",
	"best time", "weather", "climate", "season", "temperature",
	"budget", "cost", "price", "cheap", "expensive", "affordable",
	"culture", "local", "tradition", "festival", "event",
	"beach", "mountain", "city", "country", "island", "park",
}

var lodgingKeywords = []string{
	"hotel", "accommodation", "stay", "lodge", "resort", "motel", "booking", "book",
	"room", "check-in", "check-out", "amenities", "luxury", "budget", "price",
	"rate", "cost", "expensive", "cheap", "affordable", "stars", "rating",
}

var greetingTokens = map[string]struct{}{
	"hi":           {},
	"hello":        {},
	"hey":          {},
	"hii":          {},
	"helloo":       {},
	"good morning": {},
	"good evening": {},
}

var (
	planningVerbRe = regexp.MustCompile(`\b(plan|create|make|generate|itinerary|schedule)\b`)
	dayCountRe     = regexp.MustCompile(`\d+\s*-?\s*day`)
)

type intentRule struct {
	intent trip_models.Intent
	match  func(text string) bool
}

// Rules are evaluated in order and the first match wins. Planning sits before
// lodging, so "plan a hotel stay in Rome" is a trip-planning request.
var intentRules = []intentRule{
	{trip_models.IntentNonTravel, func(t string) bool { return !isGreeting(t) && !containsAny(t, travelKeywords) }},
	{trip_models.IntentGreeting, isGreeting},
	{trip_models.IntentTripPlanning, func(t string) bool { return planningVerbRe.MatchString(t) || dayCountRe.MatchString(t) }},
	{trip_models.IntentLodgingQuery, func(t string) bool { return containsAny(t, lodgingKeywords) }},
}

// Classify maps free text onto one of the closed set of intents. It is total
// and depends only on the lower-cased, trimmed text.
func Classify(text string) trip_models.Intent {
	normalized := strings.ToLower(strings.TrimSpace(text))
	for _, rule := range intentRules {
		if rule.match(normalized) {
			return rule.intent
		}
	}
	return trip_models.IntentGeneralTravelQuestion
}

func isGreeting(text string) bool {
	_, ok := greetingTokens[strings.TrimRight(text, "!.?, ")]
	return ok
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
