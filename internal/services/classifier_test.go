package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"wayfarer/internal/models/trip_models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want trip_models.Intent
	}{
		{"hi", trip_models.IntentGreeting},
		{"  Hello!  ", trip_models.IntentGreeting},
		{"Good Morning", trip_models.IntentGreeting},
		{"What is 2+2?", trip_models.IntentNonTravel},
		{"tell me a joke", trip_models.IntentNonTravel},
		{"hi, can you fix my laptop", trip_models.IntentNonTravel},
		{"Plan a 3 day trip to Rome", trip_models.IntentTripPlanning},
		{"5-day Kyoto please, visiting temples", trip_models.IntentTripPlanning},
		{"Create an itinerary for Tokyo", trip_models.IntentTripPlanning},
		{"Hotels in Paris", trip_models.IntentLodgingQuery},
		{"Cheap stays in Bali", trip_models.IntentLodgingQuery},
		{"What's the best time to visit Bali?", trip_models.IntentGeneralTravelQuestion},
		{"Traditional food in Thailand", trip_models.IntentGeneralTravelQuestion},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassify_PlanningBeatsLodging(t *testing.T) {
	for _, text := range []string{
		"Plan a hotel stay in Rome",
		"make a cheap 4 day itinerary with budget hotels in Lisbon",
		"schedule a luxury resort booking",
	} {
		assert.Equal(t, trip_models.IntentTripPlanning, Classify(text), text)
	}
}

func TestClassify_NoTravelVocabularyIsAlwaysNonTravel(t *testing.T) {
	for _, text := range []string{
		"",
		"   ",
		"generate a poem",
		"write 10 unit tests",
		"how do I make pasta sauce thicker",
		"hello there friend",
	} {
		assert.Equal(t, trip_models.IntentNonTravel, Classify(text), text)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	text := "Best hotels near the beach in Nice"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(text))
	}
}
