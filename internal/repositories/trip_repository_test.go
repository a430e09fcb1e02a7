package repositories

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "wayfarer/internal/models/db_models"
	"wayfarer/internal/models/trip_models"
)

func TestTripRecord_KeepsOrderAndOrigins(t *testing.T) {
	location := "Rome"
	params := trip_models.TripParameters{LocationName: &location, DurationDays: 2, Budget: "Moderate", Travelers: "Couple"}
	plan := &trip_models.TripPlan{
		Location: trip_models.ResolvedLocation{DisplayName: "Rome, Italy", Latitude: 41.9, Longitude: 12.5},
		Itinerary: []trip_models.ItineraryDay{
			{DayNumber: 1, Stops: []trip_models.Stop{{Name: "Colosseum"}, {Name: "Forum"}}},
			{DayNumber: 2, Stops: []trip_models.Stop{{Name: "Vatican Museums"}}},
		},
		Hotels: trip_models.ProviderResult[trip_models.Lodging]{
			Items:  []trip_models.Lodging{{Name: "Hotel Artemide"}},
			Origin: trip_models.OriginGeneratedFallback,
		},
		Restaurants: trip_models.EmptyResult[trip_models.Dining](),
	}

	record, err := tripRecord(params, plan)
	require.NoError(t, err)

	assert.Equal(t, []string{"Colosseum", "Forum", "Vatican Museums"}, []string(record.Highlights))
	require.Len(t, record.Days, 2)
	assert.Equal(t, 1, record.Days[0].Stops[1].Position)
	assert.Equal(t, "generated_fallback", record.HotelsOrigin)
	assert.JSONEq(t, `[]`, string(record.Restaurants))

	record.ID = uuid.New()
	back, err := tripPlan(record)
	require.NoError(t, err)

	assert.Equal(t, record.ID.String(), back.ID)
	assert.Equal(t, "Rome", back.Parameters.Location())
	assert.Equal(t, plan.Itinerary[1].Stops[0].Name, back.Itinerary[1].Stops[0].Name)
	assert.Equal(t, trip_models.OriginGeneratedFallback, back.Hotels.Origin)
	assert.Equal(t, "Hotel Artemide", back.Hotels.Items[0].Name)
	assert.Equal(t, trip_models.OriginEmpty, back.Restaurants.Origin)
	assert.Empty(t, back.Restaurants.Items)
}

func TestTripPlan_OrdersByStoredPosition(t *testing.T) {
	plan := &trip_models.TripPlan{
		Itinerary: []trip_models.ItineraryDay{
			{DayNumber: 1, Stops: []trip_models.Stop{{Name: "Colosseum"}}},
			{DayNumber: 1, Stops: []trip_models.Stop{{Name: "Trastevere"}, {Name: "Janiculum"}}},
			{DayNumber: 2, Stops: []trip_models.Stop{{Name: "Vatican Museums"}}},
		},
	}
	record, err := tripRecord(trip_models.TripParameters{DurationDays: 3}, plan)
	require.NoError(t, err)

	require.Len(t, record.Days, 3)
	for i, d := range record.Days {
		assert.Equal(t, i, d.Position)
	}

	// rows come back from the database in arbitrary order
	record.Days[0], record.Days[2] = record.Days[2], record.Days[0]
	record.Days[1].Stops[0], record.Days[1].Stops[1] = record.Days[1].Stops[1], record.Days[1].Stops[0]

	back, err := tripPlan(record)
	require.NoError(t, err)
	assert.Equal(t, "Colosseum", back.Itinerary[0].Stops[0].Name)
	assert.Equal(t, "Trastevere", back.Itinerary[1].Stops[0].Name)
	assert.Equal(t, "Janiculum", back.Itinerary[1].Stops[1].Name)
	assert.Equal(t, "Vatican Museums", back.Itinerary[2].Stops[0].Name)
}

func TestTripSummary_SurfacesHighlights(t *testing.T) {
	params := trip_models.TripParameters{DurationDays: 1, Budget: "Cheap", Travelers: "Solo"}
	plan := &trip_models.TripPlan{
		Location:  trip_models.ResolvedLocation{DisplayName: "Lisbon, Portugal"},
		Itinerary: []trip_models.ItineraryDay{{DayNumber: 1, Stops: []trip_models.Stop{{Name: "Belém Tower"}, {Name: "Alfama"}}}},
	}
	record, err := tripRecord(params, plan)
	require.NoError(t, err)
	record.ID = uuid.New()

	summary := tripSummary(record)
	assert.Equal(t, record.ID.String(), summary.ID)
	assert.Equal(t, "Lisbon, Portugal", summary.Location)
	assert.Equal(t, []string{"Belém Tower", "Alfama"}, summary.Highlights)
	assert.Equal(t, "Cheap", summary.Budget)

	empty := tripSummary(&dbm.Trip{})
	assert.NotNil(t, empty.Highlights)
}
