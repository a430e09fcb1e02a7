package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayfarer/internal/models/trip_models"
	"wayfarer/pkg/utils"
)

func TestHandleQuery_HealthyProvidersProduceFullPlan(t *testing.T) {
	h := newHarness(t)
	session := NewSession()

	reply, err := h.assistant.HandleQuery(context.Background(), session, "Plan a 3 day trip to Rome")
	require.NoError(t, err)

	assert.Equal(t, trip_models.ReplyTrip, reply.Kind)
	assert.Equal(t, trip_models.IntentTripPlanning, reply.Intent)
	assert.Equal(t, trip_models.OutcomeAnswered, reply.Outcome)
	require.NotNil(t, reply.Trip)

	plan := reply.Trip
	assert.Len(t, plan.Itinerary, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{plan.Itinerary[0].DayNumber, plan.Itinerary[1].DayNumber, plan.Itinerary[2].DayNumber})
	assert.Equal(t, trip_models.OriginPrimary, plan.Hotels.Origin)
	assert.Equal(t, "Hotel Artemide", plan.Hotels.Items[0].Name)
	assert.Equal(t, trip_models.OriginPrimary, plan.Restaurants.Origin)
	assert.Equal(t, "Rome", plan.Parameters.Location())
	assert.Equal(t, "trip-1", plan.ID)

	stop := plan.Itinerary[0].Stops[0]
	assert.Equal(t, "Colosseum", stop.Name)
	assert.Equal(t, "4.8", stop.Rating)
	assert.Equal(t, "https://img.test/Colosseum", stop.ImageURL)
	assert.InDelta(t, 41.89, plan.Itinerary[0].Stops[1].Lat, 1e-9)
	assert.Equal(t, "https://img.test/Hotel_Artemide_hotel", plan.Hotels.Items[0].ImageURL)

	assert.Equal(t, 0, h.generator.countFamily("hotels"))
	assert.Equal(t, 1, h.store.count())
	require.Len(t, session.History(), 1)
	assert.Equal(t, "Plan a 3 day trip to Rome", session.History()[0].Query.Text)
}

func TestHandleQuery_FailingLodgingFallsBackToGeneratedHotels(t *testing.T) {
	h := newHarness(t)
	h.lodging.err = errProviderDown

	reply, err := h.assistant.HandleQuery(context.Background(), NewSession(), "Plan a 3 day trip to Rome")
	require.NoError(t, err)
	require.NotNil(t, reply.Trip)

	assert.Len(t, reply.Trip.Itinerary, 3)
	assert.Equal(t, trip_models.OriginGeneratedFallback, reply.Trip.Hotels.Origin)
	require.NotEmpty(t, reply.Trip.Hotels.Items)
	assert.Equal(t, "Hotel de Russie", reply.Trip.Hotels.Items[0].Name)
	assert.Contains(t, reply.Trip.Hotels.Items[0].BookingURL, "booking.com")
	assert.Equal(t, 1, h.generator.countFamily("hotels"))
}

func TestHandleQuery_PlanHotelsUsedWhenEveryLodgingSourceFails(t *testing.T) {
	h := newHarness(t)
	h.lodging.err = errProviderDown
	h.generator.fail = map[string]error{"hotels": errProviderDown}

	reply, err := h.assistant.HandleQuery(context.Background(), NewSession(), "Plan a 3 day trip to Rome")
	require.NoError(t, err)
	require.NotNil(t, reply.Trip)

	assert.Equal(t, trip_models.OriginGeneratedFallback, reply.Trip.Hotels.Origin)
	require.Len(t, reply.Trip.Hotels.Items, 1)
	assert.Equal(t, "Generated Hotel", reply.Trip.Hotels.Items[0].Name)
}

func TestHandleQuery_GreetingMakesNoProviderCalls(t *testing.T) {
	h := newHarness(t)
	session := NewSession()

	reply, err := h.assistant.HandleQuery(context.Background(), session, "hi")
	require.NoError(t, err)

	assert.Equal(t, trip_models.IntentGreeting, reply.Intent)
	assert.Equal(t, trip_models.ReplyText, reply.Kind)
	assert.Equal(t, GreetingText, reply.Text)
	assert.Zero(t, h.providerCalls())
	assert.Len(t, session.History(), 1)
}

func TestHandleQuery_MissingLocationMakesNoProviderCalls(t *testing.T) {
	h := newHarness(t)

	reply, err := h.assistant.HandleQuery(context.Background(), NewSession(), "Plan a trip")
	require.NoError(t, err)

	assert.Equal(t, trip_models.IntentTripPlanning, reply.Intent)
	assert.Equal(t, trip_models.OutcomeLocationMissing, reply.Outcome)
	assert.Contains(t, reply.Text, "Plan a 3 day trip to Paris")
	assert.Zero(t, h.providerCalls())
}

func TestHandleQuery_ProseOnlyPlanIsMalformedAndNotSaved(t *testing.T) {
	h := newHarness(t)
	h.generator.itinerary = "Rome is lovely in spring. Start at the Colosseum and wander to the Forum."

	reply, err := h.assistant.HandleQuery(context.Background(), NewSession(), "Plan a 3 day trip to Rome")
	require.NoError(t, err)

	assert.Equal(t, trip_models.OutcomePlanMalformed, reply.Outcome)
	assert.Equal(t, trip_models.ReplyText, reply.Kind)
	assert.Nil(t, reply.Trip)
	assert.Contains(t, reply.Text, "Rome")
	assert.Zero(t, h.store.count())
}

func TestHandleQuery_UnresolvedLocation(t *testing.T) {
	h := newHarness(t)
	h.geocoder.err = utils.ErrNoValidLocation

	reply, err := h.assistant.HandleQuery(context.Background(), NewSession(), "Hotels in Atlantis")
	require.NoError(t, err)

	assert.Equal(t, trip_models.IntentLodgingQuery, reply.Intent)
	assert.Equal(t, trip_models.OutcomeLocationUnresolved, reply.Outcome)
	assert.Contains(t, reply.Text, "Accommodations in Atlantis")
	assert.Zero(t, atomic.LoadInt32(&h.lodging.calls))
	assert.Zero(t, h.generator.count())
}

func TestHandleQuery_LodgingQuery(t *testing.T) {
	h := newHarness(t)

	reply, err := h.assistant.HandleQuery(context.Background(), NewSession(), "Cheap stays in Bali")
	require.NoError(t, err)

	assert.Equal(t, trip_models.ReplyLodging, reply.Kind)
	require.NotNil(t, reply.Lodging)
	assert.Equal(t, trip_models.OriginPrimary, reply.Lodging.Hotels.Origin)
	assert.Equal(t, "Stay near Termini for transport links.", reply.Lodging.Advice)
	assert.Equal(t, "Bali, Earth", reply.Lodging.Location.DisplayName)
	assert.Zero(t, atomic.LoadInt32(&h.dining.calls))
	assert.Zero(t, h.store.count())
}

func TestHandleQuery_LodgingAdviceFallsBack(t *testing.T) {
	h := newHarness(t)
	h.generator.fail = map[string]error{"hotel_advice": errProviderDown}

	reply, err := h.assistant.HandleQuery(context.Background(), NewSession(), "Hotels in Paris")
	require.NoError(t, err)
	require.NotNil(t, reply.Lodging)
	assert.Equal(t, "Here are some great hotel options in Paris!", reply.Lodging.Advice)
}

func TestHandleQuery_GeneralQuestion(t *testing.T) {
	h := newHarness(t)
	h.generator.advice = "  Visit Bali between April and October.  "

	reply, err := h.assistant.HandleQuery(context.Background(), NewSession(), "What's the best time to visit Bali?")
	require.NoError(t, err)
	assert.Equal(t, trip_models.IntentGeneralTravelQuestion, reply.Intent)
	assert.Equal(t, "Visit Bali between April and October.", reply.Text)

	h.generator.fail = map[string]error{"advice": errProviderDown}
	reply, err = h.assistant.HandleQuery(context.Background(), NewSession(), "What's the best time to visit Bali?")
	require.NoError(t, err)
	assert.Equal(t, friendlyFallbackText, reply.Text)
	assert.Equal(t, trip_models.OutcomeAnswered, reply.Outcome)
}

func TestHandleQuery_NonTravel(t *testing.T) {
	h := newHarness(t)

	reply, err := h.assistant.HandleQuery(context.Background(), NewSession(), "What is 2+2?")
	require.NoError(t, err)
	assert.Equal(t, trip_models.IntentNonTravel, reply.Intent)
	assert.Equal(t, NonTravelText, reply.Text)
	assert.Zero(t, h.providerCalls())
}

func TestHandleQuery_PanicBecomesApology(t *testing.T) {
	h := newHarness(t)
	h.generator.panicOn = "advice"
	session := NewSession()

	reply, err := h.assistant.HandleQuery(context.Background(), session, "Tell me about the local culture in Kyoto")
	require.NoError(t, err)
	assert.Equal(t, trip_models.OutcomeUnexpectedFailure, reply.Outcome)
	assert.Equal(t, ApologyText, reply.Text)

	reply, err = h.assistant.HandleQuery(context.Background(), session, "hi")
	require.NoError(t, err)
	assert.Equal(t, trip_models.IntentGreeting, reply.Intent)
	assert.Len(t, session.History(), 2)
}

func TestHandleQuery_CancelledRequestLeavesNoTrace(t *testing.T) {
	h := newHarness(t)
	h.geocoder.block = true
	session := NewSession()

	done := make(chan error, 1)
	go func() {
		_, err := h.assistant.HandleQuery(context.Background(), session, "Plan a 3 day trip to Rome")
		done <- err
	}()

	require.Eventually(t, func() bool { return atomic.LoadInt32(&h.geocoder.calls) == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, session.Cancel())

	select {
	case err := <-done:
		assert.ErrorIs(t, err, utils.ErrRequestCancelled)
	case <-time.After(2 * time.Second):
		t.Fatal("request did not stop after cancellation")
	}
	assert.Empty(t, session.History())
	assert.Zero(t, h.store.count())
}

func TestHandleQuery_SaveFailureStillReturnsPlan(t *testing.T) {
	h := newHarness(t)
	h.store.err = errors.New("connection refused")

	reply, err := h.assistant.HandleQuery(context.Background(), NewSession(), "Plan a 2 day trip to Rome")
	require.NoError(t, err)
	require.NotNil(t, reply.Trip)
	assert.Empty(t, reply.Trip.ID)
	assert.Len(t, reply.Trip.Itinerary, 2)
}

func TestHandleQuery_DurationClampedToMaximum(t *testing.T) {
	h := newHarness(t)

	reply, err := h.assistant.HandleQuery(context.Background(), NewSession(), "Plan a 30 day trip to Rome")
	require.NoError(t, err)
	require.NotNil(t, reply.Trip)
	assert.Equal(t, 10, reply.Trip.Parameters.DurationDays)
}

func TestPlanTrip_AttractionsOverlayStopsPositionally(t *testing.T) {
	h := newHarness(t)
	h.attractions.items = []trip_models.Attraction{
		{Name: "Pantheon", Address: "Piazza della Rotonda", Rating: "4.8", Lat: 41.8986, Lon: 12.4769},
		{Name: "Trevi Fountain", Rating: "4.7"},
	}
	location := "Rome"
	params := trip_models.TripParameters{LocationName: &location, DurationDays: 3}

	plan, err := h.assistant.PlanTrip(context.Background(), params, trip_models.ResolvedLocation{DisplayName: "Rome", Latitude: 41.9, Longitude: 12.5}, chatPlanLimits)
	require.NoError(t, err)

	day1 := plan.Itinerary[0].Stops
	assert.Equal(t, "Pantheon", day1[0].Name)
	assert.Equal(t, "Piazza della Rotonda", day1[0].Description)
	assert.Equal(t, "Morning", day1[0].TimeOfDay)
	assert.Equal(t, "Trevi Fountain", day1[1].Name)
	assert.Equal(t, "Afternoon", day1[1].TimeOfDay)

	assert.Equal(t, "Pantheon", plan.Itinerary[1].Stops[0].Name)
	assert.Equal(t, "Pantheon", plan.Itinerary[2].Stops[0].Name)
	assert.Equal(t, "Evening", plan.Itinerary[2].Stops[0].TimeOfDay)

	last := h.generator.prompts[len(h.generator.prompts)-1]
	assert.Contains(t, last, "Pantheon")
	assert.Contains(t, last, "Hotel Artemide")
}

func TestOverlayResult(t *testing.T) {
	fetched := trip_models.ProviderResult[string]{Items: []string{"real"}, Origin: trip_models.OriginPrimary}
	assert.Equal(t, fetched, overlayResult(fetched, []string{"generated"}))

	empty := trip_models.EmptyResult[string]()
	got := overlayResult(empty, []string{"generated"})
	assert.Equal(t, trip_models.OriginGeneratedFallback, got.Origin)
	assert.Equal(t, []string{"generated"}, got.Items)

	assert.Equal(t, trip_models.OriginEmpty, overlayResult(empty, nil).Origin)
}

func TestOverlayStops_SameIndexEveryDay(t *testing.T) {
	days := []trip_models.ItineraryDay{
		{DayNumber: 1, Stops: []trip_models.Stop{{Name: "a1"}, {Name: "a2"}, {Name: "a3"}}},
		{DayNumber: 2, Stops: []trip_models.Stop{{Name: "b1", TimeOfDay: "Morning"}}},
		{DayNumber: 3, Stops: []trip_models.Stop{{Name: "c1"}, {Name: "c2"}}},
	}
	overlayStops(days, []trip_models.Attraction{{Name: "Pantheon"}, {Name: "Trevi Fountain"}})

	names := func(d trip_models.ItineraryDay) []string {
		out := make([]string, len(d.Stops))
		for i, s := range d.Stops {
			out[i] = s.Name
		}
		return out
	}
	assert.Equal(t, []string{"Pantheon", "Trevi Fountain", "a3"}, names(days[0]))
	assert.Equal(t, []string{"Pantheon"}, names(days[1]))
	assert.Equal(t, "Morning", days[1].Stops[0].TimeOfDay)
	assert.Equal(t, []string{"Pantheon", "Trevi Fountain"}, names(days[2]))
	assert.Equal(t, "All day", days[2].Stops[1].TimeOfDay)
}

func TestGenerationOptionsPerCall(t *testing.T) {
	h := newHarness(t)
	h.lodging.err = errProviderDown

	_, err := h.assistant.HandleQuery(context.Background(), NewSession(), "Plan a 3 day trip to Rome")
	require.NoError(t, err)
	_, err = h.assistant.HandleQuery(context.Background(), NewSession(), "What's the best time to visit Bali?")
	require.NoError(t, err)

	plan := h.generator.optionsFor("itinerary")
	assert.True(t, plan.JSON)
	assert.InDelta(t, 0.4, plan.Temperature, 0.001)
	assert.Positive(t, plan.MaxTokens)

	hotels := h.generator.optionsFor("hotels")
	assert.False(t, hotels.JSON, "array fallbacks cannot use object-only JSON mode")
	assert.Positive(t, hotels.MaxTokens)

	advice := h.generator.optionsFor("advice")
	assert.False(t, advice.JSON)
	assert.Greater(t, advice.Temperature, plan.Temperature)
}
