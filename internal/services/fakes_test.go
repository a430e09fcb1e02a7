package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
	"wayfarer/internal/models/trip_models"
	"wayfarer/pkg/utils"
)

type fakeGeocoder struct {
	calls int32
	block bool
	err   error
}

func (f *fakeGeocoder) Geocode(ctx context.Context, query string) (trip_models.ResolvedLocation, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.block {
		<-ctx.Done()
		return trip_models.ResolvedLocation{}, ctx.Err()
	}
	if f.err != nil {
		return trip_models.ResolvedLocation{}, f.err
	}
	return trip_models.ResolvedLocation{DisplayName: query + ", Earth", Latitude: 41.9, Longitude: 12.5}, nil
}

type fakeLodging struct {
	calls     int32
	lastLimit int32
	err       error
}

func (f *fakeLodging) NearbyLodging(_ context.Context, _, _ float64, limit int) ([]trip_models.Lodging, error) {
	atomic.AddInt32(&f.calls, 1)
	atomic.StoreInt32(&f.lastLimit, int32(limit))
	if f.err != nil {
		return nil, f.err
	}
	hotels := []trip_models.Lodging{
		{Name: "Hotel Artemide", Address: "Via Nazionale 22"},
		{Name: "Hotel Raphael", Address: "Largo Febo 2"},
	}
	if limit > 0 && len(hotels) > limit {
		hotels = hotels[:limit]
	}
	return hotels, nil
}

type fakeDining struct {
	calls     int32
	lastLimit int32
	err       error
}

func (f *fakeDining) NearbyDining(_ context.Context, _, _ float64, limit int) ([]trip_models.Dining, error) {
	atomic.AddInt32(&f.calls, 1)
	atomic.StoreInt32(&f.lastLimit, int32(limit))
	if f.err != nil {
		return nil, f.err
	}
	return []trip_models.Dining{{Name: "Roscioli", PriceTier: "$$$"}}, nil
}

type fakeAttractions struct {
	calls int32
	items []trip_models.Attraction
	err   error
}

func (f *fakeAttractions) NearbyAttractions(context.Context, float64, float64, int) ([]trip_models.Attraction, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

const itineraryJSON = `{
  "itinerary": [
    {"day": 1, "plan": [
      {"placeName": "Colosseum", "placeDetails": "Amphitheatre", "ticketPricing": "€18", "rating": 4.8, "time": "Morning", "lat": 41.89, "lon": 12.49, "placeImageUrl": null},
      {"placeName": "Roman Forum", "placeDetails": "Ruins", "ticketPricing": "Included", "rating": "4.7", "time": "Afternoon", "lat": "41.89", "lon": "12.48"}
    ]},
    {"day": "2", "plan": [
      {"placeName": "Vatican Museums", "placeDetails": "Art", "ticketPricing": "€20", "rating": "4.7", "time": "Morning", "lat": 41.9, "lon": 12.45}
    ]},
    {"day": 3, "plan": [
      {"placeName": "Trastevere", "placeDetails": "Neighbourhood", "ticketPricing": "Free", "rating": "4.6", "time": "Evening", "lat": 41.88, "lon": 12.47}
    ]}
  ],
  "hotelOptions": [
    {"hotelName": "Generated Hotel", "hotelAddress": "Somewhere 1", "price": "$150", "rating": 4.2, "description": "Nice"}
  ],
  "restaurantOptions": [
    {"restaurantName": "Generated Trattoria", "restaurantAddress": "Somewhere 2", "price": "$$", "rating": "4.4", "description": "Pasta"}
  ]
}`

const hotelsArrayJSON = `Here you go:
[
  {"hotelName": "Hotel de Russie", "hotelAddress": "Via del Babuino 9", "price": "$$$$", "rating": "4.8", "description": "Luxury"},
  {"hotelName": "Generator Rome", "hotelAddress": "Via Principe Amedeo 257", "price": "$", "rating": 4.1, "description": "Hostel"}
]`

const restaurantsArrayJSON = "```json\n[{\"restaurantName\": \"Da Enzo\", \"restaurantAddress\": \"Via dei Vascellari 29\", \"price\": \"$$\", \"rating\": \"4.6\", \"description\": \"Roman classics\"}]\n```"

// fakeGenerator answers by prompt family.
type fakeGenerator struct {
	mu        sync.Mutex
	prompts   []string
	itinerary string
	advice    string
	fail      map[string]error
	panicOn   string
	options   map[string]utils.GenerateOptions
}

func newFakeGenerator() *fakeGenerator {
	return &fakeGenerator{itinerary: itineraryJSON, advice: "Stay near Termini for transport links."}
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, opts utils.GenerateOptions) (string, error) {
	family := promptFamily(prompt)

	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	if f.options == nil {
		f.options = make(map[string]utils.GenerateOptions)
	}
	f.options[family] = opts
	f.mu.Unlock()

	if f.panicOn != "" && f.panicOn == family {
		panic("generator exploded")
	}
	if err, ok := f.fail[family]; ok {
		return "", err
	}
	switch family {
	case "itinerary":
		return f.itinerary, nil
	case "hotels":
		return hotelsArrayJSON, nil
	case "restaurants":
		return restaurantsArrayJSON, nil
	case "attractions":
		return `[{"placeName": "Pantheon", "placeDetails": "Temple", "rating": "4.8"}]`, nil
	case "guides":
		return `{"guides": [{"guideName": "Giulia", "guideDescription": "Art historian", "guideContact": "giulia@example.org", "guideRating": 4.9, "guidePrice": "$60/hour"}]}`, nil
	default:
		return f.advice, nil
	}
}

func promptFamily(prompt string) string {
	switch {
	case strings.Contains(prompt, "-day itinerary"):
		return "itinerary"
	case strings.Contains(prompt, "hotel recommendations"):
		return "hotels"
	case strings.Contains(prompt, "restaurant recommendations"):
		return "restaurants"
	case strings.Contains(prompt, "tourist attractions"):
		return "attractions"
	case strings.Contains(prompt, "guide recommendations"):
		return "guides"
	case strings.Contains(prompt, "hotel booking expert"):
		return "hotel_advice"
	default:
		return "advice"
	}
}

func (f *fakeGenerator) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *fakeGenerator) optionsFor(family string) utils.GenerateOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.options[family]
}

func (f *fakeGenerator) countFamily(family string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.prompts {
		if promptFamily(p) == family {
			n++
		}
	}
	return n
}

type fakeTripStore struct {
	mu        sync.Mutex
	saved     []*trip_models.TripPlan
	err       error
	lastLimit int
}

func (f *fakeTripStore) Save(_ context.Context, _ trip_models.TripParameters, plan *trip_models.TripPlan) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, plan)
	return "trip-1", nil
}

func (f *fakeTripStore) Get(_ context.Context, id string) (*trip_models.TripPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.saved {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, utils.ErrTripNotFound
}

func (f *fakeTripStore) List(_ context.Context, limit int) ([]trip_models.TripSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	out := []trip_models.TripSummary{}
	for i := len(f.saved) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, trip_models.TripSummary{ID: f.saved[i].ID, Location: f.saved[i].Location.DisplayName})
	}
	return out, nil
}

func (f *fakeTripStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

type harness struct {
	geocoder    *fakeGeocoder
	lodging     *fakeLodging
	dining      *fakeDining
	attractions *fakeAttractions
	generator   *fakeGenerator
	images      *fakeImages
	store       *fakeTripStore
	sources     *Sources
	enricher    *ImageEnricher
	assistant   AssistantServiceInterface
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := zaptest.NewLogger(t)
	h := &harness{
		geocoder:    &fakeGeocoder{},
		lodging:     &fakeLodging{},
		dining:      &fakeDining{},
		attractions: &fakeAttractions{},
		generator:   newFakeGenerator(),
		images:      &fakeImages{},
		store:       &fakeTripStore{},
	}
	h.sources = &Sources{
		Geocoder:          h.geocoder,
		Lodging:           h.lodging,
		Dining:            h.dining,
		Attractions:       h.attractions,
		Generator:         h.generator,
		GenerationTimeout: 5 * time.Second,
		Logger:            logger,
	}
	h.enricher = NewImageEnricher(h.images, "", 4, logger)
	h.assistant = NewAssistantService(h.sources, h.enricher, h.store, logger, 10)
	return h
}

func (h *harness) providerCalls() int32 {
	return atomic.LoadInt32(&h.geocoder.calls) +
		atomic.LoadInt32(&h.lodging.calls) +
		atomic.LoadInt32(&h.dining.calls) +
		atomic.LoadInt32(&h.attractions.calls) +
		int32(h.generator.count()) +
		int32(h.images.calls())
}

var errProviderDown = errors.New("provider down")
