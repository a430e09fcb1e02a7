package trip_models

import (
	"net/url"
	"strings"
	"time"
)

type Query struct {
	Text       string    `json:"text"`
	ReceivedAt time.Time `json:"received_at"`
}

func NewQuery(text string) Query {
	return Query{Text: text, ReceivedAt: time.Now()}
}

// TripParameters is derived from query text or from the create-trip form.
// A nil LocationName means no destination could be found in the text.
type TripParameters struct {
	LocationName *string `json:"location_name,omitempty"`
	DurationDays int     `json:"duration_days"`
	Budget       string  `json:"budget,omitempty"`
	Travelers    string  `json:"travelers,omitempty"`
	Query        string  `json:"query,omitempty"`
}

const DefaultDurationDays = 3

func (p TripParameters) Location() string {
	if p.LocationName == nil {
		return ""
	}
	return *p.LocationName
}

type ResolvedLocation struct {
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Valid reports whether the coordinates are inside the WGS84 range.
func (l ResolvedLocation) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

type Stop struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rating      string  `json:"rating"`
	PriceInfo   string  `json:"price_info"`
	TimeOfDay   string  `json:"time_of_day"`
	ImageURL    string  `json:"image_url"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

type ItineraryDay struct {
	DayNumber int    `json:"day_number"`
	Stops     []Stop `json:"stops"`
}

type Lodging struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Price       string  `json:"price"`
	Rating      string  `json:"rating"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	BookingURL  string  `json:"booking_url,omitempty"`
	HotelID     string  `json:"hotel_id,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

type Dining struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	PriceTier   string  `json:"price_tier"`
	Rating      string  `json:"rating"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// Attraction is a fetched point of interest used to overlay generated stops.
type Attraction struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Rating      string  `json:"rating"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

func (a Attraction) AsStop() Stop {
	description := a.Description
	if description == "" {
		description = a.Address
	}
	return Stop{
		Name:        a.Name,
		Description: description,
		Rating:      a.Rating,
		PriceInfo:   "Varies",
		TimeOfDay:   "All day",
		ImageURL:    a.ImageURL,
		Lat:         a.Lat,
		Lon:         a.Lon,
	}
}

type Guide struct {
	Name        string     `json:"guideName"`
	Description string     `json:"guideDescription"`
	Contact     string     `json:"guideContact"`
	Rating      FlexString `json:"guideRating"`
	Price       string     `json:"guidePrice"`
	ImageURL    string     `json:"guideImageUrl"`
}

type TripPlan struct {
	ID          string                  `json:"id,omitempty"`
	Location    ResolvedLocation        `json:"location"`
	Parameters  TripParameters          `json:"parameters"`
	Itinerary   []ItineraryDay          `json:"itinerary"`
	Hotels      ProviderResult[Lodging] `json:"hotels"`
	Restaurants ProviderResult[Dining]  `json:"restaurants"`
}

// TripSummary is a saved trip without its days, for listings.
type TripSummary struct {
	ID           string    `json:"id"`
	Location     string    `json:"location"`
	DurationDays int       `json:"duration_days"`
	Budget       string    `json:"budget,omitempty"`
	Travelers    string    `json:"travelers,omitempty"`
	Highlights   []string  `json:"highlights"`
	CreatedAt    time.Time `json:"created_at"`
}

func BookingSearchURL(name, address string) string {
	return "https://www.booking.com/search.html?ss=" + url.QueryEscape(strings.TrimSpace(name+" "+address))
}
