package services

import (
	"strings"

	"wayfarer/internal/models/trip_models"
)

// Wire shapes of generated content. Ratings and prices arrive as strings or
// numbers, so they decode through the flex types.

type generatedStop struct {
	PlaceName     string                 `json:"placeName"`
	PlaceDetails  string                 `json:"placeDetails"`
	TicketPricing trip_models.FlexString `json:"ticketPricing"`
	Rating        trip_models.FlexString `json:"rating"`
	Time          string                 `json:"time"`
	PlaceImageURL *string                `json:"placeImageUrl"`
	Lat           trip_models.FlexFloat  `json:"lat"`
	Lon           trip_models.FlexFloat  `json:"lon"`
}

type generatedDay struct {
	Day  trip_models.FlexFloat `json:"day"`
	Plan []generatedStop       `json:"plan"`
}

type generatedHotel struct {
	HotelName     string                 `json:"hotelName"`
	HotelAddress  string                 `json:"hotelAddress"`
	Price         trip_models.FlexString `json:"price"`
	Rating        trip_models.FlexString `json:"rating"`
	Description   string                 `json:"description"`
	HotelImageURL *string                `json:"hotelImageUrl"`
	Lat           trip_models.FlexFloat  `json:"lat"`
	Lon           trip_models.FlexFloat  `json:"lon"`
}

type generatedRestaurant struct {
	RestaurantName     string                 `json:"restaurantName"`
	RestaurantAddress  string                 `json:"restaurantAddress"`
	Price              trip_models.FlexString `json:"price"`
	Rating             trip_models.FlexString `json:"rating"`
	Description        string                 `json:"description"`
	RestaurantImageURL *string                `json:"restaurantImageUrl"`
	Lat                trip_models.FlexFloat  `json:"lat"`
	Lon                trip_models.FlexFloat  `json:"lon"`
}

type generatedPlan struct {
	Itinerary         []generatedDay        `json:"itinerary"`
	HotelOptions      []generatedHotel      `json:"hotelOptions"`
	RestaurantOptions []generatedRestaurant `json:"restaurantOptions"`
}

type generatedGuides struct {
	Guides []trip_models.Guide `json:"guides"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// toItinerary keeps the generated day order. Missing or zero day numbers are
// replaced by the position.
func (p generatedPlan) toItinerary() []trip_models.ItineraryDay {
	days := make([]trip_models.ItineraryDay, 0, len(p.Itinerary))
	for i, d := range p.Itinerary {
		number := int(d.Day)
		if number <= 0 {
			number = i + 1
		}
		stops := make([]trip_models.Stop, 0, len(d.Plan))
		for _, s := range d.Plan {
			stops = append(stops, s.toStop())
		}
		days = append(days, trip_models.ItineraryDay{DayNumber: number, Stops: stops})
	}
	return days
}

func (s generatedStop) toStop() trip_models.Stop {
	return trip_models.Stop{
		Name:        s.PlaceName,
		Description: s.PlaceDetails,
		Rating:      orDefault(s.Rating.String(), "N/A"),
		PriceInfo:   orDefault(s.TicketPricing.String(), "Varies"),
		TimeOfDay:   s.Time,
		ImageURL:    deref(s.PlaceImageURL),
		Lat:         float64(s.Lat),
		Lon:         float64(s.Lon),
	}
}

func (s generatedStop) toAttraction() trip_models.Attraction {
	return trip_models.Attraction{
		Name:        s.PlaceName,
		Rating:      orDefault(s.Rating.String(), "N/A"),
		Description: s.PlaceDetails,
		Lat:         float64(s.Lat),
		Lon:         float64(s.Lon),
	}
}

func (h generatedHotel) toLodging() trip_models.Lodging {
	return trip_models.Lodging{
		Name:        h.HotelName,
		Address:     h.HotelAddress,
		Price:       orDefault(h.Price.String(), "Contact hotel for pricing"),
		Rating:      orDefault(h.Rating.String(), "N/A"),
		Description: h.Description,
		ImageURL:    deref(h.HotelImageURL),
		BookingURL:  trip_models.BookingSearchURL(h.HotelName, h.HotelAddress),
		Lat:         float64(h.Lat),
		Lon:         float64(h.Lon),
	}
}

func (r generatedRestaurant) toDining() trip_models.Dining {
	return trip_models.Dining{
		Name:        r.RestaurantName,
		Address:     r.RestaurantAddress,
		PriceTier:   orDefault(r.Price.String(), "$$"),
		Rating:      orDefault(r.Rating.String(), "N/A"),
		Description: r.Description,
		ImageURL:    deref(r.RestaurantImageURL),
		Lat:         float64(r.Lat),
		Lon:         float64(r.Lon),
	}
}

func mapNamed[S any, D any](in []S, name func(S) string, conv func(S) D) []D {
	out := make([]D, 0, len(in))
	for _, v := range in {
		if strings.TrimSpace(name(v)) == "" {
			continue
		}
		out = append(out, conv(v))
	}
	return out
}

func (p generatedPlan) hotels() []trip_models.Lodging {
	return mapNamed(p.HotelOptions, func(h generatedHotel) string { return h.HotelName }, generatedHotel.toLodging)
}

func (p generatedPlan) restaurants() []trip_models.Dining {
	return mapNamed(p.RestaurantOptions, func(r generatedRestaurant) string { return r.RestaurantName }, generatedRestaurant.toDining)
}
