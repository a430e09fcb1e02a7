package providers

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
	"wayfarer/internal/models/trip_models"
	"wayfarer/pkg/utils"
)

const nearbyRadiusMeters = 5000

// GooglePlaces serves geocoding, lodging, dining and attraction lookups from
// the Google Maps Platform.
type GooglePlaces struct {
	client *maps.Client
}

func NewGooglePlaces(apiKey string, opts ...maps.ClientOption) (*GooglePlaces, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GooglePlaces{client: client}, nil
}

func (g *GooglePlaces) Geocode(ctx context.Context, query string) (trip_models.ResolvedLocation, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return trip_models.ResolvedLocation{}, utils.ErrNoValidLocation
		}
		return trip_models.ResolvedLocation{}, fmt.Errorf("geocoding api error: %w", err)
	}

	for _, r := range results {
		loc := trip_models.ResolvedLocation{
			DisplayName: r.FormattedAddress,
			Latitude:    r.Geometry.Location.Lat,
			Longitude:   r.Geometry.Location.Lng,
		}
		if loc.Valid() {
			return loc, nil
		}
	}
	return trip_models.ResolvedLocation{}, utils.ErrNoValidLocation
}

func (g *GooglePlaces) nearby(ctx context.Context, lat, lon float64, placeType maps.PlaceType) ([]maps.PlacesSearchResult, error) {
	resp, err := g.client.NearbySearch(ctx, &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: lat, Lng: lon},
		Radius:   nearbyRadiusMeters,
		Type:     placeType,
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, utils.ErrEmptyPayload
	}
	return resp.Results, nil
}

func (g *GooglePlaces) NearbyDining(ctx context.Context, lat, lon float64, limit int) ([]trip_models.Dining, error) {
	results, err := g.nearby(ctx, lat, lon, maps.PlaceTypeRestaurant)
	if err != nil {
		return nil, err
	}

	var dining []trip_models.Dining
	for _, r := range results {
		if r.Name == "" {
			continue
		}
		description := "Local restaurant"
		if len(r.Types) > 0 {
			description = strings.Join(r.Types, ", ")
		}
		dining = append(dining, trip_models.Dining{
			Name:        r.Name,
			Address:     addressOf(r),
			PriceTier:   priceTier(r.PriceLevel),
			Rating:      formatRating(r.Rating),
			Description: description,
			Lat:         r.Geometry.Location.Lat,
			Lon:         r.Geometry.Location.Lng,
		})
		if limit > 0 && len(dining) >= limit {
			break
		}
	}
	return dining, nil
}

func (g *GooglePlaces) NearbyLodging(ctx context.Context, lat, lon float64, limit int) ([]trip_models.Lodging, error) {
	results, err := g.nearby(ctx, lat, lon, maps.PlaceTypeLodging)
	if err != nil {
		return nil, err
	}

	var lodging []trip_models.Lodging
	for _, r := range results {
		if r.Name == "" {
			continue
		}
		address := addressOf(r)
		lodging = append(lodging, trip_models.Lodging{
			Name:        r.Name,
			Address:     address,
			Price:       "Contact hotel for pricing",
			Rating:      formatRating(r.Rating),
			Description: "Hotel near your destination",
			BookingURL:  trip_models.BookingSearchURL(r.Name, address),
			HotelID:     r.PlaceID,
			Lat:         r.Geometry.Location.Lat,
			Lon:         r.Geometry.Location.Lng,
		})
		if limit > 0 && len(lodging) >= limit {
			break
		}
	}
	return lodging, nil
}

func (g *GooglePlaces) NearbyAttractions(ctx context.Context, lat, lon float64, limit int) ([]trip_models.Attraction, error) {
	results, err := g.nearby(ctx, lat, lon, maps.PlaceTypeTouristAttraction)
	if err != nil {
		return nil, err
	}

	var attractions []trip_models.Attraction
	for _, r := range results {
		if r.Name == "" {
			continue
		}
		attractions = append(attractions, trip_models.Attraction{
			Name:    r.Name,
			Address: addressOf(r),
			Rating:  formatRating(r.Rating),
			Lat:     r.Geometry.Location.Lat,
			Lon:     r.Geometry.Location.Lng,
		})
		if limit > 0 && len(attractions) >= limit {
			break
		}
	}
	return attractions, nil
}

func addressOf(r maps.PlacesSearchResult) string {
	if r.Vicinity != "" {
		return r.Vicinity
	}
	return r.FormattedAddress
}

func priceTier(level int) string {
	if level <= 0 {
		return "$"
	}
	return strings.Repeat("$", level)
}

func formatRating(r float32) string {
	if r <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", r)
}
