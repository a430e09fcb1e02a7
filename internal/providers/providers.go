// Package providers holds the adapters over external data sources. Each adapter
// is replaceable on its own and reports failure as an error; degradation is
// decided by the caller.
package providers

import (
	"context"

	"wayfarer/internal/models/trip_models"
)

type Geocoder interface {
	// Geocode returns the first match with in-range coordinates or utils.ErrNoValidLocation.
	Geocode(ctx context.Context, query string) (trip_models.ResolvedLocation, error)
}

type LodgingProvider interface {
	NearbyLodging(ctx context.Context, lat, lon float64, limit int) ([]trip_models.Lodging, error)
}

type DiningProvider interface {
	NearbyDining(ctx context.Context, lat, lon float64, limit int) ([]trip_models.Dining, error)
}

type AttractionProvider interface {
	NearbyAttractions(ctx context.Context, lat, lon float64, limit int) ([]trip_models.Attraction, error)
}

type ImageProvider interface {
	// SearchImage returns one representative image URL for the query.
	SearchImage(ctx context.Context, query string) (string, error)
}
