package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"wayfarer/internal/models/trip_models"
	"wayfarer/internal/providers"
	"wayfarer/pkg/utils"
)

// Sources bundles the data providers and the text generator, and builds the
// primary and generated-fallback sources that the resolver consumes.
type Sources struct {
	Geocoder    providers.Geocoder
	Lodging     providers.LodgingProvider
	Dining      providers.DiningProvider
	Attractions providers.AttractionProvider
	Generator   utils.TextGenerator

	GenerationTimeout time.Duration
	Logger            *zap.Logger
}

// ResolveLocation geocodes name. Any failure, including out-of-range
// coordinates, is reported as utils.ErrLocationUnresolved.
func (s *Sources) ResolveLocation(ctx context.Context, name string) (trip_models.ResolvedLocation, error) {
	if s.Geocoder == nil {
		return trip_models.ResolvedLocation{}, fmt.Errorf("%w: %s: no geocoder configured", utils.ErrLocationUnresolved, name)
	}
	loc, err := s.Geocoder.Geocode(ctx, name)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return trip_models.ResolvedLocation{}, ctxErr
		}
		return trip_models.ResolvedLocation{}, fmt.Errorf("%w: %s: %v", utils.ErrLocationUnresolved, name, err)
	}
	if !loc.Valid() {
		return trip_models.ResolvedLocation{}, fmt.Errorf("%w: %s: coordinates out of range", utils.ErrLocationUnresolved, name)
	}
	if loc.DisplayName == "" {
		loc.DisplayName = name
	}
	return loc, nil
}

// Generate calls the text generator under the generation timeout.
func (s *Sources) Generate(ctx context.Context, prompt string, opts utils.GenerateOptions) (string, error) {
	if s.Generator == nil {
		return "", utils.ErrProviderUnavailable
	}
	if s.GenerationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.GenerationTimeout)
		defer cancel()
	}
	text, err := s.Generator.Generate(ctx, prompt, opts)
	if err != nil {
		return "", fmt.Errorf("%s generation: %w", s.Generator.Name(), err)
	}
	return text, nil
}

func (s *Sources) Hotels(ctx context.Context, loc trip_models.ResolvedLocation, name string, limit int) trip_models.ProviderResult[trip_models.Lodging] {
	var primary Source[trip_models.Lodging]
	if s.Lodging != nil {
		primary = func(ctx context.Context) ([]trip_models.Lodging, error) {
			return s.Lodging.NearbyLodging(ctx, loc.Latitude, loc.Longitude, limit)
		}
	}
	fallback := generatedList(s, hotelFallbackPrompt(name), limit,
		func(h generatedHotel) string { return h.HotelName }, generatedHotel.toLodging)
	return ResolveNamed(ctx, s.Logger, "lodging", primary, fallback)
}

func (s *Sources) Restaurants(ctx context.Context, loc trip_models.ResolvedLocation, name string, limit int) trip_models.ProviderResult[trip_models.Dining] {
	var primary Source[trip_models.Dining]
	if s.Dining != nil {
		primary = func(ctx context.Context) ([]trip_models.Dining, error) {
			return s.Dining.NearbyDining(ctx, loc.Latitude, loc.Longitude, limit)
		}
	}
	fallback := generatedList(s, restaurantFallbackPrompt(name), limit,
		func(r generatedRestaurant) string { return r.RestaurantName }, generatedRestaurant.toDining)
	return ResolveNamed(ctx, s.Logger, "dining", primary, fallback)
}

// AttractionsNear resolves nearby points of interest. withFallback adds a
// generated list when the provider has nothing.
func (s *Sources) AttractionsNear(ctx context.Context, loc trip_models.ResolvedLocation, name string, limit int, withFallback bool) trip_models.ProviderResult[trip_models.Attraction] {
	var primary Source[trip_models.Attraction]
	if s.Attractions != nil {
		primary = func(ctx context.Context) ([]trip_models.Attraction, error) {
			return s.Attractions.NearbyAttractions(ctx, loc.Latitude, loc.Longitude, limit)
		}
	}
	var fallback Source[trip_models.Attraction]
	if withFallback {
		fallback = generatedList(s, attractionFallbackPrompt(name), limit,
			func(a generatedStop) string { return a.PlaceName }, generatedStop.toAttraction)
	}
	return ResolveNamed(ctx, s.Logger, "attractions", primary, fallback)
}

// Guides are always generated; the single stand-in guide covers failures.
func (s *Sources) Guides(ctx context.Context, loc trip_models.ResolvedLocation, limit int) []trip_models.Guide {
	raw, err := s.Generate(ctx, guidesPrompt(loc), guideOptions)
	if err == nil {
		var parsed generatedGuides
		if err = utils.RepairObject(raw, &parsed); err == nil {
			guides := mapNamed(parsed.Guides, func(g trip_models.Guide) string { return g.Name },
				func(g trip_models.Guide) trip_models.Guide { return g })
			if len(guides) > limit && limit > 0 {
				guides = guides[:limit]
			}
			if len(guides) > 0 {
				return guides
			}
			err = utils.ErrEmptyPayload
		}
	}
	if s.Logger != nil && !errors.Is(err, context.Canceled) {
		s.Logger.Warn("guide generation failed, using stand-in guide", zap.Error(err))
	}
	return []trip_models.Guide{fallbackGuide}
}

// generatedList builds a fallback source that asks the generator for a JSON
// array and converts the named entries.
func generatedList[W any, T any](s *Sources, prompt string, limit int, name func(W) string, conv func(W) T) Source[T] {
	if s.Generator == nil {
		return nil
	}
	return func(ctx context.Context) ([]T, error) {
		raw, err := s.Generate(ctx, prompt, listOptions)
		if err != nil {
			return nil, err
		}
		var wire []W
		if err := utils.RepairArray(raw, &wire); err != nil {
			return nil, err
		}
		items := mapNamed(wire, name, conv)
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		return items, nil
	}
}

func trimmedOr(text, def string) string {
	if t := strings.TrimSpace(text); t != "" {
		return t
	}
	return def
}
