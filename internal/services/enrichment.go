package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"wayfarer/internal/models/trip_models"
	"wayfarer/internal/providers"
	"wayfarer/pkg/metrics"
)

const DefaultPlaceholderImage = "/placeholder.jpg"

// ImageEnricher attaches one photo per entry. Lookups run on a bounded group,
// results are written by index, and a failed lookup only affects its own entry.
type ImageEnricher struct {
	images      providers.ImageProvider
	placeholder string
	concurrency int
	logger      *zap.Logger
}

func NewImageEnricher(images providers.ImageProvider, placeholder string, concurrency int, logger *zap.Logger) *ImageEnricher {
	if placeholder == "" {
		placeholder = DefaultPlaceholderImage
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageEnricher{images: images, placeholder: placeholder, concurrency: concurrency, logger: logger}
}

// needsImage reports whether url is missing, this enricher's placeholder or
// a known stand-in.
func (e *ImageEnricher) needsImage(url string) bool {
	if url == "" || url == e.placeholder {
		return true
	}
	lower := strings.ToLower(url)
	return strings.Contains(lower, "placeholder") || strings.Contains(lower, "example.com")
}

type imageTarget struct {
	query string
	set   func(url string)
}

func (e *ImageEnricher) run(ctx context.Context, targets []imageTarget) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for _, target := range targets {
		g.Go(func() error {
			target.set(e.lookup(gctx, target.query))
			return nil
		})
	}
	_ = g.Wait()
	return ctx.Err()
}

func (e *ImageEnricher) lookup(ctx context.Context, query string) string {
	if e.images == nil || ctx.Err() != nil {
		metrics.ImageLookups.WithLabelValues("placeholder").Inc()
		return e.placeholder
	}
	url, err := e.images.SearchImage(ctx, query)
	if err != nil || url == "" {
		if err != nil && ctx.Err() == nil {
			e.logger.Debug("image lookup failed", zap.String("query", query), zap.Error(err))
		}
		metrics.ImageLookups.WithLabelValues("placeholder").Inc()
		return e.placeholder
	}
	metrics.ImageLookups.WithLabelValues("found").Inc()
	return url
}

func (e *ImageEnricher) stopTargets(days []trip_models.ItineraryDay) []imageTarget {
	var targets []imageTarget
	for d := range days {
		for s := range days[d].Stops {
			stop := &days[d].Stops[s]
			if e.needsImage(stop.ImageURL) {
				targets = append(targets, imageTarget{query: stop.Name, set: func(u string) { stop.ImageURL = u }})
			}
		}
	}
	return targets
}

func (e *ImageEnricher) lodgingTargets(hotels []trip_models.Lodging) []imageTarget {
	var targets []imageTarget
	for i := range hotels {
		h := &hotels[i]
		if e.needsImage(h.ImageURL) {
			targets = append(targets, imageTarget{query: h.Name + " hotel", set: func(u string) { h.ImageURL = u }})
		}
	}
	return targets
}

func (e *ImageEnricher) diningTargets(restaurants []trip_models.Dining) []imageTarget {
	var targets []imageTarget
	for i := range restaurants {
		r := &restaurants[i]
		if e.needsImage(r.ImageURL) {
			targets = append(targets, imageTarget{query: r.Name + " restaurant", set: func(u string) { r.ImageURL = u }})
		}
	}
	return targets
}

func (e *ImageEnricher) attractionTargets(attractions []trip_models.Attraction) []imageTarget {
	var targets []imageTarget
	for i := range attractions {
		a := &attractions[i]
		if e.needsImage(a.ImageURL) {
			targets = append(targets, imageTarget{query: a.Name, set: func(u string) { a.ImageURL = u }})
		}
	}
	return targets
}

func (e *ImageEnricher) guideTargets(guides []trip_models.Guide) []imageTarget {
	var targets []imageTarget
	for i := range guides {
		g := &guides[i]
		if e.needsImage(g.ImageURL) {
			targets = append(targets, imageTarget{query: g.Name + " guide", set: func(u string) { g.ImageURL = u }})
		}
	}
	return targets
}

func (e *ImageEnricher) EnrichStops(ctx context.Context, days []trip_models.ItineraryDay) error {
	return e.run(ctx, e.stopTargets(days))
}

func (e *ImageEnricher) EnrichLodging(ctx context.Context, hotels []trip_models.Lodging) error {
	return e.run(ctx, e.lodgingTargets(hotels))
}

func (e *ImageEnricher) EnrichDining(ctx context.Context, restaurants []trip_models.Dining) error {
	return e.run(ctx, e.diningTargets(restaurants))
}

func (e *ImageEnricher) EnrichAttractions(ctx context.Context, attractions []trip_models.Attraction) error {
	return e.run(ctx, e.attractionTargets(attractions))
}

func (e *ImageEnricher) EnrichGuides(ctx context.Context, guides []trip_models.Guide) error {
	return e.run(ctx, e.guideTargets(guides))
}

// EnrichPlan fills stops, hotels and restaurants in one bounded batch.
func (e *ImageEnricher) EnrichPlan(ctx context.Context, plan *trip_models.TripPlan) error {
	var targets []imageTarget
	targets = append(targets, e.stopTargets(plan.Itinerary)...)
	targets = append(targets, e.lodgingTargets(plan.Hotels.Items)...)
	targets = append(targets, e.diningTargets(plan.Restaurants.Items)...)
	return e.run(ctx, targets)
}
