package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

const (
	exploreHotelLimit      = 8
	exploreRestaurantLimit = 8
	exploreAttractionLimit = 8
	exploreGuideLimit      = 8
)

type ExploreServiceInterface interface {
	Explore(ctx context.Context, location string) (*response_models.ExploreResponse, error)
}

type ExploreService struct {
	sources  *Sources
	enricher *ImageEnricher
	logger   *zap.Logger
}

func NewExploreService(sources *Sources, enricher *ImageEnricher, logger *zap.Logger) ExploreServiceInterface {
	return &ExploreService{sources: sources, enricher: enricher, logger: logger}
}

func (e *ExploreService) Explore(ctx context.Context, location string) (*response_models.ExploreResponse, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: location query parameter is required", utils.ErrLocationMissing)
	}

	loc, err := e.sources.ResolveLocation(ctx, location)
	if err != nil {
		if ctx.Err() != nil {
			return nil, utils.ErrRequestCancelled
		}
		return nil, err
	}

	out := &response_models.ExploreResponse{Location: loc}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Hotels = e.sources.Hotels(gctx, loc, location, exploreHotelLimit)
		return nil
	})
	g.Go(func() error {
		out.Restaurants = e.sources.Restaurants(gctx, loc, location, exploreRestaurantLimit)
		return nil
	})
	g.Go(func() error {
		out.Attractions = e.sources.AttractionsNear(gctx, loc, location, exploreAttractionLimit, true)
		return nil
	})
	g.Go(func() error {
		out.Guides = e.sources.Guides(gctx, loc, exploreGuideLimit)
		return nil
	})
	_ = g.Wait()
	if ctx.Err() != nil {
		return nil, utils.ErrRequestCancelled
	}

	if e.enricher != nil {
		eg, ectx := errgroup.WithContext(ctx)
		eg.Go(func() error { return e.enricher.EnrichLodging(ectx, out.Hotels.Items) })
		eg.Go(func() error { return e.enricher.EnrichDining(ectx, out.Restaurants.Items) })
		eg.Go(func() error { return e.enricher.EnrichAttractions(ectx, out.Attractions.Items) })
		eg.Go(func() error { return e.enricher.EnrichGuides(ectx, out.Guides) })
		if err := eg.Wait(); err != nil {
			return nil, utils.ErrRequestCancelled
		}
	}

	e.logger.Info("explore served",
		zap.String("location", loc.DisplayName),
		zap.String("hotels_origin", string(out.Hotels.Origin)),
		zap.String("restaurants_origin", string(out.Restaurants.Origin)),
		zap.String("attractions_origin", string(out.Attractions.Origin)),
		zap.Int("guides", len(out.Guides)))
	return out, nil
}
