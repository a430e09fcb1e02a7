package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/trip_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
)

type TripServiceInterface interface {
	CreateTrip(ctx context.Context, req request_models.CreateTripRequest) (*trip_models.TripPlan, error)
	GetTrip(ctx context.Context, id string) (*trip_models.TripPlan, error)
	ListTrips(ctx context.Context, limit int) ([]trip_models.TripSummary, error)
}

const (
	defaultListLimit = 20
	maxListLimit     = 50
)

// TripService is the form-driven entry point. It validates the request and
// hands off to the same PlanTrip the conversational flow uses.
type TripService struct {
	assistant   AssistantServiceInterface
	sources     *Sources
	trips       repositories.TripStore
	logger      *zap.Logger
	maxTripDays int
}

func NewTripService(
	assistant AssistantServiceInterface,
	sources *Sources,
	trips repositories.TripStore,
	logger *zap.Logger,
	maxTripDays int,
) TripServiceInterface {
	return &TripService{
		assistant:   assistant,
		sources:     sources,
		trips:       trips,
		logger:      logger,
		maxTripDays: maxTripDays,
	}
}

func (t *TripService) CreateTrip(ctx context.Context, req request_models.CreateTripRequest) (*trip_models.TripPlan, error) {
	location := strings.TrimSpace(req.Location)
	switch {
	case location == "":
		return nil, fmt.Errorf("%w: location is required", utils.ErrInvalidTripRequest)
	case req.Days < 1 || req.Days > t.maxTripDays:
		return nil, fmt.Errorf("%w: days must be between 1 and %d", utils.ErrInvalidTripRequest, t.maxTripDays)
	case strings.TrimSpace(req.Budget) == "":
		return nil, fmt.Errorf("%w: budget is required", utils.ErrInvalidTripRequest)
	case strings.TrimSpace(req.Travelers) == "":
		return nil, fmt.Errorf("%w: travelers is required", utils.ErrInvalidTripRequest)
	}

	loc, err := t.sources.ResolveLocation(ctx, location)
	if err != nil {
		if ctx.Err() != nil {
			return nil, utils.ErrRequestCancelled
		}
		return nil, err
	}

	params := trip_models.TripParameters{
		LocationName: &location,
		DurationDays: req.Days,
		Budget:       strings.TrimSpace(req.Budget),
		Travelers:    strings.TrimSpace(req.Travelers),
	}
	return t.assistant.PlanTrip(ctx, params, loc, formPlanLimits)
}

func (t *TripService) GetTrip(ctx context.Context, id string) (*trip_models.TripPlan, error) {
	if t.trips == nil {
		return nil, utils.ErrTripNotFound
	}
	return t.trips.Get(ctx, id)
}

// ListTrips returns recent trips with their highlights. Out-of-range limits
// fall back to the default.
func (t *TripService) ListTrips(ctx context.Context, limit int) ([]trip_models.TripSummary, error) {
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}
	if t.trips == nil {
		return []trip_models.TripSummary{}, nil
	}
	return t.trips.List(ctx, limit)
}
