package services

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"wayfarer/internal/models/trip_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/metrics"
	"wayfarer/pkg/utils"
)

const (
	planAttractionLimit  = 20
	lodgingQueryLimit    = 6
	outcomeCancelledName = "cancelled"
)

// PlanLimits caps how many fetched hotels and restaurants a plan carries.
type PlanLimits struct {
	Hotels      int
	Restaurants int
}

var (
	chatPlanLimits = PlanLimits{Hotels: 3, Restaurants: 3}
	formPlanLimits = PlanLimits{Hotels: 4, Restaurants: 4}
)

type AssistantServiceInterface interface {
	// HandleQuery answers one message in a session. The only errors are
	// session errors and utils.ErrRequestCancelled; every other failure is a Reply.
	HandleQuery(ctx context.Context, session *Session, text string) (trip_models.Reply, error)
	// PlanTrip builds, enriches and stores a plan for an already resolved location.
	PlanTrip(ctx context.Context, params trip_models.TripParameters, location trip_models.ResolvedLocation, limits PlanLimits) (*trip_models.TripPlan, error)
	Welcome() string
}

type AssistantService struct {
	sources     *Sources
	enricher    *ImageEnricher
	trips       repositories.TripStore
	logger      *zap.Logger
	maxTripDays int
}

func NewAssistantService(
	sources *Sources,
	enricher *ImageEnricher,
	trips repositories.TripStore,
	logger *zap.Logger,
	maxTripDays int,
) AssistantServiceInterface {
	return &AssistantService{
		sources:     sources,
		enricher:    enricher,
		trips:       trips,
		logger:      logger,
		maxTripDays: maxTripDays,
	}
}

func (a *AssistantService) Welcome() string {
	return WelcomeText
}

func (a *AssistantService) HandleQuery(ctx context.Context, session *Session, text string) (trip_models.Reply, error) {
	reqCtx, release, err := session.Begin(ctx)
	if err != nil {
		return trip_models.Reply{}, err
	}
	defer release()

	start := time.Now()
	query := trip_models.NewQuery(text)
	intent := Classify(query.Text)
	log := a.logger.With(zap.String("session_id", session.ID), zap.String("intent", intent.String()))

	reply := a.answer(reqCtx, log, intent, query)
	metrics.AssistantDuration.WithLabelValues(intent.String()).Observe(time.Since(start).Seconds())

	if reqCtx.Err() != nil {
		metrics.AssistantReplies.WithLabelValues(intent.String(), outcomeCancelledName).Inc()
		log.Info("request cancelled", zap.Duration("elapsed", time.Since(start)))
		return trip_models.Reply{}, utils.ErrRequestCancelled
	}

	session.Append(trip_models.ConversationTurn{Query: query, Response: reply})
	metrics.AssistantReplies.WithLabelValues(intent.String(), string(reply.Outcome)).Inc()
	log.Info("request answered",
		zap.String("outcome", string(reply.Outcome)),
		zap.String("kind", string(reply.Kind)),
		zap.Duration("elapsed", time.Since(start)))
	return reply, nil
}

func (a *AssistantService) answer(ctx context.Context, log *zap.Logger, intent trip_models.Intent, query trip_models.Query) (reply trip_models.Reply) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered from panic", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			reply = trip_models.TextReply(intent, trip_models.OutcomeUnexpectedFailure, ApologyText)
		}
	}()

	switch intent {
	case trip_models.IntentNonTravel:
		return trip_models.TextReply(intent, trip_models.OutcomeAnswered, NonTravelText)
	case trip_models.IntentGreeting:
		return trip_models.TextReply(intent, trip_models.OutcomeAnswered, GreetingText)
	case trip_models.IntentTripPlanning:
		return a.tripReply(ctx, log, query)
	case trip_models.IntentLodgingQuery:
		return a.lodgingReply(ctx, log, query)
	default:
		return a.adviceReply(ctx, log, query)
	}
}

// locate runs the shared LocationExtracted and LocationResolved steps. A
// non-nil reply is terminal.
func (a *AssistantService) locate(ctx context.Context, intent trip_models.Intent, params trip_models.TripParameters) (trip_models.ResolvedLocation, *trip_models.Reply) {
	if params.LocationName == nil {
		r := trip_models.TextReply(intent, trip_models.OutcomeLocationMissing, LocationMissingText(intent))
		return trip_models.ResolvedLocation{}, &r
	}
	loc, err := a.sources.ResolveLocation(ctx, params.Location())
	if err != nil {
		r := trip_models.TextReply(intent, trip_models.OutcomeLocationUnresolved, LocationUnresolvedText(intent, params.Location()))
		return trip_models.ResolvedLocation{}, &r
	}
	return loc, nil
}

func (a *AssistantService) tripReply(ctx context.Context, log *zap.Logger, query trip_models.Query) trip_models.Reply {
	intent := trip_models.IntentTripPlanning
	params := ExtractParameters(query.Text)
	if params.DurationDays < 1 {
		params.DurationDays = 1
	}
	if a.maxTripDays > 0 && params.DurationDays > a.maxTripDays {
		params.DurationDays = a.maxTripDays
	}

	loc, terminal := a.locate(ctx, intent, params)
	if terminal != nil {
		return *terminal
	}

	plan, err := a.PlanTrip(ctx, params, loc, chatPlanLimits)
	switch {
	case err == nil:
		return trip_models.Reply{Kind: trip_models.ReplyTrip, Intent: intent, Outcome: trip_models.OutcomeAnswered, Trip: plan}
	case errors.Is(err, utils.ErrMalformedStructuredResponse):
		log.Warn("generated plan could not be repaired", zap.String("location", params.Location()), zap.Error(err))
		return trip_models.TextReply(intent, trip_models.OutcomePlanMalformed, PlanMalformedText(params.Location()))
	default:
		if !errors.Is(err, utils.ErrRequestCancelled) {
			log.Error("trip planning failed", zap.String("location", params.Location()), zap.Error(err))
		}
		return trip_models.TextReply(intent, trip_models.OutcomeUnexpectedFailure, ApologyText)
	}
}

func (a *AssistantService) lodgingReply(ctx context.Context, log *zap.Logger, query trip_models.Query) trip_models.Reply {
	intent := trip_models.IntentLodgingQuery
	params := ExtractParameters(query.Text)

	loc, terminal := a.locate(ctx, intent, params)
	if terminal != nil {
		return *terminal
	}
	name := params.Location()

	hotels := a.sources.Hotels(ctx, loc, name, lodgingQueryLimit)

	advice, err := a.sources.Generate(ctx, hotelAdvicePrompt(name, query.Text), adviceOptions)
	if err != nil {
		log.Warn("hotel advice generation failed", zap.Error(err))
	}
	advice = trimmedOr(advice, LodgingAdviceFallback(name))

	if a.enricher != nil {
		_ = a.enricher.EnrichLodging(ctx, hotels.Items)
	}

	return trip_models.Reply{
		Kind:    trip_models.ReplyLodging,
		Intent:  intent,
		Outcome: trip_models.OutcomeAnswered,
		Lodging: &trip_models.LodgingDisplay{Location: loc, Hotels: hotels, Advice: advice},
	}
}

func (a *AssistantService) adviceReply(ctx context.Context, log *zap.Logger, query trip_models.Query) trip_models.Reply {
	intent := trip_models.IntentGeneralTravelQuestion
	text, err := a.sources.Generate(ctx, friendlyPrompt(query.Text), adviceOptions)
	if err != nil {
		log.Warn("advice generation failed", zap.Error(err))
		return trip_models.TextReply(intent, trip_models.OutcomeAnswered, friendlyFallbackText)
	}
	return trip_models.TextReply(intent, trip_models.OutcomeAnswered, trimmedOr(text, friendlyEmptyText))
}

func (a *AssistantService) PlanTrip(ctx context.Context, params trip_models.TripParameters, loc trip_models.ResolvedLocation, limits PlanLimits) (*trip_models.TripPlan, error) {
	name := params.Location()
	if name == "" {
		name = loc.DisplayName
	}
	log := a.logger.With(zap.String("location", name), zap.Int("days", params.DurationDays))

	var (
		hotels      trip_models.ProviderResult[trip_models.Lodging]
		restaurants trip_models.ProviderResult[trip_models.Dining]
		attractions trip_models.ProviderResult[trip_models.Attraction]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hotels = a.sources.Hotels(gctx, loc, name, limits.Hotels)
		return nil
	})
	g.Go(func() error {
		restaurants = a.sources.Restaurants(gctx, loc, name, limits.Restaurants)
		return nil
	})
	g.Go(func() error {
		attractions = a.sources.AttractionsNear(gctx, loc, name, planAttractionLimit, false)
		return nil
	})
	_ = g.Wait()
	if ctx.Err() != nil {
		return nil, utils.ErrRequestCancelled
	}

	var knownHotels []trip_models.Lodging
	if hotels.Origin == trip_models.OriginPrimary {
		knownHotels = hotels.Items
	}
	raw, err := a.sources.Generate(ctx, tripPrompt(name, params, attractions.Items, knownHotels), planOptions)
	if err != nil {
		if ctx.Err() != nil {
			return nil, utils.ErrRequestCancelled
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrProviderUnavailable, err)
	}

	var generated generatedPlan
	if err := utils.RepairObject(raw, &generated); err != nil {
		return nil, err
	}
	itinerary := generated.toItinerary()
	if len(itinerary) == 0 {
		return nil, &utils.MalformedStructuredResponseError{Raw: raw, Cause: errors.New("itinerary is empty")}
	}
	if params.DurationDays > 0 && len(itinerary) > params.DurationDays {
		itinerary = itinerary[:params.DurationDays]
	}

	plan := &trip_models.TripPlan{
		Location:    loc,
		Parameters:  params,
		Itinerary:   itinerary,
		Hotels:      overlayResult(hotels, generated.hotels()),
		Restaurants: overlayResult(restaurants, generated.restaurants()),
	}
	if attractions.Origin == trip_models.OriginPrimary {
		overlayStops(plan.Itinerary, attractions.Items)
	}

	if a.enricher != nil {
		if err := a.enricher.EnrichPlan(ctx, plan); err != nil {
			return nil, utils.ErrRequestCancelled
		}
	}
	if ctx.Err() != nil {
		return nil, utils.ErrRequestCancelled
	}

	if a.trips != nil {
		id, err := a.trips.Save(ctx, params, plan)
		if err != nil {
			log.Error("failed to save trip", zap.Error(err))
		} else {
			plan.ID = id
		}
	}

	log.Info("trip planned",
		zap.String("trip_id", plan.ID),
		zap.String("hotels_origin", string(plan.Hotels.Origin)),
		zap.String("restaurants_origin", string(plan.Restaurants.Origin)),
		zap.String("attractions_origin", string(attractions.Origin)))
	return plan, nil
}

// overlayResult prefers fetched items outright. When the fetch produced
// nothing, the plan's own generated list is used and marked as such.
func overlayResult[T any](fetched trip_models.ProviderResult[T], generated []T) trip_models.ProviderResult[T] {
	if fetched.Len() > 0 {
		return fetched
	}
	if len(generated) > 0 {
		return trip_models.ProviderResult[T]{Items: generated, Origin: trip_models.OriginGeneratedFallback}
	}
	return trip_models.EmptyResult[T]()
}

// overlayStops replaces stop s of every day with attractions[s]. Stops past
// the end of attractions are left as generated. The generated time slot is kept.
func overlayStops(days []trip_models.ItineraryDay, attractions []trip_models.Attraction) {
	for d := range days {
		for s := range days[d].Stops {
			if s >= len(attractions) {
				break
			}
			stop := attractions[s].AsStop()
			if slot := days[d].Stops[s].TimeOfDay; slot != "" {
				stop.TimeOfDay = slot
			}
			days[d].Stops[s] = stop
		}
	}
}
