package assistant_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"wayfarer/internal/config"
	"wayfarer/internal/providers"
	"wayfarer/internal/repositories"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

var Module = fx.Provide(
	provideSources,
	provideImageEnricher,
	provideAssistantService,
	provideTripService,
	services.NewExploreService,
	services.NewSessionService)

func provideSources(
	cfg *config.Config,
	geocoder providers.Geocoder,
	lodging providers.LodgingProvider,
	dining providers.DiningProvider,
	attractions providers.AttractionProvider,
	generator utils.TextGenerator,
	logger *zap.Logger,
) *services.Sources {
	return &services.Sources{
		Geocoder:          geocoder,
		Lodging:           lodging,
		Dining:            dining,
		Attractions:       attractions,
		Generator:         generator,
		GenerationTimeout: cfg.Assistant.GenerationTimeout,
		Logger:            logger,
	}
}

func provideImageEnricher(cfg *config.Config, images providers.ImageProvider, logger *zap.Logger) *services.ImageEnricher {
	return services.NewImageEnricher(images, cfg.Assistant.PlaceholderImageURL, cfg.Assistant.ImageConcurrency, logger)
}

func provideAssistantService(
	cfg *config.Config,
	sources *services.Sources,
	enricher *services.ImageEnricher,
	trips repositories.TripStore,
	logger *zap.Logger,
) services.AssistantServiceInterface {
	return services.NewAssistantService(sources, enricher, trips, logger, cfg.Assistant.MaxTripDays)
}

func provideTripService(
	cfg *config.Config,
	assistant services.AssistantServiceInterface,
	sources *services.Sources,
	trips repositories.TripStore,
	logger *zap.Logger,
) services.TripServiceInterface {
	return services.NewTripService(assistant, sources, trips, logger, cfg.Assistant.MaxTripDays)
}
