package provider_fx

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"wayfarer/internal/config"
	"wayfarer/internal/providers"
	"wayfarer/pkg/utils"
)

var Module = fx.Provide(
	provideGooglePlaces,
	provideGeocoder,
	provideLodging,
	provideDining,
	provideAttractions,
	provideImages,
	provideTextGenerator)

// provideGooglePlaces returns nil without an API key. Dining and attractions
// then come from the generated fallbacks only.
func provideGooglePlaces(cfg *config.Config, logger *zap.Logger) (*providers.GooglePlaces, error) {
	if cfg.Providers.GoogleMapsAPIKey == "" {
		logger.Warn("GOOGLE_MAPS_API_KEY is not set, nearby lookups are disabled")
		return nil, nil
	}
	return providers.NewGooglePlaces(cfg.Providers.GoogleMapsAPIKey)
}

func provideGeocoder(cfg *config.Config, places *providers.GooglePlaces, rdb *redis.Client, logger *zap.Logger) (providers.Geocoder, error) {
	var geocoder providers.Geocoder
	switch cfg.Providers.GeocodeProvider {
	case "google":
		if places == nil {
			return nil, fmt.Errorf("GEOCODE_PROVIDER=google requires GOOGLE_MAPS_API_KEY")
		}
		geocoder = places
	default:
		geocoder = providers.NewLocationIQGeocoder(cfg.Providers.LocationIQAPIKey, cfg.Providers.LocationIQBaseURL, cfg.Providers.Timeout)
	}

	if rdb == nil {
		return geocoder, nil
	}
	return providers.NewCachedGeocoder(geocoder, rdb, cfg.Providers.GeocodeCacheTTL, logger), nil
}

// provideLodging returns nil when the selected backend has no credentials, so
// lodging goes straight to the generated fallback.
func provideLodging(cfg *config.Config, places *providers.GooglePlaces, logger *zap.Logger) providers.LodgingProvider {
	if cfg.Providers.LodgingProvider == "google" {
		if places == nil {
			return nil
		}
		return places
	}
	if cfg.Providers.AmadeusClientID == "" || cfg.Providers.AmadeusClientSecret == "" {
		logger.Warn("AMADEUS_CLIENT_ID or AMADEUS_CLIENT_SECRET is not set, hotels will be generated")
		return nil
	}
	return providers.NewAmadeusHotels(
		cfg.Providers.AmadeusClientID,
		cfg.Providers.AmadeusClientSecret,
		cfg.Providers.AmadeusBaseURL,
		cfg.Providers.Timeout)
}

func provideDining(places *providers.GooglePlaces) providers.DiningProvider {
	if places == nil {
		return nil
	}
	return places
}

func provideAttractions(places *providers.GooglePlaces) providers.AttractionProvider {
	if places == nil {
		return nil
	}
	return places
}

func provideImages(cfg *config.Config, logger *zap.Logger) providers.ImageProvider {
	if cfg.Providers.PexelsAPIKey == "" {
		logger.Warn("PEXELS_API_KEY is not set, placeholder images will be used")
		return nil
	}
	return providers.NewPexelsImages(
		cfg.Providers.PexelsAPIKey,
		cfg.Providers.PexelsBaseURL,
		cfg.Providers.Timeout,
		cfg.Assistant.ImageRatePerSecond)
}

func provideTextGenerator(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.TextGenerator, error) {
	generator, err := utils.NewTextGenerator(context.Background(), cfg.Generative.Provider, cfg.Generative.APIKey(), cfg.Generative.Model())
	if err != nil {
		return nil, fmt.Errorf("failed to create %s generator: %w", cfg.Generative.Provider, err)
	}
	logger.Info("text generator ready",
		zap.String("provider", generator.Name()),
		zap.String("model", cfg.Generative.Model()))

	if closer, ok := generator.(interface{ Close() error }); ok {
		lc.Append(fx.StopHook(closer.Close))
	}
	return generator, nil
}
