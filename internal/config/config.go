package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port     string
	LogLevel string
	AppEnv   string

	PostgresURL string
	RedisURL    string

	Generative GenerativeConfig
	Providers  ProvidersConfig
	Assistant  AssistantConfig
}

type GenerativeConfig struct {
	Provider     string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
}

// APIKey returns the key of the selected provider.
func (g GenerativeConfig) APIKey() string {
	if strings.EqualFold(g.Provider, "openai") {
		return g.OpenAIAPIKey
	}
	return g.GeminiAPIKey
}

func (g GenerativeConfig) Model() string {
	if strings.EqualFold(g.Provider, "openai") {
		return g.OpenAIModel
	}
	return g.GeminiModel
}

type ProvidersConfig struct {
	GeocodeProvider     string
	LocationIQAPIKey    string
	LocationIQBaseURL   string
	LodgingProvider     string
	AmadeusClientID     string
	AmadeusClientSecret string
	AmadeusBaseURL      string
	GoogleMapsAPIKey    string
	PexelsAPIKey        string
	PexelsBaseURL       string
	Timeout             time.Duration
	GeocodeCacheTTL     time.Duration
}

type AssistantConfig struct {
	PlaceholderImageURL string
	ImageConcurrency    int
	ImageRatePerSecond  float64
	GenerationTimeout   time.Duration
	SessionTTL          time.Duration
	MaxTripDays         int
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("GENERATIVE_PROVIDER", "gemini")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("GEOCODE_PROVIDER", "locationiq")
	v.SetDefault("LOCATIONIQ_BASE_URL", "https://us1.locationiq.com")
	v.SetDefault("LODGING_PROVIDER", "amadeus")
	v.SetDefault("AMADEUS_BASE_URL", "https://test.api.amadeus.com")
	v.SetDefault("PEXELS_BASE_URL", "https://api.pexels.com")
	v.SetDefault("PROVIDER_TIMEOUT", "15s")
	v.SetDefault("GEOCODE_CACHE_TTL", "24h")
	v.SetDefault("PLACEHOLDER_IMAGE_URL", "/placeholder.jpg")
	v.SetDefault("IMAGE_CONCURRENCY", 4)
	v.SetDefault("IMAGE_RATE_PER_SECOND", 5.0)
	v.SetDefault("GENERATION_TIMEOUT", "45s")
	v.SetDefault("SESSION_TTL", "2h")
	v.SetDefault("MAX_TRIP_DAYS", 10)
}

// FromViper builds and validates a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:        v.GetString("PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		AppEnv:      v.GetString("APP_ENV"),
		PostgresURL: v.GetString("POSTGRES_URL"),
		RedisURL:    v.GetString("REDIS_URL"),
		Generative: GenerativeConfig{
			Provider:     strings.ToLower(v.GetString("GENERATIVE_PROVIDER")),
			GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
			GeminiModel:  v.GetString("GEMINI_MODEL"),
			OpenAIAPIKey: v.GetString("OPENAI_API_KEY"),
			OpenAIModel:  v.GetString("OPENAI_MODEL"),
		},
		Providers: ProvidersConfig{
			GeocodeProvider:     strings.ToLower(v.GetString("GEOCODE_PROVIDER")),
			LocationIQAPIKey:    v.GetString("LOCATIONIQ_API_KEY"),
			LocationIQBaseURL:   v.GetString("LOCATIONIQ_BASE_URL"),
			LodgingProvider:     strings.ToLower(v.GetString("LODGING_PROVIDER")),
			AmadeusClientID:     v.GetString("AMADEUS_CLIENT_ID"),
			AmadeusClientSecret: v.GetString("AMADEUS_CLIENT_SECRET"),
			AmadeusBaseURL:      v.GetString("AMADEUS_BASE_URL"),
			GoogleMapsAPIKey:    v.GetString("GOOGLE_MAPS_API_KEY"),
			PexelsAPIKey:        v.GetString("PEXELS_API_KEY"),
			PexelsBaseURL:       v.GetString("PEXELS_BASE_URL"),
			Timeout:             v.GetDuration("PROVIDER_TIMEOUT"),
			GeocodeCacheTTL:     v.GetDuration("GEOCODE_CACHE_TTL"),
		},
		Assistant: AssistantConfig{
			PlaceholderImageURL: v.GetString("PLACEHOLDER_IMAGE_URL"),
			ImageConcurrency:    v.GetInt("IMAGE_CONCURRENCY"),
			ImageRatePerSecond:  v.GetFloat64("IMAGE_RATE_PER_SECOND"),
			GenerationTimeout:   v.GetDuration("GENERATION_TIMEOUT"),
			SessionTTL:          v.GetDuration("SESSION_TTL"),
			MaxTripDays:         v.GetInt("MAX_TRIP_DAYS"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Generative.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unsupported GENERATIVE_PROVIDER %q", c.Generative.Provider)
	}
	switch c.Providers.GeocodeProvider {
	case "locationiq", "google":
	default:
		return fmt.Errorf("unsupported GEOCODE_PROVIDER %q", c.Providers.GeocodeProvider)
	}
	switch c.Providers.LodgingProvider {
	case "amadeus", "google":
	default:
		return fmt.Errorf("unsupported LODGING_PROVIDER %q", c.Providers.LodgingProvider)
	}
	if c.Assistant.ImageConcurrency < 1 {
		return fmt.Errorf("IMAGE_CONCURRENCY must be at least 1")
	}
	if c.Assistant.MaxTripDays < 1 {
		return fmt.Errorf("MAX_TRIP_DAYS must be at least 1")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
