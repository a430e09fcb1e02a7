package providers

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"wayfarer/internal/models/trip_models"
)

const geocodeKeyPrefix = "geocode:"

// CachedGeocoder stores successful geocoding results in redis. Failures are
// never cached, and a cache outage falls through to the wrapped geocoder.
type CachedGeocoder struct {
	Next   Geocoder
	Redis  *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func NewCachedGeocoder(next Geocoder, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedGeocoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedGeocoder{Next: next, Redis: rdb, TTL: ttl, Logger: logger}
}

func geocodeKey(query string) string {
	return geocodeKeyPrefix + strings.ToLower(strings.TrimSpace(query))
}

func (c *CachedGeocoder) Geocode(ctx context.Context, query string) (trip_models.ResolvedLocation, error) {
	key := geocodeKey(query)

	raw, err := c.Redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var loc trip_models.ResolvedLocation
		if jsonErr := json.Unmarshal(raw, &loc); jsonErr == nil && loc.Valid() {
			return loc, nil
		}
		c.Logger.Warn("discarding unreadable geocode cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.Logger.Warn("geocode cache read failed", zap.String("key", key), zap.Error(err))
	}

	loc, err := c.Next.Geocode(ctx, query)
	if err != nil {
		return loc, err
	}

	if payload, mErr := json.Marshal(loc); mErr == nil {
		if sErr := c.Redis.Set(ctx, key, payload, c.TTL).Err(); sErr != nil {
			c.Logger.Warn("geocode cache write failed", zap.String("key", key), zap.Error(sErr))
		}
	}
	return loc, nil
}
