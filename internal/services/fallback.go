package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"wayfarer/internal/models/trip_models"
	"wayfarer/pkg/metrics"
	"wayfarer/pkg/utils"
)

// Source produces the items for one provider concern.
type Source[T any] func(ctx context.Context) ([]T, error)

// Resolve tries primary, then fallback, then settles on an empty result. It
// never returns an error and recovers panics from either source.
func Resolve[T any](ctx context.Context, primary, fallback Source[T]) trip_models.ProviderResult[T] {
	result, _, _ := resolve(ctx, primary, fallback)
	return result
}

// ResolveNamed is Resolve plus the provider metric and a log line for degraded results.
func ResolveNamed[T any](ctx context.Context, logger *zap.Logger, provider string, primary, fallback Source[T]) trip_models.ProviderResult[T] {
	result, primaryErr, fallbackErr := resolve(ctx, primary, fallback)
	metrics.ProviderResults.WithLabelValues(provider, string(result.Origin)).Inc()

	if result.Degraded() && logger != nil {
		fields := []zap.Field{zap.String("provider", provider), zap.String("origin", string(result.Origin))}
		if primaryErr != nil {
			fields = append(fields, zap.NamedError("primary_error", primaryErr))
		}
		if fallbackErr != nil {
			fields = append(fields, zap.NamedError("fallback_error", fallbackErr))
		}
		logger.Warn("provider degraded", fields...)
	}
	return result
}

func resolve[T any](ctx context.Context, primary, fallback Source[T]) (trip_models.ProviderResult[T], error, error) {
	items, primaryErr := attempt(ctx, primary)
	if primaryErr == nil {
		return trip_models.ProviderResult[T]{Items: items, Origin: trip_models.OriginPrimary}, nil, nil
	}
	if ctx.Err() != nil {
		return trip_models.EmptyResult[T](), primaryErr, ctx.Err()
	}

	items, fallbackErr := attempt(ctx, fallback)
	if fallbackErr == nil {
		return trip_models.ProviderResult[T]{Items: items, Origin: trip_models.OriginGeneratedFallback}, primaryErr, nil
	}
	return trip_models.EmptyResult[T](), primaryErr, fallbackErr
}

func attempt[T any](ctx context.Context, src Source[T]) (items []T, err error) {
	if src == nil {
		return nil, utils.ErrProviderUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			items, err = nil, fmt.Errorf("provider panic: %v", r)
		}
	}()

	items, err = src(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, utils.ErrEmptyPayload
	}
	return items, nil
}
