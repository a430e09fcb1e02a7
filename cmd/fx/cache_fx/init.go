package cache_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"wayfarer/internal/config"
	"wayfarer/internal/infra"
)

var Module = fx.Provide(provideRedis)

func provideRedis(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*redis.Client, error) {
	client, err := infra.InitRedis(context.Background(), cfg.RedisURL, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() {
		infra.CloseRedis(client, logger)
	}))
	return client, nil
}
