package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"wayfarer/internal/config"
	"wayfarer/internal/services"
	mem "wayfarer/pkg/memcache"
)

const sweepInterval = 5 * time.Minute

var Module = fx.Provide(provideSessionStore)

// provideSessionStore holds conversation sessions in process and drops idle
// ones on a timer.
func provideSessionStore(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) mem.TTLStore[*services.Session] {
	store := mem.NewStore[*services.Session](cfg.Assistant.SessionTTL)

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				ticker := time.NewTicker(sweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if n := store.Sweep(); n > 0 {
							logger.Debug("expired sessions removed", zap.Int("count", n), zap.Int("active", store.Len()))
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return store
}
