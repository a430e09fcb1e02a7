package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"wayfarer/internal/config"
	"wayfarer/internal/infra"
	"wayfarer/internal/repositories"
)

var Module = fx.Provide(
	provideDB,
	provideTripStore)

func provideDB(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg.PostgresURL, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			infra.ClosePostgresql(db, logger)
			return nil
		},
	})
	return db, nil
}

// provideTripStore yields a nil store when persistence is disabled.
func provideTripStore(db *gorm.DB) repositories.TripStore {
	if db == nil {
		return nil
	}
	return repositories.NewTripRepository(db)
}
