package infra

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"wayfarer/internal/models/db_models"
)

// InitPostgresql opens the trip database and migrates its tables. An empty
// DSN disables persistence and returns a nil handle.
func InitPostgresql(dsn string, logger *zap.Logger) (*gorm.DB, error) {
	if dsn == "" {
		logger.Warn("POSTGRES_URL is not set, trips will not be persisted")
		return nil, nil
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.AutoMigrate(&db_models.Trip{}, &db_models.TripDay{}, &db_models.TripStop{}); err != nil {
		return nil, fmt.Errorf("error migrating trip tables: %w", err)
	}
	logger.Info("PostgreSQL connection established")
	return db, nil
}

func ClosePostgresql(db *gorm.DB, logger *zap.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("error closing database connection", zap.Error(err))
	} else {
		logger.Info("PostgreSQL database connection closed successfully")
	}
}
