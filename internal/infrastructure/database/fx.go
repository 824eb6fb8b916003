// Package database contains database infrastructure
package database

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/makarov13/gastrobot/config"
)

// Module provides database connection for fx dependency injection
var Module = fx.Module("database",
	fx.Provide(NewDB),
)

// NewDB creates a database connection with lifecycle management
func NewDB(lc fx.Lifecycle, cfg *config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	db, err := NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("host", cfg.Host).
		Str("port", cfg.Port).
		Str("database", cfg.DBName).
		Msg("Database connected")

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				log.Error().Err(err).Msg("Failed to get underlying sql.DB")
				return err
			}
			log.Info().Msg("Closing database connection")
			return sqlDB.Close()
		},
	})

	return db, nil
}
