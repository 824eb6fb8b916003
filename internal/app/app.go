// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/makarov13/gastrobot/config"
	"github.com/makarov13/gastrobot/internal/domain"
	"github.com/makarov13/gastrobot/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, database, telegram bot)
		infrastructure.Module,

		// Domain (storefront business logic)
		domain.Module,
	)
}
