// Package infrastructure aggregates infrastructure modules
package infrastructure

import (
	"go.uber.org/fx"

	"github.com/makarov13/gastrobot/internal/infrastructure/database"
	"github.com/makarov13/gastrobot/internal/infrastructure/logger"
	"github.com/makarov13/gastrobot/internal/infrastructure/telegram"
)

// Module aggregates all infrastructure modules for fx dependency injection
var Module = fx.Module("infrastructure",
	logger.Module,
	database.Module,
	telegram.Module,
)
