// Package domain contains all domain modules
package domain

import (
	"go.uber.org/fx"

	"github.com/makarov13/gastrobot/internal/domain/shop"
)

// Module aggregates all domain modules for fx dependency injection
var Module = fx.Module("domain",
	shop.Module,
)
