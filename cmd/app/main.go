package main

import (
	"go.uber.org/fx"

	"github.com/makarov13/gastrobot/internal/app"
)

func main() {
	fx.New(app.CreateApp()).Run()
}
