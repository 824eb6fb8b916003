// Package shop contains the shop domain module
package shop

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/makarov13/gastrobot/config"
	telegramDelivery "github.com/makarov13/gastrobot/internal/domain/shop/delivery/telegram"
	"github.com/makarov13/gastrobot/internal/domain/shop/deps"
	kafkaRepo "github.com/makarov13/gastrobot/internal/domain/shop/repository/kafka"
	postgresRepo "github.com/makarov13/gastrobot/internal/domain/shop/repository/postgres"
	"github.com/makarov13/gastrobot/internal/domain/shop/session"
	"github.com/makarov13/gastrobot/internal/domain/shop/usecase/buissines"
	"github.com/makarov13/gastrobot/internal/infrastructure/telegram"
)

// Module provides shop domain components for fx dependency injection
var Module = fx.Module("shop",
	// Repositories
	fx.Provide(postgresRepo.NewUserRepository),
	fx.Provide(postgresRepo.NewCatalogRepository),
	fx.Provide(postgresRepo.NewOrderRepository),
	fx.Provide(postgresRepo.NewSubscriptionRepository),
	fx.Provide(kafkaRepo.NewProducer),

	// Per-chat conversational state
	fx.Provide(session.NewStore),

	// UseCase
	fx.Provide(buissines.NewUseCase),

	// Delivery
	fx.Provide(provideSender),
	fx.Provide(provideTelegramHandlers),
	fx.Provide(telegramDelivery.NewRouter),

	// Wire cyclic dependency and register routes
	fx.Invoke(wireAndRegister),
)

// provideSender creates the outbound message sender with raw bot
func provideSender(bot *telegram.Bot, payments *config.PaymentsConfig, logger zerolog.Logger) *telegramDelivery.Sender {
	return telegramDelivery.NewSender(bot.Raw(), payments, logger)
}

// provideTelegramHandlers creates Telegram handlers with raw bot
func provideTelegramHandlers(
	uc *buissines.UseCase,
	sessions *session.Store,
	sender *telegramDelivery.Sender,
	bot *telegram.Bot,
	logger zerolog.Logger,
) *telegramDelivery.Handlers {
	return telegramDelivery.NewHandlers(uc, sessions, sender, bot.Raw(), logger)
}

// wireAndRegister resolves the cyclic dependency, binds the update
// dispatcher to the domain router and publishes bot commands.
func wireAndRegister(
	lc fx.Lifecycle,
	uc *buissines.UseCase,
	sender *telegramDelivery.Sender,
	router *telegramDelivery.Router,
	bot *telegram.Bot,
	dispatcher *telegram.Dispatcher,
	producer deps.OrderEventProducer,
) {
	// Sender implements deps.TelegramSender interface
	// This resolves the cyclic dependency: UseCase -> TelegramSender <- Sender
	uc.SetSender(sender)

	// Register Telegram command routes and point the default handler at the router
	router.RegisterRoutes(bot.Raw())
	dispatcher.Bind(router.Dispatch)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			router.SetupCommands(ctx, bot.Raw())
			return nil
		},
		OnStop: func(_ context.Context) error {
			return producer.Close()
		},
	})
}
