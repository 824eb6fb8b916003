// Package telegram contains Telegram delivery layer
package telegram

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/makarov13/gastrobot/config"
	"github.com/makarov13/gastrobot/internal/domain/shop/consts"
)

// Router registers Telegram bot handlers
type Router struct {
	handlers *Handlers
	adminIDs []int64
	logger   zerolog.Logger
}

// NewRouter creates new Telegram router
func NewRouter(handlers *Handlers, admin *config.AdminConfig, logger zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		adminIDs: admin.IDs,
		logger:   logger,
	}
}

// RegisterRoutes registers all command handlers on the bot
func (r *Router) RegisterRoutes(bot *tgbot.Bot) {
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, r.handlers.HandleStart)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/menu", tgbot.MatchTypeExact, r.handlers.HandleMenu)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/cart", tgbot.MatchTypeExact, r.handlers.HandleCart)

	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/add_category", tgbot.MatchTypeExact, r.handlers.HandleAddCategory)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/add_product", tgbot.MatchTypeExact, r.handlers.HandleAddProduct)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/products", tgbot.MatchTypeExact, r.handlers.HandleProducts)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/orders", tgbot.MatchTypeExact, r.handlers.HandleOrders)
	bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/stats", tgbot.MatchTypeExact, r.handlers.HandleStats)

	r.logger.Info().Msg("All Telegram command handlers registered successfully")
}

// SetupCommands publishes the command list: user commands for everyone,
// the admin set per admin chat.
func (r *Router) SetupCommands(ctx context.Context, bot *tgbot.Bot) {
	_, err := bot.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{
		Commands: toBotCommands(consts.UserCommands),
		Scope:    &models.BotCommandScopeDefault{},
	})
	if err != nil {
		r.logger.Warn().Err(err).Msg("Failed to set default bot commands")
	}

	adminCommands := toBotCommands(append(append([]consts.Command{}, consts.UserCommands...), consts.AdminCommands...))
	for _, adminID := range r.adminIDs {
		_, err := bot.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{
			Commands: adminCommands,
			Scope:    &models.BotCommandScopeChat{ChatID: adminID},
		})
		if err != nil {
			r.logger.Warn().Err(err).Int64("admin_id", adminID).Msg("Failed to set admin bot commands")
		}
	}
}

func toBotCommands(commands []consts.Command) []models.BotCommand {
	out := make([]models.BotCommand, 0, len(commands))
	for _, c := range commands {
		out = append(out, models.BotCommand{Command: c.Name, Description: c.Description})
	}
	return out
}

// Dispatch handles every update the exact command handlers did not match:
// callbacks, payments, contacts, wizard input and reply keyboard presses.
func (r *Router) Dispatch(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	switch {
	case update.PreCheckoutQuery != nil:
		r.handlers.onPreCheckout(ctx, update.PreCheckoutQuery)
	case update.CallbackQuery != nil:
		r.handlers.onCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		r.handlers.onMessage(ctx, update.Message)
	}
}
