package telegram

import (
	"context"
	"sync"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Dispatcher is the bot default handler with a late-bound target.
// The domain delivery layer binds its router after the bot is constructed,
// which breaks the construction cycle between the bot and its handlers.
type Dispatcher struct {
	mu     sync.RWMutex
	target tgbot.HandlerFunc
}

// NewDispatcher creates an unbound dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Bind sets the handler all unmatched updates are forwarded to
func (d *Dispatcher) Bind(target tgbot.HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.target = target
}

// Handle forwards an update to the bound target; unbound updates are dropped
func (d *Dispatcher) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	d.mu.RLock()
	target := d.target
	d.mu.RUnlock()

	if target == nil {
		return
	}
	target(ctx, b, update)
}
