// Package buissines contains business logic for the shop domain
package buissines

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/makarov13/gastrobot/config"
	"github.com/makarov13/gastrobot/internal/domain/shop/cart"
	"github.com/makarov13/gastrobot/internal/domain/shop/consts"
	"github.com/makarov13/gastrobot/internal/domain/shop/deps"
	"github.com/makarov13/gastrobot/internal/domain/shop/dto"
	"github.com/makarov13/gastrobot/internal/domain/shop/entities"
	shoperrors "github.com/makarov13/gastrobot/internal/domain/shop/errors"
	"github.com/makarov13/gastrobot/internal/domain/shop/pricing"
)

// UseCase contains business logic for shop operations
type UseCase struct {
	users         deps.UserRepository
	catalog       deps.CatalogRepository
	orders        deps.OrderRepository
	subscriptions deps.SubscriptionRepository
	producer      deps.OrderEventProducer
	sender        deps.TelegramSender
	payments      *config.PaymentsConfig
	adminIDs      []int64
	logger        zerolog.Logger
}

// NewUseCase creates a new UseCase instance
// Note: sender is not passed here to break cyclic dependency
// Use SetSender after creating the telegram handlers
func NewUseCase(
	users deps.UserRepository,
	catalog deps.CatalogRepository,
	orders deps.OrderRepository,
	subscriptions deps.SubscriptionRepository,
	producer deps.OrderEventProducer,
	payments *config.PaymentsConfig,
	admin *config.AdminConfig,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		users:         users,
		catalog:       catalog,
		orders:        orders,
		subscriptions: subscriptions,
		producer:      producer,
		payments:      payments,
		adminIDs:      admin.IDs,
		logger:        logger,
	}
}

// SetSender sets the TelegramSender after construction
// This is called by fx.Invoke to resolve cyclic dependency
func (uc *UseCase) SetSender(sender deps.TelegramSender) {
	uc.sender = sender
}

// IsAdmin reports whether the telegram user is a configured administrator
func (uc *UseCase) IsAdmin(telegramID int64) bool {
	for _, id := range uc.adminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

// RegisterUser creates the user record on first contact and returns it
func (uc *UseCase) RegisterUser(ctx context.Context, telegramID int64, fullName string) (*entities.User, error) {
	user, err := uc.users.GetOrCreate(ctx, telegramID, fullName)
	if err != nil {
		uc.logger.Error().Err(err).Int64("user_id", telegramID).Msg("Failed to register user")
		return nil, err
	}

	uc.logger.Info().
		Int64("user_id", telegramID).
		Str("full_name", fullName).
		Msg("User registered")

	return user, nil
}

// GetUser retrieves the user by telegram ID
func (uc *UseCase) GetUser(ctx context.Context, telegramID int64) (*entities.User, error) {
	return uc.users.GetByTelegramID(ctx, telegramID)
}

// SavePhone stores the phone number shared via the contact button
func (uc *UseCase) SavePhone(ctx context.Context, telegramID int64, phone string) error {
	if err := uc.users.SetPhone(ctx, telegramID, phone); err != nil {
		uc.logger.Error().Err(err).Int64("user_id", telegramID).Msg("Failed to save phone")
		return err
	}

	uc.logger.Info().Int64("user_id", telegramID).Msg("Phone number saved")
	return nil
}

// Categories returns all catalog categories
func (uc *UseCase) Categories(ctx context.Context) ([]entities.Category, error) {
	return uc.catalog.ListCategories(ctx)
}

// CategoryProducts returns active products of the category
func (uc *UseCase) CategoryProducts(ctx context.Context, categoryID uint) ([]entities.Product, error) {
	return uc.catalog.ListProductsByCategory(ctx, categoryID)
}

// Product returns a single product
func (uc *UseCase) Product(ctx context.Context, id uint) (*entities.Product, error) {
	return uc.catalog.GetProduct(ctx, id)
}

// CartSummary prices the cart against current product records. Products that
// have been removed or disabled since they were added are left out.
func (uc *UseCase) CartSummary(ctx context.Context, telegramID int64, items []cart.Item) (*dto.CartView, error) {
	user, err := uc.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	products, err := uc.catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]entities.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	view := &dto.CartView{}
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok || !p.IsActive {
			continue
		}
		line := dto.CartLine{
			ProductID: p.ID,
			Title:     p.Title,
			UnitPrice: p.Price,
			Qty:       it.Qty,
			LineTotal: pricing.LineTotal(p.Price, it.Qty),
		}
		view.Lines = append(view.Lines, line)
		view.Total = view.Total.Add(line.LineTotal)
	}

	subscribed := user.Subscribed(time.Now())
	view.Payable = pricing.DiscountedTotal(view.Total, subscribed)
	view.Discounted = subscribed && len(view.Lines) > 0

	return view, nil
}

// PlaceOrderInput carries everything collected by the checkout wizard.
type PlaceOrderInput struct {
	TelegramID    int64
	Items         []cart.Item
	Address       string
	Comment       string
	PaymentMethod string
}

// PlaceOrder finalizes a checkout: it re-reads the products, snapshots titles
// and prices into order items, applies the subscriber discount and persists
// the order atomically.
func (uc *UseCase) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*entities.Order, error) {
	user, err := uc.users.GetByTelegramID(ctx, input.TelegramID)
	if err != nil {
		return nil, err
	}

	if !user.HasPhone() {
		return nil, shoperrors.ErrPhoneRequired
	}

	if len(input.Items) == 0 {
		return nil, shoperrors.ErrEmptyCart
	}

	ids := make([]uint, 0, len(input.Items))
	for _, it := range input.Items {
		ids = append(ids, it.ProductID)
	}

	products, err := uc.catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]entities.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var (
		orderItems []entities.OrderItem
		lines      []pricing.Line
		titles     []string
	)
	for _, it := range input.Items {
		p, ok := byID[it.ProductID]
		if !ok || !p.IsActive {
			// dropped from the catalog mid-checkout
			continue
		}
		productID := p.ID
		orderItems = append(orderItems, entities.OrderItem{
			ProductID: &productID,
			Title:     p.Title,
			Qty:       it.Qty,
			ItemPrice: p.Price,
		})
		lines = append(lines, pricing.Line{UnitPrice: p.Price, Qty: it.Qty})
		titles = append(titles, p.Title)
	}

	if len(orderItems) == 0 {
		return nil, shoperrors.ErrEmptyCart
	}

	total := pricing.OrderTotal(lines)
	payable := pricing.DiscountedTotal(total, user.Subscribed(time.Now()))

	if !pricing.MeetsMinimum(payable) {
		return nil, shoperrors.ErrOrderBelowMinimum
	}

	order := &entities.Order{
		UserID:        user.ID,
		Status:        consts.OrderStatusAccepted,
		Title:         orderTitle(titles),
		TotalPrice:    payable,
		PaymentMethod: input.PaymentMethod,
		Address:       input.Address,
		Comment:       input.Comment,
		Items:         orderItems,
	}

	if err := uc.orders.CreateWithItems(ctx, order); err != nil {
		uc.logger.Error().Err(err).Int64("user_id", input.TelegramID).Msg("Failed to create order")
		return nil, err
	}

	uc.logger.Info().
		Uint("order_id", order.ID).
		Int64("user_id", input.TelegramID).
		Str("total", order.TotalPrice.String()).
		Msg("Order created")

	if err := uc.producer.SendOrderCreated(ctx, order); err != nil {
		uc.logger.Error().Err(err).Uint("order_id", order.ID).Msg("Failed to publish order created event")
	}

	uc.notifyAdmins(ctx, newOrderNotification(order, user))

	return order, nil
}

// orderTitle builds a human readable order title from its item titles.
func orderTitle(titles []string) string {
	title := strings.Join(titles, ", ")
	if len([]rune(title)) > 120 {
		title = string([]rune(title)[:117]) + "..."
	}
	return title
}

func newOrderNotification(order *entities.Order, user *entities.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🆕 <b>Новый заказ #%d</b>\n\n", order.ID)
	fmt.Fprintf(&b, "Клиент: %s\n", user.FullName)
	if user.HasPhone() {
		fmt.Fprintf(&b, "Телефон: %s\n", *user.Phone)
	}
	fmt.Fprintf(&b, "Адрес: %s\n", order.Address)
	if order.Comment != "" {
		fmt.Fprintf(&b, "Комментарий: %s\n", order.Comment)
	}
	b.WriteString("\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %s × %d — %s ₽\n", item.Title, item.Qty, item.ItemPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nИтого: <b>%s ₽</b>", order.TotalPrice.StringFixed(2))
	return b.String()
}

// notifyAdmins delivers the message to every configured administrator.
// A failure for one recipient is logged and does not stop the rest.
func (uc *UseCase) notifyAdmins(ctx context.Context, text string) {
	if uc.sender == nil {
		uc.logger.Error().Msg("TelegramSender is not set")
		return
	}

	for _, adminID := range uc.adminIDs {
		if err := uc.sender.SendMessage(ctx, adminID, text); err != nil {
			uc.logger.Error().Err(err).Int64("admin_id", adminID).Msg("Failed to notify admin")
		}
	}
}

// OrderInvoice builds a payment invoice for the priced cart.
func (uc *UseCase) OrderInvoice(view *dto.CartView) dto.InvoiceSpec {
	prices := make([]dto.PriceItem, 0, len(view.Lines))
	for _, line := range view.Lines {
		prices = append(prices, dto.PriceItem{
			Label:  fmt.Sprintf("%s × %d", line.Title, line.Qty),
			Amount: int(line.LineTotal.Mul(decimal.NewFromInt(100)).IntPart()),
		})
	}
	if view.Discounted {
		discount := view.Payable.Sub(view.Total)
		prices = append(prices, dto.PriceItem{
			Label:  "Скидка по подписке 15%",
			Amount: int(discount.Mul(decimal.NewFromInt(100)).IntPart()),
		})
	}

	return dto.InvoiceSpec{
		Payload:     uuid.NewString(),
		Title:       "Оплата заказа",
		Description: "Оплата товаров в корзине",
		Currency:    uc.payments.Currency,
		Prices:      prices,
	}
}

// SubscriptionInvoice builds a Telegram Stars invoice for the subscription.
func (uc *UseCase) SubscriptionInvoice() dto.InvoiceSpec {
	return dto.InvoiceSpec{
		Payload:     uuid.NewString(),
		Title:       "Подписка",
		Description: fmt.Sprintf("Скидка 15%% на все заказы на %d дней", uc.payments.SubscriptionDuration),
		Currency:    "XTR",
		Prices: []dto.PriceItem{
			{Label: "Подписка", Amount: uc.payments.SubscriptionStars},
		},
	}
}

// PurchaseSubscription records a paid subscription and extends the user's
// expiry. An unexpired subscription is extended from its current end, an
// expired one from now.
func (uc *UseCase) PurchaseSubscription(ctx context.Context, telegramID int64, starsSpent int) (*entities.Subscription, error) {
	user, err := uc.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	base := now
	if user.SubscriptionEnd != nil && user.SubscriptionEnd.After(now) {
		base = *user.SubscriptionEnd
	}
	expiresAt := base.AddDate(0, 0, uc.payments.SubscriptionDuration)

	sub := &entities.Subscription{
		UserID:     user.ID,
		FullName:   user.FullName,
		ExpiresAt:  expiresAt,
		StarsSpent: starsSpent,
	}
	// the expiry and the purchase record are committed together
	if err := uc.subscriptions.Purchase(ctx, user.ID, sub); err != nil {
		uc.logger.Error().Err(err).Int64("user_id", telegramID).Msg("Failed to record subscription purchase")
		return nil, err
	}

	uc.logger.Info().
		Int64("user_id", telegramID).
		Time("expires_at", expiresAt).
		Msg("Subscription purchased")

	if err := uc.producer.SendSubscriptionPurchased(ctx, sub); err != nil {
		uc.logger.Error().Err(err).Int64("user_id", telegramID).Msg("Failed to publish subscription event")
	}

	return sub, nil
}
