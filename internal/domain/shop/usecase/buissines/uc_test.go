package buissines

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makarov13/gastrobot/config"
	"github.com/makarov13/gastrobot/internal/domain/shop/cart"
	"github.com/makarov13/gastrobot/internal/domain/shop/consts"
	"github.com/makarov13/gastrobot/internal/domain/shop/dto"
	"github.com/makarov13/gastrobot/internal/domain/shop/entities"
	shoperrors "github.com/makarov13/gastrobot/internal/domain/shop/errors"
)

type fakeUsers struct {
	byTelegramID map[int64]*entities.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byTelegramID: make(map[int64]*entities.User)}
}

func (f *fakeUsers) GetOrCreate(_ context.Context, telegramID int64, fullName string) (*entities.User, error) {
	if u, ok := f.byTelegramID[telegramID]; ok {
		return u, nil
	}
	u := &entities.User{
		ID:         uint(len(f.byTelegramID) + 1),
		TelegramID: telegramID,
		FullName:   fullName,
		CreatedAt:  time.Now(),
	}
	f.byTelegramID[telegramID] = u
	return u, nil
}

func (f *fakeUsers) GetByTelegramID(_ context.Context, telegramID int64) (*entities.User, error) {
	if u, ok := f.byTelegramID[telegramID]; ok {
		return u, nil
	}
	return nil, shoperrors.ErrUserNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id uint) (*entities.User, error) {
	for _, u := range f.byTelegramID {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, shoperrors.ErrUserNotFound
}

func (f *fakeUsers) SetPhone(_ context.Context, telegramID int64, phone string) error {
	u, ok := f.byTelegramID[telegramID]
	if !ok {
		return shoperrors.ErrUserNotFound
	}
	u.Phone = &phone
	return nil
}

func (f *fakeUsers) Count(_ context.Context) (int64, error) {
	return int64(len(f.byTelegramID)), nil
}

func (f *fakeUsers) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, u := range f.byTelegramID {
		if !u.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type fakeCatalog struct {
	products map[uint]entities.Product
}

func newFakeCatalog(products ...entities.Product) *fakeCatalog {
	f := &fakeCatalog{products: make(map[uint]entities.Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeCatalog) CreateCategory(_ context.Context, title string) (*entities.Category, error) {
	return &entities.Category{ID: 1, Title: title}, nil
}
func (f *fakeCatalog) GetCategory(_ context.Context, id uint) (*entities.Category, error) {
	return nil, shoperrors.ErrCategoryNotFound
}
func (f *fakeCatalog) ListCategories(_ context.Context) ([]entities.Category, error) {
	return nil, nil
}
func (f *fakeCatalog) UpdateCategoryTitle(_ context.Context, id uint, title string) error {
	return nil
}
func (f *fakeCatalog) DeleteCategory(_ context.Context, id uint) error { return nil }
func (f *fakeCatalog) CreateProduct(_ context.Context, p *entities.Product) error {
	p.ID = uint(len(f.products) + 1)
	f.products[p.ID] = *p
	return nil
}
func (f *fakeCatalog) GetProduct(_ context.Context, id uint) (*entities.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, shoperrors.ErrProductNotFound
	}
	return &p, nil
}
func (f *fakeCatalog) ListProductsByCategory(_ context.Context, categoryID uint) ([]entities.Product, error) {
	return nil, nil
}
func (f *fakeCatalog) ListProducts(_ context.Context, active bool) ([]entities.Product, error) {
	var out []entities.Product
	for _, p := range f.products {
		if p.IsActive == active {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeCatalog) GetProductsByIDs(_ context.Context, ids []uint) ([]entities.Product, error) {
	var out []entities.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeCatalog) UpdateProduct(_ context.Context, p *entities.Product) error {
	f.products[p.ID] = *p
	return nil
}
func (f *fakeCatalog) SetProductActive(_ context.Context, id uint, active bool) error {
	p, ok := f.products[id]
	if !ok {
		return shoperrors.ErrProductNotFound
	}
	p.IsActive = active
	f.products[id] = p
	return nil
}

type fakeOrders struct {
	orders map[uint]*entities.Order
	nextID uint
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: make(map[uint]*entities.Order), nextID: 1}
}

func (f *fakeOrders) CreateWithItems(_ context.Context, order *entities.Order) error {
	order.ID = f.nextID
	f.nextID++
	order.CreatedAt = time.Now()
	f.orders[order.ID] = order
	return nil
}
func (f *fakeOrders) GetByID(_ context.Context, id uint) (*entities.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, shoperrors.ErrOrderNotFound
	}
	return o, nil
}
func (f *fakeOrders) ListActive(_ context.Context) ([]dto.OrderSummary, error) { return nil, nil }
func (f *fakeOrders) ListAll(_ context.Context) ([]entities.Order, error) {
	var out []entities.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}
func (f *fakeOrders) UpdateStatus(_ context.Context, id uint, status string) error {
	o, ok := f.orders[id]
	if !ok {
		return shoperrors.ErrOrderNotFound
	}
	o.Status = status
	return nil
}
func (f *fakeOrders) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, o := range f.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}
func (f *fakeOrders) Count(_ context.Context) (int64, error) { return int64(len(f.orders)), nil }
func (f *fakeOrders) Revenue(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, o := range f.orders {
		if o.Status == consts.OrderStatusCompleted {
			sum = sum.Add(o.TotalPrice)
		}
	}
	return sum, nil
}

type fakeSubs struct {
	users        *fakeUsers
	created      []*entities.Subscription
	failPurchase bool
}

func (f *fakeSubs) Purchase(_ context.Context, userID uint, sub *entities.Subscription) error {
	if f.failPurchase {
		return shoperrors.ErrDatabaseOperation
	}
	for _, u := range f.users.byTelegramID {
		if u.ID == userID {
			end := sub.ExpiresAt
			u.SubscriptionEnd = &end
			f.created = append(f.created, sub)
			return nil
		}
	}
	return shoperrors.ErrUserNotFound
}
func (f *fakeSubs) CountActive(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, s := range f.created {
		if s.ExpiresAt.After(now) {
			n++
		}
	}
	return n, nil
}

type fakeProducer struct {
	orderCreated  int
	statusChanged int
	subscriptions int
}

func (f *fakeProducer) SendOrderCreated(_ context.Context, _ *entities.Order) error {
	f.orderCreated++
	return nil
}
func (f *fakeProducer) SendOrderStatusChanged(_ context.Context, _ *entities.Order, _ string) error {
	f.statusChanged++
	return nil
}
func (f *fakeProducer) SendSubscriptionPurchased(_ context.Context, _ *entities.Subscription) error {
	f.subscriptions++
	return nil
}
func (f *fakeProducer) Close() error { return nil }

type fakeSender struct {
	sent    map[int64][]string
	failFor map[int64]bool
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(map[int64][]string), failFor: make(map[int64]bool)}
}

func (f *fakeSender) SendMessage(_ context.Context, chatID int64, text string) error {
	if f.failFor[chatID] {
		return shoperrors.ErrMessageDeliveryFailed
	}
	f.sent[chatID] = append(f.sent[chatID], text)
	return nil
}
func (f *fakeSender) SendInvoice(_ context.Context, _ int64, _ dto.InvoiceSpec) (int, error) {
	return 1, nil
}
func (f *fakeSender) SendDocument(_ context.Context, _ int64, _ string, _ []byte, _ string) error {
	return nil
}

type fixture struct {
	uc       *UseCase
	users    *fakeUsers
	catalog  *fakeCatalog
	orders   *fakeOrders
	subs     *fakeSubs
	producer *fakeProducer
	sender   *fakeSender
}

func newFixture(t *testing.T, products ...entities.Product) *fixture {
	t.Helper()

	f := &fixture{
		users:    newFakeUsers(),
		catalog:  newFakeCatalog(products...),
		orders:   newFakeOrders(),
		producer: &fakeProducer{},
		sender:   newFakeSender(),
	}
	f.subs = &fakeSubs{users: f.users}
	f.uc = NewUseCase(
		f.users, f.catalog, f.orders, f.subs, f.producer,
		&config.PaymentsConfig{Currency: "RUB", SubscriptionStars: 100, SubscriptionDuration: 30},
		&config.AdminConfig{IDs: []int64{1001, 1002}},
		zerolog.Nop(),
	)
	f.uc.SetSender(f.sender)
	return f
}

func (f *fixture) seedUser(t *testing.T, telegramID int64, withPhone bool) *entities.User {
	t.Helper()
	user, err := f.users.GetOrCreate(context.Background(), telegramID, "Иван Иванов")
	require.NoError(t, err)
	if withPhone {
		require.NoError(t, f.users.SetPhone(context.Background(), telegramID, "+79991112233"))
	}
	return user
}

func product(id uint, title string, price int64, active bool) entities.Product {
	return entities.Product{ID: id, Title: title, Price: decimal.NewFromInt(price), IsActive: active}
}

func TestPlaceOrder_SnapshotsItemsAndTotals(t *testing.T) {
	f := newFixture(t,
		product(1, "Маргарита", 550, true),
		product(2, "Морс", 150, true),
	)
	f.seedUser(t, 100, true)

	order, err := f.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		TelegramID:    100,
		Items:         []cart.Item{{ProductID: 1, Qty: 2}, {ProductID: 2, Qty: 1}},
		Address:       "Москва, ул. Ленина, д. 10",
		PaymentMethod: consts.PaymentMethodOnDelivery,
	})
	require.NoError(t, err)

	assert.Equal(t, consts.OrderStatusAccepted, order.Status)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(1250)), "total = %s", order.TotalPrice)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Маргарита", order.Items[0].Title)
	assert.True(t, order.Items[0].ItemPrice.Equal(decimal.NewFromInt(550)))
	assert.Equal(t, 1, f.producer.orderCreated)
}

func TestPlaceOrder_AppliesSubscriberDiscountOnce(t *testing.T) {
	f := newFixture(t, product(1, "Сет", 1500, true))
	user := f.seedUser(t, 100, true)

	end := time.Now().AddDate(0, 0, 10)
	user.SubscriptionEnd = &end

	order, err := f.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		TelegramID:    100,
		Items:         []cart.Item{{ProductID: 1, Qty: 1}},
		Address:       "Москва, ул. Ленина, д. 10",
		PaymentMethod: consts.PaymentMethodOnDelivery,
	})
	require.NoError(t, err)

	// 1500 * 0.85, not discounted twice
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(1275)), "total = %s", order.TotalPrice)
	// item prices stay undiscounted
	assert.True(t, order.Items[0].ItemPrice.Equal(decimal.NewFromInt(1500)))
}

func TestPlaceOrder_RejectsBelowMinimum(t *testing.T) {
	f := newFixture(t, product(1, "Морс", 150, true))
	f.seedUser(t, 100, true)

	_, err := f.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		TelegramID:    100,
		Items:         []cart.Item{{ProductID: 1, Qty: 2}},
		Address:       "Москва, ул. Ленина, д. 10",
		PaymentMethod: consts.PaymentMethodOnDelivery,
	})
	assert.ErrorIs(t, err, shoperrors.ErrOrderBelowMinimum)
}

func TestPlaceOrder_DiscountCanDropBelowMinimum(t *testing.T) {
	// 1100 passes the minimum undiscounted but 1100*0.85 = 935 does not
	f := newFixture(t, product(1, "Сет", 1100, true))
	user := f.seedUser(t, 100, true)

	end := time.Now().AddDate(0, 0, 10)
	user.SubscriptionEnd = &end

	_, err := f.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		TelegramID:    100,
		Items:         []cart.Item{{ProductID: 1, Qty: 1}},
		Address:       "Москва, ул. Ленина, д. 10",
		PaymentMethod: consts.PaymentMethodOnDelivery,
	})
	assert.ErrorIs(t, err, shoperrors.ErrOrderBelowMinimum)
}

func TestPlaceOrder_DropsStaleProducts(t *testing.T) {
	f := newFixture(t,
		product(1, "Маргарита", 1200, true),
		product(2, "Снятый товар", 500, false),
	)
	f.seedUser(t, 100, true)

	order, err := f.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		TelegramID:    100,
		Items:         []cart.Item{{ProductID: 1, Qty: 1}, {ProductID: 2, Qty: 3}, {ProductID: 99, Qty: 1}},
		Address:       "Москва, ул. Ленина, д. 10",
		PaymentMethod: consts.PaymentMethodOnDelivery,
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "Маргарита", order.Items[0].Title)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(1200)))
}

func TestPlaceOrder_AllItemsStaleIsEmptyCart(t *testing.T) {
	f := newFixture(t, product(1, "Снятый товар", 1500, false))
	f.seedUser(t, 100, true)

	_, err := f.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		TelegramID:    100,
		Items:         []cart.Item{{ProductID: 1, Qty: 1}},
		Address:       "Москва, ул. Ленина, д. 10",
		PaymentMethod: consts.PaymentMethodOnDelivery,
	})
	assert.ErrorIs(t, err, shoperrors.ErrEmptyCart)
}

func TestPlaceOrder_RequiresPhone(t *testing.T) {
	f := newFixture(t, product(1, "Сет", 1500, true))
	f.seedUser(t, 100, false)

	_, err := f.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		TelegramID:    100,
		Items:         []cart.Item{{ProductID: 1, Qty: 1}},
		Address:       "Москва, ул. Ленина, д. 10",
		PaymentMethod: consts.PaymentMethodOnDelivery,
	})
	assert.ErrorIs(t, err, shoperrors.ErrPhoneRequired)
}

func TestPlaceOrder_AdminFanOutSurvivesFailures(t *testing.T) {
	f := newFixture(t, product(1, "Сет", 1500, true))
	f.seedUser(t, 100, true)

	// first admin is unreachable, second must still hear about the order
	f.sender.failFor[1001] = true

	_, err := f.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		TelegramID:    100,
		Items:         []cart.Item{{ProductID: 1, Qty: 1}},
		Address:       "Москва, ул. Ленина, д. 10",
		PaymentMethod: consts.PaymentMethodOnDelivery,
	})
	require.NoError(t, err)

	assert.Empty(t, f.sender.sent[1001])
	assert.Len(t, f.sender.sent[1002], 1)
}

func TestCartSummary_DiscountAndStaleSkips(t *testing.T) {
	f := newFixture(t,
		product(1, "Сет", 1000, true),
		product(2, "Снятый товар", 500, false),
	)
	user := f.seedUser(t, 100, true)

	end := time.Now().AddDate(0, 0, 10)
	user.SubscriptionEnd = &end

	view, err := f.uc.CartSummary(context.Background(), 100,
		[]cart.Item{{ProductID: 1, Qty: 1}, {ProductID: 2, Qty: 2}})
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	assert.True(t, view.Total.Equal(decimal.NewFromInt(1000)))
	assert.True(t, view.Payable.Equal(decimal.NewFromInt(850)), "payable = %s", view.Payable)
	assert.True(t, view.Discounted)
}

func TestPurchaseSubscription_FreshStart(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, 100, true)

	before := time.Now()
	sub, err := f.uc.PurchaseSubscription(context.Background(), 100, 100)
	require.NoError(t, err)

	assert.WithinDuration(t, before.AddDate(0, 0, 30), sub.ExpiresAt, 5*time.Second)
	assert.Equal(t, 100, sub.StarsSpent)
	assert.Equal(t, 1, f.producer.subscriptions)

	// the entitlement lands together with the purchase record
	user, err := f.users.GetByTelegramID(context.Background(), 100)
	require.NoError(t, err)
	require.NotNil(t, user.SubscriptionEnd)
	assert.True(t, user.SubscriptionEnd.Equal(sub.ExpiresAt))
}

func TestPurchaseSubscription_FailedPurchaseLeavesNoEntitlement(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 100, true)
	f.subs.failPurchase = true

	_, err := f.uc.PurchaseSubscription(context.Background(), 100, 100)
	require.Error(t, err)

	assert.Nil(t, user.SubscriptionEnd)
	assert.Empty(t, f.subs.created)
	assert.Zero(t, f.producer.subscriptions)
}

func TestPurchaseSubscription_ExtendsFromCurrentEnd(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 100, true)

	current := time.Now().AddDate(0, 0, 10)
	user.SubscriptionEnd = &current

	sub, err := f.uc.PurchaseSubscription(context.Background(), 100, 100)
	require.NoError(t, err)

	assert.WithinDuration(t, current.AddDate(0, 0, 30), sub.ExpiresAt, time.Second)
}

func TestPurchaseSubscription_ExpiredRestartsFromNow(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, 100, true)

	expired := time.Now().AddDate(0, 0, -5)
	user.SubscriptionEnd = &expired

	before := time.Now()
	sub, err := f.uc.PurchaseSubscription(context.Background(), 100, 100)
	require.NoError(t, err)

	assert.WithinDuration(t, before.AddDate(0, 0, 30), sub.ExpiresAt, 5*time.Second)
}

func TestSubscriptionInvoice(t *testing.T) {
	f := newFixture(t)

	invoice := f.uc.SubscriptionInvoice()
	assert.Equal(t, "XTR", invoice.Currency)
	require.Len(t, invoice.Prices, 1)
	assert.Equal(t, 100, invoice.Prices[0].Amount)
	assert.NotEmpty(t, invoice.Payload)
}

func TestOrderInvoice_MinorUnitsAndDiscountLine(t *testing.T) {
	f := newFixture(t)

	view := &dto.CartView{
		Lines: []dto.CartLine{
			{ProductID: 1, Title: "Сет", Qty: 1, LineTotal: decimal.NewFromInt(1500)},
		},
		Total:      decimal.NewFromInt(1500),
		Payable:    decimal.NewFromInt(1275),
		Discounted: true,
	}

	invoice := f.uc.OrderInvoice(view)
	require.Len(t, invoice.Prices, 2)
	assert.Equal(t, 150000, invoice.Prices[0].Amount)
	assert.Equal(t, -22500, invoice.Prices[1].Amount)
	assert.Equal(t, "RUB", invoice.Currency)
}
