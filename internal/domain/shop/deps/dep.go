// Package deps contains interface definitions for the shop domain dependencies
package deps

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/makarov13/gastrobot/internal/domain/shop/dto"
	"github.com/makarov13/gastrobot/internal/domain/shop/entities"
)

// UserRepository defines interface for user data access
type UserRepository interface {
	// GetOrCreate returns the user with the given telegram ID, creating it on first contact
	GetOrCreate(ctx context.Context, telegramID int64, fullName string) (*entities.User, error)

	// GetByTelegramID retrieves a user by telegram ID
	GetByTelegramID(ctx context.Context, telegramID int64) (*entities.User, error)

	// GetByID retrieves a user by primary key
	GetByID(ctx context.Context, id uint) (*entities.User, error)

	// SetPhone stores the user's phone number
	SetPhone(ctx context.Context, telegramID int64, phone string) error

	// Count returns the total number of registered users
	Count(ctx context.Context) (int64, error)

	// CountCreatedSince returns the number of users registered at or after the given moment
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// CatalogRepository defines interface for category and product data access
type CatalogRepository interface {
	// CreateCategory creates a new category with a unique title
	CreateCategory(ctx context.Context, title string) (*entities.Category, error)

	// GetCategory retrieves a category by ID
	GetCategory(ctx context.Context, id uint) (*entities.Category, error)

	// ListCategories returns all categories ordered by title
	ListCategories(ctx context.Context) ([]entities.Category, error)

	// UpdateCategoryTitle renames a category
	UpdateCategoryTitle(ctx context.Context, id uint, title string) error

	// DeleteCategory removes a category, detaching and deactivating its products in one transaction
	DeleteCategory(ctx context.Context, id uint) error

	// CreateProduct creates a new product
	CreateProduct(ctx context.Context, product *entities.Product) error

	// GetProduct retrieves a product by ID
	GetProduct(ctx context.Context, id uint) (*entities.Product, error)

	// ListProductsByCategory returns active products of a category
	ListProductsByCategory(ctx context.Context, categoryID uint) ([]entities.Product, error)

	// ListProducts returns products filtered by activity flag
	ListProducts(ctx context.Context, active bool) ([]entities.Product, error)

	// GetProductsByIDs retrieves products by a set of IDs, including inactive ones
	GetProductsByIDs(ctx context.Context, ids []uint) ([]entities.Product, error)

	// UpdateProduct saves changed product fields
	UpdateProduct(ctx context.Context, product *entities.Product) error

	// SetProductActive toggles product visibility
	SetProductActive(ctx context.Context, id uint, active bool) error
}

// OrderRepository defines interface for order data access
type OrderRepository interface {
	// CreateWithItems persists an order and its items atomically
	CreateWithItems(ctx context.Context, order *entities.Order) error

	// GetByID retrieves an order with its items
	GetByID(ctx context.Context, id uint) (*entities.Order, error)

	// ListActive returns orders that are not yet completed or canceled
	ListActive(ctx context.Context) ([]dto.OrderSummary, error)

	// ListAll returns every order with items, newest first
	ListAll(ctx context.Context) ([]entities.Order, error)

	// UpdateStatus moves an order to a new status
	UpdateStatus(ctx context.Context, id uint, status string) error

	// CountByStatus returns the number of orders in the given status
	CountByStatus(ctx context.Context, status string) (int64, error)

	// Count returns the total number of orders
	Count(ctx context.Context) (int64, error)

	// Revenue sums the totals of completed orders
	Revenue(ctx context.Context) (decimal.Decimal, error)
}

// SubscriptionRepository defines interface for subscription purchase records
type SubscriptionRepository interface {
	// Purchase moves the user's subscription expiry and stores the purchase
	// record in a single transaction
	Purchase(ctx context.Context, userID uint, sub *entities.Subscription) error

	// CountActive returns the number of subscriptions not yet expired at the given moment
	CountActive(ctx context.Context, now time.Time) (int64, error)
}

// TelegramSender defines interface for sending messages via Telegram
// This interface is used to break the cyclic dependency between UseCase and the handlers
type TelegramSender interface {
	// SendMessage sends a text message to a chat
	SendMessage(ctx context.Context, chatID int64, text string) error

	// SendInvoice sends a payment invoice to a chat and returns the message ID
	// of the invoice, so a stale invoice can be removed later
	SendInvoice(ctx context.Context, chatID int64, invoice dto.InvoiceSpec) (messageID int, err error)

	// SendDocument sends an in-memory file to a chat
	SendDocument(ctx context.Context, chatID int64, filename string, data []byte, caption string) error
}

// OrderEventProducer defines interface for publishing shop events to Kafka
type OrderEventProducer interface {
	// SendOrderCreated publishes an order created event
	SendOrderCreated(ctx context.Context, order *entities.Order) error

	// SendOrderStatusChanged publishes an order status change event
	SendOrderStatusChanged(ctx context.Context, order *entities.Order, oldStatus string) error

	// SendSubscriptionPurchased publishes a subscription purchase event
	SendSubscriptionPurchased(ctx context.Context, sub *entities.Subscription) error

	// Close closes the producer
	Close() error
}
