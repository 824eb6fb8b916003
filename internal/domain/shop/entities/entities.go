// Package entities contains storefront domain entities
package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a Telegram user of the storefront
type User struct {
	ID              uint       `gorm:"primaryKey"`
	TelegramID      int64      `gorm:"not null;uniqueIndex"`
	FullName        string     `gorm:"size:64"`
	Phone           *string    `gorm:"size:32"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	SubscriptionEnd *time.Time `gorm:"column:subscription_end"`
}

func (User) TableName() string {
	return "users"
}

// HasPhone reports whether the phone number was captured
func (u *User) HasPhone() bool {
	return u.Phone != nil && *u.Phone != ""
}

// Subscribed reports whether the user has an unexpired subscription at the given moment
func (u *User) Subscribed(now time.Time) bool {
	return u.SubscriptionEnd != nil && u.SubscriptionEnd.After(now)
}

// Category groups products in the catalog
type Category struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"size:120;not null;uniqueIndex"`
}

func (Category) TableName() string {
	return "categories"
}

// Product is a catalog item. A deactivated product keeps its row but loses
// its category link; historical orders reference it through snapshots only.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	CategoryID  *uint           `gorm:"index"`
	Title       string          `gorm:"size:120;not null"`
	Description *string         `gorm:"size:1024"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	IsActive    bool            `gorm:"not null;default:true"`
	PhotoFileID *string         `gorm:"size:256"`
}

func (Product) TableName() string {
	return "products"
}

// Order is a persisted purchase
type Order struct {
	ID            uint            `gorm:"primaryKey"`
	UserID        uint            `gorm:"not null;index"`
	Status        string          `gorm:"size:32;not null;default:accepted"`
	Title         string          `gorm:"size:120;not null"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	PaymentMethod string          `gorm:"size:32;not null"`
	Address       string          `gorm:"size:255;not null"`
	Comment       string          `gorm:"size:255"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line of an order. Title and ItemPrice are snapshots taken
// at order time; later product edits never change them.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"not null;index"`
	ProductID *uint           `gorm:"index"`
	Title     string          `gorm:"size:120;not null"`
	Qty       int             `gorm:"not null;default:1;check:qty > 0"`
	ItemPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// Subscription is an append-only purchase record; the active entitlement is
// derived from User.SubscriptionEnd, not from these rows.
type Subscription struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       uint      `gorm:"not null;index"`
	FullName     string    `gorm:"size:64"`
	PurchaseDate time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null"`
	StarsSpent   int       `gorm:"not null;default:0;check:stars_spent >= 0"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
