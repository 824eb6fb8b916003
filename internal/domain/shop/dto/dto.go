// Package dto contains view models passed between the use case and delivery layers
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one product position in a rendered cart.
type CartLine struct {
	ProductID uint
	Title     string
	UnitPrice decimal.Decimal
	Qty       int
	LineTotal decimal.Decimal
}

// CartView is the cart with totals ready for display.
type CartView struct {
	Lines []CartLine
	// Total is the sum of line totals before any discount.
	Total decimal.Decimal
	// Payable is the total after the subscriber discount, when it applies.
	Payable    decimal.Decimal
	Discounted bool
}

// PriceItem mirrors a labeled amount of a payment invoice, in minor units.
type PriceItem struct {
	Label  string
	Amount int
}

// InvoiceSpec describes a payment invoice to be sent to the user.
type InvoiceSpec struct {
	Payload     string
	Title       string
	Description string
	Currency    string
	Prices      []PriceItem
}

// ProductInput carries product fields collected by the admin wizard.
type ProductInput struct {
	Title       string
	Description *string
	Price       decimal.Decimal
	CategoryID  *uint
	PhotoFileID *string
}

// OrderSummary is a short order line for admin lists.
type OrderSummary struct {
	ID         uint
	Status     string
	Title      string
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
}

// StatsReport aggregates store activity for the admin dashboard.
type StatsReport struct {
	TotalUsers          int64
	NewUsersToday       int64
	TotalOrders         int64
	InProgressOrders    int64
	CompletedOrders     int64
	CanceledOrders      int64
	Revenue             decimal.Decimal
	AverageOrderValue   decimal.Decimal
	ActiveSubscriptions int64
}

// ExportOrder is one order in the JSON stats export.
type ExportOrder struct {
	ID         uint         `json:"id"`
	UserID     uint         `json:"user_id"`
	Status     string       `json:"status"`
	Title      string       `json:"title"`
	TotalPrice string       `json:"total_price"`
	Payment    string       `json:"payment_method"`
	Address    string       `json:"address"`
	Comment    string       `json:"comment,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	Items      []ExportItem `json:"items"`
}

// ExportItem is one order position in the JSON stats export.
type ExportItem struct {
	Title     string `json:"title"`
	Qty       int    `json:"qty"`
	ItemPrice string `json:"item_price"`
}
