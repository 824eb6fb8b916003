// Package pricing contains pure fixed-point price computation
package pricing

import "github.com/shopspring/decimal"

// Pricing constants
var (
	// DiscountRate is the flat subscriber discount
	DiscountRate = decimal.RequireFromString("0.15")

	// MinOrderTotal is the minimum discounted total allowed to proceed
	// to checkout
	MinOrderTotal = decimal.NewFromInt(1000)
)

// SubscriptionDays is how long one subscription purchase lasts
const SubscriptionDays = 30

// Line is a priced cart line
type Line struct {
	UnitPrice decimal.Decimal
	Qty       int
}

// LineTotal computes unit price times quantity, exact
func LineTotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty)))
}

// OrderTotal sums the line totals
func OrderTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(LineTotal(line.UnitPrice, line.Qty))
	}
	return total
}

// DiscountedTotal applies the flat subscriber discount to the full total,
// rounded to 2 decimals half-up. The input must be the undiscounted total;
// the discount is applied exactly once per order.
func DiscountedTotal(total decimal.Decimal, subscribed bool) decimal.Decimal {
	if !subscribed {
		return total
	}
	return total.Mul(decimal.NewFromInt(1).Sub(DiscountRate)).Round(2)
}

// MeetsMinimum reports whether the discounted total clears the checkout
// threshold
func MeetsMinimum(discountedTotal decimal.Decimal) bool {
	return discountedTotal.GreaterThanOrEqual(MinOrderTotal)
}
