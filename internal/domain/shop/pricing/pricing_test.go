package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineTotal(t *testing.T) {
	assert.True(t, d("1200.00").Equal(LineTotal(d("600.00"), 2)))
	assert.True(t, d("300.00").Equal(LineTotal(d("300.00"), 1)))
}

func TestOrderTotal(t *testing.T) {
	lines := []Line{
		{UnitPrice: d("600.00"), Qty: 2},
		{UnitPrice: d("300.00"), Qty: 1},
	}

	assert.True(t, d("1500.00").Equal(OrderTotal(lines)))
}

func TestDiscountedTotal_NotSubscribed(t *testing.T) {
	assert.True(t, d("1500.00").Equal(DiscountedTotal(d("1500.00"), false)))
}

func TestDiscountedTotal_Subscribed(t *testing.T) {
	assert.True(t, d("1275.00").Equal(DiscountedTotal(d("1500.00"), true)))
}

func TestDiscountedTotal_RoundsHalfUp(t *testing.T) {
	// 999.99 * 0.85 = 849.9915 -> 849.99
	assert.True(t, d("849.99").Equal(DiscountedTotal(d("999.99"), true)))
	// 100.03 * 0.85 = 85.0255 -> 85.03
	assert.True(t, d("85.03").Equal(DiscountedTotal(d("100.03"), true)))
}

func TestDiscountedTotal_AppliedExactlyOnce(t *testing.T) {
	total := d("1500.00")

	once := DiscountedTotal(total, true)
	twice := DiscountedTotal(once, true)

	// Re-applying to the already-discounted value is a double discount,
	// not the business value for the order
	assert.True(t, once.Equal(d("1275.00")))
	assert.False(t, twice.Equal(once))
	assert.True(t, twice.Equal(d("1083.75")))
}

func TestMeetsMinimum(t *testing.T) {
	assert.True(t, MeetsMinimum(d("1000.00")))
	assert.True(t, MeetsMinimum(d("1500.00")))
	assert.False(t, MeetsMinimum(d("999.99")))
	assert.False(t, MeetsMinimum(d("800.00")))
}

func TestMeetsMinimum_DiscountCanDropBelowThreshold(t *testing.T) {
	// 1100 passes undiscounted, but a subscriber pays 935 and is refused
	total := d("1100.00")

	assert.True(t, MeetsMinimum(DiscountedTotal(total, false)))
	assert.False(t, MeetsMinimum(DiscountedTotal(total, true)))
}
