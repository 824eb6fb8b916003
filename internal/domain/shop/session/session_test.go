package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makarov13/gastrobot/internal/domain/shop/checkout"
)

func TestStore_GetCreatesOnce(t *testing.T) {
	st := NewStore()

	a := st.Get(42)
	require.NotNil(t, a)
	require.NotNil(t, a.Cart)

	b := st.Get(42)
	assert.Same(t, a, b)

	other := st.Get(43)
	assert.NotSame(t, a, other)
}

func TestStore_Drop(t *testing.T) {
	st := NewStore()

	a := st.Get(42)
	a.Cart.Add(1)

	st.Drop(42)

	b := st.Get(42)
	assert.NotSame(t, a, b)
	assert.True(t, b.Cart.Empty())
}

func TestSession_ResetCheckoutKeepsCart(t *testing.T) {
	st := NewStore()
	s := st.Get(1)

	s.Cart.Add(7)
	s.Checkout = checkout.StateCollectingComment
	s.Address = "Москва, ул. Ленина, д. 10"
	s.Comment = "позвоните"
	s.InvoicePayload = "payload"
	s.PendingInvoiceMessageID = 99

	s.ResetCheckout()

	assert.Equal(t, checkout.StateIdle, s.Checkout)
	assert.Empty(t, s.Address)
	assert.Empty(t, s.Comment)
	assert.Empty(t, s.InvoicePayload)
	assert.Zero(t, s.PendingInvoiceMessageID)
	assert.Equal(t, 1, s.Cart.Qty(7))
}

func TestSession_ResetAdmin(t *testing.T) {
	st := NewStore()
	s := st.Get(1)

	s.AdminStep = AdminProductPrice
	s.Draft.Title = "Паста"
	s.EditProductID = 5

	s.ResetAdmin()

	assert.Equal(t, AdminIdle, s.AdminStep)
	assert.Empty(t, s.Draft.Title)
	assert.Zero(t, s.EditProductID)
}

func TestStore_ConcurrentGet(t *testing.T) {
	st := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s := st.Get(id % 4)
			s.Lock()
			s.Cart.Add(uint(id))
			s.Unlock()
		}(int64(i))
	}
	wg.Wait()

	total := 0
	for id := int64(0); id < 4; id++ {
		total += st.Get(id).Cart.Len()
	}
	assert.Equal(t, 32, total)
}
