// Package session keeps per-chat conversational state in memory. The bot
// restores nothing across restarts, so a lost session only costs the user a
// restarted wizard.
package session

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/makarov13/gastrobot/internal/domain/shop/cart"
	"github.com/makarov13/gastrobot/internal/domain/shop/checkout"
)

// AdminStep tracks progress through the admin catalog wizards.
type AdminStep int

const (
	AdminIdle AdminStep = iota
	AdminCategoryTitle
	AdminProductTitle
	AdminProductDescription
	AdminProductPrice
	AdminProductCategory
	AdminProductPhoto
	AdminProductConfirm
)

// ProductDraft accumulates wizard input before the product is saved.
type ProductDraft struct {
	Title       string
	Description *string
	Price       decimal.Decimal
	CategoryID  *uint
	PhotoFileID *string
}

// Session is the mutable state of one chat. Callers must hold the session
// lock while reading or writing fields.
type Session struct {
	sync.Mutex

	Cart *cart.Cart

	Checkout       checkout.State
	Address        string
	Comment        string
	InvoicePayload string
	// PendingInvoiceMessageID is the last unpaid invoice message, retracted
	// once paid or superseded by a newer invoice.
	PendingInvoiceMessageID int

	AdminStep      AdminStep
	Draft          ProductDraft
	EditProductID  uint
	EditCategoryID uint
}

// ResetCheckout drops checkout progress but keeps the cart, so a canceled
// wizard returns the user to an intact cart.
func (s *Session) ResetCheckout() {
	s.Checkout = checkout.StateIdle
	s.Address = ""
	s.Comment = ""
	s.InvoicePayload = ""
	s.PendingInvoiceMessageID = 0
}

// ResetAdmin drops admin wizard progress.
func (s *Session) ResetAdmin() {
	s.AdminStep = AdminIdle
	s.Draft = ProductDraft{}
	s.EditProductID = 0
	s.EditCategoryID = 0
}

// Store maps chat IDs to sessions, creating them on first access.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns the session for chatID, allocating one if needed.
func (st *Store) Get(chatID int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[chatID]
	if !ok {
		s = &Session{Cart: cart.New()}
		st.sessions[chatID] = s
	}
	return s
}

// Drop removes the session for chatID entirely.
func (st *Store) Drop(chatID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, chatID)
}
