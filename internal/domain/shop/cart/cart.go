// Package cart contains the transient per-conversation cart
package cart

// Item is a cart line: a product reference with a positive quantity
type Item struct {
	ProductID uint
	Qty       int
}

// Cart maps product ids to quantities, preserving insertion order so that
// order titles list products in the order they were added. It never touches
// storage and never validates product existence; stale ids are dropped by
// the caller at read time.
type Cart struct {
	qty   map[uint]int
	order []uint
}

// New creates an empty cart
func New() *Cart {
	return &Cart{qty: make(map[uint]int)}
}

// Add increments the quantity of a product by one
func (c *Cart) Add(productID uint) {
	if _, ok := c.qty[productID]; !ok {
		c.order = append(c.order, productID)
	}
	c.qty[productID]++
}

// Adjust changes the quantity of a product by delta; a result of zero or
// less removes the entry entirely
func (c *Cart) Adjust(productID uint, delta int) {
	current, ok := c.qty[productID]
	if !ok {
		if delta > 0 {
			c.order = append(c.order, productID)
			c.qty[productID] = delta
		}
		return
	}

	next := current + delta
	if next <= 0 {
		c.Remove(productID)
		return
	}
	c.qty[productID] = next
}

// Remove deletes the entry unconditionally
func (c *Cart) Remove(productID uint) {
	if _, ok := c.qty[productID]; !ok {
		return
	}
	delete(c.qty, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Qty returns the quantity for a product, zero if absent
func (c *Cart) Qty(productID uint) int {
	return c.qty[productID]
}

// Snapshot returns the current entries in insertion order
func (c *Cart) Snapshot() []Item {
	items := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, Item{ProductID: id, Qty: c.qty[id]})
	}
	return items
}

// Empty reports whether the cart has no entries
func (c *Cart) Empty() bool {
	return len(c.qty) == 0
}

// Len returns the number of distinct products
func (c *Cart) Len() int {
	return len(c.qty)
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.qty = make(map[uint]int)
	c.order = nil
}
