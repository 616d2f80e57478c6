package cart

import "sync"

// Line is a single cart entry referencing a menu item.
type Line struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// Cart is the customer's in-progress selection. It is safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

// New creates a cart holding the given lines.
func New(lines ...Line) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.Quantity > 0 {
			c.lines = append(c.lines, l)
		}
	}

	return c
}

// Add puts one more unit of the item into the cart.
func (c *Cart) Add(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines[i].Quantity++

			return
		}
	}
	c.lines = append(c.lines, Line{ItemID: itemID, Quantity: 1})
}

// Remove drops the item regardless of its quantity.
func (c *Cart) Remove(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.ItemID != itemID {
			kept = append(kept, l)
		}
	}
	c.lines = kept
}

// UpdateQuantity changes the quantity by delta. Lines reaching zero are removed.
func (c *Cart) UpdateQuantity(itemID string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.ItemID == itemID {
			l.Quantity = max(0, l.Quantity+delta)
		}
		if l.Quantity > 0 {
			kept = append(kept, l)
		}
	}
	c.lines = kept
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)

	return out
}

// ItemCount is the sum of all quantities.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}

	return n
}

func (c *Cart) IsEmpty() bool {
	return c.ItemCount() == 0
}
