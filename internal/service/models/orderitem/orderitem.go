package orderitem

// OrderItem is an order line. Name and price are snapshotted from the menu
// when the order is created and never re-resolved afterwards.
type OrderItem struct {
	ID         int64  `json:"-"`
	OrderID    string `json:"-"`
	ItemID     string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
}

// LineTotalCents is price × quantity.
func (i OrderItem) LineTotalCents() int64 {
	return i.PriceCents * int64(i.Quantity)
}
