package pricing

import (
	"github.com/corray333/backend-labs/storefront/internal/service/models/cart"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/models/settings"
)

// PriceLookup resolves the current unit price of a menu item in cents.
// ok is false when the item is not sold anymore.
type PriceLookup func(itemID string) (priceCents int64, ok bool)

// Config holds the delivery fee thresholds.
type Config struct {
	DeliveryFeeCents      int64
	FreeDeliveryFromCents int64
	MinOrderAmountCents   int64
}

// ConfigFromSettings extracts the pricing thresholds from restaurant settings.
func ConfigFromSettings(s settings.Settings) Config {
	return Config{
		DeliveryFeeCents:      s.DeliveryFeeCents,
		FreeDeliveryFromCents: s.FreeDeliveryFromCents,
		MinOrderAmountCents:   s.MinOrderAmountCents,
	}
}

// PricedLine is a cart line with its resolved unit price.
type PricedLine struct {
	ItemID         string `json:"itemId"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	LineTotalCents int64  `json:"lineTotalCents"`
}

// Totals is the result of pricing a cart.
type Totals struct {
	Lines            []PricedLine `json:"lines"`
	SubtotalCents    int64        `json:"subtotalCents"`
	DeliveryFeeCents int64        `json:"deliveryFeeCents"`
	TotalCents       int64        `json:"totalCents"`
}

// ComputeTotals prices the lines. Lines whose item cannot be resolved or
// whose quantity is below one are dropped.
func ComputeTotals(
	lines []cart.Line,
	lookup PriceLookup,
	deliveryType order.DeliveryType,
	cfg Config,
) Totals {
	totals := Totals{Lines: make([]PricedLine, 0, len(lines))}
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		price, ok := lookup(line.ItemID)
		if !ok {
			continue
		}
		lineTotal := price * int64(line.Quantity)
		totals.Lines = append(totals.Lines, PricedLine{
			ItemID:         line.ItemID,
			Quantity:       line.Quantity,
			UnitPriceCents: price,
			LineTotalCents: lineTotal,
		})
		totals.SubtotalCents += lineTotal
	}

	totals.DeliveryFeeCents = DeliveryFee(totals.SubtotalCents, deliveryType, cfg)
	totals.TotalCents = totals.SubtotalCents + totals.DeliveryFeeCents

	return totals
}

// DeliveryFee returns the fee for a subtotal. Pickup is always free.
func DeliveryFee(subtotalCents int64, deliveryType order.DeliveryType, cfg Config) int64 {
	if deliveryType == order.DeliveryTypePickup {
		return 0
	}
	if subtotalCents >= cfg.FreeDeliveryFromCents {
		return 0
	}

	return cfg.DeliveryFeeCents
}

// MeetsMinimum reports whether the subtotal reaches the minimum order amount.
func (t Totals) MeetsMinimum(cfg Config) bool {
	return t.SubtotalCents >= cfg.MinOrderAmountCents
}
