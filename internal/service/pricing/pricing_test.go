package pricing

import (
	"testing"

	"github.com/corray333/backend-labs/storefront/internal/service/models/cart"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/models/settings"
)

func catalog(prices map[string]int64) PriceLookup {
	return func(id string) (int64, bool) {
		p, ok := prices[id]

		return p, ok
	}
}

func TestComputeTotals(t *testing.T) {
	cfg := ConfigFromSettings(settings.Default())
	lookup := catalog(map[string]int64{
		"m1":  2600,
		"sc3": 500,
		"d2":  1250,
	})

	tests := []struct {
		name         string
		lines        []cart.Line
		deliveryType order.DeliveryType
		wantSubtotal int64
		wantFee      int64
		wantTotal    int64
		wantMinimum  bool
	}{
		{
			name:         "delivery above free threshold",
			lines:        []cart.Line{{ItemID: "m1", Quantity: 2}},
			deliveryType: order.DeliveryTypeDelivery,
			wantSubtotal: 5200,
			wantFee:      0,
			wantTotal:    5200,
			wantMinimum:  true,
		},
		{
			name:         "pickup is always free",
			lines:        []cart.Line{{ItemID: "m1", Quantity: 2}},
			deliveryType: order.DeliveryTypePickup,
			wantSubtotal: 5200,
			wantFee:      0,
			wantTotal:    5200,
			wantMinimum:  true,
		},
		{
			name:         "delivery below free threshold",
			lines:        []cart.Line{{ItemID: "d2", Quantity: 2}},
			deliveryType: order.DeliveryTypeDelivery,
			wantSubtotal: 2500,
			wantFee:      295,
			wantTotal:    2795,
			wantMinimum:  true,
		},
		{
			name:         "below minimum order",
			lines:        []cart.Line{{ItemID: "sc3", Quantity: 1}},
			deliveryType: order.DeliveryTypeDelivery,
			wantSubtotal: 500,
			wantFee:      295,
			wantTotal:    795,
			wantMinimum:  false,
		},
		{
			name:         "pickup below minimum order has no fee",
			lines:        []cart.Line{{ItemID: "sc3", Quantity: 1}},
			deliveryType: order.DeliveryTypePickup,
			wantSubtotal: 500,
			wantFee:      0,
			wantTotal:    500,
			wantMinimum:  false,
		},
		{
			name: "unknown items and empty lines are dropped",
			lines: []cart.Line{
				{ItemID: "m1", Quantity: 1},
				{ItemID: "gone", Quantity: 3},
				{ItemID: "sc3", Quantity: 0},
			},
			deliveryType: order.DeliveryTypePickup,
			wantSubtotal: 2600,
			wantFee:      0,
			wantTotal:    2600,
			wantMinimum:  true,
		},
		{
			name:         "exactly at free threshold",
			lines:        []cart.Line{{ItemID: "sc3", Quantity: 7}},
			deliveryType: order.DeliveryTypeDelivery,
			wantSubtotal: 3500,
			wantFee:      0,
			wantTotal:    3500,
			wantMinimum:  true,
		},
		{
			name:         "empty cart",
			lines:        nil,
			deliveryType: order.DeliveryTypeDelivery,
			wantSubtotal: 0,
			wantFee:      295,
			wantTotal:    295,
			wantMinimum:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.lines, lookup, tt.deliveryType, cfg)
			if got.SubtotalCents != tt.wantSubtotal {
				t.Errorf("subtotal = %d, want %d", got.SubtotalCents, tt.wantSubtotal)
			}
			if got.DeliveryFeeCents != tt.wantFee {
				t.Errorf("delivery fee = %d, want %d", got.DeliveryFeeCents, tt.wantFee)
			}
			if got.TotalCents != tt.wantTotal {
				t.Errorf("total = %d, want %d", got.TotalCents, tt.wantTotal)
			}
			if got.TotalCents != got.SubtotalCents+got.DeliveryFeeCents {
				t.Errorf("total %d != subtotal %d + fee %d", got.TotalCents, got.SubtotalCents, got.DeliveryFeeCents)
			}
			if got.MeetsMinimum(cfg) != tt.wantMinimum {
				t.Errorf("MeetsMinimum() = %v, want %v", got.MeetsMinimum(cfg), tt.wantMinimum)
			}
		})
	}
}

func TestComputeTotalsLineBreakdown(t *testing.T) {
	lookup := catalog(map[string]int64{"m1": 2600, "sc3": 500})
	got := ComputeTotals(
		[]cart.Line{{ItemID: "m1", Quantity: 2}, {ItemID: "sc3", Quantity: 3}},
		lookup,
		order.DeliveryTypeDelivery,
		ConfigFromSettings(settings.Default()),
	)

	if len(got.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(got.Lines))
	}
	if got.Lines[0].LineTotalCents != 5200 || got.Lines[1].LineTotalCents != 1500 {
		t.Errorf("unexpected line totals: %+v", got.Lines)
	}
	if got.Lines[1].UnitPriceCents != 500 {
		t.Errorf("unit price = %d, want 500", got.Lines[1].UnitPriceCents)
	}
}
