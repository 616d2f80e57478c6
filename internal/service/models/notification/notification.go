package notification

import (
	"time"

	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
)

// OrderConfirmation is the message published after an order is created.
type OrderConfirmation struct {
	OrderID            string    `json:"orderId"`
	Language           string    `json:"language"`
	CustomerName       string    `json:"customerName"`
	CustomerEmail      string    `json:"customerEmail"`
	Items              []Line    `json:"items"`
	SubtotalCents      int64     `json:"subtotalCents"`
	DeliveryFeeCents   int64     `json:"deliveryFeeCents"`
	TotalCents         int64     `json:"totalCents"`
	DeliveryType       string    `json:"deliveryType"`
	Address            string    `json:"address,omitempty"`
	PaymentMethod      string    `json:"paymentMethod"`
	PaymentStatus      string    `json:"paymentStatus"`
	EstimatedReadyTime time.Time `json:"estimatedReadyTime"`
	Notes              string    `json:"notes,omitempty"`
}

// Line is an order line as shown in the confirmation.
type Line struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	LineTotalCents int64  `json:"lineTotalCents"`
}

// FromOrder builds the confirmation for o.
func FromOrder(o order.Order, language string) OrderConfirmation {
	msg := OrderConfirmation{
		OrderID:            o.ID,
		Language:           language,
		CustomerName:       o.Customer.Name,
		CustomerEmail:      o.Customer.Email,
		Items:              make([]Line, 0, len(o.Items)),
		SubtotalCents:      o.SubtotalCents,
		DeliveryFeeCents:   o.DeliveryFeeCents,
		TotalCents:         o.TotalCents,
		DeliveryType:       string(o.Delivery.Type),
		PaymentMethod:      string(o.Payment.Method),
		PaymentStatus:      string(o.Payment.Status),
		EstimatedReadyTime: o.EstimatedReadyTime,
		Notes:              o.Customer.Notes,
	}
	for _, item := range o.Items {
		msg.Items = append(msg.Items, Line{
			Name:           item.Name,
			Quantity:       item.Quantity,
			LineTotalCents: item.LineTotalCents(),
		})
	}
	if o.Delivery.Type == order.DeliveryTypeDelivery {
		msg.Address = o.Customer.Address + ", " + o.Customer.PostalCode + " " + o.Customer.City
	}

	return msg
}
