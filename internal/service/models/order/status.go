package order

import (
	"errors"
	"slices"
)

var (
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidDeliveryType  = errors.New("invalid delivery type")
)

// Status is the fulfillment status of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivery  Status = "delivery"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var statuses = []Status{
	StatusPending,
	StatusPreparing,
	StatusReady,
	StatusDelivery,
	StatusCompleted,
	StatusCancelled,
}

func ParseStatus(s string) (Status, error) {
	if slices.Contains(statuses, Status(s)) {
		return Status(s), nil
	}

	return "", ErrInvalidStatus
}

// IsTerminal reports whether no further fulfillment is expected.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// forward lists the next statuses reachable from each non-terminal status,
// cancellation excluded.
var forward = map[Status][]Status{
	StatusPending:   {StatusPreparing},
	StatusPreparing: {StatusReady},
	StatusReady:     {StatusDelivery, StatusCompleted},
	StatusDelivery:  {StatusCompleted},
}

// CanTransition reports whether an order of the given delivery type may move
// from one status to another under the forward-only graph.
func CanTransition(from, to Status, deliveryType DeliveryType) bool {
	if from.IsTerminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	if to == StatusDelivery && deliveryType != DeliveryTypeDelivery {
		return false
	}

	return slices.Contains(forward[from], to)
}

// PaymentStatus is the settlement status of an order, tracked independently
// of fulfillment.
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch ps := PaymentStatus(s); ps {
	case PaymentStatusUnpaid, PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return ps, nil
	default:
		return "", ErrInvalidPaymentStatus
	}
}

type PaymentMethod string

const (
	PaymentMethodIdeal      PaymentMethod = "ideal"
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodBancontact PaymentMethod = "bancontact"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch pm := PaymentMethod(s); pm {
	case PaymentMethodIdeal, PaymentMethodCard, PaymentMethodCash, PaymentMethodBancontact:
		return pm, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// RequiresGateway reports whether the method is charged through the payment gateway.
func (m PaymentMethod) RequiresGateway() bool {
	return m != PaymentMethodCash
}

type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

func ParseDeliveryType(s string) (DeliveryType, error) {
	switch dt := DeliveryType(s); dt {
	case DeliveryTypeDelivery, DeliveryTypePickup:
		return dt, nil
	default:
		return "", ErrInvalidDeliveryType
	}
}
