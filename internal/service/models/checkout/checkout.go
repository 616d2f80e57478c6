package checkout

import (
	"errors"
	"fmt"

	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/pricing"
	"github.com/corray333/backend-labs/storefront/internal/service/validation"
	"github.com/google/uuid"
)

// Step is a stage of the checkout flow.
type Step string

const (
	StepDetails      Step = "details"
	StepPayment      Step = "payment"
	StepProcessing   Step = "processing"
	StepOrderCreated Step = "order-created"
)

var (
	ErrWrongStep            = errors.New("action not allowed in the current checkout step")
	ErrAlreadyProcessing    = errors.New("payment is already being processed")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMinimumOrder         = errors.New("minimum order amount not reached")
	ErrCashRequiresDelivery = errors.New("cash is only accepted for delivery orders")
	ErrInvalidDetails       = errors.New("customer details are invalid")
)

// MinimumOrderError reports how far the subtotal is below the minimum.
type MinimumOrderError struct {
	SubtotalCents int64
	MinimumCents  int64
}

func (e *MinimumOrderError) Error() string {
	return fmt.Sprintf("%s: subtotal %d below %d cents", ErrMinimumOrder, e.SubtotalCents, e.MinimumCents)
}

func (e *MinimumOrderError) Unwrap() error {
	return ErrMinimumOrder
}

// DetailsError carries the field errors that blocked the details step.
type DetailsError struct {
	Fields validation.Errors
}

func (e *DetailsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidDetails, e.Fields.Error())
}

func (e *DetailsError) Unwrap() error {
	return ErrInvalidDetails
}

// State is one customer's progress through checkout.
type State struct {
	Step          Step                      `json:"step"`
	DeliveryType  order.DeliveryType        `json:"deliveryType"`
	PaymentMethod order.PaymentMethod       `json:"paymentMethod"`
	Customer      order.CustomerInfo        `json:"customer"`
	Language      string                    `json:"language"`
	Touched       map[validation.Field]bool `json:"-"`
	PaymentError  string                    `json:"paymentError,omitempty"`
	OrderID       string                    `json:"orderId,omitempty"`

	// AttemptKey identifies the charge of the current processing attempt.
	AttemptKey string `json:"-"`
}

// New returns a checkout at the details step with delivery and iDEAL selected.
func New() State {
	return State{
		Step:          StepDetails,
		DeliveryType:  order.DeliveryTypeDelivery,
		PaymentMethod: order.PaymentMethodIdeal,
		Touched:       map[validation.Field]bool{},
	}
}

// Editable reports whether details and payment choices can still change.
func (s *State) Editable() bool {
	return s.Step == StepDetails || s.Step == StepPayment
}

// SetDeliveryType switches delivery type. Cash falls back to iDEAL for pickup.
func (s *State) SetDeliveryType(dt order.DeliveryType) error {
	if !s.Editable() {
		return ErrWrongStep
	}
	s.DeliveryType = dt
	if dt == order.DeliveryTypePickup && s.PaymentMethod == order.PaymentMethodCash {
		s.PaymentMethod = order.PaymentMethodIdeal
	}

	return nil
}

// SetCustomer replaces the customer details.
func (s *State) SetCustomer(c order.CustomerInfo, language string) error {
	if !s.Editable() {
		return ErrWrongStep
	}
	s.Customer = c
	if language != "" {
		s.Language = language
	}

	return nil
}

// Touch marks a field as visited so its error is shown.
func (s *State) Touch(f validation.Field) {
	if s.Touched == nil {
		s.Touched = map[validation.Field]bool{}
	}
	s.Touched[f] = true
}

// VisibleErrors returns the errors of touched fields.
func (s *State) VisibleErrors() validation.Errors {
	all := validation.ValidateCustomer(s.Customer, s.DeliveryType)
	visible := validation.Errors{}
	for f, err := range all {
		if s.Touched[f] {
			visible[f] = err
		}
	}

	return visible
}

// SetPaymentMethod selects how the order is paid.
func (s *State) SetPaymentMethod(m order.PaymentMethod) error {
	if !s.Editable() {
		return ErrWrongStep
	}
	if m == order.PaymentMethodCash && s.DeliveryType != order.DeliveryTypeDelivery {
		return ErrCashRequiresDelivery
	}
	s.PaymentMethod = m

	return nil
}

// Continue moves from details to payment when the cart meets the minimum
// and the details are valid. Invalid details mark every checked field touched.
func (s *State) Continue(totals pricing.Totals, cfg pricing.Config) error {
	if s.Step != StepDetails {
		return ErrWrongStep
	}
	if len(totals.Lines) == 0 {
		return ErrEmptyCart
	}
	if !totals.MeetsMinimum(cfg) {
		return &MinimumOrderError{SubtotalCents: totals.SubtotalCents, MinimumCents: cfg.MinOrderAmountCents}
	}
	if errs := validation.ValidateCustomer(s.Customer, s.DeliveryType); errs != nil {
		for _, f := range validation.RequiredFields(s.DeliveryType) {
			s.Touch(f)
		}

		return &DetailsError{Fields: errs}
	}
	s.Step = StepPayment

	return nil
}

// Back returns from payment to details.
func (s *State) Back() error {
	if s.Step != StepPayment {
		return ErrWrongStep
	}
	s.Step = StepDetails
	s.PaymentError = ""

	return nil
}

// BeginProcessing enters processing with a fresh attempt key.
func (s *State) BeginProcessing() error {
	switch s.Step {
	case StepProcessing:
		return ErrAlreadyProcessing
	case StepPayment:
	default:
		return ErrWrongStep
	}
	s.Step = StepProcessing
	s.PaymentError = ""
	s.AttemptKey = uuid.NewString()

	return nil
}

// Fail returns to payment with the reason shown to the customer.
func (s *State) Fail(reason string) {
	s.Step = StepPayment
	s.PaymentError = reason
}

// Complete ends the checkout with the created order.
func (s *State) Complete(orderID string) {
	s.Step = StepOrderCreated
	s.OrderID = orderID
	s.PaymentError = ""
}
