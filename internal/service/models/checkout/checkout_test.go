package checkout

import (
	"errors"
	"testing"

	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/pricing"
	"github.com/corray333/backend-labs/storefront/internal/service/validation"
)

var cfg = pricing.Config{DeliveryFeeCents: 295, FreeDeliveryFromCents: 3500, MinOrderAmountCents: 1500}

func totals(subtotal int64) pricing.Totals {
	return pricing.Totals{
		Lines:         []pricing.PricedLine{{ItemID: "x", Quantity: 1, UnitPriceCents: subtotal, LineTotalCents: subtotal}},
		SubtotalCents: subtotal,
	}
}

var validCustomer = order.CustomerInfo{
	Name:       "Anna",
	Email:      "anna@example.com",
	Phone:      "0612345678",
	Address:    "Denneweg 10",
	PostalCode: "2514 CG",
	City:       "Den Haag",
}

func TestContinue(t *testing.T) {
	tests := []struct {
		name     string
		customer order.CustomerInfo
		delivery order.DeliveryType
		totals   pricing.Totals
		wantErr  error
		wantStep Step
	}{
		{"valid", validCustomer, order.DeliveryTypeDelivery, totals(5200), nil, StepPayment},
		{"below minimum", validCustomer, order.DeliveryTypeDelivery, totals(500), ErrMinimumOrder, StepDetails},
		{"empty cart", validCustomer, order.DeliveryTypeDelivery, pricing.Totals{}, ErrEmptyCart, StepDetails},
		{"invalid details", order.CustomerInfo{Name: "A"}, order.DeliveryTypeDelivery, totals(5200), ErrInvalidDetails, StepDetails},
		{"pickup without address", order.CustomerInfo{Name: "Anna", Email: "a@b.com", Phone: "0612345678"},
			order.DeliveryTypePickup, totals(2000), nil, StepPayment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			if err := s.SetDeliveryType(tt.delivery); err != nil {
				t.Fatal(err)
			}
			if err := s.SetCustomer(tt.customer, ""); err != nil {
				t.Fatal(err)
			}

			err := s.Continue(tt.totals, cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if s.Step != tt.wantStep {
				t.Errorf("step = %s, want %s", s.Step, tt.wantStep)
			}
		})
	}
}

func TestInvalidDetailsTouchesFields(t *testing.T) {
	s := New()
	if len(s.VisibleErrors()) != 0 {
		t.Fatal("errors visible before any field was touched")
	}

	err := s.Continue(totals(5200), cfg)
	var details *DetailsError
	if !errors.As(err, &details) {
		t.Fatalf("err = %v, want DetailsError", err)
	}
	if _, ok := details.Fields[validation.FieldEmail]; !ok {
		t.Errorf("email error missing from %v", details.Fields)
	}
	if got := len(s.VisibleErrors()); got != len(validation.RequiredFields(order.DeliveryTypeDelivery)) {
		t.Errorf("visible errors = %d", got)
	}
}

func TestCashRequiresDelivery(t *testing.T) {
	s := New()
	if err := s.SetPaymentMethod(order.PaymentMethodCash); err != nil {
		t.Fatal(err)
	}
	if err := s.SetDeliveryType(order.DeliveryTypePickup); err != nil {
		t.Fatal(err)
	}
	if s.PaymentMethod != order.PaymentMethodIdeal {
		t.Errorf("method after pickup = %s, want ideal", s.PaymentMethod)
	}
	if err := s.SetPaymentMethod(order.PaymentMethodCash); !errors.Is(err, ErrCashRequiresDelivery) {
		t.Errorf("err = %v, want ErrCashRequiresDelivery", err)
	}
}

func TestProcessingFlow(t *testing.T) {
	s := New()
	if err := s.BeginProcessing(); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("err = %v, want ErrWrongStep from details", err)
	}

	_ = s.SetCustomer(validCustomer, "nl")
	if err := s.Continue(totals(5200), cfg); err != nil {
		t.Fatal(err)
	}
	if err := s.BeginProcessing(); err != nil {
		t.Fatal(err)
	}
	firstKey := s.AttemptKey
	if err := s.BeginProcessing(); !errors.Is(err, ErrAlreadyProcessing) {
		t.Errorf("err = %v, want ErrAlreadyProcessing", err)
	}
	if err := s.SetCustomer(validCustomer, ""); !errors.Is(err, ErrWrongStep) {
		t.Errorf("details editable while processing: %v", err)
	}

	s.Fail("payment declined")
	if s.Step != StepPayment || s.PaymentError != "payment declined" {
		t.Fatalf("after failure: step %s, error %q", s.Step, s.PaymentError)
	}
	if s.Customer != validCustomer {
		t.Error("customer details lost after failure")
	}

	if err := s.BeginProcessing(); err != nil {
		t.Fatal(err)
	}
	if s.AttemptKey == firstKey {
		t.Error("retry reused the attempt key")
	}
	s.Complete("ORD-1")
	if s.Step != StepOrderCreated || s.OrderID != "ORD-1" {
		t.Errorf("after completion: %+v", s)
	}
	if err := s.Back(); !errors.Is(err, ErrWrongStep) {
		t.Errorf("err = %v, want ErrWrongStep", err)
	}
}
