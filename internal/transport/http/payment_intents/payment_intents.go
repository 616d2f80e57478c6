package paymentintents

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/storefront/internal/service/models/currency"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/payment"
	"github.com/corray333/backend-labs/storefront/internal/transport/http/respond"
	"github.com/shopspring/decimal"
)

// service is an interface for the service layer.
type service interface {
	CreatePaymentIntent(ctx context.Context, req payment.IntentRequest) (payment.Intent, error)
}

// createIntentRequest represents a payment intent request. Amount is in euros.
type createIntentRequest struct {
	Amount        decimal.Decimal   `json:"amount"`
	Currency      string            `json:"currency"`
	PaymentMethod string            `json:"paymentMethod"`
	Email         string            `json:"customerEmail" validate:"omitempty,email"`
	Name          string            `json:"customerName"`
	Metadata      map[string]string `json:"metadata"`
}

// toModel converts createIntentRequest to payment.IntentRequest.
func (r *createIntentRequest) toModel(idempotencyKey string) (payment.IntentRequest, error) {
	cents, err := currency.ToCents(r.Amount)
	if err != nil {
		return payment.IntentRequest{}, err
	}

	cur := currency.CurrencyEUR
	if r.Currency != "" {
		if cur, err = currency.ParseCurrency(r.Currency); err != nil {
			return payment.IntentRequest{}, err
		}
	}

	return payment.IntentRequest{
		AmountCents:    cents,
		Currency:       cur,
		Method:         order.PaymentMethod(r.PaymentMethod),
		PayerEmail:     r.Email,
		PayerName:      r.Name,
		Metadata:       r.Metadata,
		IdempotencyKey: idempotencyKey,
	}, nil
}

// Create handles the create payment intent request.
func Create(w http.ResponseWriter, r *http.Request, service service) {
	req := createIntentRequest{}
	if !respond.Decode(w, r, &req) {
		return
	}

	model, err := req.toModel(r.Header.Get("Idempotency-Key"))
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	intent, err := service.CreatePaymentIntent(r.Context(), model)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, intent)
}
