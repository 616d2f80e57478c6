package stripe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/payment"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// Gateway charges through Stripe payment intents.
type Gateway struct {
	api       *client.API
	returnURL string
}

// NewGateway creates a gateway authenticated with the secret key.
func NewGateway(secretKey, returnURL string) *Gateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &Gateway{
		api:       api,
		returnURL: returnURL,
	}
}

func methodType(m order.PaymentMethod) string {
	switch m {
	case order.PaymentMethodIdeal:
		return "ideal"
	case order.PaymentMethodBancontact:
		return "bancontact"
	default:
		return "card"
	}
}

func (g *Gateway) intentParams(ctx context.Context, req payment.IntentRequest) *stripe.PaymentIntentParams {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.AmountCents),
		Currency:           stripe.String(req.Currency.Lower()),
		PaymentMethodTypes: stripe.StringSlice([]string{methodType(req.Method)}),
	}
	if req.PayerEmail != "" {
		params.ReceiptEmail = stripe.String(req.PayerEmail)
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.PayerName != "" {
		params.AddMetadata("customer_name", req.PayerName)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	return params
}

// CreateIntent opens a payment intent the client confirms itself.
func (g *Gateway) CreateIntent(ctx context.Context, req payment.IntentRequest) (payment.Intent, error) {
	if err := payment.CheckAmount(req.AmountCents); err != nil {
		return payment.Intent{}, err
	}

	pi, err := g.api.PaymentIntents.New(g.intentParams(ctx, req))
	if err != nil {
		return payment.Intent{}, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return payment.Intent{
		ClientSecret:    pi.ClientSecret,
		PaymentIntentID: pi.ID,
	}, nil
}

// attemptKey is the intent metadata key that binds an intent to one checkout attempt.
const attemptKey = "checkout_attempt"

// Charge creates an intent and confirms it with the payment token, or settles
// the intent the client confirmed.
func (g *Gateway) Charge(ctx context.Context, req payment.ChargeRequest) (payment.ChargeResult, error) {
	if req.PaymentIntentID != "" {
		return g.settle(ctx, req)
	}

	pi, err := g.api.PaymentIntents.New(g.intentParams(ctx, payment.IntentRequest{
		AmountCents:    req.AmountCents,
		Currency:       req.Currency,
		Method:         req.Method,
		PayerEmail:     req.PayerEmail,
		PayerName:      req.PayerName,
		Metadata:       req.Metadata,
		IdempotencyKey: req.IdempotencyKey,
	}))
	if err != nil {
		return declined(err)
	}

	confirm := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(req.PaymentToken),
	}
	if g.returnURL != "" {
		confirm.ReturnURL = stripe.String(g.returnURL)
	}
	confirm.Context = ctx
	if req.IdempotencyKey != "" {
		confirm.SetIdempotencyKey(req.IdempotencyKey + "-confirm")
	}

	pi, err = g.api.PaymentIntents.Confirm(pi.ID, confirm)
	if err != nil {
		return declined(err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return payment.ChargeResult{Success: true, TransactionID: pi.ID}, nil
	case stripe.PaymentIntentStatusRequiresAction:
		// Bank redirects (iDEAL, Bancontact) finish in the client, which then
		// pays again with the intent id.
		slog.Info("Payment intent needs customer action", "intent_id", pi.ID)

		return payment.ChargeResult{Reason: payment.ReasonActionRequired}, nil
	default:
		slog.Info("Payment intent not settled", "intent_id", pi.ID, "status", pi.Status)

		return payment.ChargeResult{Reason: payment.ReasonDeclined}, nil
	}
}

// settle checks that the client-confirmed intent paid exactly this order and
// claims it for the checkout attempt.
func (g *Gateway) settle(ctx context.Context, req payment.ChargeRequest) (payment.ChargeResult, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(req.PaymentIntentID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			return payment.ChargeResult{Reason: payment.ReasonIntentNotFound}, nil
		}

		return declined(err)
	}

	reason := payment.CheckSettled(payment.SettledIntent{
		ID:          pi.ID,
		AmountCents: pi.Amount,
		Currency:    string(pi.Currency),
		Succeeded:   pi.Status == stripe.PaymentIntentStatusSucceeded,
		AttemptKey:  pi.Metadata[attemptKey],
	}, req)
	if reason != "" {
		slog.Warn("Payment intent rejected", "intent_id", pi.ID, "status", pi.Status, "reason", reason)

		return payment.ChargeResult{Reason: reason}, nil
	}

	if pi.Metadata[attemptKey] == "" && req.IdempotencyKey != "" {
		claim := &stripe.PaymentIntentParams{}
		claim.Context = ctx
		claim.AddMetadata(attemptKey, req.IdempotencyKey)
		if _, err := g.api.PaymentIntents.Update(pi.ID, claim); err != nil {
			return payment.ChargeResult{}, fmt.Errorf("failed to claim payment intent: %w", err)
		}
	}

	return payment.ChargeResult{Success: true, TransactionID: pi.ID}, nil
}

// declined turns card errors into a failed charge and keeps other errors
// as unknown outcomes.
func declined(err error) (payment.ChargeResult, error) {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
		return payment.ChargeResult{Reason: stripeErr.Msg}, nil
	}

	return payment.ChargeResult{}, err
}
