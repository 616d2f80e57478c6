package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/service/models/currency"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
)

// MinChargeCents is the smallest amount the gateway accepts.
const MinChargeCents = 100

const (
	ReasonDeclined    = "payment declined"
	ReasonTimeout     = "payment timed out"
	ReasonUnavailable = "payment provider unavailable"

	ReasonActionRequired  = "payment needs confirmation by the customer"
	ReasonIntentNotFound  = "payment intent not found"
	ReasonIntentUnsettled = "payment intent is not paid"
	ReasonIntentMismatch  = "payment intent does not match the order"
	ReasonIntentUsed      = "payment intent already used"
)

var ErrAmountTooSmall = fmt.Errorf("amount must be at least %d cents", MinChargeCents)

// Proof is what the client pays with: a token the server charges, or the id
// of an intent the client already confirmed with the provider.
type Proof struct {
	Token    string
	IntentID string
}

// ChargeRequest describes a single logical charge. When PaymentIntentID is
// set the gateway settles that intent instead of charging PaymentToken.
type ChargeRequest struct {
	AmountCents     int64
	Currency        currency.Currency
	Method          order.PaymentMethod
	PaymentToken    string
	PaymentIntentID string
	PayerEmail      string
	PayerName       string
	Metadata        map[string]string
	IdempotencyKey  string
}

// SettledIntent is a client-confirmed intent as the provider reports it.
type SettledIntent struct {
	ID          string
	AmountCents int64
	Currency    string
	Succeeded   bool
	// AttemptKey is the checkout attempt that already claimed the intent.
	AttemptKey  string
}

// CheckSettled returns the reason the intent cannot pay for req, or "" when
// it can.
func CheckSettled(in SettledIntent, req ChargeRequest) string {
	switch {
	case !in.Succeeded:
		return ReasonIntentUnsettled
	case in.AmountCents != req.AmountCents || !strings.EqualFold(in.Currency, string(req.Currency)):
		return ReasonIntentMismatch
	case in.AttemptKey != "" && in.AttemptKey != req.IdempotencyKey:
		return ReasonIntentUsed
	default:
		return ""
	}
}

// ChargeResult is the outcome of a charge. Reason is set on failure.
type ChargeResult struct {
	Success       bool
	TransactionID string
	Reason        string
}

// IntentRequest opens a two-phase payment confirmed by the client.
type IntentRequest struct {
	AmountCents    int64
	Currency       currency.Currency
	Method         order.PaymentMethod
	PayerEmail     string
	PayerName      string
	Metadata       map[string]string
	IdempotencyKey string
}

// Intent is the client-side handle of a created payment intent.
type Intent struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// Gateway is a payment backend.
type Gateway interface {
	// Charge returns a non-nil error only when the outcome is unknown,
	// e.g. the provider could not be reached.
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
	CreateIntent(ctx context.Context, req IntentRequest) (Intent, error)
}

// CheckAmount enforces the gateway floor.
func CheckAmount(amountCents int64) error {
	if amountCents < MinChargeCents {
		return ErrAmountTooSmall
	}

	return nil
}

// ChargeWithin runs the charge and resolves within timeout. Transport errors
// and timeouts are reported as failed charges, so callers never hang.
func ChargeWithin(ctx context.Context, g Gateway, req ChargeRequest, timeout time.Duration) ChargeResult {
	if err := CheckAmount(req.AmountCents); err != nil {
		return ChargeResult{Reason: err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		res ChargeResult
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := g.Charge(ctx, req)
		done <- outcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		slog.Warn("Payment charge timed out", "timeout", timeout, "idempotency_key", req.IdempotencyKey)

		return ChargeResult{Reason: ReasonTimeout}
	case out := <-done:
		if out.err != nil {
			if errors.Is(out.err, context.DeadlineExceeded) {
				return ChargeResult{Reason: ReasonTimeout}
			}
			slog.Warn("Payment charge failed", "error", out.err, "idempotency_key", req.IdempotencyKey)

			return ChargeResult{Reason: ReasonUnavailable}
		}
		if !out.res.Success && out.res.Reason == "" {
			out.res.Reason = ReasonDeclined
		}

		return out.res
	}
}
