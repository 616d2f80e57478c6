package payment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/service/models/currency"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/payment"
	"github.com/corray333/backend-labs/storefront/internal/service/payment/mock"
)

type erroringGateway struct {
	err error
}

func (g erroringGateway) Charge(context.Context, payment.ChargeRequest) (payment.ChargeResult, error) {
	return payment.ChargeResult{}, g.err
}

func (g erroringGateway) CreateIntent(context.Context, payment.IntentRequest) (payment.Intent, error) {
	return payment.Intent{}, g.err
}

type hangingGateway struct{}

func (hangingGateway) Charge(ctx context.Context, _ payment.ChargeRequest) (payment.ChargeResult, error) {
	<-ctx.Done()
	time.Sleep(10 * time.Millisecond)

	return payment.ChargeResult{Success: true, TransactionID: "late"}, nil
}

func (hangingGateway) CreateIntent(context.Context, payment.IntentRequest) (payment.Intent, error) {
	return payment.Intent{}, nil
}

func request(amount int64, key string) payment.ChargeRequest {
	return payment.ChargeRequest{
		AmountCents:    amount,
		Currency:       currency.CurrencyEUR,
		Method:         order.PaymentMethodCard,
		PaymentToken:   "pm_card_visa",
		PayerEmail:     "eleni@example.com",
		IdempotencyKey: key,
	}
}

func TestChargeWithin(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		gateway     payment.Gateway
		amount      int64
		wantSuccess bool
		wantReason  string
	}{
		{"approved", mock.AlwaysSucceed(), 5200, true, ""},
		{"declined", mock.AlwaysFail(), 5200, false, payment.ReasonDeclined},
		{"below floor", mock.AlwaysSucceed(), 99, false, payment.ErrAmountTooSmall.Error()},
		{"provider error", erroringGateway{err: errors.New("connection refused")}, 5200, false, payment.ReasonUnavailable},
		{"hanging provider", hangingGateway{}, 5200, false, payment.ReasonTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := payment.ChargeWithin(ctx, tt.gateway, request(tt.amount, ""), 50*time.Millisecond)
			if res.Success != tt.wantSuccess {
				t.Fatalf("Success = %v, want %v", res.Success, tt.wantSuccess)
			}
			if tt.wantSuccess && res.TransactionID == "" {
				t.Error("expected a transaction id")
			}
			if res.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", res.Reason, tt.wantReason)
			}
		})
	}
}

func TestMockIdempotency(t *testing.T) {
	g := mock.New(mock.WithSuccessRate(0.5), mock.WithSeed(42))
	ctx := context.Background()

	first, err := g.Charge(ctx, request(1500, "attempt-1"))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := g.Charge(ctx, request(1500, "attempt-1"))
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("repeat charge returned %+v, want %+v", again, first)
		}
	}
	if g.Calls() != 1 {
		t.Errorf("Calls() = %d, want 1", g.Calls())
	}
}

func TestMockSeedIsReproducible(t *testing.T) {
	ctx := context.Background()
	outcomes := func() []bool {
		g := mock.New(mock.WithSuccessRate(0.5), mock.WithSeed(7))
		out := make([]bool, 0, 20)
		for i := 0; i < 20; i++ {
			res, _ := g.Charge(ctx, request(1500, ""))
			out = append(out, res.Success)
		}

		return out
	}

	a, b := outcomes(), outcomes()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("outcome %d differs between runs", i)
		}
	}
}

func TestMockCreateIntent(t *testing.T) {
	g := mock.AlwaysSucceed()
	if _, err := g.CreateIntent(context.Background(), payment.IntentRequest{AmountCents: 50}); !errors.Is(err, payment.ErrAmountTooSmall) {
		t.Errorf("CreateIntent below floor = %v, want ErrAmountTooSmall", err)
	}
	intent, err := g.CreateIntent(context.Background(), payment.IntentRequest{AmountCents: 1500, Currency: currency.CurrencyEUR})
	if err != nil {
		t.Fatal(err)
	}
	if intent.PaymentIntentID == "" || intent.ClientSecret == "" {
		t.Errorf("incomplete intent: %+v", intent)
	}
}

func TestCheckSettled(t *testing.T) {
	req := request(2600, "attempt-1")
	paid := payment.SettledIntent{ID: "pi_1", AmountCents: 2600, Currency: "eur", Succeeded: true}

	tests := []struct {
		name   string
		mutate func(in *payment.SettledIntent)
		want   string
	}{
		{"settled", func(*payment.SettledIntent) {}, ""},
		{"claimed by the same attempt", func(in *payment.SettledIntent) { in.AttemptKey = "attempt-1" }, ""},
		{"awaiting bank redirect", func(in *payment.SettledIntent) { in.Succeeded = false }, payment.ReasonIntentUnsettled},
		{"amount differs", func(in *payment.SettledIntent) { in.AmountCents = 2500 }, payment.ReasonIntentMismatch},
		{"currency differs", func(in *payment.SettledIntent) { in.Currency = "pln" }, payment.ReasonIntentMismatch},
		{"claimed by another attempt", func(in *payment.SettledIntent) { in.AttemptKey = "attempt-0" }, payment.ReasonIntentUsed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := paid
			tt.mutate(&in)
			if got := payment.CheckSettled(in, req); got != tt.want {
				t.Errorf("CheckSettled() = %q, want %q", got, tt.want)
			}
		})
	}
}
