package mock

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/service/payment"
	"github.com/google/uuid"
)

// Gateway simulates a payment provider with a fixed success probability.
// Charges with the same idempotency key return the first outcome. Intents it
// creates count as confirmed by the client.
type Gateway struct {
	mu          sync.Mutex
	rnd         *rand.Rand
	successRate float64
	delay       time.Duration
	results     map[string]payment.ChargeResult
	intents     map[string]payment.SettledIntent
	calls       int
}

type option func(*Gateway)

// New creates a mock gateway. Without options every charge succeeds.
func New(opts ...option) *Gateway {
	g := &Gateway{
		rnd:         rand.New(rand.NewPCG(1, 2)),
		successRate: 1,
		results:     make(map[string]payment.ChargeResult),
		intents:     make(map[string]payment.SettledIntent),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// WithSuccessRate sets the probability of a successful charge.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSuccessRate(rate float64) option {
	return func(g *Gateway) {
		g.successRate = rate
	}
}

// WithSeed makes the outcome sequence reproducible.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSeed(seed uint64) option {
	return func(g *Gateway) {
		g.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithDelay simulates the provider round trip.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDelay(delay time.Duration) option {
	return func(g *Gateway) {
		g.delay = delay
	}
}

// AlwaysSucceed returns a gateway that approves every charge.
func AlwaysSucceed() *Gateway {
	return New(WithSuccessRate(1))
}

// AlwaysFail returns a gateway that declines every charge.
func AlwaysFail() *Gateway {
	return New(WithSuccessRate(0))
}

// Calls returns how many charges reached the provider.
func (g *Gateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.calls
}

func (g *Gateway) Charge(ctx context.Context, req payment.ChargeRequest) (payment.ChargeResult, error) {
	if g.delay > 0 {
		select {
		case <-ctx.Done():
			return payment.ChargeResult{}, ctx.Err()
		case <-time.After(g.delay):
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if req.IdempotencyKey != "" {
		if res, ok := g.results[req.IdempotencyKey]; ok {
			return res, nil
		}
	}
	g.calls++

	if req.PaymentIntentID != "" {
		return g.settle(req), nil
	}

	res := payment.ChargeResult{Reason: payment.ReasonDeclined}
	if g.rnd.Float64() < g.successRate {
		res = payment.ChargeResult{Success: true, TransactionID: "TXN-" + uuid.NewString()}
	}
	if req.IdempotencyKey != "" {
		g.results[req.IdempotencyKey] = res
	}

	return res, nil
}

// settle must be called with mu held.
func (g *Gateway) settle(req payment.ChargeRequest) payment.ChargeResult {
	in, ok := g.intents[req.PaymentIntentID]
	if !ok {
		return payment.ChargeResult{Reason: payment.ReasonIntentNotFound}
	}
	if reason := payment.CheckSettled(in, req); reason != "" {
		return payment.ChargeResult{Reason: reason}
	}
	in.AttemptKey = req.IdempotencyKey
	g.intents[in.ID] = in

	return payment.ChargeResult{Success: true, TransactionID: in.ID}
}

func (g *Gateway) CreateIntent(_ context.Context, req payment.IntentRequest) (payment.Intent, error) {
	if err := payment.CheckAmount(req.AmountCents); err != nil {
		return payment.Intent{}, err
	}
	id := "pi_mock_" + uuid.NewString()

	g.mu.Lock()
	g.intents[id] = payment.SettledIntent{
		ID:          id,
		AmountCents: req.AmountCents,
		Currency:    string(req.Currency),
		Succeeded:   true,
	}
	g.mu.Unlock()

	return payment.Intent{
		ClientSecret:    id + "_secret",
		PaymentIntentID: id,
	}, nil
}
