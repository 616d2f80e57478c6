package checkoutsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/service/models/cart"
	"github.com/corray333/backend-labs/storefront/internal/service/models/checkout"
	"github.com/corray333/backend-labs/storefront/internal/service/models/currency"
	"github.com/corray333/backend-labs/storefront/internal/service/models/menuitem"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/models/settings"
	"github.com/corray333/backend-labs/storefront/internal/service/payment"
	"github.com/corray333/backend-labs/storefront/internal/service/pricing"
	"github.com/corray333/backend-labs/storefront/internal/service/services/menusvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/sessionsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/validation"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
)

var ErrNotAcceptingOrders = errors.New("the restaurant is not accepting orders right now")

// PaymentError is returned when the gateway did not accept the charge.
type PaymentError struct {
	Reason string
}

func (e *PaymentError) Error() string {
	return "payment failed: " + e.Reason
}

// reasonOrderNotSaved is shown when a charge went through but the order could not be stored.
const reasonOrderNotSaved = "your payment was received but the order could not be saved, please contact the restaurant"

type catalog interface {
	Catalog(ctx context.Context) (map[string]menuitem.MenuItem, error)
}

type settingsProvider interface {
	GetSettings(ctx context.Context) (settings.Settings, error)
}

type orderCreator interface {
	CreateOrder(ctx context.Context, params ordersvc.CreateOrderParams) (order.Order, error)
}

// CheckoutService drives a session from details to a created order.
type CheckoutService struct {
	sessions       *sessionsvc.SessionService
	catalog        catalog
	settings       settingsProvider
	orders         orderCreator
	gateway        payment.Gateway
	paymentTimeout time.Duration
}

// option is a function that configures the CheckoutService.
type option func(*CheckoutService)

// MustNewCheckoutService creates a new CheckoutService.
func MustNewCheckoutService(opts ...option) *CheckoutService {
	timeoutSeconds := viper.GetInt("payment.timeout_seconds")
	if timeoutSeconds == 0 {
		timeoutSeconds = 30
	}

	s := &CheckoutService{paymentTimeout: time.Duration(timeoutSeconds) * time.Second}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessions == nil || s.catalog == nil || s.settings == nil || s.orders == nil || s.gateway == nil {
		panic("checkoutsvc: sessions, catalog, settings, orders and gateway are required")
	}

	return s
}

// WithSessions sets the session store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSessions(sessions *sessionsvc.SessionService) option {
	return func(s *CheckoutService) {
		s.sessions = sessions
	}
}

// WithCatalog sets the menu catalog used for pricing.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalog(c catalog) option {
	return func(s *CheckoutService) {
		s.catalog = c
	}
}

// WithSettings sets the restaurant settings provider.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSettings(p settingsProvider) option {
	return func(s *CheckoutService) {
		s.settings = p
	}
}

// WithOrders sets the order store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrders(o orderCreator) option {
	return func(s *CheckoutService) {
		s.orders = o
	}
}

// WithGateway sets the payment gateway.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithGateway(g payment.Gateway) option {
	return func(s *CheckoutService) {
		s.gateway = g
	}
}

// WithPaymentTimeout bounds a charge.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPaymentTimeout(d time.Duration) option {
	return func(s *CheckoutService) {
		if d > 0 {
			s.paymentTimeout = d
		}
	}
}

// Summary is what the customer sees of a checkout.
type Summary struct {
	SessionID           string            `json:"sessionId"`
	State               checkout.State    `json:"state"`
	Cart                []cart.Line       `json:"cart"`
	Totals              pricing.Totals    `json:"totals"`
	MinOrderAmountCents int64             `json:"minOrderAmountCents"`
	MeetsMinimum        bool              `json:"meetsMinimum"`
	AcceptingOrders     bool              `json:"acceptingOrders"`
	FieldErrors         map[string]string `json:"fieldErrors"`
}

type snapshot struct {
	catalog  map[string]menuitem.MenuItem
	settings settings.Settings
	config   pricing.Config
}

func (s *CheckoutService) snapshot(ctx context.Context) (snapshot, error) {
	items, err := s.catalog.Catalog(ctx)
	if err != nil {
		return snapshot{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	st, err := s.settings.GetSettings(ctx)
	if err != nil {
		return snapshot{}, fmt.Errorf("failed to read settings: %w", err)
	}

	return snapshot{catalog: items, settings: st, config: pricing.ConfigFromSettings(st)}, nil
}

func (snap snapshot) price(lines []cart.Line, dt order.DeliveryType) pricing.Totals {
	return pricing.ComputeTotals(lines, menusvc.LookupFromCatalog(snap.catalog), dt, snap.config)
}

// View returns the checkout of the session.
func (s *CheckoutService) View(ctx context.Context, sessionID string) (Summary, error) {
	sess := s.sessions.Get(sessionID)

	snap, err := s.snapshot(ctx)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	err = sess.Do(func(state *checkout.State) error {
		summary = s.summarize(sess, state, snap)

		return nil
	})

	return summary, err
}

func (s *CheckoutService) summarize(sess *sessionsvc.Session, state *checkout.State, snap snapshot) Summary {
	lines := sess.Cart().Lines()
	totals := snap.price(lines, state.DeliveryType)

	return Summary{
		SessionID:           sess.ID,
		State:               *state,
		Cart:                lines,
		Totals:              totals,
		MinOrderAmountCents: snap.config.MinOrderAmountCents,
		MeetsMinimum:        totals.MeetsMinimum(snap.config),
		AcceptingOrders:     snap.settings.AcceptingOrders,
		FieldErrors:         state.VisibleErrors().Messages(),
	}
}

// update applies fn to the session checkout and returns the new summary.
func (s *CheckoutService) update(
	ctx context.Context,
	sessionID string,
	fn func(state *checkout.State, sess *sessionsvc.Session, snap snapshot) error,
) (Summary, error) {
	sess := s.sessions.Get(sessionID)

	snap, err := s.snapshot(ctx)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	err = sess.Do(func(state *checkout.State) error {
		fnErr := fn(state, sess, snap)
		summary = s.summarize(sess, state, snap)

		return fnErr
	})

	return summary, err
}

// SetDeliveryType selects delivery or pickup.
func (s *CheckoutService) SetDeliveryType(
	ctx context.Context,
	sessionID string,
	dt order.DeliveryType,
) (Summary, error) {
	return s.update(ctx, sessionID, func(state *checkout.State, _ *sessionsvc.Session, _ snapshot) error {
		return state.SetDeliveryType(dt)
	})
}

// SetCustomer stores the customer details.
func (s *CheckoutService) SetCustomer(
	ctx context.Context,
	sessionID string,
	c order.CustomerInfo,
	language string,
) (Summary, error) {
	return s.update(ctx, sessionID, func(state *checkout.State, _ *sessionsvc.Session, _ snapshot) error {
		return state.SetCustomer(c, language)
	})
}

// TouchField marks a field visited so its validation error is shown.
func (s *CheckoutService) TouchField(ctx context.Context, sessionID string, f validation.Field) (Summary, error) {
	return s.update(ctx, sessionID, func(state *checkout.State, _ *sessionsvc.Session, _ snapshot) error {
		state.Touch(f)

		return nil
	})
}

// SetPaymentMethod selects how the order is paid.
func (s *CheckoutService) SetPaymentMethod(
	ctx context.Context,
	sessionID string,
	m order.PaymentMethod,
) (Summary, error) {
	return s.update(ctx, sessionID, func(state *checkout.State, _ *sessionsvc.Session, _ snapshot) error {
		return state.SetPaymentMethod(m)
	})
}

// Continue moves from details to payment.
func (s *CheckoutService) Continue(ctx context.Context, sessionID string) (Summary, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.ContinueCheckout")
	defer span.End()

	return s.update(ctx, sessionID, func(state *checkout.State, sess *sessionsvc.Session, snap snapshot) error {
		if !snap.settings.AcceptingOrders {
			return ErrNotAcceptingOrders
		}

		return state.Continue(snap.price(sess.Cart().Lines(), state.DeliveryType), snap.config)
	})
}

// Back returns from payment to details.
func (s *CheckoutService) Back(ctx context.Context, sessionID string) (Summary, error) {
	return s.update(ctx, sessionID, func(state *checkout.State, _ *sessionsvc.Session, _ snapshot) error {
		return state.Back()
	})
}

// Pay submits the payment. Cash orders are created right away; other methods
// are charged first, or settled with the intent the client confirmed, and a
// failed charge returns the checkout to the payment step with the cart
// untouched.
func (s *CheckoutService) Pay(
	ctx context.Context,
	sessionID string,
	proof payment.Proof,
) (order.Order, Summary, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.Pay")
	defer span.End()

	sess := s.sessions.Get(sessionID)

	snap, err := s.snapshot(ctx)
	if err != nil {
		return order.Order{}, Summary{}, err
	}

	var (
		state  checkout.State
		lines  []cart.Line
		totals pricing.Totals
	)
	err = sess.Do(func(st *checkout.State) error {
		if st.Step == checkout.StepPayment && !snap.settings.AcceptingOrders {
			return ErrNotAcceptingOrders
		}
		if st.Step == checkout.StepPayment {
			lines = sess.Cart().Lines()
			totals = snap.price(lines, st.DeliveryType)
			if len(totals.Lines) == 0 {
				return checkout.ErrEmptyCart
			}
			if !totals.MeetsMinimum(snap.config) {
				return &checkout.MinimumOrderError{
					SubtotalCents: totals.SubtotalCents,
					MinimumCents:  snap.config.MinOrderAmountCents,
				}
			}
		}
		if err := st.BeginProcessing(); err != nil {
			return err
		}
		state = *st

		return nil
	})
	if err != nil {
		return order.Order{}, s.summaryOf(sess, snap), err
	}

	result := payment.ChargeResult{Success: true}
	if state.PaymentMethod.RequiresGateway() {
		// The charge outlives a disconnected client so the attempt always resolves.
		result = payment.ChargeWithin(context.WithoutCancel(ctx), s.gateway, payment.ChargeRequest{
			AmountCents:     totals.TotalCents,
			Currency:        currency.CurrencyEUR,
			Method:          state.PaymentMethod,
			PaymentToken:    proof.Token,
			PaymentIntentID: proof.IntentID,
			PayerEmail:      state.Customer.Email,
			PayerName:       state.Customer.Name,
			Metadata:        map[string]string{"session_id": sess.ID, "delivery_type": string(state.DeliveryType)},
			IdempotencyKey:  state.AttemptKey,
		}, s.paymentTimeout)
	}
	if !result.Success {
		slog.Warn("Payment failed", "session_id", sess.ID, "method", state.PaymentMethod, "reason", result.Reason)
		s.fail(sess, result.Reason)

		return order.Order{}, s.summaryOf(sess, snap), &PaymentError{Reason: result.Reason}
	}

	params := ordersvc.CreateOrderParams{
		Lines:         lines,
		Customer:      state.Customer,
		DeliveryType:  state.DeliveryType,
		PaymentMethod: state.PaymentMethod,
		PaymentStatus: order.PaymentStatusUnpaid,
		Language:      state.Language,
		Catalog:       snap.catalog,
		Settings:      &snap.settings,
	}
	if state.PaymentMethod.RequiresGateway() {
		params.PaymentStatus = order.PaymentStatusPaid
		params.TransactionID = result.TransactionID
	}

	created, err := s.orders.CreateOrder(context.WithoutCancel(ctx), params)
	if err != nil {
		slog.Error("Failed to create order after payment",
			"session_id", sess.ID,
			"transaction_id", result.TransactionID,
			"error", err,
		)
		s.fail(sess, reasonOrderNotSaved)

		return order.Order{}, s.summaryOf(sess, snap), fmt.Errorf("failed to create order: %w", err)
	}

	var summary Summary
	_ = sess.Do(func(st *checkout.State) error {
		sess.Cart().Clear()
		st.Complete(created.ID)
		summary = s.summarize(sess, st, snap)

		return nil
	})

	return created, summary, nil
}

func (s *CheckoutService) fail(sess *sessionsvc.Session, reason string) {
	_ = sess.Do(func(st *checkout.State) error {
		st.Fail(reason)

		return nil
	})
}

func (s *CheckoutService) summaryOf(sess *sessionsvc.Session, snap snapshot) Summary {
	var summary Summary
	_ = sess.Do(func(st *checkout.State) error {
		summary = s.summarize(sess, st, snap)

		return nil
	})

	return summary
}

// CreatePaymentIntent opens a two-phase payment for clients that confirm it themselves.
func (s *CheckoutService) CreatePaymentIntent(ctx context.Context, req payment.IntentRequest) (payment.Intent, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.CreatePaymentIntent")
	defer span.End()

	if err := payment.CheckAmount(req.AmountCents); err != nil {
		return payment.Intent{}, err
	}
	if req.Currency == "" {
		req.Currency = currency.CurrencyEUR
	}

	intent, err := s.gateway.CreateIntent(ctx, req)
	if err != nil {
		return payment.Intent{}, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return intent, nil
}
