package checkoutsvc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/corray333/backend-labs/storefront/internal/dal/memory"
	"github.com/corray333/backend-labs/storefront/internal/service/models/checkout"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/models/settings"
	"github.com/corray333/backend-labs/storefront/internal/service/payment"
	"github.com/corray333/backend-labs/storefront/internal/service/payment/mock"
	"github.com/corray333/backend-labs/storefront/internal/service/services/checkoutsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/menusvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/sessionsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/settingssvc"
)

var customer = order.CustomerInfo{
	Name:       "Anna",
	Email:      "anna@example.com",
	Phone:      "0612345678",
	Address:    "Denneweg 10",
	PostalCode: "2514 CG",
	City:       "Den Haag",
}

type fixture struct {
	sessions *sessionsvc.SessionService
	orders   *ordersvc.OrderService
	settings *settingssvc.SettingsService
	checkout *checkoutsvc.CheckoutService
	gateway  *mock.Gateway
}

func newFixture(t *testing.T, gateway *mock.Gateway) fixture {
	t.Helper()

	store := memory.NewStore()
	menu := menusvc.MustNewMenuService(menusvc.WithMenuRepository(store.Menu()))
	if err := menu.SeedDefaults(context.Background()); err != nil {
		t.Fatal(err)
	}
	st := settingssvc.MustNewSettingsService(settingssvc.WithSettingsRepository(store.Settings()))
	orders := ordersvc.MustNewOrderService(
		ordersvc.WithUnitOfWork(store.UnitOfWorkFactory()),
		ordersvc.WithCatalog(menu),
		ordersvc.WithSettings(st),
	)
	sessions := sessionsvc.MustNewSessionService(sessionsvc.WithCatalog(menu))

	return fixture{
		sessions: sessions,
		orders:   orders,
		settings: st,
		gateway:  gateway,
		checkout: checkoutsvc.MustNewCheckoutService(
			checkoutsvc.WithSessions(sessions),
			checkoutsvc.WithCatalog(menu),
			checkoutsvc.WithSettings(st),
			checkoutsvc.WithOrders(orders),
			checkoutsvc.WithGateway(gateway),
		),
	}
}

// toPayment fills the cart and walks the session to the payment step.
func (f fixture) toPayment(t *testing.T, session string, method order.PaymentMethod, items ...string) {
	t.Helper()
	ctx := context.Background()

	for _, id := range items {
		if _, err := f.sessions.AddToCart(ctx, session, id); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.checkout.SetCustomer(ctx, session, customer, "nl"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.checkout.SetPaymentMethod(ctx, session, method); err != nil {
		t.Fatal(err)
	}
	if _, err := f.checkout.Continue(ctx, session); err != nil {
		t.Fatal(err)
	}
}

func (f fixture) orderCount(t *testing.T) int {
	t.Helper()

	all, err := f.orders.ListOrders(context.Background(), order.QueryOrdersModel{})
	if err != nil {
		t.Fatal(err)
	}

	return len(all)
}

func TestViewTotals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, mock.AlwaysSucceed())
	for range 2 {
		if _, err := f.sessions.AddToCart(ctx, "s1", "m1"); err != nil {
			t.Fatal(err)
		}
	}

	summary, err := f.checkout.View(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Totals.SubtotalCents != 5200 || summary.Totals.DeliveryFeeCents != 0 || summary.Totals.TotalCents != 5200 {
		t.Errorf("totals = %+v, want 5200 free delivery", summary.Totals)
	}
	if !summary.MeetsMinimum || summary.MinOrderAmountCents != 1500 {
		t.Errorf("minimum = %v/%d", summary.MeetsMinimum, summary.MinOrderAmountCents)
	}
	if summary.State.Step != checkout.StepDetails {
		t.Errorf("step = %s, want details", summary.State.Step)
	}
}

func TestContinueBlockedBelowMinimum(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, mock.AlwaysSucceed())
	if _, err := f.sessions.AddToCart(ctx, "s1", "sc3"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.checkout.SetCustomer(ctx, "s1", customer, ""); err != nil {
		t.Fatal(err)
	}

	summary, err := f.checkout.Continue(ctx, "s1")
	var minErr *checkout.MinimumOrderError
	if !errors.As(err, &minErr) {
		t.Fatalf("err = %v, want MinimumOrderError", err)
	}
	if minErr.SubtotalCents != 500 || minErr.MinimumCents != 1500 {
		t.Errorf("minimum error = %+v", minErr)
	}
	if summary.MeetsMinimum || summary.Totals.DeliveryFeeCents != 295 || summary.State.Step != checkout.StepDetails {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestContinueWhenClosed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, mock.AlwaysSucceed())
	closed := false
	if _, err := f.settings.UpdateSettings(ctx, settings.Patch{AcceptingOrders: &closed}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.sessions.AddToCart(ctx, "s1", "m1"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.checkout.SetCustomer(ctx, "s1", customer, ""); err != nil {
		t.Fatal(err)
	}

	if _, err := f.checkout.Continue(ctx, "s1"); !errors.Is(err, checkoutsvc.ErrNotAcceptingOrders) {
		t.Errorf("err = %v, want ErrNotAcceptingOrders", err)
	}
}

func TestPayCash(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, mock.AlwaysFail())
	f.toPayment(t, "s1", order.PaymentMethodCash, "m1")

	created, summary, err := f.checkout.Pay(ctx, "s1", payment.Proof{})
	if err != nil {
		t.Fatal(err)
	}
	if created.Payment.Status != order.PaymentStatusUnpaid || created.Payment.Method != order.PaymentMethodCash {
		t.Errorf("payment = %+v, want unpaid cash", created.Payment)
	}
	if created.TotalCents != 2600+295 {
		t.Errorf("total = %d, want %d", created.TotalCents, 2600+295)
	}
	if f.gateway.Calls() != 0 {
		t.Errorf("cash order reached the gateway %d times", f.gateway.Calls())
	}
	if summary.State.Step != checkout.StepOrderCreated || summary.State.OrderID != created.ID {
		t.Errorf("state = %+v", summary.State)
	}
	if len(summary.Cart) != 0 {
		t.Errorf("cart not cleared: %+v", summary.Cart)
	}
}

func TestPayCard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, mock.AlwaysSucceed())
	f.toPayment(t, "s1", order.PaymentMethodCard, "m1", "m1")

	created, _, err := f.checkout.Pay(ctx, "s1", payment.Proof{Token: "tok_visa"})
	if err != nil {
		t.Fatal(err)
	}
	if created.Payment.Status != order.PaymentStatusPaid || created.Payment.TransactionID == "" {
		t.Errorf("payment = %+v, want paid with transaction", created.Payment)
	}
	if created.Payment.PaidAt == nil {
		t.Error("paid order has no paidAt")
	}
	if created.TotalCents != 5200 {
		t.Errorf("total = %d, want 5200", created.TotalCents)
	}
	if created.Customer.Name != "Anna" || created.Language != "nl" {
		t.Errorf("customer = %+v, language %q", created.Customer, created.Language)
	}
}

func TestPayDeclined(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, mock.AlwaysFail())
	f.toPayment(t, "s1", order.PaymentMethodIdeal, "m1")

	_, summary, err := f.checkout.Pay(ctx, "s1", payment.Proof{})
	var payErr *checkoutsvc.PaymentError
	if !errors.As(err, &payErr) || payErr.Reason != payment.ReasonDeclined {
		t.Fatalf("err = %v, want declined PaymentError", err)
	}
	if summary.State.Step != checkout.StepPayment || summary.State.PaymentError != payment.ReasonDeclined {
		t.Errorf("state = %+v, want payment step with reason", summary.State)
	}
	if len(summary.Cart) != 1 {
		t.Errorf("cart changed after declined payment: %+v", summary.Cart)
	}
	if n := f.orderCount(t); n != 0 {
		t.Errorf("orders = %d, want 0", n)
	}

	// Retrying uses a new attempt and reaches the gateway again.
	if _, _, err := f.checkout.Pay(ctx, "s1", payment.Proof{}); err == nil {
		t.Fatal("second attempt succeeded on a failing gateway")
	}
	if f.gateway.Calls() != 2 {
		t.Errorf("gateway calls = %d, want 2", f.gateway.Calls())
	}
}

func TestPayOutsidePaymentStep(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, mock.AlwaysSucceed())
	if _, err := f.sessions.AddToCart(ctx, "s1", "m1"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := f.checkout.Pay(ctx, "s1", payment.Proof{}); !errors.Is(err, checkout.ErrWrongStep) {
		t.Errorf("err = %v, want ErrWrongStep", err)
	}
	if n := f.orderCount(t); n != 0 {
		t.Errorf("orders = %d, want 0", n)
	}
}

func TestBackAndCartEditAfterOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, mock.AlwaysSucceed())
	f.toPayment(t, "s1", order.PaymentMethodCard, "m1")

	summary, err := f.checkout.Back(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if summary.State.Step != checkout.StepDetails {
		t.Fatalf("step = %s, want details", summary.State.Step)
	}
	if _, err := f.checkout.Continue(ctx, "s1"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := f.checkout.Pay(ctx, "s1", payment.Proof{}); err != nil {
		t.Fatal(err)
	}

	sess, err := f.sessions.AddToCart(ctx, "s1", "d1")
	if err != nil {
		t.Fatal(err)
	}
	if step := sess.Checkout().Step; step != checkout.StepDetails {
		t.Errorf("step after new cart edit = %s, want details", step)
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	f := newFixture(t, mock.AlwaysSucceed())

	if _, err := f.checkout.CreatePaymentIntent(context.Background(), payment.IntentRequest{AmountCents: 50}); !errors.Is(err, payment.ErrAmountTooSmall) {
		t.Errorf("err = %v, want ErrAmountTooSmall", err)
	}
	intent, err := f.checkout.CreatePaymentIntent(context.Background(), payment.IntentRequest{AmountCents: 2600})
	if err != nil {
		t.Fatal(err)
	}
	if intent.ClientSecret == "" || intent.PaymentIntentID == "" {
		t.Errorf("unexpected intent %+v", intent)
	}
}

func TestPayWithConfirmedIntent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, mock.AlwaysSucceed())
	f.toPayment(t, "s1", order.PaymentMethodIdeal, "m1", "m1")

	view, err := f.checkout.View(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	total := view.Totals.TotalCents

	short, err := f.checkout.CreatePaymentIntent(ctx, payment.IntentRequest{AmountCents: total - 100})
	if err != nil {
		t.Fatal(err)
	}
	_, summary, err := f.checkout.Pay(ctx, "s1", payment.Proof{IntentID: short.PaymentIntentID})
	var payErr *checkoutsvc.PaymentError
	if !errors.As(err, &payErr) || payErr.Reason != payment.ReasonIntentMismatch {
		t.Fatalf("err = %v, want intent mismatch", err)
	}
	if summary.State.Step != checkout.StepPayment {
		t.Errorf("step = %s, want payment", summary.State.Step)
	}

	intent, err := f.checkout.CreatePaymentIntent(ctx, payment.IntentRequest{AmountCents: total})
	if err != nil {
		t.Fatal(err)
	}
	created, _, err := f.checkout.Pay(ctx, "s1", payment.Proof{IntentID: intent.PaymentIntentID})
	if err != nil {
		t.Fatal(err)
	}
	if created.Payment.Status != order.PaymentStatusPaid || created.Payment.TransactionID != intent.PaymentIntentID {
		t.Errorf("payment = %+v, want paid by %s", created.Payment, intent.PaymentIntentID)
	}

	// The same intent cannot pay for a second order.
	f.toPayment(t, "s2", order.PaymentMethodIdeal, "m1", "m1")
	_, _, err = f.checkout.Pay(ctx, "s2", payment.Proof{IntentID: intent.PaymentIntentID})
	if !errors.As(err, &payErr) || payErr.Reason != payment.ReasonIntentUsed {
		t.Errorf("err = %v, want intent already used", err)
	}

	_, _, err = f.checkout.Pay(ctx, "s2", payment.Proof{IntentID: "pi_unknown"})
	if !errors.As(err, &payErr) || payErr.Reason != payment.ReasonIntentNotFound {
		t.Errorf("err = %v, want intent not found", err)
	}
	if n := f.orderCount(t); n != 1 {
		t.Errorf("orders = %d, want 1", n)
	}
}
