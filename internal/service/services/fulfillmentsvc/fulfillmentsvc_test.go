package fulfillmentsvc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/dal/memory"
	"github.com/corray333/backend-labs/storefront/internal/service/models/cart"
	"github.com/corray333/backend-labs/storefront/internal/service/models/driver"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/services/fulfillmentsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/menusvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/settingssvc"
)

type fixture struct {
	store       *memory.Store
	orders      *ordersvc.OrderService
	fulfillment *fulfillmentsvc.FulfillmentService
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	store := memory.NewStore()
	menu := menusvc.MustNewMenuService(menusvc.WithMenuRepository(store.Menu()))
	if err := menu.SeedDefaults(context.Background()); err != nil {
		t.Fatal(err)
	}
	orders := ordersvc.MustNewOrderService(
		ordersvc.WithUnitOfWork(store.UnitOfWorkFactory()),
		ordersvc.WithCatalog(menu),
		ordersvc.WithSettings(settingssvc.MustNewSettingsService(settingssvc.WithSettingsRepository(store.Settings()))),
	)

	return fixture{
		store:  store,
		orders: orders,
		fulfillment: fulfillmentsvc.MustNewFulfillmentService(
			fulfillmentsvc.WithUnitOfWork(store.UnitOfWorkFactory()),
			fulfillmentsvc.WithOrderReader(orders),
		),
	}
}

func (f fixture) order(t *testing.T) order.Order {
	t.Helper()

	o, err := f.orders.CreateOrder(context.Background(), ordersvc.CreateOrderParams{
		Lines:         []cart.Line{{ItemID: "m1", Quantity: 1}},
		DeliveryType:  order.DeliveryTypeDelivery,
		PaymentMethod: order.PaymentMethodCash,
		PaymentStatus: order.PaymentStatusUnpaid,
	})
	if err != nil {
		t.Fatal(err)
	}

	return o
}

func (f fixture) driver(t *testing.T, name string) driver.Driver {
	t.Helper()

	d, err := f.fulfillment.AddDriver(context.Background(), name, "0612345678")
	if err != nil {
		t.Fatal(err)
	}

	return d
}

func (f fixture) deliveries(t *testing.T) map[string]driver.Driver {
	t.Helper()

	all, err := f.fulfillment.ListDrivers(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	out := make(map[string]driver.Driver, len(all))
	for _, d := range all {
		out[d.ID] = d
	}

	return out
}

func ptr(s string) *string { return &s }

func TestAddDriverGeneratesSequentialIDs(t *testing.T) {
	f := newFixture(t)

	first := f.driver(t, "Jan")
	second := f.driver(t, "Piet")
	if first.ID != "DRV-001" || second.ID != "DRV-002" {
		t.Fatalf("ids = %s, %s", first.ID, second.ID)
	}
	if first.Status != driver.StatusAvailable || first.ActiveDeliveries != 0 {
		t.Errorf("unexpected new driver %+v", first)
	}

	if err := f.fulfillment.RemoveDriver(context.Background(), first.ID); err != nil {
		t.Fatal(err)
	}
	if third := f.driver(t, "Klaas"); third.ID != "DRV-003" {
		t.Errorf("id after removal = %s, want DRV-003", third.ID)
	}

	if _, err := f.fulfillment.AddDriver(context.Background(), "J", ""); !errors.Is(err, fulfillmentsvc.ErrInvalidDriver) {
		t.Errorf("err = %v, want ErrInvalidDriver", err)
	}
}

func TestAddDriverWaitsForOpenUnitOfWork(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	work := f.store.NewUnitOfWork()
	if err := work.Begin(ctx); err != nil {
		t.Fatal(err)
	}

	type result struct {
		d   driver.Driver
		err error
	}
	done := make(chan result, 1)
	go func() {
		d, err := f.fulfillment.AddDriver(ctx, "Nikos", "+31612345678")
		done <- result{d, err}
	}()

	time.Sleep(50 * time.Millisecond)
	if err := work.Rollback(ctx); err != nil {
		t.Fatal(err)
	}

	res := <-done
	if res.err != nil {
		t.Fatal(res.err)
	}
	if _, err := f.store.Drivers().Get(ctx, res.d.ID); err != nil {
		t.Fatalf("driver %s lost after an unrelated rollback: %v", res.d.ID, err)
	}
}

func TestReassignmentMovesDeliveryCount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	o := f.order(t)
	f.driver(t, "Jan")
	f.driver(t, "Piet")

	got, err := f.fulfillment.AssignDriver(ctx, o.ID, ptr("DRV-001"))
	if err != nil {
		t.Fatal(err)
	}
	if got.DriverID() != "DRV-001" {
		t.Fatalf("assigned %q", got.DriverID())
	}

	got, err = f.fulfillment.AssignDriver(ctx, o.ID, ptr("DRV-002"))
	if err != nil {
		t.Fatal(err)
	}
	if got.DriverID() != "DRV-002" {
		t.Fatalf("assigned %q", got.DriverID())
	}

	drivers := f.deliveries(t)
	if n := drivers["DRV-001"].ActiveDeliveries; n != 0 {
		t.Errorf("DRV-001 deliveries = %d, want 0", n)
	}
	if d := drivers["DRV-002"]; d.ActiveDeliveries != 1 || d.Status != driver.StatusBusy {
		t.Errorf("DRV-002 = %+v, want 1 delivery and busy", d)
	}

	// Same driver again changes nothing.
	if _, err := f.fulfillment.AssignDriver(ctx, o.ID, ptr("DRV-002")); err != nil {
		t.Fatal(err)
	}
	if n := f.deliveries(t)["DRV-002"].ActiveDeliveries; n != 1 {
		t.Errorf("DRV-002 deliveries after repeat = %d, want 1", n)
	}

	got, err = f.fulfillment.AssignDriver(ctx, o.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.AssignedDriver != nil {
		t.Errorf("still assigned to %q", got.DriverID())
	}
	if n := f.deliveries(t)["DRV-002"].ActiveDeliveries; n != 0 {
		t.Errorf("DRV-002 deliveries after unassign = %d, want 0", n)
	}
}

func TestAssignDriverRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	o := f.order(t)
	d := f.driver(t, "Jan")
	if _, err := f.fulfillment.UpdateDriverStatus(ctx, d.ID, driver.StatusOffline); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		orderID string
		driver  *string
		wantErr error
	}{
		{"offline driver", o.ID, ptr(d.ID), driver.ErrDriverOffline},
		{"unknown driver", o.ID, ptr("DRV-404"), driver.ErrDriverNotFound},
		{"unknown order", "ORD-404", ptr(d.ID), order.ErrOrderNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.fulfillment.AssignDriver(ctx, tt.orderID, tt.driver); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	stored, err := f.orders.GetOrder(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.AssignedDriver != nil {
		t.Errorf("order assigned to %q after rejections", stored.DriverID())
	}
}

func TestRemoveDriverUnassignsOrders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	o := f.order(t)
	d := f.driver(t, "Jan")
	if _, err := f.fulfillment.AssignDriver(ctx, o.ID, ptr(d.ID)); err != nil {
		t.Fatal(err)
	}

	if err := f.fulfillment.RemoveDriver(ctx, d.ID); err != nil {
		t.Fatal(err)
	}

	stored, err := f.orders.GetOrder(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.AssignedDriver != nil {
		t.Errorf("order still assigned to %q", stored.DriverID())
	}
	if err := f.fulfillment.RemoveDriver(ctx, d.ID); !errors.Is(err, driver.ErrDriverNotFound) {
		t.Errorf("err = %v, want ErrDriverNotFound", err)
	}
}

func TestDriverUpdates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	d := f.driver(t, "Jan")

	if _, err := f.fulfillment.SetActiveDeliveries(ctx, d.ID, -1); !errors.Is(err, driver.ErrNegativeDeliveries) {
		t.Errorf("err = %v, want ErrNegativeDeliveries", err)
	}
	got, err := f.fulfillment.SetActiveDeliveries(ctx, d.ID, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got.ActiveDeliveries != 3 || got.Status != driver.StatusAvailable {
		t.Errorf("unexpected driver %+v", got)
	}

	if _, err := f.fulfillment.UpdateDriverStatus(ctx, d.ID, driver.StatusOffline); err != nil {
		t.Fatal(err)
	}
	available, err := f.fulfillment.ListDrivers(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(available) != 0 {
		t.Errorf("offline driver listed as available: %+v", available)
	}
}
