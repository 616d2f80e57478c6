package memory

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/service/models/driver"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/models/orderitem"
)

func newOrder(id string, createdAt time.Time) order.Order {
	return order.Order{
		ID:        id,
		Status:    order.StatusPending,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Payment:   order.Payment{Method: order.PaymentMethodCash, Status: order.PaymentStatusUnpaid},
	}
}

func TestRollbackRestoresOrdersAndDrivers(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	if err := s.Drivers().Create(ctx, driver.Driver{ID: "DRV-001", Status: driver.StatusAvailable}); err != nil {
		t.Fatal(err)
	}

	work := s.NewUnitOfWork()
	if err := work.Begin(ctx); err != nil {
		t.Fatal(err)
	}
	if err := work.OrderRepository().Create(ctx, newOrder("ORD-1", time.Now())); err != nil {
		t.Fatal(err)
	}
	d, err := work.DriverRepository().GetForUpdate(ctx, "DRV-001")
	if err != nil {
		t.Fatal(err)
	}
	d.Assign()
	if err := work.DriverRepository().Update(ctx, d); err != nil {
		t.Fatal(err)
	}
	if err := work.Rollback(ctx); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Orders().Get(ctx, "ORD-1"); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("order survived rollback: %v", err)
	}
	got, err := s.Drivers().Get(ctx, "DRV-001")
	if err != nil {
		t.Fatal(err)
	}
	if got.ActiveDeliveries != 0 || got.Status != driver.StatusAvailable {
		t.Errorf("driver not restored: %+v", got)
	}

	// A rolled back unit of work releases the lock for the next one.
	next := s.NewUnitOfWork()
	if err := next.Begin(ctx); err != nil {
		t.Fatal(err)
	}
	if err := next.Commit(ctx); err != nil {
		t.Fatal(err)
	}
	if err := next.Rollback(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestQueryOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"ORD-A", "ORD-B", "ORD-C"} {
		o := newOrder(id, base.Add(time.Duration(i)*time.Minute))
		if id == "ORD-B" {
			o.Status = order.StatusCompleted
		}
		if err := s.Orders().Create(ctx, o); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.Orders().Query(ctx, &order.QueryOrdersModel{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID != "ORD-C" || all[2].ID != "ORD-A" {
		t.Fatalf("unexpected order: %v", ids(all))
	}

	active, err := s.Orders().Query(ctx, &order.QueryOrdersModel{
		ExcludeStatuses: []order.Status{order.StatusCompleted, order.StatusCancelled},
		Limit:           1,
		Offset:          1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 1 || active[0].ID != "ORD-A" {
		t.Errorf("unexpected page: %v", ids(active))
	}
}

func TestFilePersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	s := MustNewStore(WithFile(path))
	if err := s.Orders().Create(ctx, newOrder("ORD-1", time.Now())); err != nil {
		t.Fatal(err)
	}
	if _, err := s.OrderItems().BulkInsert(ctx, []orderitem.OrderItem{
		{OrderID: "ORD-1", ItemID: "m1", Name: "Moussaka", PriceCents: 2600, Quantity: 2},
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.Orders().AddStaffNote(ctx, "ORD-1", order.StaffNote{ID: "n1", Text: "extra tzatziki"}); err != nil {
		t.Fatal(err)
	}

	reloaded := MustNewStore(WithFile(path))
	if _, err := reloaded.Orders().Get(ctx, "ORD-1"); err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	items, err := reloaded.OrderItems().Query(ctx, &orderitem.QueryOrderItemsModel{OrderIds: []string{"ORD-1"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != 1 || items[0].PriceCents != 2600 {
		t.Errorf("items not persisted: %+v", items)
	}
	notes, err := reloaded.Orders().StaffNotes(ctx, []string{"ORD-1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(notes["ORD-1"]) != 1 {
		t.Errorf("notes not persisted: %+v", notes)
	}
}

func ids(orders []order.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}

	return out
}
