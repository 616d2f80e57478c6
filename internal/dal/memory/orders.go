package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/models/orderitem"
)

// OrderRepository keeps orders and their staff notes.
type OrderRepository struct {
	s *Store
}

// Orders returns the order repository of the store.
func (s *Store) Orders() *OrderRepository {
	return &OrderRepository{s: s}
}

func (r *OrderRepository) Create(_ context.Context, o order.Order) error {
	return r.s.write(func(d *collections) error {
		if _, ok := d.Orders[o.ID]; ok {
			return order.ErrDuplicateOrderID
		}
		o = o.Clone()
		o.Items = nil
		o.StaffNotes = nil
		d.Orders[o.ID] = o

		return nil
	})
}

func (r *OrderRepository) Get(_ context.Context, id string) (order.Order, error) {
	var o order.Order
	err := r.s.read(func(d *collections) error {
		stored, ok := d.Orders[id]
		if !ok {
			return order.ErrOrderNotFound
		}
		o = stored.Clone()

		return nil
	})

	return o, err
}

// GetForUpdate is Get: units of work are already serialized.
func (r *OrderRepository) GetForUpdate(ctx context.Context, id string) (order.Order, error) {
	return r.Get(ctx, id)
}

func (r *OrderRepository) Update(_ context.Context, o order.Order) error {
	return r.s.write(func(d *collections) error {
		if _, ok := d.Orders[o.ID]; !ok {
			return order.ErrOrderNotFound
		}
		o = o.Clone()
		o.Items = nil
		o.StaffNotes = nil
		d.Orders[o.ID] = o

		return nil
	})
}

func (r *OrderRepository) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	var result []order.Order
	err := r.s.read(func(d *collections) error {
		for _, o := range d.Orders {
			if matches(o, filter) {
				result = append(result, o.Clone())
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(result, func(a, b order.Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(b.ID, a.ID)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []order.Order{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}

func matches(o order.Order, f *order.QueryOrdersModel) bool {
	if len(f.Ids) > 0 && !slices.Contains(f.Ids, o.ID) {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, o.Status) {
		return false
	}
	if slices.Contains(f.ExcludeStatuses, o.Status) {
		return false
	}
	if len(f.AssignedDriverIds) > 0 && !slices.Contains(f.AssignedDriverIds, o.DriverID()) {
		return false
	}
	if f.OnlySettled && !o.IsSettled() {
		return false
	}

	return true
}

func (r *OrderRepository) AddStaffNote(_ context.Context, orderID string, note order.StaffNote) error {
	return r.s.write(func(d *collections) error {
		if _, ok := d.Orders[orderID]; !ok {
			return order.ErrOrderNotFound
		}
		d.StaffNotes[orderID] = append(d.StaffNotes[orderID], note)

		return nil
	})
}

func (r *OrderRepository) StaffNotes(_ context.Context, orderIDs []string) (map[string][]order.StaffNote, error) {
	result := make(map[string][]order.StaffNote, len(orderIDs))
	err := r.s.read(func(d *collections) error {
		for _, id := range orderIDs {
			if notes := d.StaffNotes[id]; len(notes) > 0 {
				result[id] = append([]order.StaffNote(nil), notes...)
			}
		}

		return nil
	})

	return result, err
}

// OrderItemRepository keeps order lines.
type OrderItemRepository struct {
	s *Store
}

// OrderItems returns the order item repository of the store.
func (s *Store) OrderItems() *OrderItemRepository {
	return &OrderItemRepository{s: s}
}

func (r *OrderItemRepository) BulkInsert(
	_ context.Context,
	orderItems []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	result := make([]orderitem.OrderItem, 0, len(orderItems))
	err := r.s.write(func(d *collections) error {
		for _, item := range orderItems {
			d.Seq.OrderItem++
			item.ID = d.Seq.OrderItem
			d.OrderItems = append(d.OrderItems, orderItemRecord{ID: item.ID, OrderID: item.OrderID, Item: item})
			result = append(result, item)
		}

		return nil
	})

	return result, err
}

func (r *OrderItemRepository) Query(
	_ context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	var result []orderitem.OrderItem
	err := r.s.read(func(d *collections) error {
		for _, rec := range d.OrderItems {
			if len(filter.OrderIds) == 0 || slices.Contains(filter.OrderIds, rec.OrderID) {
				result = append(result, rec.model())
			}
		}

		return nil
	})

	return result, err
}
