package iorderrepo

import (
	"context"

	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
)

// IOrderRepository is an interface for order repository.
// Returned orders carry no items or staff notes; those live in their own tables.
type IOrderRepository interface {
	Create(ctx context.Context, o order.Order) error
	Get(ctx context.Context, id string) (order.Order, error)
	// GetForUpdate reads the order and locks it until the unit of work ends.
	GetForUpdate(ctx context.Context, id string) (order.Order, error)
	Update(ctx context.Context, o order.Order) error
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)

	AddStaffNote(ctx context.Context, orderID string, note order.StaffNote) error
	StaffNotes(ctx context.Context, orderIDs []string) (map[string][]order.StaffNote, error)
}
