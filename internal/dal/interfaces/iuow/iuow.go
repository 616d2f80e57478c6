package iuow

import (
	"context"

	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/idriverrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/iorderrepo"
)

// IUnitOfWork groups order and driver writes into one transaction.
// Repositories obtained before Begin run outside the transaction.
type IUnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	// Rollback is a no-op after Commit.
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	DriverRepository() idriverrepo.IDriverRepository
}

// Factory creates a fresh unit of work.
type Factory func() IUnitOfWork
