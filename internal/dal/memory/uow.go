package memory

import (
	"context"
	"errors"

	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/idriverrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/iuow"
)

var ErrTxAlreadyStarted = errors.New("unit of work already started")

type unitOfWork struct {
	store  *Store
	snap   *snapshot
	closed bool
}

// NewUnitOfWork creates a unit of work over the store. Between Begin and
// Commit/Rollback no other unit of work can run, and Rollback restores
// orders, order items, staff notes and drivers.
func (s *Store) NewUnitOfWork() iuow.IUnitOfWork {
	return &unitOfWork{store: s}
}

// UnitOfWorkFactory adapts the store to iuow.Factory.
func (s *Store) UnitOfWorkFactory() iuow.Factory {
	return s.NewUnitOfWork
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.store.Orders()
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.store.OrderItems()
}

func (u *unitOfWork) DriverRepository() idriverrepo.IDriverRepository {
	return u.store.Drivers()
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.snap != nil {
		return ErrTxAlreadyStarted
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.txMu.Lock()
	snap := u.store.snapshot()
	u.snap = &snap

	return nil
}

func (u *unitOfWork) Commit(_ context.Context) error {
	if u.snap == nil || u.closed {
		return nil
	}
	u.closed = true
	u.store.txMu.Unlock()

	return nil
}

func (u *unitOfWork) Rollback(_ context.Context) error {
	if u.snap == nil || u.closed {
		return nil
	}
	u.closed = true
	u.store.restore(*u.snap)
	u.store.txMu.Unlock()

	return nil
}
