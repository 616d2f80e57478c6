package idriverrepo

import (
	"context"

	"github.com/corray333/backend-labs/storefront/internal/service/models/driver"
)

// IDriverRepository is an interface for driver repository.
type IDriverRepository interface {
	Create(ctx context.Context, d driver.Driver) error
	Get(ctx context.Context, id string) (driver.Driver, error)
	GetForUpdate(ctx context.Context, id string) (driver.Driver, error)
	Update(ctx context.Context, d driver.Driver) error
	Delete(ctx context.Context, id string) error
	// List returns drivers ordered by id.
	List(ctx context.Context, filter *driver.QueryDriversModel) ([]driver.Driver, error)
}
