package imenurepo

import (
	"context"

	"github.com/corray333/backend-labs/storefront/internal/service/models/menuitem"
)

// IMenuRepository is an interface for the menu catalog.
type IMenuRepository interface {
	// List returns all items ordered by category and id.
	List(ctx context.Context) ([]menuitem.MenuItem, error)
	Get(ctx context.Context, id string) (menuitem.MenuItem, error)
	Create(ctx context.Context, items ...menuitem.MenuItem) error
	Update(ctx context.Context, item menuitem.MenuItem) error
	Delete(ctx context.Context, id string) error
}
