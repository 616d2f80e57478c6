package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/corray333/backend-labs/storefront/internal/service/models/driver"
)

// DriverRepository keeps delivery drivers.
type DriverRepository struct {
	s *Store
}

// Drivers returns the driver repository of the store.
func (s *Store) Drivers() *DriverRepository {
	return &DriverRepository{s: s}
}

func (r *DriverRepository) Create(_ context.Context, d driver.Driver) error {
	return r.s.write(func(c *collections) error {
		if _, ok := c.Drivers[d.ID]; ok {
			return driver.ErrDuplicateDriver
		}
		c.Drivers[d.ID] = d

		return nil
	})
}

func (r *DriverRepository) Get(_ context.Context, id string) (driver.Driver, error) {
	var d driver.Driver
	err := r.s.read(func(c *collections) error {
		stored, ok := c.Drivers[id]
		if !ok {
			return driver.ErrDriverNotFound
		}
		d = stored

		return nil
	})

	return d, err
}

func (r *DriverRepository) GetForUpdate(ctx context.Context, id string) (driver.Driver, error) {
	return r.Get(ctx, id)
}

func (r *DriverRepository) Update(_ context.Context, d driver.Driver) error {
	return r.s.write(func(c *collections) error {
		if _, ok := c.Drivers[d.ID]; !ok {
			return driver.ErrDriverNotFound
		}
		c.Drivers[d.ID] = d

		return nil
	})
}

func (r *DriverRepository) Delete(_ context.Context, id string) error {
	return r.s.write(func(c *collections) error {
		if _, ok := c.Drivers[id]; !ok {
			return driver.ErrDriverNotFound
		}
		delete(c.Drivers, id)

		return nil
	})
}

func (r *DriverRepository) List(_ context.Context, filter *driver.QueryDriversModel) ([]driver.Driver, error) {
	var result []driver.Driver
	err := r.s.read(func(c *collections) error {
		for _, d := range c.Drivers {
			if len(filter.Ids) > 0 && !slices.Contains(filter.Ids, d.ID) {
				continue
			}
			if !filter.IncludeOffline && d.Status == driver.StatusOffline {
				continue
			}
			result = append(result, d)
		}

		return nil
	})
	slices.SortFunc(result, func(a, b driver.Driver) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return result, err
}
