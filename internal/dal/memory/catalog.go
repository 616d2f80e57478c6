package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/corray333/backend-labs/storefront/internal/service/models/menuitem"
	"github.com/corray333/backend-labs/storefront/internal/service/models/settings"
)

// MenuRepository keeps the menu catalog.
type MenuRepository struct {
	s *Store
}

// Menu returns the menu repository of the store.
func (s *Store) Menu() *MenuRepository {
	return &MenuRepository{s: s}
}

func (r *MenuRepository) List(_ context.Context) ([]menuitem.MenuItem, error) {
	var result []menuitem.MenuItem
	err := r.s.read(func(d *collections) error {
		for _, item := range d.Menu {
			result = append(result, item.Clone())
		}

		return nil
	})
	slices.SortFunc(result, func(a, b menuitem.MenuItem) int {
		if c := cmp.Compare(a.Category, b.Category); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	return result, err
}

func (r *MenuRepository) Get(_ context.Context, id string) (menuitem.MenuItem, error) {
	var item menuitem.MenuItem
	err := r.s.read(func(d *collections) error {
		stored, ok := d.Menu[id]
		if !ok {
			return menuitem.ErrMenuItemNotFound
		}
		item = stored.Clone()

		return nil
	})

	return item, err
}

func (r *MenuRepository) Create(_ context.Context, items ...menuitem.MenuItem) error {
	return r.s.write(func(d *collections) error {
		for _, item := range items {
			if _, ok := d.Menu[item.ID]; ok {
				return menuitem.ErrDuplicateMenuItem
			}
		}
		for _, item := range items {
			d.Menu[item.ID] = item.Clone()
		}

		return nil
	})
}

func (r *MenuRepository) Update(_ context.Context, item menuitem.MenuItem) error {
	return r.s.write(func(d *collections) error {
		if _, ok := d.Menu[item.ID]; !ok {
			return menuitem.ErrMenuItemNotFound
		}
		d.Menu[item.ID] = item.Clone()

		return nil
	})
}

func (r *MenuRepository) Delete(_ context.Context, id string) error {
	return r.s.write(func(d *collections) error {
		if _, ok := d.Menu[id]; !ok {
			return menuitem.ErrMenuItemNotFound
		}
		delete(d.Menu, id)

		return nil
	})
}

// SettingsRepository keeps the restaurant settings.
type SettingsRepository struct {
	s *Store
}

// Settings returns the settings repository of the store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{s: s}
}

func (r *SettingsRepository) Load(_ context.Context) (settings.Settings, error) {
	var out settings.Settings
	err := r.s.read(func(d *collections) error {
		if d.Settings == nil {
			return settings.ErrSettingsNotFound
		}
		out = *d.Settings

		return nil
	})

	return out, err
}

func (r *SettingsRepository) Save(_ context.Context, st settings.Settings) error {
	return r.s.write(func(d *collections) error {
		d.Settings = &st

		return nil
	})
}
