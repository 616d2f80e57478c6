package menusvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/imenurepo"
	"github.com/corray333/backend-labs/storefront/internal/service/models/menuitem"
	"github.com/corray333/backend-labs/storefront/internal/service/pricing"
	"go.opentelemetry.io/otel"
)

var (
	ErrInvalidItem   = errors.New("menu item needs an id, a category and a name")
	ErrNegativePrice = errors.New("menu item price cannot be negative")
)

// MenuService manages the menu catalog.
type MenuService struct {
	menuRepo imenurepo.IMenuRepository
}

// option is a function that configures the MenuService.
type option func(*MenuService)

// MustNewMenuService creates a new MenuService.
func MustNewMenuService(opts ...option) *MenuService {
	s := &MenuService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.menuRepo == nil {
		panic("menusvc: menu repository is required")
	}

	return s
}

// WithMenuRepository sets the menu repository for the MenuService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMenuRepository(repo imenurepo.IMenuRepository) option {
	return func(s *MenuService) {
		s.menuRepo = repo
	}
}

// SeedDefaults fills an empty catalog with the default menu.
func (s *MenuService) SeedDefaults(ctx context.Context) error {
	items, err := s.menuRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list menu: %w", err)
	}
	if len(items) > 0 {
		return nil
	}

	defaults := DefaultMenu(time.Now())
	if err := s.menuRepo.Create(ctx, defaults...); err != nil {
		return fmt.Errorf("failed to seed menu: %w", err)
	}
	slog.Info("Menu seeded with defaults", "items", len(defaults))

	return nil
}

// ListMenu returns every item, available or not.
func (s *MenuService) ListMenu(ctx context.Context) ([]menuitem.MenuItem, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.ListMenu")
	defer span.End()

	items, err := s.menuRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}

	return items, nil
}

// GetAvailableItems returns the items customers can order.
func (s *MenuService) GetAvailableItems(ctx context.Context) ([]menuitem.MenuItem, error) {
	items, err := s.ListMenu(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]menuitem.MenuItem, 0, len(items))
	for _, item := range items {
		if item.IsAvailable {
			available = append(available, item)
		}
	}

	return available, nil
}

// Catalog returns the available items keyed by id.
func (s *MenuService) Catalog(ctx context.Context) (map[string]menuitem.MenuItem, error) {
	items, err := s.GetAvailableItems(ctx)
	if err != nil {
		return nil, err
	}

	catalog := make(map[string]menuitem.MenuItem, len(items))
	for _, item := range items {
		catalog[item.ID] = item
	}

	return catalog, nil
}

// LookupFromCatalog builds a price lookup over a catalog snapshot.
// Unavailable items do not resolve.
func LookupFromCatalog(catalog map[string]menuitem.MenuItem) pricing.PriceLookup {
	return func(itemID string) (int64, bool) {
		item, ok := catalog[itemID]
		if !ok || !item.IsAvailable {
			return 0, false
		}

		return item.PriceCents, true
	}
}

// AddMenuItem stores a new item. New items are always available.
func (s *MenuService) AddMenuItem(ctx context.Context, item menuitem.MenuItem) (menuitem.MenuItem, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.AddMenuItem")
	defer span.End()

	if item.ID == "" || item.Category == "" || len(item.Names) == 0 {
		return menuitem.MenuItem{}, ErrInvalidItem
	}
	if item.PriceCents < 0 {
		return menuitem.MenuItem{}, ErrNegativePrice
	}

	now := time.Now()
	item.IsAvailable = true
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.menuRepo.Create(ctx, item); err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("failed to add menu item: %w", err)
	}

	return item, nil
}

// UpdateMenuItem merges patch into the stored item.
func (s *MenuService) UpdateMenuItem(
	ctx context.Context,
	id string,
	patch menuitem.Patch,
) (menuitem.MenuItem, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.UpdateMenuItem")
	defer span.End()

	if patch.PriceCents != nil && *patch.PriceCents < 0 {
		return menuitem.MenuItem{}, ErrNegativePrice
	}

	return s.mutate(ctx, id, patch.Apply)
}

// ToggleAvailability flips the availability flag.
func (s *MenuService) ToggleAvailability(ctx context.Context, id string) (menuitem.MenuItem, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.ToggleAvailability")
	defer span.End()

	return s.mutate(ctx, id, func(item *menuitem.MenuItem) {
		item.IsAvailable = !item.IsAvailable
	})
}

func (s *MenuService) mutate(
	ctx context.Context,
	id string,
	fn func(item *menuitem.MenuItem),
) (menuitem.MenuItem, error) {
	item, err := s.menuRepo.Get(ctx, id)
	if err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("failed to get menu item: %w", err)
	}

	fn(&item)
	item.UpdatedAt = time.Now()

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("failed to update menu item: %w", err)
	}

	return item, nil
}

// DeleteMenuItem removes an item. Placed orders keep their snapshot.
func (s *MenuService) DeleteMenuItem(ctx context.Context, id string) error {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.DeleteMenuItem")
	defer span.End()

	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	return nil
}
