package menusvc

import (
	"context"
	"errors"
	"testing"

	"github.com/corray333/backend-labs/storefront/internal/dal/memory"
	"github.com/corray333/backend-labs/storefront/internal/service/models/menuitem"
)

func newService(t *testing.T) *MenuService {
	t.Helper()

	s := MustNewMenuService(WithMenuRepository(memory.NewStore().Menu()))
	if err := s.SeedDefaults(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	return s
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	s := newService(t)
	if err := s.SeedDefaults(context.Background()); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	items, err := s.ListMenu(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != len(defaultMenu) {
		t.Errorf("menu has %d items, want %d", len(items), len(defaultMenu))
	}
}

func TestPriceLookupSkipsUnavailable(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	if _, err := s.ToggleAvailability(ctx, "sc3"); err != nil {
		t.Fatal(err)
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		t.Fatal(err)
	}
	lookup := LookupFromCatalog(catalog)
	if price, ok := lookup("m1"); !ok || price != 2600 {
		t.Errorf("lookup(m1) = %d, %v; want 2600, true", price, ok)
	}
	if _, ok := lookup("sc3"); ok {
		t.Error("unavailable item resolved")
	}
	if _, ok := lookup("nope"); ok {
		t.Error("unknown item resolved")
	}
}

func TestAddMenuItem(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	tests := []struct {
		name    string
		item    menuitem.MenuItem
		wantErr error
	}{
		{
			name: "forced available",
			item: menuitem.MenuItem{ID: "x1", Category: "mains", PriceCents: 100, Names: map[string]string{"nl": "X"}},
		},
		{
			name:    "duplicate",
			item:    menuitem.MenuItem{ID: "m1", Category: "mains", Names: map[string]string{"nl": "Y"}},
			wantErr: menuitem.ErrDuplicateMenuItem,
		},
		{
			name:    "missing name",
			item:    menuitem.MenuItem{ID: "x2", Category: "mains"},
			wantErr: ErrInvalidItem,
		},
		{
			name:    "negative price",
			item:    menuitem.MenuItem{ID: "x3", Category: "mains", PriceCents: -1, Names: map[string]string{"nl": "Z"}},
			wantErr: ErrNegativePrice,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.AddMenuItem(ctx, tt.item)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && !got.IsAvailable {
				t.Error("new item is not available")
			}
		})
	}
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	price := int64(2800)
	updated, err := s.UpdateMenuItem(ctx, "m1", menuitem.Patch{PriceCents: &price})
	if err != nil {
		t.Fatal(err)
	}
	if updated.PriceCents != 2800 || updated.Name("nl") != "Lamskoteletten" {
		t.Errorf("unexpected item after update: %+v", updated)
	}

	if err := s.DeleteMenuItem(ctx, "m1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpdateMenuItem(ctx, "m1", menuitem.Patch{}); !errors.Is(err, menuitem.ErrMenuItemNotFound) {
		t.Errorf("err = %v, want ErrMenuItemNotFound", err)
	}
}
