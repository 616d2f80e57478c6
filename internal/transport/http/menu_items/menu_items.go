package menuitems

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/storefront/internal/service/models/currency"
	"github.com/corray333/backend-labs/storefront/internal/service/models/menuitem"
	"github.com/corray333/backend-labs/storefront/internal/transport/http/respond"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// service is an interface for the service layer.
type service interface {
	ListMenu(ctx context.Context) ([]menuitem.MenuItem, error)
	GetAvailableItems(ctx context.Context) ([]menuitem.MenuItem, error)
	AddMenuItem(ctx context.Context, item menuitem.MenuItem) (menuitem.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, patch menuitem.Patch) (menuitem.MenuItem, error)
	ToggleAvailability(ctx context.Context, id string) (menuitem.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
}

// menuItemResponse adds the euro price to the stored item.
type menuItemResponse struct {
	menuitem.MenuItem
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func toResponse(item menuitem.MenuItem, language string) menuItemResponse {
	return menuItemResponse{
		MenuItem: item,
		Name:     item.Name(language),
		Price:    currency.FromCents(item.PriceCents),
	}
}

func toResponses(items []menuitem.MenuItem, language string) []menuItemResponse {
	out := make([]menuItemResponse, len(items))
	for i, item := range items {
		out[i] = toResponse(item, language)
	}

	return out
}

// createMenuItemRequest represents a new menu item.
type createMenuItemRequest struct {
	ID           string            `json:"id"           validate:"required"`
	Category     string            `json:"category"     validate:"required"`
	Price        decimal.Decimal   `json:"price"`
	Names        map[string]string `json:"names"        validate:"required,min=1"`
	Descriptions map[string]string `json:"descriptions"`
	Image        string            `json:"image"`
}

// toModel converts createMenuItemRequest to menuitem.MenuItem.
func (r *createMenuItemRequest) toModel() (menuitem.MenuItem, error) {
	cents, err := currency.ToCents(r.Price)
	if err != nil {
		return menuitem.MenuItem{}, err
	}

	return menuitem.MenuItem{
		ID:           r.ID,
		Category:     r.Category,
		PriceCents:   cents,
		Names:        r.Names,
		Descriptions: r.Descriptions,
		Image:        r.Image,
	}, nil
}

// updateMenuItemRequest holds the fields to change.
type updateMenuItemRequest struct {
	Category     *string           `json:"category"`
	Price        *decimal.Decimal  `json:"price"`
	Names        map[string]string `json:"names"`
	Descriptions map[string]string `json:"descriptions"`
	Image        *string           `json:"image"`
	IsAvailable  *bool             `json:"isAvailable"`
}

// toPatch converts updateMenuItemRequest to menuitem.Patch.
func (r *updateMenuItemRequest) toPatch() (menuitem.Patch, error) {
	patch := menuitem.Patch{
		Category:     r.Category,
		Names:        r.Names,
		Descriptions: r.Descriptions,
		Image:        r.Image,
		IsAvailable:  r.IsAvailable,
	}
	if r.Price != nil {
		cents, err := currency.ToCents(*r.Price)
		if err != nil {
			return menuitem.Patch{}, err
		}
		patch.PriceCents = &cents
	}

	return patch, nil
}

// ListAvailable handles the customer menu request.
func ListAvailable(w http.ResponseWriter, r *http.Request, service service) {
	items, err := service.GetAvailableItems(r.Context())
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponses(items, r.URL.Query().Get("lang")))
}

// ListAll handles the staff menu request, unavailable items included.
func ListAll(w http.ResponseWriter, r *http.Request, service service) {
	items, err := service.ListMenu(r.Context())
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponses(items, r.URL.Query().Get("lang")))
}

// Create handles the add menu item request.
func Create(w http.ResponseWriter, r *http.Request, service service) {
	req := createMenuItemRequest{}
	if !respond.Decode(w, r, &req) {
		return
	}

	model, err := req.toModel()
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	item, err := service.AddMenuItem(r.Context(), model)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(item, ""))
}

// Update handles the partial menu item update.
func Update(w http.ResponseWriter, r *http.Request, service service) {
	req := updateMenuItemRequest{}
	if !respond.Decode(w, r, &req) {
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	item, err := service.UpdateMenuItem(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(item, ""))
}

// Toggle flips the availability of a menu item.
func Toggle(w http.ResponseWriter, r *http.Request, service service) {
	item, err := service.ToggleAvailability(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(item, ""))
}

// Delete removes a menu item.
func Delete(w http.ResponseWriter, r *http.Request, service service) {
	if err := service.DeleteMenuItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
