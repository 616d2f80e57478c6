package managedrivers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/corray333/backend-labs/storefront/internal/service/models/driver"
	"github.com/corray333/backend-labs/storefront/internal/transport/http/respond"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	ListDrivers(ctx context.Context, includeOffline bool) ([]driver.Driver, error)
	AddDriver(ctx context.Context, name, phone string) (driver.Driver, error)
	RemoveDriver(ctx context.Context, id string) error
	UpdateDriverStatus(ctx context.Context, id string, status driver.Status) (driver.Driver, error)
	SetActiveDeliveries(ctx context.Context, id string, n int) (driver.Driver, error)
}

type createDriverRequest struct {
	Name  string `json:"name"  validate:"required"`
	Phone string `json:"phone"`
}

// updateDriverRequest changes status, delivery count or both.
type updateDriverRequest struct {
	Status           *string `json:"status"`
	ActiveDeliveries *int    `json:"activeDeliveries"`
}

// List handles the driver listing. Offline drivers are shown unless
// available=true is passed.
func List(w http.ResponseWriter, r *http.Request, service service) {
	includeOffline := true
	if v := r.URL.Query().Get("available"); v != "" {
		onlyAvailable, err := strconv.ParseBool(v)
		if err != nil {
			respond.JSON(w, http.StatusBadRequest, respond.ErrorBody{Error: "available must be a boolean"})

			return
		}
		includeOffline = !onlyAvailable
	}

	drivers, err := service.ListDrivers(r.Context(), includeOffline)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, drivers)
}

// Create registers a driver.
func Create(w http.ResponseWriter, r *http.Request, service service) {
	req := createDriverRequest{}
	if !respond.Decode(w, r, &req) {
		return
	}

	d, err := service.AddDriver(r.Context(), req.Name, req.Phone)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, d)
}

// Delete removes a driver and unassigns its orders.
func Delete(w http.ResponseWriter, r *http.Request, service service) {
	if err := service.RemoveDriver(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.Error(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Update changes the status and/or delivery count of a driver.
func Update(w http.ResponseWriter, r *http.Request, service service) {
	req := updateDriverRequest{}
	if !respond.Decode(w, r, &req) {
		return
	}

	if req.Status == nil && req.ActiveDeliveries == nil {
		respond.JSON(w, http.StatusBadRequest, respond.ErrorBody{Error: "nothing to update"})

		return
	}

	id := chi.URLParam(r, "id")
	var (
		d   driver.Driver
		err error
	)
	if req.Status != nil {
		status, err := driver.ParseStatus(*req.Status)
		if err != nil {
			respond.Error(w, r, err)

			return
		}
		if d, err = service.UpdateDriverStatus(r.Context(), id, status); err != nil {
			respond.Error(w, r, err)

			return
		}
	}
	if req.ActiveDeliveries != nil {
		if d, err = service.SetActiveDeliveries(r.Context(), id, *req.ActiveDeliveries); err != nil {
			respond.Error(w, r, err)

			return
		}
	}

	respond.JSON(w, http.StatusOK, d)
}
