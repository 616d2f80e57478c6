package restaurantsettings

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/storefront/internal/service/models/currency"
	"github.com/corray333/backend-labs/storefront/internal/service/models/settings"
	"github.com/corray333/backend-labs/storefront/internal/transport/http/respond"
	"github.com/shopspring/decimal"
)

// service is an interface for the service layer.
type service interface {
	GetSettings(ctx context.Context) (settings.Settings, error)
	UpdateSettings(ctx context.Context, patch settings.Patch) (settings.Settings, error)
	ResetSettings(ctx context.Context) (settings.Settings, error)
}

// settingsResponse adds euro amounts to the stored settings.
type settingsResponse struct {
	settings.Settings
	DeliveryFee      decimal.Decimal `json:"deliveryFee"`
	FreeDeliveryFrom decimal.Decimal `json:"freeDeliveryFrom"`
	MinOrderAmount   decimal.Decimal `json:"minOrderAmount"`
}

func toResponse(s settings.Settings) settingsResponse {
	return settingsResponse{
		Settings:         s,
		DeliveryFee:      currency.FromCents(s.DeliveryFeeCents),
		FreeDeliveryFrom: currency.FromCents(s.FreeDeliveryFromCents),
		MinOrderAmount:   currency.FromCents(s.MinOrderAmountCents),
	}
}

// updateSettingsRequest holds the settings to change. Amounts are in euros.
type updateSettingsRequest struct {
	RestaurantName           *string          `json:"restaurantName"`
	RestaurantAddress        *string          `json:"restaurantAddress"`
	RestaurantPhone          *string          `json:"restaurantPhone"`
	DeliveryFee              *decimal.Decimal `json:"deliveryFee"`
	FreeDeliveryFrom         *decimal.Decimal `json:"freeDeliveryFrom"`
	MinOrderAmount           *decimal.Decimal `json:"minOrderAmount"`
	EstimatedDeliveryMinutes *int             `json:"estimatedDeliveryMinutes"`
	EstimatedPickupMinutes   *int             `json:"estimatedPickupMinutes"`
	AcceptingOrders          *bool            `json:"acceptingOrders"`
}

func cents(amount *decimal.Decimal) (*int64, error) {
	if amount == nil {
		return nil, nil
	}
	c, err := currency.ToCents(*amount)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// toPatch converts updateSettingsRequest to settings.Patch.
func (r *updateSettingsRequest) toPatch() (settings.Patch, error) {
	patch := settings.Patch{
		RestaurantName:           r.RestaurantName,
		RestaurantAddress:        r.RestaurantAddress,
		RestaurantPhone:          r.RestaurantPhone,
		EstimatedDeliveryMinutes: r.EstimatedDeliveryMinutes,
		EstimatedPickupMinutes:   r.EstimatedPickupMinutes,
		AcceptingOrders:          r.AcceptingOrders,
	}

	var err error
	if patch.DeliveryFeeCents, err = cents(r.DeliveryFee); err != nil {
		return settings.Patch{}, err
	}
	if patch.FreeDeliveryFromCents, err = cents(r.FreeDeliveryFrom); err != nil {
		return settings.Patch{}, err
	}
	if patch.MinOrderAmountCents, err = cents(r.MinOrderAmount); err != nil {
		return settings.Patch{}, err
	}

	return patch, nil
}

// Get returns the restaurant settings.
func Get(w http.ResponseWriter, r *http.Request, service service) {
	s, err := service.GetSettings(r.Context())
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(s))
}

// Update merges the request into the settings.
func Update(w http.ResponseWriter, r *http.Request, service service) {
	req := updateSettingsRequest{}
	if !respond.Decode(w, r, &req) {
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	s, err := service.UpdateSettings(r.Context(), patch)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(s))
}

// Reset restores the default settings.
func Reset(w http.ResponseWriter, r *http.Request, service service) {
	s, err := service.ResetSettings(r.Context())
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, toResponse(s))
}
