package settings

import "errors"

var ErrSettingsNotFound = errors.New("settings not found")

// Settings is the restaurant-wide configuration editable by staff.
type Settings struct {
	RestaurantName           string `json:"restaurantName"`
	RestaurantAddress        string `json:"restaurantAddress"`
	RestaurantPhone          string `json:"restaurantPhone"`
	DeliveryFeeCents         int64  `json:"deliveryFeeCents"`
	FreeDeliveryFromCents    int64  `json:"freeDeliveryFromCents"`
	MinOrderAmountCents      int64  `json:"minOrderAmountCents"`
	EstimatedDeliveryMinutes int    `json:"estimatedDeliveryMinutes"`
	EstimatedPickupMinutes   int    `json:"estimatedPickupMinutes"`
	AcceptingOrders          bool   `json:"acceptingOrders"`
}

// Default returns the settings the restaurant starts with.
func Default() Settings {
	return Settings{
		RestaurantName:           "Greek Irini",
		RestaurantAddress:        "Denneweg 10A, 2514 CG Den Haag",
		RestaurantPhone:          "+31 70 346 2789",
		DeliveryFeeCents:         295,
		FreeDeliveryFromCents:    3500,
		MinOrderAmountCents:      1500,
		EstimatedDeliveryMinutes: 45,
		EstimatedPickupMinutes:   20,
		AcceptingOrders:          true,
	}
}

// Patch holds optional updates. Nil fields are left untouched.
type Patch struct {
	RestaurantName           *string `json:"restaurantName"`
	RestaurantAddress        *string `json:"restaurantAddress"`
	RestaurantPhone          *string `json:"restaurantPhone"`
	DeliveryFeeCents         *int64  `json:"deliveryFeeCents"`
	FreeDeliveryFromCents    *int64  `json:"freeDeliveryFromCents"`
	MinOrderAmountCents      *int64  `json:"minOrderAmountCents"`
	EstimatedDeliveryMinutes *int    `json:"estimatedDeliveryMinutes"`
	EstimatedPickupMinutes   *int    `json:"estimatedPickupMinutes"`
	AcceptingOrders          *bool   `json:"acceptingOrders"`
}

// Apply merges the patch into s.
func (p Patch) Apply(s *Settings) {
	if p.RestaurantName != nil {
		s.RestaurantName = *p.RestaurantName
	}
	if p.RestaurantAddress != nil {
		s.RestaurantAddress = *p.RestaurantAddress
	}
	if p.RestaurantPhone != nil {
		s.RestaurantPhone = *p.RestaurantPhone
	}
	if p.DeliveryFeeCents != nil {
		s.DeliveryFeeCents = *p.DeliveryFeeCents
	}
	if p.FreeDeliveryFromCents != nil {
		s.FreeDeliveryFromCents = *p.FreeDeliveryFromCents
	}
	if p.MinOrderAmountCents != nil {
		s.MinOrderAmountCents = *p.MinOrderAmountCents
	}
	if p.EstimatedDeliveryMinutes != nil {
		s.EstimatedDeliveryMinutes = *p.EstimatedDeliveryMinutes
	}
	if p.EstimatedPickupMinutes != nil {
		s.EstimatedPickupMinutes = *p.EstimatedPickupMinutes
	}
	if p.AcceptingOrders != nil {
		s.AcceptingOrders = *p.AcceptingOrders
	}
}
