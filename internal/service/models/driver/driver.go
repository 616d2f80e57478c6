package driver

import (
	"errors"
	"time"
)

var (
	ErrDriverNotFound      = errors.New("driver not found")
	ErrDuplicateDriver     = errors.New("driver id already exists")
	ErrDriverOffline       = errors.New("driver is offline")
	ErrInvalidDriverStatus = errors.New("invalid driver status")
	ErrNegativeDeliveries  = errors.New("active deliveries cannot be negative")
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusBusy      Status = "busy"
	StatusOffline   Status = "offline"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusAvailable, StatusBusy, StatusOffline:
		return st, nil
	default:
		return "", ErrInvalidDriverStatus
	}
}

// Driver is a delivery driver managed by staff.
type Driver struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	Status           Status    `json:"status"`
	ActiveDeliveries int       `json:"activeDeliveries"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Assign records one more delivery and marks the driver busy.
func (d *Driver) Assign() {
	d.ActiveDeliveries++
	d.Status = StatusBusy
}

// Release records one delivery less, never going below zero.
func (d *Driver) Release() {
	d.ActiveDeliveries = max(0, d.ActiveDeliveries-1)
}
