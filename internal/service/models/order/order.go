package order

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/corray333/backend-labs/storefront/internal/service/models/currency"
	"github.com/corray333/backend-labs/storefront/internal/service/models/orderitem"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrDuplicateOrderID  = errors.New("order id already exists")
	ErrIllegalTransition = errors.New("illegal order status transition")
	ErrEmptyNote         = errors.New("staff note text is empty")
)

// CustomerInfo holds the contact and delivery details entered at checkout.
type CustomerInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Notes      string `json:"notes"`
}

// Payment is the payment sub-record of an order.
type Payment struct {
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	AmountCents   int64         `json:"amountCents"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
	TransactionID string        `json:"transactionId,omitempty"`
}

// Delivery is the fulfillment sub-record of an order.
type Delivery struct {
	Type          DeliveryType `json:"type"`
	FeeCents      int64        `json:"feeCents"`
	EstimatedTime string       `json:"estimatedTime"`
}

// StaffNote is an append-only remark left by staff.
type StaffNote struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// DefaultNoteAuthor signs notes added without an author.
const DefaultNoteAuthor = "staff"

// NewStaffNote builds a note with a fresh id.
func NewStaffNote(text, author string, now time.Time) (StaffNote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return StaffNote{}, ErrEmptyNote
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = DefaultNoteAuthor
	}

	return StaffNote{
		ID:        uuid.NewString(),
		Text:      text,
		Author:    author,
		Timestamp: now,
	}, nil
}

// Order represents a placed order.
type Order struct {
	ID                 string                `json:"id"`
	Items              []orderitem.OrderItem `json:"items"`
	SubtotalCents      int64                 `json:"subtotalCents"`
	DeliveryFeeCents   int64                 `json:"deliveryFeeCents"`
	TotalCents         int64                 `json:"totalCents"`
	Currency           currency.Currency     `json:"currency"`
	Status             Status                `json:"status"`
	Payment            Payment               `json:"payment"`
	Delivery           Delivery              `json:"delivery"`
	Customer           CustomerInfo          `json:"customer"`
	Language           string                `json:"language"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
	EstimatedReadyTime time.Time             `json:"estimatedReadyTime"`
	AssignedDriver     *string               `json:"assignedDriver,omitempty"`
	StaffNotes         []StaffNote           `json:"staffNotes"`
}

// IsSettled reports whether the order counts as paid for the kitchen:
// either the payment went through or it will be collected in cash.
func (o *Order) IsSettled() bool {
	return o.Payment.Status == PaymentStatusPaid || o.Payment.Method == PaymentMethodCash
}

// Touch advances UpdatedAt to now, or by a microsecond when the clock has not moved.
func (o *Order) Touch(now time.Time) {
	if !now.After(o.UpdatedAt) {
		now = o.UpdatedAt.Add(time.Microsecond)
	}
	o.UpdatedAt = now
}

// DriverID returns the assigned driver id or an empty string.
func (o *Order) DriverID() string {
	if o.AssignedDriver == nil {
		return ""
	}

	return *o.AssignedDriver
}

// Clone returns a deep copy so callers never share slices with storage.
func (o Order) Clone() Order {
	o.Items = append([]orderitem.OrderItem(nil), o.Items...)
	o.StaffNotes = append([]StaffNote(nil), o.StaffNotes...)
	if o.Payment.PaidAt != nil {
		t := *o.Payment.PaidAt
		o.Payment.PaidAt = &t
	}
	if o.AssignedDriver != nil {
		d := *o.AssignedDriver
		o.AssignedDriver = &d
	}

	return o
}
