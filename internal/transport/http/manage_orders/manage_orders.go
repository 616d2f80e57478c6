package manageorders

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/storefront/internal/transport/http/respond"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
)

const (
	scopeAll    = "all"
	scopePaid   = "paid"
	scopeActive = "active"
)

// service is an interface for the service layer.
type service interface {
	GetOrder(ctx context.Context, id string) (order.Order, error)
	ListOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status order.Status) (order.Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, status order.PaymentStatus) (order.Order, error)
	AddStaffNote(ctx context.Context, id, text, author string) (order.StaffNote, error)
}

// assigner changes the driver of an order.
type assigner interface {
	AssignDriver(ctx context.Context, orderID string, driverID *string) (order.Order, error)
}

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)

	return d
}()

type queryOrdersRequest struct {
	Scope    string   `schema:"scope,omitempty"`
	Statuses []string `schema:"status,omitempty"`
	Limit    int      `schema:"limit,omitempty"`
	Offset   int      `schema:"offset,omitempty"`
}

// ToModel converts the query to order.QueryOrdersModel.
func (q *queryOrdersRequest) ToModel() (order.QueryOrdersModel, error) {
	model := order.QueryOrdersModel{Limit: q.Limit, Offset: q.Offset}
	for _, s := range q.Statuses {
		st, err := order.ParseStatus(s)
		if err != nil {
			return order.QueryOrdersModel{}, err
		}
		model.Statuses = append(model.Statuses, st)
	}

	switch q.Scope {
	case "", scopeAll:
	case scopePaid:
		model.OnlySettled = true
	case scopeActive:
		model.OnlySettled = true
		model.ExcludeStatuses = []order.Status{order.StatusCompleted, order.StatusCancelled}
	default:
		return order.QueryOrdersModel{}, fmt.Errorf("unknown scope %q", q.Scope)
	}

	return model, nil
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type paymentRequest struct {
	Status string `json:"status" validate:"required"`
}

type noteRequest struct {
	Text   string `json:"text"   validate:"required"`
	Author string `json:"author"`
}

type driverRequest struct {
	DriverID *string `json:"driverId"`
}

// confirmationResponse is what the customer sees of an order.
type confirmationResponse struct {
	ID                 string                `json:"id"`
	Items              []orderitem.OrderItem `json:"items"`
	SubtotalCents      int64                 `json:"subtotalCents"`
	DeliveryFeeCents   int64                 `json:"deliveryFeeCents"`
	TotalCents         int64                 `json:"totalCents"`
	Status             order.Status          `json:"status"`
	PaymentMethod      order.PaymentMethod   `json:"paymentMethod"`
	PaymentStatus      order.PaymentStatus   `json:"paymentStatus"`
	DeliveryType       order.DeliveryType    `json:"deliveryType"`
	Customer           order.CustomerInfo    `json:"customer"`
	CreatedAt          time.Time             `json:"createdAt"`
	EstimatedReadyTime time.Time             `json:"estimatedReadyTime"`
}

func toConfirmation(o order.Order) confirmationResponse {
	return confirmationResponse{
		ID:                 o.ID,
		Items:              o.Items,
		SubtotalCents:      o.SubtotalCents,
		DeliveryFeeCents:   o.DeliveryFeeCents,
		TotalCents:         o.TotalCents,
		Status:             o.Status,
		PaymentMethod:      o.Payment.Method,
		PaymentStatus:      o.Payment.Status,
		DeliveryType:       o.Delivery.Type,
		Customer:           o.Customer,
		CreatedAt:          o.CreatedAt,
		EstimatedReadyTime: o.EstimatedReadyTime,
	}
}

// GetConfirmation handles the customer order confirmation request.
func GetConfirmation(w http.ResponseWriter, r *http.Request, service service) {
	o, err := service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, toConfirmation(o))
}

// ListOrders handles the staff order listing.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	query := &queryOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		respond.JSON(w, http.StatusBadRequest, respond.ErrorBody{Error: err.Error()})

		return
	}

	model, err := query.ToModel()
	if err != nil {
		respond.JSON(w, http.StatusBadRequest, respond.ErrorBody{Error: err.Error()})

		return
	}

	orders, err := service.ListOrders(r.Context(), model)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, orders)
}

// GetOrder handles the staff order detail request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	o, err := service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, o)
}

// UpdateStatus moves an order to a new status.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	req := statusRequest{}
	if !respond.Decode(w, r, &req) {
		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	o, err := service.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, o)
}

// UpdatePayment sets the payment status of an order.
func UpdatePayment(w http.ResponseWriter, r *http.Request, service service) {
	req := paymentRequest{}
	if !respond.Decode(w, r, &req) {
		return
	}

	status, err := order.ParsePaymentStatus(req.Status)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	o, err := service.UpdatePaymentStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, o)
}

// AddNote appends a staff note.
func AddNote(w http.ResponseWriter, r *http.Request, service service) {
	req := noteRequest{}
	if !respond.Decode(w, r, &req) {
		return
	}

	note, err := service.AddStaffNote(r.Context(), chi.URLParam(r, "id"), req.Text, req.Author)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, note)
}

// AssignDriver assigns or, with a null driverId, unassigns the driver.
func AssignDriver(w http.ResponseWriter, r *http.Request, assigner assigner) {
	req := driverRequest{}
	if !respond.Decode(w, r, &req) {
		return
	}
	if req.DriverID != nil && *req.DriverID == "" {
		req.DriverID = nil
	}

	o, err := assigner.AssignDriver(r.Context(), chi.URLParam(r, "id"), req.DriverID)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, o)
}
