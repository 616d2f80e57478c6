package checkoutflow

import (
	"context"
	"errors"
	"net/http"

	"github.com/corray333/backend-labs/storefront/internal/service/models/checkout"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/payment"
	"github.com/corray333/backend-labs/storefront/internal/service/services/checkoutsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/validation"
	"github.com/corray333/backend-labs/storefront/internal/transport/http/respond"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	View(ctx context.Context, sessionID string) (checkoutsvc.Summary, error)
	SetDeliveryType(ctx context.Context, sessionID string, dt order.DeliveryType) (checkoutsvc.Summary, error)
	SetCustomer(
		ctx context.Context,
		sessionID string,
		c order.CustomerInfo,
		language string,
	) (checkoutsvc.Summary, error)
	TouchField(ctx context.Context, sessionID string, f validation.Field) (checkoutsvc.Summary, error)
	SetPaymentMethod(ctx context.Context, sessionID string, m order.PaymentMethod) (checkoutsvc.Summary, error)
	Continue(ctx context.Context, sessionID string) (checkoutsvc.Summary, error)
	Back(ctx context.Context, sessionID string) (checkoutsvc.Summary, error)
	Pay(ctx context.Context, sessionID string, proof payment.Proof) (order.Order, checkoutsvc.Summary, error)
}

type deliveryRequest struct {
	DeliveryType string `json:"deliveryType" validate:"required,oneof=delivery pickup"`
}

type customerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Notes      string `json:"notes"    validate:"max=500"`
	Language   string `json:"language" validate:"omitempty,oneof=nl en pl"`
}

func (r *customerRequest) toModel() order.CustomerInfo {
	return order.CustomerInfo{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		PostalCode: r.PostalCode,
		City:       r.City,
		Notes:      r.Notes,
	}
}

type paymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

type payRequest struct {
	PaymentToken    string `json:"paymentToken"`
	PaymentIntentID string `json:"paymentIntentId"`
}

type payResponse struct {
	Order    order.Order         `json:"order"`
	Checkout checkoutsvc.Summary `json:"checkout"`
}

// payErrorResponse keeps the checkout next to the failure so the client can
// show the payment step again.
type payErrorResponse struct {
	respond.ErrorBody
	Checkout checkoutsvc.Summary `json:"checkout"`
}

func sessionID(r *http.Request) string {
	return r.Header.Get(respond.SessionHeader)
}

func write(w http.ResponseWriter, r *http.Request, s checkoutsvc.Summary, err error) {
	if s.SessionID != "" {
		w.Header().Set(respond.SessionHeader, s.SessionID)
	}
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusOK, s)
}

// Get returns the checkout of the session.
func Get(w http.ResponseWriter, r *http.Request, service service) {
	s, err := service.View(r.Context(), sessionID(r))
	write(w, r, s, err)
}

// SetDelivery selects delivery or pickup.
func SetDelivery(w http.ResponseWriter, r *http.Request, service service) {
	req := deliveryRequest{}
	if !respond.Decode(w, r, &req) {
		return
	}

	dt, err := order.ParseDeliveryType(req.DeliveryType)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	s, err := service.SetDeliveryType(r.Context(), sessionID(r), dt)
	write(w, r, s, err)
}

// SetCustomer stores the customer details.
func SetCustomer(w http.ResponseWriter, r *http.Request, service service) {
	req := customerRequest{}
	if !respond.Decode(w, r, &req) {
		return
	}

	s, err := service.SetCustomer(r.Context(), sessionID(r), req.toModel(), req.Language)
	write(w, r, s, err)
}

// TouchField marks a field visited.
func TouchField(w http.ResponseWriter, r *http.Request, service service) {
	f, err := validation.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	s, err := service.TouchField(r.Context(), sessionID(r), f)
	write(w, r, s, err)
}

// SetPaymentMethod selects the payment method.
func SetPaymentMethod(w http.ResponseWriter, r *http.Request, service service) {
	req := paymentMethodRequest{}
	if !respond.Decode(w, r, &req) {
		return
	}

	m, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	s, err := service.SetPaymentMethod(r.Context(), sessionID(r), m)
	write(w, r, s, err)
}

// Continue moves to the payment step.
func Continue(w http.ResponseWriter, r *http.Request, service service) {
	s, err := service.Continue(r.Context(), sessionID(r))
	write(w, r, s, err)
}

// Back returns to the details step.
func Back(w http.ResponseWriter, r *http.Request, service service) {
	s, err := service.Back(r.Context(), sessionID(r))
	write(w, r, s, err)
}

// Pay submits the payment and creates the order.
func Pay(w http.ResponseWriter, r *http.Request, service service) {
	req := payRequest{}
	if r.ContentLength != 0 && !respond.Decode(w, r, &req) {
		return
	}

	created, s, err := service.Pay(r.Context(), sessionID(r), payment.Proof{
		Token:    req.PaymentToken,
		IntentID: req.PaymentIntentID,
	})
	if s.SessionID != "" {
		w.Header().Set(respond.SessionHeader, s.SessionID)
	}
	if err != nil {
		var payErr *checkoutsvc.PaymentError
		charged := respond.Status(err) == http.StatusInternalServerError && s.State.Step == checkout.StepPayment
		if errors.As(err, &payErr) || (charged && s.State.PaymentError != "") {
			respond.JSON(w, respond.Status(err), payErrorResponse{
				ErrorBody: respond.ErrorBody{Error: s.State.PaymentError},
				Checkout:  s,
			})

			return
		}
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, payResponse{Order: created, Checkout: s})
}
