package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/storefront/internal/service/models/checkout"
	"github.com/corray333/backend-labs/storefront/internal/service/models/currency"
	"github.com/corray333/backend-labs/storefront/internal/service/models/driver"
	"github.com/corray333/backend-labs/storefront/internal/service/models/menuitem"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/payment"
	"github.com/corray333/backend-labs/storefront/internal/service/services/checkoutsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/fulfillmentsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/menusvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/sessionsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/settingssvc"
	"github.com/corray333/backend-labs/storefront/internal/service/validation"
	"github.com/go-playground/validator/v10"
)

// SessionHeader carries the customer session id in both directions.
const SessionHeader = "X-Session-ID"

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

var validate = validator.New()

// Decode reads the JSON body into dst and checks its validate tags.
// It writes a 400 response and returns false on failure.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		JSON(w, http.StatusBadRequest, ErrorBody{Error: "malformed request body: " + err.Error()})

		return false
	}

	if err := validate.Struct(dst); err != nil {
		body := ErrorBody{Error: "invalid request body"}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			body.Fields = make(map[string]string, len(verrs))
			for _, fe := range verrs {
				body.Fields[fe.Field()] = fe.Tag()
			}
		}
		JSON(w, http.StatusBadRequest, body)

		return false
	}

	return true
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

// Error maps a service error to its status code and writes it.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	body := ErrorBody{Error: err.Error()}

	var details *checkout.DetailsError
	var fields validation.Errors
	switch {
	case errors.As(err, &details):
		body.Fields = details.Fields.Messages()
	case errors.As(err, &fields):
		body.Fields = fields.Messages()
	}

	if status == http.StatusInternalServerError {
		slog.Error("Error handling request", "method", r.Method, "path", r.URL.Path, "error", err)
		body.Error = http.StatusText(status)
	}
	JSON(w, status, body)
}

// Status returns the HTTP status for err.
func Status(err error) int {
	var payErr *checkoutsvc.PaymentError
	var fields validation.Errors

	switch {
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, driver.ErrDriverNotFound),
		errors.Is(err, menuitem.ErrMenuItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, checkout.ErrWrongStep),
		errors.Is(err, checkout.ErrAlreadyProcessing),
		errors.Is(err, sessionsvc.ErrCartLocked),
		errors.Is(err, menuitem.ErrDuplicateMenuItem):
		return http.StatusConflict
	case errors.As(err, &payErr):
		return http.StatusPaymentRequired
	case errors.As(err, &fields),
		errors.Is(err, checkout.ErrInvalidDetails),
		errors.Is(err, checkout.ErrMinimumOrder),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrCashRequiresDelivery),
		errors.Is(err, checkoutsvc.ErrNotAcceptingOrders),
		errors.Is(err, driver.ErrDriverOffline),
		errors.Is(err, driver.ErrNegativeDeliveries),
		errors.Is(err, driver.ErrInvalidDriverStatus),
		errors.Is(err, fulfillmentsvc.ErrInvalidDriver),
		errors.Is(err, menusvc.ErrInvalidItem),
		errors.Is(err, menusvc.ErrNegativePrice),
		errors.Is(err, settingssvc.ErrInvalidSettings),
		errors.Is(err, ordersvc.ErrEmptyOrder),
		errors.Is(err, order.ErrEmptyNote),
		errors.Is(err, payment.ErrAmountTooSmall):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidPaymentStatus),
		errors.Is(err, order.ErrInvalidPaymentMethod),
		errors.Is(err, order.ErrInvalidDeliveryType),
		errors.Is(err, validation.ErrUnknownField),
		errors.Is(err, currency.ErrInvalidAmount),
		errors.Is(err, currency.ErrInvalidCurrency):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
