package httptransport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corray333/backend-labs/storefront/internal/dal/memory"
	"github.com/corray333/backend-labs/storefront/internal/service/payment/mock"
	"github.com/corray333/backend-labs/storefront/internal/service/services/checkoutsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/fulfillmentsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/menusvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/sessionsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/settingssvc"
	httptransport "github.com/corray333/backend-labs/storefront/internal/transport/http"
	"github.com/corray333/backend-labs/storefront/internal/transport/http/respond"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	menu := menusvc.MustNewMenuService(menusvc.WithMenuRepository(store.Menu()))
	if err := menu.SeedDefaults(context.Background()); err != nil {
		t.Fatal(err)
	}
	st := settingssvc.MustNewSettingsService(settingssvc.WithSettingsRepository(store.Settings()))
	orders := ordersvc.MustNewOrderService(
		ordersvc.WithUnitOfWork(store.UnitOfWorkFactory()),
		ordersvc.WithCatalog(menu),
		ordersvc.WithSettings(st),
	)
	sessions := sessionsvc.MustNewSessionService(sessionsvc.WithCatalog(menu))

	transport := httptransport.NewHTTPTransport(httptransport.Services{
		Menu:     menu,
		Settings: st,
		Orders:   orders,
		Fulfillment: fulfillmentsvc.MustNewFulfillmentService(
			fulfillmentsvc.WithUnitOfWork(store.UnitOfWorkFactory()),
			fulfillmentsvc.WithOrderReader(orders),
		),
		Sessions: sessions,
		Checkout: checkoutsvc.MustNewCheckoutService(
			checkoutsvc.WithSessions(sessions),
			checkoutsvc.WithCatalog(menu),
			checkoutsvc.WithSettings(st),
			checkoutsvc.WithOrders(orders),
			checkoutsvc.WithGateway(mock.AlwaysSucceed()),
		),
	})
	transport.RegisterRoutes()

	return transport.Handler()
}

func do(t *testing.T, h http.Handler, method, path, session string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if session != "" {
		req.Header.Set(respond.SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}

	return v
}

type orderBody struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	TotalCents int64  `json:"totalCents"`
}

func TestCheckoutFlow(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodPost, "/api/cart/items", "", map[string]any{"itemId": "m1", "quantity": 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("add item: %d %s", rec.Code, rec.Body.String())
	}
	session := rec.Header().Get(respond.SessionHeader)
	if session == "" {
		t.Fatal("no session header")
	}

	customer := map[string]string{
		"name":       "Anna",
		"email":      "anna@example.com",
		"phone":      "0612345678",
		"address":    "Denneweg 10",
		"postalCode": "2514 CG",
		"city":       "Den Haag",
		"language":   "en",
	}
	steps := []struct {
		method, path string
		body         any
	}{
		{http.MethodPut, "/api/checkout/customer", customer},
		{http.MethodPut, "/api/checkout/payment-method", map[string]string{"paymentMethod": "card"}},
		{http.MethodPost, "/api/checkout/continue", nil},
	}
	for _, step := range steps {
		if rec := do(t, h, step.method, step.path, session, step.body); rec.Code != http.StatusOK {
			t.Fatalf("%s %s: %d %s", step.method, step.path, rec.Code, rec.Body.String())
		}
	}

	rec = do(t, h, http.MethodPost, "/api/checkout/pay", session, map[string]string{"paymentToken": "tok"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("pay: %d %s", rec.Code, rec.Body.String())
	}
	paid := decode[struct {
		Order orderBody `json:"order"`
	}](t, rec)
	if paid.Order.TotalCents != 5200 {
		t.Errorf("total = %d, want 5200", paid.Order.TotalCents)
	}

	if rec := do(t, h, http.MethodGet, "/api/orders/"+paid.Order.ID, "", nil); rec.Code != http.StatusOK {
		t.Errorf("confirmation: %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/admin/orders?scope=paid", "", nil)
	if listed := decode[[]orderBody](t, rec); len(listed) != 1 || listed[0].ID != paid.Order.ID {
		t.Errorf("paid orders = %+v", listed)
	}

	rec = do(t, h, http.MethodPatch, "/api/admin/orders/"+paid.Order.ID+"/status", "", map[string]string{"status": "preparing"})
	if rec.Code != http.StatusOK || decode[orderBody](t, rec).Status != "preparing" {
		t.Errorf("status update: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/cart", session, nil)
	cart := decode[checkoutsvc.Summary](t, rec)
	if len(cart.Cart) != 0 {
		t.Errorf("cart after order = %v, want empty", cart.Cart)
	}
}

func TestErrorStatuses(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name         string
		method, path string
		body         any
		want         int
	}{
		{"unknown order", http.MethodGet, "/api/orders/ORD-404", nil, http.StatusNotFound},
		{"unknown scope", http.MethodGet, "/api/admin/orders?scope=late", nil, http.StatusBadRequest},
		{"unknown menu item", http.MethodPost, "/api/cart/items", map[string]any{"itemId": "nope"}, http.StatusNotFound},
		{"missing item id", http.MethodPost, "/api/cart/items", map[string]any{}, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/api/checkout/fields/shoeSize/touch", nil, http.StatusBadRequest},
		{"pay on details step", http.MethodPost, "/api/checkout/pay", nil, http.StatusConflict},
		{"continue with empty cart", http.MethodPost, "/api/checkout/continue", nil, http.StatusUnprocessableEntity},
		{"status of unknown order", http.MethodPatch, "/api/admin/orders/ORD-404/status", map[string]string{"status": "ready"}, http.StatusNotFound},
		{"empty driver update", http.MethodPatch, "/api/admin/drivers/d1", map[string]any{}, http.StatusBadRequest},
		{"intent below minimum", http.MethodPost, "/api/payments/intents", map[string]any{"amount": 0.5}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, "", tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
			if body := decode[respond.ErrorBody](t, rec); body.Error == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestStaffMenuAndSettings(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodPost, "/api/admin/menu/m1/toggle", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, h, http.MethodGet, "/api/menu", "", nil)
	for _, item := range decode[[]struct {
		ID string `json:"id"`
	}](t, rec) {
		if item.ID == "m1" {
			t.Error("unavailable item listed on the customer menu")
		}
	}

	rec = do(t, h, http.MethodPatch, "/api/admin/settings", "", map[string]any{"acceptingOrders": false})
	if rec.Code != http.StatusOK {
		t.Fatalf("settings: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, h, http.MethodGet, "/api/checkout", "", nil)
	if decode[checkoutsvc.Summary](t, rec).AcceptingOrders {
		t.Error("checkout still accepting orders")
	}
}
