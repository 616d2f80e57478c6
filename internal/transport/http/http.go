package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	_ "github.com/corray333/backend-labs/storefront/docs" // swagger
	"github.com/corray333/backend-labs/storefront/internal/service/services/checkoutsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/fulfillmentsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/menusvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/sessionsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/settingssvc"
	cartitems "github.com/corray333/backend-labs/storefront/internal/transport/http/cart_items"
	checkoutflow "github.com/corray333/backend-labs/storefront/internal/transport/http/checkout_flow"
	managedrivers "github.com/corray333/backend-labs/storefront/internal/transport/http/manage_drivers"
	manageorders "github.com/corray333/backend-labs/storefront/internal/transport/http/manage_orders"
	menuitems "github.com/corray333/backend-labs/storefront/internal/transport/http/menu_items"
	paymentintents "github.com/corray333/backend-labs/storefront/internal/transport/http/payment_intents"
	restaurantsettings "github.com/corray333/backend-labs/storefront/internal/transport/http/restaurant_settings"
	"github.com/corray333/backend-labs/storefront/pkg/http/middleware/trace"
	"github.com/corray333/backend-labs/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Services are the service layer dependencies of the HTTP API.
type Services struct {
	Menu        *menusvc.MenuService
	Settings    *settingssvc.SettingsService
	Orders      *ordersvc.OrderService
	Fulfillment *fulfillmentsvc.FulfillmentService
	Sessions    *sessionsvc.SessionService
	Checkout    *checkoutsvc.CheckoutService
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	services Services
}

func NewHTTPTransport(services Services) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:   server,
		router:   router,
		services: services,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown stops accepting requests and waits for the active ones.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// Handler returns the router.
func (h *HTTPTransport) Handler() http.Handler {
	return h.router
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	h.router.Route("/api", func(r chi.Router) {
		r.Get("/menu", h.listMenu)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.getCart)
			r.Delete("/", h.clearCart)
			r.Post("/items", h.addCartItem)
			r.Patch("/items/{id}", h.updateCartItem)
			r.Delete("/items/{id}", h.removeCartItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", h.getCheckout)
			r.Put("/delivery", h.setDelivery)
			r.Put("/customer", h.setCustomer)
			r.Post("/fields/{field}/touch", h.touchField)
			r.Put("/payment-method", h.setPaymentMethod)
			r.Post("/continue", h.continueCheckout)
			r.Post("/back", h.backCheckout)
			r.Post("/pay", h.pay)
		})

		r.Get("/orders/{id}", h.getConfirmation)
		r.Post("/payments/intents", h.createPaymentIntent)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/orders", h.listOrders)
			r.Get("/orders/{id}", h.getOrder)
			r.Patch("/orders/{id}/status", h.updateOrderStatus)
			r.Patch("/orders/{id}/payment", h.updatePaymentStatus)
			r.Post("/orders/{id}/notes", h.addStaffNote)
			r.Put("/orders/{id}/driver", h.assignDriver)

			r.Get("/drivers", h.listDrivers)
			r.Post("/drivers", h.createDriver)
			r.Patch("/drivers/{id}", h.updateDriver)
			r.Delete("/drivers/{id}", h.deleteDriver)

			r.Get("/menu", h.listAllMenu)
			r.Post("/menu", h.createMenuItem)
			r.Patch("/menu/{id}", h.updateMenuItem)
			r.Delete("/menu/{id}", h.deleteMenuItem)
			r.Post("/menu/{id}/toggle", h.toggleMenuItem)

			r.Get("/settings", h.getSettings)
			r.Patch("/settings", h.updateSettings)
			r.Post("/settings/reset", h.resetSettings)
		})
	})
}

func (h *HTTPTransport) listMenu(w http.ResponseWriter, r *http.Request) {
	menuitems.ListAvailable(w, r, h.services.Menu)
}

func (h *HTTPTransport) getCart(w http.ResponseWriter, r *http.Request) {
	cartitems.GetCart(w, r, h.services.Checkout)
}

func (h *HTTPTransport) clearCart(w http.ResponseWriter, r *http.Request) {
	cartitems.Clear(w, r, h.services.Sessions, h.services.Checkout)
}

func (h *HTTPTransport) addCartItem(w http.ResponseWriter, r *http.Request) {
	cartitems.AddItem(w, r, h.services.Sessions, h.services.Checkout)
}

func (h *HTTPTransport) updateCartItem(w http.ResponseWriter, r *http.Request) {
	cartitems.UpdateItem(w, r, h.services.Sessions, h.services.Checkout)
}

func (h *HTTPTransport) removeCartItem(w http.ResponseWriter, r *http.Request) {
	cartitems.RemoveItem(w, r, h.services.Sessions, h.services.Checkout)
}

func (h *HTTPTransport) getCheckout(w http.ResponseWriter, r *http.Request) {
	checkoutflow.Get(w, r, h.services.Checkout)
}

func (h *HTTPTransport) setDelivery(w http.ResponseWriter, r *http.Request) {
	checkoutflow.SetDelivery(w, r, h.services.Checkout)
}

func (h *HTTPTransport) setCustomer(w http.ResponseWriter, r *http.Request) {
	checkoutflow.SetCustomer(w, r, h.services.Checkout)
}

func (h *HTTPTransport) touchField(w http.ResponseWriter, r *http.Request) {
	checkoutflow.TouchField(w, r, h.services.Checkout)
}

func (h *HTTPTransport) setPaymentMethod(w http.ResponseWriter, r *http.Request) {
	checkoutflow.SetPaymentMethod(w, r, h.services.Checkout)
}

func (h *HTTPTransport) continueCheckout(w http.ResponseWriter, r *http.Request) {
	checkoutflow.Continue(w, r, h.services.Checkout)
}

func (h *HTTPTransport) backCheckout(w http.ResponseWriter, r *http.Request) {
	checkoutflow.Back(w, r, h.services.Checkout)
}

func (h *HTTPTransport) pay(w http.ResponseWriter, r *http.Request) {
	checkoutflow.Pay(w, r, h.services.Checkout)
}

func (h *HTTPTransport) getConfirmation(w http.ResponseWriter, r *http.Request) {
	manageorders.GetConfirmation(w, r, h.services.Orders)
}

func (h *HTTPTransport) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	paymentintents.Create(w, r, h.services.Checkout)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	manageorders.ListOrders(w, r, h.services.Orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	manageorders.GetOrder(w, r, h.services.Orders)
}

func (h *HTTPTransport) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	manageorders.UpdateStatus(w, r, h.services.Orders)
}

func (h *HTTPTransport) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	manageorders.UpdatePayment(w, r, h.services.Orders)
}

func (h *HTTPTransport) addStaffNote(w http.ResponseWriter, r *http.Request) {
	manageorders.AddNote(w, r, h.services.Orders)
}

func (h *HTTPTransport) assignDriver(w http.ResponseWriter, r *http.Request) {
	manageorders.AssignDriver(w, r, h.services.Fulfillment)
}

func (h *HTTPTransport) listDrivers(w http.ResponseWriter, r *http.Request) {
	managedrivers.List(w, r, h.services.Fulfillment)
}

func (h *HTTPTransport) createDriver(w http.ResponseWriter, r *http.Request) {
	managedrivers.Create(w, r, h.services.Fulfillment)
}

func (h *HTTPTransport) updateDriver(w http.ResponseWriter, r *http.Request) {
	managedrivers.Update(w, r, h.services.Fulfillment)
}

func (h *HTTPTransport) deleteDriver(w http.ResponseWriter, r *http.Request) {
	managedrivers.Delete(w, r, h.services.Fulfillment)
}

func (h *HTTPTransport) listAllMenu(w http.ResponseWriter, r *http.Request) {
	menuitems.ListAll(w, r, h.services.Menu)
}

func (h *HTTPTransport) createMenuItem(w http.ResponseWriter, r *http.Request) {
	menuitems.Create(w, r, h.services.Menu)
}

func (h *HTTPTransport) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	menuitems.Update(w, r, h.services.Menu)
}

func (h *HTTPTransport) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	menuitems.Delete(w, r, h.services.Menu)
}

func (h *HTTPTransport) toggleMenuItem(w http.ResponseWriter, r *http.Request) {
	menuitems.Toggle(w, r, h.services.Menu)
}

func (h *HTTPTransport) getSettings(w http.ResponseWriter, r *http.Request) {
	restaurantsettings.Get(w, r, h.services.Settings)
}

func (h *HTTPTransport) updateSettings(w http.ResponseWriter, r *http.Request) {
	restaurantsettings.Update(w, r, h.services.Settings)
}

func (h *HTTPTransport) resetSettings(w http.ResponseWriter, r *http.Request) {
	restaurantsettings.Reset(w, r, h.services.Settings)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	port := viper.GetString("server.http.port")
	if port == "" {
		port = "8080"
	}

	return &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}
}
