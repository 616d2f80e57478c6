package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/storefront/internal/dal/repositories/confirmation"
	"github.com/corray333/backend-labs/storefront/internal/otel"
	"github.com/corray333/backend-labs/storefront/internal/service/models/notification"
	"github.com/corray333/backend-labs/storefront/internal/service/services/checkoutsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/fulfillmentsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/menusvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/notifysvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/sessionsvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/settingssvc"
	grpctransport "github.com/corray333/backend-labs/storefront/internal/transport/grpc"
	httptransport "github.com/corray333/backend-labs/storefront/internal/transport/http"
	outboxworker "github.com/corray333/backend-labs/storefront/internal/worker/outbox"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// confirmationSender dispatches order confirmations.
type confirmationSender interface {
	SendOrderConfirmation(ctx context.Context, msg notification.OrderConfirmation) error
}

// App represents the storefront application.
type App struct {
	storage        storage
	orderSvc       *ordersvc.OrderService
	sessionSvc     *sessionsvc.SessionService
	transport      *httptransport.HTTPTransport
	grpcTransport  *grpctransport.GRPCTransport
	outboxWorker   *outboxworker.Worker
	rabbitMqClient *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel("storefront")
	st := mustNewStorage()

	menuSvc := menusvc.MustNewMenuService(menusvc.WithMenuRepository(st.menu))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := menuSvc.SeedDefaults(ctx); err != nil {
		panic(err)
	}

	settingsSvc := settingssvc.MustNewSettingsService(settingssvc.WithSettingsRepository(st.settings))

	a := &App{
		storage:        st,
		otelController: otelController,
	}

	strictTransitions := true
	if viper.IsSet("orders.strict_status_transitions") {
		strictTransitions = viper.GetBool("orders.strict_status_transitions")
	}

	var notifier confirmationSender
	switch driver := strings.ToLower(viper.GetString("notifications.driver")); driver {
	case "rabbitmq":
		a.rabbitMqClient = rabbitmq.MustNewClient()
		queue := confirmation.MustDeclareQueue(a.rabbitMqClient)
		notifier = confirmation.NewConfirmationRabbitMQRepository(a.rabbitMqClient, st.outbox, queue)
		a.outboxWorker = outboxworker.NewWorker(st.outbox, a.rabbitMqClient)
	case "", "log":
		notifier = notifysvc.MustNewNotifyService()
	default:
		panic(fmt.Sprintf("unknown notifications driver %q", driver))
	}

	a.orderSvc = ordersvc.MustNewOrderService(
		ordersvc.WithUnitOfWork(st.uow),
		ordersvc.WithCatalog(menuSvc),
		ordersvc.WithSettings(settingsSvc),
		ordersvc.WithNotifier(notifier),
		ordersvc.WithStrictTransitions(strictTransitions),
		ordersvc.WithNotifyTimeout(time.Duration(viper.GetInt("notifications.timeout_seconds"))*time.Second),
	)
	a.sessionSvc = sessionsvc.MustNewSessionService(sessionsvc.WithCatalog(menuSvc))

	fulfillmentSvc := fulfillmentsvc.MustNewFulfillmentService(
		fulfillmentsvc.WithUnitOfWork(st.uow),
		fulfillmentsvc.WithOrderReader(a.orderSvc),
	)

	checkoutSvc := checkoutsvc.MustNewCheckoutService(
		checkoutsvc.WithSessions(a.sessionSvc),
		checkoutsvc.WithCatalog(menuSvc),
		checkoutsvc.WithSettings(settingsSvc),
		checkoutsvc.WithOrders(a.orderSvc),
		checkoutsvc.WithGateway(mustNewGateway()),
	)

	a.transport = httptransport.NewHTTPTransport(httptransport.Services{
		Menu:        menuSvc,
		Settings:    settingsSvc,
		Orders:      a.orderSvc,
		Fulfillment: fulfillmentSvc,
		Sessions:    a.sessionSvc,
		Checkout:    checkoutSvc,
	})
	a.transport.RegisterRoutes()

	a.grpcTransport = grpctransport.NewGRPCTransport()

	return a
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}

		return nil
	})
	g.Go(func() error {
		if err := a.grpcTransport.Run(); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}

		return nil
	})

	go a.sessionSvc.Start(ctx)

	if a.outboxWorker != nil {
		go func() {
			slog.Info("Starting outbox worker")
			a.outboxWorker.Start(ctx)
		}()
	}

	select {
	case <-stop:
		slog.Info("Shutdown signal received")
	case <-gctx.Done():
		slog.Error("Server stopped unexpectedly")
	}
	cancel()

	a.gracefulShutdown()

	if err := g.Wait(); err != nil {
		slog.Error("Server error", "error", err)
	}
}

// gracefulShutdown stops the servers before draining pending confirmations.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.grpcTransport.SetServing(false)

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.grpcTransport.Shutdown(ctx); err != nil {
		slog.Error("gRPC server shutdown error", "error", err)
	} else {
		slog.Info("gRPC server stopped gracefully")
	}

	a.sessionSvc.Stop()
	a.orderSvc.Drain()
	slog.Info("Pending order confirmations sent")

	if a.outboxWorker != nil {
		a.outboxWorker.Stop()
		slog.Info("Outbox worker stopped gracefully")
	}

	if a.rabbitMqClient != nil {
		if err := a.rabbitMqClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	if err := a.storage.Close(); err != nil {
		slog.Error("Database connection close error", "error", err)
	} else {
		slog.Info("Storage closed gracefully")
	}

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider connection close error", "error", err)
	} else {
		slog.Info("Otel trace provider connection closed gracefully")
	}

	select {
	case <-ctx.Done():
		slog.Warn("Shutdown timeout exceeded")
	default:
		slog.Info("Application shutdown complete")
	}
}
