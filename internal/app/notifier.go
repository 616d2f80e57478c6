package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/storefront/internal/dal/repositories/confirmation"
	"github.com/corray333/backend-labs/storefront/internal/otel"
	"github.com/corray333/backend-labs/storefront/internal/service/services/notifysvc"
	"github.com/corray333/backend-labs/storefront/internal/transport/consumer"
	inboxworker "github.com/corray333/backend-labs/storefront/internal/worker/inbox"
)

// NotifierApp consumes order confirmations and mails them.
type NotifierApp struct {
	storage        storage
	consumerTransp *consumer.Consumer
	inboxWorker    *inboxworker.Worker
	rabbitMqClient *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewNotifierApp creates a new notifier application.
func MustNewNotifierApp() *NotifierApp {
	otelController := otel.MustInitOtel("storefront-notifier")
	rabbitMqClient := rabbitmq.MustNewClient()
	st := mustNewStorage()

	queue := confirmation.MustDeclareQueue(rabbitMqClient)
	notifySvc := notifysvc.MustNewNotifyService()

	return &NotifierApp{
		storage:        st,
		consumerTransp: consumer.NewConsumer(rabbitMqClient, notifySvc, st.inbox, queue),
		inboxWorker:    inboxworker.NewWorker(st.inbox, notifySvc),
		rabbitMqClient: rabbitMqClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *NotifierApp) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting consumer")
		if err := a.consumerTransp.Run(ctx); err != nil {
			slog.Error("Consumer error", "error", err)
		}
	}()

	go func() {
		slog.Info("Starting inbox worker")
		a.inboxWorker.Start(ctx)
	}()

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown shuts down the inbox worker, the consumer and then the connections.
func (a *NotifierApp) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a.inboxWorker.Stop()
	slog.Info("Inbox worker stopped gracefully")

	if err := a.consumerTransp.Shutdown(); err != nil {
		slog.Error("Consumer shutdown error", "error", err)
	} else {
		slog.Info("Consumer stopped gracefully")
	}

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	if err := a.storage.Close(); err != nil {
		slog.Error("Database connection close error", "error", err)
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
