package inbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/iinboxrepo"
	"github.com/corray333/backend-labs/storefront/internal/service/models/inbox"
	"github.com/corray333/backend-labs/storefront/internal/service/models/notification"
	"github.com/corray333/backend-labs/storefront/internal/worker/backoff"
	"github.com/spf13/viper"
)

// service represents the service layer interface.
type service interface {
	SendOrderConfirmation(ctx context.Context, msg notification.OrderConfirmation) error
}

// Worker retries confirmations parked in the inbox table.
type Worker struct {
	inboxRepo     iinboxrepo.IInboxRepository
	service       service
	pollInterval  time.Duration
	batchSize     int
	retryInterval time.Duration
	stopCh        chan struct{}
}

// NewWorker creates a new inbox worker.
func NewWorker(inboxRepo iinboxrepo.IInboxRepository, service service) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.inbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("rabbitmq.inbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	retryIntervalSeconds := viper.GetInt("rabbitmq.inbox.retry_interval_seconds")
	if retryIntervalSeconds == 0 {
		retryIntervalSeconds = 30
	}

	return &Worker{
		inboxRepo:     inboxRepo,
		service:       service,
		pollInterval:  time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:     batchSize,
		retryInterval: time.Duration(retryIntervalSeconds) * time.Second,
		stopCh:        make(chan struct{}),
	}
}

// Start begins processing messages from the inbox.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Inbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Inbox worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Inbox worker stopped")

			return
		case <-ticker.C:
			w.processMessages(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// processMessages retrieves and retries pending messages from the inbox.
func (w *Worker) processMessages(ctx context.Context) {
	messages, err := w.inboxRepo.GetPendingMessages(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending messages from inbox", "error", err)

		return
	}

	if len(messages) == 0 {
		return
	}

	slog.Info("Processing inbox messages", "count", len(messages))

	for _, msg := range messages {
		var confirmation notification.OrderConfirmation
		if err := json.Unmarshal(msg.Payload, &confirmation); err != nil {
			slog.Error("Dropping malformed message from inbox", "inbox_id", msg.ID, "error", err)
			w.delete(ctx, msg)

			continue
		}

		if err := w.service.SendOrderConfirmation(ctx, confirmation); err != nil {
			w.retry(ctx, msg, err)

			continue
		}

		w.delete(ctx, msg)
		slog.Info("Message successfully processed and removed from inbox",
			"inbox_id", msg.ID,
			"message_id", msg.MessageID,
			"order_id", confirmation.OrderID,
		)
	}
}

func (w *Worker) retry(ctx context.Context, msg inbox.InboxMessage, cause error) {
	newRetryCount := msg.RetryCount + 1
	if newRetryCount >= msg.MaxRetries {
		slog.Warn("Max retries reached, giving up on message",
			"inbox_id", msg.ID,
			"message_id", msg.MessageID,
			"error", cause,
		)
	}
	nextRetryAt := backoff.Next(time.Now(), newRetryCount, w.retryInterval)

	if err := w.inboxRepo.UpdateRetry(ctx, msg.ID, newRetryCount, cause.Error(), nextRetryAt); err != nil {
		slog.Error("Failed to update retry information", "inbox_id", msg.ID, "error", err)
	}
}

func (w *Worker) delete(ctx context.Context, msg inbox.InboxMessage) {
	if err := w.inboxRepo.Delete(ctx, msg.ID); err != nil {
		slog.Error("Failed to delete message from inbox", "inbox_id", msg.ID, "error", err)
	}
}
