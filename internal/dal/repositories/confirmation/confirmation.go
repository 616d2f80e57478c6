package confirmation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/storefront/internal/service/models/notification"
	"github.com/corray333/backend-labs/storefront/internal/service/models/outbox"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const contentType = "application/json"

// publisher is the part of the RabbitMQ client the repository needs.
type publisher interface {
	Publish(ctx context.Context, cfg rabbitmq.PublishConfig) error
}

// ConfirmationRabbitMQRepository publishes order confirmations to the
// notifications queue. Messages that cannot be published are parked in the
// outbox for the outbox worker.
type ConfirmationRabbitMQRepository struct {
	client     publisher
	outboxRepo ioutboxrepo.IOutboxRepository
	queue      string
}

// QueueName returns the configured notifications queue.
func QueueName() string {
	name := viper.GetString("rabbitmq.notifications.queue")
	if name == "" {
		name = "storefront.order.confirmation"
	}

	return name
}

// MustDeclareQueue declares the notifications queue on the client.
func MustDeclareQueue(client *rabbitmq.Client) string {
	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    QueueName(),
		Durable: true,
	})
	if err != nil {
		panic(err)
	}

	return queue.Name
}

func NewConfirmationRabbitMQRepository(
	client publisher,
	outboxRepo ioutboxrepo.IOutboxRepository,
	queue string,
) *ConfirmationRabbitMQRepository {
	return &ConfirmationRabbitMQRepository{
		client:     client,
		outboxRepo: outboxRepo,
		queue:      queue,
	}
}

// SendOrderConfirmation publishes msg. It only fails when the message could
// neither be published nor parked.
func (r *ConfirmationRabbitMQRepository) SendOrderConfirmation(
	ctx context.Context,
	msg notification.OrderConfirmation,
) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal order confirmation: %w", err)
	}

	pubErr := r.client.Publish(ctx, rabbitmq.PublishConfig{
		RoutingKey:  r.queue,
		ContentType: contentType,
		MessageID:   uuid.NewString(),
		Body:        payload,
	})
	if pubErr == nil {
		return nil
	}

	slog.Warn("Failed to publish order confirmation, parking in outbox",
		"order_id", msg.OrderID,
		"error", pubErr,
	)

	now := time.Now()
	err = r.outboxRepo.Insert(ctx, outbox.OutboxMessage{
		QueueName:   r.queue,
		RoutingKey:  r.queue,
		Payload:     payload,
		ContentType: contentType,
		MaxRetries:  outbox.DefaultMaxRetries,
		LastError:   pubErr.Error(),
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
	if err != nil {
		return fmt.Errorf("failed to park order confirmation: %w", err)
	}

	return nil
}
