package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/iinboxrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/storefront/internal/service/models/inbox"
	"github.com/corray333/backend-labs/storefront/internal/service/models/notification"
	"github.com/corray333/backend-labs/storefront/internal/service/services/notifysvc"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

// service represents the service layer interface.
type service interface {
	SendOrderConfirmation(ctx context.Context, msg notification.OrderConfirmation) error
}

// Consumer reads order confirmations from RabbitMQ.
type Consumer struct {
	client    *rabbitmq.Client
	service   service
	inboxRepo iinboxrepo.IInboxRepository
	queue     string
	stop      chan struct{}
	done      chan struct{}
}

// NewConsumer creates a new Consumer for queue.
func NewConsumer(
	client *rabbitmq.Client,
	service service,
	inboxRepo iinboxrepo.IInboxRepository,
	queue string,
) *Consumer {
	return &Consumer{
		client:    client,
		service:   service,
		inboxRepo: inboxRepo,
		queue:     queue,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Run starts consuming messages from RabbitMQ.
func (c *Consumer) Run(ctx context.Context) error {
	consumerTag := viper.GetString("rabbitmq.consumer_tag")
	if consumerTag == "" {
		consumerTag = "storefront-notifier"
	}

	msgs, err := c.client.Consume(rabbitmq.ConsumeConfig{
		Queue:     c.queue,
		Consumer:  consumerTag,
		Exclusive: viper.GetBool("rabbitmq.exclusive"),
	})
	if err != nil {
		return err
	}

	slog.Info("Consumer started", "queue", c.queue, "consumer_tag", consumerTag)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(50)

	go func() {
		for {
			select {
			case <-c.stop:
				slog.Info("Stopping consumer")
				close(c.done)

				return
			case msg, ok := <-msgs:
				if !ok {
					slog.Info("Message channel closed")
					close(c.done)

					return
				}

				g.Go(func() error {
					return c.processMessage(gctx, msg)
				})
			}
		}
	}()

	<-c.done
	if err := g.Wait(); err != nil {
		slog.Error("Error processing messages", "error", err)
	}

	return nil
}

// processMessage hands one confirmation to the service. Failed deliveries
// are parked in the inbox and acknowledged; only a failed park requeues.
func (c *Consumer) processMessage(ctx context.Context, msg amqp.Delivery) error {
	ctx, span := otel.Tracer("consumer").Start(ctx, "Consumer.processMessage")
	defer span.End()

	var confirmation notification.OrderConfirmation
	if err := json.Unmarshal(msg.Body, &confirmation); err != nil {
		slog.Error("Failed to unmarshal confirmation", "message_id", msg.MessageId, "error", err)
		if err := msg.Nack(false, false); err != nil {
			slog.Error("Failed to nack message", "error", err)
		}

		return nil
	}

	err := c.service.SendOrderConfirmation(ctx, confirmation)
	switch {
	case err == nil:
	case errors.Is(err, notifysvc.ErrNoRecipient):
		slog.Warn("Dropping confirmation without recipient", "order_id", confirmation.OrderID)
	default:
		if parkErr := c.park(ctx, msg, err); parkErr != nil {
			slog.Error("Failed to park confirmation in inbox", "order_id", confirmation.OrderID, "error", parkErr)
			if err := msg.Nack(false, true); err != nil {
				slog.Error("Failed to nack message", "error", err)
			}

			return nil
		}
	}

	if err := msg.Ack(false); err != nil {
		slog.Error("Failed to ack message", "error", err)

		return nil
	}

	return nil
}

func (c *Consumer) park(ctx context.Context, msg amqp.Delivery, cause error) error {
	maxRetries := viper.GetInt("rabbitmq.inbox.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	now := time.Now()

	return c.inboxRepo.Insert(ctx, inbox.InboxMessage{
		MessageID:   msg.MessageId,
		QueueName:   c.queue,
		Payload:     msg.Body,
		ContentType: msg.ContentType,
		MaxRetries:  maxRetries,
		LastError:   cause.Error(),
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
}

// Shutdown gracefully shuts down the consumer.
func (c *Consumer) Shutdown() error {
	slog.Info("Shutting down consumer")
	close(c.stop)

	select {
	case <-c.done:
		slog.Info("Consumer stopped successfully")
	case <-time.After(10 * time.Second):
		slog.Warn("Consumer shutdown timeout")
	}

	return nil
}
