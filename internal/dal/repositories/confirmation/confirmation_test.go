package confirmation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/corray333/backend-labs/storefront/internal/dal/memory"
	"github.com/corray333/backend-labs/storefront/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/storefront/internal/service/models/notification"
)

type fakePublisher struct {
	err       error
	published []rabbitmq.PublishConfig
}

func (f *fakePublisher) Publish(_ context.Context, cfg rabbitmq.PublishConfig) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, cfg)

	return nil
}

func TestSendOrderConfirmation(t *testing.T) {
	msg := notification.OrderConfirmation{OrderID: "ORD-1", Language: "nl"}

	t.Run("published", func(t *testing.T) {
		pub := &fakePublisher{}
		store := memory.NewStore()
		repo := NewConfirmationRabbitMQRepository(pub, store.Outbox(), "q")

		if err := repo.SendOrderConfirmation(context.Background(), msg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(pub.published) != 1 {
			t.Fatalf("published %d messages, want 1", len(pub.published))
		}
		got := pub.published[0]
		if got.RoutingKey != "q" || got.ContentType != contentType || got.MessageID == "" {
			t.Errorf("unexpected publishing %+v", got)
		}
		var decoded notification.OrderConfirmation
		if err := json.Unmarshal(got.Body, &decoded); err != nil || decoded.OrderID != "ORD-1" {
			t.Errorf("body = %s, err = %v", got.Body, err)
		}
		pending, _ := store.Outbox().GetPendingMessages(context.Background(), 10)
		if len(pending) != 0 {
			t.Errorf("outbox has %d messages, want 0", len(pending))
		}
	})

	t.Run("parked on failure", func(t *testing.T) {
		pub := &fakePublisher{err: errors.New("channel closed")}
		store := memory.NewStore()
		repo := NewConfirmationRabbitMQRepository(pub, store.Outbox(), "q")

		if err := repo.SendOrderConfirmation(context.Background(), msg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		pending, err := store.Outbox().GetPendingMessages(context.Background(), 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(pending) != 1 {
			t.Fatalf("outbox has %d messages, want 1", len(pending))
		}
		if pending[0].RoutingKey != "q" || pending[0].LastError != "channel closed" {
			t.Errorf("unexpected outbox message %+v", pending[0])
		}
	})
}
