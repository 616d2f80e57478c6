package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/dal/memory"
	"github.com/corray333/backend-labs/storefront/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/storefront/internal/service/models/outbox"
)

type fakePublisher struct {
	err   error
	calls int
}

func (f *fakePublisher) Publish(context.Context, rabbitmq.PublishConfig) error {
	f.calls++

	return f.err
}

func park(t *testing.T, store *memory.Store) {
	t.Helper()

	err := store.Outbox().Insert(context.Background(), outbox.OutboxMessage{
		RoutingKey:  "q",
		Payload:     []byte(`{}`),
		ContentType: "application/json",
		MaxRetries:  3,
		NextRetryAt: time.Now().Add(-time.Second),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
}

func TestProcessMessages(t *testing.T) {
	t.Run("delivered messages are removed", func(t *testing.T) {
		store := memory.NewStore()
		park(t, store)
		pub := &fakePublisher{}
		w := NewWorker(store.Outbox(), pub)

		w.processMessages(context.Background())

		if pub.calls != 1 {
			t.Errorf("publish calls = %d, want 1", pub.calls)
		}
		left, _ := store.Outbox().GetPendingMessages(context.Background(), 10)
		if len(left) != 0 {
			t.Errorf("outbox has %d messages, want 0", len(left))
		}
	})

	t.Run("failed messages are rescheduled", func(t *testing.T) {
		store := memory.NewStore()
		park(t, store)
		w := NewWorker(store.Outbox(), &fakePublisher{err: errors.New("down")})
		// A negative interval makes the retry due immediately.
		w.retryInterval = -time.Minute

		w.processMessages(context.Background())

		left, _ := store.Outbox().GetPendingMessages(context.Background(), 10)
		if len(left) != 1 {
			t.Fatalf("outbox has %d pending messages, want 1", len(left))
		}
		if left[0].RetryCount != 1 || left[0].LastError != "down" {
			t.Errorf("unexpected retry state %+v", left[0])
		}
	})
}
