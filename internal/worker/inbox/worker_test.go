package inbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/dal/memory"
	"github.com/corray333/backend-labs/storefront/internal/service/models/inbox"
	"github.com/corray333/backend-labs/storefront/internal/service/models/notification"
)

type fakeService struct {
	err  error
	sent []string
}

func (f *fakeService) SendOrderConfirmation(_ context.Context, msg notification.OrderConfirmation) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg.OrderID)

	return nil
}

func park(t *testing.T, store *memory.Store, payload string) {
	t.Helper()

	err := store.Inbox().Insert(context.Background(), inbox.InboxMessage{
		MessageID:   "m-1",
		QueueName:   "q",
		Payload:     []byte(payload),
		ContentType: "application/json",
		MaxRetries:  3,
		NextRetryAt: time.Now().Add(-time.Second),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
}

func pending(t *testing.T, store *memory.Store) []inbox.InboxMessage {
	t.Helper()

	msgs, err := store.Inbox().GetPendingMessages(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}

	return msgs
}

func TestProcessMessages(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		serviceErr  error
		wantSent    int
		wantPending int
	}{
		{"delivered", `{"orderId":"ORD-1"}`, nil, 1, 0},
		{"malformed dropped", `{`, nil, 0, 0},
		{"failure rescheduled", `{"orderId":"ORD-1"}`, errors.New("smtp down"), 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			park(t, store, tt.payload)
			svc := &fakeService{err: tt.serviceErr}
			w := NewWorker(store.Inbox(), svc)
			// Rescheduled messages stay due so the retry state can be read back.
			w.retryInterval = -time.Minute

			w.processMessages(context.Background())

			if len(svc.sent) != tt.wantSent {
				t.Errorf("sent = %v, want %d", svc.sent, tt.wantSent)
			}
			left := pending(t, store)
			if len(left) != tt.wantPending {
				t.Fatalf("pending = %d, want %d", len(left), tt.wantPending)
			}
			if tt.wantPending > 0 && (left[0].RetryCount != 1 || left[0].LastError != "smtp down") {
				t.Errorf("retry state = %d %q", left[0].RetryCount, left[0].LastError)
			}
		})
	}
}
