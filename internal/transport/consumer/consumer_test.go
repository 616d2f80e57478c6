package consumer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/corray333/backend-labs/storefront/internal/dal/memory"
	"github.com/corray333/backend-labs/storefront/internal/service/models/notification"
	"github.com/corray333/backend-labs/storefront/internal/service/services/notifysvc"
	"github.com/streadway/amqp"
)

type ackRecorder struct {
	acked   int
	nacked  int
	requeue bool
}

func (a *ackRecorder) Ack(uint64, bool) error {
	a.acked++

	return nil
}

func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked++
	a.requeue = requeue

	return nil
}

func (a *ackRecorder) Reject(uint64, bool) error { return nil }

type fakeService struct {
	err error
}

func (f fakeService) SendOrderConfirmation(context.Context, notification.OrderConfirmation) error {
	return f.err
}

func TestProcessMessage(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantAck    int
		wantNack   int
		wantParked int
	}{
		{"delivered", `{"orderId":"ORD-1"}`, nil, 1, 0, 0},
		{"malformed rejected", `not json`, nil, 0, 1, 0},
		{"failed delivery parked", `{"orderId":"ORD-1"}`, errors.New("smtp down"), 1, 0, 1},
		{"no recipient dropped", `{"orderId":"ORD-1"}`, fmt.Errorf("%w: ORD-1", notifysvc.ErrNoRecipient), 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			c := NewConsumer(nil, fakeService{err: tt.serviceErr}, store.Inbox(), "q")
			ack := &ackRecorder{}

			err := c.processMessage(context.Background(), amqp.Delivery{
				Acknowledger: ack,
				MessageId:    "m-1",
				ContentType:  "application/json",
				Body:         []byte(tt.body),
			})
			if err != nil {
				t.Fatal(err)
			}

			if ack.acked != tt.wantAck || ack.nacked != tt.wantNack {
				t.Errorf("ack/nack = %d/%d, want %d/%d", ack.acked, ack.nacked, tt.wantAck, tt.wantNack)
			}
			if ack.nacked > 0 && ack.requeue {
				t.Error("malformed message requeued")
			}
			parked, err := store.Inbox().GetPendingMessages(context.Background(), 10)
			if err != nil {
				t.Fatal(err)
			}
			if len(parked) != tt.wantParked {
				t.Errorf("parked = %d, want %d", len(parked), tt.wantParked)
			}
		})
	}
}
