package inbox

import (
	"time"
)

// InboxMessage is a received message whose handling failed and is retried later.
type InboxMessage struct {
	ID          int64
	MessageID   string
	QueueName   string
	Payload     []byte
	ContentType string
	RetryCount  int
	MaxRetries  int
	LastError   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	NextRetryAt time.Time
}
