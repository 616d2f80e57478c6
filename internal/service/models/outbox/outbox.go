package outbox

import (
	"time"
)

// DefaultMaxRetries bounds delivery attempts of a parked message.
const DefaultMaxRetries = 10

// OutboxMessage is a message that failed to be published to RabbitMQ.
type OutboxMessage struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}
