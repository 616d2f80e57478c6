package iinboxrepo

import (
	"context"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/service/models/inbox"
)

// IInboxRepository keeps received messages whose handling failed.
type IInboxRepository interface {
	Insert(ctx context.Context, msg inbox.InboxMessage) error
	GetPendingMessages(ctx context.Context, limit int) ([]inbox.InboxMessage, error)
	Delete(ctx context.Context, id int64) error
	UpdateRetry(
		ctx context.Context,
		id int64,
		retryCount int,
		lastError string,
		nextRetryAt time.Time,
	) error
}
