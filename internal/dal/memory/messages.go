package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/service/models/inbox"
	"github.com/corray333/backend-labs/storefront/internal/service/models/outbox"
)

// OutboxRepository keeps messages waiting to be republished.
type OutboxRepository struct {
	s *Store
}

// Outbox returns the outbox repository of the store.
func (s *Store) Outbox() *OutboxRepository {
	return &OutboxRepository{s: s}
}

func (r *OutboxRepository) Insert(_ context.Context, msg outbox.OutboxMessage) error {
	return r.s.write(func(d *collections) error {
		d.Seq.Outbox++
		msg.ID = d.Seq.Outbox
		d.Outbox[msg.ID] = msg

		return nil
	})
}

func (r *OutboxRepository) GetPendingMessages(_ context.Context, limit int) ([]outbox.OutboxMessage, error) {
	now := time.Now()
	var result []outbox.OutboxMessage
	err := r.s.read(func(d *collections) error {
		for _, msg := range d.Outbox {
			if !msg.NextRetryAt.After(now) && msg.RetryCount < msg.MaxRetries {
				result = append(result, msg)
			}
		}

		return nil
	})
	slices.SortFunc(result, func(a, b outbox.OutboxMessage) int {
		if c := a.NextRetryAt.Compare(b.NextRetryAt); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, err
}

func (r *OutboxRepository) Delete(_ context.Context, id int64) error {
	return r.s.write(func(d *collections) error {
		delete(d.Outbox, id)

		return nil
	})
}

func (r *OutboxRepository) UpdateRetry(
	_ context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	return r.s.write(func(d *collections) error {
		msg, ok := d.Outbox[id]
		if !ok {
			return nil
		}
		msg.RetryCount = retryCount
		msg.LastError = lastError
		msg.NextRetryAt = nextRetryAt
		msg.UpdatedAt = time.Now()
		d.Outbox[id] = msg

		return nil
	})
}

// InboxRepository keeps received messages waiting to be handled again.
type InboxRepository struct {
	s *Store
}

// Inbox returns the inbox repository of the store.
func (s *Store) Inbox() *InboxRepository {
	return &InboxRepository{s: s}
}

func (r *InboxRepository) Insert(_ context.Context, msg inbox.InboxMessage) error {
	return r.s.write(func(d *collections) error {
		d.Seq.Inbox++
		msg.ID = d.Seq.Inbox
		d.Inbox[msg.ID] = msg

		return nil
	})
}

func (r *InboxRepository) GetPendingMessages(_ context.Context, limit int) ([]inbox.InboxMessage, error) {
	now := time.Now()
	var result []inbox.InboxMessage
	err := r.s.read(func(d *collections) error {
		for _, msg := range d.Inbox {
			if !msg.NextRetryAt.After(now) && msg.RetryCount < msg.MaxRetries {
				result = append(result, msg)
			}
		}

		return nil
	})
	slices.SortFunc(result, func(a, b inbox.InboxMessage) int {
		if c := a.NextRetryAt.Compare(b.NextRetryAt); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, err
}

func (r *InboxRepository) Delete(_ context.Context, id int64) error {
	return r.s.write(func(d *collections) error {
		delete(d.Inbox, id)

		return nil
	})
}

func (r *InboxRepository) UpdateRetry(
	_ context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	return r.s.write(func(d *collections) error {
		msg, ok := d.Inbox[id]
		if !ok {
			return nil
		}
		msg.RetryCount = retryCount
		msg.LastError = lastError
		msg.NextRetryAt = nextRetryAt
		msg.UpdatedAt = time.Now()
		d.Inbox[id] = msg

		return nil
	})
}
