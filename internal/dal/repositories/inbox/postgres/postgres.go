package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/storefront/internal/service/models/inbox"
	"github.com/jmoiron/sqlx"
)

type inboxDal struct {
	ID          int64     `db:"id"`
	MessageID   string    `db:"message_id"`
	QueueName   string    `db:"queue_name"`
	Payload     []byte    `db:"payload"`
	ContentType string    `db:"content_type"`
	RetryCount  int       `db:"retry_count"`
	MaxRetries  int       `db:"max_retries"`
	LastError   string    `db:"last_error"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	NextRetryAt time.Time `db:"next_retry_at"`
}

// InboxRepository implements the inbox repository for PostgreSQL.
type InboxRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewInboxRepository creates a new inbox repository.
func NewInboxRepository(db *sqlx.DB) *InboxRepository {
	return &InboxRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert stores a message whose handling failed.
func (r *InboxRepository) Insert(ctx context.Context, msg inbox.InboxMessage) error {
	query, args, err := r.sb.Insert("inbox").
		SetMap(map[string]any{
			"message_id":    msg.MessageID,
			"queue_name":    msg.QueueName,
			"payload":       msg.Payload,
			"content_type":  msg.ContentType,
			"retry_count":   msg.RetryCount,
			"max_retries":   msg.MaxRetries,
			"last_error":    msg.LastError,
			"created_at":    msg.CreatedAt,
			"updated_at":    msg.UpdatedAt,
			"next_retry_at": msg.NextRetryAt,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert inbox message: %w", err)
	}

	return nil
}

// GetPendingMessages retrieves messages that are ready for retry.
func (r *InboxRepository) GetPendingMessages(ctx context.Context, limit int) ([]inbox.InboxMessage, error) {
	query, args, err := r.sb.Select("*").
		From("inbox").
		Where(sq.LtOrEq{"next_retry_at": time.Now()}).
		Where(sq.Expr("retry_count < max_retries")).
		OrderBy("next_retry_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var rows []inboxDal
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query inbox messages: %w", err)
	}

	messages := make([]inbox.InboxMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, inbox.InboxMessage(row))
	}

	return messages, nil
}

// Delete removes a message after successful handling.
func (r *InboxRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("inbox").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete inbox message: %w", err)
	}

	return nil
}

// UpdateRetry records a failed attempt and schedules the next one.
func (r *InboxRepository) UpdateRetry(
	ctx context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	query, args, err := r.sb.Update("inbox").
		Set("retry_count", retryCount).
		Set("last_error", lastError).
		Set("next_retry_at", nextRetryAt).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update inbox message: %w", err)
	}

	return nil
}
