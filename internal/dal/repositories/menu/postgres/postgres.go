package postgresrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	"github.com/corray333/backend-labs/storefront/internal/service/models/menuitem"
	"github.com/jackc/pgx/v5"
)

var menuColumns = []string{
	"id",
	"category",
	"price_cents",
	"names",
	"descriptions",
	"image",
	"is_available",
	"created_at",
	"updated_at",
}

// PostgresMenuRepository represents a Postgres menu catalog.
type PostgresMenuRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresMenuRepository creates a new Postgres menu repository.
func NewPostgresMenuRepository(conn postgres.GenericConn) *PostgresMenuRepository {
	return &PostgresMenuRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanMenuItem(row pgx.Row) (menuitem.MenuItem, error) {
	var (
		item               menuitem.MenuItem
		names, description []byte
	)
	err := row.Scan(
		&item.ID,
		&item.Category,
		&item.PriceCents,
		&names,
		&description,
		&item.Image,
		&item.IsAvailable,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return menuitem.MenuItem{}, err
	}
	if err := json.Unmarshal(names, &item.Names); err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("failed to decode names: %w", err)
	}
	if err := json.Unmarshal(description, &item.Descriptions); err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("failed to decode descriptions: %w", err)
	}

	return item, nil
}

func encodeTexts(m map[string]string) ([]byte, error) {
	if m == nil {
		m = map[string]string{}
	}

	return json.Marshal(m)
}

func (r *PostgresMenuRepository) List(ctx context.Context) ([]menuitem.MenuItem, error) {
	sql, args, err := r.sb.Select(menuColumns...).
		From("menu_items").
		OrderBy("category ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var result []menuitem.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		result = append(result, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func (r *PostgresMenuRepository) Get(ctx context.Context, id string) (menuitem.MenuItem, error) {
	sql, args, err := r.sb.Select(menuColumns...).From("menu_items").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("failed to build query: %w", err)
	}

	item, err := scanMenuItem(r.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return menuitem.MenuItem{}, menuitem.ErrMenuItemNotFound
	}
	if err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("failed to get menu item: %w", err)
	}

	return item, nil
}

func (r *PostgresMenuRepository) Create(ctx context.Context, items ...menuitem.MenuItem) error {
	if len(items) == 0 {
		return nil
	}

	query := r.sb.Insert("menu_items").Columns(menuColumns...)
	for _, item := range items {
		names, err := encodeTexts(item.Names)
		if err != nil {
			return err
		}
		descriptions, err := encodeTexts(item.Descriptions)
		if err != nil {
			return err
		}
		query = query.Values(
			item.ID,
			item.Category,
			item.PriceCents,
			names,
			descriptions,
			item.Image,
			item.IsAvailable,
			item.CreatedAt,
			item.UpdatedAt,
		)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return menuitem.ErrDuplicateMenuItem
		}

		return fmt.Errorf("failed to insert menu items: %w", err)
	}

	return nil
}

func (r *PostgresMenuRepository) Update(ctx context.Context, item menuitem.MenuItem) error {
	names, err := encodeTexts(item.Names)
	if err != nil {
		return err
	}
	descriptions, err := encodeTexts(item.Descriptions)
	if err != nil {
		return err
	}

	sql, args, err := r.sb.Update("menu_items").
		Set("category", item.Category).
		Set("price_cents", item.PriceCents).
		Set("names", names).
		Set("descriptions", descriptions).
		Set("image", item.Image).
		Set("is_available", item.IsAvailable).
		Set("updated_at", item.UpdatedAt).
		Where(sq.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return menuitem.ErrMenuItemNotFound
	}

	return nil
}

func (r *PostgresMenuRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("menu_items").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return menuitem.ErrMenuItemNotFound
	}

	return nil
}
