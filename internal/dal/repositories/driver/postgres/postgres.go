package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	"github.com/corray333/backend-labs/storefront/internal/service/models/driver"
	"github.com/jackc/pgx/v5"
)

var driverColumns = []string{"id", "name", "phone", "status", "active_deliveries", "created_at", "updated_at"}

// PostgresDriverRepository represents a Postgres driver repository.
type PostgresDriverRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresDriverRepository creates a new Postgres driver repository.
func NewPostgresDriverRepository(conn postgres.GenericConn) *PostgresDriverRepository {
	return &PostgresDriverRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanDriver(row pgx.Row) (driver.Driver, error) {
	var (
		d      driver.Driver
		status string
	)
	if err := row.Scan(&d.ID, &d.Name, &d.Phone, &status, &d.ActiveDeliveries, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return driver.Driver{}, err
	}
	st, err := driver.ParseStatus(status)
	if err != nil {
		return driver.Driver{}, err
	}
	d.Status = st

	return d, nil
}

func (r *PostgresDriverRepository) Create(ctx context.Context, d driver.Driver) error {
	sql, args, err := r.sb.Insert("drivers").
		Columns(driverColumns...).
		Values(d.ID, d.Name, d.Phone, string(d.Status), d.ActiveDeliveries, d.CreatedAt, d.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return driver.ErrDuplicateDriver
		}

		return fmt.Errorf("failed to insert driver: %w", err)
	}

	return nil
}

func (r *PostgresDriverRepository) get(ctx context.Context, id string, lock bool) (driver.Driver, error) {
	query := r.sb.Select(driverColumns...).From("drivers").Where(sq.Eq{"id": id})
	if lock {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return driver.Driver{}, fmt.Errorf("failed to build query: %w", err)
	}

	d, err := scanDriver(r.conn.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return driver.Driver{}, driver.ErrDriverNotFound
	}
	if err != nil {
		return driver.Driver{}, fmt.Errorf("failed to get driver: %w", err)
	}

	return d, nil
}

func (r *PostgresDriverRepository) Get(ctx context.Context, id string) (driver.Driver, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate locks the driver row until the transaction ends.
func (r *PostgresDriverRepository) GetForUpdate(ctx context.Context, id string) (driver.Driver, error) {
	return r.get(ctx, id, true)
}

func (r *PostgresDriverRepository) Update(ctx context.Context, d driver.Driver) error {
	sql, args, err := r.sb.Update("drivers").
		Set("name", d.Name).
		Set("phone", d.Phone).
		Set("status", string(d.Status)).
		Set("active_deliveries", d.ActiveDeliveries).
		Set("updated_at", d.UpdatedAt).
		Where(sq.Eq{"id": d.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return driver.ErrDriverNotFound
	}

	return nil
}

func (r *PostgresDriverRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("drivers").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return driver.ErrDriverNotFound
	}

	return nil
}

func (r *PostgresDriverRepository) List(ctx context.Context, filter *driver.QueryDriversModel) ([]driver.Driver, error) {
	query := r.sb.Select(driverColumns...).From("drivers").OrderBy("id ASC")
	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}
	if !filter.IncludeOffline {
		query = query.Where(sq.NotEq{"status": string(driver.StatusOffline)})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query drivers: %w", err)
	}
	defer rows.Close()

	var result []driver.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		result = append(result, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
