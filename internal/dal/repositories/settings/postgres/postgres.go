package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	"github.com/corray333/backend-labs/storefront/internal/service/models/settings"
	"github.com/spf13/cast"
)

const (
	keyRestaurantName           = "restaurant_name"
	keyRestaurantAddress        = "restaurant_address"
	keyRestaurantPhone          = "restaurant_phone"
	keyDeliveryFeeCents         = "delivery_fee_cents"
	keyFreeDeliveryFromCents    = "free_delivery_from_cents"
	keyMinOrderAmountCents      = "min_order_amount_cents"
	keyEstimatedDeliveryMinutes = "estimated_delivery_minutes"
	keyEstimatedPickupMinutes   = "estimated_pickup_minutes"
	keyAcceptingOrders          = "accepting_orders"
)

// PostgresSettingsRepository keeps settings as key/value rows.
type PostgresSettingsRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresSettingsRepository creates a new Postgres settings repository.
func NewPostgresSettingsRepository(conn postgres.GenericConn) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Load reads all rows. Keys missing from the table keep their default value.
func (r *PostgresSettingsRepository) Load(ctx context.Context) (settings.Settings, error) {
	sql, args, err := r.sb.Select("key", "value").From("restaurant_settings").ToSql()
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	values := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings.Settings{}, fmt.Errorf("failed to scan setting: %w", err)
		}
		values[key] = value
	}
	if err = rows.Err(); err != nil {
		return settings.Settings{}, fmt.Errorf("rows iteration error: %w", err)
	}

	if len(values) == 0 {
		return settings.Settings{}, settings.ErrSettingsNotFound
	}

	return fromValues(values), nil
}

func fromValues(values map[string]string) settings.Settings {
	s := settings.Default()
	if v, ok := values[keyRestaurantName]; ok {
		s.RestaurantName = v
	}
	if v, ok := values[keyRestaurantAddress]; ok {
		s.RestaurantAddress = v
	}
	if v, ok := values[keyRestaurantPhone]; ok {
		s.RestaurantPhone = v
	}
	if v, ok := values[keyDeliveryFeeCents]; ok {
		s.DeliveryFeeCents = cast.ToInt64(v)
	}
	if v, ok := values[keyFreeDeliveryFromCents]; ok {
		s.FreeDeliveryFromCents = cast.ToInt64(v)
	}
	if v, ok := values[keyMinOrderAmountCents]; ok {
		s.MinOrderAmountCents = cast.ToInt64(v)
	}
	if v, ok := values[keyEstimatedDeliveryMinutes]; ok {
		s.EstimatedDeliveryMinutes = cast.ToInt(v)
	}
	if v, ok := values[keyEstimatedPickupMinutes]; ok {
		s.EstimatedPickupMinutes = cast.ToInt(v)
	}
	if v, ok := values[keyAcceptingOrders]; ok {
		s.AcceptingOrders = cast.ToBool(v)
	}

	return s
}

func toValues(s settings.Settings) map[string]any {
	return map[string]any{
		keyRestaurantName:           s.RestaurantName,
		keyRestaurantAddress:        s.RestaurantAddress,
		keyRestaurantPhone:          s.RestaurantPhone,
		keyDeliveryFeeCents:         s.DeliveryFeeCents,
		keyFreeDeliveryFromCents:    s.FreeDeliveryFromCents,
		keyMinOrderAmountCents:      s.MinOrderAmountCents,
		keyEstimatedDeliveryMinutes: s.EstimatedDeliveryMinutes,
		keyEstimatedPickupMinutes:   s.EstimatedPickupMinutes,
		keyAcceptingOrders:          s.AcceptingOrders,
	}
}

// Save upserts every key.
func (r *PostgresSettingsRepository) Save(ctx context.Context, s settings.Settings) error {
	query := r.sb.Insert("restaurant_settings").Columns("key", "value")
	for key, value := range toValues(s) {
		query = query.Values(key, cast.ToString(value))
	}

	sql, args, err := query.Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value").ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}
