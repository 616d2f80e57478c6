package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	"github.com/corray333/backend-labs/storefront/internal/service/models/currency"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var orderColumns = []string{
	"id",
	"subtotal_cents",
	"delivery_fee_cents",
	"total_cents",
	"currency",
	"status",
	"payment_method",
	"payment_status",
	"payment_amount_cents",
	"paid_at",
	"transaction_id",
	"delivery_type",
	"estimated_time",
	"customer_name",
	"customer_email",
	"customer_phone",
	"customer_address",
	"customer_postal_code",
	"customer_city",
	"customer_notes",
	"language",
	"assigned_driver",
	"estimated_ready_time",
	"created_at",
	"updated_at",
}

// OrderDal represents order data access layer model
type OrderDal struct {
	Id                 string
	SubtotalCents      int64
	DeliveryFeeCents   int64
	TotalCents         int64
	Currency           string
	Status             string
	PaymentMethod      string
	PaymentStatus      string
	PaymentAmountCents int64
	PaidAt             pgtype.Timestamptz
	TransactionId      string
	DeliveryType       string
	EstimatedTime      string
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	CustomerAddress    string
	CustomerPostalCode string
	CustomerCity       string
	CustomerNotes      string
	Language           string
	AssignedDriver     pgtype.Text
	EstimatedReadyTime time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (o *OrderDal) scanTargets() []any {
	return []any{
		&o.Id,
		&o.SubtotalCents,
		&o.DeliveryFeeCents,
		&o.TotalCents,
		&o.Currency,
		&o.Status,
		&o.PaymentMethod,
		&o.PaymentStatus,
		&o.PaymentAmountCents,
		&o.PaidAt,
		&o.TransactionId,
		&o.DeliveryType,
		&o.EstimatedTime,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.CustomerAddress,
		&o.CustomerPostalCode,
		&o.CustomerCity,
		&o.CustomerNotes,
		&o.Language,
		&o.AssignedDriver,
		&o.EstimatedReadyTime,
		&o.CreatedAt,
		&o.UpdatedAt,
	}
}

// ToModel converts OrderDal to service layer Order model
func (o *OrderDal) ToModel() (order.Order, error) {
	cur, err := currency.ParseCurrency(o.Currency)
	if err != nil {
		return order.Order{}, err
	}
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return order.Order{}, err
	}
	method, err := order.ParsePaymentMethod(o.PaymentMethod)
	if err != nil {
		return order.Order{}, err
	}
	paymentStatus, err := order.ParsePaymentStatus(o.PaymentStatus)
	if err != nil {
		return order.Order{}, err
	}
	deliveryType, err := order.ParseDeliveryType(o.DeliveryType)
	if err != nil {
		return order.Order{}, err
	}

	m := order.Order{
		ID:               o.Id,
		SubtotalCents:    o.SubtotalCents,
		DeliveryFeeCents: o.DeliveryFeeCents,
		TotalCents:       o.TotalCents,
		Currency:         cur,
		Status:           status,
		Payment: order.Payment{
			Method:        method,
			Status:        paymentStatus,
			AmountCents:   o.PaymentAmountCents,
			TransactionID: o.TransactionId,
		},
		Delivery: order.Delivery{
			Type:          deliveryType,
			FeeCents:      o.DeliveryFeeCents,
			EstimatedTime: o.EstimatedTime,
		},
		Customer: order.CustomerInfo{
			Name:       o.CustomerName,
			Email:      o.CustomerEmail,
			Phone:      o.CustomerPhone,
			Address:    o.CustomerAddress,
			PostalCode: o.CustomerPostalCode,
			City:       o.CustomerCity,
			Notes:      o.CustomerNotes,
		},
		Language:           o.Language,
		EstimatedReadyTime: o.EstimatedReadyTime,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	if o.PaidAt.Valid {
		paidAt := o.PaidAt.Time
		m.Payment.PaidAt = &paidAt
	}
	if o.AssignedDriver.Valid {
		driverID := o.AssignedDriver.String
		m.AssignedDriver = &driverID
	}

	return m, nil
}

// OrderDalFromModel converts service layer Order model to OrderDal
func OrderDalFromModel(o order.Order) OrderDal {
	dal := OrderDal{
		Id:                 o.ID,
		SubtotalCents:      o.SubtotalCents,
		DeliveryFeeCents:   o.DeliveryFeeCents,
		TotalCents:         o.TotalCents,
		Currency:           o.Currency.String(),
		Status:             string(o.Status),
		PaymentMethod:      string(o.Payment.Method),
		PaymentStatus:      string(o.Payment.Status),
		PaymentAmountCents: o.Payment.AmountCents,
		TransactionId:      o.Payment.TransactionID,
		DeliveryType:       string(o.Delivery.Type),
		EstimatedTime:      o.Delivery.EstimatedTime,
		CustomerName:       o.Customer.Name,
		CustomerEmail:      o.Customer.Email,
		CustomerPhone:      o.Customer.Phone,
		CustomerAddress:    o.Customer.Address,
		CustomerPostalCode: o.Customer.PostalCode,
		CustomerCity:       o.Customer.City,
		CustomerNotes:      o.Customer.Notes,
		Language:           o.Language,
		EstimatedReadyTime: o.EstimatedReadyTime,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	if o.Payment.PaidAt != nil {
		dal.PaidAt = pgtype.Timestamptz{Time: *o.Payment.PaidAt, Valid: true}
	}
	if o.AssignedDriver != nil {
		dal.AssignedDriver = pgtype.Text{String: *o.AssignedDriver, Valid: true}
	}

	return dal
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts the order row. Items and notes are stored separately.
func (r *PostgresOrderRepository) Create(ctx context.Context, o order.Order) error {
	dal := OrderDalFromModel(o)

	sql, args, err := r.sb.Insert("orders").
		Columns(orderColumns...).
		Values(
			dal.Id,
			dal.SubtotalCents,
			dal.DeliveryFeeCents,
			dal.TotalCents,
			dal.Currency,
			dal.Status,
			dal.PaymentMethod,
			dal.PaymentStatus,
			dal.PaymentAmountCents,
			dal.PaidAt,
			dal.TransactionId,
			dal.DeliveryType,
			dal.EstimatedTime,
			dal.CustomerName,
			dal.CustomerEmail,
			dal.CustomerPhone,
			dal.CustomerAddress,
			dal.CustomerPostalCode,
			dal.CustomerCity,
			dal.CustomerNotes,
			dal.Language,
			dal.AssignedDriver,
			dal.EstimatedReadyTime,
			dal.CreatedAt,
			dal.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return order.ErrDuplicateOrderID
		}

		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

func (r *PostgresOrderRepository) get(ctx context.Context, id string, lock bool) (order.Order, error) {
	query := r.sb.Select(orderColumns...).From("orders").Where(sq.Eq{"id": id})
	if lock {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build query: %w", err)
	}

	var dal OrderDal
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(dal.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, order.ErrOrderNotFound
		}

		return order.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	return dal.ToModel()
}

func (r *PostgresOrderRepository) Get(ctx context.Context, id string) (order.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate locks the order row until the transaction ends.
func (r *PostgresOrderRepository) GetForUpdate(ctx context.Context, id string) (order.Order, error) {
	return r.get(ctx, id, true)
}

// Update writes the mutable fields of the order.
func (r *PostgresOrderRepository) Update(ctx context.Context, o order.Order) error {
	dal := OrderDalFromModel(o)

	sql, args, err := r.sb.Update("orders").
		Set("status", dal.Status).
		Set("payment_status", dal.PaymentStatus).
		Set("paid_at", dal.PaidAt).
		Set("transaction_id", dal.TransactionId).
		Set("assigned_driver", dal.AssignedDriver).
		Set("updated_at", dal.UpdatedAt).
		Where(sq.Eq{"id": dal.Id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}

// Query retrieves orders based on filter criteria, newest first.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	query := r.sb.Select(orderColumns...).From("orders")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.Statuses) > 0 {
		query = query.Where(sq.Eq{"status": statusStrings(filter.Statuses)})
	}
	if len(filter.ExcludeStatuses) > 0 {
		query = query.Where(sq.NotEq{"status": statusStrings(filter.ExcludeStatuses)})
	}
	if len(filter.AssignedDriverIds) > 0 {
		query = query.Where(sq.Eq{"assigned_driver": filter.AssignedDriverIds})
	}
	if filter.OnlySettled {
		query = query.Where(sq.Or{
			sq.Eq{"payment_status": string(order.PaymentStatusPaid)},
			sq.Eq{"payment_method": string(order.PaymentMethodCash)},
		})
	}

	query = query.OrderBy("created_at DESC", "id DESC")

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		if err := rows.Scan(dal.scanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// AddStaffNote appends a note to the order.
func (r *PostgresOrderRepository) AddStaffNote(ctx context.Context, orderID string, note order.StaffNote) error {
	sql, args, err := r.sb.Insert("staff_notes").
		Columns("id", "order_id", "text", "author", "created_at").
		Values(note.ID, orderID, note.Text, note.Author, note.Timestamp).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to insert staff note: %w", err)
	}

	return nil
}

// StaffNotes returns the notes of the given orders, oldest first.
func (r *PostgresOrderRepository) StaffNotes(
	ctx context.Context,
	orderIDs []string,
) (map[string][]order.StaffNote, error) {
	result := make(map[string][]order.StaffNote, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.Select("id", "order_id", "text", "author", "created_at").
		From("staff_notes").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			note    order.StaffNote
			orderID string
		)
		if err := rows.Scan(&note.ID, &orderID, &note.Text, &note.Author, &note.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan staff note: %w", err)
		}
		result[orderID] = append(result[orderID], note)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func statusStrings(statuses []order.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}

	return out
}
