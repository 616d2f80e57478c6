package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/iuow"
	"github.com/corray333/backend-labs/storefront/internal/service/models/cart"
	"github.com/corray333/backend-labs/storefront/internal/service/models/currency"
	"github.com/corray333/backend-labs/storefront/internal/service/models/menuitem"
	"github.com/corray333/backend-labs/storefront/internal/service/models/notification"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/storefront/internal/service/models/settings"
	"github.com/corray333/backend-labs/storefront/internal/service/pricing"
	"github.com/corray333/backend-labs/storefront/internal/service/services/menusvc"
	"go.opentelemetry.io/otel"
)

const idAttempts = 5

var ErrEmptyOrder = errors.New("order has no orderable items")

type catalog interface {
	Catalog(ctx context.Context) (map[string]menuitem.MenuItem, error)
}

type settingsProvider interface {
	GetSettings(ctx context.Context) (settings.Settings, error)
}

type notifier interface {
	SendOrderConfirmation(ctx context.Context, msg notification.OrderConfirmation) error
}

// OrderService is a service for managing orders.
type OrderService struct {
	newUOW            iuow.Factory
	catalog           catalog
	settings          settingsProvider
	notifier          notifier
	strictTransitions bool
	notifyTimeout     time.Duration
	now               func() time.Time
	newID             func(now time.Time) string

	notifications sync.WaitGroup
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		strictTransitions: true,
		notifyTimeout:     10 * time.Second,
		now:               time.Now,
		newID:             NewOrderID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.newUOW == nil || s.catalog == nil || s.settings == nil {
		panic("ordersvc: unit of work, catalog and settings are required")
	}

	return s
}

// WithUnitOfWork sets the unit of work factory for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWork(factory iuow.Factory) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// WithCatalog sets the menu catalog prices are snapshotted from.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalog(c catalog) option {
	return func(s *OrderService) {
		s.catalog = c
	}
}

// WithSettings sets the restaurant settings provider.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSettings(p settingsProvider) option {
	return func(s *OrderService) {
		s.settings = p
	}
}

// WithNotifier sets the order confirmation dispatcher.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(n notifier) option {
	return func(s *OrderService) {
		s.notifier = n
	}
}

// WithStrictTransitions toggles the forward-only status graph.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStrictTransitions(strict bool) option {
	return func(s *OrderService) {
		s.strictTransitions = strict
	}
}

// WithNotifyTimeout bounds a single confirmation dispatch.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifyTimeout(d time.Duration) option {
	return func(s *OrderService) {
		if d > 0 {
			s.notifyTimeout = d
		}
	}
}

// WithClock replaces time.Now.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *OrderService) {
		s.now = now
	}
}

// CreateOrderParams describes an order whose payment outcome is known.
type CreateOrderParams struct {
	Lines         []cart.Line
	Customer      order.CustomerInfo
	DeliveryType  order.DeliveryType
	PaymentMethod order.PaymentMethod
	PaymentStatus order.PaymentStatus
	TransactionID string
	Language      string
	// Catalog and Settings pin the snapshot the payment was computed from.
	// When nil they are read fresh.
	Catalog  map[string]menuitem.MenuItem
	Settings *settings.Settings
}

// CreateOrder snapshots prices and names from the catalog, stores the order
// with its lines and fires the confirmation without waiting for it.
func (s *OrderService) CreateOrder(ctx context.Context, params CreateOrderParams) (order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.CreateOrder")
	defer span.End()

	items := params.Catalog
	if items == nil {
		var err error
		if items, err = s.catalog.Catalog(ctx); err != nil {
			return order.Order{}, fmt.Errorf("failed to read catalog: %w", err)
		}
	}
	st := params.Settings
	if st == nil {
		current, err := s.settings.GetSettings(ctx)
		if err != nil {
			return order.Order{}, fmt.Errorf("failed to read settings: %w", err)
		}
		st = &current
	}

	o, err := s.buildOrder(params, items, *st)
	if err != nil {
		return order.Order{}, err
	}

	for attempt := 1; ; attempt++ {
		err = s.insert(ctx, &o)
		if !errors.Is(err, order.ErrDuplicateOrderID) || attempt == idAttempts {
			break
		}
		slog.Warn("Order id collision, regenerating", "order_id", o.ID, "attempt", attempt)
		o.ID = s.newID(s.now())
		for i := range o.Items {
			o.Items[i].OrderID = o.ID
		}
	}
	if err != nil {
		return order.Order{}, err
	}

	slog.Info("Order created",
		"order_id", o.ID,
		"total_cents", o.TotalCents,
		"payment_method", o.Payment.Method,
		"payment_status", o.Payment.Status,
	)
	s.notify(ctx, o)

	return o, nil
}

func (s *OrderService) buildOrder(
	params CreateOrderParams,
	items map[string]menuitem.MenuItem,
	st settings.Settings,
) (order.Order, error) {
	language := params.Language
	if language == "" {
		language = menuitem.DefaultLanguage
	}

	totals := pricing.ComputeTotals(
		params.Lines,
		menusvc.LookupFromCatalog(items),
		params.DeliveryType,
		pricing.ConfigFromSettings(st),
	)
	if len(totals.Lines) == 0 {
		return order.Order{}, ErrEmptyOrder
	}

	now := s.now()
	minutes := st.EstimatedDeliveryMinutes
	if params.DeliveryType == order.DeliveryTypePickup {
		minutes = st.EstimatedPickupMinutes
	}

	o := order.Order{
		ID:               s.newID(now),
		Items:            make([]orderitem.OrderItem, 0, len(totals.Lines)),
		SubtotalCents:    totals.SubtotalCents,
		DeliveryFeeCents: totals.DeliveryFeeCents,
		TotalCents:       totals.TotalCents,
		Currency:         currency.CurrencyEUR,
		Status:           order.StatusPending,
		Payment: order.Payment{
			Method:        params.PaymentMethod,
			Status:        params.PaymentStatus,
			AmountCents:   totals.TotalCents,
			TransactionID: params.TransactionID,
		},
		Delivery: order.Delivery{
			Type:          params.DeliveryType,
			FeeCents:      totals.DeliveryFeeCents,
			EstimatedTime: fmt.Sprintf("%d min", minutes),
		},
		Customer:           params.Customer,
		Language:           language,
		CreatedAt:          now,
		UpdatedAt:          now,
		EstimatedReadyTime: now.Add(time.Duration(minutes) * time.Minute),
		StaffNotes:         []order.StaffNote{},
	}
	if o.Payment.Status == order.PaymentStatusPaid {
		paidAt := now
		o.Payment.PaidAt = &paidAt
	}
	for _, line := range totals.Lines {
		o.Items = append(o.Items, orderitem.OrderItem{
			OrderID:    o.ID,
			ItemID:     line.ItemID,
			Name:       items[line.ItemID].Name(language),
			PriceCents: line.UnitPriceCents,
			Quantity:   line.Quantity,
		})
	}

	return o, nil
}

func (s *OrderService) insert(ctx context.Context, o *order.Order) error {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if err := work.Rollback(ctx); err != nil {
			slog.Error("Failed to rollback order creation", "error", err)
		}
	}()

	if err := work.OrderRepository().Create(ctx, *o); err != nil {
		return err
	}

	stored, err := work.OrderItemRepository().BulkInsert(ctx, o.Items)
	if err != nil {
		return fmt.Errorf("failed to insert order items: %w", err)
	}

	if err := work.Commit(ctx); err != nil {
		return err
	}
	o.Items = stored

	return nil
}

// notify dispatches the confirmation in the background. Failures are only logged.
func (s *OrderService) notify(ctx context.Context, o order.Order) {
	if s.notifier == nil {
		return
	}

	msg := notification.FromOrder(o, o.Language)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)

	s.notifications.Add(1)
	go func() {
		defer s.notifications.Done()
		defer cancel()

		if err := s.notifier.SendOrderConfirmation(ctx, msg); err != nil {
			slog.Warn("Failed to send order confirmation", "order_id", msg.OrderID, "error", err)

			return
		}
		slog.Info("Order confirmation sent", "order_id", msg.OrderID)
	}()
}

// Drain waits for background confirmations to finish.
func (s *OrderService) Drain() {
	s.notifications.Wait()
}

// UpdateOrderStatus moves the order to status. Setting the current status
// again changes nothing.
func (s *OrderService) UpdateOrderStatus(
	ctx context.Context,
	id string,
	status order.Status,
) (order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.UpdateOrderStatus")
	defer span.End()

	err := s.mutate(ctx, id, func(o *order.Order) (bool, error) {
		if o.Status == status {
			return false, nil
		}
		if s.strictTransitions && !order.CanTransition(o.Status, status, o.Delivery.Type) {
			return false, fmt.Errorf("%w: %s -> %s", order.ErrIllegalTransition, o.Status, status)
		}
		o.Status = status

		return true, nil
	})
	if err != nil {
		return order.Order{}, err
	}

	return s.GetOrder(ctx, id)
}

// UpdatePaymentStatus sets the payment status. paidAt is stamped the first
// time the order becomes paid.
func (s *OrderService) UpdatePaymentStatus(
	ctx context.Context,
	id string,
	status order.PaymentStatus,
) (order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.UpdatePaymentStatus")
	defer span.End()

	err := s.mutate(ctx, id, func(o *order.Order) (bool, error) {
		if o.Payment.Status == status {
			return false, nil
		}
		o.Payment.Status = status
		if status == order.PaymentStatusPaid && o.Payment.PaidAt == nil {
			paidAt := s.now()
			o.Payment.PaidAt = &paidAt
		}

		return true, nil
	})
	if err != nil {
		return order.Order{}, err
	}

	return s.GetOrder(ctx, id)
}

// AddStaffNote appends a note to the order.
func (s *OrderService) AddStaffNote(
	ctx context.Context,
	id string,
	text string,
	author string,
) (order.StaffNote, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.AddStaffNote")
	defer span.End()

	note, err := order.NewStaffNote(text, author, s.now())
	if err != nil {
		return order.StaffNote{}, err
	}

	err = s.mutateWith(ctx, id, func(work iuow.IUnitOfWork, o *order.Order) (bool, error) {
		if err := work.OrderRepository().AddStaffNote(ctx, id, note); err != nil {
			return false, fmt.Errorf("failed to add staff note: %w", err)
		}

		return true, nil
	})
	if err != nil {
		return order.StaffNote{}, err
	}

	return note, nil
}

func (s *OrderService) mutate(ctx context.Context, id string, fn func(o *order.Order) (bool, error)) error {
	return s.mutateWith(ctx, id, func(_ iuow.IUnitOfWork, o *order.Order) (bool, error) {
		return fn(o)
	})
}

// mutateWith locks the order, applies fn and writes the order back when fn
// reports a change.
func (s *OrderService) mutateWith(
	ctx context.Context,
	id string,
	fn func(work iuow.IUnitOfWork, o *order.Order) (bool, error),
) error {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if err := work.Rollback(ctx); err != nil {
			slog.Error("Failed to rollback order update", "order_id", id, "error", err)
		}
	}()

	o, err := work.OrderRepository().GetForUpdate(ctx, id)
	if err != nil {
		return err
	}

	changed, err := fn(work, &o)
	if err != nil {
		return err
	}
	if changed {
		o.Touch(s.now())
		if err := work.OrderRepository().Update(ctx, o); err != nil {
			return err
		}
	}

	return work.Commit(ctx)
}

// GetOrder returns the order with its lines and staff notes.
func (s *OrderService) GetOrder(ctx context.Context, id string) (order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().Get(ctx, id)
	if err != nil {
		return order.Order{}, err
	}

	orders, err := s.hydrate(ctx, work, []order.Order{o})
	if err != nil {
		return order.Order{}, err
	}

	return orders[0], nil
}

// ListOrders returns orders matching filter, newest first.
func (s *OrderService) ListOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.ListOrders")
	defer span.End()

	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	return s.hydrate(ctx, work, orders)
}

// GetPaidOrders returns orders that are paid or paid in cash.
func (s *OrderService) GetPaidOrders(ctx context.Context) ([]order.Order, error) {
	return s.ListOrders(ctx, order.QueryOrdersModel{OnlySettled: true})
}

// GetActiveOrders returns settled orders still in fulfillment.
func (s *OrderService) GetActiveOrders(ctx context.Context) ([]order.Order, error) {
	return s.ListOrders(ctx, order.QueryOrdersModel{
		OnlySettled:     true,
		ExcludeStatuses: []order.Status{order.StatusCompleted, order.StatusCancelled},
	})
}

func (s *OrderService) hydrate(
	ctx context.Context,
	work iuow.IUnitOfWork,
	orders []order.Order,
) ([]order.Order, error) {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{OrderIds: ids})
	if err != nil {
		return nil, err
	}
	notes, err := work.OrderRepository().StaffNotes(ctx, ids)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[string][]orderitem.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
		orders[i].StaffNotes = notes[orders[i].ID]
		if orders[i].StaffNotes == nil {
			orders[i].StaffNotes = []order.StaffNote{}
		}
	}

	return orders, nil
}
