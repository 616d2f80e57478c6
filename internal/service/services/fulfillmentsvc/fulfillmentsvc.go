package fulfillmentsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/idriverrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/iuow"
	"github.com/corray333/backend-labs/storefront/internal/service/models/driver"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/validation"
	"go.opentelemetry.io/otel"
)

const (
	driverIDPrefix = "DRV-"
	idAttempts     = 5
)

var ErrInvalidDriver = errors.New("driver needs a name and a valid phone")

type orderReader interface {
	GetOrder(ctx context.Context, id string) (order.Order, error)
}

// FulfillmentService manages drivers and their assignment to orders.
type FulfillmentService struct {
	newUOW iuow.Factory
	orders orderReader
	now    func() time.Time
}

// option is a function that configures the FulfillmentService.
type option func(*FulfillmentService)

// MustNewFulfillmentService creates a new FulfillmentService.
func MustNewFulfillmentService(opts ...option) *FulfillmentService {
	s := &FulfillmentService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.newUOW == nil || s.orders == nil {
		panic("fulfillmentsvc: unit of work and order reader are required")
	}

	return s
}

// WithUnitOfWork sets the unit of work factory for the FulfillmentService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWork(factory iuow.Factory) option {
	return func(s *FulfillmentService) {
		s.newUOW = factory
	}
}

// WithOrderReader sets where assigned orders are read back from.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderReader(r orderReader) option {
	return func(s *FulfillmentService) {
		s.orders = r
	}
}

// WithClock replaces time.Now.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *FulfillmentService) {
		s.now = now
	}
}

// AssignDriver assigns driverID to the order, or unassigns it when driverID
// is nil. The previous driver is released and the new one marked busy in the
// same unit of work as the order update.
func (s *FulfillmentService) AssignDriver(
	ctx context.Context,
	orderID string,
	driverID *string,
) (order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.AssignDriver")
	defer span.End()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer func() {
		if err := work.Rollback(ctx); err != nil {
			slog.Error("Failed to rollback driver assignment", "order_id", orderID, "error", err)
		}
	}()

	o, err := work.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return order.Order{}, err
	}

	previous := o.DriverID()
	next := ""
	if driverID != nil {
		next = *driverID
	}
	if previous == next {
		return s.orders.GetOrder(ctx, orderID)
	}

	now := s.now()
	drivers := work.DriverRepository()

	// Lock drivers in id order so concurrent reassignments cannot deadlock.
	ids := slices.DeleteFunc([]string{previous, next}, func(id string) bool { return id == "" })
	slices.Sort(ids)
	locked := make(map[string]driver.Driver, len(ids))
	for _, id := range ids {
		d, err := drivers.GetForUpdate(ctx, id)
		if errors.Is(err, driver.ErrDriverNotFound) && id == previous {
			// The previous driver was removed; nothing to release.
			continue
		}
		if err != nil {
			return order.Order{}, err
		}
		locked[id] = d
	}

	if next != "" && locked[next].Status == driver.StatusOffline {
		return order.Order{}, fmt.Errorf("%w: %s", driver.ErrDriverOffline, next)
	}

	if d, ok := locked[previous]; ok {
		d.Release()
		d.UpdatedAt = now
		if err := drivers.Update(ctx, d); err != nil {
			return order.Order{}, err
		}
	}
	if d, ok := locked[next]; ok {
		d.Assign()
		d.UpdatedAt = now
		if err := drivers.Update(ctx, d); err != nil {
			return order.Order{}, err
		}
	}

	o.AssignedDriver = nil
	if next != "" {
		o.AssignedDriver = &next
	}
	o.Touch(now)
	if err := work.OrderRepository().Update(ctx, o); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	slog.Info("Driver assignment changed", "order_id", orderID, "from", previous, "to", next)

	return s.orders.GetOrder(ctx, orderID)
}

// AddDriver registers an available driver with a generated id.
func (s *FulfillmentService) AddDriver(ctx context.Context, name, phone string) (driver.Driver, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.AddDriver")
	defer span.End()

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if validation.ValidateName(name) != nil || (phone != "" && validation.ValidatePhone(phone) != nil) {
		return driver.Driver{}, ErrInvalidDriver
	}

	now := s.now()
	d := driver.Driver{
		Name:      name,
		Phone:     phone,
		Status:    driver.StatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var err error
	for attempt := 1; attempt <= idAttempts; attempt++ {
		d.ID, err = s.createDriver(ctx, d)
		if !errors.Is(err, driver.ErrDuplicateDriver) {
			break
		}
	}
	if err != nil {
		return driver.Driver{}, fmt.Errorf("failed to add driver: %w", err)
	}

	return d, nil
}

// createDriver picks the next id and inserts d under it in one unit of work.
func (s *FulfillmentService) createDriver(ctx context.Context, d driver.Driver) (string, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return "", err
	}
	defer func() {
		if err := work.Rollback(ctx); err != nil {
			slog.Error("Failed to rollback driver creation", "error", err)
		}
	}()

	drivers := work.DriverRepository()
	id, err := nextDriverID(ctx, drivers)
	if err != nil {
		return "", err
	}
	d.ID = id
	if err := drivers.Create(ctx, d); err != nil {
		return "", err
	}

	return id, work.Commit(ctx)
}

func nextDriverID(ctx context.Context, drivers idriverrepo.IDriverRepository) (string, error) {
	all, err := drivers.List(ctx, &driver.QueryDriversModel{IncludeOffline: true})
	if err != nil {
		return "", fmt.Errorf("failed to list drivers: %w", err)
	}

	highest := 0
	for _, d := range all {
		n, err := strconv.Atoi(strings.TrimPrefix(d.ID, driverIDPrefix))
		if err == nil && n > highest {
			highest = n
		}
	}

	return fmt.Sprintf("%s%03d", driverIDPrefix, highest+1), nil
}

// RemoveDriver deletes the driver and unassigns it from its orders.
func (s *FulfillmentService) RemoveDriver(ctx context.Context, id string) error {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.RemoveDriver")
	defer span.End()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if err := work.Rollback(ctx); err != nil {
			slog.Error("Failed to rollback driver removal", "driver_id", id, "error", err)
		}
	}()

	if _, err := work.DriverRepository().GetForUpdate(ctx, id); err != nil {
		return err
	}

	assigned, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{AssignedDriverIds: []string{id}})
	if err != nil {
		return err
	}
	now := s.now()
	for _, o := range assigned {
		o, err := work.OrderRepository().GetForUpdate(ctx, o.ID)
		if err != nil {
			return err
		}
		o.AssignedDriver = nil
		o.Touch(now)
		if err := work.OrderRepository().Update(ctx, o); err != nil {
			return err
		}
	}

	if err := work.DriverRepository().Delete(ctx, id); err != nil {
		return err
	}

	return work.Commit(ctx)
}

// ListDrivers returns drivers ordered by id. Offline drivers are only
// included when asked for.
func (s *FulfillmentService) ListDrivers(ctx context.Context, includeOffline bool) ([]driver.Driver, error) {
	drivers, err := s.newUOW().DriverRepository().List(ctx, &driver.QueryDriversModel{IncludeOffline: includeOffline})
	if err != nil {
		return nil, err
	}
	if drivers == nil {
		drivers = []driver.Driver{}
	}

	return drivers, nil
}

// UpdateDriverStatus sets the status without touching the delivery count.
func (s *FulfillmentService) UpdateDriverStatus(
	ctx context.Context,
	id string,
	status driver.Status,
) (driver.Driver, error) {
	return s.mutateDriver(ctx, id, func(d *driver.Driver) error {
		d.Status = status

		return nil
	})
}

// SetActiveDeliveries overrides the delivery count.
func (s *FulfillmentService) SetActiveDeliveries(ctx context.Context, id string, n int) (driver.Driver, error) {
	return s.mutateDriver(ctx, id, func(d *driver.Driver) error {
		if n < 0 {
			return driver.ErrNegativeDeliveries
		}
		d.ActiveDeliveries = n

		return nil
	})
}

func (s *FulfillmentService) mutateDriver(
	ctx context.Context,
	id string,
	fn func(d *driver.Driver) error,
) (driver.Driver, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return driver.Driver{}, err
	}
	defer func() {
		if err := work.Rollback(ctx); err != nil {
			slog.Error("Failed to rollback driver update", "driver_id", id, "error", err)
		}
	}()

	d, err := work.DriverRepository().GetForUpdate(ctx, id)
	if err != nil {
		return driver.Driver{}, err
	}
	if err := fn(&d); err != nil {
		return driver.Driver{}, err
	}
	d.UpdatedAt = s.now()

	if err := work.DriverRepository().Update(ctx, d); err != nil {
		return driver.Driver{}, err
	}
	if err := work.Commit(ctx); err != nil {
		return driver.Driver{}, err
	}

	return d, nil
}
