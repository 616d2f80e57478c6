package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/corray333/backend-labs/storefront/internal/service/models/driver"
	"github.com/corray333/backend-labs/storefront/internal/service/models/inbox"
	"github.com/corray333/backend-labs/storefront/internal/service/models/menuitem"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/storefront/internal/service/models/outbox"
	"github.com/corray333/backend-labs/storefront/internal/service/models/settings"
)

type sequences struct {
	OrderItem int64 `json:"orderItem"`
	Outbox    int64 `json:"outbox"`
	Inbox     int64 `json:"inbox"`
}

type collections struct {
	Orders     map[string]order.Order         `json:"orders"`
	OrderItems []orderItemRecord              `json:"orderItems"`
	StaffNotes map[string][]order.StaffNote   `json:"staffNotes"`
	Drivers    map[string]driver.Driver       `json:"drivers"`
	Menu       map[string]menuitem.MenuItem   `json:"menu"`
	Settings   *settings.Settings             `json:"settings,omitempty"`
	Outbox     map[int64]outbox.OutboxMessage `json:"outbox"`
	Inbox      map[int64]inbox.InboxMessage   `json:"inbox"`
	Seq        sequences                      `json:"seq"`
}

// orderItemRecord carries the keys orderitem.OrderItem hides from JSON.
type orderItemRecord struct {
	ID      int64               `json:"id"`
	OrderID string              `json:"orderId"`
	Item    orderitem.OrderItem `json:"item"`
}

func (r orderItemRecord) model() orderitem.OrderItem {
	item := r.Item
	item.ID = r.ID
	item.OrderID = r.OrderID

	return item
}

func newCollections() collections {
	return collections{
		Orders:     map[string]order.Order{},
		StaffNotes: map[string][]order.StaffNote{},
		Drivers:    map[string]driver.Driver{},
		Menu:       map[string]menuitem.MenuItem{},
		Outbox:     map[int64]outbox.OutboxMessage{},
		Inbox:      map[int64]inbox.InboxMessage{},
	}
}

// Store keeps every collection in process memory. When a file path is set,
// the collections are loaded from it at start and written back after every
// mutation.
type Store struct {
	// txMu serializes units of work.
	txMu sync.Mutex
	mu   sync.RWMutex
	data collections
	path string
}

type option func(*Store)

// NewStore creates an empty store.
func NewStore(opts ...option) *Store {
	s := &Store{data: newCollections()}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithFile persists the store as JSON at path.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithFile(path string) option {
	return func(s *Store) {
		s.path = path
	}
}

// MustNewStore creates a store and loads the persisted file if configured.
func MustNewStore(opts ...option) *Store {
	s := NewStore(opts...)
	if err := s.load(); err != nil {
		panic(err)
	}

	return s
}

func (s *Store) load() error {
	if s.path == "" {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read store file: %w", err)
	}

	loaded := newCollections()
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("failed to decode store file: %w", err)
	}
	s.data = loaded
	slog.Info("Memory store loaded", "path", s.path, "orders", len(loaded.Orders))

	return nil
}

// persist must be called with mu held.
func (s *Store) persist() {
	if s.path == "" {
		return
	}

	raw, err := json.Marshal(s.data)
	if err != nil {
		slog.Error("Failed to encode memory store", "error", err)

		return
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		slog.Error("Failed to create memory store directory", "error", err)

		return
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		slog.Error("Failed to write memory store", "error", err)

		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		slog.Error("Failed to replace memory store", "error", err)
	}
}

func (s *Store) read(fn func(d *collections) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(&s.data)
}

func (s *Store) write(fn func(d *collections) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(&s.data); err != nil {
		return err
	}
	s.persist()

	return nil
}

// snapshot copies the collections covered by units of work.
type snapshot struct {
	orders     map[string]order.Order
	orderItems []orderItemRecord
	staffNotes map[string][]order.StaffNote
	drivers    map[string]driver.Driver
	seq        int64
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make(map[string][]order.StaffNote, len(s.data.StaffNotes))
	for id, n := range s.data.StaffNotes {
		notes[id] = append([]order.StaffNote(nil), n...)
	}
	orders := make(map[string]order.Order, len(s.data.Orders))
	for id, o := range s.data.Orders {
		orders[id] = o.Clone()
	}

	return snapshot{
		orders:     orders,
		orderItems: append([]orderItemRecord(nil), s.data.OrderItems...),
		staffNotes: notes,
		drivers:    maps.Clone(s.data.Drivers),
		seq:        s.data.Seq.OrderItem,
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Orders = snap.orders
	s.data.OrderItems = snap.orderItems
	s.data.StaffNotes = snap.staffNotes
	s.data.Drivers = snap.drivers
	s.data.Seq.OrderItem = snap.seq
	s.persist()
}
