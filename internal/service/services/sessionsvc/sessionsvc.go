package sessionsvc

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/service/models/cart"
	"github.com/corray333/backend-labs/storefront/internal/service/models/checkout"
	"github.com/corray333/backend-labs/storefront/internal/service/models/menuitem"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

var ErrCartLocked = errors.New("cart cannot change while payment is processing")

// Session is one customer's cart and checkout.
type Session struct {
	ID string

	mu       sync.Mutex
	cart     *cart.Cart
	checkout checkout.State
	lastSeen time.Time
}

// Cart returns the session cart.
func (s *Session) Cart() *cart.Cart {
	return s.cart
}

// Do runs fn with the checkout state locked.
func (s *Session) Do(fn func(state *checkout.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(&s.checkout)
}

// Checkout returns a copy of the checkout state.
func (s *Session) Checkout() checkout.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.checkout
}

type catalog interface {
	Catalog(ctx context.Context) (map[string]menuitem.MenuItem, error)
}

// SessionService keeps customer sessions in memory and evicts idle ones.
type SessionService struct {
	mu       sync.Mutex
	sessions map[string]*Session
	catalog  catalog
	ttl      time.Duration
	now      func() time.Time
	stopCh   chan struct{}
}

// option is a function that configures the SessionService.
type option func(*SessionService)

// MustNewSessionService creates a new SessionService.
func MustNewSessionService(opts ...option) *SessionService {
	ttlMinutes := viper.GetInt("sessions.ttl_minutes")
	if ttlMinutes == 0 {
		ttlMinutes = 120
	}

	s := &SessionService{
		sessions: map[string]*Session{},
		ttl:      time.Duration(ttlMinutes) * time.Minute,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithCatalog rejects cart items the menu does not sell.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalog(c catalog) option {
	return func(s *SessionService) {
		s.catalog = c
	}
}

// WithClock replaces time.Now.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *SessionService) {
		s.now = now
	}
}

// Get returns the session for id. Unknown or empty ids get a fresh session.
func (s *SessionService) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sess, ok := s.sessions[id]; ok {
		sess.lastSeen = now

		return sess
	}

	if id == "" {
		id = uuid.NewString()
	}
	sess := &Session{
		ID:       id,
		cart:     cart.New(),
		checkout: checkout.New(),
		lastSeen: now,
	}
	s.sessions[id] = sess

	return sess
}

// AddToCart adds one unit of itemID.
func (s *SessionService) AddToCart(ctx context.Context, id, itemID string) (*Session, error) {
	if s.catalog != nil {
		items, err := s.catalog.Catalog(ctx)
		if err != nil {
			return nil, err
		}
		if _, ok := items[itemID]; !ok {
			return nil, menuitem.ErrMenuItemNotFound
		}
	}

	return s.editCart(id, func(c *cart.Cart) { c.Add(itemID) })
}

// UpdateQuantity changes the quantity of itemID by delta.
func (s *SessionService) UpdateQuantity(id, itemID string, delta int) (*Session, error) {
	return s.editCart(id, func(c *cart.Cart) { c.UpdateQuantity(itemID, delta) })
}

// RemoveFromCart drops itemID.
func (s *SessionService) RemoveFromCart(id, itemID string) (*Session, error) {
	return s.editCart(id, func(c *cart.Cart) { c.Remove(itemID) })
}

// ClearCart empties the cart.
func (s *SessionService) ClearCart(id string) (*Session, error) {
	return s.editCart(id, func(c *cart.Cart) { c.Clear() })
}

// editCart applies fn unless payment is processing. Editing the cart after an
// order was placed starts a new checkout.
func (s *SessionService) editCart(id string, fn func(c *cart.Cart)) (*Session, error) {
	sess := s.Get(id)
	err := sess.Do(func(state *checkout.State) error {
		switch state.Step {
		case checkout.StepProcessing:
			return ErrCartLocked
		case checkout.StepOrderCreated:
			*state = checkout.New()
		}
		fn(sess.cart)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sess, nil
}

// Start evicts idle sessions until ctx is done or Stop is called.
func (s *SessionService) Start(ctx context.Context) {
	ticker := time.NewTicker(max(s.ttl/4, time.Minute))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			if n := s.evict(); n > 0 {
				slog.Info("Evicted idle sessions", "count", n)
			}
		}
	}
}

// Stop stops the eviction loop.
func (s *SessionService) Stop() {
	close(s.stopCh)
}

func (s *SessionService) evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	n := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff) && sess.checkout.Step != checkout.StepProcessing
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			n++
		}
	}

	return n
}
