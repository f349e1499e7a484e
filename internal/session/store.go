// Package session keeps one cart per browsing session.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/jaideep-27/shophub/internal/cart"
)

var ErrSessionNotFound = errors.New("session not found")

// Store owns an independent cart for every session id.
//
// Carts are not safe for concurrent use, so each session carries its own lock
// and every access goes through Do. Sessions idle for longer than the TTL are
// evicted by Sweep.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry

	policy cart.Policy
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

type entry struct {
	mu       sync.Mutex
	cart     *cart.Cart
	lastSeen time.Time
}

// Option customizes a Store
type Option func(*Store)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store. A zero ttl disables eviction.
func NewStore(policy cart.Policy, ttl time.Duration, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		sessions: make(map[string]*entry),
		policy:   policy,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a session with an empty cart and returns its id.
func (s *Store) Create() string {
	id := uuid.New().String()

	s.mu.Lock()
	s.sessions[id] = &entry{
		cart:     cart.New(s.policy),
		lastSeen: s.now(),
	}
	s.mu.Unlock()

	s.logger.Debug("session created", "session_id", id)
	return id
}

// Exists reports whether id names a live session
func (s *Store) Exists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[id]
	return ok
}

// Do runs fn with exclusive access to the session's cart and refreshes the
// session's idle timer. The error from fn is returned unchanged.
func (s *Store) Do(id string, fn func(*cart.Cart) error) error {
	s.mu.Lock()
	e, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastSeen = s.now()
	return fn(e.cart)
}

// Delete ends a session. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many went.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, e := range s.sessions {
		// an entry locked by Do is in use right now
		if !e.mu.TryLock() {
			continue
		}
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
		e.mu.Unlock()
	}

	if evicted > 0 {
		s.logger.Info("expired sessions evicted", "evicted", evicted, "remaining", len(s.sessions))
	}
	return evicted
}

// Run sweeps on every tick of interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return errors.Errorf("sweep interval must be positive: %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}
