package store

import (
	"context"
	"log/slog"
	"sync"
)

// CartWriter persists the committed cart. The store writes through it after
// every applied ADD_CART dispatch.
type CartWriter interface {
	Save(ctx context.Context, lines []CartLine) error
}

// Subscriber observes every committed state. The snapshot must be treated
// as read-only.
type Subscriber func(State)

// Store is the single process-wide state container. Dispatch is synchronous
// and applies actions in invocation order; it never suspends. The expected
// runtime is a single event-driven goroutine, but state access is still
// guarded so background completions cannot race snapshots.
type Store struct {
	mu      sync.Mutex
	state   State
	subs    []subscription
	nextSub uint64

	carts  CartWriter
	logger *slog.Logger
}

type subscription struct {
	id uint64
	fn Subscriber
}

// New creates a store with empty state. carts may be nil when the cart
// should not be persisted.
func New(carts CartWriter, logger *slog.Logger) *Store {
	return &Store{
		state:  State{},
		carts:  carts,
		logger: logger.With("component", "store"),
	}
}

// State returns the current state snapshot. The contained slices are shared
// with the store and must not be mutated by callers.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies the action and notifies subscribers with the resulting
// state. A committed ADD_CART is additionally written through the cart
// persistence slot; a write failure is logged, not surfaced, since the
// in-memory cart is already authoritative for the session.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = reduce(s.state, a)
	next := s.state
	subs := make([]Subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub.fn)
	}
	s.mu.Unlock()

	if a.Kind == ActionAddCart && s.carts != nil {
		if err := s.carts.Save(context.Background(), next.Cart); err != nil {
			s.logger.Warn("failed to persist cart", "error", err)
		}
	}

	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registers fn to run after every dispatch, in registration
// order. The returned function cancels the subscription.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
