// Package persist implements the durable cart slot: one key holding the
// JSON-serialized cart array, read at store initialization and written on
// every committed cart change. Last writer wins; there are no transactional
// semantics across processes.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/MhasnainGIT/e-commerce/internal/store"
)

// cartKey is the single persistence slot for the cart array.
var cartKey = []byte("storefront/cart")

// CartStore abstracts the durable cart slot, allowing an embedded database
// in production and an in-memory slot in tests.
type CartStore interface {
	// Load reads the persisted cart. An absent slot yields an empty cart,
	// not an error.
	Load(ctx context.Context) ([]store.CartLine, error)

	// Save replaces the persisted cart wholesale.
	Save(ctx context.Context, lines []store.CartLine) error
}

// BadgerStore persists the cart in an embedded Badger database.
type BadgerStore struct {
	db *badger.DB
}

var _ CartStore = (*BadgerStore)(nil)

// NewBadgerStore creates a cart store over an open Badger database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Load reads and decodes the persisted cart array.
func (s *BadgerStore) Load(_ context.Context) ([]store.CartLine, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cartKey)
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read persisted cart: %w", err)
	}

	var lines []store.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode persisted cart: %w", err)
	}
	return lines, nil
}

// Save encodes and writes the cart array.
func (s *BadgerStore) Save(_ context.Context, lines []store.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(cartKey, raw)
	})
	if err != nil {
		return fmt.Errorf("failed to write persisted cart: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory cart slot for tests and storage-less runs.
type MemoryStore struct {
	mu  sync.RWMutex
	raw []byte
}

var _ CartStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory cart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load decodes the held cart array, empty when nothing was saved.
func (s *MemoryStore) Load(_ context.Context) ([]store.CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.raw == nil {
		return nil, nil
	}
	var lines []store.CartLine
	if err := json.Unmarshal(s.raw, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode persisted cart: %w", err)
	}
	return lines, nil
}

// Save replaces the held cart array.
func (s *MemoryStore) Save(_ context.Context, lines []store.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	s.mu.Lock()
	s.raw = raw
	s.mu.Unlock()
	return nil
}
