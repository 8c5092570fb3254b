package persist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MhasnainGIT/e-commerce/internal/store"
	"github.com/MhasnainGIT/e-commerce/pkg/bootstrap"
)

func testStores(t *testing.T) map[string]CartStore {
	t.Helper()
	db, err := bootstrap.NewBadgerDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return map[string]CartStore{
		"badger": NewBadgerStore(db),
		"memory": NewMemoryStore(),
	}
}

func Test_CartStore_LoadAbsentSlot(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			// when
			lines, err := s.Load(context.Background())
			// then: absent slot is an empty cart, not an error
			require.NoError(t, err)
			assert.Empty(t, lines)
		})
	}
}

func Test_CartStore_RoundTrip(t *testing.T) {
	cart := []store.CartLine{
		{ProductID: "p1", Title: "Toy", Price: 9.99, InStock: 5, Quantity: 2},
		{ProductID: "p2", Title: "Book", Price: 15, InStock: 3, Quantity: 1},
	}

	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			// when
			require.NoError(t, s.Save(context.Background(), cart))
			loaded, err := s.Load(context.Background())
			// then: order and quantities survive
			require.NoError(t, err)
			assert.Equal(t, cart, loaded)
		})
	}
}

func Test_CartStore_LastWriterWins(t *testing.T) {
	first := []store.CartLine{{ProductID: "p1", Quantity: 1, InStock: 5}}
	second := []store.CartLine{{ProductID: "p2", Quantity: 3, InStock: 4}}

	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			// when
			require.NoError(t, s.Save(context.Background(), first))
			require.NoError(t, s.Save(context.Background(), second))
			loaded, err := s.Load(context.Background())
			// then
			require.NoError(t, err)
			assert.Equal(t, second, loaded)
		})
	}
}

func Test_CartStore_SaveEmptyClearsSlot(t *testing.T) {
	cart := []store.CartLine{{ProductID: "p1", Quantity: 1, InStock: 5}}

	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			// given
			require.NoError(t, s.Save(context.Background(), cart))
			// when: the cart is cleared after checkout
			require.NoError(t, s.Save(context.Background(), []store.CartLine{}))
			loaded, err := s.Load(context.Background())
			// then
			require.NoError(t, err)
			assert.Empty(t, loaded)
		})
	}
}
