package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCartWriter records every cart write-through.
type mockCartWriter struct {
	saved [][]CartLine
	err   error
}

func (m *mockCartWriter) Save(_ context.Context, lines []CartLine) error {
	m.saved = append(m.saved, lines)
	return m.err
}

func newTestStore(carts CartWriter) *Store {
	return New(carts, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func Test_Dispatch_ReplacesTargetedSlice(t *testing.T) {
	products := []Product{{ID: "p1", Title: "Toy"}}
	categories := []Category{{ID: "c1", Name: "Toys"}}
	orders := []Order{{ID: "o1"}}
	users := []User{{ID: "u1", Name: "Ann"}}
	lines := []CartLine{{ProductID: "p1", Quantity: 1, InStock: 5}}
	modal := []ModalEntry{{ID: "p1", Kind: KindProduct}}
	identity := AuthIdentity{Token: "t", User: User{ID: "u1"}}

	testCases := []struct {
		name   string
		action Action
		check  func(t *testing.T, s State)
	}{
		{
			name:   "AUTH replaces identity",
			action: Auth(identity),
			check: func(t *testing.T, s State) {
				assert.Equal(t, identity, s.Auth)
			},
		},
		{
			name:   "ADD_CART replaces cart",
			action: AddCart(lines),
			check: func(t *testing.T, s State) {
				assert.Equal(t, lines, s.Cart)
			},
		},
		{
			name:   "ADD_CATEGORIES replaces categories",
			action: AddCategories(categories),
			check: func(t *testing.T, s State) {
				assert.Equal(t, categories, s.Categories)
			},
		},
		{
			name:   "ADD_PRODUCTS replaces products",
			action: AddProducts(products),
			check: func(t *testing.T, s State) {
				assert.Equal(t, products, s.Products)
			},
		},
		{
			name:   "ADD_ORDERS replaces orders",
			action: AddOrders(orders),
			check: func(t *testing.T, s State) {
				assert.Equal(t, orders, s.Orders)
			},
		},
		{
			name:   "ADD_USERS replaces users",
			action: AddUsers(users),
			check: func(t *testing.T, s State) {
				assert.Equal(t, users, s.Users)
			},
		},
		{
			name:   "NOTIFY replaces notification slot",
			action: NotifyError("boom"),
			check: func(t *testing.T, s State) {
				assert.Equal(t, Notification{Error: "boom"}, s.Notify)
			},
		},
		{
			name:   "ADD_MODAL replaces modal queue",
			action: AddModal(modal),
			check: func(t *testing.T, s State) {
				assert.Equal(t, modal, s.Modal)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			s := newTestStore(nil)
			// when
			s.Dispatch(tc.action)
			// then
			tc.check(t, s.State())
		})
	}
}

func Test_Dispatch_UntargetedSlicesKeepIdentity(t *testing.T) {
	// given: a store with a populated products slice
	s := newTestStore(nil)
	s.Dispatch(AddProducts([]Product{{ID: "p1"}}))
	before := s.State()
	// when: an action targeting a different slice
	s.Dispatch(AddCart([]CartLine{{ProductID: "p1", Quantity: 1}}))
	// then: the products slice is the same backing array, not a copy
	after := s.State()
	require.NotEmpty(t, after.Products)
	assert.Same(t, &before.Products[0], &after.Products[0])
}

func Test_Dispatch_NotificationFullyReplaced(t *testing.T) {
	// given
	s := newTestStore(nil)
	// when: loading followed by success
	s.Dispatch(NotifyLoading())
	s.Dispatch(NotifySuccess("saved"))
	// then: exactly the success message is visible, never both
	assert.Equal(t, Notification{Success: "saved"}, s.State().Notify)

	// when: an error clobbers the success
	s.Dispatch(NotifyError("boom"))
	// then
	assert.Equal(t, Notification{Error: "boom"}, s.State().Notify)
}

func Test_Dispatch_PersistsCartOnAddCart(t *testing.T) {
	// given
	writer := &mockCartWriter{}
	s := newTestStore(writer)
	lines := []CartLine{{ProductID: "p1", Quantity: 2, InStock: 5}}
	// when
	s.Dispatch(AddCart(lines))
	s.Dispatch(NotifySuccess("unrelated"))
	s.Dispatch(AddCart(nil))
	// then: only the two cart commits reached the slot
	require.Len(t, writer.saved, 2)
	assert.Equal(t, lines, writer.saved[0])
	assert.Empty(t, writer.saved[1])
}

func Test_Dispatch_PersistFailureDoesNotBlockState(t *testing.T) {
	// given
	writer := &mockCartWriter{err: assert.AnError}
	s := newTestStore(writer)
	lines := []CartLine{{ProductID: "p1", Quantity: 1, InStock: 5}}
	// when
	s.Dispatch(AddCart(lines))
	// then: the in-memory cart is authoritative regardless
	assert.Equal(t, lines, s.State().Cart)
}

func Test_Subscribe(t *testing.T) {
	// given
	s := newTestStore(nil)
	var firstSeen, secondSeen []Notification
	cancel := s.Subscribe(func(st State) { firstSeen = append(firstSeen, st.Notify) })
	s.Subscribe(func(st State) { secondSeen = append(secondSeen, st.Notify) })
	// when
	s.Dispatch(NotifyLoading())
	cancel()
	s.Dispatch(NotifySuccess("done"))
	// then: the cancelled subscriber missed the second dispatch
	require.Len(t, firstSeen, 1)
	assert.True(t, firstSeen[0].Loading)
	require.Len(t, secondSeen, 2)
	assert.Equal(t, "done", secondSeen[1].Success)
}

func Test_Reduce_UnknownActionPanics(t *testing.T) {
	assert.Panics(t, func() {
		reduce(State{}, Action{Kind: ActionKind(99)})
	})
}

func Test_Notification_Empty(t *testing.T) {
	assert.True(t, Notification{}.Empty())
	assert.False(t, Notification{Loading: true}.Empty())
	assert.False(t, Notification{Success: "ok"}.Empty())
	assert.False(t, Notification{Error: "boom"}.Empty())
}
