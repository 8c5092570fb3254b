package store

import "fmt"

// ActionKind enumerates the closed set of state transitions.
type ActionKind uint8

const (
	ActionAuth ActionKind = iota
	ActionAddCart
	ActionAddCategories
	ActionAddProducts
	ActionAddOrders
	ActionAddUsers
	ActionNotify
	ActionAddModal
)

// String returns the wire-style name of the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionAuth:
		return "AUTH"
	case ActionAddCart:
		return "ADD_CART"
	case ActionAddCategories:
		return "ADD_CATEGORIES"
	case ActionAddProducts:
		return "ADD_PRODUCTS"
	case ActionAddOrders:
		return "ADD_ORDERS"
	case ActionAddUsers:
		return "ADD_USERS"
	case ActionNotify:
		return "NOTIFY"
	case ActionAddModal:
		return "ADD_MODAL"
	default:
		return fmt.Sprintf("ActionKind(%d)", k)
	}
}

// Action is a tagged request to transition the store. Build one with the
// constructor matching its kind; only the payload field for that kind is
// meaningful.
type Action struct {
	Kind ActionKind

	auth       AuthIdentity
	cart       []CartLine
	categories []Category
	products   []Product
	orders     []Order
	users      []User
	notify     Notification
	modal      []ModalEntry
}

// Auth builds an action replacing the session identity.
func Auth(identity AuthIdentity) Action {
	return Action{Kind: ActionAuth, auth: identity}
}

// AddCart builds an action replacing the cart wholesale.
func AddCart(lines []CartLine) Action {
	return Action{Kind: ActionAddCart, cart: lines}
}

// AddCategories builds an action replacing the categories snapshot.
func AddCategories(categories []Category) Action {
	return Action{Kind: ActionAddCategories, categories: categories}
}

// AddProducts builds an action replacing the products snapshot.
func AddProducts(products []Product) Action {
	return Action{Kind: ActionAddProducts, products: products}
}

// AddOrders builds an action replacing the orders snapshot.
func AddOrders(orders []Order) Action {
	return Action{Kind: ActionAddOrders, orders: orders}
}

// AddUsers builds an action replacing the users snapshot.
func AddUsers(users []User) Action {
	return Action{Kind: ActionAddUsers, users: users}
}

// Notify builds an action replacing the notification slot. Pass the zero
// Notification to clear it.
func Notify(n Notification) Action {
	return Action{Kind: ActionNotify, notify: n}
}

// NotifyLoading, NotifySuccess and NotifyError are shorthands for the three
// non-empty notification shapes.
func NotifyLoading() Action {
	return Notify(Notification{Loading: true})
}

func NotifySuccess(msg string) Action {
	return Notify(Notification{Success: msg})
}

func NotifyError(msg string) Action {
	return Notify(Notification{Error: msg})
}

// AddModal builds an action replacing the confirmation queue wholesale.
// Opening a new confirmation discards any unconfirmed one.
func AddModal(entries []ModalEntry) Action {
	return Action{Kind: ActionAddModal, modal: entries}
}

// reduce applies an action to a state and returns the next state. It is
// total over the action union: each kind replaces exactly its slice and
// leaves the rest untouched. An unknown kind is a programming error.
func reduce(s State, a Action) State {
	switch a.Kind {
	case ActionAuth:
		s.Auth = a.auth
	case ActionAddCart:
		s.Cart = a.cart
	case ActionAddCategories:
		s.Categories = a.categories
	case ActionAddProducts:
		s.Products = a.products
	case ActionAddOrders:
		s.Orders = a.orders
	case ActionAddUsers:
		s.Users = a.users
	case ActionNotify:
		s.Notify = a.notify
	case ActionAddModal:
		s.Modal = a.modal
	default:
		panic(fmt.Sprintf("store: unknown action kind %d", a.Kind))
	}
	return s
}
