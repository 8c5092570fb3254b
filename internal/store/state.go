// Package store owns the canonical in-memory application state and the
// transition function that advances it. All state changes flow through a
// single dispatch; consumers observe changes via subscriptions.
package store

import "time"

// User mirrors the backend user entity.
type User struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Root   bool   `json:"root"`
	Avatar string `json:"avatar"`
}

// AuthIdentity is the current session identity. The zero value means
// unauthenticated.
type AuthIdentity struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// LoggedIn reports whether a session identity is present.
func (a AuthIdentity) LoggedIn() bool {
	return a.Token != ""
}

// Image is a product illustration reference.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Product mirrors the backend product entity. Checked is client-only state
// used by the admin bulk-delete selection.
type Product struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Content     string  `json:"content"`
	Price       float64 `json:"price"`
	Images      []Image `json:"images"`
	Category    string  `json:"category"`
	InStock     int     `json:"inStock"`
	Sold        int     `json:"sold"`
	Checked     bool    `json:"checked"`
}

// Category mirrors the backend category entity.
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// CartLine is one locally-editable cart position.
// Invariant: no two lines share ProductID; Quantity stays within
// [1, InStock as of the last sync].
type CartLine struct {
	ProductID string  `json:"_id"`
	Title     string  `json:"title"`
	Images    []Image `json:"images"`
	Price     float64 `json:"price"`
	InStock   int     `json:"inStock"`
	Sold      int     `json:"sold"`
	Quantity  int     `json:"quantity"`
}

// Order mirrors the backend order entity.
type Order struct {
	ID        string     `json:"_id"`
	User      User       `json:"user"`
	Address   string     `json:"address"`
	Mobile    string     `json:"mobile"`
	Cart      []CartLine `json:"cart"`
	Total     float64    `json:"total"`
	Paid      bool       `json:"paid"`
	Delivered bool       `json:"delivered"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Notification is the single-slot user-facing status message. At most one
// field is set; every NOTIFY dispatch replaces the whole slot.
type Notification struct {
	Loading bool   `json:"loading,omitempty"`
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Empty reports whether no status message is active.
func (n Notification) Empty() bool {
	return !n.Loading && n.Success == "" && n.Error == ""
}

// ModalKind selects which deletion handler consumes a queued confirmation.
type ModalKind uint8

const (
	KindCartLine ModalKind = iota
	KindUser
	KindCategory
	KindProduct
)

// String returns the handler name for logs.
func (k ModalKind) String() string {
	switch k {
	case KindCartLine:
		return "cart_line"
	case KindUser:
		return "user"
	case KindCategory:
		return "category"
	case KindProduct:
		return "product"
	default:
		return "unknown"
	}
}

// ModalEntry is one pending destructive confirmation. ID names the target
// entity; the handler reads the authoritative slice from the store at
// processing time.
type ModalEntry struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Kind  ModalKind `json:"kind"`
}

// State is the full application state snapshot handed to subscribers.
// Slices an action does not target keep their identity across dispatches,
// so consumers can change-detect by reference.
type State struct {
	Auth       AuthIdentity
	Cart       []CartLine
	Categories []Category
	Products   []Product
	Orders     []Order
	Users      []User
	Notify     Notification
	Modal      []ModalEntry
}
