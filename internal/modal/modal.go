// Package modal processes the queue of pending destructive confirmations.
// On accept, every queued entry is handled in queue order by the handler
// matching its kind; the queue is then cleared unconditionally.
package modal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MhasnainGIT/e-commerce/internal/cart"
	"github.com/MhasnainGIT/e-commerce/internal/gateway"
	"github.com/MhasnainGIT/e-commerce/internal/store"
)

// Gateway is the slice of the API client the deletion handlers need.
type Gateway interface {
	DeleteUser(ctx context.Context, id, token string) (*gateway.MsgResponse, error)
	DeleteCategory(ctx context.Context, id, token string) (*gateway.MsgResponse, error)
	DeleteProduct(ctx context.Context, id, token string) (*gateway.MsgResponse, error)
}

// Navigator receives navigation intents for the external router.
type Navigator interface {
	Push(path string)
}

// Processor consumes the confirmation queue.
type Processor struct {
	store  *store.Store
	gw     Gateway
	nav    Navigator
	logger *slog.Logger
}

// NewProcessor creates the modal queue processor.
func NewProcessor(st *store.Store, gw Gateway, nav Navigator, logger *slog.Logger) *Processor {
	return &Processor{
		store:  st,
		gw:     gw,
		nav:    nav,
		logger: logger.With("component", "modal"),
	}
}

// RequestDelete opens a confirmation for the given entries, replacing any
// unconfirmed queue wholesale.
func (p *Processor) RequestDelete(entries ...store.ModalEntry) {
	p.store.Dispatch(store.AddModal(entries))
}

// Cancel discards the pending queue without processing it.
func (p *Processor) Cancel() {
	p.store.Dispatch(store.AddModal(nil))
}

// Confirm processes the entire queue in order. Remote failures raise error
// notifications and leave the targeted slice unchanged, but do not stop the
// remaining entries. The queue is cleared once after the loop; clearing it
// per entry would be observably identical.
func (p *Processor) Confirm(ctx context.Context) {
	queue := p.store.State().Modal
	if len(queue) == 0 {
		return
	}

	for _, entry := range queue {
		switch entry.Kind {
		case store.KindCartLine:
			p.removeCartLine(entry)
		case store.KindUser:
			p.deleteUser(ctx, entry)
		case store.KindCategory:
			p.deleteCategory(ctx, entry)
		case store.KindProduct:
			p.deleteProduct(ctx, entry)
		default:
			panic(fmt.Sprintf("modal: unknown entry kind %d", entry.Kind))
		}
	}

	p.store.Dispatch(store.AddModal(nil))
}

// removeCartLine is the purely local kind: no remote resource backs a cart
// line.
func (p *Processor) removeCartLine(entry store.ModalEntry) {
	snapshot := p.store.State()
	p.store.Dispatch(store.AddCart(cart.Delete(snapshot.Cart, entry.ID)))
}

// deleteUser removes the user locally first and then issues the remote
// delete, reporting the remote outcome through the notification slot.
func (p *Processor) deleteUser(ctx context.Context, entry store.ModalEntry) {
	snapshot := p.store.State()

	users := make([]store.User, 0, len(snapshot.Users))
	for _, u := range snapshot.Users {
		if u.ID != entry.ID {
			users = append(users, u)
		}
	}
	p.store.Dispatch(store.AddUsers(users))

	resp, err := p.gw.DeleteUser(ctx, entry.ID, snapshot.Auth.Token)
	if err != nil {
		p.logger.Error("user delete request failed", "user_id", entry.ID, "error", err)
		p.store.Dispatch(store.NotifyError("Failed to delete user. Please try again."))
		return
	}
	if resp.Err != "" {
		p.store.Dispatch(store.NotifyError(resp.Err))
		return
	}
	p.store.Dispatch(store.NotifySuccess(resp.Msg))
}

// deleteCategory issues the remote delete first and only removes the
// category from state once the backend confirmed it.
func (p *Processor) deleteCategory(ctx context.Context, entry store.ModalEntry) {
	snapshot := p.store.State()

	resp, err := p.gw.DeleteCategory(ctx, entry.ID, snapshot.Auth.Token)
	if err != nil {
		p.logger.Error("category delete request failed", "category_id", entry.ID, "error", err)
		p.store.Dispatch(store.NotifyError("Failed to delete category. Please try again."))
		return
	}
	if resp.Err != "" {
		p.store.Dispatch(store.NotifyError(resp.Err))
		return
	}

	categories := make([]store.Category, 0, len(snapshot.Categories))
	for _, c := range snapshot.Categories {
		if c.ID != entry.ID {
			categories = append(categories, c)
		}
	}
	p.store.Dispatch(store.AddCategories(categories))
	p.store.Dispatch(store.NotifySuccess(resp.Msg))
}

// deleteProduct issues the remote delete and, on success, removes the
// product from state and navigates away from its (now dead) detail view.
func (p *Processor) deleteProduct(ctx context.Context, entry store.ModalEntry) {
	snapshot := p.store.State()

	p.store.Dispatch(store.NotifyLoading())
	resp, err := p.gw.DeleteProduct(ctx, entry.ID, snapshot.Auth.Token)
	if err != nil {
		p.logger.Error("product delete request failed", "product_id", entry.ID, "error", err)
		p.store.Dispatch(store.NotifyError("Failed to delete product. Please try again."))
		return
	}
	if resp.Err != "" {
		p.store.Dispatch(store.NotifyError(resp.Err))
		return
	}

	products := make([]store.Product, 0, len(snapshot.Products))
	for _, pr := range snapshot.Products {
		if pr.ID != entry.ID {
			products = append(products, pr)
		}
	}
	p.store.Dispatch(store.AddProducts(products))
	p.store.Dispatch(store.NotifySuccess(resp.Msg))
	p.nav.Push("/")
}
