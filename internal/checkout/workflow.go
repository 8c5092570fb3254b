// Package checkout orchestrates stock-aware cart reconciliation and order
// submission: load persisted cart, verify each line against live stock,
// merge, re-verify at payment time, submit, clear.
package checkout

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/MhasnainGIT/e-commerce/internal/cart"
	"github.com/MhasnainGIT/e-commerce/internal/gateway"
	"github.com/MhasnainGIT/e-commerce/internal/store"
)

// Gateway is the slice of the API client the workflow needs.
type Gateway interface {
	Product(ctx context.Context, id string) (*gateway.ProductResponse, error)
	CreateOrder(ctx context.Context, order gateway.OrderRequest, token string) (*gateway.OrderCreateResponse, error)
}

// CartLoader reads the persisted cart slot.
type CartLoader interface {
	Load(ctx context.Context) ([]store.CartLine, error)
}

// Navigator receives navigation intents for the external router.
type Navigator interface {
	Push(path string)
}

// Workflow runs the reconciliation and checkout sequences against the store.
type Workflow struct {
	store  *store.Store
	gw     Gateway
	carts  CartLoader
	nav    Navigator
	logger *slog.Logger
}

// NewWorkflow creates the checkout workflow.
func NewWorkflow(st *store.Store, gw Gateway, carts CartLoader, nav Navigator, logger *slog.Logger) *Workflow {
	return &Workflow{
		store:  st,
		gw:     gw,
		carts:  carts,
		nav:    nav,
		logger: logger.With("component", "checkout"),
	}
}

// Reconcile repairs the persisted cart against live stock and commits the
// result in a single dispatch. Lines whose product is gone or out of stock
// are dropped; a quantity that no longer fits live stock is reset to 1.
// An empty or absent persisted cart is a no-op.
func (w *Workflow) Reconcile(ctx context.Context) error {
	lines, err := w.carts.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load persisted cart: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}

	rebuilt := w.verify(ctx, lines)
	w.store.Dispatch(store.AddCart(rebuilt))
	w.logger.Info("cart reconciled", "persisted", len(lines), "kept", len(rebuilt))
	return nil
}

// verify checks every line against the live product record. Fetches run
// concurrently; results are slotted by index so completion order never
// affects the rebuilt cart's order.
func (w *Workflow) verify(ctx context.Context, lines []store.CartLine) []store.CartLine {
	results := make([]*store.CartLine, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			resp, err := w.gw.Product(gctx, line.ProductID)
			if err != nil {
				w.logger.Warn("dropping cart line, product fetch failed",
					"product_id", line.ProductID, "error", err)
				return nil
			}
			if resp.Err != "" {
				w.logger.Warn("dropping cart line, product rejected",
					"product_id", line.ProductID, "reason", resp.Err)
				return nil
			}
			live := resp.Product
			if live.InStock <= 0 {
				return nil
			}
			quantity := line.Quantity
			if quantity > live.InStock {
				// conservative reset, not min(quantity, live stock)
				quantity = 1
			}
			results[i] = &store.CartLine{
				ProductID: live.ID,
				Title:     live.Title,
				Images:    live.Images,
				Price:     live.Price,
				InStock:   live.InStock,
				Sold:      live.Sold,
				Quantity:  quantity,
			}
			return nil
		})
	}
	_ = g.Wait()

	rebuilt := make([]store.CartLine, 0, len(lines))
	for _, line := range results {
		if line != nil {
			rebuilt = append(rebuilt, *line)
		}
	}
	return rebuilt
}

// Pay runs the checkout sequence: validate shipping input, re-verify every
// line against live stock, submit the order, clear the cart and hand off a
// navigation intent to the new order's detail view. Any shortfall aborts
// before the order call and triggers a self-healing reconciliation.
func (w *Workflow) Pay(ctx context.Context, address, mobile string) error {
	if address == "" || mobile == "" {
		w.store.Dispatch(store.NotifyError("Please add your address and mobile."))
		return nil
	}

	snapshot := w.store.State()
	lines := snapshot.Cart
	if len(lines) == 0 {
		w.store.Dispatch(store.NotifyError("Your cart is empty."))
		return nil
	}

	short, err := w.findShortfall(ctx, lines)
	if err != nil {
		w.store.Dispatch(store.NotifyError("Failed to verify stock. Please try again."))
		return fmt.Errorf("checkout stock verification failed: %w", err)
	}
	if short {
		if rerr := w.Reconcile(ctx); rerr != nil {
			w.logger.Warn("self-heal reconciliation failed", "error", rerr)
		}
		w.store.Dispatch(store.NotifyError("The product is out of stock or the quantity is insufficient."))
		return nil
	}

	w.store.Dispatch(store.NotifyLoading())
	resp, err := w.gw.CreateOrder(ctx, gateway.OrderRequest{
		Address: address,
		Mobile:  mobile,
		Cart:    lines,
		Total:   cart.Total(lines),
	}, snapshot.Auth.Token)
	if err != nil {
		w.store.Dispatch(store.NotifyError("Failed to place order. Please try again."))
		return fmt.Errorf("order submission failed: %w", err)
	}
	if resp.Err != "" {
		w.store.Dispatch(store.NotifyError(resp.Err))
		return nil
	}

	w.store.Dispatch(store.AddCart([]store.CartLine{}))

	order := resp.NewOrder
	order.User = snapshot.Auth.User
	orders := make([]store.Order, 0, len(snapshot.Orders)+1)
	orders = append(orders, snapshot.Orders...)
	orders = append(orders, order)
	w.store.Dispatch(store.AddOrders(orders))
	w.store.Dispatch(store.NotifySuccess(resp.Msg))

	w.logger.Info("order placed", "order_id", order.ID, "total", order.Total)
	w.nav.Push("/order/" + order.ID)
	return nil
}

// findShortfall reports whether any line's current quantity exceeds live
// stock. A product that is gone counts as a shortfall; a transport failure
// aborts the check.
func (w *Workflow) findShortfall(ctx context.Context, lines []store.CartLine) (bool, error) {
	shortfalls := make([]bool, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			resp, err := w.gw.Product(gctx, line.ProductID)
			if err != nil {
				return err
			}
			if resp.Err != "" || resp.Product.InStock < line.Quantity {
				shortfalls[i] = true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	for _, short := range shortfalls {
		if short {
			return true, nil
		}
	}
	return false, nil
}
