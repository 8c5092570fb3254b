// Package app contains the application setup for the storefront client.
package app

import (
	"log/slog"

	"github.com/MhasnainGIT/e-commerce/internal/auth"
	"github.com/MhasnainGIT/e-commerce/internal/checkout"
	"github.com/MhasnainGIT/e-commerce/internal/gateway"
	"github.com/MhasnainGIT/e-commerce/internal/modal"
	"github.com/MhasnainGIT/e-commerce/internal/persist"
	"github.com/MhasnainGIT/e-commerce/internal/store"
)

// Navigator receives navigation intents from the session, checkout and
// modal flows; the embedding front end routes them.
type Navigator interface {
	Push(path string)
}

// Dependencies bundles the wired client core handed to the front end.
type Dependencies struct {
	Store    *store.Store
	Auth     *auth.Service
	Checkout *checkout.Workflow
	Modal    *modal.Processor
	Logger   *slog.Logger
}

// SetupDependencies wires the store and its workflows over the given cart
// slot, API client and navigator.
func SetupDependencies(carts persist.CartStore, gw *gateway.Client, nav Navigator, logger *slog.Logger) *Dependencies {
	st := store.New(carts, logger)

	return &Dependencies{
		Store:    st,
		Auth:     auth.NewService(st, gw, nav, logger),
		Checkout: checkout.NewWorkflow(st, gw, carts, nav, logger),
		Modal:    modal.NewProcessor(st, gw, nav, logger),
		Logger:   logger,
	}
}

// LogNavigator is the default navigation sink for headless runs: intents
// are logged instead of routed.
type LogNavigator struct {
	Logger *slog.Logger
}

// Push logs the navigation intent.
func (n *LogNavigator) Push(path string) {
	n.Logger.Info("navigation intent", "path", path)
}
