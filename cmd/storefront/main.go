// Package main runs the headless storefront client: it restores the
// session, reconciles the persisted cart against live stock and loads the
// initial catalog snapshots into the application store.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MhasnainGIT/e-commerce/internal/app"
	"github.com/MhasnainGIT/e-commerce/internal/config"
	"github.com/MhasnainGIT/e-commerce/internal/gateway"
	"github.com/MhasnainGIT/e-commerce/internal/persist"
	"github.com/MhasnainGIT/e-commerce/internal/store"
	"github.com/MhasnainGIT/e-commerce/pkg/bootstrap"
	"github.com/MhasnainGIT/e-commerce/pkg/config/configloader"
	"github.com/MhasnainGIT/e-commerce/pkg/logger"
)

const appName = "storefront"

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run loads configuration, opens the cart database and drives the startup
// sequence: session refresh, cart reconciliation, initial catalog fetch.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](appName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	baseLogger := bootstrap.NewLogger(cfg.Log.Level)
	appLogger := slog.New(logger.NewContextHandler(baseLogger.Handler()))
	slog.SetDefault(appLogger)

	ctx = context.WithValue(ctx, logger.SessionIDKey, uuid.NewString())

	var carts persist.CartStore
	if cfg.Storage.Path != "" {
		db, err := bootstrap.NewBadgerDB(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("failed to open cart database: %w", err)
		}
		defer func() {
			if cerr := db.Close(); cerr != nil {
				appLogger.Warn("failed to close cart database", "error", cerr)
			}
		}()
		carts = persist.NewBadgerStore(db)
		appLogger.Info("cart database opened", slog.String("path", cfg.Storage.Path))
	} else {
		carts = persist.NewMemoryStore()
		appLogger.Info("no storage path configured, cart is session-only")
	}

	gw, err := gateway.NewClient(cfg.API, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create gateway client: %w", err)
	}

	nav := &app.LogNavigator{Logger: appLogger}
	deps := app.SetupDependencies(carts, gw, nav, appLogger)

	// Surface every status message while headless.
	unsubscribe := deps.Store.Subscribe(func(s store.State) {
		if !s.Notify.Empty() {
			appLogger.Info("notification",
				"loading", s.Notify.Loading,
				"success", s.Notify.Success,
				"error", s.Notify.Error)
		}
	})
	defer unsubscribe()

	if err := startup(ctx, deps, gw); err != nil {
		return err
	}

	state := deps.Store.State()
	appLogger.Info("storefront ready",
		slog.Bool("logged_in", state.Auth.LoggedIn()),
		slog.Int("cart_lines", len(state.Cart)),
		slog.Int("categories", len(state.Categories)),
		slog.Int("products", len(state.Products)),
		slog.Int("orders", len(state.Orders)))
	return nil
}

// startup restores the previous session and fills the read-mostly state
// slices. Catalog fetches run in parallel; the cart reconciliation runs
// after them so its verification hits a warm connection.
func startup(ctx context.Context, deps *app.Dependencies, gw *gateway.Client) error {
	if err := deps.Auth.RefreshSession(ctx); err != nil {
		// no session to restore; anonymous browsing is fine
		deps.Logger.Debug("session not restored", "error", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := gw.Categories(gCtx)
		if err != nil {
			return fmt.Errorf("failed to fetch categories: %w", err)
		}
		if resp.Err != "" {
			deps.Store.Dispatch(store.NotifyError(resp.Err))
			return nil
		}
		deps.Store.Dispatch(store.AddCategories(resp.Categories))
		return nil
	})
	g.Go(func() error {
		resp, err := gw.Products(gCtx, gateway.ProductQuery{Page: 1})
		if err != nil {
			return fmt.Errorf("failed to fetch products: %w", err)
		}
		if resp.Err != "" {
			deps.Store.Dispatch(store.NotifyError(resp.Err))
			return nil
		}
		deps.Store.Dispatch(store.AddProducts(resp.Products))
		return nil
	})
	if auth := deps.Store.State().Auth; auth.LoggedIn() {
		g.Go(func() error {
			resp, err := gw.Orders(gCtx, auth.Token)
			if err != nil {
				return fmt.Errorf("failed to fetch orders: %w", err)
			}
			if resp.Err != "" {
				deps.Store.Dispatch(store.NotifyError(resp.Err))
				return nil
			}
			deps.Store.Dispatch(store.AddOrders(resp.Orders))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := deps.Checkout.Reconcile(ctx); err != nil {
		return fmt.Errorf("cart reconciliation failed: %w", err)
	}
	return nil
}
