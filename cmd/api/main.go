package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/glowshop-backend/api/routes"
	"github.com/angelmondragon/glowshop-backend/internal/cart"
	checkoutsvc "github.com/angelmondragon/glowshop-backend/internal/checkout"
	"github.com/angelmondragon/glowshop-backend/internal/orders"
	product "github.com/angelmondragon/glowshop-backend/internal/products"
	"github.com/angelmondragon/glowshop-backend/internal/wishlist"
	pkgcheckout "github.com/angelmondragon/glowshop-backend/pkg/checkout"
	"github.com/angelmondragon/glowshop-backend/pkg/config"
	"github.com/angelmondragon/glowshop-backend/pkg/env"
	"github.com/angelmondragon/glowshop-backend/pkg/logger"
	"github.com/angelmondragon/glowshop-backend/pkg/metrics"
	"github.com/angelmondragon/glowshop-backend/pkg/money"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	// The storefront reads prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	backend, err := openSnapshotBackend(ctx, cfg, logg)
	if backend != nil {
		defer func() {
			for _, c := range backend.closers {
				err = multierr.Append(err, c.Close())
			}
		}()
	}
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storefrontMetrics := metrics.NewStorefrontMetrics(reg)

	catalog, err := product.LoadCatalog(cfg.Catalog.SeedPath)
	if err != nil {
		return err
	}
	productSvc, err := product.NewService(catalog, storefrontMetrics, logg)
	if err != nil {
		return err
	}
	cartSvc, err := cart.NewService(cart.ServiceParams{
		Store:     backend.store,
		Products:  productSvc,
		KeyPrefix: cfg.Snapshot.KeyPrefix,
		Metrics:   storefrontMetrics,
		Logger:    logg,
		IdleTTL:   cfg.Snapshot.SessionIdleTTL,
	})
	if err != nil {
		return err
	}
	orderSvc, err := orders.NewService(orders.NewRepository())
	if err != nil {
		return err
	}
	checkout, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Carts:  cartSvc,
		Orders: orderSvc,
		Policy: pkgcheckout.ShippingPolicy{
			FreeThreshold: cfg.Checkout.FreeShippingThreshold,
			Fee:           cfg.Checkout.ShippingFee,
		},
		DefaultCountry: cfg.Checkout.DefaultCountry,
		Formatter:      money.NewFormatter(cfg.Checkout.Locale),
		Metrics:        storefrontMetrics,
		Logger:         logg,
		IdleTTL:        cfg.Snapshot.SessionIdleTTL,
	})
	if err != nil {
		return err
	}

	wishlistSvc, err := wishlist.NewService(wishlist.ServiceParams{
		Repo:     wishlist.NewRepository(backend.store, wishlist.DefaultKeyPrefix),
		Products: productSvc,
		Logger:   logg,
	})
	if err != nil {
		return err
	}

	port := env.Get("PORT", cfg.App.Port)
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":              cfg.App.Env,
		"addr":             addr,
		"instance":         env.Instance(),
		"snapshot_backend": cfg.Snapshot.Kind(),
		"products":         catalog.Len(),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, routes.Services{
			Products: productSvc,
			Cart:     cartSvc,
			Checkout: checkout,
			Orders:   orderSvc,
			Wishlist: wishlistSvc,
		}, backend.readiness, reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logg.Info(logCtx, "shutting down api server")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
