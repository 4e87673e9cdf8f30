package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/macrolens/maxprotein/config"
	httpDelivery "github.com/macrolens/maxprotein/internal/delivery/http"
	"github.com/macrolens/maxprotein/internal/domain"
	"github.com/macrolens/maxprotein/internal/infrastructure/abbrev"
	"github.com/macrolens/maxprotein/internal/infrastructure/cache"
	"github.com/macrolens/maxprotein/internal/infrastructure/storage"
	"github.com/macrolens/maxprotein/internal/infrastructure/usda"
	"github.com/macrolens/maxprotein/internal/logging"
	"github.com/macrolens/maxprotein/internal/usecase"
)

const shutdownTimeout = 30 * time.Second

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.SetDefaultStructuredLogger("maxprotein", version, cfg.Log.Level)
	slog.Info("starting maxprotein backend",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"catalogSource", cfg.Catalog.Source,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := newFoodSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	catalog := usecase.NewCatalog(source)
	if _, err := catalog.Load(ctx); err != nil {
		// The server still starts; /api/v1/catalog/reload can recover later.
		slog.Error("initial catalog load failed", "error", err)
	}

	memoryCache := cache.NewMemoryCache(cache.DefaultCleanupInterval)
	defer memoryCache.Close()

	selectionService := usecase.NewSelectionService(
		catalog,
		memoryCache,
		usecase.SelectionServiceConfig{
			Defaults: domain.SelectionParams{
				MinKcal:   cfg.Selection.MinKcal,
				MaxKcal:   cfg.Selection.MaxKcal,
				Limit:     cfg.Selection.Limit,
				TotalKcal: cfg.Selection.TotalKcal,
			},
			MaxExhaustiveCandidates: cfg.Selection.MaxExhaustiveCandidates,
			Workers:                 cfg.Selection.Workers,
			CacheTTL:                cfg.Cache.TTL,
		},
	)
	slog.Info("selection defaults",
		"minKcal", cfg.Selection.MinKcal,
		"maxKcal", cfg.Selection.MaxKcal,
		"limit", cfg.Selection.Limit,
		"totalKcal", cfg.Selection.TotalKcal,
		"maxExhaustiveCandidates", cfg.Selection.MaxExhaustiveCandidates,
		"workers", cfg.Selection.Workers,
		"cacheTTL", cfg.Cache.TTL,
	)

	handler := httpDelivery.NewHandler(selectionService, catalog, version)
	router := httpDelivery.SetupRouter(cfg, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// newFoodSource builds the configured catalog source. The returned close
// function is always safe to call.
func newFoodSource(ctx context.Context, cfg *config.Config) (domain.FoodSource, func(), error) {
	noop := func() {}

	switch cfg.Catalog.Source {
	case config.SourceABBREV:
		return abbrev.NewFileSource(cfg.Catalog.Path), noop, nil

	case config.SourceSQLite:
		store, err := storage.NewSQLiteStore(cfg.Catalog.DatabasePath)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open food database: %w", err)
		}
		closeStore := func() {
			if err := store.Close(); err != nil {
				slog.Warn("failed to close food database", "error", err)
			}
		}
		if err := seedStore(ctx, store, cfg.Catalog.Path); err != nil {
			closeStore()
			return nil, noop, err
		}
		return store, closeStore, nil

	case config.SourceUSDA:
		client := usda.NewClient(cfg.USDA.APIKey, cfg.USDA.BaseURL)
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
			slog.Debug("USDA client debug mode enabled")
		}
		slog.Info("USDA API configured", "baseURL", cfg.USDA.BaseURL, "queries", len(cfg.USDA.Queries))
		return usda.NewQuerySource(client, cfg.USDA.Queries), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
}

// seedStore fills an empty database from the ABBREV file at path, if one is configured
func seedStore(ctx context.Context, store domain.FoodStore, path string) error {
	count, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count stored foods: %w", err)
	}
	if count > 0 || path == "" {
		return nil
	}

	foods, err := abbrev.NewFileSource(path).LoadFoods(ctx)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	if err := store.SaveFoods(ctx, foods); err != nil {
		return fmt.Errorf("failed to seed food database: %w", err)
	}

	slog.Info("seeded food database", "path", path, "foods", len(foods))
	return nil
}
