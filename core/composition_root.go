package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/status-im/coin-browser/api"
	"github.com/status-im/coin-browser/coinranking"
	cr "github.com/status-im/coin-browser/coinranking_common"
	"github.com/status-im/coin-browser/config"
	"github.com/status-im/coin-browser/favorites"
	"github.com/status-im/coin-browser/interfaces"
	"github.com/status-im/coin-browser/listing"
)

// App holds the wired components shared by the CLI commands and the server
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	Connectivity cr.IConnectivityChecker
	Repository   *coinranking.Service
	Favorites    interfaces.FavoritesStore
	Listing      *listing.Engine
	Registry     *Registry
}

// NewApp creates and registers the services needed to browse coins.
// Nothing is started yet, see Registry.StartAll.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := NewRegistry(logger)

	var connectivity cr.IConnectivityChecker = cr.AlwaysConnected{}
	if !cfg.Connectivity.Disabled {
		monitor := cr.NewConnectivityMonitor(cfg.Coinranking.BaseURL, cfg.Connectivity, logger)
		registry.Register("connectivity", monitor)
		connectivity = monitor
	}

	repository := coinranking.NewService(cfg, connectivity, logger)
	registry.Register("coinranking", repository)

	var store interfaces.FavoritesStore
	if cfg.Favorites.SQLitePath != "" {
		sqliteStore, err := favorites.NewSQLiteStore(cfg.Favorites.SQLitePath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open favorites store: %w", err)
		}
		registry.Register("favorites", sqliteStore)
		store = sqliteStore
	} else {
		store = favorites.NewMemoryStore(logger)
	}

	listingEngine := listing.NewEngine(repository, store, logger).
		WithPageSize(cfg.Listing.PageSize)

	return &App{
		Config:       cfg,
		Logger:       logger,
		Connectivity: connectivity,
		Repository:   repository,
		Favorites:    store,
		Listing:      listingEngine,
		Registry:     registry,
	}, nil
}

// Setup creates the full server: the app services, periodic listing
// refresh and the HTTP API
func Setup(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	app, err := NewApp(cfg, logger)
	if err != nil {
		return nil, err
	}

	app.Listing.WithAutoRefresh(cfg.Listing.AutoRefreshInterval)
	app.Registry.Register("listing", app.Listing)

	server := api.New(cfg.Server.Port, app.Listing, app.Repository, app.Logger)
	app.Registry.Register("api", server)

	return app, nil
}
