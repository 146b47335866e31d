// Package infrastructure provides core service initialization for application startup.
// It assembles the common dependencies (lifecycle, logging, document store, asset
// store) that the console screens require.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/catalog-console/internal/config"
	"github.com/JaimeStill/catalog-console/pkg/assets"
	"github.com/JaimeStill/catalog-console/pkg/docstore"
	"github.com/JaimeStill/catalog-console/pkg/docstore/mongostore"
	"github.com/JaimeStill/catalog-console/pkg/docstore/sqlstore"
	"github.com/JaimeStill/catalog-console/pkg/lifecycle"
	"github.com/JaimeStill/catalog-console/pkg/logging"
)

// Infrastructure holds the core systems required by every screen.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Store     docstore.System
	Assets    assets.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	store, err := NewStore(&cfg.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("store init failed: %w", err)
	}

	assetStore, err := assets.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Store:     store,
		Assets:    assetStore,
	}, nil
}

// NewStore selects the document store backend named by cfg.Driver.
func NewStore(cfg *docstore.Config, logger *slog.Logger) (docstore.System, error) {
	switch cfg.Driver {
	case docstore.DriverMemory:
		return docstore.NewMemory(logger), nil
	case docstore.DriverMongo:
		return mongostore.New(cfg, logger)
	case docstore.DriverPostgres:
		return newSQLStore(cfg, sqlstore.Postgres, logger)
	case docstore.DriverSQLite:
		return newSQLStore(cfg, sqlstore.SQLite, logger)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}
}

func newSQLStore(cfg *docstore.Config, dialect sqlstore.Dialect, logger *slog.Logger) (docstore.System, error) {
	store, err := sqlstore.New(cfg, dialect, logger)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Start registers every infrastructure system with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Store.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("store start failed: %w", err)
	}
	if err := i.Assets.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
