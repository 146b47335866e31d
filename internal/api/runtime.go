package api

import (
	"time"

	"github.com/JaimeStill/catalog-console/internal/config"
	"github.com/JaimeStill/catalog-console/internal/infrastructure"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	OperationTimeout time.Duration
	MaxUploadSize    int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Store:     infra.Store,
			Assets:    infra.Assets,
		},
		OperationTimeout: cfg.Console.OperationTimeoutDuration(),
		MaxUploadSize:    cfg.Storage.MaxUploadSizeBytes(),
	}
}
