package infrastructure_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/catalog-console/internal/config"
	"github.com/JaimeStill/catalog-console/internal/infrastructure"
	"github.com/JaimeStill/catalog-console/pkg/docstore"
	"github.com/JaimeStill/catalog-console/pkg/logging"
	"github.com/JaimeStill/catalog-console/pkg/record"
)

func TestNewStore(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     docstore.Config
		wantErr bool
	}{
		{"memory", docstore.Config{Driver: docstore.DriverMemory}, false},
		{"sqlite", docstore.Config{Driver: docstore.DriverSQLite, URI: filepath.Join(dir, "catalog.db"), MaxPoolSize: 1}, false},
		{"unknown", docstore.Config{Driver: "redis"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := infrastructure.NewStore(&tt.cfg, logging.Discard())
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStore() error = %v", err)
			}
			if store == nil {
				t.Fatal("NewStore() returned nil")
			}
		})
	}
}

func TestInfrastructure_StartAndUse(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Storage.BasePath = filepath.Join(dir, "assets")
	cfg.Logging.Level = logging.LevelError
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	cfg.Store = docstore.Config{Driver: docstore.DriverMemory}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := infra.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	infra.Lifecycle.WaitForStartup()
	defer infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())

	ctx := context.Background()
	id, err := infra.Store.Create(ctx, "categories", record.Fields{"name": "Fruit"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := infra.Store.Get(ctx, "categories", id); err != nil {
		t.Errorf("Get() error = %v", err)
	}

	if err := infra.Assets.Upload(ctx, "categories/a.png", []byte("png")); err != nil {
		t.Errorf("Upload() error = %v", err)
	}
}
