package main

import (
	"fmt"
	"time"

	"github.com/JaimeStill/catalog-console/internal/api"
	"github.com/JaimeStill/catalog-console/internal/config"
	"github.com/JaimeStill/catalog-console/internal/infrastructure"
	"github.com/JaimeStill/catalog-console/internal/server"
)

// Service coordinates the lifecycle of all subsystems.
type Service struct {
	infra  *infrastructure.Infrastructure
	server server.System
}

// NewService creates and initializes the service with all subsystems.
func NewService(cfg *config.Config) (*Service, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	handler, err := api.NewHandler(cfg, infra)
	if err != nil {
		return nil, fmt.Errorf("api init failed: %w", err)
	}

	return &Service{
		infra:  infra,
		server: server.New(&cfg.Server, handler, infra.Logger),
	}, nil
}

// Start begins all subsystems and returns when startup hooks have completed.
func (s *Service) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.server.Start(s.infra.Lifecycle); err != nil {
		return fmt.Errorf("server start failed: %w", err)
	}

	s.infra.Lifecycle.WaitForStartup()
	s.infra.Logger.Info("service started", "addr", s.server.Addr())
	return nil
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Service) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
