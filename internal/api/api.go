// Package api assembles the console HTTP surface: one route group per
// screen, the screen index, asset retrieval, health checks and the
// generated OpenAPI document.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/catalog-console/internal/collection"
	"github.com/JaimeStill/catalog-console/internal/config"
	"github.com/JaimeStill/catalog-console/internal/infrastructure"
	"github.com/JaimeStill/catalog-console/pkg/middleware"
	"github.com/JaimeStill/catalog-console/pkg/openapi"
)

// NewHandler builds the complete HTTP handler for the console.
func NewHandler(cfg *config.Config, infra *infrastructure.Infrastructure) (http.Handler, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	for name, schema := range collection.Schemas() {
		spec.Components.Schemas[name] = schema
	}
	spec.Components.Responses["BadRequest"] = &openapi.Response{Description: "Malformed request"}

	mux := http.NewServeMux()
	registerRoutes(mux, cfg.API.BasePath, spec, runtime, domain)
	registerAssets(mux, runtime.Assets, runtime.Logger)
	registerHealth(mux, runtime.Lifecycle)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("render openapi: %w", err)
	}
	mux.HandleFunc("GET "+cfg.API.BasePath+"/openapi.json", openapi.ServeSpec(specBytes))

	mw := middleware.New()
	mw.Use(middleware.Logger(runtime.Logger))
	mw.Use(middleware.CORS(&cfg.CORS))
	mw.Use(middleware.TrimSlash())

	return mw.Apply(mux), nil
}
