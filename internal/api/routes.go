package api

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/JaimeStill/catalog-console/internal/collection"
	"github.com/JaimeStill/catalog-console/pkg/assets"
	"github.com/JaimeStill/catalog-console/pkg/handlers"
	"github.com/JaimeStill/catalog-console/pkg/lifecycle"
	"github.com/JaimeStill/catalog-console/pkg/openapi"
	"github.com/JaimeStill/catalog-console/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, basePath string, spec *openapi.Spec, runtime *Runtime, domain *Domain) {
	groups := make([]routes.Group, 0, len(domain.Screens)+1)

	groups = append(groups, routes.Group{
		Prefix: "/screens",
		Tags:   []string{"Screens"},
		Routes: []routes.Route{{
			Method:  "GET",
			Pattern: "",
			Handler: func(w http.ResponseWriter, r *http.Request) {
				handlers.RespondJSON(w, http.StatusOK, domain.Index())
			},
			OpenAPI: &openapi.Operation{
				Summary: "List screens",
				Responses: map[int]*openapi.Response{
					200: {Description: "Screens in navigation order"},
				},
			},
		}},
	})

	for _, vm := range domain.Screens {
		h := collection.NewHandler(vm, runtime.Logger, runtime.MaxUploadSize)
		groups = append(groups, h.Routes())
	}

	routes.Register(mux, basePath, spec, groups...)
}

func registerAssets(mux *http.ServeMux, store assets.System, logger *slog.Logger) {
	mux.HandleFunc("GET /assets/{key...}", func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("key")

		data, err := store.Retrieve(r.Context(), key)
		if err != nil {
			handlers.RespondError(w, logger, assetStatus(err), err)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Type", assetContentType(key, data))
		if !inlineImage(w.Header().Get("Content-Type")) {
			w.Header().Set("Content-Disposition", "attachment")
		}
		w.Write(data)
	})
}

func registerHealth(mux *http.ServeMux, ready lifecycle.ReadinessChecker) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !ready.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})
}

// assetContentType trusts the key extension only for raster image types.
// Anything else is sniffed, and non-image content falls back to an opaque type.
func assetContentType(key string, data []byte) string {
	if ct := mime.TypeByExtension(path.Ext(key)); inlineImage(ct) {
		return ct
	}
	if ct := http.DetectContentType(data); inlineImage(ct) {
		return ct
	}
	return "application/octet-stream"
}

// inlineImage reports whether ct is an image type that cannot carry script.
func inlineImage(ct string) bool {
	return strings.HasPrefix(ct, "image/") && !strings.HasPrefix(ct, "image/svg")
}

func assetStatus(err error) int {
	switch {
	case errors.Is(err, assets.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, assets.ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, assets.ErrPermissionDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
