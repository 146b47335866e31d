package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/catalog-console/internal/api"
	"github.com/JaimeStill/catalog-console/internal/collection"
	"github.com/JaimeStill/catalog-console/internal/config"
	"github.com/JaimeStill/catalog-console/internal/infrastructure"
	"github.com/JaimeStill/catalog-console/pkg/docstore"
	"github.com/JaimeStill/catalog-console/pkg/logging"
	"github.com/JaimeStill/catalog-console/pkg/record"
)

type fixture struct {
	handler http.Handler
	infra   *infrastructure.Infrastructure
	store   *docstore.Memory
}

func setup(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.Storage.BasePath = filepath.Join(t.TempDir(), "assets")
	cfg.Logging.Level = logging.LevelError
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	store := docstore.NewMemory(logging.Discard())
	store.Put("categories", record.Record{ID: "c1", Fields: record.Fields{"name": "Fruit", "isActive": true}})
	store.Put("subcategories", record.Record{ID: "s1", Fields: record.Fields{"name": "Citrus", "category": "c1"}})
	store.Put("products", record.Record{ID: "p1", Fields: record.Fields{"prodName": "Lemon", "category": "c1"}})
	infra.Store = store

	handler, err := api.NewHandler(cfg, infra)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	return &fixture{handler: handler, infra: infra, store: store}
}

func (f *fixture) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func TestScreens(t *testing.T) {
	f := setup(t)

	w := f.serve(httptest.NewRequest(http.MethodGet, "/api/screens", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var screens []api.ScreenInfo
	if err := json.Unmarshal(w.Body.Bytes(), &screens); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var names []string
	for _, s := range screens {
		names = append(names, s.Name)
	}
	want := []string{"categories", "subcategories", "multicategory", "products", "customers"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("screens mismatch (-want +got):\n%s", diff)
	}
	if !screens[4].ReadOnly {
		t.Error("customers should be read-only")
	}
}

func TestUnknownScreen(t *testing.T) {
	f := setup(t)

	w := f.serve(httptest.NewRequest(http.MethodPost, "/api/orders/load", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestProductsLoadResolvesCategory(t *testing.T) {
	f := setup(t)

	w := f.serve(httptest.NewRequest(http.MethodPost, "/api/products/load", nil))

	var state collection.State
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(state.Records) != 1 || state.Records[0].CategoryName != "Fruit" {
		t.Errorf("records = %+v", state.Records)
	}
}

func TestCategoryChildren(t *testing.T) {
	f := setup(t)

	w := f.serve(httptest.NewRequest(http.MethodGet, "/api/categories/records/c1/children", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var children []record.Record
	if err := json.Unmarshal(w.Body.Bytes(), &children); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(children) != 1 || children[0].ID != "s1" {
		t.Errorf("children = %+v", children)
	}
}

func TestSubmitImageThenServeAsset(t *testing.T) {
	f := setup(t)
	f.infra.Lifecycle.WaitForStartup()

	f.serve(httptest.NewRequest(http.MethodPost, "/api/categories/load", nil))
	f.serve(httptest.NewRequest(http.MethodPost, "/api/categories/form", nil))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("fields", `{"name":"Dairy"}`)
	part, _ := mw.CreateFormFile("image", "milk.png")
	part.Write(pngBytes)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/categories/submit", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := f.serve(req)

	var state collection.State
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Error != "" {
		t.Fatalf("Error = %q (%s)", state.Error, state.ErrorKind)
	}

	url := state.Records[len(state.Records)-1].Fields.ImageURL()
	if url != "/assets/categories/milk.png" {
		t.Fatalf("imageUrl = %q", url)
	}

	w = f.serve(httptest.NewRequest(http.MethodGet, url, nil))
	if w.Code != http.StatusOK || !bytes.Equal(w.Body.Bytes(), pngBytes) {
		t.Errorf("asset = %d %q", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}

	w = f.serve(httptest.NewRequest(http.MethodGet, "/assets/categories/none.png", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("missing asset status = %d, want 404", w.Code)
	}
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestSubmitRejectsHTMLUpload(t *testing.T) {
	f := setup(t)
	f.infra.Lifecycle.WaitForStartup()

	f.serve(httptest.NewRequest(http.MethodPost, "/api/categories/load", nil))
	f.serve(httptest.NewRequest(http.MethodPost, "/api/categories/form", nil))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("fields", `{"name":"Dairy"}`)
	part, _ := mw.CreateFormFile("image", "x.html")
	part.Write([]byte("<html><script>alert(1)</script></html>"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/categories/submit", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := f.serve(req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want 415", w.Code)
	}

	w = f.serve(httptest.NewRequest(http.MethodGet, "/assets/categories/x.html", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("rejected upload stored: status = %d, want 404", w.Code)
	}
}

func TestServeAsset_NonImageIsAttachment(t *testing.T) {
	f := setup(t)
	f.infra.Lifecycle.WaitForStartup()

	tests := []struct {
		key  string
		data string
	}{
		{"categories/page.html", "<html><script>alert(1)</script></html>"},
		{"categories/logo.svg", `<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := f.infra.Assets.Upload(context.Background(), tt.key, []byte(tt.data)); err != nil {
				t.Fatalf("Upload() error = %v", err)
			}

			w := f.serve(httptest.NewRequest(http.MethodGet, "/assets/"+tt.key, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d", w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/octet-stream" {
				t.Errorf("Content-Type = %q, want application/octet-stream", ct)
			}
			if cd := w.Header().Get("Content-Disposition"); cd != "attachment" {
				t.Errorf("Content-Disposition = %q, want attachment", cd)
			}
			if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	f := setup(t)

	if w := f.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil)); w.Code != http.StatusOK {
		t.Errorf("healthz = %d", w.Code)
	}
	if w := f.serve(httptest.NewRequest(http.MethodGet, "/readyz", nil)); w.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz before startup = %d, want 503", w.Code)
	}

	f.infra.Lifecycle.WaitForStartup()
	if w := f.serve(httptest.NewRequest(http.MethodGet, "/readyz", nil)); w.Code != http.StatusOK {
		t.Errorf("readyz after startup = %d, want 200", w.Code)
	}
}

func TestOpenAPI(t *testing.T) {
	f := setup(t)

	w := f.serve(httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}

	for _, p := range []string{"/api/screens", "/api/products/submit", "/api/categories/records/{id}/children"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("path %s missing from document", p)
		}
	}
	if _, ok := doc.Paths["/api/products/records/{id}/children"]; ok {
		t.Error("products should not document children")
	}
}
