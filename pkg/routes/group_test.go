package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/JaimeStill/catalog-console/pkg/openapi"
	"github.com/JaimeStill/catalog-console/pkg/routes"
)

func ok(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func testGroup() routes.Group {
	return routes.Group{
		Prefix: "/screens",
		Tags:   []string{"Screens"},
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: ok("index"), OpenAPI: &openapi.Operation{Summary: "List screens"}},
			{Method: http.MethodPost, Pattern: "/hidden", Handler: ok("hidden")},
		},
		Children: []routes.Group{
			{
				Prefix: "/products",
				Tags:   []string{"Products"},
				Routes: []routes.Route{
					{Method: http.MethodDelete, Pattern: "/records/{id}", Handler: ok("delete"), OpenAPI: &openapi.Operation{Summary: "Remove"}},
					{Method: http.MethodGet, Pattern: "/table", Handler: ok("table"), OpenAPI: &openapi.Operation{Summary: "Table", Tags: []string{"Tables"}}},
				},
			},
		},
	}
}

func TestRegister_MountsNestedRoutes(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, "/api", nil, testGroup())

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/screens", "index"},
		{http.MethodPost, "/api/screens/hidden", "hidden"},
		{http.MethodDelete, "/api/screens/products/records/p1", "delete"},
		{http.MethodGet, "/api/screens/products/table", "table"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if got := w.Body.String(); got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegister_MethodMismatch(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, "/api", nil, testGroup())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/screens/products/table", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestGroup_AddToSpec(t *testing.T) {
	spec := openapi.NewSpec("test", "1.0.0")
	routes.Register(http.NewServeMux(), "/api", spec, testGroup())

	paths := make([]string, 0, len(spec.Paths))
	for p := range spec.Paths {
		paths = append(paths, p)
	}
	want := []string{"/api/screens", "/api/screens/products/records/{id}", "/api/screens/products/table"}
	if diff := cmp.Diff(want, paths, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}

	if got := spec.Paths["/api/screens"].Get.Tags; !cmp.Equal(got, []string{"Screens"}) {
		t.Errorf("index tags = %v, want inherited [Screens]", got)
	}
	if got := spec.Paths["/api/screens/products/records/{id}"].Delete.Tags; !cmp.Equal(got, []string{"Products"}) {
		t.Errorf("remove tags = %v, want [Products]", got)
	}
	if got := spec.Paths["/api/screens/products/table"].Get.Tags; !cmp.Equal(got, []string{"Tables"}) {
		t.Errorf("table tags = %v, want explicit [Tables]", got)
	}
}

func TestGroup_AddToSpec_DoesNotMutateOperation(t *testing.T) {
	op := &openapi.Operation{Summary: "List"}
	g := routes.Group{
		Prefix: "/x",
		Tags:   []string{"X"},
		Routes: []routes.Route{{Method: http.MethodGet, Pattern: "", Handler: ok(""), OpenAPI: op}},
	}
	g.AddToSpec("", openapi.NewSpec("t", "1"))
	if op.Tags != nil {
		t.Errorf("source operation tags = %v, want nil", op.Tags)
	}
}
