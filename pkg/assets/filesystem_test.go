package assets_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/catalog-console/pkg/assets"
	"github.com/JaimeStill/catalog-console/pkg/lifecycle"
	"github.com/JaimeStill/catalog-console/pkg/logging"
)

func newStore(t *testing.T, maxSize string) (assets.System, string) {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "assets")
	cfg := &assets.Config{BasePath: dir, PublicURL: "http://localhost:8080/assets/", MaxUploadSize: maxSize}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	sys, err := assets.New(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	lc.WaitForStartup()

	return sys, dir
}

func TestStart_CreatesDirectory(t *testing.T) {
	_, dir := newStore(t, "")

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Start() did not create base directory: %v", err)
	}
}

func TestUpload_URL_Retrieve(t *testing.T) {
	ctx := context.Background()
	sys, _ := newStore(t, "")

	key := assets.Key("products", "red apple.png")
	if err := sys.Upload(ctx, key, []byte("png")); err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}

	url, err := sys.URL(ctx, key)
	if err != nil {
		t.Fatalf("URL() failed: %v", err)
	}
	if want := "http://localhost:8080/assets/products/red_apple.png"; url != want {
		t.Errorf("URL() = %q, want %q", url, want)
	}

	data, err := sys.Retrieve(ctx, key)
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}
	if string(data) != "png" {
		t.Errorf("Retrieve() = %q, want %q", data, "png")
	}
}

func TestUpload_OverwritesSameName(t *testing.T) {
	ctx := context.Background()
	sys, _ := newStore(t, "")
	key := assets.Key("categories", "fruit.jpg")

	sys.Upload(ctx, key, []byte("first"))
	sys.Upload(ctx, key, []byte("second"))

	data, _ := sys.Retrieve(ctx, key)
	if string(data) != "second" {
		t.Errorf("Retrieve() = %q, want %q", data, "second")
	}
}

func TestUpload_TooLarge(t *testing.T) {
	sys, _ := newStore(t, "4B")

	err := sys.Upload(context.Background(), "products/big.bin", []byte("12345"))
	if !errors.Is(err, assets.ErrTooLarge) {
		t.Errorf("Upload() error = %v, want ErrTooLarge", err)
	}
}

func TestInvalidKeys(t *testing.T) {
	ctx := context.Background()
	sys, _ := newStore(t, "")

	for _, key := range []string{"", "../escape.txt", "/etc/passwd"} {
		t.Run(key, func(t *testing.T) {
			if err := sys.Upload(ctx, key, []byte("x")); !errors.Is(err, assets.ErrInvalidKey) {
				t.Errorf("Upload(%q) error = %v, want ErrInvalidKey", key, err)
			}
		})
	}
}

func TestURL_NotFound(t *testing.T) {
	sys, _ := newStore(t, "")

	_, err := sys.URL(context.Background(), "products/missing.png")
	if !errors.Is(err, assets.ErrNotFound) {
		t.Errorf("URL() error = %v, want ErrNotFound", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	ctx := context.Background()
	sys, dir := newStore(t, "")
	key := "subcategories/leaf.png"

	sys.Upload(ctx, key, []byte("x"))

	for range 2 {
		if err := sys.Delete(ctx, key); err != nil {
			t.Fatalf("Delete() failed: %v", err)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "subcategories")); !os.IsNotExist(err) {
		t.Error("Delete() left an empty collection directory")
	}
}

func TestPersist(t *testing.T) {
	ctx := context.Background()
	sys, _ := newStore(t, "")

	url, err := assets.Persist(ctx, sys, "categories", assets.Pending{FileName: "veg.png", Data: []byte("x")})
	if err != nil {
		t.Fatalf("Persist() failed: %v", err)
	}
	if url != "http://localhost:8080/assets/categories/veg.png" {
		t.Errorf("Persist() url = %q", url)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		collection string
		fileName   string
		want       string
	}{
		{"products", "apple.png", "products/apple.png"},
		{"products", "../../etc/passwd", "products/passwd"},
		{"products", `C:\photos\pear?.jpg`, "products/pear_.jpg"},
		{"categories", "", "categories/upload"},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			if got := assets.Key(tt.collection, tt.fileName); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfig_Finalize(t *testing.T) {
	cfg := &assets.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.BasePath != ".data/assets" || cfg.PublicURL != "/assets" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.MaxUploadSizeBytes() != 10*1000*1000 {
		t.Errorf("MaxUploadSizeBytes() = %d", cfg.MaxUploadSizeBytes())
	}

	bad := &assets.Config{MaxUploadSize: "lots"}
	if err := bad.Finalize(nil); err == nil {
		t.Error("Finalize() accepted an invalid size")
	}
}
