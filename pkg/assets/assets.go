// Package assets provides the asset store gateway used to persist record
// images. Blobs are addressed by "<collection>/<fileName>" keys and exposed
// through a stable retrieval URL.
package assets

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/catalog-console/pkg/lifecycle"
)

// Asset store errors returned by System implementations.
var (
	// ErrNotFound indicates the requested key does not exist in storage.
	ErrNotFound = errors.New("assets: key not found")

	// ErrPermissionDenied indicates insufficient permissions to access the key.
	ErrPermissionDenied = errors.New("assets: permission denied")

	// ErrInvalidKey indicates an empty key or a path traversal attempt.
	ErrInvalidKey = errors.New("assets: invalid key")

	// ErrTooLarge indicates the blob exceeds the configured upload limit.
	ErrTooLarge = errors.New("assets: blob exceeds maximum upload size")
)

// System is the asset store gateway.
type System interface {
	// Upload stores data at key, overwriting any existing blob.
	Upload(ctx context.Context, key string, data []byte) error

	// URL returns the durable retrieval URL of a stored key.
	// Returns ErrNotFound if nothing is stored at key.
	URL(ctx context.Context, key string) (string, error)

	// Retrieve returns the blob stored at key.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes the blob at key. A missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}

// Pending is an in-memory blob waiting to be persisted during one submit.
type Pending struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Key builds the storage key for a file uploaded into a collection.
func Key(collection, fileName string) string {
	return collection + "/" + sanitizeFilename(fileName)
}

// Persist uploads the pending asset under the collection namespace and
// resolves its retrieval URL. Either step failing fails the whole call.
func Persist(ctx context.Context, sys System, collection string, asset Pending) (string, error) {
	key := Key(collection, asset.FileName)

	if err := sys.Upload(ctx, key, asset.Data); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	url, err := sys.URL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("resolve url %s: %w", key, err)
	}
	return url, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	replacer := strings.NewReplacer(
		" ", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		"#", "_",
		"%", "_",
	)
	name = replacer.Replace(name)
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	return name
}
