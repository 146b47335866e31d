// Package docstore defines the document store gateway: list, get, create,
// update and delete over named collections of schema-less records.
// Concrete backends live in subpackages; Memory is provided here for tests
// and single-process demos.
package docstore

import (
	"context"
	"errors"

	"github.com/JaimeStill/catalog-console/pkg/lifecycle"
	"github.com/JaimeStill/catalog-console/pkg/record"
)

// Gateway errors. Backends wrap transport failures in ErrUnavailable.
var (
	ErrNotFound    = errors.New("docstore: record not found")
	ErrUnavailable = errors.New("docstore: store unavailable")
)

// System is the document store gateway consumed by the console.
type System interface {
	// List returns every record of the collection in store order.
	List(ctx context.Context, collection string) ([]record.Record, error)

	// Get returns a single record. Returns ErrNotFound if the id is absent.
	Get(ctx context.Context, collection, id string) (record.Record, error)

	// Create stores fields as a new record and returns the assigned id.
	Create(ctx context.Context, collection string, fields record.Fields) (string, error)

	// Update merges fields into the stored record.
	// Returns ErrNotFound if the id no longer exists.
	Update(ctx context.Context, collection, id string, fields record.Fields) error

	// Delete removes the record. A missing id is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Start registers connection and shutdown hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}
