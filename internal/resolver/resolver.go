// Package resolver projects a field of a referenced parent record onto child
// records. Resolution never fails: a missing reference, a deleted parent or
// an unreachable store all degrade to Unknown.
package resolver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/JaimeStill/catalog-console/pkg/docstore"
	"github.com/JaimeStill/catalog-console/pkg/record"
)

// Unknown is the display name used when a reference cannot be resolved.
const Unknown = "Unknown"

// Spec describes one level of cross-collection reference.
type Spec struct {
	// Field on the child holding the parent id. Default: "category".
	Field string
	// Parent is the collection the id points into.
	Parent string `validate:"required"`
	// Project is the parent field copied onto the child. Default: "name".
	Project string
}

func (s Spec) normalized() Spec {
	if s.Field == "" {
		s.Field = record.FieldCategory
	}
	if s.Project == "" {
		s.Project = record.FieldName
	}
	return s
}

// Resolver looks up parent records through the document store gateway.
type Resolver struct {
	store  docstore.System
	spec   Spec
	logger *slog.Logger
}

// New creates a resolver for spec.
func New(store docstore.System, spec Spec, logger *slog.Logger) *Resolver {
	spec = spec.normalized()
	return &Resolver{
		store:  store,
		spec:   spec,
		logger: logger.With("system", "resolver", "parent", spec.Parent),
	}
}

// Spec returns the normalized reference description.
func (r *Resolver) Spec() Spec {
	return r.spec
}

// Resolve resolves a single record with a fresh lookup.
func (r *Resolver) Resolve(ctx context.Context, rec record.Record) record.View {
	return r.NewPass().Resolve(ctx, rec)
}

// ResolveAll resolves every record within one pass. Output order matches input order.
func (r *Resolver) ResolveAll(ctx context.Context, records []record.Record) []record.View {
	pass := r.NewPass()
	views := make([]record.View, len(records))
	for i, rec := range records {
		views[i] = pass.Resolve(ctx, rec)
	}
	return views
}

// NewPass starts a resolution pass. A pass memoizes lookups per parent id,
// so N children of the same parent cost a single store call.
func (r *Resolver) NewPass() *Pass {
	return &Pass{
		resolver: r,
		names:    make(map[string]string),
	}
}

// Pass is a single memoized resolution run. It is not safe for concurrent use.
type Pass struct {
	resolver *Resolver
	names    map[string]string
	lookups  int
}

// Lookups reports how many store calls the pass has made.
func (p *Pass) Lookups() int {
	return p.lookups
}

// Resolve returns rec with its reference projected as CategoryName.
func (p *Pass) Resolve(ctx context.Context, rec record.Record) record.View {
	view := record.View{Record: rec, CategoryName: Unknown}

	parentID := rec.Fields.String(p.resolver.spec.Field)
	if parentID == "" {
		return view
	}

	if name, ok := p.names[parentID]; ok {
		view.CategoryName = name
		return view
	}

	name := p.lookup(ctx, parentID)
	p.names[parentID] = name
	view.CategoryName = name
	return view
}

func (p *Pass) lookup(ctx context.Context, parentID string) string {
	r := p.resolver
	p.lookups++

	parent, err := r.store.Get(ctx, r.spec.Parent, parentID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			r.logger.Debug("reference target missing", "id", parentID)
		} else {
			r.logger.Warn("reference lookup failed", "id", parentID, "error", err)
		}
		return Unknown
	}

	name := parent.Fields.String(r.spec.Project)
	if name == "" {
		return Unknown
	}
	return name
}
