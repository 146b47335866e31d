// Package main provides the seed command for populating the document store
// with fake catalog data. Seeders run in a fixed order so that child
// collections can reference the categories created before them.
package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/catalog-console/internal/catalog"
	"github.com/JaimeStill/catalog-console/pkg/docstore"
	"github.com/brianvoe/gofakeit/v6"
)

// Seeder populates one collection.
type Seeder interface {
	// Name returns the unique identifier for this seeder.
	Name() string

	// Description returns a human-readable description of what this seeder does.
	Description() string

	// Seed creates run.Count records.
	Seed(ctx context.Context, run *Run) error
}

// Run carries the shared state of one seeding pass.
type Run struct {
	Store  docstore.System
	Faker  *gofakeit.Faker
	Count  int
	Logger *slog.Logger

	// Categories holds the ids of every category known to the run.
	Categories []string
}

// seeders is the registry, in execution order.
var seeders = []Seeder{
	categorySeeder{},
	childSeeder{name: "subcategories", collection: catalog.CollectionSubcategories, description: "Subcategories under random categories"},
	childSeeder{name: "multicategory", collection: catalog.CollectionMultiCategory, description: "Multi-category groupings under random categories"},
	productSeeder{},
	customerSeeder{},
}

func getSeeder(name string) (Seeder, bool) {
	for _, s := range seeders {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// runSeeders executes the named seeders, or all of them when names is empty,
// in registry order.
func runSeeders(ctx context.Context, run *Run, names ...string) error {
	selected := seeders
	if len(names) > 0 {
		selected = make([]Seeder, 0, len(names))
		for _, s := range seeders {
			for _, name := range names {
				if s.Name() == name {
					selected = append(selected, s)
				}
			}
		}
		for _, name := range names {
			if _, ok := getSeeder(name); !ok {
				return fmt.Errorf("seeder not found: %s", name)
			}
		}
	}

	for _, s := range selected {
		run.Logger.Info("seeding", "seeder", s.Name(), "count", run.Count)
		if err := s.Seed(ctx, run); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}

// parentCategories returns the category ids known to the run, loading them
// from the store when the categories seeder did not run.
func (r *Run) parentCategories(ctx context.Context) ([]string, error) {
	if len(r.Categories) > 0 {
		return r.Categories, nil
	}

	existing, err := r.Store.List(ctx, catalog.CollectionCategories)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		r.Categories = append(r.Categories, c.ID)
	}
	if len(r.Categories) == 0 {
		return nil, fmt.Errorf("no categories to reference; seed categories first")
	}
	return r.Categories, nil
}
