package main

import (
	"context"
	"regexp"
	"slices"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/JaimeStill/catalog-console/pkg/docstore"
	"github.com/JaimeStill/catalog-console/pkg/logging"
	"github.com/JaimeStill/catalog-console/pkg/record"
)

func newRun(store docstore.System, count int) *Run {
	return &Run{
		Store:  store,
		Faker:  gofakeit.New(42),
		Count:  count,
		Logger: logging.Discard(),
	}
}

func TestRunSeeders_All(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory(logging.Discard())

	if err := runSeeders(ctx, newRun(store, 3)); err != nil {
		t.Fatalf("runSeeders() error = %v", err)
	}

	categories, _ := store.List(ctx, "categories")
	ids := make([]string, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}

	for _, collection := range []string{"categories", "subcategories", "multiCategory", "products", "users"} {
		recs, err := store.List(ctx, collection)
		if err != nil {
			t.Fatalf("List(%s) error = %v", collection, err)
		}
		if len(recs) != 3 {
			t.Errorf("%s count = %d, want 3", collection, len(recs))
		}
	}

	for _, collection := range []string{"subcategories", "multiCategory", "products"} {
		recs, _ := store.List(ctx, collection)
		for _, r := range recs {
			if !slices.Contains(ids, r.Fields.String(record.FieldCategory)) {
				t.Errorf("%s/%s references unknown category %q", collection, r.ID, r.Fields.String(record.FieldCategory))
			}
		}
	}

	products, _ := store.List(ctx, "products")
	for _, p := range products {
		for _, key := range []string{"cost", "dealerCost", "discount", "gst", "moq", "stockQuantity"} {
			if _, ok := p.Fields[key].(float64); !ok {
				t.Errorf("product %s field %s = %T, want float64", p.ID, key, p.Fields[key])
			}
		}
	}
}

var gstPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9][A-Z][0-9]$`)

func TestRunSeeders_CustomerGSTNumbers(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory(logging.Discard())

	if err := runSeeders(ctx, newRun(store, 5), "customers"); err != nil {
		t.Fatalf("runSeeders() error = %v", err)
	}

	users, _ := store.List(ctx, "users")
	if len(users) != 5 {
		t.Fatalf("users = %d, want 5", len(users))
	}
	for _, u := range users {
		if gst := u.Fields.String("GSTno"); !gstPattern.MatchString(gst) {
			t.Errorf("GSTno = %q, want 15-character GSTIN shape", gst)
		}
	}
}

func TestRunSeeders_OnlyChildrenUsesExistingCategories(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory(logging.Discard())
	store.Put("categories", record.Record{ID: "c1", Fields: record.Fields{"name": "Fruit"}})

	if err := runSeeders(ctx, newRun(store, 2), "subcategories"); err != nil {
		t.Fatalf("runSeeders() error = %v", err)
	}

	recs, _ := store.List(ctx, "subcategories")
	for _, r := range recs {
		if r.Fields.String(record.FieldCategory) != "c1" {
			t.Errorf("category = %q, want c1", r.Fields.String(record.FieldCategory))
		}
	}
}

func TestRunSeeders_Errors(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory(logging.Discard())

	if err := runSeeders(ctx, newRun(store, 1), "orders"); err == nil {
		t.Error("expected unknown seeder error")
	}
	if err := runSeeders(ctx, newRun(store, 1), "products"); err == nil {
		t.Error("expected missing categories error")
	}
}
