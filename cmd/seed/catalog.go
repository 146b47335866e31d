package main

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/JaimeStill/catalog-console/internal/catalog"
	"github.com/JaimeStill/catalog-console/pkg/record"
)

type categorySeeder struct{}

func (categorySeeder) Name() string        { return "categories" }
func (categorySeeder) Description() string { return "Top-level product categories" }

func (categorySeeder) Seed(ctx context.Context, run *Run) error {
	for range run.Count {
		id, err := run.Store.Create(ctx, catalog.CollectionCategories, record.Fields{
			"name":     capitalize(run.Faker.Noun()),
			"imageUrl": "",
			"isActive": run.Faker.Bool(),
		})
		if err != nil {
			return err
		}
		run.Categories = append(run.Categories, id)
	}
	return nil
}

// childSeeder fills a collection whose records only carry a name and a
// category reference.
type childSeeder struct {
	name        string
	collection  string
	description string
}

func (s childSeeder) Name() string        { return s.name }
func (s childSeeder) Description() string { return s.description }

func (s childSeeder) Seed(ctx context.Context, run *Run) error {
	parents, err := run.parentCategories(ctx)
	if err != nil {
		return err
	}

	for range run.Count {
		_, err := run.Store.Create(ctx, s.collection, record.Fields{
			"name":     capitalize(run.Faker.Adjective() + " " + run.Faker.Noun()),
			"imageUrl": "",
			"category": run.Faker.RandomString(parents),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

type productSeeder struct{}

func (productSeeder) Name() string { return "products" }
func (productSeeder) Description() string {
	return "Products priced and stocked under random categories"
}

func (productSeeder) Seed(ctx context.Context, run *Run) error {
	parents, err := run.parentCategories(ctx)
	if err != nil {
		return err
	}

	f := run.Faker
	for range run.Count {
		cost := f.Price(10, 500)
		stock := f.IntRange(0, 1000)

		_, err := run.Store.Create(ctx, catalog.CollectionProducts, record.Fields{
			"prodName":         f.Fruit(),
			"category":         f.RandomString(parents),
			"subcategory":      f.Vegetable(),
			"subTitle":         f.Adjective(),
			"description":      f.Sentence(8),
			"cost":             cost,
			"dealerCost":       cost * f.Float64Range(0.6, 0.9),
			"discount":         float64(f.IntRange(0, 30)),
			"gst":              float64(f.RandomInt([]int{0, 5, 12, 18, 28})),
			"moq":              float64(f.IntRange(1, 50)),
			"stockQuantity":    float64(stock),
			"isStockAvailable": stock > 0,
			"imageUrl":         "",
		})
		if err != nil {
			return err
		}
	}
	return nil
}

type customerSeeder struct{}

func (customerSeeder) Name() string        { return "customers" }
func (customerSeeder) Description() string { return "Registered storefront users" }

func (customerSeeder) Seed(ctx context.Context, run *Run) error {
	f := run.Faker
	for range run.Count {
		_, err := run.Store.Create(ctx, catalog.CollectionUsers, record.Fields{
			"name":        f.Name(),
			"email":       f.Email(),
			"phoneNumber": f.Phone(),
			"whatsAppNo":  f.Phone(),
			"compName":    f.Company(),
			"GSTno":       strings.ToUpper(f.Lexify(f.Numerify("##?????####?#?#"))),
			"regType":     f.RandomString([]string{"Retailer", "Wholesaler", "Distributor"}),
			"address":     f.Street(),
			"city":        f.City(),
			"state":       f.State(),
			"zipCode":     f.Zip(),
			"userId":      f.UUID(),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
