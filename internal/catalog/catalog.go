// Package catalog declares the console screens. Each screen is a thin
// configuration of the managed collection view-model.
package catalog

import (
	"time"

	"github.com/JaimeStill/catalog-console/internal/collection"
	"github.com/JaimeStill/catalog-console/internal/resolver"
	"github.com/JaimeStill/catalog-console/pkg/record"
)

// Document store collection names.
const (
	CollectionCategories    = "categories"
	CollectionSubcategories = "subcategories"
	CollectionMultiCategory = "multiCategory"
	CollectionProducts      = "products"
	CollectionUsers         = "users"
)

var categoryRef = &resolver.Spec{Parent: CollectionCategories}

// Screens returns the console screens in navigation order. timeout bounds
// every gateway call made by a screen.
func Screens(timeout time.Duration) []collection.Options {
	return []collection.Options{
		Categories(timeout),
		Subcategories(timeout),
		MultiCategory(timeout),
		Products(timeout),
		Customers(timeout),
	}
}

func Categories(timeout time.Duration) collection.Options {
	return collection.Options{
		Name:       "categories",
		Title:      "Categories",
		Collection: CollectionCategories,
		Defaults:   record.Fields{"name": "", "imageUrl": "", "isActive": true},
		Required:   []string{"name"},
		Children:   &collection.Children{Collection: CollectionSubcategories},
		Columns: []collection.Column{
			{Header: "Image", Field: "imageUrl"},
			{Header: "Category Name", Field: "name"},
			{Header: "Active", Field: "isActive"},
		},
		Timeout: timeout,
	}
}

func Subcategories(timeout time.Duration) collection.Options {
	return collection.Options{
		Name:       "subcategories",
		Title:      "Subcategories",
		Collection: CollectionSubcategories,
		Defaults:   record.Fields{"name": "", "imageUrl": ""},
		Required:   []string{"name", "category"},
		Reference:  categoryRef,
		Columns: []collection.Column{
			{Header: "Image", Field: "imageUrl"},
			{Header: "Subcategory Name", Field: "name"},
			{Header: "Category", Field: collection.ColumnCategoryName},
		},
		Timeout: timeout,
	}
}

func MultiCategory(timeout time.Duration) collection.Options {
	return collection.Options{
		Name:       "multicategory",
		Title:      "Multi Category",
		Collection: CollectionMultiCategory,
		Defaults:   record.Fields{"name": "", "imageUrl": ""},
		Required:   []string{"name", "category"},
		Reference:  categoryRef,
		Columns: []collection.Column{
			{Header: "#", Field: collection.ColumnIndex},
			{Header: "Name", Field: "name"},
			{Header: "Category", Field: collection.ColumnCategoryName},
			{Header: "Image", Field: "imageUrl"},
		},
		Timeout: timeout,
	}
}

func Products(timeout time.Duration) collection.Options {
	return collection.Options{
		Name:       "products",
		Title:      "Products",
		Collection: CollectionProducts,
		Defaults: record.Fields{
			"prodName":         "",
			"subcategory":      "",
			"subTitle":         "",
			"description":      "",
			"isStockAvailable": true,
			"imageUrl":         "",
		},
		Required: []string{
			"prodName", "category", "cost", "dealerCost",
			"discount", "gst", "moq", "stockQuantity",
		},
		Reference: categoryRef,
		Columns: []collection.Column{
			{Header: "Image", Field: "imageUrl"},
			{Header: "Product Name", Field: "prodName"},
			{Header: "Category", Field: collection.ColumnCategoryName},
			{Header: "Subcategory", Field: "subcategory"},
			{Header: "Cost", Field: "cost"},
			{Header: "Dealer Cost", Field: "dealerCost"},
			{Header: "Discount", Field: "discount"},
			{Header: "GST", Field: "gst"},
			{Header: "Stock Quantity", Field: "stockQuantity"},
			{Header: "Created At", Field: record.FieldCreatedAt},
		},
		Timeout: timeout,
	}
}

// Customers is read-only: users register through the storefront.
func Customers(timeout time.Duration) collection.Options {
	return collection.Options{
		Name:       "customers",
		Title:      "Customers",
		Collection: CollectionUsers,
		ReadOnly:   true,
		Columns: []collection.Column{
			{Header: "Name", Field: "name"},
			{Header: "Email", Field: "email"},
			{Header: "Phone Number", Field: "phoneNumber"},
			{Header: "WhatsApp No", Field: "whatsAppNo"},
			{Header: "Company Name", Field: "compName"},
			{Header: "GST No", Field: "GSTno"},
			{Header: "Registered Type", Field: "regType"},
			{Header: "Address", Field: "address"},
			{Header: "City", Field: "city"},
			{Header: "State", Field: "state"},
			{Header: "Zip Code", Field: "zipCode"},
			{Header: "User ID", Field: "userId"},
			{Header: "Created At", Field: record.FieldCreatedAt},
		},
		Timeout: timeout,
	}
}
