// Package store provides an interface for catalog storage operations.
package store

import (
	"context"

	"github.com/sugrobov/storefront/internal/catalog"
)

// ProductQuery carries the filter and pagination window for a catalog
// listing. The filter's price bounds are raw strings; bounds that do not
// parse as numbers are inactive.
type ProductQuery struct {
	Filter catalog.FilterState
	Offset int32
	Limit  int32
}

// CatalogStore is an interface for catalog storage operations. It
// abstracts the underlying data store, allowing for different
// implementations (in-memory snapshot, database). Every implementation
// serves only products with positive stock.
type CatalogStore interface {
	// FindProducts returns the page of products matching the query filter
	// plus the total number of matching products across all pages.
	FindProducts(ctx context.Context, query ProductQuery) ([]catalog.Product, int64, error)

	// FindProductByID retrieves a single in-stock product.
	// Returns ErrProductNotFound if no such product exists.
	FindProductByID(ctx context.Context, id int64) (*catalog.Product, error)

	// FindCategories returns all categories ordered by name.
	FindCategories(ctx context.Context) ([]catalog.Category, error)
}
