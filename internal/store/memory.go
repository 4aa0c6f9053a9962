package store

import (
	"context"
	"sort"

	"github.com/sugrobov/storefront/internal/catalog"
	serrors "github.com/sugrobov/storefront/internal/errors"
)

// MemoryStore implements CatalogStore over an in-memory snapshot using
// the catalog predicate directly, so its inclusion decisions are the
// predicate's by construction. It backs the no-database mode and tests.
// The snapshot is read-only after construction, so lookups need no
// locking.
type MemoryStore struct {
	products   []catalog.Product
	byID       map[int64]*catalog.Product
	categories []catalog.Category
}

// NewMemoryStore creates a CatalogStore over the given snapshot.
// Products with stock <= 0 are dropped; categories are served in name
// order, matching the database implementation.
func NewMemoryStore(products []catalog.Product, categories []catalog.Category) *MemoryStore {
	inStock := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if p.Stock > 0 {
			inStock = append(inStock, p)
		}
	}

	byID := make(map[int64]*catalog.Product, len(inStock))
	for i := range inStock {
		byID[inStock[i].ID] = &inStock[i]
	}

	sorted := make([]catalog.Category, len(categories))
	copy(sorted, categories)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	return &MemoryStore{
		products:   inStock,
		byID:       byID,
		categories: sorted,
	}
}

// FindProducts filters the snapshot through the query filter and windows
// the result by offset and limit, order preserved.
func (m *MemoryStore) FindProducts(_ context.Context, query ProductQuery) ([]catalog.Product, int64, error) {
	filtered := query.Filter.Apply(m.products)
	total := int64(len(filtered))

	start := int(query.Offset)
	if start < 0 || start >= len(filtered) {
		return []catalog.Product{}, total, nil
	}
	end := min(start+int(query.Limit), len(filtered))
	return filtered[start:end], total, nil
}

// FindProductByID retrieves an in-stock product from the snapshot.
// Returns ErrProductNotFound if no such product exists.
func (m *MemoryStore) FindProductByID(_ context.Context, id int64) (*catalog.Product, error) {
	product, ok := m.byID[id]
	if !ok {
		return nil, serrors.ErrProductNotFound
	}
	found := *product
	return &found, nil
}

// FindCategories returns all categories ordered by name.
func (m *MemoryStore) FindCategories(_ context.Context) ([]catalog.Category, error) {
	categories := make([]catalog.Category, len(m.categories))
	copy(categories, m.categories)
	return categories, nil
}
