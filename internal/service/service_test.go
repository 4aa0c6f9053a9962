package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugrobov/storefront/internal/catalog"
	serrors "github.com/sugrobov/storefront/internal/errors"
	"github.com/sugrobov/storefront/internal/store"
)

// mockCatalogStore is a mock implementation of the CatalogStore interface
type mockCatalogStore struct {
	products   []catalog.Product
	total      int64
	product    catalog.Product
	categories []catalog.Category
	error      error

	lastQuery store.ProductQuery
}

// Simulate listing products
func (m *mockCatalogStore) FindProducts(_ context.Context, query store.ProductQuery) ([]catalog.Product, int64, error) {
	m.lastQuery = query
	if m.error != nil {
		return nil, 0, m.error
	}
	return m.products, m.total, nil
}

// Simulate finding a product by ID
func (m *mockCatalogStore) FindProductByID(_ context.Context, _ int64) (*catalog.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

// Simulate listing categories
func (m *mockCatalogStore) FindCategories(_ context.Context) ([]catalog.Category, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.categories, nil
}

func Test_CatalogService_ListProducts(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name           string
		mockStore      *mockCatalogStore
		params         ListParams
		expectedOffset int32
		expectedLimit  int32
		expectedPages  int
		expectError    error
	}{
		{
			name: "Success - first page with defaults",
			mockStore: &mockCatalogStore{
				products: []catalog.Product{{ID: 1, Name: "Товар 1"}},
				total:    25,
			},
			params:         ListParams{Page: 1, Limit: 12},
			expectedOffset: 0,
			expectedLimit:  12,
			expectedPages:  3,
		},
		{
			name: "Success - third page offset",
			mockStore: &mockCatalogStore{
				products: []catalog.Product{{ID: 25, Name: "Товар 25"}},
				total:    25,
			},
			params:         ListParams{Page: 3, Limit: 12},
			expectedOffset: 24,
			expectedLimit:  12,
			expectedPages:  3,
		},
		{
			name: "Success - zero page and limit are clamped",
			mockStore: &mockCatalogStore{
				products: []catalog.Product{},
				total:    0,
			},
			params:         ListParams{Page: 0, Limit: 0},
			expectedOffset: 0,
			expectedLimit:  DefaultPageSize,
			expectedPages:  0,
		},
		{
			name: "Success - huge page number keeps the offset non-negative",
			mockStore: &mockCatalogStore{
				products: []catalog.Product{},
				total:    25,
			},
			params:         ListParams{Page: 300000000, Limit: 12},
			expectedOffset: math.MaxInt32,
			expectedLimit:  12,
			expectedPages:  3,
		},
		{
			name:        "Error - store failure",
			mockStore:   &mockCatalogStore{error: ErrStoreError},
			params:      ListParams{Page: 1, Limit: 12},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			page, err := service.ListProducts(context.Background(), tc.params)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, page)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedOffset, tc.mockStore.lastQuery.Offset)
			assert.Equal(t, tc.expectedLimit, tc.mockStore.lastQuery.Limit)
			assert.Equal(t, tc.expectedPages, page.Pagination.TotalPages)
			assert.Equal(t, tc.mockStore.total, page.Pagination.TotalItems)
			assert.Len(t, page.Products, len(tc.mockStore.products))
		})
	}
}

func Test_CatalogService_ListProducts_PassesFilterThrough(t *testing.T) {
	mockStore := &mockCatalogStore{products: []catalog.Product{}}
	service := NewService(mockStore)

	_, err := service.ListProducts(context.Background(), ListParams{
		Page:     2,
		Limit:    10,
		Search:   "товар 5",
		Category: "Категория 1",
		MinPrice: "500",
		MaxPrice: "1500",
	})

	require.NoError(t, err)
	filter := mockStore.lastQuery.Filter
	assert.Equal(t, "товар 5", filter.SearchQuery)
	assert.Equal(t, "Категория 1", filter.SelectedCategory)
	assert.Equal(t, "500", filter.MinPrice)
	assert.Equal(t, "1500", filter.MaxPrice)
}

func Test_CatalogService_FindByID(t *testing.T) {
	discount := 800.0
	testCases := []struct {
		name        string
		mockStore   *mockCatalogStore
		productID   int64
		expected    *ProductDto
		expectError error
	}{
		{
			name: "Success - product found",
			mockStore: &mockCatalogStore{
				product: catalog.Product{
					ID:            101,
					Name:          "Товар 101",
					Category:      "Категория 2",
					Price:         1000,
					DiscountPrice: &discount,
					Stock:         5,
				},
			},
			productID: 101,
			expected: &ProductDto{
				ID:            101,
				Name:          "Товар 101",
				Category:      "Категория 2",
				Price:         1000,
				DiscountPrice: &discount,
				Stock:         5,
			},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockCatalogStore{error: serrors.ErrProductNotFound},
			productID:   999,
			expected:    nil,
			expectError: serrors.ErrProductNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			found, err := service.FindByID(context.Background(), tc.productID)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_CatalogService_Categories(t *testing.T) {
	mockStore := &mockCatalogStore{
		categories: []catalog.Category{{ID: 2, Name: "Аксессуары"}, {ID: 1, Name: "Техника"}},
	}
	service := NewService(mockStore)

	categories, err := service.Categories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []CategoryDto{{ID: 2, Name: "Аксессуары"}, {ID: 1, Name: "Техника"}}, categories)
}
