// Package service provides the implementation of catalog business logic.
package service

import (
	"context"
	"fmt"
	"math"

	"github.com/sugrobov/storefront/internal/catalog"
	"github.com/sugrobov/storefront/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// DefaultPageSize is the number of products per page when the caller does
// not ask for a specific limit.
const DefaultPageSize = 12

// CatalogService defines the methods for browsing the catalog.
// It abstracts the underlying business logic and data access.
type CatalogService interface {
	// ListProducts returns one page of products matching the filters
	// together with pagination metadata.
	ListProducts(ctx context.Context, params ListParams) (*ProductPageDto, error)

	// FindByID retrieves a single in-stock product.
	// Returns ErrProductNotFound if no such product exists.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// Categories returns all categories ordered by name.
	Categories(ctx context.Context) ([]CategoryDto, error)
}

// Service implements CatalogService on top of a CatalogStore.
type Service struct {
	repository  store.CatalogStore
	listCounter metric.Int64Counter
}

// NewService creates a new instance of CatalogService with the provided repository.
func NewService(repo store.CatalogStore) *Service {
	meter := otel.Meter("storefront")
	listCounter, err := meter.Int64Counter("catalog_pages_served", metric.WithDescription("Total number of catalog pages served"))
	if err != nil {
		panic(fmt.Sprintf("failed to create catalog_pages_served counter: %v", err))
	}
	return &Service{
		repository:  repo,
		listCounter: listCounter,
	}
}

// ListParams carries the untrusted listing parameters. Price bounds stay
// raw strings; non-numeric values simply deactivate the bound.
type ListParams struct {
	Page     int
	Limit    int
	Search   string
	Category string
	MinPrice string
	MaxPrice string
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice"`
	Rating        float64  `json:"rating"`
	Stock         int32    `json:"stock"`
	Image         string   `json:"image"`
	Images        []string `json:"images,omitempty"`
	Description   string   `json:"description"`
}

// PaginationDto describes the position of a product page within the
// filtered result set.
type PaginationDto struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
}

// ProductPageDto is one page of products plus its pagination metadata.
type ProductPageDto struct {
	Products   []ProductDto  `json:"products"`
	Pagination PaginationDto `json:"pagination"`
}

// CategoryDto represents the data transfer object for a category.
type CategoryDto struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListProducts fetches a page of matching products. Page and limit are
// clamped to sane values rather than rejected; out-of-range pages come
// back empty with the real total.
func (s *Service) ListProducts(ctx context.Context, params ListParams) (*ProductPageDto, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}
	// Computed in int64 and capped: a page far beyond any real catalog
	// must stay a valid, empty window, not overflow into a negative offset.
	offset := int64(page-1) * int64(limit)
	if offset > math.MaxInt32 {
		offset = math.MaxInt32
	}

	query := store.ProductQuery{
		Filter: catalog.FilterState{
			SearchQuery:      params.Search,
			SelectedCategory: params.Category,
			MinPrice:         params.MinPrice,
			MaxPrice:         params.MaxPrice,
		},
		Offset: int32(offset),
		Limit:  int32(limit),
	}

	products, total, err := s.repository.FindProducts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	s.listCounter.Add(ctx, 1)

	productDTOs := make([]ProductDto, len(products))
	for i := range products {
		productDTOs[i] = *toDto(&products[i])
	}

	return &ProductPageDto{
		Products: productDTOs,
		Pagination: PaginationDto{
			CurrentPage: page,
			TotalPages:  catalog.TotalPages(total, limit),
			TotalItems:  total,
		},
	}, nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no in-stock product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return toDto(product), nil
}

// Categories retrieves all categories ordered by name.
func (s *Service) Categories(ctx context.Context) ([]CategoryDto, error) {
	categories, err := s.repository.FindCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	categoryDTOs := make([]CategoryDto, len(categories))
	for i, c := range categories {
		categoryDTOs[i] = CategoryDto{ID: c.ID, Name: c.Name}
	}
	return categoryDTOs, nil
}

// toDto converts a catalog.Product to a ProductDto.
func toDto(product *catalog.Product) *ProductDto {
	return &ProductDto{
		ID:            product.ID,
		Name:          product.Name,
		Category:      product.Category,
		Price:         product.Price,
		DiscountPrice: product.DiscountPrice,
		Rating:        product.Rating,
		Stock:         product.Stock,
		Image:         product.Image,
		Images:        product.Images,
		Description:   product.Description,
	}
}
