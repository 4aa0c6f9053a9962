package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sugrobov/storefront/internal/catalog"
	serrors "github.com/sugrobov/storefront/internal/errors"
)

// PgStore implements CatalogStore using PostgreSQL as the data store.
// Filter conditions are built dynamically but every user-supplied value
// travels as a bound parameter, never as query text.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of CatalogStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

const productColumns = `p.id, p.name, p.category_id, c.name, p.price, p.discount_price, p.rating, p.stock, p.image, p.description`

// buildFilter translates a FilterState into a WHERE clause over
// products p JOIN categories c. It mirrors catalog.FilterState.Matches:
// in-stock only, substring search on product or category name, exact
// category equality, and effective-price bounds where the discount price
// wins over the base price when present.
func buildFilter(f catalog.FilterState) (string, []any) {
	conditions := []string{"p.stock > 0"}
	var args []any

	next := func(arg any) string {
		args = append(args, arg)
		return fmt.Sprintf("$%d", len(args))
	}

	if query := strings.TrimSpace(f.SearchQuery); query != "" {
		p := next("%" + escapeLike(query) + "%")
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE %s OR c.name ILIKE %s)", p, p))
	}
	if f.SelectedCategory != "" {
		conditions = append(conditions, fmt.Sprintf("c.name = %s", next(f.SelectedCategory)))
	}
	if minPrice := strings.TrimSpace(f.MinPrice); minPrice != "" && isNumeric(minPrice) {
		p := next(minPrice)
		conditions = append(conditions,
			fmt.Sprintf("(p.discount_price >= %s::numeric OR (p.discount_price IS NULL AND p.price >= %s::numeric))", p, p))
	}
	if maxPrice := strings.TrimSpace(f.MaxPrice); maxPrice != "" && isNumeric(maxPrice) {
		p := next(maxPrice)
		conditions = append(conditions,
			fmt.Sprintf("(p.discount_price <= %s::numeric OR (p.discount_price IS NULL AND p.price <= %s::numeric))", p, p))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// isNumeric gates price bounds before they reach the database; a bound
// that is not a number is an inactive filter, not an error.
func isNumeric(raw string) bool {
	_, err := strconv.ParseFloat(raw, 64)
	return err == nil
}

// escapeLike neutralizes LIKE metacharacters so the search query matches
// substrings literally, exactly like the in-memory predicate does.
func escapeLike(raw string) string {
	raw = strings.ReplaceAll(raw, `\`, `\\`)
	raw = strings.ReplaceAll(raw, `%`, `\%`)
	raw = strings.ReplaceAll(raw, `_`, `\_`)
	return raw
}

// FindProducts returns one page of matching products and the total match
// count computed by a twin COUNT query over the same filter.
func (p *PgStore) FindProducts(ctx context.Context, query ProductQuery) ([]catalog.Product, int64, error) {
	where, args := buildFilter(query.Filter)

	listQuery := fmt.Sprintf(`SELECT %s
		FROM products p JOIN categories c ON p.category_id = c.id
		%s
		ORDER BY p.id
		LIMIT $%d OFFSET $%d`, productColumns, where, len(args)+1, len(args)+2)

	rows, err := p.db.Query(ctx, listQuery, append(args, query.Limit, query.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*)
		FROM products p JOIN categories c ON p.category_id = c.id
		%s`, where)

	var total int64
	if err := p.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	return products, total, nil
}

// FindProductByID retrieves an in-stock product by its identifier.
// Returns ErrProductNotFound if no such product exists.
func (p *PgStore) FindProductByID(ctx context.Context, id int64) (*catalog.Product, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM products p JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1 AND p.stock > 0`, productColumns)

	var product catalog.Product
	err := p.db.QueryRow(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.CategoryID, &product.Category,
		&product.Price, &product.DiscountPrice, &product.Rating,
		&product.Stock, &product.Image, &product.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, serrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return &product, nil
}

// FindCategories returns all categories ordered by name.
func (p *PgStore) FindCategories(ctx context.Context) ([]catalog.Category, error) {
	rows, err := p.db.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []catalog.Category
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	return categories, nil
}

func scanProducts(rows pgx.Rows) ([]catalog.Product, error) {
	defer rows.Close()

	products := make([]catalog.Product, 0)
	for rows.Next() {
		var product catalog.Product
		if err := rows.Scan(
			&product.ID, &product.Name, &product.CategoryID, &product.Category,
			&product.Price, &product.DiscountPrice, &product.Rating,
			&product.Stock, &product.Image, &product.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}
