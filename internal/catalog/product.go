// Package catalog implements the product browsing pipeline: the filter
// predicate, pagination window calculation, page-label generation and a
// debounced browsing view over an in-memory catalog snapshot.
package catalog

// Product is a single catalog entry. The catalog only ever contains
// products with positive stock; entries with stock <= 0 are dropped at
// load time.
type Product struct {
	ID            int64
	Name          string
	CategoryID    int64
	Category      string
	Price         float64
	DiscountPrice *float64
	Rating        float64
	Stock         int32
	Image         string
	Images        []string
	Description   string
}

// Category is a named product category.
type Category struct {
	ID   int64
	Name string
}

// EffectivePrice returns the price used for filtering and display:
// the discount price when present, the base price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}
