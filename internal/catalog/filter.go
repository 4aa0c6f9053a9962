package catalog

import (
	"strconv"
	"strings"
)

// FilterState captures the browsing filters and the pagination cursor.
// Price bounds are kept as raw strings: a value that does not parse as a
// number means "bound not set", never an error.
type FilterState struct {
	SearchQuery      string
	SelectedCategory string
	MinPrice         string
	MaxPrice         string
	CurrentPage      int
	ItemsPerPage     int
}

// WithSearch returns a copy with the search query replaced and the page
// reset to 1.
func (f FilterState) WithSearch(query string) FilterState {
	f.SearchQuery = query
	f.CurrentPage = 1
	return f
}

// WithCategory returns a copy with the category filter replaced and the
// page reset to 1. An empty category means "no filter".
func (f FilterState) WithCategory(category string) FilterState {
	f.SelectedCategory = category
	f.CurrentPage = 1
	return f
}

// WithPriceRange returns a copy with both price bounds replaced and the
// page reset to 1.
func (f FilterState) WithPriceRange(minPrice, maxPrice string) FilterState {
	f.MinPrice = minPrice
	f.MaxPrice = maxPrice
	f.CurrentPage = 1
	return f
}

// WithPage returns a copy positioned on the given page. Changing the page
// does not touch the filters.
func (f FilterState) WithPage(page int) FilterState {
	f.CurrentPage = page
	return f
}

// Matches reports whether the product passes every active filter:
//   - category: exact, case-sensitive equality when a category is selected
//   - search: case-insensitive substring match against name or category
//   - min/max price: inclusive bounds against the effective price
//
// A blank search query and non-numeric bounds are inactive filters.
// MinPrice > MaxPrice is not corrected and simply matches nothing.
func (f FilterState) Matches(p *Product) bool {
	if f.SelectedCategory != "" && p.Category != f.SelectedCategory {
		return false
	}
	if query := strings.TrimSpace(f.SearchQuery); query != "" {
		query = strings.ToLower(query)
		if !strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Category), query) {
			return false
		}
	}
	if minPrice, ok := parseBound(f.MinPrice); ok && p.EffectivePrice() < minPrice {
		return false
	}
	if maxPrice, ok := parseBound(f.MaxPrice); ok && p.EffectivePrice() > maxPrice {
		return false
	}
	return true
}

// Apply filters the catalog slice through Matches, preserving order.
// The input slice is never mutated.
func (f FilterState) Apply(items []Product) []Product {
	filtered := make([]Product, 0, len(items))
	for i := range items {
		if f.Matches(&items[i]) {
			filtered = append(filtered, items[i])
		}
	}
	return filtered
}

// parseBound interprets a raw price bound. The second return value is
// false when the bound is empty or not a number.
func parseBound(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
