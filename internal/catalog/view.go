package catalog

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period after the last filter change before
// the filtered set is recomputed.
const DefaultDebounce = 300 * time.Millisecond

// View is a browsing session over a catalog snapshot: a FilterState plus
// the filtered set derived from it. Filter changes do not recompute
// immediately; a recompute is scheduled after a debounce delay and each
// new change replaces the previously scheduled one, so only the last
// scheduled recompute runs. Reading a page always recomputes first when
// the filtered set is stale, so pagination is never computed against an
// outdated filtered set.
//
// The snapshot is loaded once and treated as read-only afterwards.
type View struct {
	mu       sync.Mutex
	items    []Product
	filtered []Product
	state    FilterState
	stale    bool
	debounce time.Duration
	timer    *time.Timer
}

// NewView creates a browsing session over the given snapshot. Products
// with stock <= 0 are excluded from the snapshot entirely. The initial
// state has no active filters and shows page 1.
func NewView(items []Product, itemsPerPage int) *View {
	return NewViewDebounced(items, itemsPerPage, DefaultDebounce)
}

// NewViewDebounced is NewView with an explicit debounce delay.
func NewViewDebounced(items []Product, itemsPerPage int, debounce time.Duration) *View {
	inStock := make([]Product, 0, len(items))
	for _, p := range items {
		if p.Stock > 0 {
			inStock = append(inStock, p)
		}
	}
	return &View{
		items:    inStock,
		filtered: inStock,
		state:    FilterState{CurrentPage: 1, ItemsPerPage: itemsPerPage},
		debounce: debounce,
	}
}

// SetSearch updates the search query, resets the page to 1 and schedules
// a recompute.
func (v *View) SetSearch(query string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = v.state.WithSearch(query)
	v.scheduleLocked()
}

// SetCategory updates the category filter, resets the page to 1 and
// schedules a recompute.
func (v *View) SetCategory(category string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = v.state.WithCategory(category)
	v.scheduleLocked()
}

// SetPriceRange updates both price bounds, resets the page to 1 and
// schedules a recompute.
func (v *View) SetPriceRange(minPrice, maxPrice string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = v.state.WithPriceRange(minPrice, maxPrice)
	v.scheduleLocked()
}

// SetPage moves to the given page without touching the filters.
func (v *View) SetPage(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = v.state.WithPage(page)
}

// State returns a copy of the current filter state.
func (v *View) State() FilterState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Page returns the current page window, the total page count and the
// number of filtered items. A pending recompute is applied first.
func (v *View) Page() ([]Product, int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.recomputeLocked()
	window, totalPages := Paginate(v.filtered, v.state.CurrentPage, v.state.ItemsPerPage)
	return window, totalPages, len(v.filtered)
}

// Labels returns the page-selector labels for the current position.
func (v *View) Labels() []PageLabel {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.recomputeLocked()
	totalPages := TotalPages(int64(len(v.filtered)), v.state.ItemsPerPage)
	return PageLabels(v.state.CurrentPage, totalPages)
}

// Stop cancels any pending recompute. The view remains usable; the next
// page read recomputes synchronously.
func (v *View) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}

// scheduleLocked marks the filtered set stale and replaces the pending
// debounce timer, so only the last scheduled recompute fires.
func (v *View) scheduleLocked() {
	v.stale = true
	if v.timer != nil {
		v.timer.Stop()
	}
	v.timer = time.AfterFunc(v.debounce, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.recomputeLocked()
	})
}

func (v *View) recomputeLocked() {
	if !v.stale {
		return
	}
	v.filtered = v.state.Apply(v.items)
	v.stale = false
}
