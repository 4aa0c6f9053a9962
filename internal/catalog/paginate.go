package catalog

// TotalPages returns the number of pages needed for totalItems at the
// given page size. Zero items means zero pages.
func TotalPages(totalItems int64, itemsPerPage int) int {
	if totalItems <= 0 || itemsPerPage <= 0 {
		return 0
	}
	return int((totalItems + int64(itemsPerPage) - 1) / int64(itemsPerPage))
}

// Paginate returns the window of filtered items belonging to currentPage
// together with the total page count. The window is clipped to the
// available items, so an out-of-range page yields an empty window rather
// than an error; rejecting such pages is the caller's concern.
func Paginate(filtered []Product, currentPage, itemsPerPage int) ([]Product, int) {
	totalPages := TotalPages(int64(len(filtered)), itemsPerPage)
	if totalPages == 0 {
		return nil, 0
	}
	start := (currentPage - 1) * itemsPerPage
	if start < 0 || start >= len(filtered) {
		return nil, totalPages
	}
	end := min(start+itemsPerPage, len(filtered))
	return filtered[start:end], totalPages
}

// PageLabel is one entry of a page-selector control: either a page number
// or a non-selectable ellipsis marker.
type PageLabel struct {
	Number   int
	Ellipsis bool
}

func page(n int) PageLabel { return PageLabel{Number: n} }
func ellipsis() PageLabel { return PageLabel{Ellipsis: true} }

func pages(from, to int) []PageLabel {
	labels := make([]PageLabel, 0, to-from+1)
	for n := from; n <= to; n++ {
		labels = append(labels, page(n))
	}
	return labels
}

// PageLabels produces the ordered label sequence for a page selector:
//
//	totalPages <= 5:              1 .. totalPages
//	currentPage <= 3:             1 2 3 4 ... N
//	currentPage >= totalPages-2:  1 ... N-3 N-2 N-1 N
//	otherwise:                    1 ... c-1 c c+1 ... N
func PageLabels(currentPage, totalPages int) []PageLabel {
	switch {
	case totalPages <= 0:
		return nil
	case totalPages <= 5:
		return pages(1, totalPages)
	case currentPage <= 3:
		labels := pages(1, 4)
		return append(labels, ellipsis(), page(totalPages))
	case currentPage >= totalPages-2:
		labels := []PageLabel{page(1), ellipsis()}
		return append(labels, pages(totalPages-3, totalPages)...)
	default:
		labels := []PageLabel{page(1), ellipsis()}
		labels = append(labels, pages(currentPage-1, currentPage+1)...)
		return append(labels, ellipsis(), page(totalPages))
	}
}
