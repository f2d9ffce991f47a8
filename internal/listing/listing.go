// Package listing holds the pure transforms applied to in-memory content
// slices before display: ordering, filtering, and pagination.
package listing

import "sort"

// Ellipsis marks a gap in a PageNumbers sequence.
const Ellipsis = -1

// SortByOrder returns a copy of items stably sorted ascending by the value
// order reports. Callers map a missing order to zero, so unordered documents
// group at the front in their original relative order.
func SortByOrder[T any](items []T, order func(T) int) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return order(sorted[i]) < order(sorted[j])
	})
	return sorted
}

// Filter returns the items for which keep is true, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// Paginate slices items into the requested page. The page number is clamped
// into the valid range, so asking for page 0 yields the first page and
// asking past the end yields the last. An empty input produces a single
// empty page.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = 1
	}

	totalItems := len(items)
	totalPages := (totalItems + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     page,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// PageNumbers produces the page-control sequence for a pager: always the
// first and last page, the current page and its neighbours, and at most one
// Ellipsis per side. PageNumbers(10, 5) yields 1, Ellipsis, 4, 5, 6,
// Ellipsis, 10.
func PageNumbers(totalPages, current int) []int {
	if totalPages < 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	shown := func(p int) bool {
		if p == 1 || p == totalPages {
			return true
		}
		return p >= current-1 && p <= current+1
	}

	var out []int
	gap := false
	for p := 1; p <= totalPages; p++ {
		if shown(p) {
			if gap {
				out = append(out, Ellipsis)
				gap = false
			}
			out = append(out, p)
		} else {
			gap = true
		}
	}
	return out
}
