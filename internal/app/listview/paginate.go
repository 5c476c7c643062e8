package listview

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // pages are 1-based
)

// Page slices a filtered and sorted collection into the requested page.
// totalPages = ceil(len(items)/size). A page number outside
// [1, totalPages] is clamped, so shrinking the result set with a filter
// can never leave a view stranded past the end.
func Page[T any](items []T, page, size int) (slice []T, totalPages int) {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}

	totalPages = int(math.Ceil(float64(len(items)) / float64(size)))
	if totalPages == 0 {
		return []T{}, 0
	}

	if page < DefaultPage {
		page = DefaultPage
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}

// ClampPage normalizes a 1-based page number against a page count. An
// empty result set clamps to the first page, never past it.
func ClampPage(page, totalPages int) int {
	if page < DefaultPage {
		page = DefaultPage
	}
	if totalPages == 0 {
		return DefaultPage
	}
	if page > totalPages {
		page = totalPages
	}
	return page
}
