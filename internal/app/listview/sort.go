package listview

import "sort"

// SortBy orders a copy of items by the given comparator, reversed when
// descending is set. Equal keys may reorder across calls; the backend
// remains the source of truth for canonical order.
func SortBy[T any](items []T, less func(a, b T) bool, descending bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	if less == nil {
		return out
	}
	sort.Slice(out, func(i, j int) bool {
		if descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// StringKey builds a locale-naive string comparator from a key extractor.
func StringKey[T any](key func(T) string) func(a, b T) bool {
	return func(a, b T) bool {
		return key(a) < key(b)
	}
}

// NumericKey builds a numeric comparator from a key extractor; a missing
// value compares as 0.
func NumericKey[T any](key func(T) (int, bool)) func(a, b T) bool {
	return func(a, b T) bool {
		av, ok := key(a)
		if !ok {
			av = 0
		}
		bv, ok := key(b)
		if !ok {
			bv = 0
		}
		return av < bv
	}
}
