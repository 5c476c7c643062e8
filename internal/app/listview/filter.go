package listview

import (
	"strconv"
	"strings"
)

// FilterAll is the sentinel value that deactivates an enum filter.
const FilterAll = "all"

// Predicate is a boolean test over one entity.
type Predicate[T any] func(T) bool

// FilterSet maps filter names to predicates and composes them by AND.
// A nil predicate deactivates its filter, so constructors below return
// nil for empty or sentinel inputs and callers can Set unconditionally.
type FilterSet[T any] struct {
	preds map[string]Predicate[T]
}

// NewFilterSet creates an empty filter set.
func NewFilterSet[T any]() *FilterSet[T] {
	return &FilterSet[T]{preds: make(map[string]Predicate[T])}
}

// Set installs or deactivates the named filter.
func (s *FilterSet[T]) Set(name string, p Predicate[T]) {
	if p == nil {
		delete(s.preds, name)
		return
	}
	s.preds[name] = p
}

// Clear deactivates the named filter.
func (s *FilterSet[T]) Clear(name string) {
	delete(s.preds, name)
}

// ClearAll deactivates every filter.
func (s *FilterSet[T]) ClearAll() {
	s.preds = make(map[string]Predicate[T])
}

// Active returns the number of active filters.
func (s *FilterSet[T]) Active() int {
	return len(s.preds)
}

// Apply returns the subsequence of items for which every active filter
// holds. With no active filters the input is returned unchanged.
func (s *FilterSet[T]) Apply(items []T) []T {
	if len(s.preds) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, p := range s.preds {
			if !p(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}

// Substring builds a case-insensitive substring predicate over the
// fields produced by extract. An empty query deactivates the filter.
func Substring[T any](query string, extract func(T) []string) Predicate[T] {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	return func(item T) bool {
		for _, field := range extract(item) {
			if strings.Contains(strings.ToLower(field), query) {
				return true
			}
		}
		return false
	}
}

// Equals builds an exact-equality predicate for enum filters. An empty
// value or the "all" sentinel deactivates the filter.
func Equals[T any](value string, extract func(T) string) Predicate[T] {
	if value == "" || value == FilterAll {
		return nil
	}
	return func(item T) bool {
		return extract(item) == value
	}
}

// Range builds an inclusive numeric range predicate. Bounds arrive as
// strings straight from the query: the empty string means "no bound",
// while a literal "0" is a real bound. Items with no value count as 0.
func Range[T any](minStr, maxStr string, extract func(T) (int, bool)) Predicate[T] {
	minStr = strings.TrimSpace(minStr)
	maxStr = strings.TrimSpace(maxStr)
	if minStr == "" && maxStr == "" {
		return nil
	}

	hasMin, hasMax := false, false
	var min, max int
	if minStr != "" {
		if v, err := strconv.Atoi(minStr); err == nil {
			min, hasMin = v, true
		}
	}
	if maxStr != "" {
		if v, err := strconv.Atoi(maxStr); err == nil {
			max, hasMax = v, true
		}
	}
	if !hasMin && !hasMax {
		return nil
	}

	return func(item T) bool {
		v, ok := extract(item)
		if !ok {
			v = 0
		}
		if hasMin && v < min {
			return false
		}
		if hasMax && v > max {
			return false
		}
		return true
	}
}

// ContainsAll builds a set-containment predicate: every wanted element
// must be present (AND semantics). An empty selection deactivates the
// filter.
func ContainsAll[T any](want []string, has func(T, string) bool) Predicate[T] {
	if len(want) == 0 {
		return nil
	}
	return func(item T) bool {
		for _, w := range want {
			if !has(item, w) {
				return false
			}
		}
		return true
	}
}
