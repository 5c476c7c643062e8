package listview

import (
	"reflect"
	"testing"
)

type row struct {
	name     string
	capacity *int
}

func TestSortToggleReverses(t *testing.T) {
	items := []row{
		{name: "delta"}, {name: "alpha"}, {name: "echo"}, {name: "bravo"}, {name: "charlie"},
	}
	less := StringKey(func(r row) string { return r.name })

	asc := SortBy(items, less, false)
	desc := SortBy(items, less, true)

	for i := range asc {
		if asc[i].name != desc[len(desc)-1-i].name {
			t.Fatalf("descending sort is not the reverse of ascending: %v vs %v", asc, desc)
		}
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	items := []row{{name: "b"}, {name: "a"}}
	original := make([]row, len(items))
	copy(original, items)

	SortBy(items, StringKey(func(r row) string { return r.name }), false)

	if !reflect.DeepEqual(items, original) {
		t.Errorf("SortBy mutated its input")
	}
}

func TestNumericKeyMissingValueIsZero(t *testing.T) {
	ten, thirty := 10, 30
	items := []row{
		{name: "big", capacity: &thirty},
		{name: "none"},
		{name: "small", capacity: &ten},
	}
	less := NumericKey(func(r row) (int, bool) {
		if r.capacity == nil {
			return 0, false
		}
		return *r.capacity, true
	})

	got := SortBy(items, less, false)
	want := []string{"none", "small", "big"}
	for i, name := range want {
		if got[i].name != name {
			t.Fatalf("ascending capacity order = %v, want %v", got, want)
		}
	}
}
