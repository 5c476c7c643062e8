package listview

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/ecemk/classboard/internal/app/models"
)

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

// labRooms builds 25 rooms, 7 of them labs. Only labs 1..3 carry "lab"
// as a substring of their number; the rest are labs by type only.
func labRooms() []models.Room {
	rooms := make([]models.Room, 0, 25)
	for i := 1; i <= 18; i++ {
		rooms = append(rooms, models.Room{
			ID:     int64(i),
			Number: fmt.Sprintf("C-%02d", i),
			Type:   models.RoomClassroom,
		})
	}
	for i := 1; i <= 3; i++ {
		rooms = append(rooms, models.Room{
			ID:     int64(18 + i),
			Number: fmt.Sprintf("LAB-%d", i),
			Type:   models.RoomLab,
		})
	}
	for i := 4; i <= 7; i++ {
		rooms = append(rooms, models.Room{
			ID:     int64(18 + i),
			Number: fmt.Sprintf("B-%02d", i),
			Type:   models.RoomLab,
		})
	}
	return rooms
}

func roomSearchFields(r models.Room) []string {
	fields := []string{r.Number}
	if r.Name != nil {
		fields = append(fields, *r.Name)
	}
	if r.Block != nil {
		fields = append(fields, r.Block.Name)
	}
	return fields
}

func TestSearchIsSubstringNotTypeBased(t *testing.T) {
	rooms := labRooms()

	fs := NewFilterSet[models.Room]()
	fs.Set("search", Substring("lab", roomSearchFields))

	got := fs.Apply(rooms)

	// 7 rooms are labs by type, but only 3 carry "lab" in a searchable
	// field; the search box alone must match those 3.
	if len(got) != 3 {
		t.Fatalf("Apply() returned %d rooms, want 3", len(got))
	}
	for _, r := range got {
		if r.Type != models.RoomLab {
			t.Errorf("room %s matched search but is %s", r.Number, r.Type)
		}
	}

	// The type filter is the one that yields all 7.
	fs.ClearAll()
	fs.Set("type", Equals(string(models.RoomLab), func(r models.Room) string { return string(r.Type) }))
	if got := fs.Apply(rooms); len(got) != 7 {
		t.Fatalf("type filter returned %d rooms, want 7", len(got))
	}
}

func TestFilteredResultIsSubset(t *testing.T) {
	rooms := labRooms()
	byID := make(map[int64]bool, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = true
	}

	tests := []struct {
		name string
		prep func(fs *FilterSet[models.Room])
	}{
		{name: "search only", prep: func(fs *FilterSet[models.Room]) {
			fs.Set("search", Substring("b-0", roomSearchFields))
		}},
		{name: "type and capacity", prep: func(fs *FilterSet[models.Room]) {
			fs.Set("type", Equals("lab", func(r models.Room) string { return string(r.Type) }))
			fs.Set("capacity", Range("1", "50", func(r models.Room) (int, bool) {
				if r.Capacity == nil {
					return 0, false
				}
				return *r.Capacity, true
			}))
		}},
		{name: "facilities", prep: func(fs *FilterSet[models.Room]) {
			fs.Set("facilities", ContainsAll([]string{"projector"}, func(r models.Room, f string) bool {
				return r.HasFacilities([]string{f})
			}))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFilterSet[models.Room]()
			tt.prep(fs)
			for _, r := range fs.Apply(rooms) {
				if !byID[r.ID] {
					t.Errorf("filter introduced room %d not present in the cache", r.ID)
				}
			}
		})
	}
}

func TestClearingFiltersRestoresCollection(t *testing.T) {
	rooms := labRooms()

	fs := NewFilterSet[models.Room]()
	fs.Set("search", Substring("lab", roomSearchFields))
	fs.Set("type", Equals("lab", func(r models.Room) string { return string(r.Type) }))
	if got := fs.Apply(rooms); len(got) == len(rooms) {
		t.Fatalf("filters had no effect; scenario is broken")
	}

	fs.ClearAll()
	got := fs.Apply(rooms)
	if !reflect.DeepEqual(got, rooms) {
		t.Errorf("clearing all filters did not restore the cached collection")
	}
}

func TestInactiveFiltersAreSkipped(t *testing.T) {
	tests := []struct {
		name string
		pred Predicate[models.Room]
	}{
		{name: "empty search", pred: Substring("", roomSearchFields)},
		{name: "blank search", pred: Substring("   ", roomSearchFields)},
		{name: "all sentinel", pred: Equals(FilterAll, func(r models.Room) string { return string(r.Type) })},
		{name: "empty enum", pred: Equals("", func(r models.Room) string { return string(r.Type) })},
		{name: "empty range", pred: Range("", "", func(r models.Room) (int, bool) { return 0, false })},
		{name: "no facilities", pred: ContainsAll(nil, func(r models.Room, f string) bool { return false })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.pred != nil {
				t.Errorf("predicate should be nil (inactive)")
			}
		})
	}
}

func TestCapacityZeroIsARealBound(t *testing.T) {
	rooms := []models.Room{
		{ID: 1, Number: "A-1", Capacity: intptr(30)},
		{ID: 2, Number: "A-2"}, // no capacity, counts as 0
	}
	capacity := func(r models.Room) (int, bool) {
		if r.Capacity == nil {
			return 0, false
		}
		return *r.Capacity, true
	}

	// min "" means no minimum at all.
	if p := Range("", "", capacity); p != nil {
		t.Fatalf("empty bounds must deactivate the filter")
	}

	// min "0" is an active bound that everything >= 0 passes.
	fs := NewFilterSet[models.Room]()
	fs.Set("capacity", Range("0", "", capacity))
	if got := fs.Apply(rooms); len(got) != 2 {
		t.Errorf("min 0 should pass every room, got %d", len(got))
	}

	// min "1" excludes the room with no capacity.
	fs.Set("capacity", Range("1", "", capacity))
	if got := fs.Apply(rooms); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("min 1 should keep only the 30-seat room, got %v", got)
	}
}

func TestFacilitiesRequireEverySelection(t *testing.T) {
	rooms := []models.Room{
		{ID: 1, Number: "L-1", Facilities: []string{"projector", "whiteboard", "ac"}},
		{ID: 2, Number: "L-2", Facilities: []string{"projector"}},
		{ID: 3, Number: "L-3", Facilities: []string{"whiteboard"}},
	}
	fs := NewFilterSet[models.Room]()
	fs.Set("facilities", ContainsAll([]string{"projector", "whiteboard"}, func(r models.Room, f string) bool {
		return r.HasFacilities([]string{f})
	}))

	got := fs.Apply(rooms)
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("AND semantics violated: got %v", got)
	}
}
