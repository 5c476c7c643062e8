package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ecemk/classboard/internal/app/listview"
	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/app/models/dto"
	"github.com/ecemk/classboard/internal/pkg/backend"
)

// RoomBackend is the slice of the upstream client the rooms view needs.
type RoomBackend interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
	CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error)
	UpdateRoom(ctx context.Context, id int64, room *models.Room) (*models.Room, error)
	DeleteRoom(ctx context.Context, id int64) error
	ListBlocks(ctx context.Context) ([]models.Block, error)
}

var _ RoomBackend = (*backend.Client)(nil)

// RoomViewService owns the rooms list view: one fetch cache plus the
// filter/sort/paginate composition every request re-derives from it.
type RoomViewService struct {
	backend RoomBackend
	cache   *listview.Cache[models.Room]
	logger  zerolog.Logger
}

// NewRoomViewService creates the rooms view service.
func NewRoomViewService(b RoomBackend, lgr zerolog.Logger) *RoomViewService {
	s := &RoomViewService{backend: b, logger: lgr}
	s.cache = listview.NewCache(b.ListRooms)
	return s
}

// roomSearchFields lists the fields the free-text search box scans.
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

func roomCapacity(r models.Room) (int, bool) {
	if r.Capacity == nil {
		return 0, false
	}
	return *r.Capacity, true
}

// working re-fetches the room collection and returns the filtered and
// sorted list for the query. A failed fetch serves the previous items
// marked stale instead of blanking the view.
func (s *RoomViewService) working(ctx context.Context, query dto.ListQuery) ([]models.Room, bool) {
	stale := false
	if err := s.cache.Fetch(ctx); err != nil {
		stale = s.cache.Len() > 0
		s.logger.Warn().Err(err).Msg("Room fetch failed, serving cached data")
	}

	fs := listview.NewFilterSet[models.Room]()
	fs.Set("search", listview.Substring(query.Search, roomSearchFields))
	fs.Set("type", listview.Equals(query.Type, func(r models.Room) string { return string(r.Type) }))
	fs.Set("status", listview.Equals(query.Status, func(r models.Room) string {
		if r.Available {
			return "available"
		}
		return "unavailable"
	}))
	fs.Set("capacity", listview.Range(query.MinCapacity, query.MaxCapacity, roomCapacity))
	fs.Set("facilities", listview.ContainsAll(splitFacilities(query.Facilities), func(r models.Room, f string) bool {
		return r.HasFacilities([]string{f})
	}))

	working := fs.Apply(s.cache.Items())
	return listview.SortBy(working, roomComparator(query.SortBy), query.Descending()), stale
}

// List returns one page of the filtered room collection.
func (s *RoomViewService) List(ctx context.Context, query dto.ListQuery) ([]models.Room, dto.PaginationInfo, bool) {
	working, stale := s.working(ctx, query)
	page, totalPages := listview.Page(working, query.Page, query.Size)
	info := dto.PaginationInfo{
		CurrentPage: listview.ClampPage(query.Page, totalPages),
		TotalPages:  totalPages,
		PageSize:    query.Size,
		TotalItems:  len(working),
	}
	return page, info, stale
}

// Filtered returns the full filtered and sorted list, used by the
// export endpoints which never paginate.
func (s *RoomViewService) Filtered(ctx context.Context, query dto.ListQuery) []models.Room {
	working, _ := s.working(ctx, query)
	return working
}

func roomComparator(sortBy string) func(a, b models.Room) bool {
	switch sortBy {
	case "capacity":
		return listview.NumericKey(roomCapacity)
	case "type":
		return listview.StringKey(func(r models.Room) string { return string(r.Type) })
	default:
		return listview.StringKey(func(r models.Room) string { return r.Number })
	}
}

// Create writes a room upstream and re-fetches the collection.
func (s *RoomViewService) Create(ctx context.Context, room *models.Room) (*models.Room, error) {
	created, err := s.backend.CreateRoom(ctx, room)
	if err != nil {
		return nil, err
	}
	s.cache.SetSuccess("Room created")
	_ = s.cache.Fetch(ctx)
	return created, nil
}

// Update writes a room change upstream and re-fetches the collection.
func (s *RoomViewService) Update(ctx context.Context, id int64, room *models.Room) (*models.Room, error) {
	updated, err := s.backend.UpdateRoom(ctx, id, room)
	if err != nil {
		return nil, err
	}
	s.cache.SetSuccess("Room updated")
	_ = s.cache.Fetch(ctx)
	return updated, nil
}

// Delete removes a room upstream and re-fetches the collection.
func (s *RoomViewService) Delete(ctx context.Context, id int64) error {
	if err := s.backend.DeleteRoom(ctx, id); err != nil {
		return err
	}
	s.cache.SetSuccess("Room deleted")
	_ = s.cache.Fetch(ctx)
	return nil
}

// Blocks lists the building blocks for the room form's selector.
func (s *RoomViewService) Blocks(ctx context.Context) ([]models.Block, error) {
	return s.backend.ListBlocks(ctx)
}

// splitFacilities turns the comma-separated facilities query parameter
// into a clean selection list.
func splitFacilities(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
