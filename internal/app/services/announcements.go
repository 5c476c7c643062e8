package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecemk/classboard/internal/app/listview"
	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/app/models/dto"
	"github.com/ecemk/classboard/internal/pkg/apperrors"
	"github.com/ecemk/classboard/internal/pkg/backend"
)

// AnnouncementBackend is the slice of the upstream client the
// announcements view needs.
type AnnouncementBackend interface {
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	CreateAnnouncement(ctx context.Context, a *models.Announcement) (*models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, id int64, a *models.Announcement) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id int64) error
}

var _ AnnouncementBackend = (*backend.Client)(nil)

// AnnouncementViewService owns the announcement board view.
type AnnouncementViewService struct {
	backend AnnouncementBackend
	cache   *listview.Cache[models.Announcement]
	logger  zerolog.Logger
	now     func() time.Time
}

// NewAnnouncementViewService creates the announcements view service.
func NewAnnouncementViewService(b AnnouncementBackend, lgr zerolog.Logger) *AnnouncementViewService {
	s := &AnnouncementViewService{backend: b, logger: lgr, now: time.Now}
	s.cache = listview.NewCache(b.ListAnnouncements)
	return s
}

func announcementSearchFields(a models.Announcement) []string {
	return []string{a.Title, a.Content, a.AuthorName}
}

// working applies the query filters plus the viewer scoping: readers
// only see published, unexpired announcements addressed to their
// department or to everyone. A nil departmentID means an admin view
// with no scoping.
func (s *AnnouncementViewService) working(ctx context.Context, query dto.ListQuery, departmentID *int64, scoped bool) ([]models.Announcement, bool) {
	stale := false
	if err := s.cache.Fetch(ctx); err != nil {
		stale = s.cache.Len() > 0
		s.logger.Warn().Err(err).Msg("Announcement fetch failed, serving cached data")
	}

	fs := listview.NewFilterSet[models.Announcement]()
	fs.Set("search", listview.Substring(query.Search, announcementSearchFields))
	fs.Set("priority", listview.Equals(query.Type, func(a models.Announcement) string { return string(a.Priority) }))
	if scoped {
		now := s.now()
		fs.Set("visibility", func(a models.Announcement) bool {
			return a.Published && !a.Expired(now) && a.VisibleTo(departmentID)
		})
	}

	working := fs.Apply(s.cache.Items())
	return listview.SortBy(working, announcementComparator(query.SortBy), query.Descending()), stale
}

// List returns one page of announcements scoped to the viewer.
func (s *AnnouncementViewService) List(ctx context.Context, query dto.ListQuery, departmentID *int64, scoped bool) ([]models.Announcement, dto.PaginationInfo, bool) {
	working, stale := s.working(ctx, query, departmentID, scoped)
	page, totalPages := listview.Page(working, query.Page, query.Size)
	info := dto.PaginationInfo{
		CurrentPage: listview.ClampPage(query.Page, totalPages),
		TotalPages:  totalPages,
		PageSize:    query.Size,
		TotalItems:  len(working),
	}
	return page, info, stale
}

func announcementComparator(sortBy string) func(a, b models.Announcement) bool {
	switch sortBy {
	case "title":
		return listview.StringKey(func(a models.Announcement) string { return a.Title })
	case "priority":
		return listview.StringKey(func(a models.Announcement) string { return string(a.Priority) })
	default:
		return listview.NumericKey(func(a models.Announcement) (int, bool) { return int(a.CreatedAt.Unix()), true })
	}
}

// Create validates and publishes a new announcement.
func (s *AnnouncementViewService) Create(ctx context.Context, a *models.Announcement) (*models.Announcement, error) {
	if err := a.Validate(); err != nil {
		return nil, apperrors.New(apperrors.ErrValidationFailed, err.Error())
	}
	created, err := s.backend.CreateAnnouncement(ctx, a)
	if err != nil {
		return nil, err
	}
	s.cache.SetSuccess("Announcement created")
	_ = s.cache.Fetch(ctx)
	return created, nil
}

// Update writes an announcement change upstream and re-fetches.
func (s *AnnouncementViewService) Update(ctx context.Context, id int64, a *models.Announcement) (*models.Announcement, error) {
	if err := a.Validate(); err != nil {
		return nil, apperrors.New(apperrors.ErrValidationFailed, err.Error())
	}
	updated, err := s.backend.UpdateAnnouncement(ctx, id, a)
	if err != nil {
		return nil, err
	}
	s.cache.SetSuccess("Announcement updated")
	_ = s.cache.Fetch(ctx)
	return updated, nil
}

// Delete removes an announcement upstream and re-fetches.
func (s *AnnouncementViewService) Delete(ctx context.Context, id int64) error {
	if err := s.backend.DeleteAnnouncement(ctx, id); err != nil {
		return err
	}
	s.cache.SetSuccess("Announcement deleted")
	_ = s.cache.Fetch(ctx)
	return nil
}
