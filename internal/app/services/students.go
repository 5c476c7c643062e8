package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ecemk/classboard/internal/app/listview"
	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/app/models/dto"
	"github.com/ecemk/classboard/internal/pkg/backend"
)

// StudentBackend is the slice of the upstream client the students view
// needs.
type StudentBackend interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	UpdateStudent(ctx context.Context, id int64, student *models.Student) (*models.Student, error)
}

var _ StudentBackend = (*backend.Client)(nil)

// StudentViewService owns the student roster list view.
type StudentViewService struct {
	backend StudentBackend
	cache   *listview.Cache[models.Student]
	logger  zerolog.Logger
}

// NewStudentViewService creates the students view service.
func NewStudentViewService(b StudentBackend, lgr zerolog.Logger) *StudentViewService {
	s := &StudentViewService{backend: b, logger: lgr}
	s.cache = listview.NewCache(b.ListStudents)
	return s
}

func studentSearchFields(st models.Student) []string {
	return []string{st.FullName, st.IDNumber, st.Email, st.Section}
}

func (s *StudentViewService) working(ctx context.Context, query dto.ListQuery) ([]models.Student, bool) {
	stale := false
	if err := s.cache.Fetch(ctx); err != nil {
		stale = s.cache.Len() > 0
		s.logger.Warn().Err(err).Msg("Student fetch failed, serving cached data")
	}

	fs := listview.NewFilterSet[models.Student]()
	fs.Set("search", listview.Substring(query.Search, studentSearchFields))
	fs.Set("status", listview.Equals(query.Status, func(st models.Student) string { return string(st.Status) }))

	working := fs.Apply(s.cache.Items())
	return listview.SortBy(working, studentComparator(query.SortBy), query.Descending()), stale
}

// List returns one page of the filtered student roster.
func (s *StudentViewService) List(ctx context.Context, query dto.ListQuery) ([]models.Student, dto.PaginationInfo, bool) {
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

func studentComparator(sortBy string) func(a, b models.Student) bool {
	switch sortBy {
	case "semester":
		return listview.NumericKey(func(st models.Student) (int, bool) { return st.Semester, true })
	case "batch":
		return listview.StringKey(func(st models.Student) string { return st.Batch })
	default:
		return listview.StringKey(func(st models.Student) string { return st.FullName })
	}
}

// Update writes a student change upstream and re-fetches the roster.
func (s *StudentViewService) Update(ctx context.Context, id int64, student *models.Student) (*models.Student, error) {
	updated, err := s.backend.UpdateStudent(ctx, id, student)
	if err != nil {
		return nil, err
	}
	s.cache.SetSuccess("Student updated")
	_ = s.cache.Fetch(ctx)
	return updated, nil
}
