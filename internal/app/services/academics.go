package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ecemk/classboard/internal/app/listview"
	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/app/models/dto"
	"github.com/ecemk/classboard/internal/pkg/backend"
)

// AcademicsBackend is the slice of the upstream client the academics
// views need.
type AcademicsBackend interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, course *models.Course) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
	ListDepartments(ctx context.Context) ([]models.Department, error)
	DeleteDepartment(ctx context.Context, id int64) error
	ListFaculties(ctx context.Context) ([]models.Faculty, error)
}

var _ AcademicsBackend = (*backend.Client)(nil)

// AcademicsService serves the course catalogue plus the department and
// faculty selectors the forms rely on.
type AcademicsService struct {
	backend AcademicsBackend
	courses *listview.Cache[models.Course]
	logger  zerolog.Logger
}

// NewAcademicsService creates the academics service.
func NewAcademicsService(b AcademicsBackend, lgr zerolog.Logger) *AcademicsService {
	s := &AcademicsService{backend: b, logger: lgr}
	s.courses = listview.NewCache(b.ListCourses)
	return s
}

func courseSearchFields(c models.Course) []string {
	return []string{c.Code, c.Name}
}

func (s *AcademicsService) working(ctx context.Context, query dto.ListQuery) ([]models.Course, bool) {
	stale := false
	if err := s.courses.Fetch(ctx); err != nil {
		stale = s.courses.Len() > 0
		s.logger.Warn().Err(err).Msg("Course fetch failed, serving cached data")
	}

	fs := listview.NewFilterSet[models.Course]()
	fs.Set("search", listview.Substring(query.Search, courseSearchFields))
	fs.Set("category", listview.Equals(query.Type, func(c models.Course) string { return string(c.Category) }))

	working := fs.Apply(s.courses.Items())
	return listview.SortBy(working, courseComparator(query.SortBy), query.Descending()), stale
}

// ListCourses returns one page of the filtered course catalogue.
func (s *AcademicsService) ListCourses(ctx context.Context, query dto.ListQuery) ([]models.Course, dto.PaginationInfo, bool) {
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

func courseComparator(sortBy string) func(a, b models.Course) bool {
	switch sortBy {
	case "name":
		return listview.StringKey(func(c models.Course) string { return c.Name })
	case "creditHours":
		return listview.NumericKey(func(c models.Course) (int, bool) { return c.CreditHours, true })
	default:
		return listview.StringKey(func(c models.Course) string { return c.Code })
	}
}

// CreateCourse writes a course upstream and re-fetches the catalogue.
func (s *AcademicsService) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	created, err := s.backend.CreateCourse(ctx, course)
	if err != nil {
		return nil, err
	}
	s.courses.SetSuccess("Course created")
	_ = s.courses.Fetch(ctx)
	return created, nil
}

// UpdateCourse writes a course change upstream and re-fetches.
func (s *AcademicsService) UpdateCourse(ctx context.Context, id int64, course *models.Course) (*models.Course, error) {
	updated, err := s.backend.UpdateCourse(ctx, id, course)
	if err != nil {
		return nil, err
	}
	s.courses.SetSuccess("Course updated")
	_ = s.courses.Fetch(ctx)
	return updated, nil
}

// DeleteCourse removes a course upstream and re-fetches.
func (s *AcademicsService) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.backend.DeleteCourse(ctx, id); err != nil {
		return err
	}
	s.courses.SetSuccess("Course deleted")
	_ = s.courses.Fetch(ctx)
	return nil
}

// Departments lists the departments for the selectors. Selector data is
// fetched straight through; the small collections are not worth a cache.
func (s *AcademicsService) Departments(ctx context.Context) ([]models.Department, error) {
	return s.backend.ListDepartments(ctx)
}

// DeleteDepartment removes a department upstream.
func (s *AcademicsService) DeleteDepartment(ctx context.Context, id int64) error {
	return s.backend.DeleteDepartment(ctx, id)
}

// Faculties lists the faculties with their department counts.
func (s *AcademicsService) Faculties(ctx context.Context) ([]models.Faculty, error) {
	return s.backend.ListFaculties(ctx)
}
