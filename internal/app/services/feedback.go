package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ecemk/classboard/internal/app/listview"
	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/app/models/dto"
	"github.com/ecemk/classboard/internal/pkg/apperrors"
	"github.com/ecemk/classboard/internal/pkg/backend"
)

// FeedbackBackend is the slice of the upstream client the feedback view
// needs.
type FeedbackBackend interface {
	ListFeedback(ctx context.Context) ([]models.Feedback, error)
	CreateFeedback(ctx context.Context, fb *models.Feedback) (*models.Feedback, error)
	SetFeedbackStatus(ctx context.Context, id int64, status models.FeedbackStatus) error
	DeleteFeedback(ctx context.Context, id int64) error
}

var _ FeedbackBackend = (*backend.Client)(nil)

// FeedbackViewService owns the feedback moderation list view.
type FeedbackViewService struct {
	backend FeedbackBackend
	cache   *listview.Cache[models.Feedback]
	logger  zerolog.Logger
}

// NewFeedbackViewService creates the feedback view service.
func NewFeedbackViewService(b FeedbackBackend, lgr zerolog.Logger) *FeedbackViewService {
	s := &FeedbackViewService{backend: b, logger: lgr}
	s.cache = listview.NewCache(b.ListFeedback)
	return s
}

func feedbackSearchFields(f models.Feedback) []string {
	return []string{f.Author, f.Message, f.IDNumber}
}

func (s *FeedbackViewService) working(ctx context.Context, query dto.ListQuery) ([]models.Feedback, bool) {
	stale := false
	if err := s.cache.Fetch(ctx); err != nil {
		stale = s.cache.Len() > 0
		s.logger.Warn().Err(err).Msg("Feedback fetch failed, serving cached data")
	}

	fs := listview.NewFilterSet[models.Feedback]()
	fs.Set("search", listview.Substring(query.Search, feedbackSearchFields))
	fs.Set("status", listview.Equals(query.Status, func(f models.Feedback) string { return string(f.Status) }))
	fs.Set("role", listview.Equals(query.Role, func(f models.Feedback) string { return string(f.RoleType) }))

	working := fs.Apply(s.cache.Items())
	return listview.SortBy(working, feedbackComparator(query.SortBy), query.Descending()), stale
}

// List returns one page of the filtered feedback collection.
func (s *FeedbackViewService) List(ctx context.Context, query dto.ListQuery) ([]models.Feedback, dto.PaginationInfo, bool) {
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

// Filtered returns the full filtered and sorted list for export.
func (s *FeedbackViewService) Filtered(ctx context.Context, query dto.ListQuery) []models.Feedback {
	working, _ := s.working(ctx, query)
	return working
}

func feedbackComparator(sortBy string) func(a, b models.Feedback) bool {
	switch sortBy {
	case "author":
		return listview.StringKey(func(f models.Feedback) string { return f.Author })
	case "status":
		return listview.StringKey(func(f models.Feedback) string { return string(f.Status) })
	default:
		return listview.NumericKey(func(f models.Feedback) (int, bool) { return int(f.CreatedAt.Unix()), true })
	}
}

// Submit validates and sends a new feedback entry upstream.
func (s *FeedbackViewService) Submit(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	if err := fb.Validate(); err != nil {
		return nil, apperrors.New(apperrors.ErrValidationFailed, err.Error())
	}
	created, err := s.backend.CreateFeedback(ctx, fb)
	if err != nil {
		return nil, err
	}
	s.cache.SetSuccess("Feedback submitted")
	_ = s.cache.Fetch(ctx)
	return created, nil
}

// Moderate approves or rejects a feedback entry.
func (s *FeedbackViewService) Moderate(ctx context.Context, id int64, status models.FeedbackStatus) error {
	if !status.Valid() || status == models.FeedbackPending {
		return apperrors.New(apperrors.ErrValidationFailed, "status must be approved or rejected")
	}
	if err := s.backend.SetFeedbackStatus(ctx, id, status); err != nil {
		return err
	}
	s.cache.SetSuccess("Feedback " + string(status))
	_ = s.cache.Fetch(ctx)
	return nil
}

// Delete removes a feedback entry upstream and re-fetches.
func (s *FeedbackViewService) Delete(ctx context.Context, id int64) error {
	if err := s.backend.DeleteFeedback(ctx, id); err != nil {
		return err
	}
	s.cache.SetSuccess("Feedback deleted")
	_ = s.cache.Fetch(ctx)
	return nil
}
