package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ecemk/classboard/internal/app/listview"
	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/app/models/dto"
	"github.com/ecemk/classboard/internal/pkg/apperrors"
	"github.com/ecemk/classboard/internal/pkg/backend"
)

// UserBackend is the slice of the upstream client the users view needs.
type UserBackend interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, user *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

var _ UserBackend = (*backend.Client)(nil)

// UserViewService owns the user management list view.
type UserViewService struct {
	backend UserBackend
	cache   *listview.Cache[models.User]
	logger  zerolog.Logger
}

// NewUserViewService creates the users view service.
func NewUserViewService(b UserBackend, lgr zerolog.Logger) *UserViewService {
	s := &UserViewService{backend: b, logger: lgr}
	s.cache = listview.NewCache(b.ListUsers)
	return s
}

func userSearchFields(u models.User) []string {
	return []string{u.Username, u.Email, u.FullName, u.IDNumber}
}

func (s *UserViewService) working(ctx context.Context, query dto.ListQuery) ([]models.User, bool) {
	stale := false
	if err := s.cache.Fetch(ctx); err != nil {
		stale = s.cache.Len() > 0
		s.logger.Warn().Err(err).Msg("User fetch failed, serving cached data")
	}

	fs := listview.NewFilterSet[models.User]()
	fs.Set("search", listview.Substring(query.Search, userSearchFields))
	fs.Set("role", listview.Equals(query.Role, func(u models.User) string { return string(u.Role) }))
	fs.Set("status", listview.Equals(query.Status, func(u models.User) string { return string(u.Status) }))

	working := fs.Apply(s.cache.Items())
	return listview.SortBy(working, userComparator(query.SortBy), query.Descending()), stale
}

// List returns one page of the filtered user collection.
func (s *UserViewService) List(ctx context.Context, query dto.ListQuery) ([]models.User, dto.PaginationInfo, bool) {
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
func (s *UserViewService) Filtered(ctx context.Context, query dto.ListQuery) []models.User {
	working, _ := s.working(ctx, query)
	return working
}

func userComparator(sortBy string) func(a, b models.User) bool {
	switch sortBy {
	case "email":
		return listview.StringKey(func(u models.User) string { return u.Email })
	case "role":
		return listview.StringKey(func(u models.User) string { return string(u.Role) })
	case "fullName":
		return listview.StringKey(func(u models.User) string { return u.FullName })
	default:
		return listview.StringKey(func(u models.User) string { return u.Username })
	}
}

// CheckDuplicate scans the cached collection for a matching email,
// username, or ID number. The scan is best effort against possibly
// stale data; the upstream remains the authority and its conflict
// responses are surfaced either way.
func (s *UserViewService) CheckDuplicate(user *models.User) error {
	for _, existing := range s.cache.Items() {
		if existing.ID == user.ID {
			continue
		}
		switch {
		case strings.EqualFold(existing.Email, user.Email):
			return apperrors.New(apperrors.ErrEmailAlreadyExists, "")
		case strings.EqualFold(existing.Username, user.Username):
			return apperrors.New(apperrors.ErrUsernameAlreadyExists, "")
		case user.IDNumber != "" && existing.IDNumber == user.IDNumber:
			return apperrors.New(apperrors.ErrIDNumberAlreadyExists, "")
		}
	}
	return nil
}

// Update writes a user change upstream and re-fetches the collection.
func (s *UserViewService) Update(ctx context.Context, id int64, user *models.User) (*models.User, error) {
	updated, err := s.backend.UpdateUser(ctx, id, user)
	if err != nil {
		return nil, err
	}
	s.cache.SetSuccess("User updated")
	_ = s.cache.Fetch(ctx)
	return updated, nil
}

// Delete removes a user upstream and re-fetches the collection.
func (s *UserViewService) Delete(ctx context.Context, id int64) error {
	if err := s.backend.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.cache.SetSuccess("User deleted")
	_ = s.cache.Fetch(ctx)
	return nil
}

// Refresh re-fetches the user collection, used after provisioning.
func (s *UserViewService) Refresh(ctx context.Context) error {
	return s.cache.Fetch(ctx)
}
