package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ecemk/classboard/internal/app/listview"
	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/pkg/backend"
)

// DashboardBackend is the slice of the upstream client the dashboard
// overview needs.
type DashboardBackend interface {
	ListSchedule(ctx context.Context, userID int64) ([]models.ScheduleEntry, error)
	ListAnnouncements(ctx context.Context) ([]models.Announcement, error)
	ListFeedback(ctx context.Context) ([]models.Feedback, error)
}

var _ DashboardBackend = (*backend.Client)(nil)

// Overview is the landing-page payload, assembled per role. Slices the
// role does not see stay nil and are omitted from the response.
type Overview struct {
	Schedule      []models.ScheduleEntry `json:"schedule,omitempty"`
	Announcements []models.Announcement  `json:"announcements,omitempty"`
	Feedback      []models.Feedback      `json:"feedback,omitempty"`
	Stale         bool                   `json:"stale,omitempty"`
}

// DashboardService assembles the role-conditional overview. Schedules
// are keyed per user so each viewer gets their own fetch cache; the
// announcement and feedback caches belong to the dashboard itself and
// may lag behind the management views showing the same entities.
type DashboardService struct {
	backend       DashboardBackend
	schedules     *listview.KeyedCache[models.ScheduleEntry]
	announcements *listview.Cache[models.Announcement]
	feedback      *listview.Cache[models.Feedback]
	logger        zerolog.Logger
	now           func() time.Time
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(b DashboardBackend, lgr zerolog.Logger) *DashboardService {
	s := &DashboardService{backend: b, logger: lgr, now: time.Now}
	s.schedules = listview.NewKeyedCache(func(ctx context.Context, userID int64) ([]models.ScheduleEntry, error) {
		return b.ListSchedule(ctx, userID)
	})
	s.announcements = listview.NewCache(b.ListAnnouncements)
	s.feedback = listview.NewCache(b.ListFeedback)
	return s
}

// Overview fetches the sections the viewer's role sees, concurrently.
// A failed section logs and serves whatever was cached; the page never
// blanks because one upstream call broke.
func (s *DashboardService) Overview(ctx context.Context, user *models.User) (*Overview, error) {
	ov := &Overview{}
	g, gctx := errgroup.WithContext(ctx)

	withSchedule := user.Role == models.RoleStudent || user.Role == models.RoleInstructor || user.Role == models.RoleDepartmentHead
	withAnnouncements := user.Role != models.RoleInstructor
	withFeedback := user.Role == models.RoleAdmin || user.Role == models.RoleInstructor || user.Role == models.RoleDepartmentHead

	var scheduleStale, announcementsStale, feedbackStale bool

	if withSchedule {
		g.Go(func() error {
			cache := s.schedules.For(user.ID)
			if err := cache.Fetch(gctx); err != nil {
				scheduleStale = cache.Len() > 0
				s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("Schedule fetch failed, serving cached data")
			}
			ov.Schedule = cache.Items()
			return nil
		})
	}

	if withAnnouncements {
		g.Go(func() error {
			if err := s.announcements.Fetch(gctx); err != nil {
				announcementsStale = s.announcements.Len() > 0
				s.logger.Warn().Err(err).Msg("Announcement fetch failed, serving cached data")
			}
			now := s.now()
			visible := make([]models.Announcement, 0)
			for _, a := range s.announcements.Items() {
				if a.Published && !a.Expired(now) && a.VisibleTo(user.DepartmentID) {
					visible = append(visible, a)
				}
			}
			ov.Announcements = visible
			return nil
		})
	}

	if withFeedback {
		g.Go(func() error {
			if err := s.feedback.Fetch(gctx); err != nil {
				feedbackStale = s.feedback.Len() > 0
				s.logger.Warn().Err(err).Msg("Feedback fetch failed, serving cached data")
			}
			pending := make([]models.Feedback, 0)
			for _, f := range s.feedback.Items() {
				if f.Status == models.FeedbackPending {
					pending = append(pending, f)
				}
			}
			ov.Feedback = pending
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	ov.Stale = scheduleStale || announcementsStale || feedbackStale
	return ov, nil
}
