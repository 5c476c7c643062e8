package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecemk/classboard/internal/app/models"
)

type fakeDashboardBackend struct {
	schedule         []models.ScheduleEntry
	scheduleErr      error
	announcements    []models.Announcement
	announcementsErr error
	feedback         []models.Feedback
	feedbackErr      error

	scheduleCalls atomic.Int32
}

func (f *fakeDashboardBackend) ListSchedule(ctx context.Context, userID int64) ([]models.ScheduleEntry, error) {
	f.scheduleCalls.Add(1)
	if f.scheduleErr != nil {
		return nil, f.scheduleErr
	}
	return f.schedule, nil
}

func (f *fakeDashboardBackend) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	if f.announcementsErr != nil {
		return nil, f.announcementsErr
	}
	return f.announcements, nil
}

func (f *fakeDashboardBackend) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	if f.feedbackErr != nil {
		return nil, f.feedbackErr
	}
	return f.feedback, nil
}

func dashboardFixture() *fakeDashboardBackend {
	dept := int64(4)
	expired := time.Now().Add(-time.Hour)
	return &fakeDashboardBackend{
		schedule: []models.ScheduleEntry{
			{ID: 1, CourseCode: "CS101", Day: "Monday", StartTime: "09:00", EndTime: "11:00"},
		},
		announcements: []models.Announcement{
			{ID: 1, Title: "Campus wide", Published: true},
			{ID: 2, Title: "Dept 4 only", Published: true, DepartmentID: &dept},
			{ID: 3, Title: "Draft", Published: false},
			{ID: 4, Title: "Expired", Published: true, ExpiresAt: &expired},
		},
		feedback: []models.Feedback{
			{ID: 1, Message: "water cooler broken", Status: models.FeedbackPending},
			{ID: 2, Message: "handled", Status: models.FeedbackApproved},
		},
	}
}

func TestOverviewByRole(t *testing.T) {
	tests := []struct {
		name              string
		user              models.User
		wantSchedule      int
		wantAnnouncements int
		wantFeedback      int
	}{
		{"student sees schedule and campus announcements", models.User{ID: 7, Role: models.RoleStudent}, 1, 1, 0},
		{"instructor sees schedule and pending feedback", models.User{ID: 8, Role: models.RoleInstructor}, 1, 0, 1},
		{"admin sees announcements and pending feedback", models.User{ID: 9, Role: models.RoleAdmin}, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewDashboardService(dashboardFixture(), zerolog.Nop())
			ov, err := svc.Overview(context.Background(), &tt.user)
			if err != nil {
				t.Fatalf("overview failed: %v", err)
			}
			if len(ov.Schedule) != tt.wantSchedule {
				t.Errorf("schedule entries = %d, want %d", len(ov.Schedule), tt.wantSchedule)
			}
			if len(ov.Announcements) != tt.wantAnnouncements {
				t.Errorf("announcements = %d, want %d", len(ov.Announcements), tt.wantAnnouncements)
			}
			if len(ov.Feedback) != tt.wantFeedback {
				t.Errorf("feedback entries = %d, want %d", len(ov.Feedback), tt.wantFeedback)
			}
		})
	}
}

func TestOverviewScopedAnnouncements(t *testing.T) {
	dept := int64(4)
	svc := NewDashboardService(dashboardFixture(), zerolog.Nop())

	ov, err := svc.Overview(context.Background(), &models.User{ID: 7, Role: models.RoleStudent, DepartmentID: &dept})
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if len(ov.Announcements) != 2 {
		t.Fatalf("department member sees %d announcements, want campus wide plus own department", len(ov.Announcements))
	}
}

func TestOverviewServesStaleScheduleOnFailure(t *testing.T) {
	fake := dashboardFixture()
	svc := NewDashboardService(fake, zerolog.Nop())
	user := models.User{ID: 7, Role: models.RoleStudent}

	if _, err := svc.Overview(context.Background(), &user); err != nil {
		t.Fatalf("first overview failed: %v", err)
	}

	fake.scheduleErr = fmt.Errorf("backend down")
	ov, err := svc.Overview(context.Background(), &user)
	if err != nil {
		t.Fatalf("overview with failing schedule should not error: %v", err)
	}
	if !ov.Stale {
		t.Fatal("overview with cached schedule should be marked stale")
	}
	if len(ov.Schedule) != 1 {
		t.Fatalf("stale overview has %d schedule entries, want cached 1", len(ov.Schedule))
	}
}

func TestOverviewServesStaleAnnouncementsOnFailure(t *testing.T) {
	fake := dashboardFixture()
	svc := NewDashboardService(fake, zerolog.Nop())
	user := models.User{ID: 9, Role: models.RoleAdmin}

	if _, err := svc.Overview(context.Background(), &user); err != nil {
		t.Fatalf("first overview failed: %v", err)
	}

	fake.announcementsErr = fmt.Errorf("backend down")
	ov, err := svc.Overview(context.Background(), &user)
	if err != nil {
		t.Fatalf("overview with failing announcements should not error: %v", err)
	}
	if !ov.Stale {
		t.Fatal("overview with cached announcements should be marked stale")
	}
	if len(ov.Announcements) != 1 {
		t.Fatalf("stale overview has %d announcements, want cached 1", len(ov.Announcements))
	}
}

func TestOverviewServesStaleFeedbackOnFailure(t *testing.T) {
	fake := dashboardFixture()
	svc := NewDashboardService(fake, zerolog.Nop())
	user := models.User{ID: 9, Role: models.RoleAdmin}

	if _, err := svc.Overview(context.Background(), &user); err != nil {
		t.Fatalf("first overview failed: %v", err)
	}

	fake.feedbackErr = fmt.Errorf("backend down")
	ov, err := svc.Overview(context.Background(), &user)
	if err != nil {
		t.Fatalf("overview with failing feedback should not error: %v", err)
	}
	if !ov.Stale {
		t.Fatal("overview with cached feedback should be marked stale")
	}
	if len(ov.Feedback) != 1 {
		t.Fatalf("stale overview has %d feedback entries, want cached 1", len(ov.Feedback))
	}
}

func TestOverviewCachesSchedulePerUser(t *testing.T) {
	fake := dashboardFixture()
	svc := NewDashboardService(fake, zerolog.Nop())

	for _, id := range []int64{7, 8, 7} {
		if _, err := svc.Overview(context.Background(), &models.User{ID: id, Role: models.RoleStudent}); err != nil {
			t.Fatalf("overview failed: %v", err)
		}
	}
	if got := fake.scheduleCalls.Load(); got != 3 {
		t.Fatalf("schedule fetched %d times, want one per overview", got)
	}
}
