// Package services holds the per-view services the controllers talk to.
// Each list view owns one fetch cache and re-derives its filter, sort,
// and pagination from the request query on every call.
package services

import (
	"github.com/rs/zerolog"

	"github.com/ecemk/classboard/internal/pkg/auth"
	"github.com/ecemk/classboard/internal/pkg/backend"
)

// Services bundles every service the controllers need.
type Services struct {
	Auth          *AuthService
	Rooms         *RoomViewService
	Users         *UserViewService
	Students      *StudentViewService
	Academics     *AcademicsService
	Feedback      *FeedbackViewService
	Announcements *AnnouncementViewService
	Dashboard     *DashboardService
	Provision     *ProvisionService
}

// NewServices wires every service to the shared upstream client.
func NewServices(client *backend.Client, session *auth.SessionService, lgr zerolog.Logger) *Services {
	users := NewUserViewService(client, lgr)
	return &Services{
		Auth:          NewAuthService(client, session, lgr),
		Rooms:         NewRoomViewService(client, lgr),
		Users:         users,
		Students:      NewStudentViewService(client, lgr),
		Academics:     NewAcademicsService(client, lgr),
		Feedback:      NewFeedbackViewService(client, lgr),
		Announcements: NewAnnouncementViewService(client, lgr),
		Dashboard:     NewDashboardService(client, lgr),
		Provision:     NewProvisionService(client, users, lgr),
	}
}
