package controllers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecemk/classboard/internal/app/controllers"
	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/app/routes"
	"github.com/ecemk/classboard/internal/app/services"
	"github.com/ecemk/classboard/internal/middleware"
	"github.com/ecemk/classboard/internal/pkg/apperrors"
	"github.com/ecemk/classboard/internal/pkg/auth"
)

// fakeUpstream implements every backend interface the services need.
type fakeUpstream struct {
	rooms         []models.Room
	users         []models.User
	students      []models.Student
	courses       []models.Course
	departments   []models.Department
	faculties     []models.Faculty
	feedback      []models.Feedback
	announcements []models.Announcement
	schedule      []models.ScheduleEntry

	loginUser *models.User
	loginErr  error
}

func (f *fakeUpstream) ListRooms(ctx context.Context) ([]models.Room, error) { return f.rooms, nil }
func (f *fakeUpstream) CreateRoom(ctx context.Context, r *models.Room) (*models.Room, error) {
	out := *r
	out.ID = int64(len(f.rooms) + 1)
	f.rooms = append(f.rooms, out)
	return &out, nil
}
func (f *fakeUpstream) UpdateRoom(ctx context.Context, id int64, r *models.Room) (*models.Room, error) {
	return r, nil
}
func (f *fakeUpstream) DeleteRoom(ctx context.Context, id int64) error { return nil }
func (f *fakeUpstream) ListBlocks(ctx context.Context) ([]models.Block, error) {
	return []models.Block{{ID: 1, Name: "A"}}, nil
}

func (f *fakeUpstream) ListUsers(ctx context.Context) ([]models.User, error) { return f.users, nil }
func (f *fakeUpstream) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	out := *u
	out.ID = int64(len(f.users) + 1)
	f.users = append(f.users, out)
	return &out, nil
}
func (f *fakeUpstream) UpdateUser(ctx context.Context, id int64, u *models.User) (*models.User, error) {
	return u, nil
}
func (f *fakeUpstream) DeleteUser(ctx context.Context, id int64) error { return nil }
func (f *fakeUpstream) ListStudents(ctx context.Context) ([]models.Student, error) {
	return f.students, nil
}
func (f *fakeUpstream) UpdateStudent(ctx context.Context, id int64, s *models.Student) (*models.Student, error) {
	return s, nil
}

func (f *fakeUpstream) ListCourses(ctx context.Context) ([]models.Course, error) {
	return f.courses, nil
}
func (f *fakeUpstream) CreateCourse(ctx context.Context, c *models.Course) (*models.Course, error) {
	return c, nil
}
func (f *fakeUpstream) UpdateCourse(ctx context.Context, id int64, c *models.Course) (*models.Course, error) {
	return c, nil
}
func (f *fakeUpstream) DeleteCourse(ctx context.Context, id int64) error { return nil }
func (f *fakeUpstream) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return f.departments, nil
}
func (f *fakeUpstream) CreateDepartment(ctx context.Context, d *models.Department) (*models.Department, error) {
	out := *d
	out.ID = int64(len(f.departments) + 100)
	f.departments = append(f.departments, out)
	return &out, nil
}
func (f *fakeUpstream) DeleteDepartment(ctx context.Context, id int64) error { return nil }
func (f *fakeUpstream) ListFaculties(ctx context.Context) ([]models.Faculty, error) {
	return f.faculties, nil
}

func (f *fakeUpstream) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	return f.feedback, nil
}
func (f *fakeUpstream) CreateFeedback(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	out := *fb
	out.ID = int64(len(f.feedback) + 1)
	f.feedback = append(f.feedback, out)
	return &out, nil
}
func (f *fakeUpstream) SetFeedbackStatus(ctx context.Context, id int64, status models.FeedbackStatus) error {
	return nil
}
func (f *fakeUpstream) DeleteFeedback(ctx context.Context, id int64) error { return nil }
func (f *fakeUpstream) ListAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	return f.announcements, nil
}
func (f *fakeUpstream) CreateAnnouncement(ctx context.Context, a *models.Announcement) (*models.Announcement, error) {
	return a, nil
}
func (f *fakeUpstream) UpdateAnnouncement(ctx context.Context, id int64, a *models.Announcement) (*models.Announcement, error) {
	return a, nil
}
func (f *fakeUpstream) DeleteAnnouncement(ctx context.Context, id int64) error { return nil }
func (f *fakeUpstream) ListSchedule(ctx context.Context, userID int64) ([]models.ScheduleEntry, error) {
	return f.schedule, nil
}

func (f *fakeUpstream) Login(ctx context.Context, username, password string) (*models.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginUser, nil
}
func (f *fakeUpstream) ForgotPassword(ctx context.Context, email string) error { return nil }

const testCookieName = "classboard_session"

func newTestRouter(t *testing.T, fake *fakeUpstream) (*gin.Engine, *auth.SessionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	session := auth.NewSessionService(auth.SessionConfig{
		SecretKey:  "controller-test-secret",
		Expiration: time.Hour,
		Issuer:     "classboard.test",
	})

	lgr := zerolog.Nop()
	users := services.NewUserViewService(fake, lgr)
	svcs := &services.Services{
		Auth:          services.NewAuthService(fake, session, lgr),
		Rooms:         services.NewRoomViewService(fake, lgr),
		Users:         users,
		Students:      services.NewStudentViewService(fake, lgr),
		Academics:     services.NewAcademicsService(fake, lgr),
		Feedback:      services.NewFeedbackViewService(fake, lgr),
		Announcements: services.NewAnnouncementViewService(fake, lgr),
		Dashboard:     services.NewDashboardService(fake, lgr),
		Provision:     services.NewProvisionService(fake, users, lgr),
	}

	router := gin.New()
	routes.SetupRouter(router,
		controllers.NewAuthController(svcs.Auth, testCookieName, 3600, false),
		controllers.NewDashboardController(svcs.Dashboard),
		controllers.NewRoomController(svcs.Rooms),
		controllers.NewUserController(svcs.Users, svcs.Students, svcs.Provision),
		controllers.NewAcademicsController(svcs.Academics),
		controllers.NewContentController(svcs.Feedback, svcs.Announcements),
		middleware.NewAuthMiddleware(session, testCookieName),
	)
	return router, session
}

func sessionCookie(t *testing.T, session *auth.SessionService, user *models.User) *http.Cookie {
	t.Helper()
	token, err := session.Generate(user)
	require.NoError(t, err)
	return &http.Cookie{Name: testCookieName, Value: token}
}

func seedRooms(n int) []models.Room {
	rooms := make([]models.Room, 0, n)
	for i := 1; i <= n; i++ {
		typ := models.RoomClassroom
		if i%3 == 0 {
			typ = models.RoomLab
		}
		cap := 20 + i
		rooms = append(rooms, models.Room{
			ID: int64(i), Number: fmt.Sprintf("B-%02d", i), Type: typ, Capacity: &cap, BlockID: 1,
		})
	}
	return rooms
}

func TestListRoomsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, &fakeUpstream{rooms: seedRooms(12)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms?type=lab&page=1&size=10", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Items      []models.Room `json:"items"`
			Pagination struct {
				TotalItems int `json:"totalItems"`
			} `json:"pagination"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data.Items, 4)
	assert.Equal(t, 4, body.Data.Pagination.TotalItems)
}

func TestCreateRoomRequiresSession(t *testing.T) {
	router, _ := newTestRouter(t, &fakeUpstream{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms", strings.NewReader(`{"room_number":"C-1","type":"lab","block_id":1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateRoomRejectsNonAdminRole(t *testing.T) {
	router, session := newTestRouter(t, &fakeUpstream{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms", strings.NewReader(`{"room_number":"C-1","type":"lab","block_id":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, session, &models.User{ID: 5, Username: "student", Role: models.RoleStudent}))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateRoomAsAdmin(t *testing.T) {
	fake := &fakeUpstream{}
	router, session := newTestRouter(t, fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms", strings.NewReader(`{"room_number":"C-1","type":"lab","block_id":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, session, &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, fake.rooms, 1)
	assert.Equal(t, "C-1", fake.rooms[0].Number)
}

func TestCreateRoomValidatesPayload(t *testing.T) {
	router, session := newTestRouter(t, &fakeUpstream{})

	// Missing block_id and an unknown room type.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rooms", strings.NewReader(`{"room_number":"C-1","type":"garage"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, session, &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	fake := &fakeUpstream{loginUser: &models.User{ID: 3, Username: "ecem", Role: models.RoleAdmin, Status: models.UserActive}}
	router, _ := newTestRouter(t, fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"ecem","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "login response should set the session cookie")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	fake := &fakeUpstream{loginErr: apperrors.New(apperrors.ErrInvalidCredentials, "Invalid username or password")}
	router, _ := newTestRouter(t, fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"ecem","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")
}

func TestProvisionUserEndpoint(t *testing.T) {
	fake := &fakeUpstream{}
	router, session := newTestRouter(t, fake)

	payload := `{
		"id_number": "T-900",
		"username": "newinstructor",
		"email": "new@uni.edu",
		"full_name": "New Instructor",
		"role": "instructor",
		"password": "secret1",
		"confirm_password": "secret1",
		"department_mode": "createNew",
		"new_department_name": "Marine Biology"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/provision", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, session, &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, fake.departments, 1)
	require.Len(t, fake.users, 1)
	assert.Equal(t, fake.departments[0].ID, *fake.users[0].DepartmentID)
}

func TestProvisionRejectsMismatchedPasswords(t *testing.T) {
	router, session := newTestRouter(t, &fakeUpstream{})

	payload := `{
		"id_number": "T-900",
		"username": "newinstructor",
		"email": "new@uni.edu",
		"full_name": "New Instructor",
		"role": "instructor",
		"password": "secret1",
		"confirm_password": "different"
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/provision", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(sessionCookie(t, session, &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportRoomsCSV(t *testing.T) {
	router, session := newTestRouter(t, &fakeUpstream{rooms: seedRooms(3)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/export", nil)
	req.AddCookie(sessionCookie(t, session, &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	lines := strings.Split(strings.TrimRight(w.Body.String(), "\n"), "\n")
	require.Len(t, lines, 4, "header plus one line per room")
	assert.Equal(t, "Room Number,Name,Type,Capacity,Facilities,Block,Available", lines[0])
}

func TestDashboardOverviewByRole(t *testing.T) {
	fake := &fakeUpstream{
		schedule:      []models.ScheduleEntry{{ID: 1, CourseCode: "CS101"}},
		announcements: []models.Announcement{{ID: 1, Title: "Welcome", Published: true}},
		feedback:      []models.Feedback{{ID: 1, Message: "hi", Status: models.FeedbackPending}},
	}
	router, session := newTestRouter(t, fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.AddCookie(sessionCookie(t, session, &models.User{ID: 7, Username: "student", Role: models.RoleStudent}))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data services.Overview `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data.Schedule, 1)
	assert.Len(t, body.Data.Announcements, 1)
	assert.Empty(t, body.Data.Feedback, "students do not see the moderation queue")
}

func TestProfileReflectsSessionClaims(t *testing.T) {
	router, session := newTestRouter(t, &fakeUpstream{})

	dept := int64(4)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	req.AddCookie(sessionCookie(t, session, &models.User{ID: 9, Username: "head", Role: models.RoleDepartmentHead, DepartmentID: &dept}))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"loggedIn":true`)
	assert.Contains(t, w.Body.String(), `"username":"head"`)
}
