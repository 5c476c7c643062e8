package dto

// ListQuery carries the filter, sort, and pagination parameters shared
// by every list endpoint. Enum filters treat "" and "all" as inactive;
// capacity bounds stay strings so an empty value means "no bound"
// while a literal "0" is a real bound.
type ListQuery struct {
	Search      string `form:"search"`
	Type        string `form:"type"`
	Role        string `form:"role"`
	Status      string `form:"status"`
	MinCapacity string `form:"minCapacity"`
	MaxCapacity string `form:"maxCapacity"`
	Facilities  string `form:"facilities"` // comma-separated
	SortBy      string `form:"sortBy"`
	SortDir     string `form:"sortDir,default=asc" binding:"omitempty,oneof=asc desc"`
	Page        int    `form:"page,default=1"`
	Size        int    `form:"size,default=10"`
}

// Descending reports whether the query asks for descending order.
func (q *ListQuery) Descending() bool {
	return q.SortDir == "desc"
}

// LoginRequest is the session login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest triggers the upstream password-reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ProfileResponse mirrors the session profile shape the dashboards
// expect.
type ProfileResponse struct {
	LoggedIn bool        `json:"loggedIn"`
	User     interface{} `json:"user,omitempty"`
}

// CreateRoomRequest is the room creation payload.
type CreateRoomRequest struct {
	Number     string   `json:"room_number" binding:"required"`
	Name       *string  `json:"name,omitempty"`
	Type       string   `json:"type" binding:"required,oneof=classroom lab office conference library auditorium other"`
	Capacity   *int     `json:"capacity,omitempty" binding:"omitempty,min=1"`
	Facilities []string `json:"facilities"`
	Available  bool     `json:"is_available"`
	BlockID    int64    `json:"block_id" binding:"required,min=1"`
}

// ProvisionUserRequest drives the user-creation workflow: pick an
// existing department or name a new one.
type ProvisionUserRequest struct {
	IDNumber        string `json:"id_number" binding:"required"`
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	FullName        string `json:"full_name" binding:"required"`
	Role            string `json:"role" binding:"required,oneof=admin instructor student department_head"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`

	// DepartmentMode selects the provisioning path; admins may omit it.
	DepartmentMode    string `json:"department_mode" binding:"omitempty,oneof=existing createNew"`
	DepartmentID      int64  `json:"department_id,omitempty"`
	NewDepartmentName string `json:"new_department_name,omitempty"`
}

// CreateCourseRequest is the course creation payload.
type CreateCourseRequest struct {
	Code          string `json:"code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	CreditHours   int    `json:"credit_hours" binding:"min=0"`
	LectureHours  int    `json:"lecture_hours" binding:"min=0"`
	LabHours      int    `json:"lab_hours" binding:"min=0"`
	TutorialHours int    `json:"tutorial_hours" binding:"min=0"`
	Category      string `json:"category" binding:"required,oneof=common major elective supportive extra_curricular"`
	DepartmentID  *int64 `json:"department_id,omitempty"`
}

// CreateFeedbackRequest is the feedback submission payload.
type CreateFeedbackRequest struct {
	Author   string `json:"author_name" binding:"required"`
	RoleType string `json:"role_type" binding:"required,oneof=student instructor"`
	Message  string `json:"message" binding:"required"`
	IDNumber string `json:"id_number,omitempty"`
}

// ModerateFeedbackRequest moves a feedback entry through moderation.
type ModerateFeedbackRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

// CreateAnnouncementRequest is the announcement creation payload. A nil
// DepartmentID addresses all departments.
type CreateAnnouncementRequest struct {
	Title        string  `json:"title" binding:"required"`
	Content      string  `json:"content" binding:"required"`
	Priority     string  `json:"priority" binding:"required,oneof=high medium low"`
	DepartmentID *int64  `json:"department_id,omitempty"`
	Published    bool    `json:"is_published"`
	ExpiresAt    *string `json:"expires_at,omitempty" binding:"omitempty,rfc3339"`
}
