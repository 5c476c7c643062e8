package models

import (
	"fmt"
	"strings"
	"time"
)

// Priority defines the display priority of an announcement
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether the priority is a known level.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Announcement represents a portal announcement.
// A nil DepartmentID addresses all departments.
type Announcement struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	AuthorName   string     `json:"author_name"`
	Priority     Priority   `json:"priority"`
	DepartmentID *int64     `json:"department_id,omitempty"`
	Published    bool       `json:"is_published"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// Validate checks the invariants an announcement record must satisfy.
func (a *Announcement) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("announcement title cannot be empty")
	}
	if strings.TrimSpace(a.Content) == "" {
		return fmt.Errorf("announcement content cannot be empty")
	}
	if a.Priority != "" && !a.Priority.Valid() {
		return fmt.Errorf("unknown priority %q", a.Priority)
	}
	return nil
}

// Expired reports whether the announcement has passed its expiry, if any.
func (a *Announcement) Expired(now time.Time) bool {
	return a.ExpiresAt != nil && now.After(*a.ExpiresAt)
}

// VisibleTo reports whether the announcement addresses the given department.
func (a *Announcement) VisibleTo(departmentID *int64) bool {
	if a.DepartmentID == nil {
		return true
	}
	return departmentID != nil && *a.DepartmentID == *departmentID
}
