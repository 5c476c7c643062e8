package models

import (
	"fmt"
	"strings"
	"time"
)

// FeedbackStatus defines the moderation status of a feedback entry
type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "pending"
	FeedbackApproved FeedbackStatus = "approved"
	FeedbackRejected FeedbackStatus = "rejected"
)

// Valid reports whether the status is a known moderation status.
func (s FeedbackStatus) Valid() bool {
	return s == FeedbackPending || s == FeedbackApproved || s == FeedbackRejected
}

// FeedbackRole identifies which kind of user authored a feedback entry
type FeedbackRole string

const (
	FeedbackFromStudent    FeedbackRole = "student"
	FeedbackFromInstructor FeedbackRole = "instructor"
)

// Feedback represents a feedback entry submitted through the portal
type Feedback struct {
	ID        int64          `json:"id"`
	Author    string         `json:"author_name"`
	RoleType  FeedbackRole   `json:"role_type"`
	Message   string         `json:"message"`
	Status    FeedbackStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	StudentID *int64         `json:"student_id,omitempty"`
	IDNumber  string         `json:"id_number,omitempty"`
}

// Validate checks the invariants a feedback record must satisfy at the boundary.
func (f *Feedback) Validate() error {
	if strings.TrimSpace(f.Message) == "" {
		return fmt.Errorf("feedback message cannot be empty")
	}
	if f.RoleType != FeedbackFromStudent && f.RoleType != FeedbackFromInstructor {
		return fmt.Errorf("unknown feedback role %q", f.RoleType)
	}
	if f.Status != "" && !f.Status.Valid() {
		return fmt.Errorf("unknown feedback status %q", f.Status)
	}
	return nil
}
