package models

import "fmt"

// StudentStatus defines the enrollment status of a student
type StudentStatus string

const (
	StudentActive    StudentStatus = "Active"
	StudentInactive  StudentStatus = "Inactive"
	StudentGraduated StudentStatus = "Graduated"
	StudentSuspended StudentStatus = "Suspended"
)

// Valid reports whether the status is a known enrollment status.
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentActive, StudentInactive, StudentGraduated, StudentSuspended:
		return true
	}
	return false
}

// Student extends the user shape with enrollment details
type Student struct {
	ID           int64         `json:"id"`
	IDNumber     string        `json:"id_number"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	FullName     string        `json:"full_name"`
	DepartmentID *int64        `json:"department_id,omitempty"`
	Department   *Department   `json:"department,omitempty"`
	Batch        string        `json:"batch"`
	Semester     int           `json:"semester"`
	Section      string        `json:"section"`
	Status       StudentStatus `json:"status"`
	ProfileImage string        `json:"profile_image,omitempty"`
}

// Validate checks the invariants a student record must satisfy at the boundary.
func (s *Student) Validate() error {
	if s.Username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if s.Status != "" && !s.Status.Valid() {
		return fmt.Errorf("unknown student status %q", s.Status)
	}
	return nil
}
