package models

import (
	"fmt"
	"strings"
)

// User defines a user account mirrored from the scheduling backend
type User struct {
	ID           int64       `json:"id"`
	IDNumber     string      `json:"id_number"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	FullName     string      `json:"full_name"`
	Role         Role        `json:"role"`
	DepartmentID *int64      `json:"department_id,omitempty"` // nil for admins
	Department   *Department `json:"department,omitempty"`
	Status       UserStatus  `json:"status"`
	IsFirstLogin bool        `json:"is_first_login"`
	// Password is write-only: sent on create, never echoed back.
	Password string `json:"password,omitempty"`
}

// PasswordMinLength is the minimum accepted password length on create.
const PasswordMinLength = 6

// Validate checks the invariants a user record must satisfy at the boundary.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !u.Role.Valid() {
		return fmt.Errorf("unknown role %q", u.Role)
	}
	if u.Status != "" && !u.Status.Valid() {
		return fmt.Errorf("unknown status %q", u.Status)
	}
	// Department is mandatory for everyone except admins.
	if u.Role != RoleAdmin && (u.DepartmentID == nil || *u.DepartmentID <= 0) {
		return fmt.Errorf("department is required for role %q", u.Role)
	}
	return nil
}

// ValidateForCreate applies the stricter invariants for a create request.
func (u *User) ValidateForCreate() error {
	if err := u.Validate(); err != nil {
		return err
	}
	if len(u.Password) < PasswordMinLength {
		return fmt.Errorf("password must be at least %d characters", PasswordMinLength)
	}
	return nil
}

// Matches reports whether another user collides with this one on any of the
// fields the backend expects to be unique. A best-effort linear-scan check
// over an already fetched collection; never authoritative.
func (u *User) Matches(other *User) bool {
	if u.ID == other.ID {
		return false
	}
	return strings.EqualFold(u.Email, other.Email) ||
		strings.EqualFold(u.Username, other.Username) ||
		(u.IDNumber != "" && u.IDNumber == other.IDNumber)
}
