package models

// Role defines the user role type
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleInstructor     Role = "instructor"
	RoleStudent        Role = "student"
	RoleDepartmentHead Role = "department_head"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleStudent, RoleDepartmentHead:
		return true
	}
	return false
}

// UserStatus defines the account status of a user
type UserStatus string

const (
	UserActive      UserStatus = "Active"
	UserDeactivated UserStatus = "Deactivated"
)

// Valid reports whether the status is a known account status.
func (s UserStatus) Valid() bool {
	return s == UserActive || s == UserDeactivated
}
