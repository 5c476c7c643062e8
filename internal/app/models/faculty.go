package models

// Faculty represents a faculty grouping several departments
type Faculty struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// DepartmentCount is derived server-side from the owned departments.
	DepartmentCount int `json:"department_count"`
}
