package models

import (
	"fmt"
	"strings"
)

// Department represents an academic department
type Department struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	FacultyID *int64   `json:"faculty_id,omitempty"`
	Faculty   *Faculty `json:"faculty,omitempty"`
}

// Validate checks the invariants a department record must satisfy.
func (d *Department) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("department name cannot be empty")
	}
	return nil
}
