package models

import (
	"fmt"
	"strings"
)

// CourseCategory defines the kind of a course
type CourseCategory string

const (
	CourseCommon          CourseCategory = "common"
	CourseMajor           CourseCategory = "major"
	CourseElective        CourseCategory = "elective"
	CourseSupportive      CourseCategory = "supportive"
	CourseExtraCurricular CourseCategory = "extra_curricular"
)

// Valid reports whether the category is one of the five course kinds.
func (c CourseCategory) Valid() bool {
	switch c {
	case CourseCommon, CourseMajor, CourseElective, CourseSupportive, CourseExtraCurricular:
		return true
	}
	return false
}

// Course represents a course offered by a department
type Course struct {
	ID            int64          `json:"id"`
	Code          string         `json:"code"`
	Name          string         `json:"name"`
	CreditHours   int            `json:"credit_hours"`
	LectureHours  int            `json:"lecture_hours"`
	LabHours      int            `json:"lab_hours"`
	TutorialHours int            `json:"tutorial_hours"`
	Category      CourseCategory `json:"category"`
	DepartmentID  *int64         `json:"department_id,omitempty"`
}

// Validate checks the invariants a course record must satisfy.
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Code) == "" {
		return fmt.Errorf("course code cannot be empty")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("course name cannot be empty")
	}
	if c.Category != "" && !c.Category.Valid() {
		return fmt.Errorf("unknown course category %q", c.Category)
	}
	return nil
}
