package backend

import (
	"context"
	"fmt"

	"github.com/ecemk/classboard/internal/pkg/apperrors"

	"github.com/ecemk/classboard/internal/app/models"
)

// ListDepartments fetches the department collection.
func (c *Client) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := c.get(ctx, "/api/departments", &departments); err != nil {
		return nil, err
	}
	for i := range departments {
		if err := departments[i].Validate(); err != nil {
			return nil, apperrors.New(apperrors.ErrUpstream, fmt.Sprintf("invalid department record: %v", err))
		}
	}
	return departments, nil
}

// CreateDepartment creates a department and returns the stored record,
// including the id the provisioning workflow threads into the
// subsequent user-create request.
func (c *Client) CreateDepartment(ctx context.Context, department *models.Department) (*models.Department, error) {
	if err := department.Validate(); err != nil {
		return nil, apperrors.New(apperrors.ErrValidationFailed, err.Error())
	}
	var created models.Department
	if err := c.post(ctx, "/api/departments", department, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteDepartment deletes a department by id.
func (c *Client) DeleteDepartment(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/departments/%d", id))
}

// ListFaculties fetches the faculty collection.
func (c *Client) ListFaculties(ctx context.Context) ([]models.Faculty, error) {
	var faculties []models.Faculty
	if err := c.get(ctx, "/api/faculties", &faculties); err != nil {
		return nil, err
	}
	return faculties, nil
}

// ListCourses fetches the course collection.
func (c *Client) ListCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := c.get(ctx, "/api/courses", &courses); err != nil {
		return nil, err
	}
	for i := range courses {
		if err := courses[i].Validate(); err != nil {
			return nil, apperrors.New(apperrors.ErrUpstream, fmt.Sprintf("invalid course record: %v", err))
		}
	}
	return courses, nil
}

// CreateCourse creates a course and returns the stored record.
func (c *Client) CreateCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	if err := course.Validate(); err != nil {
		return nil, apperrors.New(apperrors.ErrValidationFailed, err.Error())
	}
	var created models.Course
	if err := c.post(ctx, "/api/courses", course, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCourse updates an existing course.
func (c *Client) UpdateCourse(ctx context.Context, id int64, course *models.Course) (*models.Course, error) {
	if err := course.Validate(); err != nil {
		return nil, apperrors.New(apperrors.ErrValidationFailed, err.Error())
	}
	var updated models.Course
	if err := c.put(ctx, fmt.Sprintf("/api/courses/%d", id), course, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCourse deletes a course by id.
func (c *Client) DeleteCourse(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/courses/%d", id))
}
