package backend

import (
	"context"
	"fmt"

	"github.com/ecemk/classboard/internal/pkg/apperrors"

	"github.com/ecemk/classboard/internal/app/models"
)

// ListUsers fetches the user collection.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "/api/users", &users); err != nil {
		return nil, err
	}
	for i := range users {
		if err := users[i].Validate(); err != nil {
			return nil, apperrors.New(apperrors.ErrUpstream, fmt.Sprintf("invalid user record: %v", err))
		}
	}
	return users, nil
}

// CreateUser creates a user account and returns the stored record.
func (c *Client) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := user.ValidateForCreate(); err != nil {
		return nil, apperrors.New(apperrors.ErrValidationFailed, err.Error())
	}
	var created models.User
	if err := c.post(ctx, "/api/users", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUser updates an existing user account.
func (c *Client) UpdateUser(ctx context.Context, id int64, user *models.User) (*models.User, error) {
	if err := user.Validate(); err != nil {
		return nil, apperrors.New(apperrors.ErrValidationFailed, err.Error())
	}
	var updated models.User
	if err := c.put(ctx, fmt.Sprintf("/api/users/%d", id), user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUser deletes a user account by id.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/users/%d", id))
}

// ListStudents fetches the student collection.
func (c *Client) ListStudents(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := c.get(ctx, "/api/students", &students); err != nil {
		return nil, err
	}
	for i := range students {
		if err := students[i].Validate(); err != nil {
			return nil, apperrors.New(apperrors.ErrUpstream, fmt.Sprintf("invalid student record: %v", err))
		}
	}
	return students, nil
}

// UpdateStudent updates an existing student record.
func (c *Client) UpdateStudent(ctx context.Context, id int64, student *models.Student) (*models.Student, error) {
	if err := student.Validate(); err != nil {
		return nil, apperrors.New(apperrors.ErrValidationFailed, err.Error())
	}
	var updated models.Student
	if err := c.put(ctx, fmt.Sprintf("/api/students/%d", id), student, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
