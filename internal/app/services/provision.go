package services

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ecemk/classboard/internal/app/forms"
	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/app/models/dto"
	"github.com/ecemk/classboard/internal/app/provision"
	"github.com/ecemk/classboard/internal/pkg/apperrors"
)

// ProvisionService drives the user-creation workflow from one request
// payload: validate the form, resolve the department choice, run the
// two-phase submission, then refresh the users view. The form is the
// single provisioning dialog; its submit guard rejects overlapping
// requests.
type ProvisionService struct {
	backend provision.Backend
	users   *UserViewService
	form    *forms.Form
	logger  zerolog.Logger
}

// NewProvisionService creates the provisioning service.
func NewProvisionService(b provision.Backend, users *UserViewService, lgr zerolog.Logger) *ProvisionService {
	return &ProvisionService{backend: b, users: users, form: provisionForm(), logger: lgr}
}

// provisionForm carries the validator chains of the provisioning
// dialog. Department is the one conditional field: required for every
// role except admin.
func provisionForm() *forms.Form {
	f := forms.New()
	f.AddValidator("id_number", forms.Required("ID number"))
	f.AddValidator("username", forms.Required("Username"), forms.MinLen("Username", 3))
	f.AddValidator("email", forms.Required("Email"), forms.Email("Email"))
	f.AddValidator("full_name", forms.Required("Full name"))
	f.AddValidator("password", forms.Required("Password"), forms.MinLen("Password", 6))
	f.AddValidator("confirm_password", forms.EqualTo("Password confirmation", "password", "the password"))
	f.AddValidator("department", forms.RequiredUnless("Department", "role", "admin"))
	return f
}

// departmentField flattens the department choice to one form value so
// the conditional requirement can run over it.
func departmentField(req *dto.ProvisionUserRequest) string {
	switch req.DepartmentMode {
	case "existing":
		if req.DepartmentID > 0 {
			return strconv.FormatInt(req.DepartmentID, 10)
		}
		return ""
	case "createNew":
		return strings.TrimSpace(req.NewDepartmentName)
	}
	return ""
}

// firstFieldError picks a deterministic message out of a validation
// result.
func firstFieldError(errs map[string]string) string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return errs[fields[0]]
}

// Provision creates a user, optionally creating its department first.
// The local duplicate scan runs before anything goes upstream; it works
// on cached data, so the upstream conflict responses remain the final
// word.
func (s *ProvisionService) Provision(ctx context.Context, req *dto.ProvisionUserRequest) (*provision.Outcome, error) {
	s.form.SetField("id_number", req.IDNumber)
	s.form.SetField("username", req.Username)
	s.form.SetField("email", req.Email)
	s.form.SetField("full_name", req.FullName)
	s.form.SetField("role", req.Role)
	s.form.SetField("password", req.Password)
	s.form.SetField("confirm_password", req.ConfirmPassword)
	s.form.SetField("department", departmentField(req))

	var outcome provision.Outcome
	result := s.form.Submit(ctx, func(ctx context.Context, _ forms.Values) error {
		user := &models.User{
			IDNumber:     req.IDNumber,
			Username:     req.Username,
			Email:        req.Email,
			FullName:     req.FullName,
			Role:         models.Role(req.Role),
			Password:     req.Password,
			Status:       models.UserActive,
			IsFirstLogin: true,
		}
		if err := s.users.CheckDuplicate(user); err != nil {
			return err
		}

		wf := provision.New(s.backend, s.logger)
		switch req.DepartmentMode {
		case "existing":
			if err := wf.SelectExisting(req.DepartmentID); err != nil {
				return err
			}
		case "createNew":
			if err := wf.EnterNewDepartment(req.NewDepartmentName); err != nil {
				return err
			}
		}

		outcome = wf.Submit(ctx, user)
		return outcome.Err
	})

	switch {
	case result.FieldErrors != nil:
		return nil, apperrors.New(apperrors.ErrValidationFailed, firstFieldError(result.FieldErrors))
	case result.Err != nil:
		if outcome.Err != nil || outcome.CreatedDepartment != nil {
			return &outcome, result.Err
		}
		return nil, result.Err
	}

	if err := s.users.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("User list refresh after provisioning failed")
	}
	return &outcome, nil
}
