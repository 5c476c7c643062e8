// Package provision implements the guided user-creation workflow: pick
// an existing department or create a new one, then create the user with
// the resolved department reference.
package provision

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/pkg/apperrors"
)

// State identifies where the workflow currently is.
type State string

const (
	StateChoosingDepartmentMode State = "choosing_department_mode"
	StateExistingSelected       State = "existing_selected"
	StateCreateNewEntered       State = "create_new_entered"
	StateSubmitting             State = "submitting"
)

// Backend is the slice of the upstream client the workflow needs.
type Backend interface {
	CreateDepartment(ctx context.Context, department *models.Department) (*models.Department, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
}

// Outcome is the explicit result of one submission. CreatedDepartment
// is set when the create-new path ran; on failure after a successful
// department create it still points at the department left behind
// (two-phase, not transactional).
type Outcome struct {
	User              *models.User
	CreatedDepartment *models.Department
	Err               error
}

// Workflow drives the department-then-user creation sequence. Both
// terminal outcomes reset it to the choosing state with cleared input.
type Workflow struct {
	mu      sync.Mutex
	backend Backend
	logger  zerolog.Logger

	state             State
	departmentID      int64
	newDepartmentName string
}

// New creates a workflow in the choosing state.
func New(backend Backend, lgr zerolog.Logger) *Workflow {
	return &Workflow{backend: backend, logger: lgr, state: StateChoosingDepartmentMode}
}

// State returns the current workflow state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SelectExisting picks one department from the fetched list.
func (w *Workflow) SelectExisting(departmentID int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSubmitting {
		return apperrors.ErrSubmissionInFlight
	}
	if departmentID <= 0 {
		return apperrors.New(apperrors.ErrValidationFailed, "a department must be selected")
	}
	w.state = StateExistingSelected
	w.departmentID = departmentID
	w.newDepartmentName = ""
	return nil
}

// EnterNewDepartment records the name of a department to create during
// submission. The name must be non-empty.
func (w *Workflow) EnterNewDepartment(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSubmitting {
		return apperrors.ErrSubmissionInFlight
	}
	if strings.TrimSpace(name) == "" {
		return apperrors.New(apperrors.ErrValidationFailed, "department name cannot be empty")
	}
	w.state = StateCreateNewEntered
	w.newDepartmentName = strings.TrimSpace(name)
	w.departmentID = 0
	return nil
}

// Reset returns the workflow to the choosing state and clears input.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}

func (w *Workflow) reset() {
	w.state = StateChoosingDepartmentMode
	w.departmentID = 0
	w.newDepartmentName = ""
}

// Submit runs the two-phase sequence. In the create-new path the
// department request fires first; the user-create request is never
// attempted when it fails. Admins may skip the department choice, but
// an explicit choice is honored for every role. The workflow resets
// afterwards whatever the outcome.
func (w *Workflow) Submit(ctx context.Context, user *models.User) Outcome {
	w.mu.Lock()
	if w.state == StateSubmitting {
		w.mu.Unlock()
		return Outcome{Err: apperrors.ErrSubmissionInFlight}
	}

	isAdmin := user.Role == models.RoleAdmin
	if !isAdmin && w.state == StateChoosingDepartmentMode {
		w.mu.Unlock()
		return Outcome{Err: apperrors.New(apperrors.ErrValidationFailed, "choose or create a department first")}
	}

	prior := w.state
	departmentID := w.departmentID
	newName := w.newDepartmentName
	w.state = StateSubmitting
	w.mu.Unlock()

	outcome := w.submit(ctx, user, prior, departmentID, newName)

	w.mu.Lock()
	w.reset()
	w.mu.Unlock()
	return outcome
}

func (w *Workflow) submit(ctx context.Context, user *models.User, prior State, departmentID int64, newName string) Outcome {
	var created *models.Department

	switch prior {
	case StateCreateNewEntered:
		department, err := w.backend.CreateDepartment(ctx, &models.Department{Name: newName})
		if err != nil {
			w.logger.Warn().Err(err).Str("department", newName).Msg("Department creation failed, aborting user creation")
			return Outcome{Err: apperrors.New(apperrors.ErrDepartmentCreateFailed, apperrors.UpstreamMessage(err, ""))}
		}
		created = department
		user.DepartmentID = &department.ID
	case StateExistingSelected:
		user.DepartmentID = &departmentID
	}

	createdUser, err := w.backend.CreateUser(ctx, user)
	if err != nil {
		// The department, if just created, stays behind: the backend
		// offers no compensating delete within this workflow.
		return Outcome{CreatedDepartment: created, Err: err}
	}

	return Outcome{User: createdUser, CreatedDepartment: created}
}
