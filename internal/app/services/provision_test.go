package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/app/models/dto"
	"github.com/ecemk/classboard/internal/pkg/apperrors"
)

type fakeProvisionBackend struct {
	fakeUserBackend
	departments []models.Department
	departErr   error

	userStarted chan struct{}
	userGate    chan struct{}
}

func (f *fakeProvisionBackend) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if f.userStarted != nil {
		f.userStarted <- struct{}{}
		<-f.userGate
	}
	return f.fakeUserBackend.CreateUser(ctx, user)
}

func (f *fakeProvisionBackend) CreateDepartment(ctx context.Context, d *models.Department) (*models.Department, error) {
	if f.departErr != nil {
		return nil, f.departErr
	}
	out := *d
	out.ID = int64(len(f.departments) + 100)
	f.departments = append(f.departments, out)
	return &out, nil
}

func provisionRequest() *dto.ProvisionUserRequest {
	return &dto.ProvisionUserRequest{
		IDNumber:        "T-900",
		Username:        "newinstructor",
		Email:           "new@uni.edu",
		FullName:        "New Instructor",
		Role:            "instructor",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestProvisionExistingDepartment(t *testing.T) {
	fake := &fakeProvisionBackend{fakeUserBackend: fakeUserBackend{users: seedUsers()}}
	users := NewUserViewService(&fake.fakeUserBackend, zerolog.Nop())
	svc := NewProvisionService(fake, users, zerolog.Nop())

	req := provisionRequest()
	req.DepartmentMode = "existing"
	req.DepartmentID = 4

	outcome, err := svc.Provision(context.Background(), req)
	if err != nil {
		t.Fatalf("provision failed: %v", err)
	}
	if outcome.User == nil || outcome.User.DepartmentID == nil || *outcome.User.DepartmentID != 4 {
		t.Fatalf("created user did not carry the selected department: %+v", outcome.User)
	}
	if outcome.CreatedDepartment != nil {
		t.Fatal("existing path should not create a department")
	}
}

func TestProvisionCreateNewDepartmentFirst(t *testing.T) {
	fake := &fakeProvisionBackend{fakeUserBackend: fakeUserBackend{users: seedUsers()}}
	users := NewUserViewService(&fake.fakeUserBackend, zerolog.Nop())
	svc := NewProvisionService(fake, users, zerolog.Nop())

	req := provisionRequest()
	req.DepartmentMode = "createNew"
	req.NewDepartmentName = "Marine Biology"

	outcome, err := svc.Provision(context.Background(), req)
	if err != nil {
		t.Fatalf("provision failed: %v", err)
	}
	if outcome.CreatedDepartment == nil || outcome.CreatedDepartment.Name != "Marine Biology" {
		t.Fatalf("department not created: %+v", outcome.CreatedDepartment)
	}
	if outcome.User.DepartmentID == nil || *outcome.User.DepartmentID != outcome.CreatedDepartment.ID {
		t.Fatal("user not linked to the new department")
	}
}

func TestProvisionDuplicateStopsBeforeUpstream(t *testing.T) {
	fake := &fakeProvisionBackend{fakeUserBackend: fakeUserBackend{users: seedUsers()}}
	users := NewUserViewService(&fake.fakeUserBackend, zerolog.Nop())
	if _, _, stale := users.List(context.Background(), dto.ListQuery{Page: 1, Size: 10}); stale {
		t.Fatal("seed fetch reported stale")
	}
	svc := NewProvisionService(fake, users, zerolog.Nop())

	req := provisionRequest()
	req.Email = "aysel@uni.edu"
	req.DepartmentMode = "existing"
	req.DepartmentID = 4

	before := len(fake.users)
	_, err := svc.Provision(context.Background(), req)
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("got %v, want duplicate email error", err)
	}
	if len(fake.users) != before {
		t.Fatal("duplicate request still reached the backend")
	}
}

func TestProvisionNonAdminNeedsDepartmentMode(t *testing.T) {
	fake := &fakeProvisionBackend{fakeUserBackend: fakeUserBackend{users: seedUsers()}}
	users := NewUserViewService(&fake.fakeUserBackend, zerolog.Nop())
	svc := NewProvisionService(fake, users, zerolog.Nop())

	_, err := svc.Provision(context.Background(), provisionRequest())
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("got %v, want validation failure", err)
	}
}

func TestProvisionValidatesFormFirst(t *testing.T) {
	fake := &fakeProvisionBackend{fakeUserBackend: fakeUserBackend{users: seedUsers()}}
	users := NewUserViewService(&fake.fakeUserBackend, zerolog.Nop())
	svc := NewProvisionService(fake, users, zerolog.Nop())

	req := provisionRequest()
	req.DepartmentMode = "existing"
	req.DepartmentID = 4
	req.ConfirmPassword = "different"

	before := len(fake.users)
	_, err := svc.Provision(context.Background(), req)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("got %v, want validation failure", err)
	}
	if len(fake.users) != before {
		t.Fatal("invalid request still reached the backend")
	}
}

func TestProvisionRejectsOverlappingSubmit(t *testing.T) {
	fake := &fakeProvisionBackend{
		fakeUserBackend: fakeUserBackend{users: seedUsers()},
		userStarted:     make(chan struct{}),
		userGate:        make(chan struct{}),
	}
	users := NewUserViewService(&fake.fakeUserBackend, zerolog.Nop())
	svc := NewProvisionService(fake, users, zerolog.Nop())

	req := provisionRequest()
	req.DepartmentMode = "existing"
	req.DepartmentID = 4

	done := make(chan error, 1)
	go func() {
		_, err := svc.Provision(context.Background(), req)
		done <- err
	}()
	<-fake.userStarted

	second := provisionRequest()
	second.Username = "anotherinstructor"
	second.Email = "another@uni.edu"
	second.DepartmentMode = "existing"
	second.DepartmentID = 4
	_, err := svc.Provision(context.Background(), second)
	if !errors.Is(err, apperrors.ErrSubmissionInFlight) {
		t.Fatalf("got %v, want in-flight rejection", err)
	}

	close(fake.userGate)
	if err := <-done; err != nil {
		t.Fatalf("first provision failed: %v", err)
	}
}

func TestProvisionAdminWithExplicitDepartment(t *testing.T) {
	fake := &fakeProvisionBackend{fakeUserBackend: fakeUserBackend{users: seedUsers()}}
	users := NewUserViewService(&fake.fakeUserBackend, zerolog.Nop())
	svc := NewProvisionService(fake, users, zerolog.Nop())

	req := provisionRequest()
	req.Role = "admin"
	req.DepartmentMode = "createNew"
	req.NewDepartmentName = "Registrar"

	outcome, err := svc.Provision(context.Background(), req)
	if err != nil {
		t.Fatalf("admin provisioning failed: %v", err)
	}
	if outcome.CreatedDepartment == nil || outcome.CreatedDepartment.Name != "Registrar" {
		t.Fatalf("department not created: %+v", outcome.CreatedDepartment)
	}
	if outcome.User.DepartmentID == nil || *outcome.User.DepartmentID != outcome.CreatedDepartment.ID {
		t.Fatal("admin's explicit department choice was dropped")
	}
}

func TestProvisionAdminSkipsDepartment(t *testing.T) {
	fake := &fakeProvisionBackend{fakeUserBackend: fakeUserBackend{users: seedUsers()}}
	users := NewUserViewService(&fake.fakeUserBackend, zerolog.Nop())
	svc := NewProvisionService(fake, users, zerolog.Nop())

	req := provisionRequest()
	req.Role = "admin"

	outcome, err := svc.Provision(context.Background(), req)
	if err != nil {
		t.Fatalf("admin provisioning failed: %v", err)
	}
	if outcome.User.DepartmentID != nil {
		t.Fatal("admin should not be assigned a department")
	}
}
