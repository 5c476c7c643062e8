// Package forms implements the form/validation controller behind every
// create and edit dialog: field values, per-field validator chains, and
// a submit guard against double submission.
package forms

import (
	"context"
	"sync"

	"github.com/ecemk/classboard/internal/pkg/apperrors"
)

// Values holds the current field values of a form.
type Values map[string]string

// Handler performs the actual submission once validation has passed.
type Handler func(ctx context.Context, values Values) error

// Result is the explicit outcome of a submission attempt. Exactly one
// of the failure fields is populated: FieldErrors when validation
// refused the submit, Err when the handler failed.
type Result struct {
	OK          bool
	FieldErrors map[string]string
	Err         error
}

// Form holds field values, per-field validators, and in-flight state.
type Form struct {
	mu         sync.Mutex
	values     Values
	validators map[string][]Validator
	submitting bool
}

// New creates an empty form.
func New() *Form {
	return &Form{
		values:     make(Values),
		validators: make(map[string][]Validator),
	}
}

// SetField sets the current value of a field.
func (f *Form) SetField(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = value
}

// Field returns the current value of a field.
func (f *Form) Field(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

// AddValidator appends validators to the named field's chain.
func (f *Form) AddValidator(field string, validators ...Validator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.validators[field] = append(f.validators[field], validators...)
}

// Validate runs every field's chain and returns the first error message
// per field. An empty map means the form is valid. Validation errors
// persist until the offending value changes; they never auto-dismiss.
func (f *Form) Validate() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form) validateLocked() map[string]string {
	errs := make(map[string]string)
	for field, chain := range f.validators {
		for _, v := range chain {
			if msg := v(f.values[field], f.values); msg != "" {
				errs[field] = msg
				break
			}
		}
	}
	return errs
}

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Submit validates and, when clean, invokes the handler with a snapshot
// of the values. Validation failure means the handler is never called.
// The submitting flag rejects overlapping submissions. Success clears
// the form; failure leaves the entered values intact for correction.
func (f *Form) Submit(ctx context.Context, handler Handler) Result {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return Result{Err: apperrors.ErrSubmissionInFlight}
	}
	if errs := f.validateLocked(); len(errs) > 0 {
		f.mu.Unlock()
		return Result{FieldErrors: errs}
	}
	f.submitting = true
	snapshot := make(Values, len(f.values))
	for k, v := range f.values {
		snapshot[k] = v
	}
	f.mu.Unlock()

	err := handler(ctx, snapshot)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		return Result{Err: err}
	}
	f.values = make(Values)
	return Result{OK: true}
}
