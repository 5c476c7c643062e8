package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Session errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionInvalid     = errors.New("invalid session")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrPermissionDenied   = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Upstream errors. ErrUpstream covers transport-level failures
	// (connection refused, timeout); ErrUpstreamRejected carries a
	// business rejection whose message the backend supplied.
	ErrUpstream         = errors.New("network error")
	ErrUpstreamRejected = errors.New("request rejected by server")
)

// Duplicate-detection errors. These come from the best-effort linear
// scan over a cached collection, never from the backend.
var (
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrIDNumberAlreadyExists = errors.New("id number already exists")
)

// Workflow errors
var (
	ErrDepartmentCreateFailed = errors.New("department creation failed")
	ErrSubmissionInFlight     = errors.New("a submission is already in flight")
)

// CustomError carries an underlying sentinel plus context for the
// response layer. Message holds the backend's verbatim text when one
// was supplied.
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the underlying sentinel to errors.Is.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// New creates a CustomError wrapping the given sentinel.
func New(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithCode attaches an error code.
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithDetails attaches context details.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// UpstreamMessage extracts the backend's verbatim rejection message from
// err, or returns fallback when none is available. Business-rule
// rejections surface the backend's own wording; transport failures fall
// back to generic text.
func UpstreamMessage(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}
