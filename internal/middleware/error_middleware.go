package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecemk/classboard/internal/app/models/dto"
	"github.com/ecemk/classboard/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses. Upstream
// rejection messages pass through verbatim so the user sees what the
// backend actually said.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, apperrors.UpstreamMessage(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, apperrors.UpstreamMessage(err, "Invalid credentials"))
	case errors.Is(err, apperrors.ErrAccountDeactivated):
		respond(c, http.StatusForbidden, dto.ErrorCodeAccountDeactivated, "Account is deactivated")
	case errors.Is(err, apperrors.ErrSessionExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredSession, "Session expired")
	case errors.Is(err, apperrors.ErrSessionInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidSession, "Invalid session")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, apperrors.UpstreamMessage(err, "Permission denied"))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrUsernameAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Username already exists")
	case errors.Is(err, apperrors.ErrIDNumberAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "ID number already exists")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, apperrors.UpstreamMessage(err, "Resource already exists"))
	case errors.Is(err, apperrors.ErrDepartmentCreateFailed):
		respond(c, http.StatusBadGateway, dto.ErrorCodeUpstreamRejected, apperrors.UpstreamMessage(err, "Department creation failed"))
	case errors.Is(err, apperrors.ErrSubmissionInFlight):
		respond(c, http.StatusConflict, dto.ErrorCodeValidationFailed, "A submission is already in progress")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, apperrors.UpstreamMessage(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrUpstreamRejected):
		respond(c, http.StatusBadGateway, dto.ErrorCodeUpstreamRejected, apperrors.UpstreamMessage(err, "Upstream request rejected"))
	case errors.Is(err, apperrors.ErrUpstream):
		respond(c, http.StatusBadGateway, dto.ErrorCodeUpstreamUnavailable, apperrors.UpstreamMessage(err, "network error"))
	default:
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
