package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/ecemk/classboard/internal/pkg/apperrors"

	"github.com/ecemk/classboard/internal/app/models"
)

// LoginRequest carries credentials to the upstream auth endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileResponse is the shape of GET /api/auth/profile.
type ProfileResponse struct {
	LoggedIn bool         `json:"loggedIn"`
	User     *models.User `json:"user,omitempty"`
}

// Login authenticates against the upstream backend. The configured
// login give-up window bounds the whole call, independent of the
// general request timeout; on expiry the request is cancelled and the
// caller gets a plain upstream error to surface.
func (c *Client) Login(ctx context.Context, username, password string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.loginTimeout)
	defer cancel()

	var user models.User
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", LoginRequest{Username: username, Password: password}, &user)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperrors.New(apperrors.ErrUpstream, "login timed out, please try again")
		}
		return nil, err
	}

	if !user.Role.Valid() {
		return nil, apperrors.New(apperrors.ErrUpstream, "malformed response from server")
	}
	if user.Status == models.UserDeactivated {
		return nil, apperrors.New(apperrors.ErrAccountDeactivated, "")
	}
	return &user, nil
}

// Profile resolves the current session against the upstream
// credential-cookie endpoint.
func (c *Client) Profile(ctx context.Context) (*ProfileResponse, error) {
	var profile ProfileResponse
	if err := c.get(ctx, "/api/auth/profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ForgotPassword triggers the upstream password-reset flow. Email
// delivery happens entirely server-side.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.post(ctx, "/api/auth/forgot-password", body, nil)
}
