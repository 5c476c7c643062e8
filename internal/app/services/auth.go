package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/pkg/auth"
	"github.com/ecemk/classboard/internal/pkg/backend"
)

// AuthBackend is the slice of the upstream client the session flow
// needs.
type AuthBackend interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) error
}

var _ AuthBackend = (*backend.Client)(nil)

// AuthService authenticates against the upstream backend and mints the
// local session token the dashboards run on.
type AuthService struct {
	backend AuthBackend
	session *auth.SessionService
	logger  zerolog.Logger
}

// NewAuthService creates the auth service.
func NewAuthService(b AuthBackend, session *auth.SessionService, lgr zerolog.Logger) *AuthService {
	return &AuthService{backend: b, session: session, logger: lgr}
}

// Login verifies credentials upstream and returns the authenticated
// user plus a signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.backend.Login(ctx, username, password)
	if err != nil {
		s.logger.Debug().Err(err).Str("username", username).Msg("Login rejected")
		return nil, "", err
	}
	token, err := s.session.Generate(user)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("User logged in")
	return user, token, nil
}

// Validate checks a session token and returns its claims.
func (s *AuthService) Validate(token string) (*auth.Claims, error) {
	return s.session.Validate(token)
}

// ForgotPassword relays the reset request upstream.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.backend.ForgotPassword(ctx, email)
}
