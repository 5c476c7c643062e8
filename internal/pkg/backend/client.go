// Package backend is the typed client for the upstream scheduling API.
// Every collection the dashboards display is fetched through it, and
// every create/update/delete is written back through it. Responses are
// validated at this boundary so malformed records never reach a view.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ecemk/classboard/internal/pkg/apperrors"
)

// Client talks to the scheduling backend over HTTP/JSON. Request
// budgets are enforced through context deadlines rather than an
// http.Client timeout, so the login call can carry a wider window than
// the general one.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	timeout      time.Duration
	loginTimeout time.Duration
	logger       zerolog.Logger
}

// Config holds client construction parameters.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// LoginTimeout is the give-up window applied to the login call
	// only; unlike the original client-side timer it really cancels
	// the request.
	LoginTimeout time.Duration
}

// NewClient creates a backend client.
func NewClient(cfg Config, lgr zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	loginTimeout := cfg.LoginTimeout
	if loginTimeout <= 0 {
		loginTimeout = 30 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:   &http.Client{},
		timeout:      timeout,
		loginTimeout: loginTimeout,
		logger:       lgr,
	}
}

// upstreamError is the error body shape the backend uses for
// rejections. Some endpoints say "message", older ones say "error".
type upstreamError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e *upstreamError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// doJSON performs one request and decodes the response into out (when
// non-nil). Transport failures map to ErrUpstream; non-2xx statuses map
// to a sentinel per status code, carrying the backend's message
// verbatim when one was supplied.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("Upstream request failed")
		return apperrors.New(apperrors.ErrUpstream, "")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.statusError(resp, method, path)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("Malformed upstream response body")
		return apperrors.New(apperrors.ErrUpstream, "malformed response from server")
	}
	return nil
}

// statusError maps a non-2xx upstream response to an application error.
func (c *Client) statusError(resp *http.Response, method, path string) error {
	var body upstreamError
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &body)

	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = apperrors.ErrBadRequest
	case http.StatusUnauthorized:
		sentinel = apperrors.ErrInvalidCredentials
	case http.StatusForbidden:
		sentinel = apperrors.ErrPermissionDenied
	case http.StatusNotFound:
		sentinel = apperrors.ErrResourceNotFound
	case http.StatusConflict:
		sentinel = apperrors.ErrResourceAlreadyExists
	default:
		sentinel = apperrors.ErrUpstreamRejected
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Str("method", method).
		Str("path", path).
		Str("upstreamMessage", body.text()).
		Msg("Upstream rejected request")

	return apperrors.New(sentinel, body.text())
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
