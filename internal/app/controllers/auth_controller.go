package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecemk/classboard/internal/app/models/dto"
	"github.com/ecemk/classboard/internal/app/services"
	"github.com/ecemk/classboard/internal/middleware"
)

// AuthController handles the session lifecycle.
type AuthController struct {
	auth         *services.AuthService
	cookieName   string
	cookieMaxAge int
	cookieSecure bool
}

// NewAuthController creates a new AuthController.
func NewAuthController(auth *services.AuthService, cookieName string, cookieMaxAge int, cookieSecure bool) *AuthController {
	return &AuthController{auth: auth, cookieName: cookieName, cookieMaxAge: cookieMaxAge, cookieSecure: cookieSecure}
}

// Login authenticates and opens a session
// @Summary Log in
// @Description Verifies credentials upstream and sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=models.User} "Logged in"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account deactivated"
// @Failure 502 {object} dto.ErrorResponse "Backend unreachable or login timed out"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Username and password are required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	user, token, err := c.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.SetCookie(c.cookieName, token, c.cookieMaxAge, "/", "", c.cookieSecure, true)
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}

// Logout closes the session
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse "Logged out"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.SetCookie(c.cookieName, "", -1, "/", "", c.cookieSecure, true)
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Logged out"))
}

// Profile returns the current session's user
// @Summary Session profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile retrieved"
// @Failure 401 {object} dto.ErrorResponse "No valid session"
// @Router /auth/profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	viewer, ok := middleware.SessionUser(ctx)
	if !ok {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ProfileResponse{LoggedIn: true, User: viewer}))
}

// ForgotPassword relays a password-reset request upstream
// @Summary Request a password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.APIResponse "Reset requested"
// @Router /auth/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A valid email is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	if err := c.auth.ForgotPassword(ctx, req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("If the account exists, a reset email is on its way"))
}
