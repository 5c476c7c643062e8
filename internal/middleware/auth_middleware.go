package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecemk/classboard/internal/app/models"
	"github.com/ecemk/classboard/internal/app/models/dto"
	"github.com/ecemk/classboard/internal/pkg/auth"
)

// Context keys set by SessionAuth for downstream handlers.
const (
	ContextUserID       = "userID"
	ContextUsername     = "username"
	ContextRole         = "roleType"
	ContextDepartmentID = "departmentID"
)

// AuthMiddleware guards routes behind a valid session.
type AuthMiddleware struct {
	session    *auth.SessionService
	cookieName string
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(session *auth.SessionService, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{session: session, cookieName: cookieName}
}

// SessionAuth validates the session token from the cookie, falling back
// to the Authorization header for API clients, and stores the claims in
// the request context.
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(m.cookieName)
		if err != nil || tokenString == "" {
			tokenString, err = auth.ExtractBearerToken(c.GetHeader("Authorization"))
			if err != nil {
				detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
				return
			}
		}

		claims, err := m.session.Validate(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidSession
			message := "Invalid session"
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrorCodeExpiredSession
				message = "Session expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		if claims.DepartmentID != nil {
			c.Set(ContextDepartmentID, *claims.DepartmentID)
		}

		c.Next()
	}
}

// RoleRequired allows only the listed roles past. SessionAuth must have
// run first.
func (m *AuthMiddleware) RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists {
			detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
			return
		}

		roleStr, _ := role.(string)
		for _, allowed := range roles {
			if roleStr == string(allowed) {
				c.Next()
				return
			}
		}

		detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "You don't have sufficient permissions for this operation")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(detail))
	}
}

// SessionUser rebuilds the viewer from the context claims.
func SessionUser(c *gin.Context) (*models.User, bool) {
	userID, exists := c.Get(ContextUserID)
	if !exists {
		return nil, false
	}
	id, ok := userID.(int64)
	if !ok {
		return nil, false
	}
	user := &models.User{
		ID:       id,
		Username: c.GetString(ContextUsername),
		Role:     models.Role(c.GetString(ContextRole)),
	}
	if deptID, ok := c.Get(ContextDepartmentID); ok {
		if d, ok := deptID.(int64); ok {
			user.DepartmentID = &d
		}
	}
	return user, true
}
