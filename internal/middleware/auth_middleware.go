package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appAuth "github.com/edutrack/schoolms/internal/app/auth"
	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/auth"
)

// SchoolHeader lets a superuser pick the school a request acts on
const SchoolHeader = "X-School-ID"

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	authz      *appAuth.AuthorizationService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, authz *appAuth.AuthorizationService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		authz:      authz,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message, details string) {
	errorDetail := dto.NewErrorDetail(code, message).WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// tokenFromRequest reads the bearer token from the Authorization header. Browsers
// cannot set headers on websocket upgrades, so the token query parameter is accepted too.
func tokenFromRequest(c *gin.Context) (string, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		if queryToken := c.Query("token"); queryToken != "" {
			return queryToken, true
		}
		return "", false
	}

	// Some clients wrap the header value in quotes
	authHeader = strings.Trim(authHeader, "\"'")
	token, err := auth.ExtractBearerToken(authHeader)
	if err != nil || strings.Count(token, ".") != 2 {
		return "", false
	}
	return token, true
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := tokenFromRequest(c)
		if !ok {
			details := "Authorization header missing"
			if c.GetHeader("Authorization") != "" {
				details = "Invalid token format"
			}
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", details)
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Authentication failed", "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Authentication failed", "Invalid token")
			return
		}

		setPrincipal(c, appAuth.Principal{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
			SchoolID: claims.SchoolID,
		})
		c.Next()
	}
}

// RequireRoles lets the request through when the principal holds one of roles.
// Superusers always pass.
func (m *AuthMiddleware) RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "User role not found")
			return
		}
		if err := m.authz.Authorize(p, roles...); err != nil {
			HandleAPIError(c, err)
			return
		}
		c.Next()
	}
}

// SchoolScope resolves the school the request acts on and stores it on the context
func (m *AuthMiddleware) SchoolScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authentication required", "User information not found")
			return
		}
		school, err := m.authz.ResolveSchool(c.Request.Context(), p, c.GetHeader(SchoolHeader))
		if err != nil {
			HandleAPIError(c, err)
			return
		}
		setSchool(c, school)
		c.Next()
	}
}
