package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	appAuth "github.com/edutrack/schoolms/internal/app/auth"
	"github.com/edutrack/schoolms/internal/app/models"
)

// gin context keys
const (
	principalKey = "principal"
	schoolKey    = "school"
	requestIDKey = "requestID"
)

type principalCtxKey struct{}
type schoolCtxKey struct{}

// setPrincipal stores p on the gin context and on the request context
func setPrincipal(c *gin.Context, p appAuth.Principal) {
	c.Set(principalKey, p)
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), principalCtxKey{}, p))
}

func setSchool(c *gin.Context, school *models.School) {
	c.Set(schoolKey, school)
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), schoolCtxKey{}, school))
}

// GetPrincipal returns the authenticated caller set by JWTAuth
func GetPrincipal(c *gin.Context) (appAuth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return appAuth.Principal{}, false
	}
	p, ok := v.(appAuth.Principal)
	return p, ok
}

// GetSchool returns the school resolved by SchoolScope
func GetSchool(c *gin.Context) (*models.School, bool) {
	v, ok := c.Get(schoolKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*models.School)
	return s, ok && s != nil
}

// SchoolID returns the id of the school resolved by SchoolScope, or 0
func SchoolID(c *gin.Context) int64 {
	if s, ok := GetSchool(c); ok {
		return s.ID
	}
	return 0
}

// PrincipalFromContext reads the principal from a request context
func PrincipalFromContext(ctx context.Context) (appAuth.Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(appAuth.Principal)
	return p, ok
}

// SchoolFromContext reads the scoped school from a request context
func SchoolFromContext(ctx context.Context) (*models.School, bool) {
	s, ok := ctx.Value(schoolCtxKey{}).(*models.School)
	return s, ok && s != nil
}

// GetRequestID returns the id assigned by RequestID
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
