package auth

import (
	"context"
	"strconv"
	"strings"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/logger"
)

// Principal is the authenticated caller of a request
type Principal struct {
	UserID   int64
	Username string
	Role     models.Role
	SchoolID *int64
}

// HasRole reports whether the principal's classified role is one of roles
func (p Principal) HasRole(roles ...models.Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// SchoolLookup loads schools for scope checks
type SchoolLookup interface {
	GetByID(ctx context.Context, id int64) (*models.School, error)
}

// AuthorizationService decides what a principal may act on
type AuthorizationService struct {
	schools SchoolLookup
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(schools SchoolLookup) *AuthorizationService {
	return &AuthorizationService{schools: schools}
}

// Authorize checks that the principal holds one of roles. Superusers pass every check.
func (s *AuthorizationService) Authorize(p Principal, roles ...models.Role) error {
	if p.Role == models.RoleSuperuser || p.HasRole(roles...) {
		return nil
	}
	return apperrors.NewForbiddenError("you don't have permission for this action")
}

// ResolveSchool returns the school a request acts on. Superusers choose it with
// requested (the X-School-ID header); everyone else is pinned to their own school.
func (s *AuthorizationService) ResolveSchool(ctx context.Context, p Principal, requested string) (*models.School, error) {
	requested = strings.TrimSpace(requested)

	var id int64
	if p.Role == models.RoleSuperuser {
		if requested == "" {
			return nil, apperrors.ErrSchoolRequired
		}
		parsed, err := strconv.ParseInt(requested, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, apperrors.NewBadRequestError("X-School-ID must be a positive integer")
		}
		id = parsed
	} else {
		if p.SchoolID == nil {
			return nil, apperrors.ErrSchoolRequired
		}
		id = *p.SchoolID
		if requested != "" && requested != strconv.FormatInt(id, 10) {
			logger.Warn().Int64("userID", p.UserID).Str("requested", requested).Msg("Cross-school access attempt")
			return nil, apperrors.NewForbiddenError("you cannot act on another school")
		}
	}

	school, err := s.schools.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !school.IsActive && p.Role != models.RoleSuperuser {
		return nil, apperrors.NewForbiddenError("school is deactivated")
	}
	return school, nil
}
