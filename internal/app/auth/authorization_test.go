package auth

import (
	"context"
	"testing"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type schoolMap map[int64]*models.School

func (m schoolMap) GetByID(_ context.Context, id int64) (*models.School, error) {
	if s, ok := m[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrSchoolNotFound
}

func ptr(v int64) *int64 { return &v }

func TestAuthorize(t *testing.T) {
	svc := NewAuthorizationService(schoolMap{})

	assert.NoError(t, svc.Authorize(Principal{Role: models.RoleSchoolAdmin}, models.RoleSchoolAdmin))
	assert.NoError(t, svc.Authorize(Principal{Role: models.RoleSuperuser}, models.RoleSchoolAdmin))
	assert.NoError(t, svc.Authorize(Principal{Role: models.RoleTeacher}, models.RoleSchoolAdmin, models.RoleTeacher))
	assert.ErrorIs(t, svc.Authorize(Principal{Role: models.RoleStudent}, models.RoleSchoolAdmin), apperrors.ErrPermissionDenied)
}

func TestResolveSchool(t *testing.T) {
	schools := schoolMap{
		1: {ID: 1, Code: "TEST", IsActive: true},
		2: {ID: 2, Code: "OTH", IsActive: true},
		3: {ID: 3, Code: "OFF", IsActive: false},
	}
	svc := NewAuthorizationService(schools)
	ctx := context.Background()

	admin := Principal{UserID: 10, Role: models.RoleSchoolAdmin, SchoolID: ptr(1)}
	school, err := svc.ResolveSchool(ctx, admin, "")
	require.NoError(t, err)
	assert.Equal(t, "TEST", school.Code)

	school, err = svc.ResolveSchool(ctx, admin, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), school.ID)

	_, err = svc.ResolveSchool(ctx, admin, "2")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.ResolveSchool(ctx, Principal{Role: models.RoleTeacher, SchoolID: ptr(3)}, "")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.ResolveSchool(ctx, Principal{Role: models.RoleUser}, "")
	assert.ErrorIs(t, err, apperrors.ErrSchoolRequired)

	super := Principal{UserID: 1, Role: models.RoleSuperuser}
	_, err = svc.ResolveSchool(ctx, super, "")
	assert.ErrorIs(t, err, apperrors.ErrSchoolRequired)

	_, err = svc.ResolveSchool(ctx, super, "abc")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	school, err = svc.ResolveSchool(ctx, super, " 3 ")
	require.NoError(t, err)
	assert.False(t, school.IsActive)

	_, err = svc.ResolveSchool(ctx, super, "99")
	assert.ErrorIs(t, err, apperrors.ErrSchoolNotFound)
}
