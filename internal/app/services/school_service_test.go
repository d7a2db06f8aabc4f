package services

import (
	"context"
	"strings"
	"testing"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchoolCodeFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Test Academy", "TA"},
		{"Accra Academy Senior High School", "AAS"},
		{"St. Mary's College", "SMS"},
		{"Achimota", "ACHI"},
		{"Abc", "ABC"},
		{"  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SchoolCodeFromName(tt.name))
		})
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "st-mary-s-college", Slugify("St. Mary's College"))
	assert.Equal(t, "test-academy", Slugify("  Test   Academy "))
	assert.Equal(t, "", Slugify("!!!"))
}

func schoolRequest(name, code, username string) *dto.CreateSchoolRequest {
	return &dto.CreateSchoolRequest{
		Name:       name,
		Code:       code,
		SchoolType: models.SchoolTypeBasic,
		Ownership:  models.OwnershipPrivate,
		Admin: dto.AccountRequest{
			Username:  username,
			Email:     strings.ToUpper(username[:1]) + username[1:] + "@Example.com",
			Password:  "Adm1nPass",
			FirstName: "Kwame",
			LastName:  "Boateng",
		},
	}
}

func newSchoolService(m *memDB) *SchoolService {
	d := m.deps()
	return NewSchoolService(d.Tx, d.Schools, d.Users, nil, 0, zerolog.Nop())
}

func TestSchoolCreate(t *testing.T) {
	m := newMemDB()
	svc := newSchoolService(m)
	ctx := context.Background()

	resp, err := svc.Create(ctx, schoolRequest("Test Academy", "", "head.one"))
	require.NoError(t, err)
	assert.Equal(t, "TA", resp.School.Code)
	assert.Equal(t, "test-academy", resp.School.Slug)
	assert.Equal(t, 3, resp.School.TermsPerYear)
	assert.Equal(t, 9, resp.School.AcademicYearStartMonth)
	assert.True(t, resp.School.IsActive)
	require.NotNil(t, resp.Admin)
	assert.Equal(t, models.RoleSchoolAdmin, resp.Admin.Role)

	// derived codes and slugs get numeric suffixes
	resp, err = svc.Create(ctx, schoolRequest("Tema Academy", "", "head.two"))
	require.NoError(t, err)
	assert.Equal(t, "TA1", resp.School.Code)
	assert.Equal(t, "tema-academy", resp.School.Slug)

	resp, err = svc.Create(ctx, schoolRequest("Test Academy", "tst", "head.three"))
	require.NoError(t, err)
	assert.Equal(t, "TST", resp.School.Code)
	assert.Equal(t, "test-academy-2", resp.School.Slug)
}

func TestSchoolCreate_Errors(t *testing.T) {
	m := newMemDB()
	svc := newSchoolService(m)
	ctx := context.Background()

	_, err := svc.Create(ctx, schoolRequest("Test Academy", "TEST", "head.one"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, schoolRequest("Other School", "test", "head.two"))
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.Create(ctx, schoolRequest("Other School", "OS", "head.one"))
	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)

	// admin emails are unique across schools, compared without case
	sameEmail := schoolRequest("Other School", "OS", "head.four")
	sameEmail.Admin.Email = "HEAD.ONE@example.com"
	_, err = svc.Create(ctx, sameEmail)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	weak := schoolRequest("Other School", "", "head.three")
	weak.Admin.Password = "password"
	_, err = svc.Create(ctx, weak)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// the failed transactions left nothing behind
	total, _, err := memSchools{m}.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestSchoolUpdate(t *testing.T) {
	m := newMemDB()
	svc := newSchoolService(m)
	ctx := context.Background()

	resp, err := svc.Create(ctx, schoolRequest("Test Academy", "TEST", "head.one"))
	require.NoError(t, err)

	name := "Test Academy Annex"
	color := "#aabbcc"
	school, err := svc.Update(ctx, resp.School.ID, &dto.UpdateSchoolRequest{Name: &name, PrimaryColor: &color})
	require.NoError(t, err)
	assert.Equal(t, "TEST", school.Code)
	assert.Equal(t, "test-academy-annex", school.Slug)
	assert.Equal(t, "#AABBCC", school.PrimaryColor)

	bad := "blue"
	_, err = svc.Update(ctx, resp.School.ID, &dto.UpdateSchoolRequest{AccentColor: &bad})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
