package services

import (
	"context"
	"testing"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectCreate_DerivesCodes(t *testing.T) {
	m := newMemDB()
	school := m.addSchool(models.School{Name: "Test Academy", Code: "TEST", IsActive: true})
	svc := NewSubjectService(memSubjects{m}, zerolog.Nop())
	ctx := context.Background()

	english, err := svc.Create(ctx, school.ID, &dto.SubjectRequest{Name: " English Language "})
	require.NoError(t, err)
	assert.Equal(t, "English Language", english.Name)
	assert.Equal(t, "ENG", english.Code)
	assert.Equal(t, models.SubjectCore, english.Type)
	assert.True(t, english.IsActive)

	engineering, err := svc.Create(ctx, school.ID, &dto.SubjectRequest{Name: "Engineering Drawing", Type: models.SubjectElective})
	require.NoError(t, err)
	assert.Equal(t, "ENG1", engineering.Code)
	assert.Equal(t, models.SubjectElective, engineering.Type)

	french, err := svc.Create(ctx, school.ID, &dto.SubjectRequest{Name: "French", Code: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "FR", french.Code)

	// another school has its own catalogue
	other := m.addSchool(models.School{Name: "Other School", Code: "OS", IsActive: true})
	otherEnglish, err := svc.Create(ctx, other.ID, &dto.SubjectRequest{Name: "English Language"})
	require.NoError(t, err)
	assert.Equal(t, "ENG", otherEnglish.Code)
}

func TestSubjectCreate_Errors(t *testing.T) {
	m := newMemDB()
	school := m.addSchool(models.School{Name: "Test Academy", Code: "TEST", IsActive: true})
	svc := NewSubjectService(memSubjects{m}, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, school.ID, &dto.SubjectRequest{Name: "Mathematics"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  dto.SubjectRequest
		want error
	}{
		{"duplicate name", dto.SubjectRequest{Name: "mathematics"}, apperrors.ErrSubjectAlreadyExists},
		{"duplicate code", dto.SubjectRequest{Name: "Music", Code: "mat"}, apperrors.ErrSubjectAlreadyExists},
		{"unknown type", dto.SubjectRequest{Name: "Music", Type: "optional"}, apperrors.ErrValidationFailed},
		{"short name", dto.SubjectRequest{Name: " M "}, apperrors.ErrValidationFailed},
		{"no letters", dto.SubjectRequest{Name: "+++"}, apperrors.ErrValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, school.ID, &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSubjectUpdateAndSummary(t *testing.T) {
	m := newMemDB()
	school := m.addSchool(models.School{Name: "Test Academy", Code: "TEST", IsActive: true})
	svc := NewSubjectService(memSubjects{m}, zerolog.Nop())
	ctx := context.Background()

	music, err := svc.Create(ctx, school.ID, &dto.SubjectRequest{Name: "Music"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, school.ID, &dto.SubjectRequest{Name: "Football", Type: models.SubjectExtracurricular})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, school.ID, music.ID, &dto.SubjectRequest{
		Name: "Music and Dance", Type: models.SubjectElective, Description: "Performing arts",
	})
	require.NoError(t, err)
	assert.Equal(t, "MUS", updated.Code)
	assert.Equal(t, models.SubjectElective, updated.Type)

	_, err = svc.Update(ctx, school.ID, music.ID, &dto.SubjectRequest{Name: "Football"})
	assert.ErrorIs(t, err, apperrors.ErrSubjectAlreadyExists)

	summary, err := svc.Summary(ctx, school.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Total)
	assert.Equal(t, map[models.SubjectType]int64{
		models.SubjectCore:            0,
		models.SubjectElective:        1,
		models.SubjectExtracurricular: 1,
	}, summary.ByType)

	list, total, err := svc.List(ctx, school.ID, dto.SubjectFilter{Type: models.SubjectElective})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Music and Dance", list[0].Name)
}

func TestTeacherSubjects_AssignFilterAndDelete(t *testing.T) {
	m := newMemDB()
	school := m.addSchool(models.School{Name: "Test Academy", Code: "TEST", IsActive: true})
	d := m.deps()
	subjects := NewSubjectService(d.Subjects, zerolog.Nop())
	teachers := NewTeacherService(d)
	ctx := context.Background()

	maths, err := subjects.Create(ctx, school.ID, &dto.SubjectRequest{Name: "Mathematics"})
	require.NoError(t, err)
	physics, err := subjects.Create(ctx, school.ID, &dto.SubjectRequest{Name: "Physics", Type: models.SubjectElective})
	require.NoError(t, err)

	created, err := teachers.Create(ctx, school.ID, &dto.CreateTeacherRequest{
		PersonRequest: dto.PersonRequest{FirstName: "Kwame", LastName: "Boateng", Gender: "M", DateOfBirth: "1988-07-01"},
		SubjectIDs:    []int64{maths.ID},
	})
	require.NoError(t, err)
	id := created.Teacher.ID
	require.Len(t, created.Teacher.Subjects, 1)

	// the subject filter only matches assigned teachers
	list, total, err := teachers.List(ctx, school.ID, dto.TeacherFilter{SubjectID: physics.ID})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)

	ids := []int64{physics.ID, maths.ID}
	updated, err := teachers.Update(ctx, school.ID, id, &dto.UpdateTeacherRequest{SubjectIDs: &ids})
	require.NoError(t, err)
	require.Len(t, updated.Subjects, 2)

	list, total, err = teachers.List(ctx, school.ID, dto.TeacherFilter{SubjectID: physics.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list[0].Subjects, 2)
	assert.Equal(t, "Mathematics", list[0].Subjects[0].Name)

	// an update that leaves subjects out keeps them
	qualification := "M.Sc"
	updated, err = teachers.Update(ctx, school.ID, id, &dto.UpdateTeacherRequest{Qualification: &qualification})
	require.NoError(t, err)
	assert.Len(t, updated.Subjects, 2)

	assert.ErrorIs(t, subjects.Delete(ctx, school.ID, physics.ID), apperrors.ErrSubjectInUse)

	// inactive subjects cannot be newly assigned but can be removed
	require.NoError(t, subjects.SetActive(ctx, school.ID, physics.ID, false))
	_, err = teachers.Create(ctx, school.ID, &dto.CreateTeacherRequest{
		PersonRequest: dto.PersonRequest{FirstName: "Efua", LastName: "Asante", Gender: "F", DateOfBirth: "1990-02-11"},
		SubjectIDs:    []int64{physics.ID},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	only := []int64{maths.ID}
	_, err = teachers.Update(ctx, school.ID, id, &dto.UpdateTeacherRequest{SubjectIDs: &only})
	require.NoError(t, err)
	require.NoError(t, subjects.Delete(ctx, school.ID, physics.ID))

	got, err := teachers.Get(ctx, school.ID, id)
	require.NoError(t, err)
	require.Len(t, got.Subjects, 1)
	assert.Equal(t, maths.ID, got.Subjects[0].ID)
	_, err = subjects.Get(ctx, school.ID, physics.ID)
	assert.ErrorIs(t, err, apperrors.ErrSubjectNotFound)
}
