package services

import (
	"context"
	"testing"
	"time"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(d Deps) (*AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "schoolms-test",
	})
	return NewAuthService(d.Users, d.Tokens, d.Students, d.Teachers, d.Guardians, jwtService, d.Logger), jwtService
}

func enrolWithAccount(t *testing.T, f *studentFixture) *dto.StudentCreatedResponse {
	t.Helper()
	req := createRequest("Kofi", "kofi@example.com")
	req.CreateAccount = true
	req.ClassID = &f.class.ID
	resp, err := f.svc.Create(context.Background(), f.school.ID, req)
	require.NoError(t, err)
	require.NotNil(t, resp.Credentials)
	return resp
}

func TestLogin_StudentRedirectAndProfile(t *testing.T) {
	f := newStudentFixture(t)
	created := enrolWithAccount(t, f)
	svc, jwtService := newAuthService(f.deps)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Identifier: created.Credentials.Username,
		Password:   created.Credentials.Password,
	})
	require.NoError(t, err)
	assert.Equal(t, "/student/dashboard", resp.RedirectPath)
	assert.Equal(t, models.RoleStudent, resp.User.Role)
	assert.Equal(t, "student", resp.Profile.Kind)
	profile, ok := resp.Profile.Data.(models.StudentProfile)
	require.True(t, ok)
	assert.Equal(t, created.Student.StudentID, profile.Student.StudentID)

	claims, err := jwtService.ValidateToken(resp.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.Equal(t, &f.school.ID, claims.SchoolID)

	// sign-in by email works too
	_, err = svc.Login(context.Background(), &dto.LoginRequest{Identifier: "kofi@example.com", Password: created.Credentials.Password})
	assert.NoError(t, err)
}

func TestLogin_Failures(t *testing.T) {
	f := newStudentFixture(t)
	created := enrolWithAccount(t, f)
	svc, _ := newAuthService(f.deps)
	ctx := context.Background()

	_, err := svc.Login(ctx, &dto.LoginRequest{Identifier: created.Credentials.Username, Password: "wrong-pass1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Identifier: "nobody", Password: "whatever1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.svc.SetStatus(ctx, f.school.ID, created.Student.ID, models.StudentStatusSuspended)
	require.NoError(t, err)
	_, err = svc.Login(ctx, &dto.LoginRequest{Identifier: created.Credentials.Username, Password: created.Credentials.Password})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshToken_Rotates(t *testing.T) {
	f := newStudentFixture(t)
	created := enrolWithAccount(t, f)
	svc, _ := newAuthService(f.deps)
	ctx := context.Background()

	login, err := svc.Login(ctx, &dto.LoginRequest{Identifier: created.Credentials.Username, Password: created.Credentials.Password})
	require.NoError(t, err)

	next, err := svc.RefreshToken(ctx, login.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.Token.RefreshToken, next.RefreshToken)

	_, err = svc.RefreshToken(ctx, login.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	require.NoError(t, svc.Logout(ctx, next.RefreshToken))
	_, err = svc.RefreshToken(ctx, next.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	_, err = svc.RefreshToken(ctx, " ")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestChangePassword(t *testing.T) {
	f := newStudentFixture(t)
	created := enrolWithAccount(t, f)
	svc, _ := newAuthService(f.deps)
	ctx := context.Background()

	login, err := svc.Login(ctx, &dto.LoginRequest{Identifier: created.Credentials.Username, Password: created.Credentials.Password})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, login.User.ID, &dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "N3wPassword"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = svc.ChangePassword(ctx, login.User.ID, &dto.ChangePasswordRequest{CurrentPassword: created.Credentials.Password, NewPassword: "N3wPassword"})
	require.NoError(t, err)

	_, err = svc.RefreshToken(ctx, login.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)

	_, err = svc.Login(ctx, &dto.LoginRequest{Identifier: created.Credentials.Username, Password: "N3wPassword"})
	assert.NoError(t, err)
}

func TestMe_AdminWithoutProfile(t *testing.T) {
	m := newMemDB()
	school := m.addSchool(models.School{Name: "Test Academy", Code: "TEST", IsActive: true})
	hash, err := auth.HashPassword("Adm1nPass")
	require.NoError(t, err)
	admin := &models.User{Username: "head", Password: hash, SchoolID: &school.ID, IsAdmin: true, IsActive: true}
	require.NoError(t, memUsers{m}.Create(context.Background(), admin))

	svc, _ := newAuthService(m.deps())
	me, err := svc.Me(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "/admin/dashboard", me.RedirectPath)
	assert.Equal(t, "none", me.Profile.Kind)
}
