package services

import (
	"context"
	"testing"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_SchoolAdmin(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()
	f.db.addVoucher(models.Voucher{SchoolID: f.school.ID, Kind: models.VoucherKindStudent, SerialNumber: "STES-00000001", PIN: "000000000001"})
	for _, name := range []string{"Kofi", "Ama"} {
		_, err := f.svc.Create(ctx, f.school.ID, createRequest(name, ""))
		require.NoError(t, err)
	}

	admin := &models.User{Username: "head", SchoolID: &f.school.ID, IsAdmin: true, IsActive: true}
	require.NoError(t, f.deps.Users.Create(ctx, admin))

	resp, err := NewDashboardService(f.deps).Get(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSchoolAdmin, resp.Role)

	summary, ok := resp.Data.(*dto.SchoolSummary)
	require.True(t, ok)
	assert.Equal(t, f.school.ID, summary.School.ID)
	assert.Equal(t, int64(2), summary.ActiveStudents)
	assert.Equal(t, int64(1), summary.ActiveClasses)
	assert.Equal(t, int64(1), summary.UnusedVouchers)
	assert.Nil(t, summary.CurrentYear)
	assert.Nil(t, summary.CurrentTerm)
}

func TestDashboard_Student(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	req := createRequest("Kofi", "kofi@example.com")
	req.CreateAccount = true
	req.ClassID = &f.class.ID
	created, err := f.svc.Create(ctx, f.school.ID, req)
	require.NoError(t, err)
	require.NotNil(t, created.Student.UserID)

	resp, err := NewDashboardService(f.deps).Get(ctx, *created.Student.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, resp.Role)

	board, ok := resp.Data.(dto.StudentDashboard)
	require.True(t, ok)
	assert.Equal(t, created.Student.StudentID, board.Student.StudentID)
	require.NotNil(t, board.Class)
	assert.Equal(t, "P1A", board.Class.DisplayName)
	assert.Equal(t, 1, board.Class.Enrollment)
	assert.Empty(t, board.Guardians)
}

func TestDashboard_AdminWithoutSchool(t *testing.T) {
	m := newMemDB()
	admin := &models.User{Username: "lost", IsAdmin: true, IsActive: true}
	require.NoError(t, memUsers{m}.Create(context.Background(), admin))

	_, err := NewDashboardService(m.deps()).Get(context.Background(), admin.ID)
	assert.ErrorIs(t, err, apperrors.ErrSchoolRequired)
}
