package services

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialPrefix(t *testing.T) {
	assert.Equal(t, "STES", SerialPrefix(models.VoucherKindStudent, "Test Academy"))
	assert.Equal(t, "TSTM", SerialPrefix(models.VoucherKindTeacher, "St. Mary's College"))
	assert.Equal(t, "SABX", SerialPrefix(models.VoucherKindStudent, "Ab"))
	assert.Equal(t, "SXXX", SerialPrefix(models.VoucherKindStudent, "123"))
}

func newVoucherFixture(t *testing.T) (*memDB, Deps, *VoucherService, *models.School, *models.Class) {
	t.Helper()
	m := newMemDB()
	school := m.addSchool(models.School{Name: "Test Academy", Code: "TEST", IsActive: true})
	class := m.addClass(models.Class{SchoolID: school.ID, Stage: models.StagePrimary, Level: 1, Stream: "A", MaxStudents: 50, IsActive: true})
	d := m.deps()
	return m, d, NewVoucherService(d), school, class
}

func TestVoucherGenerate(t *testing.T) {
	_, d, svc, school, class := newVoucherFixture(t)

	resp, err := svc.Generate(context.Background(), school.ID, 1, &dto.GenerateVouchersRequest{
		Quantity: 5, Kind: models.VoucherKindStudent, ClassID: &class.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 5, resp.Count)

	serial := regexp.MustCompile(`^STES-[0-9A-F]{8}$`)
	pin := regexp.MustCompile(`^[0-9]{12}$`)
	seen := map[string]bool{}
	for _, v := range resp.Vouchers {
		assert.Regexp(t, serial, v.SerialNumber)
		assert.Regexp(t, pin, v.PIN)
		assert.True(t, v.CanSignin)
		assert.False(t, v.IsUsed)
		assert.Equal(t, &class.ID, v.ClassID)
		seen[v.SerialNumber] = true
	}
	assert.Len(t, seen, 5)
	assert.Equal(t, []string{websocket.EventVouchersGenerated}, d.Events.(*recordingPublisher).types())

	stats, err := svc.Stats(context.Background(), school.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Unused)
	assert.Equal(t, int64(5), stats.StudentTotal)
}

func TestVoucherGenerate_RetriesSerialCollisions(t *testing.T) {
	_, _, svc, school, _ := newVoucherFixture(t)
	suffixes := []string{"AAAAAAAA", "AAAAAAAA", "AAAAAAAA", "BBBBBBBB"}
	svc.newSuffix = func() string {
		s := suffixes[0]
		suffixes = suffixes[1:]
		return s
	}

	noSignin := false
	resp, err := svc.Generate(context.Background(), school.ID, 1, &dto.GenerateVouchersRequest{
		Quantity: 2, Kind: models.VoucherKindTeacher, CanSignin: &noSignin,
	})
	require.NoError(t, err)
	require.Len(t, resp.Vouchers, 2)
	assert.Equal(t, "TTES-AAAAAAAA", resp.Vouchers[0].SerialNumber)
	assert.Equal(t, "TTES-BBBBBBBB", resp.Vouchers[1].SerialNumber)
	assert.False(t, resp.Vouchers[1].CanSignin)
}

func TestVoucherGenerate_GivesUpAndRollsBack(t *testing.T) {
	m, _, svc, school, _ := newVoucherFixture(t)
	svc.newSuffix = func() string { return "CCCCCCCC" }

	_, err := svc.Generate(context.Background(), school.ID, 1, &dto.GenerateVouchersRequest{Quantity: 3, Kind: models.VoucherKindStudent})
	require.Error(t, err)

	stats, err := memVouchers{m}.Stats(context.Background(), school.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
}

func TestVoucherGenerate_Validation(t *testing.T) {
	_, _, svc, school, class := newVoucherFixture(t)
	ctx := context.Background()

	_, err := svc.Generate(ctx, school.ID, 1, &dto.GenerateVouchersRequest{Quantity: 301, Kind: models.VoucherKindStudent})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Generate(ctx, school.ID, 1, &dto.GenerateVouchersRequest{Quantity: 0, Kind: models.VoucherKindStudent})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Generate(ctx, school.ID, 1, &dto.GenerateVouchersRequest{Quantity: 1, Kind: models.VoucherKindTeacher, ClassID: &class.ID})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	missing := int64(9999)
	_, err = svc.Generate(ctx, school.ID, 1, &dto.GenerateVouchersRequest{Quantity: 1, Kind: models.VoucherKindStudent, ClassID: &missing})
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
}

func TestVoucherExportCSV(t *testing.T) {
	_, _, svc, school, class := newVoucherFixture(t)
	svc.newSuffix = func() string { return "1A2B3C4D" }
	resp, err := svc.Generate(context.Background(), school.ID, 1, &dto.GenerateVouchersRequest{
		Quantity: 1, Kind: models.VoucherKindStudent, ClassID: &class.ID,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := svc.ExportCSV(context.Background(), school.ID, dto.VoucherFilter{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "STES-1A2B3C4D,"+resp.Vouchers[0].PIN+",student,P1A,yes,no", lines[1])
}
