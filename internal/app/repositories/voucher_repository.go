package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/db"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

var voucherColumns = []string{
	"v.id", "v.school_id", "v.kind", "v.serial_number", "v.pin", "v.class_id", "v.can_signin", "v.is_used",
	"v.used_at", "v.used_by_student_id", "v.used_by_teacher_id", "v.created_by", "v.created_at",
	"c.stage", "c.level", "c.stream", "p.code",
}

var voucherOrder = map[string]string{
	"serialNumber": "v.serial_number",
	"createdAt":    "v.created_at",
	"usedAt":       "v.used_at",
}

// VoucherRepository handles database operations for registration vouchers
type VoucherRepository struct {
	baseRepository
}

// NewVoucherRepository creates a new voucher repository
func NewVoucherRepository(pool db.Querier) *VoucherRepository {
	return &VoucherRepository{baseRepository: newBaseRepository(pool)}
}

func (r *VoucherRepository) selectVouchers() squirrel.SelectBuilder {
	return r.sb.Select(voucherColumns...).
		From("vouchers v").
		LeftJoin("classes c ON c.id = v.class_id").
		LeftJoin("programmes p ON p.id = c.programme_id")
}

func scanVoucher(row pgx.Row) (*models.Voucher, error) {
	var v models.Voucher
	var (
		stage    *models.Stage
		level    *int
		stream   *string
		progCode *string
	)
	if err := row.Scan(&v.ID, &v.SchoolID, &v.Kind, &v.SerialNumber, &v.PIN, &v.ClassID, &v.CanSignin, &v.IsUsed,
		&v.UsedAt, &v.UsedByStudentID, &v.UsedByTeacherID, &v.CreatedByUserID, &v.CreatedAt,
		&stage, &level, &stream, &progCode); err != nil {
		return nil, err
	}
	if v.ClassID != nil && stage != nil {
		v.Class = &models.Class{ID: *v.ClassID, SchoolID: v.SchoolID, Stage: *stage, Level: *level, Stream: *stream}
		if progCode != nil {
			v.Class.Programme = &models.Programme{Code: *progCode}
		}
	}
	return &v, nil
}

// Insert stores a voucher unless its serial number is taken. It reports whether
// the row was written; a collision leaves the surrounding transaction usable.
func (r *VoucherRepository) Insert(ctx context.Context, v *models.Voucher) (bool, error) {
	stmt := r.sb.Insert("vouchers").
		Columns("school_id", "kind", "serial_number", "pin", "class_id", "can_signin", "created_by").
		Values(v.SchoolID, v.Kind, v.SerialNumber, v.PIN, v.ClassID, v.CanSignin, v.CreatedByUserID).
		Suffix("ON CONFLICT (serial_number) DO NOTHING RETURNING id, created_at")
	row, err := r.queryRow(ctx, stmt, "insert voucher")
	if err != nil {
		return false, err
	}
	if err := row.Scan(&v.ID, &v.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		logger.Error().Err(err).Int64("schoolID", v.SchoolID).Msg("Error inserting voucher")
		return false, fmt.Errorf("error inserting voucher: %w", err)
	}
	return true, nil
}

func (r *VoucherRepository) getOne(ctx context.Context, q squirrel.SelectBuilder) (*models.Voucher, error) {
	row, err := r.queryRow(ctx, q, "get voucher")
	if err != nil {
		return nil, err
	}
	v, err := scanVoucher(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrVoucherNotFound, "voucher")
	}
	return v, nil
}

// GetByID retrieves a voucher of a school
func (r *VoucherRepository) GetByID(ctx context.Context, schoolID, id int64) (*models.Voucher, error) {
	return r.getOne(ctx, r.selectVouchers().Where(squirrel.Eq{"v.id": id, "v.school_id": schoolID}))
}

// FindBySerialAndPIN looks a voucher up by its credentials. The serial match is
// case-insensitive, the PIN is compared exactly.
func (r *VoucherRepository) FindBySerialAndPIN(ctx context.Context, serial, pin string) (*models.Voucher, error) {
	return r.getOne(ctx, r.selectVouchers().
		Where("UPPER(v.serial_number) = UPPER(?)", serial).
		Where(squirrel.Eq{"v.pin": pin}))
}

// GetForUpdate locks the voucher row until the transaction ends
func (r *VoucherRepository) GetForUpdate(ctx context.Context, id int64) (*models.Voucher, error) {
	return r.getOne(ctx, r.selectVouchers().Where(squirrel.Eq{"v.id": id}).Suffix("FOR UPDATE OF v"))
}

// MarkUsed consumes an unused voucher. It reports false when the voucher was already used.
func (r *VoucherRepository) MarkUsed(ctx context.Context, id int64, studentID, teacherID *int64) (bool, error) {
	affected, err := r.exec(ctx, r.sb.Update("vouchers").
		Set("is_used", true).
		Set("used_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Set("used_by_student_id", studentID).
		Set("used_by_teacher_id", teacherID).
		Where(squirrel.Eq{"id": id, "is_used": false}), "mark voucher used")
	if err != nil {
		logger.Error().Err(err).Int64("voucherID", id).Msg("Error marking voucher used")
		return false, fmt.Errorf("error marking voucher used: %w", err)
	}
	return affected == 1, nil
}

func (r *VoucherRepository) filtered(schoolID int64, f dto.VoucherFilter) squirrel.SelectBuilder {
	q := r.selectVouchers().Where(squirrel.Eq{"v.school_id": schoolID})
	if f.Kind != "" {
		q = q.Where(squirrel.Eq{"v.kind": f.Kind})
	}
	if f.IsUsed != nil {
		q = q.Where(squirrel.Eq{"v.is_used": *f.IsUsed})
	}
	if f.ClassID > 0 {
		q = q.Where(squirrel.Eq{"v.class_id": f.ClassID})
	}
	if f.Search != "" {
		q = q.Where(searchAny(f.Search, "v.serial_number"))
	}
	return q
}

// List returns one page of vouchers
func (r *VoucherRepository) List(ctx context.Context, schoolID int64, f dto.VoucherFilter) ([]*models.Voucher, int64, error) {
	base := r.filtered(schoolID, f)
	total, err := r.count(ctx, base, "vouchers")
	if err != nil {
		return nil, 0, err
	}
	vouchers, err := r.collect(ctx, paginate(base, f.Page, f.Size, f.OrderBy, f.Desc, voucherOrder, "v.id"))
	return vouchers, total, err
}

// ListAll returns every voucher matching the filter, for export
func (r *VoucherRepository) ListAll(ctx context.Context, schoolID int64, f dto.VoucherFilter) ([]*models.Voucher, error) {
	return r.collect(ctx, r.filtered(schoolID, f).OrderBy("v.created_at", "v.id"))
}

func (r *VoucherRepository) collect(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Voucher, error) {
	rows, err := r.query(ctx, q, "list vouchers")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vouchers []*models.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning voucher: %w", err)
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, rows.Err()
}

// Stats summarises the vouchers of a school
func (r *VoucherRepository) Stats(ctx context.Context, schoolID int64) (*models.VoucherStats, error) {
	row, err := r.queryRow(ctx, r.sb.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE is_used)",
		"COUNT(*) FILTER (WHERE kind = 'student')",
		"COUNT(*) FILTER (WHERE kind = 'teacher')",
		"COUNT(*) FILTER (WHERE can_signin)",
	).From("vouchers").Where(squirrel.Eq{"school_id": schoolID}), "voucher stats")
	if err != nil {
		return nil, err
	}
	var s models.VoucherStats
	if err := row.Scan(&s.Total, &s.Used, &s.StudentTotal, &s.TeacherTotal, &s.SigninEnabled); err != nil {
		logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Error computing voucher stats")
		return nil, fmt.Errorf("error computing voucher stats: %w", err)
	}
	s.Unused = s.Total - s.Used
	return &s, nil
}
