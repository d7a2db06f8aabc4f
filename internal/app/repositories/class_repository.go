package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/db"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/dberrors"
	"github.com/edutrack/schoolms/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// enrollmentExpr counts the active students of class c
const enrollmentExpr = "(SELECT COUNT(*) FROM students s WHERE s.current_class_id = c.id AND s.is_active AND s.status = 'active')"

var classColumns = []string{
	"c.id", "c.school_id", "c.stage", "c.level", "c.stream", "c.programme_id", "c.max_students",
	"c.is_active", "c.created_at", "c.updated_at", "p.name", "p.code", enrollmentExpr,
}

var classOrder = map[string]string{
	"stage":     "c.stage",
	"level":     "c.level",
	"stream":    "c.stream",
	"createdAt": "c.created_at",
}

// ClassRepository handles database operations for classes
type ClassRepository struct {
	baseRepository
}

// NewClassRepository creates a new class repository
func NewClassRepository(pool db.Querier) *ClassRepository {
	return &ClassRepository{baseRepository: newBaseRepository(pool)}
}

func (r *ClassRepository) selectClasses() squirrel.SelectBuilder {
	return r.sb.Select(classColumns...).
		From("classes c").
		LeftJoin("programmes p ON p.id = c.programme_id")
}

func scanClass(row pgx.Row) (*models.Class, error) {
	var c models.Class
	var progName, progCode *string
	if err := row.Scan(&c.ID, &c.SchoolID, &c.Stage, &c.Level, &c.Stream, &c.ProgrammeID, &c.MaxStudents,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt, &progName, &progCode, &c.Enrollment); err != nil {
		return nil, err
	}
	if c.ProgrammeID != nil && progCode != nil {
		c.Programme = &models.Programme{ID: *c.ProgrammeID, SchoolID: c.SchoolID, Name: *progName, Code: *progCode}
	}
	return &c, nil
}

func translateClassError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "classes_unique_key"):
		return apperrors.ErrClassAlreadyExists
	case dberrors.IsCheckViolation(err):
		return fmt.Errorf("%w: %s", apperrors.ErrValidationFailed, dberrors.ConstraintName(err))
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.ErrProgrammeNotFound
	}
	return err
}

// Create inserts a class
func (r *ClassRepository) Create(ctx context.Context, c *models.Class) error {
	stmt := r.sb.Insert("classes").
		Columns("school_id", "stage", "level", "stream", "programme_id", "max_students", "is_active").
		Values(c.SchoolID, c.Stage, c.Level, c.Stream, c.ProgrammeID, c.MaxStudents, c.IsActive).
		Suffix("RETURNING id, created_at, updated_at")
	row, err := r.queryRow(ctx, stmt, "create class")
	if err != nil {
		return err
	}
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if translated := translateClassError(err); translated != err {
			return translated
		}
		logger.Error().Err(err).Int64("schoolID", c.SchoolID).Msg("Error creating class")
		return fmt.Errorf("error creating class: %w", err)
	}
	return nil
}

func (r *ClassRepository) getOne(ctx context.Context, q squirrel.SelectBuilder) (*models.Class, error) {
	row, err := r.queryRow(ctx, q, "get class")
	if err != nil {
		return nil, err
	}
	c, err := scanClass(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrClassNotFound, "class")
	}
	return c, nil
}

// GetByID retrieves a class of a school with its programme and enrollment
func (r *ClassRepository) GetByID(ctx context.Context, schoolID, id int64) (*models.Class, error) {
	return r.getOne(ctx, r.selectClasses().Where(squirrel.Eq{"c.id": id, "c.school_id": schoolID}))
}

// LockForEnrollment reads a class and locks its row until the transaction ends, so
// concurrent enrolments into the same class see each other's counts.
func (r *ClassRepository) LockForEnrollment(ctx context.Context, schoolID, id int64) (*models.Class, error) {
	return r.getOne(ctx, r.selectClasses().
		Where(squirrel.Eq{"c.id": id, "c.school_id": schoolID}).
		Suffix("FOR UPDATE OF c"))
}

// Update updates the class definition
func (r *ClassRepository) Update(ctx context.Context, c *models.Class) error {
	affected, err := r.exec(ctx, r.sb.Update("classes").
		Set("stage", c.Stage).
		Set("level", c.Level).
		Set("stream", c.Stream).
		Set("programme_id", c.ProgrammeID).
		Set("max_students", c.MaxStudents).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": c.ID, "school_id": c.SchoolID}), "update class")
	if err != nil {
		if translated := translateClassError(err); translated != err {
			return translated
		}
		logger.Error().Err(err).Int64("classID", c.ID).Msg("Error updating class")
		return fmt.Errorf("error updating class: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// SetActive activates or deactivates a class
func (r *ClassRepository) SetActive(ctx context.Context, schoolID, id int64, active bool) error {
	affected, err := r.exec(ctx, r.sb.Update("classes").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id, "school_id": schoolID}), "set class active")
	if err != nil {
		logger.Error().Err(err).Int64("classID", id).Msg("Error toggling class")
		return fmt.Errorf("error updating class: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

func (r *ClassRepository) filtered(schoolID int64, f dto.ClassFilter) squirrel.SelectBuilder {
	q := r.selectClasses().Where(squirrel.Eq{"c.school_id": schoolID})
	if f.Stage != "" {
		q = q.Where(squirrel.Eq{"c.stage": f.Stage})
	}
	if f.Level > 0 {
		q = q.Where(squirrel.Eq{"c.level": f.Level})
	}
	if f.ProgrammeID > 0 {
		q = q.Where(squirrel.Eq{"c.programme_id": f.ProgrammeID})
	}
	if f.IsActive != nil {
		q = q.Where(squirrel.Eq{"c.is_active": *f.IsActive})
	}
	if f.Search != "" {
		q = q.Where(searchAny(f.Search, "c.stream", "p.name", "p.code"))
	}
	return q
}

// List returns one page of a school's classes
func (r *ClassRepository) List(ctx context.Context, schoolID int64, f dto.ClassFilter) ([]*models.Class, int64, error) {
	base := r.filtered(schoolID, f)
	total, err := r.count(ctx, base, "classes")
	if err != nil {
		return nil, 0, err
	}
	q := paginate(base, f.Page, f.Size, f.OrderBy, f.Desc, classOrder, "c.stage").OrderBy("c.level", "c.stream")
	return r.collect(ctx, q, total)
}

// ListAll returns every class of a school, used to resolve display names
func (r *ClassRepository) ListAll(ctx context.Context, schoolID int64) ([]*models.Class, error) {
	classes, _, err := r.collect(ctx, r.selectClasses().
		Where(squirrel.Eq{"c.school_id": schoolID}).
		OrderBy("c.stage", "c.level", "c.stream"), 0)
	return classes, err
}

func (r *ClassRepository) collect(ctx context.Context, q squirrel.SelectBuilder, total int64) ([]*models.Class, int64, error) {
	rows, err := r.query(ctx, q, "list classes")
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning class: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, total, rows.Err()
}

// DuplicateExists reports whether another class of the school has the same stage,
// level, stream and programme
func (r *ClassRepository) DuplicateExists(ctx context.Context, c *models.Class) (bool, error) {
	var programmeID int64
	if c.ProgrammeID != nil {
		programmeID = *c.ProgrammeID
	}
	return r.exists(ctx, r.sb.Select().From("classes").
		Where(squirrel.Eq{"school_id": c.SchoolID, "stage": c.Stage, "level": c.Level}).
		Where("LOWER(stream) = LOWER(?)", c.Stream).
		Where("COALESCE(programme_id, 0) = ?", programmeID).
		Where(squirrel.NotEq{"id": c.ID}), "class duplicate")
}

// CountActive counts the active classes of a school
func (r *ClassRepository) CountActive(ctx context.Context, schoolID int64) (int64, error) {
	return r.count(ctx, r.sb.Select("id").From("classes").
		Where(squirrel.Eq{"school_id": schoolID, "is_active": true}), "active classes")
}
