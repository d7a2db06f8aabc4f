package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/db"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

var teacherColumns = []string{
	"id", "school_id", "user_id", "teacher_id", "first_name", "middle_name", "last_name", "gender",
	"date_of_birth", "phone", "email", "address", "ghana_card_number", "employment_date", "qualification",
	"is_active", "created_at", "updated_at",
}

var teacherOrder = map[string]string{
	"teacherId":      "teacher_id",
	"firstName":      "first_name",
	"lastName":       "last_name",
	"employmentDate": "employment_date",
	"createdAt":      "created_at",
}

// TeacherRepository handles database operations for teachers
type TeacherRepository struct {
	baseRepository
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(pool db.Querier) *TeacherRepository {
	return &TeacherRepository{baseRepository: newBaseRepository(pool)}
}

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	var t models.Teacher
	err := row.Scan(
		&t.ID, &t.SchoolID, &t.UserID, &t.TeacherID, &t.FirstName, &t.MiddleName, &t.LastName, &t.Gender,
		&t.DateOfBirth, &t.Phone, &t.Email, &t.Address, &t.GhanaCardNumber, &t.EmploymentDate, &t.Qualification,
		&t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a teacher. TeacherID must already be generated.
func (r *TeacherRepository) Create(ctx context.Context, t *models.Teacher) error {
	stmt := r.sb.Insert("teachers").
		Columns("school_id", "user_id", "teacher_id", "first_name", "middle_name", "last_name", "gender",
			"date_of_birth", "phone", "email", "address", "ghana_card_number", "employment_date", "qualification",
			"is_active").
		Values(t.SchoolID, t.UserID, t.TeacherID, t.FirstName, t.MiddleName, t.LastName, t.Gender,
			t.DateOfBirth, t.Phone, t.Email, t.Address, t.GhanaCardNumber, t.EmploymentDate, t.Qualification,
			t.IsActive).
		Suffix("RETURNING id, created_at, updated_at")

	row, err := r.queryRow(ctx, stmt, "create teacher")
	if err != nil {
		return err
	}
	if err := row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if translated := translatePersonError(err, "teachers"); translated != err {
			return translated
		}
		logger.Error().Err(err).Int64("schoolID", t.SchoolID).Str("teacherID", t.TeacherID).Msg("Error creating teacher")
		return fmt.Errorf("error creating teacher: %w", err)
	}
	return nil
}

func (r *TeacherRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Teacher, error) {
	row, err := r.queryRow(ctx, r.sb.Select(teacherColumns...).From("teachers").Where(where), "get teacher")
	if err != nil {
		return nil, err
	}
	t, err := scanTeacher(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrTeacherNotFound, "teacher")
	}
	return t, nil
}

// GetByID retrieves a teacher of a school
func (r *TeacherRepository) GetByID(ctx context.Context, schoolID, id int64) (*models.Teacher, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id, "school_id": schoolID})
}

// GetByUserID retrieves the teacher linked to a login account
func (r *TeacherRepository) GetByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID})
}

// Update writes the mutable teacher fields. teacher_id never changes and subject
// assignments live in SubjectRepository.
func (r *TeacherRepository) Update(ctx context.Context, t *models.Teacher) error {
	affected, err := r.exec(ctx, r.sb.Update("teachers").
		SetMap(map[string]interface{}{
			"first_name":        t.FirstName,
			"middle_name":       t.MiddleName,
			"last_name":         t.LastName,
			"gender":            t.Gender,
			"date_of_birth":     t.DateOfBirth,
			"phone":             t.Phone,
			"email":             t.Email,
			"address":           t.Address,
			"ghana_card_number": t.GhanaCardNumber,
			"qualification":     t.Qualification,
			"updated_at":        squirrel.Expr("CURRENT_TIMESTAMP"),
		}).
		Where(squirrel.Eq{"id": t.ID, "school_id": t.SchoolID}), "update teacher")
	if err != nil {
		if translated := translatePersonError(err, "teachers"); translated != err {
			return translated
		}
		logger.Error().Err(err).Int64("teacherID", t.ID).Msg("Error updating teacher")
		return fmt.Errorf("error updating teacher: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

func (r *TeacherRepository) setColumns(ctx context.Context, schoolID, id int64, values map[string]interface{}, op string) error {
	values["updated_at"] = squirrel.Expr("CURRENT_TIMESTAMP")
	affected, err := r.exec(ctx, r.sb.Update("teachers").SetMap(values).
		Where(squirrel.Eq{"id": id, "school_id": schoolID}), op)
	if err != nil {
		logger.Error().Err(err).Int64("teacherID", id).Str("op", op).Msg("Error updating teacher")
		return fmt.Errorf("error updating teacher: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

// SetActive activates or deactivates a teacher
func (r *TeacherRepository) SetActive(ctx context.Context, schoolID, id int64, active bool) error {
	return r.setColumns(ctx, schoolID, id, map[string]interface{}{"is_active": active}, "set teacher active")
}

// SetUserID links a login account
func (r *TeacherRepository) SetUserID(ctx context.Context, schoolID, id, userID int64) error {
	return r.setColumns(ctx, schoolID, id, map[string]interface{}{"user_id": userID}, "link teacher user")
}

// List returns one page of teachers matching the filter
func (r *TeacherRepository) List(ctx context.Context, schoolID int64, f dto.TeacherFilter) ([]*models.Teacher, int64, error) {
	base := r.sb.Select(teacherColumns...).From("teachers").Where(squirrel.Eq{"school_id": schoolID})
	if f.Gender != "" {
		base = base.Where(squirrel.Eq{"gender": f.Gender})
	}
	if f.SubjectID > 0 {
		base = base.Where("EXISTS (SELECT 1 FROM teacher_subjects ts WHERE ts.teacher_id = teachers.id AND ts.subject_id = ?)", f.SubjectID)
	}
	if f.IsActive != nil {
		base = base.Where(squirrel.Eq{"is_active": *f.IsActive})
	}
	if f.Search != "" {
		base = base.Where(searchAny(f.Search, "teacher_id", "first_name", "middle_name", "last_name", "email", "phone"))
	}

	total, err := r.count(ctx, base, "teachers")
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.query(ctx, paginate(base, f.Page, f.Size, f.OrderBy, f.Desc, teacherOrder, "last_name"), "list teachers")
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning teacher: %w", err)
		}
		teachers = append(teachers, t)
	}
	return teachers, total, rows.Err()
}

// EmailExists checks whether another teacher of the school uses email
func (r *TeacherRepository) EmailExists(ctx context.Context, schoolID int64, email string, excludeID int64) (bool, error) {
	return r.exists(ctx, r.sb.Select().From("teachers").
		Where(squirrel.Eq{"school_id": schoolID}).
		Where("LOWER(email) = LOWER(?)", email).
		Where(squirrel.NotEq{"id": excludeID}), "teacher email")
}

// GhanaCardExists checks whether another teacher holds the card number
func (r *TeacherRepository) GhanaCardExists(ctx context.Context, card string, excludeID int64) (bool, error) {
	return r.exists(ctx, r.sb.Select().From("teachers").
		Where(squirrel.Eq{"ghana_card_number": card}).
		Where(squirrel.NotEq{"id": excludeID}), "teacher ghana card")
}

// CountActive counts the active teachers of a school
func (r *TeacherRepository) CountActive(ctx context.Context, schoolID int64) (int64, error) {
	return r.count(ctx, r.sb.Select("id").From("teachers").
		Where(squirrel.Eq{"school_id": schoolID, "is_active": true}), "active teachers")
}
