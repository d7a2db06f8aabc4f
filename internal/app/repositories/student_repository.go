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

var studentColumns = []string{
	"s.id", "s.school_id", "s.user_id", "s.student_id", "s.first_name", "s.middle_name", "s.last_name",
	"s.gender", "s.date_of_birth", "s.phone", "s.email", "s.address", "s.ghana_card_number",
	"s.year_admitted", "s.current_class_id", "s.status", "s.is_active", "s.created_at", "s.updated_at",
	"c.stage", "c.level", "c.stream", "c.max_students", "c.programme_id", "p.code", "p.name",
}

var studentOrder = map[string]string{
	"studentId":    "s.student_id",
	"firstName":    "s.first_name",
	"lastName":     "s.last_name",
	"yearAdmitted": "s.year_admitted",
	"createdAt":    "s.created_at",
}

// StudentRepository handles database operations for students
type StudentRepository struct {
	baseRepository
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(pool db.Querier) *StudentRepository {
	return &StudentRepository{baseRepository: newBaseRepository(pool)}
}

func (r *StudentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select(studentColumns...).
		From("students s").
		LeftJoin("classes c ON c.id = s.current_class_id").
		LeftJoin("programmes p ON p.id = c.programme_id")
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	var (
		stage              *models.Stage
		level, maxStudents *int
		stream             *string
		programmeID        *int64
		progCode, progName *string
	)
	err := row.Scan(
		&s.ID, &s.SchoolID, &s.UserID, &s.StudentID, &s.FirstName, &s.MiddleName, &s.LastName,
		&s.Gender, &s.DateOfBirth, &s.Phone, &s.Email, &s.Address, &s.GhanaCardNumber,
		&s.YearAdmitted, &s.CurrentClassID, &s.Status, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		&stage, &level, &stream, &maxStudents, &programmeID, &progCode, &progName,
	)
	if err != nil {
		return nil, err
	}
	if s.CurrentClassID != nil && stage != nil {
		s.CurrentClass = &models.Class{
			ID:          *s.CurrentClassID,
			SchoolID:    s.SchoolID,
			Stage:       *stage,
			Level:       *level,
			Stream:      *stream,
			ProgrammeID: programmeID,
			MaxStudents: *maxStudents,
		}
		if programmeID != nil && progCode != nil {
			s.CurrentClass.Programme = &models.Programme{ID: *programmeID, SchoolID: s.SchoolID, Code: *progCode, Name: *progName}
		}
	}
	return &s, nil
}

func translatePersonError(err error, table string) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, table+"_student_id_key"),
		dberrors.IsDuplicateConstraintError(err, table+"_teacher_id_key"):
		return apperrors.NewCustomError(apperrors.ErrConflict, apperrors.ErrIdentifierExists.Error())
	case dberrors.IsDuplicateConstraintError(err, table+"_ghana_card_key"):
		return apperrors.NewCustomError(apperrors.ErrConflict, apperrors.ErrGhanaCardAlreadyExists.Error())
	case dberrors.IsDuplicateConstraintError(err, table+"_school_email_key"):
		return apperrors.NewCustomError(apperrors.ErrConflict, apperrors.ErrPersonEmailAlreadyExist.Error())
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.ErrClassNotFound
	}
	return err
}

// Create inserts a student. StudentID must already be generated.
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	stmt := r.sb.Insert("students").
		Columns("school_id", "user_id", "student_id", "first_name", "middle_name", "last_name", "gender",
			"date_of_birth", "phone", "email", "address", "ghana_card_number", "year_admitted",
			"current_class_id", "status", "is_active").
		Values(s.SchoolID, s.UserID, s.StudentID, s.FirstName, s.MiddleName, s.LastName, s.Gender,
			s.DateOfBirth, s.Phone, s.Email, s.Address, s.GhanaCardNumber, s.YearAdmitted,
			s.CurrentClassID, s.Status, s.IsActive).
		Suffix("RETURNING id, created_at, updated_at")

	row, err := r.queryRow(ctx, stmt, "create student")
	if err != nil {
		return err
	}
	if err := row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if translated := translatePersonError(err, "students"); translated != err {
			return translated
		}
		logger.Error().Err(err).Int64("schoolID", s.SchoolID).Str("studentID", s.StudentID).Msg("Error creating student")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Student, error) {
	row, err := r.queryRow(ctx, r.selectStudents().Where(where), "get student")
	if err != nil {
		return nil, err
	}
	s, err := scanStudent(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrStudentNotFound, "student")
	}
	return s, nil
}

// GetByID retrieves a student of a school with its class
func (r *StudentRepository) GetByID(ctx context.Context, schoolID, id int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.id": id, "s.school_id": schoolID})
}

// GetByUserID retrieves the student linked to a login account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"s.user_id": userID})
}

// Update writes personal fields, year admitted and class. student_id and school never change.
func (r *StudentRepository) Update(ctx context.Context, s *models.Student) error {
	affected, err := r.exec(ctx, r.sb.Update("students").
		SetMap(map[string]interface{}{
			"first_name":        s.FirstName,
			"middle_name":       s.MiddleName,
			"last_name":         s.LastName,
			"gender":            s.Gender,
			"date_of_birth":     s.DateOfBirth,
			"phone":             s.Phone,
			"email":             s.Email,
			"address":           s.Address,
			"ghana_card_number": s.GhanaCardNumber,
			"current_class_id":  s.CurrentClassID,
			"updated_at":        squirrel.Expr("CURRENT_TIMESTAMP"),
		}).
		Where(squirrel.Eq{"id": s.ID, "school_id": s.SchoolID}), "update student")
	if err != nil {
		if translated := translatePersonError(err, "students"); translated != err {
			return translated
		}
		logger.Error().Err(err).Int64("studentID", s.ID).Msg("Error updating student")
		return fmt.Errorf("error updating student: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func (r *StudentRepository) setColumns(ctx context.Context, schoolID, id int64, values map[string]interface{}, op string) error {
	values["updated_at"] = squirrel.Expr("CURRENT_TIMESTAMP")
	affected, err := r.exec(ctx, r.sb.Update("students").SetMap(values).
		Where(squirrel.Eq{"id": id, "school_id": schoolID}), op)
	if err != nil {
		if translated := translatePersonError(err, "students"); translated != err {
			return translated
		}
		logger.Error().Err(err).Int64("studentID", id).Str("op", op).Msg("Error updating student")
		return fmt.Errorf("error updating student: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// SetStatus changes the enrolment status and the active flag together
func (r *StudentRepository) SetStatus(ctx context.Context, schoolID, id int64, status models.StudentStatus, active bool) error {
	return r.setColumns(ctx, schoolID, id, map[string]interface{}{"status": status, "is_active": active}, "set student status")
}

// SetActive activates or deactivates a student
func (r *StudentRepository) SetActive(ctx context.Context, schoolID, id int64, active bool) error {
	return r.setColumns(ctx, schoolID, id, map[string]interface{}{"is_active": active}, "set student active")
}

// SetUserID links a login account
func (r *StudentRepository) SetUserID(ctx context.Context, schoolID, id, userID int64) error {
	return r.setColumns(ctx, schoolID, id, map[string]interface{}{"user_id": userID}, "link student user")
}

// SetClass moves a student to another class (nil removes the class)
func (r *StudentRepository) SetClass(ctx context.Context, schoolID, id int64, classID *int64) error {
	return r.setColumns(ctx, schoolID, id, map[string]interface{}{"current_class_id": classID}, "set student class")
}

func (r *StudentRepository) filtered(schoolID int64, f dto.StudentFilter) squirrel.SelectBuilder {
	q := r.selectStudents().Where(squirrel.Eq{"s.school_id": schoolID})
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"s.status": f.Status})
	}
	if f.Gender != "" {
		q = q.Where(squirrel.Eq{"s.gender": f.Gender})
	}
	if f.ClassID > 0 {
		q = q.Where(squirrel.Eq{"s.current_class_id": f.ClassID})
	}
	if f.ProgrammeID > 0 {
		q = q.Where(squirrel.Eq{"c.programme_id": f.ProgrammeID})
	}
	if f.YearAdmitted > 0 {
		q = q.Where(squirrel.Eq{"s.year_admitted": f.YearAdmitted})
	}
	if f.IsActive != nil {
		q = q.Where(squirrel.Eq{"s.is_active": *f.IsActive})
	}
	if f.Search != "" {
		q = q.Where(searchAny(f.Search, "s.student_id", "s.first_name", "s.middle_name", "s.last_name", "s.email", "s.phone"))
	}
	return q
}

// List returns one page of students matching the filter
func (r *StudentRepository) List(ctx context.Context, schoolID int64, f dto.StudentFilter) ([]*models.Student, int64, error) {
	base := r.filtered(schoolID, f)
	total, err := r.count(ctx, base, "students")
	if err != nil {
		return nil, 0, err
	}
	students, err := r.collect(ctx, paginate(base, f.Page, f.Size, f.OrderBy, f.Desc, studentOrder, "s.last_name").OrderBy("s.first_name"))
	return students, total, err
}

// ListAll returns every student matching the filter, ignoring paging
func (r *StudentRepository) ListAll(ctx context.Context, schoolID int64, f dto.StudentFilter) ([]*models.Student, error) {
	return r.collect(ctx, r.filtered(schoolID, f).OrderBy("s.student_id"))
}

func (r *StudentRepository) collect(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Student, error) {
	rows, err := r.query(ctx, q, "list students")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// EmailExists checks whether another student of the school uses email
func (r *StudentRepository) EmailExists(ctx context.Context, schoolID int64, email string, excludeID int64) (bool, error) {
	return r.exists(ctx, r.sb.Select().From("students").
		Where(squirrel.Eq{"school_id": schoolID}).
		Where("LOWER(email) = LOWER(?)", email).
		Where(squirrel.NotEq{"id": excludeID}), "student email")
}

// GhanaCardExists checks whether another student holds the card number
func (r *StudentRepository) GhanaCardExists(ctx context.Context, card string, excludeID int64) (bool, error) {
	return r.exists(ctx, r.sb.Select().From("students").
		Where(squirrel.Eq{"ghana_card_number": card}).
		Where(squirrel.NotEq{"id": excludeID}), "student ghana card")
}

// CountActive counts the active students of a school
func (r *StudentRepository) CountActive(ctx context.Context, schoolID int64) (int64, error) {
	return r.count(ctx, r.sb.Select("id").From("students").
		Where(squirrel.Eq{"school_id": schoolID, "is_active": true}), "active students")
}
