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

var subjectColumns = []string{
	"s.id", "s.school_id", "s.name", "s.code", "s.subject_type", "s.description", "s.is_active", "s.created_at", "s.updated_at",
}

var subjectOrder = map[string]string{
	"name":        "s.name",
	"code":        "s.code",
	"subjectType": "s.subject_type",
	"createdAt":   "s.created_at",
}

// SubjectRepository handles the subject catalogue and teacher assignments
type SubjectRepository struct {
	baseRepository
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(pool db.Querier) *SubjectRepository {
	return &SubjectRepository{baseRepository: newBaseRepository(pool)}
}

func scanSubject(row pgx.Row, extra ...interface{}) (*models.Subject, error) {
	var s models.Subject
	dest := append([]interface{}{
		&s.ID, &s.SchoolID, &s.Name, &s.Code, &s.Type, &s.Description, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubjectRepository) selectSubjects() squirrel.SelectBuilder {
	return r.sb.Select(subjectColumns...).From("subjects s")
}

// Create inserts a subject
func (r *SubjectRepository) Create(ctx context.Context, s *models.Subject) error {
	stmt := r.sb.Insert("subjects").
		Columns("school_id", "name", "code", "subject_type", "description", "is_active").
		Values(s.SchoolID, s.Name, s.Code, s.Type, s.Description, s.IsActive).
		Suffix("RETURNING id, created_at, updated_at")
	row, err := r.queryRow(ctx, stmt, "create subject")
	if err != nil {
		return err
	}
	if err := row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrSubjectAlreadyExists
		}
		logger.Error().Err(err).Int64("schoolID", s.SchoolID).Str("code", s.Code).Msg("Error creating subject")
		return fmt.Errorf("error creating subject: %w", err)
	}
	return nil
}

// GetByID retrieves a subject of a school
func (r *SubjectRepository) GetByID(ctx context.Context, schoolID, id int64) (*models.Subject, error) {
	row, err := r.queryRow(ctx, r.selectSubjects().Where(squirrel.Eq{"s.id": id, "s.school_id": schoolID}), "get subject")
	if err != nil {
		return nil, err
	}
	s, err := scanSubject(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrSubjectNotFound, "subject")
	}
	return s, nil
}

// Update writes name, code, type and description
func (r *SubjectRepository) Update(ctx context.Context, s *models.Subject) error {
	affected, err := r.exec(ctx, r.sb.Update("subjects").
		SetMap(map[string]interface{}{
			"name":         s.Name,
			"code":         s.Code,
			"subject_type": s.Type,
			"description":  s.Description,
			"updated_at":   squirrel.Expr("CURRENT_TIMESTAMP"),
		}).
		Where(squirrel.Eq{"id": s.ID, "school_id": s.SchoolID}), "update subject")
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrSubjectAlreadyExists
		}
		logger.Error().Err(err).Int64("subjectID", s.ID).Msg("Error updating subject")
		return fmt.Errorf("error updating subject: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// SetActive activates or deactivates a subject
func (r *SubjectRepository) SetActive(ctx context.Context, schoolID, id int64, active bool) error {
	affected, err := r.exec(ctx, r.sb.Update("subjects").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id, "school_id": schoolID}), "set subject active")
	if err != nil {
		logger.Error().Err(err).Int64("subjectID", id).Msg("Error toggling subject")
		return fmt.Errorf("error updating subject: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// Delete removes a subject. Subjects still assigned to a teacher are kept by
// the foreign key and reported as in use.
func (r *SubjectRepository) Delete(ctx context.Context, schoolID, id int64) error {
	affected, err := r.exec(ctx, r.sb.Delete("subjects").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}), "delete subject")
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSubjectInUse
		}
		logger.Error().Err(err).Int64("subjectID", id).Msg("Error deleting subject")
		return fmt.Errorf("error deleting subject: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// List returns one page of a school's subjects
func (r *SubjectRepository) List(ctx context.Context, schoolID int64, f dto.SubjectFilter) ([]*models.Subject, int64, error) {
	base := r.selectSubjects().Where(squirrel.Eq{"s.school_id": schoolID})
	if f.Type != "" {
		base = base.Where(squirrel.Eq{"s.subject_type": f.Type})
	}
	if f.Search != "" {
		base = base.Where(searchAny(f.Search, "s.name", "s.code"))
	}
	if f.IsActive != nil {
		base = base.Where(squirrel.Eq{"s.is_active": *f.IsActive})
	}

	total, err := r.count(ctx, base, "subjects")
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.query(ctx, paginate(base, f.Page, f.Size, f.OrderBy, f.Desc, subjectOrder, "s.name"), "list subjects")
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, total, rows.Err()
}

// ListByIDs returns the subjects of the school among ids, ordered by name
func (r *SubjectRepository) ListByIDs(ctx context.Context, schoolID int64, ids []int64) ([]*models.Subject, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.query(ctx, r.selectSubjects().
		Where(squirrel.Eq{"s.school_id": schoolID, "s.id": ids}).
		OrderBy("s.name"), "subjects by id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// CodeExists checks whether code is used by another subject of the school
func (r *SubjectRepository) CodeExists(ctx context.Context, schoolID int64, code string, excludeID int64) (bool, error) {
	return r.exists(ctx, r.sb.Select().From("subjects").
		Where(squirrel.Eq{"school_id": schoolID, "code": code}).
		Where(squirrel.NotEq{"id": excludeID}), "subject code")
}

// NameExists checks whether name is used by another subject of the school
func (r *SubjectRepository) NameExists(ctx context.Context, schoolID int64, name string, excludeID int64) (bool, error) {
	return r.exists(ctx, r.sb.Select().From("subjects").
		Where(squirrel.Eq{"school_id": schoolID}).
		Where("LOWER(name) = LOWER(?)", name).
		Where(squirrel.NotEq{"id": excludeID}), "subject name")
}

// CountByType counts the subjects of a school per type
func (r *SubjectRepository) CountByType(ctx context.Context, schoolID int64) (map[models.SubjectType]int64, error) {
	rows, err := r.query(ctx, r.sb.Select("subject_type", "COUNT(*)").From("subjects").
		Where(squirrel.Eq{"school_id": schoolID}).
		GroupBy("subject_type"), "count subjects by type")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.SubjectType]int64, len(models.SubjectTypes))
	for rows.Next() {
		var (
			t models.SubjectType
			n int64
		)
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("error scanning subject count: %w", err)
		}
		counts[t] = n
	}
	return counts, rows.Err()
}

// ReplaceTeacherSubjects sets the subjects assigned to a teacher to exactly subjectIDs
func (r *SubjectRepository) ReplaceTeacherSubjects(ctx context.Context, teacherID int64, subjectIDs []int64) error {
	if _, err := r.exec(ctx, r.sb.Delete("teacher_subjects").
		Where(squirrel.Eq{"teacher_id": teacherID}), "clear teacher subjects"); err != nil {
		logger.Error().Err(err).Int64("teacherID", teacherID).Msg("Error clearing teacher subjects")
		return fmt.Errorf("error clearing teacher subjects: %w", err)
	}
	if len(subjectIDs) == 0 {
		return nil
	}

	insert := r.sb.Insert("teacher_subjects").Columns("teacher_id", "subject_id")
	for _, id := range subjectIDs {
		insert = insert.Values(teacherID, id)
	}
	if _, err := r.exec(ctx, insert, "assign teacher subjects"); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Int64("teacherID", teacherID).Msg("Error assigning teacher subjects")
		return fmt.Errorf("error assigning teacher subjects: %w", err)
	}
	return nil
}

// ListForTeachers returns the assigned subjects of each teacher, keyed by teacher ID
func (r *SubjectRepository) ListForTeachers(ctx context.Context, teacherIDs []int64) (map[int64][]models.Subject, error) {
	out := make(map[int64][]models.Subject, len(teacherIDs))
	if len(teacherIDs) == 0 {
		return out, nil
	}
	rows, err := r.query(ctx, r.selectSubjects().Column("ts.teacher_id").
		Join("teacher_subjects ts ON ts.subject_id = s.id").
		Where(squirrel.Eq{"ts.teacher_id": teacherIDs}).
		OrderBy("ts.teacher_id", "s.name"), "teacher subjects")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var teacherID int64
		s, err := scanSubject(rows, &teacherID)
		if err != nil {
			return nil, fmt.Errorf("error scanning teacher subject: %w", err)
		}
		out[teacherID] = append(out[teacherID], *s)
	}
	return out, rows.Err()
}

// CountTeachers counts the teachers a subject is assigned to
func (r *SubjectRepository) CountTeachers(ctx context.Context, subjectID int64) (int64, error) {
	return r.count(ctx, r.sb.Select("teacher_id").From("teacher_subjects").
		Where(squirrel.Eq{"subject_id": subjectID}), "subject teachers")
}
