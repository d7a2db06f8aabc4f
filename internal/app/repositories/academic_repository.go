package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/db"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/dberrors"
	"github.com/edutrack/schoolms/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

var yearColumns = []string{"id", "school_id", "name", "start_date", "end_date", "is_current", "created_at", "updated_at"}

var termColumns = []string{
	"t.id", "t.academic_year_id", "t.school_id", "t.term_number", "t.start_date", "t.end_date", "t.is_current",
	"t.created_at", "t.updated_at", "y.name", "y.start_date", "y.end_date", "y.is_current",
}

// AcademicRepository handles academic years and their terms
type AcademicRepository struct {
	baseRepository
}

// NewAcademicRepository creates a new academic repository
func NewAcademicRepository(pool db.Querier) *AcademicRepository {
	return &AcademicRepository{baseRepository: newBaseRepository(pool)}
}

func scanYear(row pgx.Row) (*models.AcademicYear, error) {
	var y models.AcademicYear
	if err := row.Scan(&y.ID, &y.SchoolID, &y.Name, &y.StartDate, &y.EndDate, &y.IsCurrent, &y.CreatedAt, &y.UpdatedAt); err != nil {
		return nil, err
	}
	return &y, nil
}

func scanTerm(row pgx.Row) (*models.Term, error) {
	var t models.Term
	y := &models.AcademicYear{}
	if err := row.Scan(&t.ID, &t.AcademicYearID, &t.SchoolID, &t.TermNumber, &t.StartDate, &t.EndDate, &t.IsCurrent,
		&t.CreatedAt, &t.UpdatedAt, &y.Name, &y.StartDate, &y.EndDate, &y.IsCurrent); err != nil {
		return nil, err
	}
	y.ID = t.AcademicYearID
	y.SchoolID = t.SchoolID
	t.AcademicYear = y
	return &t, nil
}

// CreateYear inserts an academic year
func (r *AcademicRepository) CreateYear(ctx context.Context, y *models.AcademicYear) error {
	row, err := r.queryRow(ctx, r.sb.Insert("academic_years").
		Columns("school_id", "name", "start_date", "end_date", "is_current").
		Values(y.SchoolID, y.Name, y.StartDate, y.EndDate, y.IsCurrent).
		Suffix("RETURNING id, created_at, updated_at"), "create academic year")
	if err != nil {
		return err
	}
	if err := row.Scan(&y.ID, &y.CreatedAt, &y.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "academic_years_school_name_key") {
			return apperrors.ErrAcademicYearExists
		}
		logger.Error().Err(err).Int64("schoolID", y.SchoolID).Str("name", y.Name).Msg("Error creating academic year")
		return fmt.Errorf("error creating academic year: %w", err)
	}
	return nil
}

// GetYear retrieves an academic year of a school
func (r *AcademicRepository) GetYear(ctx context.Context, schoolID, id int64) (*models.AcademicYear, error) {
	row, err := r.queryRow(ctx, r.sb.Select(yearColumns...).From("academic_years").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}), "get academic year")
	if err != nil {
		return nil, err
	}
	y, err := scanYear(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrAcademicYearNotFound, "academic year")
	}
	return y, nil
}

// CurrentYear returns the current academic year of a school
func (r *AcademicRepository) CurrentYear(ctx context.Context, schoolID int64) (*models.AcademicYear, error) {
	row, err := r.queryRow(ctx, r.sb.Select(yearColumns...).From("academic_years").
		Where(squirrel.Eq{"school_id": schoolID, "is_current": true}), "current academic year")
	if err != nil {
		return nil, err
	}
	y, err := scanYear(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrAcademicYearNotFound, "academic year")
	}
	return y, nil
}

// UpdateYear updates name, dates and the current flag
func (r *AcademicRepository) UpdateYear(ctx context.Context, y *models.AcademicYear) error {
	affected, err := r.exec(ctx, r.sb.Update("academic_years").
		Set("name", y.Name).
		Set("start_date", y.StartDate).
		Set("end_date", y.EndDate).
		Set("is_current", y.IsCurrent).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": y.ID, "school_id": y.SchoolID}), "update academic year")
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "academic_years_school_name_key") {
			return apperrors.ErrAcademicYearExists
		}
		logger.Error().Err(err).Int64("yearID", y.ID).Msg("Error updating academic year")
		return fmt.Errorf("error updating academic year: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAcademicYearNotFound
	}
	return nil
}

// ListYears returns every academic year of a school, newest first
func (r *AcademicRepository) ListYears(ctx context.Context, schoolID int64) ([]*models.AcademicYear, error) {
	rows, err := r.query(ctx, r.sb.Select(yearColumns...).From("academic_years").
		Where(squirrel.Eq{"school_id": schoolID}).
		OrderBy("start_date DESC"), "list academic years")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []*models.AcademicYear
	for rows.Next() {
		y, err := scanYear(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning academic year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// ClearCurrentYear unsets is_current on every year of the school except keepID
func (r *AcademicRepository) ClearCurrentYear(ctx context.Context, schoolID, keepID int64) error {
	_, err := r.exec(ctx, r.sb.Update("academic_years").
		Set("is_current", false).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"school_id": schoolID, "is_current": true}).
		Where(squirrel.NotEq{"id": keepID}), "clear current year")
	if err != nil {
		logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Error clearing current academic year")
		return fmt.Errorf("error clearing current academic year: %w", err)
	}
	return nil
}

func (r *AcademicRepository) selectTerms() squirrel.SelectBuilder {
	return r.sb.Select(termColumns...).From("terms t").Join("academic_years y ON y.id = t.academic_year_id")
}

// CreateTerm inserts a term
func (r *AcademicRepository) CreateTerm(ctx context.Context, t *models.Term) error {
	row, err := r.queryRow(ctx, r.sb.Insert("terms").
		Columns("academic_year_id", "school_id", "term_number", "start_date", "end_date", "is_current").
		Values(t.AcademicYearID, t.SchoolID, t.TermNumber, t.StartDate, t.EndDate, t.IsCurrent).
		Suffix("RETURNING id, created_at, updated_at"), "create term")
	if err != nil {
		return err
	}
	if err := row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "terms_year_number_key") {
			return apperrors.ErrTermAlreadyExists
		}
		logger.Error().Err(err).Int64("yearID", t.AcademicYearID).Msg("Error creating term")
		return fmt.Errorf("error creating term: %w", err)
	}
	return nil
}

func (r *AcademicRepository) getTerm(ctx context.Context, q squirrel.SelectBuilder) (*models.Term, error) {
	row, err := r.queryRow(ctx, q, "get term")
	if err != nil {
		return nil, err
	}
	t, err := scanTerm(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrTermNotFound, "term")
	}
	return t, nil
}

// GetTerm retrieves a term of a school
func (r *AcademicRepository) GetTerm(ctx context.Context, schoolID, id int64) (*models.Term, error) {
	return r.getTerm(ctx, r.selectTerms().Where(squirrel.Eq{"t.id": id, "t.school_id": schoolID}))
}

// CurrentTerm returns the current term of a school
func (r *AcademicRepository) CurrentTerm(ctx context.Context, schoolID int64) (*models.Term, error) {
	return r.getTerm(ctx, r.selectTerms().Where(squirrel.Eq{"t.school_id": schoolID, "t.is_current": true}))
}

// UpdateTerm updates number, dates and the current flag
func (r *AcademicRepository) UpdateTerm(ctx context.Context, t *models.Term) error {
	affected, err := r.exec(ctx, r.sb.Update("terms").
		Set("term_number", t.TermNumber).
		Set("start_date", t.StartDate).
		Set("end_date", t.EndDate).
		Set("is_current", t.IsCurrent).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": t.ID, "school_id": t.SchoolID}), "update term")
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "terms_year_number_key") {
			return apperrors.ErrTermAlreadyExists
		}
		logger.Error().Err(err).Int64("termID", t.ID).Msg("Error updating term")
		return fmt.Errorf("error updating term: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTermNotFound
	}
	return nil
}

// ListTerms returns the terms of an academic year in order
func (r *AcademicRepository) ListTerms(ctx context.Context, schoolID, yearID int64) ([]*models.Term, error) {
	rows, err := r.query(ctx, r.selectTerms().
		Where(squirrel.Eq{"t.school_id": schoolID, "t.academic_year_id": yearID}).
		OrderBy("t.term_number"), "list terms")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []*models.Term
	for rows.Next() {
		t, err := scanTerm(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning term: %w", err)
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

// ClearCurrentTerm unsets is_current on every term of the school except keepID
func (r *AcademicRepository) ClearCurrentTerm(ctx context.Context, schoolID, keepID int64) error {
	_, err := r.exec(ctx, r.sb.Update("terms").
		Set("is_current", false).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"school_id": schoolID, "is_current": true}).
		Where(squirrel.NotEq{"id": keepID}), "clear current term")
	if err != nil {
		logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Error clearing current term")
		return fmt.Errorf("error clearing current term: %w", err)
	}
	return nil
}
