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

var schoolColumns = []string{
	"id", "name", "slug", "code", "school_type", "ownership", "region", "district", "town",
	"digital_address", "physical_address", "headmaster_name", "email", "phone_primary", "phone_secondary",
	"website", "motto", "logo_url", "primary_color", "secondary_color", "accent_color", "has_boarding",
	"academic_year_start_month", "terms_per_year", "is_active", "created_at", "updated_at",
}

var schoolOrder = map[string]string{
	"name":      "name",
	"code":      "code",
	"createdAt": "created_at",
	"region":    "region",
}

// SchoolRepository handles database operations for schools
type SchoolRepository struct {
	baseRepository
}

// NewSchoolRepository creates a new school repository
func NewSchoolRepository(pool db.Querier) *SchoolRepository {
	return &SchoolRepository{baseRepository: newBaseRepository(pool)}
}

func scanSchool(row pgx.Row) (*models.School, error) {
	var s models.School
	err := row.Scan(
		&s.ID, &s.Name, &s.Slug, &s.Code, &s.SchoolType, &s.Ownership, &s.Region, &s.District, &s.Town,
		&s.DigitalAddress, &s.PhysicalAddress, &s.HeadmasterName, &s.Email, &s.PhonePrimary, &s.PhoneSecondary,
		&s.Website, &s.Motto, &s.LogoURL, &s.PrimaryColor, &s.SecondaryColor, &s.AccentColor, &s.HasBoarding,
		&s.AcademicYearStartMonth, &s.TermsPerYear, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func translateSchoolError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "schools_code_key"),
		dberrors.IsDuplicateConstraintError(err, "schools_slug_key"):
		return apperrors.ErrSchoolAlreadyExists
	case dberrors.IsCheckViolation(err):
		return fmt.Errorf("%w: %s", apperrors.ErrValidationFailed, dberrors.ConstraintName(err))
	}
	return err
}

// Create inserts a school and fills its ID and timestamps
func (r *SchoolRepository) Create(ctx context.Context, s *models.School) error {
	stmt := r.sb.Insert("schools").
		Columns("name", "slug", "code", "school_type", "ownership", "region", "district", "town",
			"digital_address", "physical_address", "headmaster_name", "email", "phone_primary", "phone_secondary",
			"website", "motto", "logo_url", "primary_color", "secondary_color", "accent_color", "has_boarding",
			"academic_year_start_month", "terms_per_year", "is_active").
		Values(s.Name, s.Slug, s.Code, s.SchoolType, s.Ownership, s.Region, s.District, s.Town,
			s.DigitalAddress, s.PhysicalAddress, s.HeadmasterName, s.Email, s.PhonePrimary, s.PhoneSecondary,
			s.Website, s.Motto, s.LogoURL, s.PrimaryColor, s.SecondaryColor, s.AccentColor, s.HasBoarding,
			s.AcademicYearStartMonth, s.TermsPerYear, s.IsActive).
		Suffix("RETURNING id, created_at, updated_at")

	row, err := r.queryRow(ctx, stmt, "create school")
	if err != nil {
		return err
	}
	if err := row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if translated := translateSchoolError(err); translated != err {
			return translated
		}
		logger.Error().Err(err).Str("code", s.Code).Msg("Error creating school")
		return fmt.Errorf("error creating school: %w", err)
	}
	return nil
}

// GetByID retrieves a school by ID
func (r *SchoolRepository) GetByID(ctx context.Context, id int64) (*models.School, error) {
	row, err := r.queryRow(ctx, r.sb.Select(schoolColumns...).From("schools").Where(squirrel.Eq{"id": id}), "get school")
	if err != nil {
		return nil, err
	}
	s, err := scanSchool(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrSchoolNotFound, "school")
	}
	return s, nil
}

// Update writes every mutable column. The code is never updated.
func (r *SchoolRepository) Update(ctx context.Context, s *models.School) error {
	stmt := r.sb.Update("schools").
		SetMap(map[string]interface{}{
			"name":                      s.Name,
			"slug":                      s.Slug,
			"school_type":               s.SchoolType,
			"ownership":                 s.Ownership,
			"region":                    s.Region,
			"district":                  s.District,
			"town":                      s.Town,
			"digital_address":           s.DigitalAddress,
			"physical_address":          s.PhysicalAddress,
			"headmaster_name":           s.HeadmasterName,
			"email":                     s.Email,
			"phone_primary":             s.PhonePrimary,
			"phone_secondary":           s.PhoneSecondary,
			"website":                   s.Website,
			"motto":                     s.Motto,
			"primary_color":             s.PrimaryColor,
			"secondary_color":           s.SecondaryColor,
			"accent_color":              s.AccentColor,
			"has_boarding":              s.HasBoarding,
			"academic_year_start_month": s.AcademicYearStartMonth,
			"terms_per_year":            s.TermsPerYear,
			"updated_at":                squirrel.Expr("CURRENT_TIMESTAMP"),
		}).
		Where(squirrel.Eq{"id": s.ID})

	affected, err := r.exec(ctx, stmt, "update school")
	if err != nil {
		if translated := translateSchoolError(err); translated != err {
			return translated
		}
		logger.Error().Err(err).Int64("schoolID", s.ID).Msg("Error updating school")
		return fmt.Errorf("error updating school: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}

// SetActive activates or deactivates a school
func (r *SchoolRepository) SetActive(ctx context.Context, id int64, active bool) error {
	stmt := r.sb.Update("schools").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id})
	affected, err := r.exec(ctx, stmt, "set school active")
	if err != nil {
		logger.Error().Err(err).Int64("schoolID", id).Msg("Error toggling school")
		return fmt.Errorf("error updating school: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}

// UpdateLogo stores the public URL of the school logo
func (r *SchoolRepository) UpdateLogo(ctx context.Context, id int64, logoURL *string) error {
	stmt := r.sb.Update("schools").
		Set("logo_url", logoURL).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id})
	affected, err := r.exec(ctx, stmt, "update school logo")
	if err != nil {
		logger.Error().Err(err).Int64("schoolID", id).Msg("Error updating school logo")
		return fmt.Errorf("error updating school logo: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}

// List returns one page of schools and the total count
func (r *SchoolRepository) List(ctx context.Context, params dto.ListParams) ([]*models.School, int64, error) {
	base := r.sb.Select(schoolColumns...).From("schools")
	if params.Search != "" {
		base = base.Where(searchAny(params.Search, "name", "code", "town", "district", "region"))
	}
	if params.IsActive != nil {
		base = base.Where(squirrel.Eq{"is_active": *params.IsActive})
	}

	total, err := r.count(ctx, base, "schools")
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.query(ctx, paginate(base, params.Page, params.Size, params.OrderBy, params.Desc, schoolOrder, "name"), "list schools")
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var schools []*models.School
	for rows.Next() {
		s, err := scanSchool(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning school: %w", err)
		}
		schools = append(schools, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return schools, total, nil
}

// CodeExists checks whether a school code is taken
func (r *SchoolRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, r.sb.Select().From("schools").Where(squirrel.Eq{"code": code}), "school code")
}

// SlugExists checks whether a slug is taken by a school other than excludeID
func (r *SchoolRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	return r.exists(ctx, r.sb.Select().From("schools").
		Where(squirrel.Eq{"slug": slug}).
		Where(squirrel.NotEq{"id": excludeID}), "school slug")
}

// Count returns the number of schools and how many are active
func (r *SchoolRepository) Count(ctx context.Context) (total, active int64, err error) {
	row, err := r.queryRow(ctx, r.sb.Select("COUNT(*)", "COUNT(*) FILTER (WHERE is_active)").From("schools"), "count schools")
	if err != nil {
		return 0, 0, err
	}
	if err := row.Scan(&total, &active); err != nil {
		logger.Error().Err(err).Msg("Error counting schools")
		return 0, 0, fmt.Errorf("error counting schools: %w", err)
	}
	return total, active, nil
}
