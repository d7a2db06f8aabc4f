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

var programmeColumns = []string{"id", "school_id", "name", "code", "description", "is_active", "created_at", "updated_at"}

var programmeOrder = map[string]string{"name": "name", "code": "code", "createdAt": "created_at"}

// ProgrammeRepository handles database operations for programmes
type ProgrammeRepository struct {
	baseRepository
}

// NewProgrammeRepository creates a new programme repository
func NewProgrammeRepository(pool db.Querier) *ProgrammeRepository {
	return &ProgrammeRepository{baseRepository: newBaseRepository(pool)}
}

func scanProgramme(row pgx.Row) (*models.Programme, error) {
	var p models.Programme
	if err := row.Scan(&p.ID, &p.SchoolID, &p.Name, &p.Code, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a programme
func (r *ProgrammeRepository) Create(ctx context.Context, p *models.Programme) error {
	stmt := r.sb.Insert("programmes").
		Columns("school_id", "name", "code", "description", "is_active").
		Values(p.SchoolID, p.Name, p.Code, p.Description, p.IsActive).
		Suffix("RETURNING id, created_at, updated_at")
	row, err := r.queryRow(ctx, stmt, "create programme")
	if err != nil {
		return err
	}
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrProgrammeAlreadyExists
		}
		logger.Error().Err(err).Int64("schoolID", p.SchoolID).Str("code", p.Code).Msg("Error creating programme")
		return fmt.Errorf("error creating programme: %w", err)
	}
	return nil
}

// GetByID retrieves a programme of a school
func (r *ProgrammeRepository) GetByID(ctx context.Context, schoolID, id int64) (*models.Programme, error) {
	row, err := r.queryRow(ctx, r.sb.Select(programmeColumns...).From("programmes").
		Where(squirrel.Eq{"id": id, "school_id": schoolID}), "get programme")
	if err != nil {
		return nil, err
	}
	p, err := scanProgramme(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrProgrammeNotFound, "programme")
	}
	return p, nil
}

// Update updates name, code and description
func (r *ProgrammeRepository) Update(ctx context.Context, p *models.Programme) error {
	affected, err := r.exec(ctx, r.sb.Update("programmes").
		Set("name", p.Name).
		Set("code", p.Code).
		Set("description", p.Description).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": p.ID, "school_id": p.SchoolID}), "update programme")
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrProgrammeAlreadyExists
		}
		logger.Error().Err(err).Int64("programmeID", p.ID).Msg("Error updating programme")
		return fmt.Errorf("error updating programme: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrProgrammeNotFound
	}
	return nil
}

// SetActive activates or deactivates a programme
func (r *ProgrammeRepository) SetActive(ctx context.Context, schoolID, id int64, active bool) error {
	affected, err := r.exec(ctx, r.sb.Update("programmes").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": id, "school_id": schoolID}), "set programme active")
	if err != nil {
		logger.Error().Err(err).Int64("programmeID", id).Msg("Error toggling programme")
		return fmt.Errorf("error updating programme: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrProgrammeNotFound
	}
	return nil
}

// List returns one page of a school's programmes
func (r *ProgrammeRepository) List(ctx context.Context, schoolID int64, params dto.ListParams) ([]*models.Programme, int64, error) {
	base := r.sb.Select(programmeColumns...).From("programmes").Where(squirrel.Eq{"school_id": schoolID})
	if params.Search != "" {
		base = base.Where(searchAny(params.Search, "name", "code"))
	}
	if params.IsActive != nil {
		base = base.Where(squirrel.Eq{"is_active": *params.IsActive})
	}

	total, err := r.count(ctx, base, "programmes")
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.query(ctx, paginate(base, params.Page, params.Size, params.OrderBy, params.Desc, programmeOrder, "name"), "list programmes")
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var programmes []*models.Programme
	for rows.Next() {
		p, err := scanProgramme(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning programme: %w", err)
		}
		programmes = append(programmes, p)
	}
	return programmes, total, rows.Err()
}

// CodeExists checks whether code is used by another programme of the school
func (r *ProgrammeRepository) CodeExists(ctx context.Context, schoolID int64, code string, excludeID int64) (bool, error) {
	return r.exists(ctx, r.sb.Select().From("programmes").
		Where(squirrel.Eq{"school_id": schoolID, "code": code}).
		Where(squirrel.NotEq{"id": excludeID}), "programme code")
}

// NameExists checks whether name is used by another programme of the school
func (r *ProgrammeRepository) NameExists(ctx context.Context, schoolID int64, name string, excludeID int64) (bool, error) {
	return r.exists(ctx, r.sb.Select().From("programmes").
		Where(squirrel.Eq{"school_id": schoolID}).
		Where("LOWER(name) = LOWER(?)", name).
		Where(squirrel.NotEq{"id": excludeID}), "programme name")
}
