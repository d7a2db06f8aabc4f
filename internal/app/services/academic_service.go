package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/db"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/helpers"
	"github.com/jackc/pgx/v5"
)

// AcademicService handles academic years and terms
type AcademicService struct {
	tx           db.Transactor
	academicRepo AcademicStore
	schoolRepo   SchoolStore
}

// NewAcademicService creates a new AcademicService
func NewAcademicService(tx db.Transactor, academicRepo AcademicStore, schoolRepo SchoolStore) *AcademicService {
	return &AcademicService{tx: tx, academicRepo: academicRepo, schoolRepo: schoolRepo}
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	v := &apperrors.ValidationError{}
	s, err := helpers.ParseDate(start)
	if err != nil {
		v.Add("startDate", err.Error())
	}
	e, err := helpers.ParseDate(end)
	if err != nil {
		v.Add("endDate", err.Error())
	}
	if !v.HasErrors() && !e.After(s) {
		v.Add("endDate", "must be after the start date")
	}
	return s, e, v.OrNil()
}

func buildYear(schoolID int64, req *dto.AcademicYearRequest) (*models.AcademicYear, error) {
	if _, _, err := models.ParseAcademicYearName(req.Name); err != nil {
		return nil, apperrors.NewValidationError("name", err.Error())
	}
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	return &models.AcademicYear{
		SchoolID:  schoolID,
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		IsCurrent: req.IsCurrent,
	}, nil
}

// CreateYear adds an academic year. A current year replaces the previous current one.
func (s *AcademicService) CreateYear(ctx context.Context, schoolID int64, req *dto.AcademicYearRequest) (*models.AcademicYear, error) {
	year, err := buildYear(schoolID, req)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		if year.IsCurrent {
			if err := s.academicRepo.ClearCurrentYear(ctx, schoolID, 0); err != nil {
				return err
			}
		}
		return s.academicRepo.CreateYear(ctx, year)
	})
	if err != nil {
		return nil, err
	}
	return year, nil
}

// UpdateYear replaces name, dates and the current flag of a year
func (s *AcademicService) UpdateYear(ctx context.Context, schoolID, id int64, req *dto.AcademicYearRequest) (*models.AcademicYear, error) {
	year, err := buildYear(schoolID, req)
	if err != nil {
		return nil, err
	}
	year.ID = id

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		if _, err := s.academicRepo.GetYear(ctx, schoolID, id); err != nil {
			return err
		}
		if year.IsCurrent {
			if err := s.academicRepo.ClearCurrentYear(ctx, schoolID, id); err != nil {
				return err
			}
		}
		return s.academicRepo.UpdateYear(ctx, year)
	})
	if err != nil {
		return nil, err
	}
	return s.academicRepo.GetYear(ctx, schoolID, id)
}

// SetCurrentYear makes the year the only current year of the school
func (s *AcademicService) SetCurrentYear(ctx context.Context, schoolID, id int64) (*models.AcademicYear, error) {
	var year *models.AcademicYear
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		var err error
		if year, err = s.academicRepo.GetYear(ctx, schoolID, id); err != nil {
			return err
		}
		if err := s.academicRepo.ClearCurrentYear(ctx, schoolID, id); err != nil {
			return err
		}
		year.IsCurrent = true
		return s.academicRepo.UpdateYear(ctx, year)
	})
	if err != nil {
		return nil, err
	}
	return year, nil
}

// GetYear returns an academic year
func (s *AcademicService) GetYear(ctx context.Context, schoolID, id int64) (*models.AcademicYear, error) {
	return s.academicRepo.GetYear(ctx, schoolID, id)
}

// CurrentYear returns the current academic year of the school
func (s *AcademicService) CurrentYear(ctx context.Context, schoolID int64) (*models.AcademicYear, error) {
	return s.academicRepo.CurrentYear(ctx, schoolID)
}

// ListYears returns every academic year of the school, newest first
func (s *AcademicService) ListYears(ctx context.Context, schoolID int64) ([]*models.AcademicYear, error) {
	return s.academicRepo.ListYears(ctx, schoolID)
}

// buildTerm validates a term against its year and the school's terms per year
func (s *AcademicService) buildTerm(ctx context.Context, schoolID int64, year *models.AcademicYear, req *dto.TermRequest) (*models.Term, error) {
	school, err := s.schoolRepo.GetByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if req.TermNumber < 1 || req.TermNumber > school.TermsPerYear {
		return nil, apperrors.NewValidationError("termNumber", fmt.Sprintf("must be between 1 and %d", school.TermsPerYear))
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if start.Before(year.StartDate) || end.After(year.EndDate) {
		return nil, apperrors.NewValidationError("startDate", "term dates must fall within the academic year")
	}

	return &models.Term{
		AcademicYearID: year.ID,
		SchoolID:       schoolID,
		TermNumber:     req.TermNumber,
		StartDate:      start,
		EndDate:        end,
		IsCurrent:      req.IsCurrent,
		AcademicYear:   year,
	}, nil
}

// CreateTerm adds a term to an academic year
func (s *AcademicService) CreateTerm(ctx context.Context, schoolID, yearID int64, req *dto.TermRequest) (*models.Term, error) {
	year, err := s.academicRepo.GetYear(ctx, schoolID, yearID)
	if err != nil {
		return nil, err
	}
	term, err := s.buildTerm(ctx, schoolID, year, req)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		if term.IsCurrent {
			if err := s.academicRepo.ClearCurrentTerm(ctx, schoolID, 0); err != nil {
				return err
			}
		}
		return s.academicRepo.CreateTerm(ctx, term)
	})
	if err != nil {
		return nil, err
	}
	return term, nil
}

// UpdateTerm replaces number, dates and the current flag of a term
func (s *AcademicService) UpdateTerm(ctx context.Context, schoolID, id int64, req *dto.TermRequest) (*models.Term, error) {
	existing, err := s.academicRepo.GetTerm(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}
	year, err := s.academicRepo.GetYear(ctx, schoolID, existing.AcademicYearID)
	if err != nil {
		return nil, err
	}
	term, err := s.buildTerm(ctx, schoolID, year, req)
	if err != nil {
		return nil, err
	}
	term.ID = id

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		if term.IsCurrent {
			if err := s.academicRepo.ClearCurrentTerm(ctx, schoolID, id); err != nil {
				return err
			}
		}
		return s.academicRepo.UpdateTerm(ctx, term)
	})
	if err != nil {
		return nil, err
	}
	return term, nil
}

// SetCurrentTerm makes the term the only current term of the school
func (s *AcademicService) SetCurrentTerm(ctx context.Context, schoolID, id int64) (*models.Term, error) {
	var term *models.Term
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		var err error
		if term, err = s.academicRepo.GetTerm(ctx, schoolID, id); err != nil {
			return err
		}
		if err := s.academicRepo.ClearCurrentTerm(ctx, schoolID, id); err != nil {
			return err
		}
		term.IsCurrent = true
		return s.academicRepo.UpdateTerm(ctx, term)
	})
	if err != nil {
		return nil, err
	}
	return term, nil
}

// GetTerm returns a term
func (s *AcademicService) GetTerm(ctx context.Context, schoolID, id int64) (*models.Term, error) {
	return s.academicRepo.GetTerm(ctx, schoolID, id)
}

// CurrentTerm returns the current term of the school
func (s *AcademicService) CurrentTerm(ctx context.Context, schoolID int64) (*models.Term, error) {
	return s.academicRepo.CurrentTerm(ctx, schoolID)
}

// ListTerms returns the terms of an academic year
func (s *AcademicService) ListTerms(ctx context.Context, schoolID, yearID int64) ([]*models.Term, error) {
	if _, err := s.academicRepo.GetYear(ctx, schoolID, yearID); err != nil {
		return nil, err
	}
	return s.academicRepo.ListTerms(ctx, schoolID, yearID)
}
