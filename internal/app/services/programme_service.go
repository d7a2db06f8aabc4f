package services

import (
	"context"
	"strings"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/helpers"
)

// ProgrammeService handles SHS programmes of a school
type ProgrammeService struct {
	programmeRepo ProgrammeStore
}

// NewProgrammeService creates a new ProgrammeService
func NewProgrammeService(programmeRepo ProgrammeStore) *ProgrammeService {
	return &ProgrammeService{programmeRepo: programmeRepo}
}

// resolveCode upper-cases an explicit code, or derives one from the name and
// appends a numeric suffix until it is free within the school.
func (s *ProgrammeService) resolveCode(ctx context.Context, schoolID int64, name, code string, excludeID int64) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code != "" {
		taken, err := s.programmeRepo.CodeExists(ctx, schoolID, code, excludeID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", apperrors.ErrProgrammeAlreadyExists
		}
		return code, nil
	}

	base := models.ProgrammeCodeFromName(name)
	if base == "" {
		return "", apperrors.NewValidationError("code", "cannot be derived from the name, please provide one")
	}
	return models.WithNumericSuffix(base, func(c string) (bool, error) {
		return s.programmeRepo.CodeExists(ctx, schoolID, c, excludeID)
	})
}

func (s *ProgrammeService) checkName(ctx context.Context, schoolID int64, name string, excludeID int64) error {
	if len([]rune(name)) < 2 {
		return apperrors.NewValidationError("name", "must be at least 2 characters")
	}
	taken, err := s.programmeRepo.NameExists(ctx, schoolID, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrProgrammeAlreadyExists
	}
	return nil
}

// Create adds a programme
func (s *ProgrammeService) Create(ctx context.Context, schoolID int64, req *dto.ProgrammeRequest) (*models.Programme, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.checkName(ctx, schoolID, name, 0); err != nil {
		return nil, err
	}
	code, err := s.resolveCode(ctx, schoolID, name, req.Code, 0)
	if err != nil {
		return nil, err
	}

	p := &models.Programme{
		SchoolID:    schoolID,
		Name:        name,
		Code:        code,
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
	}
	if err := s.programmeRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a programme of the school
func (s *ProgrammeService) Get(ctx context.Context, schoolID, id int64) (*models.Programme, error) {
	return s.programmeRepo.GetByID(ctx, schoolID, id)
}

// List returns one page of programmes
func (s *ProgrammeService) List(ctx context.Context, schoolID int64, params dto.ListParams) ([]*models.Programme, int64, error) {
	helpers.NormalizeListParams(&params)
	return s.programmeRepo.List(ctx, schoolID, params)
}

// Update renames a programme. A blank code keeps the current one.
func (s *ProgrammeService) Update(ctx context.Context, schoolID, id int64, req *dto.ProgrammeRequest) (*models.Programme, error) {
	p, err := s.programmeRepo.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.checkName(ctx, schoolID, name, id); err != nil {
		return nil, err
	}
	if code := strings.ToUpper(strings.TrimSpace(req.Code)); code != "" && code != p.Code {
		if p.Code, err = s.resolveCode(ctx, schoolID, name, code, id); err != nil {
			return nil, err
		}
	}
	p.Name = name
	p.Description = strings.TrimSpace(req.Description)

	if err := s.programmeRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetActive activates or deactivates a programme
func (s *ProgrammeService) SetActive(ctx context.Context, schoolID, id int64, active bool) error {
	return s.programmeRepo.SetActive(ctx, schoolID, id, active)
}
