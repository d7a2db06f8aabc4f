package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/helpers"
)

// ClassService handles the classes of a school
type ClassService struct {
	classRepo     ClassStore
	programmeRepo ProgrammeStore
}

// NewClassService creates a new ClassService
func NewClassService(classRepo ClassStore, programmeRepo ProgrammeStore) *ClassService {
	return &ClassService{classRepo: classRepo, programmeRepo: programmeRepo}
}

// validateClass checks stage, level and programme rules and loads the programme
func (s *ClassService) validateClass(ctx context.Context, c *models.Class) error {
	v := &apperrors.ValidationError{}
	if !c.Stage.Valid() {
		v.Add("stage", "must be one of KG, PR, JHS, SHS")
	} else if c.Level < 1 || c.Level > c.Stage.MaxLevel() {
		v.Add("level", fmt.Sprintf("must be between 1 and %d for %s", c.Stage.MaxLevel(), c.Stage))
	}
	if c.Stream == "" {
		v.Add("stream", "is required")
	}
	if c.MaxStudents < 1 {
		v.Add("maxStudents", "must be at least 1")
	}
	if c.Stage.RequiresProgramme() && c.ProgrammeID == nil {
		v.Add("programmeId", "is required for SHS classes")
	}
	if !c.Stage.RequiresProgramme() && c.ProgrammeID != nil {
		v.Add("programmeId", "is only allowed for SHS classes")
	}
	if err := v.OrNil(); err != nil {
		return err
	}

	if c.ProgrammeID != nil {
		p, err := s.programmeRepo.GetByID(ctx, c.SchoolID, *c.ProgrammeID)
		if err != nil {
			return err
		}
		c.Programme = p
	}
	return nil
}

func (s *ClassService) checkDuplicate(ctx context.Context, c *models.Class) error {
	dup, err := s.classRepo.DuplicateExists(ctx, c)
	if err != nil {
		return err
	}
	if dup {
		return apperrors.ErrClassAlreadyExists
	}
	return nil
}

// Create adds a class
func (s *ClassService) Create(ctx context.Context, schoolID int64, req *dto.ClassRequest) (*models.Class, error) {
	c := &models.Class{
		SchoolID:    schoolID,
		Stage:       req.Stage,
		Level:       req.Level,
		Stream:      strings.TrimSpace(req.Stream),
		ProgrammeID: req.ProgrammeID,
		MaxStudents: req.MaxStudents,
		IsActive:    true,
	}
	if c.MaxStudents == 0 {
		c.MaxStudents = models.DefaultMaxStudents
	}
	if err := s.validateClass(ctx, c); err != nil {
		return nil, err
	}
	if err := s.checkDuplicate(ctx, c); err != nil {
		return nil, err
	}
	if err := s.classRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns a class with its enrollment
func (s *ClassService) Get(ctx context.Context, schoolID, id int64) (*models.Class, error) {
	return s.classRepo.GetByID(ctx, schoolID, id)
}

// List returns one page of classes
func (s *ClassService) List(ctx context.Context, schoolID int64, f dto.ClassFilter) ([]*models.Class, int64, error) {
	helpers.NormalizeListParams(&f.ListParams)
	return s.classRepo.List(ctx, schoolID, f)
}

// Update changes a class. Capacity cannot drop below the current enrollment.
func (s *ClassService) Update(ctx context.Context, schoolID, id int64, req *dto.ClassRequest) (*models.Class, error) {
	c, err := s.classRepo.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	c.Stage = req.Stage
	c.Level = req.Level
	c.Stream = strings.TrimSpace(req.Stream)
	c.ProgrammeID = req.ProgrammeID
	c.Programme = nil
	if req.MaxStudents > 0 {
		c.MaxStudents = req.MaxStudents
	}
	if err := s.validateClass(ctx, c); err != nil {
		return nil, err
	}
	if c.MaxStudents < c.Enrollment {
		return nil, apperrors.NewValidationError("maxStudents",
			fmt.Sprintf("cannot be lower than the current enrollment of %d", c.Enrollment))
	}
	if err := s.checkDuplicate(ctx, c); err != nil {
		return nil, err
	}
	if err := s.classRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetActive activates or deactivates a class
func (s *ClassService) SetActive(ctx context.Context, schoolID, id int64, active bool) error {
	return s.classRepo.SetActive(ctx, schoolID, id, active)
}

func findClassByName(classes []*models.Class, name string) *models.Class {
	want := normalizeClassName(name)
	if want == "" {
		return nil
	}
	for _, c := range classes {
		if c.IsActive && normalizeClassName(c.DisplayName()) == want {
			return c
		}
	}
	return nil
}

func normalizeClassName(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}
