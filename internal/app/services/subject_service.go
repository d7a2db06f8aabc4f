package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// SubjectService manages the subject catalogue of a school
type SubjectService struct {
	subjectRepo SubjectStore
	logger      zerolog.Logger
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(subjectRepo SubjectStore, logger zerolog.Logger) *SubjectService {
	return &SubjectService{subjectRepo: subjectRepo, logger: logger}
}

// resolveCode upper-cases an explicit code, or takes the first letters of the
// name with a numeric suffix until it is free within the school.
func (s *SubjectService) resolveCode(ctx context.Context, schoolID int64, name, code string, excludeID int64) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code != "" {
		taken, err := s.subjectRepo.CodeExists(ctx, schoolID, code, excludeID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", apperrors.ErrSubjectAlreadyExists
		}
		return code, nil
	}

	base := models.SubjectCodeFromName(name)
	if base == "" {
		return "", apperrors.NewValidationError("code", "cannot be derived from the name, please provide one")
	}
	return models.WithNumericSuffix(base, func(c string) (bool, error) {
		return s.subjectRepo.CodeExists(ctx, schoolID, c, excludeID)
	})
}

func (s *SubjectService) checkName(ctx context.Context, schoolID int64, name string, excludeID int64) error {
	if len([]rune(name)) < 2 {
		return apperrors.NewValidationError("name", "must be at least 2 characters")
	}
	taken, err := s.subjectRepo.NameExists(ctx, schoolID, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrSubjectAlreadyExists
	}
	return nil
}

func subjectType(t models.SubjectType) (models.SubjectType, error) {
	if t == "" {
		return models.SubjectCore, nil
	}
	if !t.Valid() {
		return "", apperrors.NewValidationError("subjectType", "must be core, elective or extracurricular")
	}
	return t, nil
}

// Create adds a subject to the catalogue
func (s *SubjectService) Create(ctx context.Context, schoolID int64, req *dto.SubjectRequest) (*models.Subject, error) {
	name := strings.TrimSpace(req.Name)
	kind, err := subjectType(req.Type)
	if err != nil {
		return nil, err
	}
	if err := s.checkName(ctx, schoolID, name, 0); err != nil {
		return nil, err
	}
	code, err := s.resolveCode(ctx, schoolID, name, req.Code, 0)
	if err != nil {
		return nil, err
	}

	subject := &models.Subject{
		SchoolID:    schoolID,
		Name:        name,
		Code:        code,
		Type:        kind,
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
	}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("schoolID", schoolID).Str("code", subject.Code).Msg("Subject created")
	return subject, nil
}

// Get returns a subject of the school
func (s *SubjectService) Get(ctx context.Context, schoolID, id int64) (*models.Subject, error) {
	return s.subjectRepo.GetByID(ctx, schoolID, id)
}

// List returns one page of subjects
func (s *SubjectService) List(ctx context.Context, schoolID int64, f dto.SubjectFilter) ([]*models.Subject, int64, error) {
	helpers.NormalizeListParams(&f.ListParams)
	return s.subjectRepo.List(ctx, schoolID, f)
}

// Summary counts the catalogue by subject type; every type is present
func (s *SubjectService) Summary(ctx context.Context, schoolID int64) (*dto.SubjectSummary, error) {
	counts, err := s.subjectRepo.CountByType(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	summary := &dto.SubjectSummary{ByType: make(map[models.SubjectType]int64, len(models.SubjectTypes))}
	for _, t := range models.SubjectTypes {
		summary.ByType[t] = counts[t]
		summary.Total += counts[t]
	}
	return summary, nil
}

// Update renames or retypes a subject. A blank code keeps the current one.
func (s *SubjectService) Update(ctx context.Context, schoolID, id int64, req *dto.SubjectRequest) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.checkName(ctx, schoolID, name, id); err != nil {
		return nil, err
	}
	if req.Type != "" {
		if subject.Type, err = subjectType(req.Type); err != nil {
			return nil, err
		}
	}
	if code := strings.ToUpper(strings.TrimSpace(req.Code)); code != "" && code != subject.Code {
		if subject.Code, err = s.resolveCode(ctx, schoolID, name, code, id); err != nil {
			return nil, err
		}
	}
	subject.Name = name
	subject.Description = strings.TrimSpace(req.Description)

	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// SetActive activates or deactivates a subject. Inactive subjects stay on the
// teachers that already have them but cannot be newly assigned.
func (s *SubjectService) SetActive(ctx context.Context, schoolID, id int64, active bool) error {
	return s.subjectRepo.SetActive(ctx, schoolID, id, active)
}

// Delete removes a subject no teacher is assigned to
func (s *SubjectService) Delete(ctx context.Context, schoolID, id int64) error {
	if _, err := s.subjectRepo.GetByID(ctx, schoolID, id); err != nil {
		return err
	}
	assigned, err := s.subjectRepo.CountTeachers(ctx, id)
	if err != nil {
		return err
	}
	if assigned > 0 {
		return apperrors.ErrSubjectInUse
	}
	if err := s.subjectRepo.Delete(ctx, schoolID, id); err != nil {
		return err
	}
	s.logger.Info().Int64("schoolID", schoolID).Int64("subjectID", id).Msg("Subject deleted")
	return nil
}

// assignableSubjects checks that every ID names an active subject of the school
// and returns the IDs without duplicates together with the subjects.
func assignableSubjects(ctx context.Context, subjects SubjectStore, schoolID int64, ids []int64) ([]int64, []models.Subject, error) {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, nil, apperrors.NewValidationError("subjectIds", "must be positive")
		}
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return unique, []models.Subject{}, nil
	}

	found, err := subjects.ListByIDs(ctx, schoolID, unique)
	if err != nil {
		return nil, nil, err
	}
	if len(found) != len(unique) {
		return nil, nil, apperrors.NewValidationError("subjectIds", "contains a subject that does not exist in this school")
	}
	out := make([]models.Subject, 0, len(found))
	for _, subject := range found {
		if !subject.IsActive {
			return nil, nil, apperrors.NewValidationError("subjectIds", fmt.Sprintf("subject %s is not active", subject.Code))
		}
		out = append(out, *subject)
	}
	return unique, out, nil
}

// attachSubjects fills the Subjects of each teacher from its assignments
func attachSubjects(ctx context.Context, subjects SubjectStore, teachers ...*models.Teacher) error {
	ids := make([]int64, 0, len(teachers))
	for _, t := range teachers {
		ids = append(ids, t.ID)
	}
	assigned, err := subjects.ListForTeachers(ctx, ids)
	if err != nil {
		return err
	}
	for _, t := range teachers {
		t.Subjects = assigned[t.ID]
		if t.Subjects == nil {
			t.Subjects = []models.Subject{}
		}
	}
	return nil
}
