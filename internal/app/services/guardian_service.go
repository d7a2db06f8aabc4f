package services

import (
	"context"
	"strings"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/db"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/email"
	"github.com/edutrack/schoolms/internal/pkg/helpers"
	"github.com/edutrack/schoolms/internal/pkg/validation"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// GuardianService manages guardians and their links to students
type GuardianService struct {
	tx        db.Transactor
	schools   SchoolStore
	guardians GuardianStore
	students  StudentStore
	users     UserStore
	notifier  email.Notifier
	policy    Policy
	logger    zerolog.Logger
}

// NewGuardianService creates a new GuardianService
func NewGuardianService(d Deps) *GuardianService {
	return &GuardianService{
		tx:        d.Tx,
		schools:   d.Schools,
		guardians: d.Guardians,
		students:  d.Students,
		users:     d.Users,
		notifier:  d.Notifier,
		policy:    d.Policy.withDefaults(),
		logger:    d.Logger,
	}
}

func guardianFields(g *models.Guardian, req *dto.GuardianRequest) error {
	v := &apperrors.ValidationError{}
	if !req.Title.Valid() {
		v.Add("title", "unknown title")
	}
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		v.Add("name", "must be at least 2 characters")
	}
	phone := validation.NormalizePhone(req.Phone)
	if !validation.IsValidPhone(phone) {
		v.Add("phone", "must be 10 to 15 digits with an optional leading +")
	}
	if err := v.OrNil(); err != nil {
		return err
	}

	g.Title = req.Title
	g.Name = name
	g.Phone = phone
	g.Email = strings.ToLower(strings.TrimSpace(req.Email))
	g.Address = strings.TrimSpace(req.Address)
	return nil
}

// Create adds a guardian to the school
func (s *GuardianService) Create(ctx context.Context, schoolID int64, req *dto.GuardianRequest) (*models.Guardian, error) {
	g := &models.Guardian{SchoolID: schoolID}
	if err := guardianFields(g, req); err != nil {
		return nil, err
	}
	if err := s.guardians.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Get returns a guardian of the school
func (s *GuardianService) Get(ctx context.Context, schoolID, id int64) (*models.Guardian, error) {
	return s.guardians.GetByID(ctx, schoolID, id)
}

// List returns a page of guardians
func (s *GuardianService) List(ctx context.Context, schoolID int64, f dto.GuardianFilter) ([]*models.Guardian, int64, error) {
	helpers.NormalizeListParams(&f.ListParams)
	return s.guardians.List(ctx, schoolID, f)
}

// Update replaces the details of a guardian
func (s *GuardianService) Update(ctx context.Context, schoolID, id int64, req *dto.GuardianRequest) (*models.Guardian, error) {
	g, err := s.guardians.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}
	if err := guardianFields(g, req); err != nil {
		return nil, err
	}
	if err := s.guardians.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Link attaches an existing guardian of the school to a student
func (s *GuardianService) Link(ctx context.Context, schoolID, studentID int64, req *dto.LinkGuardianRequest) (*models.StudentGuardian, error) {
	if _, err := s.students.GetByID(ctx, schoolID, studentID); err != nil {
		return nil, err
	}
	g, err := s.guardians.GetByID(ctx, schoolID, req.GuardianID)
	if err != nil {
		return nil, err
	}

	canPickup := true
	if req.CanPickup != nil {
		canPickup = *req.CanPickup
	}
	link := &models.StudentGuardian{
		StudentID:        studentID,
		GuardianID:       g.ID,
		Relationship:     req.Relationship,
		IsPrimary:        req.IsPrimary,
		CanPickup:        canPickup,
		EmergencyContact: req.EmergencyContact,
		Guardian:         g,
	}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		return linkGuardian(ctx, s.guardians, link)
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// UpdateLink changes relationship metadata. Making a link primary clears the
// flag on the student's other links in the same transaction.
func (s *GuardianService) UpdateLink(ctx context.Context, schoolID, studentID, guardianID int64, req *dto.UpdateGuardianLinkRequest) (*models.StudentGuardian, error) {
	if _, err := s.students.GetByID(ctx, schoolID, studentID); err != nil {
		return nil, err
	}

	var link *models.StudentGuardian
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		var err error
		if link, err = s.guardians.GetLink(ctx, studentID, guardianID); err != nil {
			return err
		}
		if req.Relationship != nil {
			if !req.Relationship.Valid() {
				return apperrors.NewValidationError("relationship", "unknown relationship")
			}
			link.Relationship = *req.Relationship
		}
		if req.CanPickup != nil {
			link.CanPickup = *req.CanPickup
		}
		if req.EmergencyContact != nil {
			link.EmergencyContact = *req.EmergencyContact
		}
		if req.IsPrimary != nil {
			if *req.IsPrimary && !link.IsPrimary {
				if err := s.guardians.ClearPrimary(ctx, studentID, guardianID); err != nil {
					return err
				}
			}
			link.IsPrimary = *req.IsPrimary
		}
		return s.guardians.UpdateLink(ctx, link)
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// Unlink removes a guardian from a student
func (s *GuardianService) Unlink(ctx context.Context, schoolID, studentID, guardianID int64) error {
	if _, err := s.students.GetByID(ctx, schoolID, studentID); err != nil {
		return err
	}
	return s.guardians.Unlink(ctx, studentID, guardianID)
}

// ListByStudent returns the guardians of a student, primary first
func (s *GuardianService) ListByStudent(ctx context.Context, schoolID, studentID int64) ([]models.StudentGuardian, error) {
	if _, err := s.students.GetByID(ctx, schoolID, studentID); err != nil {
		return nil, err
	}
	return s.guardians.ListByStudent(ctx, studentID)
}

// ListWards returns the students a guardian is linked to
func (s *GuardianService) ListWards(ctx context.Context, schoolID, guardianID int64) ([]models.StudentGuardian, error) {
	if _, err := s.guardians.GetByID(ctx, schoolID, guardianID); err != nil {
		return nil, err
	}
	return s.guardians.ListWards(ctx, guardianID)
}

// OpenAccount creates a guardian portal login. The username is the guardian's
// email, or its phone number when it has none.
func (s *GuardianService) OpenAccount(ctx context.Context, schoolID, id int64) (*dto.GuardianAccountResponse, error) {
	g, err := s.guardians.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}
	if g.UserID != nil {
		return nil, apperrors.NewConflictError("guardian already has an account")
	}
	school, err := s.schools.GetByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	username := g.Email
	if username == "" {
		username = g.Phone
	}
	first, last := splitName(g.Name)

	var creds *dto.CredentialsResponse
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		user, password, err := openAccount(ctx, s.users, accountSpec{
			Username:  username,
			Email:     g.Email,
			FirstName: first,
			LastName:  last,
			SchoolID:  schoolID,
			Flags:     models.RoleFlags{IsGuardian: true},
		}, s.policy.PasswordLength)
		if err != nil {
			return err
		}
		if err := s.guardians.SetUserID(ctx, schoolID, g.ID, user.ID); err != nil {
			return err
		}
		g.UserID = &user.ID
		creds = &dto.CredentialsResponse{Username: user.Username, Password: password}
		return nil
	})
	if err != nil {
		if !isClientError(err) {
			s.logger.Error().Err(err).Int64("guardianID", id).Msg("Failed to open guardian account")
		}
		return nil, err
	}

	s.logger.Info().Int64("guardianID", g.ID).Msg("Guardian account opened")
	sendCredentials(ctx, s.notifier, s.logger, school.Name,
		models.Person{FirstName: g.DisplayName(), Email: g.Email}, creds, nil)

	return &dto.GuardianAccountResponse{Guardian: g, Credentials: creds}, nil
}

// splitName splits "Akosua Mensah Boateng" into "Akosua" and "Mensah Boateng"
func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
