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
	"github.com/edutrack/schoolms/internal/pkg/idgen"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// TeacherService manages the teaching staff of a school
type TeacherService struct {
	tx       db.Transactor
	schools  SchoolStore
	teachers TeacherStore
	subjects SubjectStore
	users    UserStore
	ids      *IDGenerator
	notifier email.Notifier
	policy   Policy
	logger   zerolog.Logger
}

// NewTeacherService creates a new TeacherService
func NewTeacherService(d Deps) *TeacherService {
	return &TeacherService{
		tx:       d.Tx,
		schools:  d.Schools,
		teachers: d.Teachers,
		subjects: d.Subjects,
		users:    d.Users,
		ids:      d.idGenerator(),
		notifier: d.Notifier,
		policy:   d.Policy.withDefaults(),
		logger:   d.Logger,
	}
}

func (s *TeacherService) checkUnique(ctx context.Context, schoolID int64, p *models.Person, excludeID int64) error {
	if p.Email != "" {
		exists, err := s.teachers.EmailExists(ctx, schoolID, p.Email, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrPersonEmailAlreadyExist
		}
	}
	if p.GhanaCardNumber != nil {
		exists, err := s.teachers.GhanaCardExists(ctx, *p.GhanaCardNumber, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrGhanaCardAlreadyExists
		}
	}
	return nil
}

// Create adds a teacher, optionally with a login account
func (s *TeacherService) Create(ctx context.Context, schoolID int64, req *dto.CreateTeacherRequest) (*dto.RegistrationResponse, error) {
	person, err := buildPerson(req.PersonRequest)
	if err != nil {
		return nil, err
	}
	if req.CreateAccount && person.Email == "" {
		return nil, apperrors.ErrMissingContactInfo
	}

	employed := helpers.Today()
	if req.EmploymentDate != "" {
		if employed, err = helpers.ParseDate(req.EmploymentDate); err != nil {
			return nil, apperrors.NewValidationError("employmentDate", err.Error())
		}
	}
	if err := checkEmploymentDate(employed); err != nil {
		return nil, err
	}
	subjectIDs, subjects, err := assignableSubjects(ctx, s.subjects, schoolID, req.SubjectIDs)
	if err != nil {
		return nil, err
	}

	school, err := s.schools.GetByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, schoolID, &person, 0); err != nil {
		return nil, err
	}

	var (
		teacher *models.Teacher
		creds   *dto.CredentialsResponse
	)
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		teacherID, err := s.ids.Next(ctx, schoolID, idgen.EntityTeacher, employed.Year())
		if err != nil {
			return err
		}

		teacher = &models.Teacher{
			SchoolID:       schoolID,
			TeacherID:      teacherID,
			Person:         person,
			EmploymentDate: employed,
			Qualification:  strings.TrimSpace(req.Qualification),
			IsActive:       true,
			Subjects:       subjects,
		}
		if err := s.teachers.Create(ctx, teacher); err != nil {
			return err
		}
		if err := s.subjects.ReplaceTeacherSubjects(ctx, teacher.ID, subjectIDs); err != nil {
			return err
		}

		if req.CreateAccount {
			user, password, err := openAccount(ctx, s.users, accountSpec{
				Username:  teacherID,
				Email:     person.Email,
				FirstName: person.FirstName,
				LastName:  person.LastName,
				SchoolID:  schoolID,
				Flags:     models.RoleFlags{IsTeacher: true},
			}, s.policy.PasswordLength)
			if err != nil {
				return err
			}
			if err := s.teachers.SetUserID(ctx, schoolID, teacher.ID, user.ID); err != nil {
				return err
			}
			teacher.UserID = &user.ID
			creds = &dto.CredentialsResponse{Username: user.Username, Password: password}
		}
		return nil
	})
	if err != nil {
		if !isClientError(err) {
			s.logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Failed to create teacher")
		}
		return nil, err
	}

	s.logger.Info().Int64("schoolID", schoolID).Str("teacherID", teacher.TeacherID).Msg("Teacher created")
	sendCredentials(ctx, s.notifier, s.logger, school.Name, teacher.Person, creds, nil)

	return &dto.RegistrationResponse{Teacher: teacher, Credentials: creds, LoginEnabled: creds != nil}, nil
}

// Get returns a teacher of the school with its subjects
func (s *TeacherService) Get(ctx context.Context, schoolID, id int64) (*models.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}
	if err := attachSubjects(ctx, s.subjects, teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

// List returns a page of teachers with their subjects
func (s *TeacherService) List(ctx context.Context, schoolID int64, f dto.TeacherFilter) ([]*models.Teacher, int64, error) {
	helpers.NormalizeListParams(&f.ListParams)
	teachers, total, err := s.teachers.List(ctx, schoolID, f)
	if err != nil {
		return nil, 0, err
	}
	if err := attachSubjects(ctx, s.subjects, teachers...); err != nil {
		return nil, 0, err
	}
	return teachers, total, nil
}

// Update changes teacher details; the linked account follows name and email changes
func (s *TeacherService) Update(ctx context.Context, schoolID, id int64, req *dto.UpdateTeacherRequest) (*models.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	err = applyPersonUpdate(&teacher.Person, personUpdate{
		FirstName:       req.FirstName,
		MiddleName:      req.MiddleName,
		LastName:        req.LastName,
		Gender:          req.Gender,
		DateOfBirth:     req.DateOfBirth,
		Phone:           req.Phone,
		Email:           req.Email,
		Address:         req.Address,
		GhanaCardNumber: req.GhanaCardNumber,
	})
	if err != nil {
		return nil, err
	}
	if teacher.UserID != nil && teacher.Email == "" {
		return nil, apperrors.NewValidationError("email", "cannot be removed while the teacher can sign in")
	}
	var subjectIDs []int64
	if req.SubjectIDs != nil {
		if subjectIDs, teacher.Subjects, err = assignableSubjects(ctx, s.subjects, schoolID, *req.SubjectIDs); err != nil {
			return nil, err
		}
	}
	if req.Qualification != nil {
		teacher.Qualification = strings.TrimSpace(*req.Qualification)
	}
	if err := s.checkUnique(ctx, schoolID, &teacher.Person, teacher.ID); err != nil {
		return nil, err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		if err := s.teachers.Update(ctx, teacher); err != nil {
			return err
		}
		if req.SubjectIDs != nil {
			if err := s.subjects.ReplaceTeacherSubjects(ctx, teacher.ID, subjectIDs); err != nil {
				return err
			}
		}
		if teacher.UserID != nil {
			return s.users.UpdateProfile(ctx, *teacher.UserID, teacher.FirstName, teacher.LastName,
				helpers.NullableString(teacher.Email))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if req.SubjectIDs == nil {
		if err := attachSubjects(ctx, s.subjects, teacher); err != nil {
			return nil, err
		}
	}
	return teacher, nil
}

// SetActive activates or deactivates a teacher together with its account
func (s *TeacherService) SetActive(ctx context.Context, schoolID, id int64, active bool) error {
	teacher, err := s.teachers.GetByID(ctx, schoolID, id)
	if err != nil {
		return err
	}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		if err := s.teachers.SetActive(ctx, schoolID, id, active); err != nil {
			return err
		}
		if teacher.UserID != nil {
			return s.users.SetActive(ctx, *teacher.UserID, active)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info().Int64("teacherID", id).Bool("active", active).Msg("Teacher activity changed")
	return nil
}

// Deactivate disables a teacher and its account
func (s *TeacherService) Deactivate(ctx context.Context, schoolID, id int64) error {
	return s.SetActive(ctx, schoolID, id, false)
}
