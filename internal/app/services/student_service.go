package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/db"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/email"
	"github.com/edutrack/schoolms/internal/pkg/helpers"
	"github.com/edutrack/schoolms/internal/pkg/idgen"
	"github.com/edutrack/schoolms/internal/pkg/websocket"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// StudentService manages students on behalf of school administrators
type StudentService struct {
	tx        db.Transactor
	schools   SchoolStore
	classes   ClassStore
	students  StudentStore
	guardians GuardianStore
	users     UserStore
	ids       *IDGenerator
	notifier  email.Notifier
	events    EventPublisher
	policy    Policy
	logger    zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(d Deps) *StudentService {
	return &StudentService{
		tx:        d.Tx,
		schools:   d.Schools,
		classes:   d.Classes,
		students:  d.Students,
		guardians: d.Guardians,
		users:     d.Users,
		ids:       d.idGenerator(),
		notifier:  d.Notifier,
		events:    publisherOrNoop(d.Events),
		policy:    d.Policy.withDefaults(),
		logger:    d.Logger,
	}
}

// enrolment is a validated request to create one student
type enrolment struct {
	Person        models.Person
	YearAdmitted  int
	ClassID       *int64
	CreateAccount bool
	Guardians     []dto.GuardianInput
}

func checkYearAdmitted(year int) error {
	if year < idgen.MinYear || year > time.Now().Year()+1 {
		return apperrors.NewValidationError("yearAdmitted",
			fmt.Sprintf("must be between %d and %d", idgen.MinYear, time.Now().Year()+1))
	}
	return nil
}

// checkEmploymentDate bounds the employment year the same way as admission years,
// since it feeds the teacher identifier
func checkEmploymentDate(d time.Time) error {
	if d.Year() < idgen.MinYear || d.Year() > time.Now().Year()+1 {
		return apperrors.NewValidationError("employmentDate",
			fmt.Sprintf("year must be between %d and %d", idgen.MinYear, time.Now().Year()+1))
	}
	return nil
}

// checkUnique rejects an email already used by another student of the school and a
// Ghana card number already registered to another student.
func (s *StudentService) checkUnique(ctx context.Context, schoolID int64, p *models.Person, excludeID int64) error {
	if p.Email != "" {
		exists, err := s.students.EmailExists(ctx, schoolID, p.Email, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrPersonEmailAlreadyExist
		}
	}
	if p.GhanaCardNumber != nil {
		exists, err := s.students.GhanaCardExists(ctx, *p.GhanaCardNumber, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrGhanaCardAlreadyExists
		}
	}
	return nil
}

// reserveSeat locks the class row and fails when the class is inactive or has no free seat
func reserveSeat(ctx context.Context, classes ClassStore, schoolID, classID int64) (*models.Class, error) {
	class, err := classes.LockForEnrollment(ctx, schoolID, classID)
	if err != nil {
		return nil, err
	}
	if !class.IsActive {
		return nil, apperrors.NewBadRequestError("class is not active")
	}
	if class.IsFull() {
		return nil, apperrors.ErrClassFull
	}
	return class, nil
}

// enrol writes the student, its optional account and its guardians in one transaction
func (s *StudentService) enrol(ctx context.Context, schoolID int64, e enrolment) (*models.Student, *dto.CredentialsResponse, error) {
	var (
		student *models.Student
		creds   *dto.CredentialsResponse
	)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		var class *models.Class
		if e.ClassID != nil {
			var err error
			if class, err = reserveSeat(ctx, s.classes, schoolID, *e.ClassID); err != nil {
				return err
			}
		}

		studentID, err := s.ids.Next(ctx, schoolID, idgen.EntityStudent, e.YearAdmitted)
		if err != nil {
			return err
		}

		student = &models.Student{
			SchoolID:       schoolID,
			StudentID:      studentID,
			Person:         e.Person,
			YearAdmitted:   e.YearAdmitted,
			CurrentClassID: e.ClassID,
			Status:         models.StudentStatusActive,
			IsActive:       true,
			CurrentClass:   class,
		}
		if err := s.students.Create(ctx, student); err != nil {
			return err
		}

		if e.CreateAccount {
			user, password, err := openAccount(ctx, s.users, accountSpec{
				Username:  studentID,
				Email:     e.Person.Email,
				FirstName: e.Person.FirstName,
				LastName:  e.Person.LastName,
				SchoolID:  schoolID,
				Flags:     models.RoleFlags{IsStudent: true},
			}, s.policy.PasswordLength)
			if err != nil {
				return err
			}
			if err := s.students.SetUserID(ctx, schoolID, student.ID, user.ID); err != nil {
				return err
			}
			student.UserID = &user.ID
			creds = &dto.CredentialsResponse{Username: user.Username, Password: password}
		}

		links, err := attachGuardians(ctx, s.guardians, schoolID, student.ID, e.Guardians)
		if err != nil {
			return err
		}
		student.Guardians = links
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return student, creds, nil
}

// Create enrols a student directly, optionally with a login account and guardians
func (s *StudentService) Create(ctx context.Context, schoolID int64, req *dto.CreateStudentRequest) (*dto.StudentCreatedResponse, error) {
	person, err := buildPerson(req.PersonRequest)
	if err != nil {
		return nil, err
	}
	if req.CreateAccount && person.Email == "" {
		return nil, apperrors.ErrMissingContactInfo
	}
	if err := checkGuardianInputs(req.Guardians); err != nil {
		return nil, err
	}

	year := req.YearAdmitted
	if year == 0 {
		year = time.Now().Year()
	}
	if err := checkYearAdmitted(year); err != nil {
		return nil, err
	}

	school, err := s.schools.GetByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, schoolID, &person, 0); err != nil {
		return nil, err
	}

	student, creds, err := s.enrol(ctx, schoolID, enrolment{
		Person:        person,
		YearAdmitted:  year,
		ClassID:       req.ClassID,
		CreateAccount: req.CreateAccount,
		Guardians:     req.Guardians,
	})
	if err != nil {
		if !isClientError(err) {
			s.logger.Error().Err(err).Int64("schoolID", schoolID).Msg("Failed to create student")
		}
		return nil, err
	}

	s.logger.Info().Int64("schoolID", schoolID).Str("studentID", student.StudentID).Msg("Student created")

	sendCredentials(ctx, s.notifier, s.logger, school.Name, student.Person, creds, primaryGuardian(student.Guardians))
	s.events.Publish(schoolID, websocket.EventStudentCreated, map[string]interface{}{
		"id":        student.ID,
		"studentId": student.StudentID,
		"name":      student.FullName(),
		"classId":   student.CurrentClassID,
	})

	return &dto.StudentCreatedResponse{Student: student, Credentials: creds}, nil
}

// Get returns a student with its guardians
func (s *StudentService) Get(ctx context.Context, schoolID, id int64) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}
	links, err := s.guardians.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	student.Guardians = links
	return student, nil
}

// List returns a page of students
func (s *StudentService) List(ctx context.Context, schoolID int64, f dto.StudentFilter) ([]*models.Student, int64, error) {
	helpers.NormalizeListParams(&f.ListParams)
	return s.students.List(ctx, schoolID, f)
}

// Update changes personal fields and the class of a student. The linked account,
// when there is one, follows name and email changes. The admission year is fixed.
func (s *StudentService) Update(ctx context.Context, schoolID, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}

	err = applyPersonUpdate(&student.Person, personUpdate{
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
	if student.UserID != nil && student.Email == "" {
		return nil, apperrors.NewValidationError("email", "cannot be removed while the student can sign in")
	}
	// the student ID carries the admission year and its sequence
	if req.YearAdmitted != nil && *req.YearAdmitted != student.YearAdmitted {
		return nil, apperrors.NewValidationError("yearAdmitted", "cannot be changed once the student ID is issued")
	}
	if err := s.checkUnique(ctx, schoolID, &student.Person, student.ID); err != nil {
		return nil, err
	}

	moving := req.ClassID != nil && (student.CurrentClassID == nil || *student.CurrentClassID != *req.ClassID)
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		if moving {
			class, err := reserveSeat(ctx, s.classes, schoolID, *req.ClassID)
			if err != nil {
				return err
			}
			student.CurrentClassID = &class.ID
			student.CurrentClass = class
		}
		if err := s.students.Update(ctx, student); err != nil {
			return err
		}
		if student.UserID != nil {
			return s.users.UpdateProfile(ctx, *student.UserID, student.FirstName, student.LastName,
				helpers.NullableString(student.Email))
		}
		return nil
	})
	if err != nil {
		if !isClientError(err) {
			s.logger.Error().Err(err).Int64("studentID", id).Msg("Failed to update student")
		}
		return nil, err
	}
	return student, nil
}

// SetStatus changes the enrolment status. Only active students stay active and
// keep their login; every other status disables both.
func (s *StudentService) SetStatus(ctx context.Context, schoolID, id int64, status models.StudentStatus) (*models.Student, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status", "unknown status")
	}

	student, err := s.students.GetByID(ctx, schoolID, id)
	if err != nil {
		return nil, err
	}
	previous := student.Status
	active := status == models.StudentStatusActive

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		if err := s.students.SetStatus(ctx, schoolID, id, status, active); err != nil {
			return err
		}
		if student.UserID != nil {
			return s.users.SetActive(ctx, *student.UserID, active)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	student.Status = status
	student.IsActive = active

	s.logger.Info().
		Int64("studentID", id).
		Str("from", string(previous)).
		Str("to", string(status)).
		Msg("Student status changed")
	s.events.Publish(schoolID, websocket.EventStudentStatus, map[string]interface{}{
		"id":        student.ID,
		"studentId": student.StudentID,
		"from":      previous,
		"to":        status,
	})
	return student, nil
}

// Deactivate withdraws a student and disables its account
func (s *StudentService) Deactivate(ctx context.Context, schoolID, id int64) error {
	_, err := s.SetStatus(ctx, schoolID, id, models.StudentStatusWithdrawn)
	return err
}

// BulkMove moves students to a target class one by one. Each move is its own
// transaction, so one failure (a full class, an unknown student) does not undo
// the others.
func (s *StudentService) BulkMove(ctx context.Context, schoolID int64, req *dto.BulkMoveRequest) (*dto.BulkMoveResult, error) {
	if _, err := s.classes.GetByID(ctx, schoolID, req.TargetClassID); err != nil {
		return nil, err
	}

	result := &dto.BulkMoveResult{Moved: []int64{}, Failed: []dto.ItemError{}}
	seen := make(map[int64]bool, len(req.StudentIDs))
	for _, id := range req.StudentIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		err := s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
			student, err := s.students.GetByID(ctx, schoolID, id)
			if err != nil {
				return err
			}
			if student.CurrentClassID != nil && *student.CurrentClassID == req.TargetClassID {
				return nil
			}
			if _, err := reserveSeat(ctx, s.classes, schoolID, req.TargetClassID); err != nil {
				return err
			}
			target := req.TargetClassID
			return s.students.SetClass(ctx, schoolID, id, &target)
		})
		if err != nil {
			if !isClientError(err) {
				s.logger.Error().Err(err).Int64("studentID", id).Msg("Failed to move student")
			}
			result.Failed = append(result.Failed, dto.ItemError{ID: id, Message: err.Error()})
			continue
		}
		result.Moved = append(result.Moved, id)
	}

	s.logger.Info().
		Int64("targetClassID", req.TargetClassID).
		Int("moved", len(result.Moved)).
		Int("failed", len(result.Failed)).
		Msg("Bulk class move finished")
	return result, nil
}
