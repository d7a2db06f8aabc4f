package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

// RegistrationService handles self-registration with a voucher
type RegistrationService struct {
	tx        db.Transactor
	schools   SchoolStore
	vouchers  VoucherStore
	classes   ClassStore
	students  StudentStore
	teachers  TeacherStore
	subjects  SubjectStore
	guardians GuardianStore
	users     UserStore
	ids       *IDGenerator
	notifier  email.Notifier
	events    EventPublisher
	policy    Policy
	logger    zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(d Deps) *RegistrationService {
	return &RegistrationService{
		tx:        d.Tx,
		schools:   d.Schools,
		vouchers:  d.Vouchers,
		classes:   d.Classes,
		students:  d.Students,
		teachers:  d.Teachers,
		subjects:  d.Subjects,
		guardians: d.Guardians,
		users:     d.Users,
		ids:       d.idGenerator(),
		notifier:  d.Notifier,
		events:    publisherOrNoop(d.Events),
		policy:    d.Policy.withDefaults(),
		logger:    d.Logger,
	}
}

// lookupVoucher resolves serial and PIN to an unused voucher of the expected kind.
// Any lookup failure is reported as invalid credentials so serials cannot be probed.
func (s *RegistrationService) lookupVoucher(ctx context.Context, serial, pin string, kind models.VoucherKind) (*models.Voucher, *models.School, error) {
	voucher, err := s.vouchers.FindBySerialAndPIN(ctx, strings.TrimSpace(serial), strings.TrimSpace(pin))
	if err != nil {
		if errors.Is(err, apperrors.ErrVoucherNotFound) {
			return nil, nil, apperrors.ErrVoucherInvalid
		}
		return nil, nil, fmt.Errorf("error looking up voucher: %w", err)
	}
	if voucher.IsUsed {
		return nil, nil, apperrors.ErrVoucherAlreadyUsed
	}
	if voucher.Kind != kind {
		return nil, nil, apperrors.ErrVoucherKindMismatch
	}

	school, err := s.schools.GetByID(ctx, voucher.SchoolID)
	if err != nil {
		return nil, nil, err
	}
	if !school.IsActive {
		return nil, nil, apperrors.NewForbiddenError("this school is not accepting registrations")
	}
	return voucher, school, nil
}

// lockVoucher re-reads the voucher under a row lock so concurrent registrations
// with the same voucher queue up here and all but the first see it used.
func (s *RegistrationService) lockVoucher(ctx context.Context, id int64) (*models.Voucher, error) {
	locked, err := s.vouchers.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if locked.IsUsed {
		return nil, apperrors.ErrVoucherAlreadyUsed
	}
	return locked, nil
}

// RegisterStudent enrols a student with a student voucher. Everything is written
// in one transaction; notifications and events follow the commit.
func (s *RegistrationService) RegisterStudent(ctx context.Context, req *dto.StudentRegistrationRequest) (*dto.RegistrationResponse, error) {
	voucher, school, err := s.lookupVoucher(ctx, req.SerialNumber, req.PIN, models.VoucherKindStudent)
	if err != nil {
		return nil, err
	}

	person, err := buildPerson(req.PersonRequest)
	if err != nil {
		return nil, err
	}
	if voucher.CanSignin && person.Email == "" {
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

	var (
		student *models.Student
		creds   *dto.CredentialsResponse
	)
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		locked, err := s.lockVoucher(ctx, voucher.ID)
		if err != nil {
			return err
		}

		if locked.ClassID != nil {
			if _, err := reserveSeat(ctx, s.classes, locked.SchoolID, *locked.ClassID); err != nil {
				return err
			}
		}

		studentID, err := s.ids.Next(ctx, locked.SchoolID, idgen.EntityStudent, year)
		if err != nil {
			return err
		}

		student = &models.Student{
			SchoolID:       locked.SchoolID,
			StudentID:      studentID,
			Person:         person,
			YearAdmitted:   year,
			CurrentClassID: locked.ClassID,
			Status:         models.StudentStatusActive,
			IsActive:       true,
			CurrentClass:   locked.Class,
		}
		if err := s.students.Create(ctx, student); err != nil {
			return err
		}

		if locked.CanSignin {
			user, password, err := openAccount(ctx, s.users, accountSpec{
				Username:  studentID,
				Email:     person.Email,
				FirstName: person.FirstName,
				LastName:  person.LastName,
				SchoolID:  locked.SchoolID,
				Flags:     models.RoleFlags{IsStudent: true},
			}, s.policy.PasswordLength)
			if err != nil {
				return err
			}
			if err := s.students.SetUserID(ctx, locked.SchoolID, student.ID, user.ID); err != nil {
				return err
			}
			student.UserID = &user.ID
			creds = &dto.CredentialsResponse{Username: user.Username, Password: password}
		}

		used, err := s.vouchers.MarkUsed(ctx, locked.ID, &student.ID, nil)
		if err != nil {
			return err
		}
		if !used {
			return apperrors.ErrVoucherAlreadyUsed
		}

		links, err := attachGuardians(ctx, s.guardians, locked.SchoolID, student.ID, req.Guardians)
		if err != nil {
			return err
		}
		student.Guardians = links
		return nil
	})
	if err != nil {
		if !isClientError(err) {
			s.logger.Error().Err(err).Int64("voucherID", voucher.ID).Msg("Student registration failed")
		}
		return nil, err
	}

	s.logger.Info().
		Int64("schoolID", student.SchoolID).
		Str("studentID", student.StudentID).
		Bool("loginEnabled", creds != nil).
		Msg("Student registered with voucher")

	sendCredentials(ctx, s.notifier, s.logger, school.Name, student.Person, creds, primaryGuardian(student.Guardians))
	s.events.Publish(student.SchoolID, websocket.EventStudentRegistered, map[string]interface{}{
		"id":        student.ID,
		"studentId": student.StudentID,
		"name":      student.FullName(),
		"classId":   student.CurrentClassID,
	})
	s.events.Publish(student.SchoolID, websocket.EventVoucherConsumed, map[string]interface{}{
		"voucherId":    voucher.ID,
		"serialNumber": voucher.SerialNumber,
	})

	return &dto.RegistrationResponse{
		Student:      student,
		Credentials:  creds,
		LoginEnabled: creds != nil,
	}, nil
}

// RegisterTeacher adds a teacher with a teacher voucher
func (s *RegistrationService) RegisterTeacher(ctx context.Context, req *dto.TeacherRegistrationRequest) (*dto.RegistrationResponse, error) {
	voucher, school, err := s.lookupVoucher(ctx, req.SerialNumber, req.PIN, models.VoucherKindTeacher)
	if err != nil {
		return nil, err
	}

	person, err := buildPerson(req.PersonRequest)
	if err != nil {
		return nil, err
	}
	if voucher.CanSignin && person.Email == "" {
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
	subjectIDs, subjects, err := assignableSubjects(ctx, s.subjects, voucher.SchoolID, req.SubjectIDs)
	if err != nil {
		return nil, err
	}

	var (
		teacher *models.Teacher
		creds   *dto.CredentialsResponse
	)
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, _ pgx.Tx) error {
		locked, err := s.lockVoucher(ctx, voucher.ID)
		if err != nil {
			return err
		}

		teacherID, err := s.ids.Next(ctx, locked.SchoolID, idgen.EntityTeacher, employed.Year())
		if err != nil {
			return err
		}

		teacher = &models.Teacher{
			SchoolID:       locked.SchoolID,
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

		if locked.CanSignin {
			user, password, err := openAccount(ctx, s.users, accountSpec{
				Username:  teacherID,
				Email:     person.Email,
				FirstName: person.FirstName,
				LastName:  person.LastName,
				SchoolID:  locked.SchoolID,
				Flags:     models.RoleFlags{IsTeacher: true},
			}, s.policy.PasswordLength)
			if err != nil {
				return err
			}
			if err := s.teachers.SetUserID(ctx, locked.SchoolID, teacher.ID, user.ID); err != nil {
				return err
			}
			teacher.UserID = &user.ID
			creds = &dto.CredentialsResponse{Username: user.Username, Password: password}
		}

		used, err := s.vouchers.MarkUsed(ctx, locked.ID, nil, &teacher.ID)
		if err != nil {
			return err
		}
		if !used {
			return apperrors.ErrVoucherAlreadyUsed
		}
		return nil
	})
	if err != nil {
		if !isClientError(err) {
			s.logger.Error().Err(err).Int64("voucherID", voucher.ID).Msg("Teacher registration failed")
		}
		return nil, err
	}

	s.logger.Info().Int64("schoolID", teacher.SchoolID).Str("teacherID", teacher.TeacherID).Msg("Teacher registered with voucher")

	sendCredentials(ctx, s.notifier, s.logger, school.Name, teacher.Person, creds, nil)
	s.events.Publish(teacher.SchoolID, websocket.EventTeacherRegistered, map[string]interface{}{
		"id":        teacher.ID,
		"teacherId": teacher.TeacherID,
		"name":      teacher.FullName(),
	})
	s.events.Publish(teacher.SchoolID, websocket.EventVoucherConsumed, map[string]interface{}{
		"voucherId":    voucher.ID,
		"serialNumber": voucher.SerialNumber,
	})

	return &dto.RegistrationResponse{
		Teacher:      teacher,
		Credentials:  creds,
		LoginEnabled: creds != nil,
	}, nil
}

// isClientError reports whether err is caused by the request rather than the system
func isClientError(err error) bool {
	return apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrResourceNotFound,
		apperrors.ErrConflict,
		apperrors.ErrPermissionDenied,
		apperrors.ErrBadRequest,
		apperrors.ErrVoucherInvalid,
		apperrors.ErrVoucherAlreadyUsed,
		apperrors.ErrVoucherKindMismatch,
		apperrors.ErrMissingContactInfo,
		apperrors.ErrMultiplePrimaryGuardians,
		apperrors.ErrClassFull,
		apperrors.ErrClassNotFound,
		apperrors.ErrGuardianAlreadyLinked,
		apperrors.ErrUsernameAlreadyExists,
		apperrors.ErrPersonEmailAlreadyExist,
		apperrors.ErrGhanaCardAlreadyExists,
		apperrors.ErrSchoolNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrTeacherNotFound,
		apperrors.ErrGuardianNotFound,
		apperrors.ErrGuardianLinkNotFound,
		apperrors.ErrProgrammeNotFound,
		apperrors.ErrSubjectNotFound,
		apperrors.ErrSubjectAlreadyExists,
		apperrors.ErrSubjectInUse,
	)
}
