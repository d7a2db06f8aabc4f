package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/app/services"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/auth"
	"github.com/edutrack/schoolms/internal/pkg/validation"
)

// DemoSchoolCode is the code of the optional demo school
const DemoSchoolCode = "TEST"

// Options selects what CreateDefaultData creates
type Options struct {
	SuperuserUsername string
	SuperuserPassword string
	SuperuserEmail    string
	DemoSchool        bool
}

// Stores are the lookups the seed needs besides the services
type Stores struct {
	Users   services.UserStore
	Schools services.SchoolStore
}

// CreateDefaultData creates the platform superuser and, when asked, a demo
// school. Existing records are left alone so the seed can run on every start.
func CreateDefaultData(ctx context.Context, svcs *services.Services, stores Stores, opts Options, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	if err := createSuperuser(ctx, stores.Users, opts, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating superuser")
		finalErr = errors.Join(finalErr, err)
	}

	if opts.DemoSchool {
		if err := createDemoSchool(ctx, svcs, stores.Schools, time.Now(), lgr); err != nil {
			lgr.Error().Err(err).Msg("Error creating demo school")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation completed successfully.")
	}
	return finalErr
}

func createSuperuser(ctx context.Context, users services.UserStore, opts Options, lgr zerolog.Logger) error {
	username := strings.TrimSpace(opts.SuperuserUsername)
	if username == "" {
		return nil
	}
	exists, err := users.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		lgr.Debug().Str("username", username).Msg("Superuser already exists")
		return nil
	}

	password := opts.SuperuserPassword
	generated := password == ""
	if generated {
		if password, err = strongPassword(); err != nil {
			return err
		}
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing superuser password: %w", err)
	}

	user := &models.User{
		Username:    username,
		Password:    hash,
		FirstName:   "Platform",
		LastName:    "Administrator",
		IsSuperuser: true,
		IsActive:    true,
	}
	if email := strings.TrimSpace(opts.SuperuserEmail); email != "" {
		user.Email = &email
	}
	if err := users.Create(ctx, user); err != nil {
		return err
	}

	event := lgr.Info().Str("username", username).Int64("userID", user.ID)
	if generated {
		// printed once so the operator can sign in; set seed.superuser_password to avoid it
		lgr.Warn().Str("username", username).Str("password", password).Msg("Generated superuser password")
	}
	event.Msg("Superuser created")
	return nil
}

// strongPassword draws generated passwords until one has a letter and a digit
func strongPassword() (string, error) {
	for i := 0; i < 20; i++ {
		p, err := auth.GeneratePassword(12)
		if err != nil {
			return "", err
		}
		if validation.IsStrongPassword(p) {
			return p, nil
		}
	}
	return "", errors.New("could not generate a strong password")
}

// AcademicYearFor returns the academic year running at now for a school whose
// year starts in startMonth, as name and first/last day.
func AcademicYearFor(now time.Time, startMonth int) (name string, start, end time.Time) {
	if startMonth < 1 || startMonth > 12 {
		startMonth = 9
	}
	first := now.Year()
	if int(now.Month()) < startMonth {
		first--
	}
	start = time.Date(first, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(1, 0, -1)
	return fmt.Sprintf("%d-%d", first, first+1), start, end
}

// demoSubjects is the starter catalogue of the demo school
var demoSubjects = []dto.SubjectRequest{
	{Name: "English Language", Type: models.SubjectCore},
	{Name: "Mathematics", Type: models.SubjectCore},
	{Name: "Integrated Science", Type: models.SubjectCore},
	{Name: "French", Type: models.SubjectElective},
	{Name: "Football", Type: models.SubjectExtracurricular},
}

func createDemoSchool(ctx context.Context, svcs *services.Services, schools services.SchoolStore, now time.Time, lgr zerolog.Logger) error {
	exists, err := schools.CodeExists(ctx, DemoSchoolCode)
	if err != nil {
		return err
	}
	if exists {
		lgr.Debug().Str("code", DemoSchoolCode).Msg("Demo school already exists")
		return nil
	}

	adminPassword, err := strongPassword()
	if err != nil {
		return err
	}
	created, err := svcs.School.Create(ctx, &dto.CreateSchoolRequest{
		Name:                   "Test Academy",
		Code:                   DemoSchoolCode,
		SchoolType:             models.SchoolTypeBasic,
		Ownership:              models.OwnershipPrivate,
		Region:                 "Greater Accra",
		Town:                   "Accra",
		AcademicYearStartMonth: 9,
		TermsPerYear:           3,
		Admin: dto.AccountRequest{
			Username:  "test.admin",
			Password:  adminPassword,
			FirstName: "Test",
			LastName:  "Admin",
		},
	})
	if err != nil {
		return fmt.Errorf("error creating demo school: %w", err)
	}
	school := created.School

	if _, err := svcs.Programme.Create(ctx, school.ID, &dto.ProgrammeRequest{Name: "General Science"}); err != nil &&
		!errors.Is(err, apperrors.ErrProgrammeAlreadyExists) {
		return fmt.Errorf("error creating demo programme: %w", err)
	}

	for _, subject := range demoSubjects {
		if _, err := svcs.Subject.Create(ctx, school.ID, &subject); err != nil &&
			!errors.Is(err, apperrors.ErrSubjectAlreadyExists) {
			return fmt.Errorf("error creating demo subject %s: %w", subject.Name, err)
		}
	}

	class, err := svcs.Class.Create(ctx, school.ID, &dto.ClassRequest{
		Stage:       models.StagePrimary,
		Level:       1,
		Stream:      "A",
		MaxStudents: 40,
	})
	if err != nil {
		return fmt.Errorf("error creating demo class: %w", err)
	}

	name, start, end := AcademicYearFor(now, school.AcademicYearStartMonth)
	year, err := svcs.Academic.CreateYear(ctx, school.ID, &dto.AcademicYearRequest{
		Name:      name,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		IsCurrent: true,
	})
	if err != nil {
		return fmt.Errorf("error creating demo academic year: %w", err)
	}

	lgr.Warn().
		Str("school", school.Code).
		Str("class", class.DisplayName()).
		Str("academicYear", year.Name).
		Str("adminUsername", "test.admin").
		Str("adminPassword", adminPassword).
		Msg("Demo school created")
	return nil
}
