package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/auth"
	"github.com/edutrack/schoolms/internal/pkg/email"
	"github.com/edutrack/schoolms/internal/pkg/helpers"
	"github.com/edutrack/schoolms/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// accountSpec describes a login account opened for a person record
type accountSpec struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	SchoolID  int64
	Flags     models.RoleFlags
}

// openAccount creates an active user with a generated password and returns both
func openAccount(ctx context.Context, users UserStore, acct accountSpec, passwordLength int) (*models.User, string, error) {
	password, err := auth.GeneratePassword(passwordLength)
	if err != nil {
		return nil, "", fmt.Errorf("error generating password: %w", err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	schoolID := acct.SchoolID
	user := &models.User{
		Username:    acct.Username,
		Email:       helpers.NullableString(strings.ToLower(acct.Email)),
		Password:    hash,
		FirstName:   acct.FirstName,
		LastName:    acct.LastName,
		SchoolID:    &schoolID,
		IsSuperuser: acct.Flags.IsSuperuser,
		IsAdmin:     acct.Flags.IsAdmin,
		IsTeacher:   acct.Flags.IsTeacher,
		IsStudent:   acct.Flags.IsStudent,
		IsGuardian:  acct.Flags.IsGuardian,
		IsActive:    true,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, "", err
	}
	return user, password, nil
}

// buildPerson validates the shared personal fields of a request
func buildPerson(req dto.PersonRequest) (models.Person, error) {
	v := &apperrors.ValidationError{}

	first, last := strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)
	if !validation.IsValidName(first) {
		v.Add("firstName", "must be between 2 and 100 characters")
	}
	if !validation.IsValidName(last) {
		v.Add("lastName", "must be between 2 and 100 characters")
	}

	gender, ok := models.ParseGender(req.Gender)
	if !ok {
		v.Add("gender", "must be M or F")
	}

	dob, err := helpers.ParseDate(req.DateOfBirth)
	if err != nil {
		v.Add("dateOfBirth", err.Error())
	} else if dob.After(helpers.Today()) {
		v.Add("dateOfBirth", "cannot be in the future")
	}

	phone := validation.NormalizePhone(req.Phone)
	if phone != "" && !validation.IsValidPhone(phone) {
		v.Add("phone", "must be 10 to 15 digits with an optional leading +")
	}

	card := strings.ToUpper(strings.TrimSpace(req.GhanaCardNumber))
	if card != "" && !validation.IsValidGhanaCard(card) {
		v.Add("ghanaCardNumber", "must look like GHA-123456789-0")
	}

	if err := v.OrNil(); err != nil {
		return models.Person{}, err
	}

	return models.Person{
		FirstName:       first,
		MiddleName:      strings.TrimSpace(req.MiddleName),
		LastName:        last,
		Gender:          gender,
		DateOfBirth:     dob,
		Phone:           phone,
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Address:         strings.TrimSpace(req.Address),
		GhanaCardNumber: helpers.NullableString(card),
	}, nil
}

// personUpdate carries the optional personal fields of an update request
type personUpdate struct {
	FirstName       *string
	MiddleName      *string
	LastName        *string
	Gender          *string
	DateOfBirth     *string
	Phone           *string
	Email           *string
	Address         *string
	GhanaCardNumber *string
}

// applyPersonUpdate merges the set fields into p and validates the result
func applyPersonUpdate(p *models.Person, u personUpdate) error {
	req := dto.PersonRequest{
		FirstName:       p.FirstName,
		MiddleName:      p.MiddleName,
		LastName:        p.LastName,
		Gender:          string(p.Gender),
		DateOfBirth:     helpers.FormatDate(p.DateOfBirth),
		Phone:           p.Phone,
		Email:           p.Email,
		Address:         p.Address,
		GhanaCardNumber: helpers.StringValue(p.GhanaCardNumber),
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&req.FirstName, u.FirstName)
	set(&req.MiddleName, u.MiddleName)
	set(&req.LastName, u.LastName)
	set(&req.Gender, u.Gender)
	set(&req.DateOfBirth, u.DateOfBirth)
	set(&req.Phone, u.Phone)
	set(&req.Email, u.Email)
	set(&req.Address, u.Address)
	set(&req.GhanaCardNumber, u.GhanaCardNumber)

	updated, err := buildPerson(req)
	if err != nil {
		return err
	}
	*p = updated
	return nil
}

// sendCredentials notifies the account owner and, when given, a guardian. Failures
// are logged only: the account already exists when this runs.
func sendCredentials(ctx context.Context, notifier email.Notifier, log zerolog.Logger, schoolName string,
	owner models.Person, creds *dto.CredentialsResponse, guardian *models.Guardian) {
	if notifier == nil || creds == nil {
		return
	}

	msg := email.CredentialsMessage{
		SchoolName: schoolName,
		Username:   creds.Username,
		Password:   creds.Password,
	}
	if owner.Email != "" {
		m := msg
		m.ToEmail = owner.Email
		m.ToName = owner.FullName()
		if err := notifier.SendCredentials(ctx, m); err != nil {
			log.Error().Err(err).Str("username", creds.Username).Msg("Failed to send credentials")
		}
	}
	if guardian != nil && guardian.Email != "" {
		m := msg
		m.ToEmail = guardian.Email
		m.ToName = guardian.DisplayName()
		m.AccountHolder = owner.FullName()
		if err := notifier.SendCredentials(ctx, m); err != nil {
			log.Error().Err(err).Int64("guardianID", guardian.ID).Msg("Failed to send credentials to guardian")
		}
	}
}
