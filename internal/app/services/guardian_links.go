package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/validation"
)

// checkGuardianInputs rejects submissions that mark more than one guardian as primary
func checkGuardianInputs(inputs []dto.GuardianInput) error {
	primaries := 0
	for _, in := range inputs {
		if in.IsPrimary {
			primaries++
		}
	}
	if primaries > 1 {
		return apperrors.ErrMultiplePrimaryGuardians
	}
	return nil
}

// findOrCreateGuardian reuses a guardian of the school with the same email, then
// the same phone, and creates one otherwise.
func findOrCreateGuardian(ctx context.Context, store GuardianStore, schoolID int64, in dto.GuardianInput) (*models.Guardian, error) {
	mail := strings.ToLower(strings.TrimSpace(in.Email))
	phone := validation.NormalizePhone(in.Phone)

	if mail != "" {
		g, err := store.FindByEmail(ctx, schoolID, mail)
		if err == nil {
			return g, nil
		}
		if !errors.Is(err, apperrors.ErrGuardianNotFound) {
			return nil, err
		}
	}
	if phone != "" {
		g, err := store.FindByPhone(ctx, schoolID, phone)
		if err == nil {
			return g, nil
		}
		if !errors.Is(err, apperrors.ErrGuardianNotFound) {
			return nil, err
		}
	}

	title := in.Title
	if title == "" {
		title = models.TitleMr
	}
	g := &models.Guardian{
		SchoolID: schoolID,
		Title:    title,
		Name:     strings.TrimSpace(in.Name),
		Phone:    phone,
		Email:    mail,
		Address:  strings.TrimSpace(in.Address),
	}
	if err := store.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// linkGuardian inserts a link, first dropping the primary flag from the
// student's other links when the new one is primary.
func linkGuardian(ctx context.Context, store GuardianStore, link *models.StudentGuardian) error {
	if link.Relationship == "" {
		link.Relationship = models.RelationshipGuardian
	}
	if !link.Relationship.Valid() {
		return apperrors.NewValidationError("relationship", "unknown relationship")
	}
	if link.IsPrimary {
		if err := store.ClearPrimary(ctx, link.StudentID, link.GuardianID); err != nil {
			return err
		}
	}
	return store.Link(ctx, link)
}

// attachGuardians finds or creates each guardian and links it to the student.
// Callers run it inside the transaction that created the student.
func attachGuardians(ctx context.Context, store GuardianStore, schoolID, studentID int64, inputs []dto.GuardianInput) ([]models.StudentGuardian, error) {
	if err := checkGuardianInputs(inputs); err != nil {
		return nil, err
	}

	links := make([]models.StudentGuardian, 0, len(inputs))
	for i, in := range inputs {
		g, err := findOrCreateGuardian(ctx, store, schoolID, in)
		if err != nil {
			return nil, fmt.Errorf("guardian %d: %w", i+1, err)
		}

		canPickup := true
		if in.CanPickup != nil {
			canPickup = *in.CanPickup
		}
		link := &models.StudentGuardian{
			StudentID:        studentID,
			GuardianID:       g.ID,
			Relationship:     in.Relationship,
			IsPrimary:        in.IsPrimary,
			CanPickup:        canPickup,
			EmergencyContact: in.EmergencyContact,
			Guardian:         g,
		}
		if err := linkGuardian(ctx, store, link); err != nil {
			return nil, fmt.Errorf("guardian %d: %w", i+1, err)
		}
		links = append(links, *link)
	}
	return links, nil
}

// primaryGuardian returns the primary guardian among links, if any
func primaryGuardian(links []models.StudentGuardian) *models.Guardian {
	for _, l := range links {
		if l.IsPrimary {
			return l.Guardian
		}
	}
	return nil
}
