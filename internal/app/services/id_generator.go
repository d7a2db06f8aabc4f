package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edutrack/schoolms/internal/pkg/apperrors"
	"github.com/edutrack/schoolms/internal/pkg/idgen"
	"github.com/edutrack/schoolms/internal/pkg/logger"
)

// IDGenerator issues the human-readable student and teacher identifiers
type IDGenerator struct {
	schools   SchoolStore
	sequences SequenceStore
}

// NewIDGenerator creates a new IDGenerator
func NewIDGenerator(schools SchoolStore, sequences SequenceStore) *IDGenerator {
	return &IDGenerator{schools: schools, sequences: sequences}
}

// Next returns the next identifier for entity in the school and year. It must run
// inside the transaction that inserts the entity: the sequence row stays locked
// until that transaction ends, and a rollback gives the number back.
func (g *IDGenerator) Next(ctx context.Context, schoolID int64, entity idgen.EntityType, year int) (string, error) {
	if !idgen.YearInRange(year) {
		return "", apperrors.NewValidationError("year",
			fmt.Sprintf("identifiers can only be issued for %d to %d", idgen.MinYear, idgen.MaxYear))
	}

	school, err := g.schools.GetByID(ctx, schoolID)
	if err != nil {
		return "", err
	}

	code := strings.TrimSpace(school.Code)
	if code == "" {
		logger.Error().Int64("schoolID", schoolID).Msg("School has no code, cannot generate identifiers")
		return "", apperrors.ErrSchoolCodeMissing
	}

	seq, err := g.sequences.Next(ctx, schoolID, string(entity), year)
	if err != nil {
		return "", fmt.Errorf("error generating %s ID: %w", entity, err)
	}
	return idgen.Format(entity.Prefix(), code, int64(seq), year), nil
}
