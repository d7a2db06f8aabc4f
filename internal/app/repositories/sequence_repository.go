package repositories

import (
	"context"
	"fmt"

	"github.com/edutrack/schoolms/internal/db"
	"github.com/edutrack/schoolms/internal/pkg/logger"
)

// SequenceRepository hands out per-school, per-year counters for generated IDs
type SequenceRepository struct {
	baseRepository
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(pool db.Querier) *SequenceRepository {
	return &SequenceRepository{baseRepository: newBaseRepository(pool)}
}

// Next increments and returns the counter for (school, entity, year). The row
// stays locked until the surrounding transaction ends, so concurrent callers
// never see the same value.
func (r *SequenceRepository) Next(ctx context.Context, schoolID int64, entityType string, year int) (int, error) {
	row, err := r.queryRow(ctx, r.sb.Insert("id_sequences").
		Columns("school_id", "entity_type", "year", "last_value").
		Values(schoolID, entityType, year, 1).
		Suffix(`ON CONFLICT (school_id, entity_type, year)
			DO UPDATE SET last_value = id_sequences.last_value + 1, updated_at = CURRENT_TIMESTAMP
			RETURNING last_value`), "next sequence")
	if err != nil {
		return 0, err
	}
	var next int
	if err := row.Scan(&next); err != nil {
		logger.Error().Err(err).Int64("schoolID", schoolID).Str("entity", entityType).Msg("Error advancing ID sequence")
		return 0, fmt.Errorf("error advancing %s sequence: %w", entityType, err)
	}
	return next, nil
}
