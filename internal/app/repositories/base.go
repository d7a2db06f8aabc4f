package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/edutrack/schoolms/internal/db"
	"github.com/edutrack/schoolms/internal/pkg/helpers"
	"github.com/edutrack/schoolms/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// baseRepository carries the pool and the statement builder every repository uses.
// Statements run on the transaction carried by ctx when there is one.
type baseRepository struct {
	pool db.Querier
	sb   squirrel.StatementBuilderType
}

func newBaseRepository(pool db.Querier) baseRepository {
	return baseRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *baseRepository) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

// exec runs stmt and returns the number of affected rows
func (r *baseRepository) exec(ctx context.Context, stmt squirrel.Sqlizer, op string) (int64, error) {
	sql, args, err := stmt.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building SQL")
		return 0, fmt.Errorf("failed to build %s query: %w", op, err)
	}
	tag, err := r.conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// queryRow runs stmt and returns its single row
func (r *baseRepository) queryRow(ctx context.Context, stmt squirrel.Sqlizer, op string) (pgx.Row, error) {
	sql, args, err := stmt.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}
	return r.conn(ctx).QueryRow(ctx, sql, args...), nil
}

// query runs stmt and returns its rows; the caller closes them
func (r *baseRepository) query(ctx context.Context, stmt squirrel.Sqlizer, op string) (pgx.Rows, error) {
	sql, args, err := stmt.ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error executing query")
		return nil, fmt.Errorf("error executing %s query: %w", op, err)
	}
	return rows, nil
}

// count runs a SELECT COUNT(*) over the given base query
func (r *baseRepository) count(ctx context.Context, base squirrel.SelectBuilder, op string) (int64, error) {
	row, err := r.queryRow(ctx, base.RemoveColumns().Columns("COUNT(*)").RemoveLimit().RemoveOffset(), op)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := row.Scan(&total); err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error counting rows")
		return 0, fmt.Errorf("error counting %s: %w", op, err)
	}
	return total, nil
}

// exists reports whether the query returns at least one row
func (r *baseRepository) exists(ctx context.Context, q squirrel.SelectBuilder, op string) (bool, error) {
	sql, args, err := q.Columns("1").Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error building SQL")
		return false, fmt.Errorf("failed to build %s query: %w", op, err)
	}
	var found bool
	if err := r.conn(ctx).QueryRow(ctx, "SELECT EXISTS("+sql+")", args...).Scan(&found); err != nil {
		logger.Error().Err(err).Str("op", op).Msg("Error checking existence")
		return false, fmt.Errorf("error checking %s: %w", op, err)
	}
	return found, nil
}

// notFound maps pgx.ErrNoRows onto the given sentinel and wraps anything else
func notFound(err error, sentinel error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	logger.Error().Err(err).Str("op", op).Msg("Error scanning row")
	return fmt.Errorf("error retrieving %s: %w", op, err)
}

// paginate applies ORDER BY, LIMIT and OFFSET from list params. orderBy is
// resolved through allowed so callers never interpolate user input.
func paginate(q squirrel.SelectBuilder, page, size int, orderBy string, desc bool, allowed map[string]string, fallback string) squirrel.SelectBuilder {
	column, ok := allowed[orderBy]
	if !ok {
		column = fallback
	}
	if desc {
		column += " DESC"
	}
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	return q.OrderBy(column).Limit(uint64(limit)).Offset(offset)
}

// searchAny builds "col1 ILIKE $x OR col2 ILIKE $x ..." for a search term
func searchAny(term string, columns ...string) squirrel.Or {
	pattern := helpers.LikePattern(term)
	or := squirrel.Or{}
	for _, c := range columns {
		or = append(or, squirrel.ILike{c: pattern})
	}
	return or
}
