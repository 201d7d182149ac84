package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/balance_dashboard/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// isUniqueViolation reports whether err is a Postgres unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// deleteByIDs runs a DELETE ... WHERE <idColumn> = ANY($1) and returns the affected row count.
func (r *BaseRepository) deleteByIDs(ctx context.Context, table, idColumn string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cmdTag, err := r.Pool.Exec(ctx, "DELETE FROM "+table+" WHERE "+idColumn+" = ANY($1);", ids)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete from "+table, err)
	}
	return cmdTag.RowsAffected(), nil
}
