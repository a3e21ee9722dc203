package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/scribeapp/scribe/internal/domain"
)

const uniqueViolation = "23505"

// mapConflict converts a postgres unique-violation into
// domain.ErrConflict so services can treat racing inserts as a
// recoverable outcome. Other errors pass through untouched.
func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrConflict
	}
	return err
}
