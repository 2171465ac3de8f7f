package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ncnews/news-service/internal/domain"
)

// PostgreSQL error codes this service translates into domain errors.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgErrNotNullViolation    = "23502"
	pgErrForeignKeyViolation = "23503"
	pgErrUniqueViolation     = "23505"
	pgErrInvalidTextRep      = "22P02"
	pgErrUndefinedColumn     = "42703"
)

// translatePgError maps a PostgreSQL constraint or input error to the
// corresponding domain error. It returns nil when err is not a recognized
// pg error, in which case the caller should wrap err itself.
func translatePgError(entity string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case pgErrUniqueViolation:
		return domain.NewAlreadyExistsError(entity, pgErr.Detail)
	case pgErrForeignKeyViolation:
		return domain.NewForeignKeyError(entity, pgErr.Detail)
	case pgErrNotNullViolation:
		return domain.NewValidationError(pgErr.ColumnName, "value must not be null")
	case pgErrInvalidTextRep:
		return domain.NewValidationError(entity, "invalid value representation")
	case pgErrUndefinedColumn:
		return domain.NewValidationError(entity, "undefined column")
	}
	return nil
}
