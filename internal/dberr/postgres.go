package dberr

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes that carry meaning for the students table.
const (
	pgInvalidTextRepresentation = "22P02"
	pgNotNullViolation          = "23502"
	pgCheckViolation            = "23514"
)

// FromPostgres converts a pgx / database/sql error into a tagged *Error.
//
// Mapping:
//   - pgx.ErrNoRows, sql.ErrNoRows -> NotFound
//   - 22P02 invalid_text_representation (bad uuid) -> MalformedID
//   - 23502 not_null_violation, 23514 check_violation -> Validation
//   - anything else -> Store
func FromPostgres(op string, err error) error {
	if err == nil {
		return nil
	}

	var dbErr *Error
	if errors.As(err, &dbErr) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return NewNotFound(op)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInvalidTextRepresentation:
			return New(MalformedID, op, err)
		case pgNotNullViolation:
			return &Error{Kind: Validation, Op: op, Fields: columnFields(pgErr.ColumnName), Err: err}
		case pgCheckViolation:
			return &Error{Kind: Validation, Op: op, Fields: checkFields(pgErr.ConstraintName), Err: err}
		}
	}

	return New(Store, op, err)
}

func columnFields(column string) []string {
	if column == "" {
		return nil
	}
	return []string{strings.ToLower(column)}
}

// checkFields extracts the column from "<table>_<column>_check" constraint names.
func checkFields(constraint string) []string {
	name := strings.TrimSuffix(constraint, "_check")
	if name == constraint {
		return nil
	}

	parts := strings.Split(name, "_")
	if len(parts) < 2 {
		return nil
	}

	return []string{parts[len(parts)-1]}
}
