package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the application reacts to.
const (
	CodeUniqueViolation   = "23505"
	CodeNotNullViolation  = "23502"
	CodeCheckViolation    = "23514"
	CodeStringTooLong     = "22001"
	CodeNumericOutOfRange = "22003"
	CodeInvalidTextRepr   = "22P02"
	CodeUndefinedTable    = "42P01"
)

func pgCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}

// IsUndefinedTable reports whether the statement referenced a table that does not exist.
func IsUndefinedTable(err error) bool {
	code, ok := pgCode(err)
	return ok && code == CodeUndefinedTable
}

// IsDataError reports whether a row was rejected because of its values
// (constraint, length or range violations) rather than a connection problem.
func IsDataError(err error) bool {
	code, ok := pgCode(err)
	if !ok {
		return false
	}
	switch code {
	case CodeUniqueViolation, CodeNotNullViolation, CodeCheckViolation,
		CodeStringTooLong, CodeNumericOutOfRange, CodeInvalidTextRepr:
		return true
	}
	return false
}

// Describe returns a short reason for logs: the constraint or column involved when known.
func Describe(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err.Error()
	}
	switch {
	case pgErr.ConstraintName != "":
		return pgErr.Code + " " + pgErr.ConstraintName
	case pgErr.ColumnName != "":
		return pgErr.Code + " " + pgErr.ColumnName
	default:
		return pgErr.Code + " " + pgErr.Message
	}
}
