package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories translate.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a unique_violation, optionally
// restricted to one constraint.
func IsUniqueViolation(err error, constraint string) bool {
	return isViolation(err, CodeUniqueViolation, constraint)
}

// IsForeignKeyViolation reports whether err is a foreign_key_violation,
// optionally restricted to one constraint.
func IsForeignKeyViolation(err error, constraint string) bool {
	return isViolation(err, CodeForeignKeyViolation, constraint)
}

func isViolation(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != code {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
