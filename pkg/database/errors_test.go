package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestViolationHelpers(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "books_isbn_key"})
	fk := &pgconn.PgError{Code: CodeForeignKeyViolation, ConstraintName: "books_author_id_fkey"}

	assert.True(t, IsUniqueViolation(unique, ""))
	assert.True(t, IsUniqueViolation(unique, "books_isbn_key"))
	assert.False(t, IsUniqueViolation(unique, "authors_email_key"))
	assert.False(t, IsUniqueViolation(fk, ""))

	assert.True(t, IsForeignKeyViolation(fk, "books_author_id_fkey"))
	assert.False(t, IsForeignKeyViolation(errors.New("plain"), ""))
	assert.False(t, IsForeignKeyViolation(nil, ""))
}
