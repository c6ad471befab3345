package model

import "errors"

var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrDuplicateEmail = errors.New("author with this email already exists")
	ErrAuthorHasBooks = errors.New("cannot delete author with linked books")
)

// Store constraint names, see internal/infrastructure/database/schema.sql.
const (
	ConstraintEmailUnique = "authors_email_key"
	ConstraintBooksAuthor = "books_author_id_fkey"

	EntityName = "Author"
)
