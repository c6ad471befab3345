package model

import "errors"

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrDuplicateISBN    = errors.New("book with this ISBN already exists")
	ErrBookNotAvailable = errors.New("book is not available")
	ErrAuthorNotFound   = errors.New("author not found")
)

// Store constraint names, see internal/infrastructure/database/schema.sql.
const (
	ConstraintISBNUnique = "books_isbn_key"
	ConstraintAuthorFK   = "books_author_id_fkey"

	EntityName = "Book"
)
