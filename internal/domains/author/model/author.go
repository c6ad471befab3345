package model

import (
	"strings"

	"catalog-backend/internal/shared"
)

type Author struct {
	shared.RecordMeta
	FirstName string  `json:"first_name" db:"first_name"`
	LastName  string  `json:"last_name" db:"last_name"`
	Email     *string `json:"email,omitempty" db:"email"`
	Age       *int    `json:"age,omitempty" db:"age"`
}

// FullName is the display name used wherever a book shows its author.
func (a *Author) FullName() string {
	return FullName(a.FirstName, a.LastName)
}

// HasEmail checks if the author has an email on record
func (a *Author) HasEmail() bool {
	return a.Email != nil && *a.Email != ""
}

// AuthorWithCount is an author together with the number of books it owns.
type AuthorWithCount struct {
	Author
	BookCount int `json:"book_count" db:"book_count"`
}

// CanDelete reports whether the author owns no books.
func (a *AuthorWithCount) CanDelete() bool {
	return a.BookCount == 0
}

func FullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
