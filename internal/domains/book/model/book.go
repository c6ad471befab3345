package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"catalog-backend/internal/shared"
)

// Book represents the main book entity
type Book struct {
	shared.RecordMeta

	Title    string       `json:"title" db:"title"`
	ISBN     string       `json:"isbn" db:"isbn"`
	Category BookCategory `json:"category" db:"category"`
	Status   BookStatus   `json:"status" db:"status"`

	Price           *decimal.Decimal `json:"price,omitempty" db:"price"`
	PageCount       *int             `json:"page_count,omitempty" db:"page_count"`
	PublicationDate *time.Time       `json:"publication_date,omitempty" db:"publication_date"`

	AuthorID uuid.UUID `json:"author_id" db:"author_id"`
}

// BookWithAuthor is the read projection of a book: the book joined with its
// author's display name.
type BookWithAuthor struct {
	Book
	AuthorName string `json:"author_name" db:"author_name"`
}

// BookFilter narrows a book listing. Zero fields do not filter.
type BookFilter struct {
	Category BookCategory
	Status   BookStatus
	AuthorID uuid.UUID
	Title    string
}
