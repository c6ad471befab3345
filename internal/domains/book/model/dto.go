package model

import (
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"catalog-backend/internal/shared"
	"catalog-backend/internal/shared/utils"
)

const MaxTitleLength = 255

// Price bounds of the NUMERIC(10,2) column.
const (
	PriceScale = 2
	MaxPrice   = 100000000
)

var isbnPattern = regexp.MustCompile(`^\d{13}$`)

// BookRequest - POST /books, PUT /books/:id
// Status is ignored on create. On update it is applied only when present.
type BookRequest struct {
	Title           string           `json:"title" binding:"required"`
	ISBN            string           `json:"isbn" binding:"required"`
	Category        BookCategory     `json:"category" binding:"required"`
	Status          *BookStatus      `json:"status,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	PageCount       *int             `json:"page_count,omitempty"`
	PublicationDate *string          `json:"publication_date,omitempty"`
	AuthorID        string           `json:"author_id" binding:"required"`
}

func (r BookRequest) Validate() error {
	r.Normalize()
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, MaxTitleLength).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&r.ISBN,
			validation.Required.Error("ISBN is required"),
			validation.Match(isbnPattern).Error("ISBN must be exactly 13 digits"),
		),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.In(toAny(Categories())...).Error("category must be one of FICTION, NON_FICTION, SCIENCE, TECHNOLOGY, HISTORY, BIOGRAPHY"),
		),
		validation.Field(&r.Status,
			validation.In(toAny(Statuses())...).Error("status must be one of AVAILABLE, BORROWED, RESERVED, UNAVAILABLE"),
		),
		validation.Field(&r.Price,
			validation.By(validPrice),
		),
		validation.Field(&r.PageCount,
			validation.Min(0).Error("page count must be non-negative"),
		),
		validation.Field(&r.PublicationDate,
			validation.Date(shared.DateLayout).Error("publication date must be a date in YYYY-MM-DD format"),
		),
		validation.Field(&r.AuthorID,
			validation.Required.Error("author id is required"),
			is.UUID.Error("author id must be a valid UUID"),
		),
	)
}

// Normalize trims free text and canonicalizes enum tags.
func (r *BookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.ISBN = strings.TrimSpace(r.ISBN)
	r.AuthorID = strings.TrimSpace(r.AuthorID)
	r.Category = BookCategory(utils.NormalizeTag(string(r.Category)))
	if r.Status != nil {
		status := BookStatus(utils.NormalizeTag(string(*r.Status)))
		r.Status = &status
	}
	if r.PublicationDate != nil && strings.TrimSpace(*r.PublicationDate) == "" {
		r.PublicationDate = nil
	}
}

// AuthorUUID returns the parsed author id. Only valid after Validate.
func (r *BookRequest) AuthorUUID() uuid.UUID {
	id, _ := uuid.Parse(r.AuthorID)
	return id
}

// ToEntity builds a new, unsaved book. New books are always AVAILABLE.
func (r *BookRequest) ToEntity() *Book {
	b := &Book{}
	r.Apply(b)
	b.Status = StatusAvailable
	return b
}

// Apply overwrites the editable fields of b. Status is kept unless supplied.
func (r *BookRequest) Apply(b *Book) {
	b.Title = r.Title
	b.ISBN = r.ISBN
	b.Category = r.Category
	b.Price = r.Price
	b.PageCount = r.PageCount
	b.PublicationDate = parseDate(r.PublicationDate)
	b.AuthorID = r.AuthorUUID()
	if r.Status != nil {
		b.Status = *r.Status
	}
}

func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(shared.DateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil
	}
	return &t
}

func validPrice(value interface{}) error {
	price, _ := value.(*decimal.Decimal)
	if price == nil {
		return nil
	}
	switch {
	case price.IsNegative():
		return errors.New("price must be non-negative")
	case !price.Equal(price.Truncate(PriceScale)):
		return errors.New("price must have at most 2 decimal places")
	case price.GreaterThanOrEqual(decimal.NewFromInt(MaxPrice)):
		return errors.New("price must be less than 100000000")
	}
	return nil
}

func toAny[T any](values []T) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// BookResponse is the book projection returned by every book endpoint.
type BookResponse struct {
	ID                  uuid.UUID        `json:"id"`
	Title               string           `json:"title"`
	ISBN                string           `json:"isbn"`
	Category            BookCategory     `json:"category"`
	CategoryDescription string           `json:"category_description"`
	Status              BookStatus       `json:"status"`
	StatusDescription   string           `json:"status_description"`
	Price               *decimal.Decimal `json:"price,omitempty"`
	PageCount           *int             `json:"page_count,omitempty"`
	PublicationDate     *string          `json:"publication_date,omitempty"`
	AuthorID            uuid.UUID        `json:"author_id"`
	AuthorName          string           `json:"author_name"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// ToResponse converts BookWithAuthor to BookResponse
func (b *BookWithAuthor) ToResponse() *BookResponse {
	resp := &BookResponse{
		ID:                  b.ID,
		Title:               b.Title,
		ISBN:                b.ISBN,
		Category:            b.Category,
		CategoryDescription: CategoryDescription(b.Category),
		Status:              b.Status,
		StatusDescription:   StatusDescription(b.Status),
		Price:               b.Price,
		PageCount:           b.PageCount,
		AuthorID:            b.AuthorID,
		AuthorName:          b.AuthorName,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
	if b.PublicationDate != nil {
		date := b.PublicationDate.Format(shared.DateLayout)
		resp.PublicationDate = &date
	}
	return resp
}

func ToResponses(books []BookWithAuthor) []*BookResponse {
	out := make([]*BookResponse, 0, len(books))
	for i := range books {
		out = append(out, books[i].ToResponse())
	}
	return out
}
