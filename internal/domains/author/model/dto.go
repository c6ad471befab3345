package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const (
	MinNameLength = 2
	MaxNameLength = 100
	MaxAge        = 120
	MaxEmailLen   = 255
)

// AuthorRequest - POST /authors, PUT /authors/:id
// Update is a full overwrite: a missing email or age clears it.
type AuthorRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Email     *string `json:"email,omitempty"`
	Age       *int    `json:"age,omitempty"`
}

func (r AuthorRequest) Validate() error {
	r.Normalize()
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			validation.Length(MinNameLength, MaxNameLength).Error("first name must be between 2 and 100 characters"),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			validation.Length(MinNameLength, MaxNameLength).Error("last name must be between 2 and 100 characters"),
		),
		validation.Field(&r.Email,
			validation.Length(0, MaxEmailLen).Error("email must be at most 255 characters"),
			is.EmailFormat.Error("email must be a valid email address"),
		),
		validation.Field(&r.Age,
			validation.Min(0).Error("age must be non-negative"),
			validation.Max(MaxAge).Error("age must be at most 120"),
		),
	)
}

// Normalize trims names and turns a blank email into no email.
func (r *AuthorRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if r.Email != nil {
		email := strings.TrimSpace(*r.Email)
		if email == "" {
			r.Email = nil
		} else {
			r.Email = &email
		}
	}
}

// ToEntity builds a new, unsaved author from the request.
func (r *AuthorRequest) ToEntity() *Author {
	a := &Author{}
	r.Apply(a)
	return a
}

// Apply overwrites every user-editable field of a.
func (r *AuthorRequest) Apply(a *Author) {
	a.FirstName = r.FirstName
	a.LastName = r.LastName
	a.Email = r.Email
	a.Age = r.Age
}

// AuthorResponse is the author projection returned by every author endpoint.
type AuthorResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Email     *string   `json:"email,omitempty"`
	Age       *int      `json:"age,omitempty"`
	BookCount int       `json:"book_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts AuthorWithCount to AuthorResponse
func (a *AuthorWithCount) ToResponse() *AuthorResponse {
	return &AuthorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		FullName:  a.FullName(),
		Email:     a.Email,
		Age:       a.Age,
		BookCount: a.BookCount,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func ToResponses(authors []AuthorWithCount) []*AuthorResponse {
	out := make([]*AuthorResponse, 0, len(authors))
	for i := range authors {
		out = append(out, authors[i].ToResponse())
	}
	return out
}
