package model

import (
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorRequest_Validate(t *testing.T) {
	email := "ada@example.com"
	age := 36
	valid := AuthorRequest{FirstName: "Ada", LastName: "Lovelace", Email: &email, Age: &age}
	require.NoError(t, valid.Validate())

	badEmail := "not-an-email"
	longEmail := strings.Repeat("a", 244) + "@example.com"
	tooOld := 121
	negative := -1

	tests := []struct {
		name  string
		req   AuthorRequest
		field string
	}{
		{"blank first name", AuthorRequest{FirstName: "  ", LastName: "Lovelace"}, "first_name"},
		{"short last name", AuthorRequest{FirstName: "Ada", LastName: "L"}, "last_name"},
		{"long first name", AuthorRequest{FirstName: strings.Repeat("a", 101), LastName: "Lovelace"}, "first_name"},
		{"bad email", AuthorRequest{FirstName: "Ada", LastName: "Lovelace", Email: &badEmail}, "email"},
		{"email longer than column", AuthorRequest{FirstName: "Ada", LastName: "Lovelace", Email: &longEmail}, "email"},
		{"age above max", AuthorRequest{FirstName: "Ada", LastName: "Lovelace", Age: &tooOld}, "age"},
		{"negative age", AuthorRequest{FirstName: "Ada", LastName: "Lovelace", Age: &negative}, "age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			require.Error(t, err)

			errs, ok := err.(validation.Errors)
			require.True(t, ok)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestAuthorRequest_Normalize(t *testing.T) {
	blank := "   "
	req := AuthorRequest{FirstName: " Ada ", LastName: " Lovelace", Email: &blank}
	req.Normalize()

	assert.Equal(t, "Ada", req.FirstName)
	assert.Equal(t, "Lovelace", req.LastName)
	assert.Nil(t, req.Email)
}

func TestAuthorRequest_ApplyClearsOptionalFields(t *testing.T) {
	email := "ada@example.com"
	age := 36
	a := &Author{FirstName: "Ada", LastName: "Lovelace", Email: &email, Age: &age}

	req := AuthorRequest{FirstName: "Augusta", LastName: "King"}
	req.Apply(a)

	assert.Equal(t, "Augusta King", a.FullName())
	assert.Nil(t, a.Email)
	assert.Nil(t, a.Age)
	assert.False(t, a.HasEmail())
}

func TestAuthorWithCount(t *testing.T) {
	a := AuthorWithCount{Author: Author{FirstName: "Alan", LastName: "Turing"}, BookCount: 2}

	assert.False(t, a.CanDelete())
	resp := a.ToResponse()
	assert.Equal(t, "Alan Turing", resp.FullName)
	assert.Equal(t, 2, resp.BookCount)

	a.BookCount = 0
	assert.True(t, a.CanDelete())
}

func TestAuthorRequest_EmailAtColumnLimit(t *testing.T) {
	email := strings.Repeat("a", 200) + "@example.com"
	require.LessOrEqual(t, len(email), MaxEmailLen)

	req := AuthorRequest{FirstName: "Ada", LastName: "Lovelace", Email: &email}
	assert.NoError(t, req.Validate())
}
