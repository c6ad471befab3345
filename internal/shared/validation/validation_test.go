package validation

import (
	"encoding/json"
	"errors"
	"testing"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"item_count" validate:"min=1"`
}

func TestFieldErrors_Ozzo(t *testing.T) {
	err := ozzo.Errors{
		"title": errors.New("title is required"),
		"meta":  ozzo.Errors{"isbn": errors.New("bad isbn")},
	}

	fields, ok := FieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "title is required", fields["title"])
	assert.Equal(t, "bad isbn", fields["meta.isbn"])
}

func TestFieldErrors_Validator(t *testing.T) {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	fields, ok := FieldErrors(v.Struct(payload{}))
	require.True(t, ok)
	assert.Equal(t, "cannot be blank", fields["name"])
	assert.Equal(t, "must be at least 1", fields["item_count"])
}

func TestFieldErrors_JSON(t *testing.T) {
	var p payload

	err := json.Unmarshal([]byte(`{"item_count":"three"}`), &p)
	fields, ok := FieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "item_count")

	err = json.Unmarshal([]byte(`{name}`), &p)
	fields, ok = FieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, "malformed JSON", fields[BodyField])
}

func TestFieldErrors_Unrelated(t *testing.T) {
	_, ok := FieldErrors(errors.New("boom"))
	assert.False(t, ok)

	_, ok = FieldErrors(nil)
	assert.False(t, ok)
}
