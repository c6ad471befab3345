// Package validation turns the errors produced by request binding (gin +
// go-playground/validator) and by DTO rules (ozzo-validation) into a flat
// field -> message map.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-playground/validator/v10"
)

// BodyField is the key used when the request body as a whole is unusable.
const BodyField = "body"

// Validatable is implemented by every create/update request DTO.
type Validatable interface {
	Validate() error
}

var registerOnce sync.Once

// RegisterJSONTagNames makes gin's validator report fields by their json
// name, so binding errors and ozzo errors use the same keys.
func RegisterJSONTagNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// FieldErrors extracts per-field messages from err. The second return value
// is false when err is not a validation or binding error.
func FieldErrors(err error) (map[string]string, bool) {
	if err == nil {
		return nil, false
	}

	var ozzoErrs ozzo.Errors
	if errors.As(err, &ozzoErrs) {
		fields := make(map[string]string, len(ozzoErrs))
		flatten("", ozzoErrs, fields)
		return fields, true
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = describe(fe)
		}
		return fields, true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = BodyField
		}
		return map[string]string{field: fmt.Sprintf("must be a %s", typeErr.Type)}, true
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return map[string]string{BodyField: "malformed JSON"}, true
	}

	return nil, false
}

func flatten(prefix string, errs ozzo.Errors, out map[string]string) {
	for field, fieldErr := range errs {
		key := field
		if prefix != "" {
			key = prefix + "." + field
		}
		var nested ozzo.Errors
		if errors.As(fieldErr, &nested) {
			flatten(key, nested, out)
			continue
		}
		out[key] = fieldErr.Error()
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "cannot be blank"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "len":
		return fmt.Sprintf("must have length %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
