// Package validate turns raw request payloads into checked inputs.  Every
// failure is reported as an *Error carrying the message of the first
// failing field, which handlers return verbatim with HTTP 400.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// Error is a client-facing validation failure.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// IsValidation reports whether err is (or wraps) a validation *Error.
func IsValidation(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Field names in messages come from the `label` tag, falling back to
	// the json name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if l := f.Tag.Get("label"); l != "" {
			return l
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates s and converts the first failure into an *Error.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		return &Error{Field: fe.StructField(), Message: message(fe)}
	}
	return err
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Please enter a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "len", "number":
		return fmt.Sprintf("Please enter a valid %s", fe.Field())
	case "url", "http_url":
		return fe.Field() + " must be a valid URL"
	case "datetime":
		return fe.Field() + " must be a valid date (YYYY-MM-DD)"
	default:
		return fe.Field() + " is invalid"
	}
}
