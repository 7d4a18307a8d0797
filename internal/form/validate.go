// Package form holds the explicit input structs behind the create and edit
// pages, how they are read from a submitted form and how they are validated.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

var phonePattern = regexp.MustCompile(`^\+?[0-9]{0,3}[\s.-]?\(?[0-9]{3}\)?[\s.-]?[0-9]{3}[\s.-]?[0-9]{4}$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their form name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	must(v.RegisterValidation("us_state", func(fl validator.FieldLevel) bool {
		_, ok := stateSet[fl.Field().String()]
		return ok
	}))
	must(v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		_, ok := genreSet[fl.Field().String()]
		return ok
	}))
	must(v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// FieldError is one failed constraint on one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the structured result of a failed validation.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// For returns the first message reported for field, or "".
func (e FieldErrors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// check validates v and converts validator failures into FieldErrors.
// Errors collected while parsing come first.
func check(v any, parsed FieldErrors) error {
	out := append(FieldErrors{}, parsed...)

	err := validate.Struct(v)
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			field, _, _ := strings.Cut(fe.Field(), "[")
			if out.For(field) != "" {
				continue
			}
			out = append(out, FieldError{Field: field, Message: message(fe)})
		}
	default:
		return err
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "us_state":
		return "Not a valid choice."
	case "genre":
		return fmt.Sprintf("'%v' is not a valid genre.", fe.Value())
	case "phone":
		return "Invalid phone number."
	case "url":
		return "Invalid URL."
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Choose at least %s.", fe.Param())
	default:
		return fmt.Sprintf("Failed the '%s' rule.", fe.Tag())
	}
}
