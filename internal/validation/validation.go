// Package validation applies declarative field rules to request bodies
// and reports every violation, not just the first.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single rule violation on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// futuredate: an RFC3339 timestamp strictly after the current time.
	// Format errors are left to the datetime rule so each violation keeps
	// its own message.
	_ = v.RegisterValidation("futuredate", func(fl validator.FieldLevel) bool {
		t, err := time.Parse(time.RFC3339, fl.Field().String())
		if err != nil {
			return true
		}
		return t.After(time.Now())
	})

	return v
}

// Check validates a request struct and returns all violations as
// (field, message) pairs, or nil when the value is valid. It never
// panics past this boundary.
func Check(s interface{}) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: "Invalid request body"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label(fe.Field()))
	case "email":
		return "Please enter a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label(fe.Field()), fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label(fe.Field()), fe.Param())
	case "oneof":
		return fmt.Sprintf("Invalid %s value", fe.Field())
	case "datetime":
		return "Invalid date format"
	case "futuredate":
		return "Due date must be in the future"
	default:
		return fmt.Sprintf("Invalid %s value", fe.Field())
	}
}

func label(field string) string {
	if field == "" {
		return field
	}
	r := []rune(field)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
