package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindErrorMessage turns a binding error into a client-facing message. Field
// validation failures get a per-field explanation; anything else (malformed
// JSON, wrong types) falls back to the raw error.
func bindErrorMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "Invalid request format: " + err.Error()
	}

	msgs := make([]string, len(validationErrors))
	for i, fe := range validationErrors {
		msgs[i] = formatFieldError(fe)
	}
	return strings.Join(msgs, "; ")
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", field)
	case "min":
		return fmt.Sprintf("field '%s' must have at least %s items or characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("field '%s' must have at most %s items or characters", field, fe.Param())
	case "len":
		return fmt.Sprintf("field '%s' must be exactly %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("field '%s' failed '%s' validation", field, fe.Tag())
	}
}
