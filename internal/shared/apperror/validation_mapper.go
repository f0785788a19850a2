package apperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError converts a gin binding error into a field-keyed
// AppError. All failing fields are collected, not just the first one.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return New(CodeInvalidInput, "Invalid input", 400)
	}

	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		name := e.Field()
		human := formatFieldName(name)
		switch e.Tag() {
		case "required":
			fields[name] = fmt.Sprintf("%s is required", human)
		case "email":
			fields[name] = fmt.Sprintf("%s must be a valid email address", human)
		case "mobile":
			fields[name] = fmt.Sprintf("%s must be a valid phone number", human)
		default:
			fields[name] = fmt.Sprintf("%s is invalid", human)
		}
	}

	return NewValidation(fields)
}
