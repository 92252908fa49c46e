package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatValidationError turns a binding error into the first
// human-readable message, matching the single-message 400 contract.
func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			return getFieldErrorMessage(validationErrors[0])
		}
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"FullName":    "Name",
		"Email":       "Email",
		"Password":    "Password",
		"Role":        "Role",
		"Title":       "Title",
		"Category":    "Category",
		"Rating":      "Rating",
		"Location":    "Location",
		"Description": "Description",
		"Content":     "Comment",
		"Type":        "Type",
		"Status":      "Status",
		"Response":    "Response",
		"EventDate":   "Event date",
		"StartDate":   "Start date",
		"EndDate":     "End date",
		"Image":       "Image",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
