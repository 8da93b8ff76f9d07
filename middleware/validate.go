package middleware

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs struct-tag validation and flattens the result into the
// field->message map used by ValidationErrorResponse. Returns nil when valid.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			errors[field] = field + " is required!"
		case "email":
			errors[field] = "Invalid email address!"
		case "min":
			errors[field] = field + " must be at least " + fieldErr.Param() + " characters long!"
		case "max":
			errors[field] = field + " must be at most " + fieldErr.Param() + " characters long!"
		case "gte":
			errors[field] = field + " must be greater than or equal to " + fieldErr.Param() + "!"
		case "oneof":
			errors[field] = field + " must be one of: " + fieldErr.Param() + "!"
		default:
			errors[field] = field + " is invalid!"
		}
	}
	return errors
}
