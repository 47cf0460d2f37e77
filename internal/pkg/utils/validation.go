package utils

import (
	"learnhub-service/internal/pkg/exceptions"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the shared validator instance and wraps the first
// failure into a client-facing CustomError.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}
