package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts go-playground/validator to echo.Validator, so
// handlers can rely on the `validate` tags declared on the request DTOs.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates the validator wired into the Echo instance at startup
func New() *CustomValidator {
	return &CustomValidator{validate: validator.New()}
}

// Validate performs struct validation against the DTO's tags
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}
