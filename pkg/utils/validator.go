package utils

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	apperrors "repair-system/pkg/errors"
)

// CustomValidator adapts go-playground/validator to the echo.Validator
// interface.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "validation failed: "+err.Error(), err, nil)
	}
	return nil
}
