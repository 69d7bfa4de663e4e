package customvalidator

import (
	"github.com/go-playground/validator/v10"

	"repair-system/internal/entities"
)

// RegisterCustomValidations wires the domain rules into the shared
// validator instance.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("purpose", isKnownPurpose); err != nil {
		return err
	}
	if err := v.RegisterValidation("user_role", isKnownRole); err != nil {
		return err
	}
	return nil
}

func isKnownPurpose(fl validator.FieldLevel) bool {
	return entities.Purpose(fl.Field().String()).IsValid()
}

func isKnownRole(fl validator.FieldLevel) bool {
	return entities.Role(fl.Field().String()).IsValid()
}
