package dto

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/owenj053/netone-backend/pkg/util"
)

var validate = validator.New()

// Validate runs struct validation and converts failures into the shared
// validation error shape so handlers can return them directly.
func Validate(payload any) error {
	if err := validate.Struct(payload); err != nil {
		details := map[string]any{}
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range errs {
				details[fieldErr.Field()] = fieldErr.Tag()
			}
		}
		return apperrors.NewValidationError("request validation failed", details)
	}
	return nil
}
