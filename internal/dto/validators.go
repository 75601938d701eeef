package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/ignatzorin/teambuilder-backend/internal/models"
)

// RegisterValidators добавляет правила sortkey и explevel.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("sortkey", func(fl validator.FieldLevel) bool {
		_, ok := models.ValidSortKeys[fl.Field().String()]
		return ok
	}); err != nil {
		return err
	}
	return v.RegisterValidation("explevel", func(fl validator.FieldLevel) bool {
		_, ok := models.ValidExperienceLevels[fl.Field().String()]
		return ok
	})
}
