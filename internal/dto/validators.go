package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/boleta-api/internal/models"
)

// RegisterValidators installs the boleta-specific field validators.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("academic_level", validAcademicLevel); err != nil {
		return err
	}
	return v.RegisterValidation("grading_option", validGradingOption)
}

func validAcademicLevel(fl validator.FieldLevel) bool {
	return models.AcademicLevel(fl.Field().String()).Valid()
}

// validGradingOption accepts membership in either family; the level-aware
// check happens after the level itself is known.
func validGradingOption(fl validator.FieldLevel) bool {
	switch models.GradingOption(fl.Field().String()) {
	case models.OptionConsolidado, models.OptionEnProceso, models.OptionIniciado,
		models.OptionConAyuda, models.OptionSinEvidencias:
		return true
	default:
		return false
	}
}
