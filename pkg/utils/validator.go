package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator - обертка для использования в Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate реализует интерфейс echo.Validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

// RegisterCustomValidations регистрирует кастомные правила валидации.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}
	if err := v.RegisterValidation("duration_format", isDurationValid); err != nil {
		return err
	}
	if err := v.RegisterValidation("maintenance_stage", isMaintenanceStage); err != nil {
		return err
	}
	if err := v.RegisterValidation("maintenance_type", isMaintenanceType); err != nil {
		return err
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(fl.Field().String())
}

func isDurationValid(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^(\d+h)?(\d+m)?$`)
	s := fl.Field().String()
	return re.MatchString(s) && (strings.Contains(s, "h") || strings.Contains(s, "m"))
}

func isMaintenanceStage(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "new", "in_progress", "repaired", "scrap":
		return true
	}
	return false
}

func isMaintenanceType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "corrective", "preventive":
		return true
	}
	return false
}
