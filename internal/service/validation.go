package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/jurnal-kelas-api/internal/models"
)

// NewValidator returns a validator with the domain specific tags registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("month_key", func(fl validator.FieldLevel) bool {
		_, _, err := models.MonthRange(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(fl.Field().String()).Valid()
	})
	return v
}
