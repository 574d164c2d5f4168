// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"spendwise/internal/budget"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("money", validateMoney)
		_ = v.RegisterValidation("calendar_date", validateCalendarDate)
		_ = v.RegisterValidation("alert_mode", validateAlertMode)
	}
}

// validateMoney accepts strictly positive decimal amounts like "12.34".
func validateMoney(fl validator.FieldLevel) bool {
	_, err := budget.ParseAmount(fl.Field().String())
	return err == nil
}

// validateCalendarDate accepts bare dates in YYYY-MM-DD form.
func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func validateAlertMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "first", "severe":
		return true
	}
	return false
}
