package dto

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidations installs custom binding validators on gin's validator
// engine. Called once at startup before routes are registered.
//
// money2: a non-negative decimal amount with at most two fractional digits.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator engine is not *validator.Validate")
	}
	return v.RegisterValidation("money2", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		if d.IsNegative() {
			return false
		}
		// Exponent is negative for fractional digits; -2 means cents precision.
		return d.Exponent() >= -2
	})
}
