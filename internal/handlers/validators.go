package handlers

import (
	"reflect"
	"sync"

	"github.com/SscSPs/membership_ledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the ledger binding tags to gin's validator:
// decimal_gt0 for strictly positive amounts and yyyymm for dues periods.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// Validate decimals by their string form; the zero value maps to "".
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("decimal_gt0", decimalGreaterThanZero)
		_ = v.RegisterValidation("yyyymm", func(fl validator.FieldLevel) bool {
			return domain.IsValidPeriod(fl.Field().String())
		})
	})
}

func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		d, err := decimal.NewFromString(field.String())
		return err == nil && d.IsPositive()
	case reflect.Struct:
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.IsPositive()
		}
	}
	return false
}
