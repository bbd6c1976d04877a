package validation

import (
	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"
)

// PositiveDecimal validates that a decimal.Decimal (or *decimal.Decimal) is strictly greater than zero.
var PositiveDecimal = validation.By(func(value interface{}) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil // Let Required handle missing values
		}
		d = *v
	default:
		return validation.NewError("validation_decimal_type", "must be a decimal number")
	}

	if !d.IsPositive() {
		return validation.NewError("validation_decimal_positive", "must be greater than 0")
	}
	return nil
})

// NonNegativeDecimal validates that a decimal.Decimal (or *decimal.Decimal) is zero or greater.
var NonNegativeDecimal = validation.By(func(value interface{}) error {
	var d decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		d = *v
	default:
		return validation.NewError("validation_decimal_type", "must be a decimal number")
	}

	if d.IsNegative() {
		return validation.NewError("validation_decimal_non_negative", "must not be negative")
	}
	return nil
})
