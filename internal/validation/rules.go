// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/stockpay/internal/errors"
)

var (
	// paymentMethodRegex accepts codes such as BANK_TRANSFER, e_wallet or credit-card.
	paymentMethodRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_\-]{0,31}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// PaymentMethod validates the shape of a payment method code. Unknown codes are accepted and
// forwarded lowercased to the payment collaborator.
var PaymentMethod = validation.NewStringRuleWithError(
	func(s string) bool {
		return paymentMethodRegex.MatchString(s)
	},
	validation.NewError("validation_payment_method", "must be a payment method code such as BANK_TRANSFER"),
)
