package form

import (
	"errors"
	"strings"
)

var (
	// ErrMissingField is returned when a required input is empty at submit time.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidEmail is returned when the balance-form email lacks an @.
	ErrInvalidEmail = errors.New("invalid email address")
)

// Completeness checks only: no Luhn, no expiry-in-future check, no
// CVV-length-to-brand mapping. Amounts are not required to be numeric here;
// that is the service boundary's concern.

// ValidatePaymentForm gates submission of the card payment form.
func ValidatePaymentForm(amount, cardNumber, expiry, cvv string) error {
	if anyBlank(amount, cardNumber, expiry, cvv) {
		return ErrMissingField
	}
	return nil
}

// ValidateBalanceForm gates submission of the balance top-up form. The email
// check is presence of an @ only, matching the form's behavior, not a
// structural address check.
func ValidateBalanceForm(email, cardNumber, expiry, cvv string) error {
	if anyBlank(email, cardNumber, expiry, cvv) {
		return ErrMissingField
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateServiceForm gates submission of the mobile top-up and gas forms.
func ValidateServiceForm(account, service, amount string) error {
	if anyBlank(account, service, amount) {
		return ErrMissingField
	}
	return nil
}

func anyBlank(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return true
		}
	}
	return false
}
