package service

import "errors"

var (
	// ErrInvalidAmount is returned when an amount is not a positive number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidCardNumber is returned when a card number has no 16 digits.
	ErrInvalidCardNumber = errors.New("invalid card number")

	// ErrInsufficientBalance is returned when the paying account cannot cover the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrRecipientNotFound is returned when the destination card is unknown.
	ErrRecipientNotFound = errors.New("recipient card not found")

	// ErrOperationInFlight is returned when a form submits while its
	// previous operation is still processing.
	ErrOperationInFlight = errors.New("operation already in flight")

	// ErrUnknownOperationKind is returned for an unrecognized operation kind.
	ErrUnknownOperationKind = errors.New("unknown operation kind")

	// ErrOperatorMismatch is returned when a top-up phone number's prefix
	// does not match the selected operator.
	ErrOperatorMismatch = errors.New("operator does not match phone number")

	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrSessionNotFound is returned for unknown or expired session tokens.
	ErrSessionNotFound = errors.New("session not found")

	// ErrMissingSignupField is returned when a signup field is empty.
	ErrMissingSignupField = errors.New("all fields are required")
)
