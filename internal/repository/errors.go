package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrInsufficientFunds is returned when a withdrawal would overdraw an account.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicateEmail is returned when creating a user with a taken email.
	ErrDuplicateEmail = errors.New("email already registered")
)
