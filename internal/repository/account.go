package repository

import (
	"context"

	"wallet/internal/domain"
)

// AccountRepository defines the persistence operations for accounts.
type AccountRepository interface {
	// Create persists a new account.
	Create(ctx context.Context, account *domain.Account) error

	// GetByEmail retrieves the account owned by the given email.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// GetByCardNumber retrieves an account by its 16-digit card number.
	GetByCardNumber(ctx context.Context, cardNumber string) (*domain.Account, error)

	// Withdraw atomically debits the account if the balance covers the
	// amount. Returns ErrInsufficientFunds otherwise and ErrNotFound when
	// no account carries the card number.
	Withdraw(ctx context.Context, cardNumber string, amount float64) error

	// Deposit credits the account. Returns ErrNotFound when no account
	// carries the card number.
	Deposit(ctx context.Context, cardNumber string, amount float64) error
}
