package repository

import (
	"context"

	"wallet/internal/domain"
)

// Totals aggregates a user's recorded transactions.
type Totals struct {
	Count  int
	Volume float64
}

// TransactionRepository defines the persistence operations for transactions.
type TransactionRepository interface {
	// Create persists a new transaction.
	Create(ctx context.Context, tx *domain.Transaction) error

	// GetByID retrieves a transaction by ID.
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)

	// GetByIdempotencyKey retrieves a user's transaction by its idempotency
	// key. Returns nil if the user has no transaction with the given key.
	GetByIdempotencyKey(ctx context.Context, email, key string) (*domain.Transaction, error)

	// UpdateStatus updates the status of a transaction.
	UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus) error

	// ListByEmail retrieves a user's transactions, newest first.
	ListByEmail(ctx context.Context, email string, limit int) ([]*domain.Transaction, error)

	// TotalsByEmail aggregates count and volume of successful transactions.
	TotalsByEmail(ctx context.Context, email string) (Totals, error)

	// SumByKind sums successful transaction amounts of one kind.
	SumByKind(ctx context.Context, email string, kind domain.TransactionKind) (float64, error)
}
