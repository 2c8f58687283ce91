package postgres

import (
	"context"
	"database/sql"
	"errors"

	"wallet/internal/domain"
	"wallet/internal/repository"
)

// AccountRepository is a PostgreSQL implementation of repository.AccountRepository.
type AccountRepository struct {
	q Querier
}

// NewAccountRepository creates a new PostgreSQL account repository.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{q: db}
}

// NewAccountRepositoryWithTx creates an account repository using a transaction.
func NewAccountRepositoryWithTx(tx *sql.Tx) *AccountRepository {
	return &AccountRepository{q: tx}
}

// Create persists a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, user_id, email, card_number, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		account.ID,
		account.UserID,
		account.Email,
		account.CardNumber,
		account.Balance,
		account.CreatedAt,
	)

	return err
}

// GetByEmail retrieves the account owned by the given email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `
		SELECT id, user_id, email, card_number, balance, created_at
		FROM accounts WHERE email = $1
	`

	return r.scanOne(r.q.QueryRowContext(ctx, query, email))
}

// GetByCardNumber retrieves an account by its card number.
func (r *AccountRepository) GetByCardNumber(ctx context.Context, cardNumber string) (*domain.Account, error) {
	query := `
		SELECT id, user_id, email, card_number, balance, created_at
		FROM accounts WHERE card_number = $1
	`

	return r.scanOne(r.q.QueryRowContext(ctx, query, cardNumber))
}

// Withdraw atomically debits the account when the balance covers the amount.
func (r *AccountRepository) Withdraw(ctx context.Context, cardNumber string, amount float64) error {
	query := `
		UPDATE accounts SET balance = balance - $1
		WHERE card_number = $2 AND balance >= $1
	`

	result, err := r.q.ExecContext(ctx, query, amount, cardNumber)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		// Distinguish a missing account from an overdraw.
		if _, err := r.GetByCardNumber(ctx, cardNumber); err != nil {
			return err
		}
		return repository.ErrInsufficientFunds
	}

	return nil
}

// Deposit credits the account.
func (r *AccountRepository) Deposit(ctx context.Context, cardNumber string, amount float64) error {
	query := `UPDATE accounts SET balance = balance + $1 WHERE card_number = $2`

	result, err := r.q.ExecContext(ctx, query, amount, cardNumber)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *AccountRepository) scanOne(row *sql.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.Email,
		&account.CardNumber,
		&account.Balance,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &account, nil
}
