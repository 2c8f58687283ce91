package postgres

import (
	"context"
	"database/sql"
	"errors"

	"wallet/internal/domain"
	"wallet/internal/repository"
)

// TransactionRepository is a PostgreSQL implementation of repository.TransactionRepository.
type TransactionRepository struct {
	q Querier
}

// NewTransactionRepository creates a new PostgreSQL transaction repository.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{q: db}
}

// NewTransactionRepositoryWithTx creates a transaction repository using a transaction.
func NewTransactionRepositoryWithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{q: tx}
}

const transactionColumns = `id, user_id, email, kind, status, amount, counterparty, idempotency_key, created_at`

// Create persists a new transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		tx.ID,
		tx.UserID,
		tx.Email,
		tx.Kind,
		tx.Status,
		tx.Amount,
		tx.Counterparty,
		tx.IdempotencyKey,
		tx.CreatedAt,
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	tx, err := r.scanOne(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	return tx, nil
}

// GetByIdempotencyKey retrieves a user's transaction by its idempotency key.
// Returns nil if the user has no transaction with the given key.
func (r *TransactionRepository) GetByIdempotencyKey(ctx context.Context, email, key string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE email = $1 AND idempotency_key = $2`

	tx, err := r.scanOne(r.q.QueryRowContext(ctx, query, email, key))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return tx, nil
}

// UpdateStatus updates the status of a transaction.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus) error {
	query := `UPDATE transactions SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
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

// ListByEmail retrieves a user's transactions, newest first.
func (r *TransactionRepository) ListByEmail(ctx context.Context, email string, limit int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions WHERE email = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.QueryContext(ctx, query, email, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Email,
			&tx.Kind,
			&tx.Status,
			&tx.Amount,
			&tx.Counterparty,
			&tx.IdempotencyKey,
			&tx.CreatedAt,
		); err != nil {
			return nil, err
		}
		txs = append(txs, &tx)
	}

	return txs, rows.Err()
}

// TotalsByEmail aggregates count and volume of successful transactions.
func (r *TransactionRepository) TotalsByEmail(ctx context.Context, email string) (repository.Totals, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(amount), 0)
		FROM transactions WHERE email = $1 AND status = $2
	`

	var totals repository.Totals
	err := r.q.QueryRowContext(ctx, query, email, domain.TransactionStatusSuccess).
		Scan(&totals.Count, &totals.Volume)
	if err != nil {
		return repository.Totals{}, err
	}

	return totals, nil
}

// SumByKind sums successful transaction amounts of one kind.
func (r *TransactionRepository) SumByKind(ctx context.Context, email string, kind domain.TransactionKind) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions WHERE email = $1 AND kind = $2 AND status = $3
	`

	var sum float64
	err := r.q.QueryRowContext(ctx, query, email, kind, domain.TransactionStatusSuccess).Scan(&sum)
	if err != nil {
		return 0, err
	}

	return sum, nil
}

func (r *TransactionRepository) scanOne(row *sql.Row) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Email,
		&tx.Kind,
		&tx.Status,
		&tx.Amount,
		&tx.Counterparty,
		&tx.IdempotencyKey,
		&tx.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &tx, nil
}
