package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"wallet/internal/domain"
	"wallet/internal/form"
	"wallet/internal/redis"
	"wallet/internal/repository"
	"wallet/internal/repository/postgres"
)

// PaymentService applies validated form operations to the ledger.
type PaymentService struct {
	db              *sql.DB
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	runner          *TransactionRunner
	statsCache      redis.StatsCacheInterface
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	db *sql.DB,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	runner *TransactionRunner,
	statsCache redis.StatsCacheInterface,
) *PaymentService {
	return &PaymentService{
		db:              db,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		runner:          runner,
		statsCache:      statsCache,
	}
}

// PayRequest contains a card payment submission.
type PayRequest struct {
	Session        domain.Session
	Input          domain.FormInput
	IdempotencyKey string
}

// Pay runs the payment form flow: validate, process, then move funds from
// the session account to the recipient card in one database transaction.
// The transaction row is written PENDING before the transfer and settled to
// its terminal status with it.
func (s *PaymentService) Pay(ctx context.Context, req PayRequest) (*domain.Operation, error) {
	op := NewOperation(domain.KindPayment, req.Input)

	if replayed, err := s.replay(ctx, req.Session.Email, req.IdempotencyKey, op); replayed || err != nil {
		return op, err
	}

	err := s.runner.Run(ctx, req.Session.Email, op, func(ctx context.Context) error {
		amount, err := parseAmount(req.Input.Amount)
		if err != nil {
			return err
		}

		recipientCard := cardDigits(req.Input.CardNumber)
		if recipientCard == "" {
			return ErrInvalidCardNumber
		}

		sender, err := s.accountRepo.GetByEmail(ctx, req.Session.Email)
		if err != nil {
			return err
		}

		if sender.Balance < amount {
			return ErrInsufficientBalance
		}

		record, err := s.beginRecord(ctx, req.Session, domain.KindPayment, amount, recipientCard, req.IdempotencyKey)
		if err != nil {
			return err
		}

		if err := s.transfer(ctx, sender, recipientCard, amount, record.ID); err != nil {
			_ = s.transactionRepo.UpdateStatus(ctx, record.ID, domain.TransactionStatusFailed)
			return err
		}

		return nil
	})
	if err != nil {
		return op, err
	}

	s.invalidateStats(ctx, req.Session.Email)
	return op, nil
}

// transfer debits the sender, credits the recipient and settles the PENDING
// row to SUCCESS atomically.
func (s *PaymentService) transfer(ctx context.Context, sender *domain.Account, recipientCard string, amount float64, recordID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	accounts := postgres.NewAccountRepositoryWithTx(tx)
	transactions := postgres.NewTransactionRepositoryWithTx(tx)

	if err := accounts.Withdraw(ctx, sender.CardNumber, amount); err != nil {
		if err == repository.ErrInsufficientFunds {
			return ErrInsufficientBalance
		}
		return err
	}

	if err := accounts.Deposit(ctx, recipientCard, amount); err != nil {
		if err == repository.ErrNotFound {
			return ErrRecipientNotFound
		}
		return err
	}

	if err := transactions.UpdateStatus(ctx, recordID, domain.TransactionStatusSuccess); err != nil {
		return err
	}

	return tx.Commit()
}

// AddBalanceRequest contains a balance top-up submission.
type AddBalanceRequest struct {
	Session        domain.Session
	Input          domain.FormInput
	IdempotencyKey string
}

// AddBalance runs the balance form flow and credits the session account.
func (s *PaymentService) AddBalance(ctx context.Context, req AddBalanceRequest) (*domain.Operation, error) {
	op := NewOperation(domain.KindBalanceAdd, req.Input)

	if replayed, err := s.replay(ctx, req.Session.Email, req.IdempotencyKey, op); replayed || err != nil {
		return op, err
	}

	err := s.runner.Run(ctx, req.Session.Email, op, func(ctx context.Context) error {
		amount, err := parseAmount(req.Input.Amount)
		if err != nil {
			return err
		}

		account, err := s.accountRepo.GetByEmail(ctx, req.Session.Email)
		if err != nil {
			return err
		}

		record, err := s.beginRecord(ctx, req.Session, domain.KindBalanceAdd, amount, account.CardNumber, req.IdempotencyKey)
		if err != nil {
			return err
		}

		if err := s.accountRepo.Deposit(ctx, account.CardNumber, amount); err != nil {
			_ = s.transactionRepo.UpdateStatus(ctx, record.ID, domain.TransactionStatusFailed)
			return err
		}

		return s.transactionRepo.UpdateStatus(ctx, record.ID, domain.TransactionStatusSuccess)
	})
	if err != nil {
		return op, err
	}

	s.invalidateStats(ctx, req.Session.Email)
	return op, nil
}

// ServicePaymentRequest contains a mobile top-up or gas bill submission.
type ServicePaymentRequest struct {
	Session        domain.Session
	Kind           domain.TransactionKind
	Input          domain.FormInput
	IdempotencyKey string
}

// PayService runs a service form flow (mobile top-up or gas payment),
// debiting the session account.
func (s *PaymentService) PayService(ctx context.Context, req ServicePaymentRequest) (*domain.Operation, error) {
	if req.Kind != domain.KindMobileTopUp && req.Kind != domain.KindGasPayment {
		return nil, ErrUnknownOperationKind
	}

	op := NewOperation(req.Kind, req.Input)

	if replayed, err := s.replay(ctx, req.Session.Email, req.IdempotencyKey, op); replayed || err != nil {
		return op, err
	}

	err := s.runner.Run(ctx, req.Session.Email, op, func(ctx context.Context) error {
		amount, err := parseAmount(req.Input.Amount)
		if err != nil {
			return err
		}

		// The phone prefix selects the operator; a submission naming a
		// different one is malformed.
		if req.Kind == domain.KindMobileTopUp {
			operator, ok := form.DetectOperator(req.Input.Account)
			if !ok || operator.ID != req.Input.Service {
				return ErrOperatorMismatch
			}
		}

		account, err := s.accountRepo.GetByEmail(ctx, req.Session.Email)
		if err != nil {
			return err
		}

		record, err := s.beginRecord(ctx, req.Session, req.Kind, amount, req.Input.Account, req.IdempotencyKey)
		if err != nil {
			return err
		}

		if err := s.accountRepo.Withdraw(ctx, account.CardNumber, amount); err != nil {
			_ = s.transactionRepo.UpdateStatus(ctx, record.ID, domain.TransactionStatusFailed)
			if err == repository.ErrInsufficientFunds {
				return ErrInsufficientBalance
			}
			return err
		}

		return s.transactionRepo.UpdateStatus(ctx, record.ID, domain.TransactionStatusSuccess)
	})
	if err != nil {
		return op, err
	}

	s.invalidateStats(ctx, req.Session.Email)
	return op, nil
}

// replay resolves an idempotency key to a previously recorded outcome. The
// lookup is scoped to the session user so one client's key can never expose
// another's result.
func (s *PaymentService) replay(ctx context.Context, email, idempotencyKey string, op *domain.Operation) (bool, error) {
	if idempotencyKey == "" {
		return false, nil
	}

	existing, err := s.transactionRepo.GetByIdempotencyKey(ctx, email, idempotencyKey)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	op.State = stateForStatus(existing.Status)
	return true, nil
}

// beginRecord writes the PENDING transaction row before the ledger change;
// the caller settles it with UpdateStatus.
func (s *PaymentService) beginRecord(ctx context.Context, session domain.Session, kind domain.TransactionKind, amount float64, counterparty, idempotencyKey string) (*domain.Transaction, error) {
	if idempotencyKey == "" {
		idempotencyKey = fmt.Sprintf("%s:%s", kind, uuid.New().String())
	}

	record := &domain.Transaction{
		ID:             uuid.New().String(),
		UserID:         session.UserID,
		Email:          session.Email,
		Kind:           kind,
		Status:         domain.TransactionStatusPending,
		Amount:         amount,
		Counterparty:   counterparty,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      time.Now(),
	}
	if err := s.transactionRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// ListTransactions retrieves the session user's history, newest first.
func (s *PaymentService) ListTransactions(ctx context.Context, email string, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.transactionRepo.ListByEmail(ctx, email, limit)
}

// GetTransaction retrieves one transaction by ID.
func (s *PaymentService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, id)
}

// parseAmount converts the form's decimal string at the service boundary.
// The form layer deliberately accepts any string.
func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}

// cardDigits returns the 16 raw digits behind a display-form card number,
// or "" when the display form does not regenerate cleanly.
func cardDigits(display string) string {
	raw := form.FormatCardNumber(display)
	stripped := ""
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			stripped += string(r)
		}
	}
	if len(stripped) != 16 {
		return ""
	}
	return stripped
}

func stateForStatus(status domain.TransactionStatus) domain.OperationState {
	switch status {
	case domain.TransactionStatusSuccess:
		return domain.OperationSucceeded
	case domain.TransactionStatusFailed:
		return domain.OperationFailed
	default:
		return domain.OperationSubmitting
	}
}

func (s *PaymentService) invalidateStats(ctx context.Context, email string) {
	if s.statsCache != nil {
		_ = s.statsCache.InvalidateStats(ctx, email)
	}
}
