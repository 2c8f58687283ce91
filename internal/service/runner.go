package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"wallet/internal/domain"
	"wallet/internal/form"
)

// DefaultProcessingDelay mirrors the artificial wait the payment and
// balance-add flows show before reporting success.
const DefaultProcessingDelay = 2 * time.Second

// ErrProcessorDeclined is returned when the processor refuses an operation.
var ErrProcessorDeclined = errors.New("processing declined")

// Processor settles a submitted operation. The mock implementation stands in
// for a payment network; a real one may decline or fail, which moves the
// operation to its FAILED terminal state.
type Processor interface {
	Process(ctx context.Context, op *domain.Operation) (bool, error)
}

// MockProcessor approves every operation after a fixed delay. The delay
// respects context cancellation so a dismissed form never completes late.
type MockProcessor struct {
	Delay time.Duration
}

// NewMockProcessor creates a mock processor with the standard delay.
func NewMockProcessor() *MockProcessor {
	return &MockProcessor{Delay: DefaultProcessingDelay}
}

// Process waits out the artificial delay, then approves.
func (p *MockProcessor) Process(ctx context.Context, op *domain.Operation) (bool, error) {
	timer := time.NewTimer(p.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// TransactionRunner drives a form submission through
// IDLE -> SUBMITTING -> {SUCCEEDED, FAILED}. Terminal states are final; a
// retry needs a fresh operation. At most one operation per owner may be in
// flight, which is what disabling the submit control models.
type TransactionRunner struct {
	processor Processor
	notifier  Notifier

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewTransactionRunner creates a new TransactionRunner.
func NewTransactionRunner(processor Processor, notifier Notifier) *TransactionRunner {
	return &TransactionRunner{
		processor: processor,
		notifier:  notifier,
		inFlight:  make(map[string]struct{}),
	}
}

// NewOperation creates an operation in the IDLE state with its input snapshot.
func NewOperation(kind domain.TransactionKind, input domain.FormInput) *domain.Operation {
	return &domain.Operation{
		ID:    uuid.New().String(),
		Kind:  kind,
		State: domain.OperationIdle,
		Input: input,
	}
}

// Run validates and settles one operation. On validation failure the
// operation never leaves IDLE, exactly one error notification is raised and
// no processing starts. After the processor approves, effect (if any) applies
// the ledger change; an effect error fails the operation. On success the
// input snapshot is cleared, matching the form reset the flows perform.
func (r *TransactionRunner) Run(ctx context.Context, ownerID string, op *domain.Operation, effect func(context.Context) error) error {
	if op.State != domain.OperationIdle {
		return ErrOperationInFlight
	}

	if err := r.validate(ctx, ownerID, op); err != nil {
		return err
	}

	if !r.acquire(ownerID) {
		return ErrOperationInFlight
	}
	defer r.release(ownerID)

	op.State = domain.OperationSubmitting

	ok, err := r.processor.Process(ctx, op)
	if err != nil {
		op.State = domain.OperationFailed
		// A cancelled context means the owning form is gone: discard the
		// result without raising anything against it.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		r.notifyFailure(ctx, ownerID, op)
		return err
	}
	if !ok {
		op.State = domain.OperationFailed
		r.notifyFailure(ctx, ownerID, op)
		return ErrProcessorDeclined
	}

	if effect != nil {
		if err := effect(ctx); err != nil {
			op.State = domain.OperationFailed
			r.notifyFailure(ctx, ownerID, op)
			return err
		}
	}

	r.notifySuccess(ctx, ownerID, op)
	op.State = domain.OperationSucceeded
	op.Input = domain.FormInput{}

	return nil
}

func (r *TransactionRunner) acquire(ownerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inFlight[ownerID]; busy {
		return false
	}
	r.inFlight[ownerID] = struct{}{}
	return true
}

func (r *TransactionRunner) release(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, ownerID)
}

// validate gates the IDLE -> SUBMITTING transition on form completeness.
func (r *TransactionRunner) validate(ctx context.Context, ownerID string, op *domain.Operation) error {
	in := op.Input

	var err error
	switch op.Kind {
	case domain.KindPayment:
		err = form.ValidatePaymentForm(in.Amount, in.CardNumber, in.Expiry, in.CVV)
	case domain.KindBalanceAdd:
		err = form.ValidateBalanceForm(in.Email, in.CardNumber, in.Expiry, in.CVV)
	case domain.KindMobileTopUp, domain.KindGasPayment:
		err = form.ValidateServiceForm(in.Account, in.Service, in.Amount)
	default:
		return ErrUnknownOperationKind
	}
	if err == nil {
		return nil
	}

	r.notifier.Notify(ctx, validationFailureNotification(ownerID, validationMessage(op.Kind, err)))

	return err
}

func validationMessage(kind domain.TransactionKind, err error) string {
	if errors.Is(err, form.ErrInvalidEmail) {
		return "Please enter a valid email address."
	}
	switch kind {
	case domain.KindMobileTopUp:
		return "Please fill in all mobile top-up details."
	case domain.KindGasPayment:
		return "Please fill in all gas payment details."
	default:
		return "Please fill in all payment details."
	}
}

func (r *TransactionRunner) notifySuccess(ctx context.Context, ownerID string, op *domain.Operation) {
	var n Notification
	switch op.Kind {
	case domain.KindPayment:
		n = paymentSuccessNotification(ownerID, op.Input.Amount)
	case domain.KindBalanceAdd:
		n = balanceAddedNotification(ownerID)
	case domain.KindMobileTopUp:
		n = mobileTopUpNotification(ownerID, op.Input.Amount, op.Input.Account)
	case domain.KindGasPayment:
		n = gasPaymentNotification(ownerID, op.Input.Amount, op.Input.Account)
	}
	r.notifier.Notify(ctx, n)
}

func (r *TransactionRunner) notifyFailure(ctx context.Context, ownerID string, op *domain.Operation) {
	r.notifier.Notify(ctx, operationFailureNotification(ownerID, op.Kind))
}
