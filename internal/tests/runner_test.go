package tests

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"wallet/internal/domain"
	"wallet/internal/form"
	"wallet/internal/service"
)

func paymentInput() domain.FormInput {
	return domain.FormInput{
		Amount:     "50",
		CardNumber: "4111 1111 1111 1111",
		Expiry:     "12/30",
		CVV:        "123",
	}
}

func TestRunner_PaymentSucceedsAfterProcessingDelay(t *testing.T) {
	t.Parallel()

	notifier := NewMockNotifier()
	delay := 50 * time.Millisecond
	runner := service.NewTransactionRunner(&service.MockProcessor{Delay: delay}, notifier)

	op := service.NewOperation(domain.KindPayment, paymentInput())

	start := time.Now()
	err := runner.Run(context.Background(), "user@example.com", op, nil)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if elapsed < delay {
		t.Errorf("operation settled in %v, expected at least the %v processing delay", elapsed, delay)
	}
	if op.State != domain.OperationSucceeded {
		t.Errorf("expected state %s, got %s", domain.OperationSucceeded, op.State)
	}
	if op.Input != (domain.FormInput{}) {
		t.Errorf("expected input snapshot to be cleared, got %+v", op.Input)
	}

	all := notifier.All()
	if len(all) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(all))
	}
	if all[0].Severity != service.SeveritySuccess {
		t.Errorf("expected SUCCESS severity, got %s", all[0].Severity)
	}
	if !strings.Contains(all[0].Message, "50") {
		t.Errorf("expected success message to quote the amount, got %q", all[0].Message)
	}
}

func TestRunner_ValidationFailureNeverLeavesIdle(t *testing.T) {
	t.Parallel()

	notifier := NewMockNotifier()
	processor := &CountingProcessor{}
	runner := service.NewTransactionRunner(processor, notifier)

	input := paymentInput()
	input.Amount = ""
	op := service.NewOperation(domain.KindPayment, input)

	err := runner.Run(context.Background(), "user@example.com", op, nil)
	if !errors.Is(err, form.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	if op.State != domain.OperationIdle {
		t.Errorf("expected state %s, got %s", domain.OperationIdle, op.State)
	}
	if got := atomic.LoadInt32(&processor.CallCount); got != 0 {
		t.Errorf("processor should not run on validation failure, got %d calls", got)
	}

	all := notifier.All()
	if len(all) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(all))
	}
	if all[0].Severity != service.SeverityError {
		t.Errorf("expected ERROR severity, got %s", all[0].Severity)
	}
	if all[0].Message != "Please fill in all payment details." {
		t.Errorf("unexpected validation message %q", all[0].Message)
	}
}

func TestRunner_ValidationMessagesPerKind(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		kind    domain.TransactionKind
		input   domain.FormInput
		message string
	}{
		{
			name:    "payment form",
			kind:    domain.KindPayment,
			input:   domain.FormInput{CardNumber: "4111", Expiry: "12/30", CVV: "123"},
			message: "Please fill in all payment details.",
		},
		{
			name:    "balance form",
			kind:    domain.KindBalanceAdd,
			input:   domain.FormInput{CardNumber: "4111", Expiry: "12/30", CVV: "123"},
			message: "Please fill in all payment details.",
		},
		{
			name:    "balance form bad email",
			kind:    domain.KindBalanceAdd,
			input:   domain.FormInput{Email: "not-an-email", CardNumber: "4111", Expiry: "12/30", CVV: "123"},
			message: "Please enter a valid email address.",
		},
		{
			name:    "mobile top-up form",
			kind:    domain.KindMobileTopUp,
			input:   domain.FormInput{Account: "50 123 45 67", Service: "azercell"},
			message: "Please fill in all mobile top-up details.",
		},
		{
			name:    "gas payment form",
			kind:    domain.KindGasPayment,
			input:   domain.FormInput{Service: "socar", Amount: "20"},
			message: "Please fill in all gas payment details.",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			notifier := NewMockNotifier()
			runner := service.NewTransactionRunner(&CountingProcessor{}, notifier)
			op := service.NewOperation(tc.kind, tc.input)

			if err := runner.Run(context.Background(), "user@example.com", op, nil); err == nil {
				t.Fatal("expected validation error, got nil")
			}

			all := notifier.All()
			if len(all) != 1 {
				t.Fatalf("expected exactly 1 notification, got %d", len(all))
			}
			if all[0].Message != tc.message {
				t.Errorf("got message %q, want %q", all[0].Message, tc.message)
			}
		})
	}
}

// The always-approving mock processor never declines, so this transition is
// currently unreachable in mock mode; a declining stub stands in for a real
// payment network.
func TestRunner_ProcessorDeclineFailsOperation(t *testing.T) {
	t.Parallel()

	notifier := NewMockNotifier()
	runner := service.NewTransactionRunner(&DecliningProcessor{}, notifier)
	op := service.NewOperation(domain.KindPayment, paymentInput())

	err := runner.Run(context.Background(), "user@example.com", op, nil)
	if !errors.Is(err, service.ErrProcessorDeclined) {
		t.Fatalf("expected ErrProcessorDeclined, got %v", err)
	}
	if op.State != domain.OperationFailed {
		t.Errorf("expected state %s, got %s", domain.OperationFailed, op.State)
	}
	if got := notifier.CountBySeverity(service.SeverityError); got != 1 {
		t.Errorf("expected 1 error notification, got %d", got)
	}
	if got := notifier.CountBySeverity(service.SeveritySuccess); got != 0 {
		t.Errorf("expected no success notification, got %d", got)
	}
}

func TestRunner_ContextCancelDiscardsResult(t *testing.T) {
	t.Parallel()

	notifier := NewMockNotifier()
	runner := service.NewTransactionRunner(&service.MockProcessor{Delay: time.Minute}, notifier)
	op := service.NewOperation(domain.KindPayment, paymentInput())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx, "user@example.com", op, nil)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	if op.State != domain.OperationFailed {
		t.Errorf("expected state %s, got %s", domain.OperationFailed, op.State)
	}
	// A dismissed form raises nothing: no success, no failure toast.
	if got := len(notifier.All()); got != 0 {
		t.Errorf("expected no notifications after cancellation, got %d", got)
	}
}

func TestRunner_OneOperationInFlightPerOwner(t *testing.T) {
	t.Parallel()

	notifier := NewMockNotifier()
	processor := NewBlockingProcessor()
	runner := service.NewTransactionRunner(processor, notifier)

	first := service.NewOperation(domain.KindPayment, paymentInput())
	done := make(chan error, 1)
	go func() {
		done <- runner.Run(context.Background(), "user@example.com", first, nil)
	}()

	<-processor.Started

	second := service.NewOperation(domain.KindPayment, paymentInput())
	if err := runner.Run(context.Background(), "user@example.com", second, nil); !errors.Is(err, service.ErrOperationInFlight) {
		t.Fatalf("expected ErrOperationInFlight for concurrent submit, got %v", err)
	}
	if second.State != domain.OperationIdle {
		t.Errorf("rejected operation should stay %s, got %s", domain.OperationIdle, second.State)
	}

	// A different owner is not blocked.
	go func() {
		<-processor.Started
		close(processor.Release)
	}()
	other := service.NewOperation(domain.KindPayment, paymentInput())
	if err := runner.Run(context.Background(), "other@example.com", other, nil); err != nil {
		t.Fatalf("other owner should run, got %v", err)
	}

	if err := <-done; err != nil {
		t.Fatalf("first operation failed: %v", err)
	}
	if first.State != domain.OperationSucceeded {
		t.Errorf("expected first operation %s, got %s", domain.OperationSucceeded, first.State)
	}
}

func TestRunner_TerminalStatesAreFinal(t *testing.T) {
	t.Parallel()

	notifier := NewMockNotifier()
	runner := service.NewTransactionRunner(&CountingProcessor{}, notifier)
	op := service.NewOperation(domain.KindPayment, paymentInput())

	if err := runner.Run(context.Background(), "user@example.com", op, nil); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// A settled operation cannot be resubmitted; retry needs a fresh one.
	if err := runner.Run(context.Background(), "user@example.com", op, nil); !errors.Is(err, service.ErrOperationInFlight) {
		t.Fatalf("expected ErrOperationInFlight on resubmit, got %v", err)
	}
	if op.State != domain.OperationSucceeded {
		t.Errorf("resubmit must not disturb the terminal state, got %s", op.State)
	}
}

// Failure after approval is likewise unreachable in mock mode; an erroring
// ledger effect exercises it.
func TestRunner_EffectErrorFailsOperation(t *testing.T) {
	t.Parallel()

	notifier := NewMockNotifier()
	runner := service.NewTransactionRunner(&CountingProcessor{}, notifier)
	op := service.NewOperation(domain.KindPayment, paymentInput())

	boom := errors.New("ledger unavailable")
	err := runner.Run(context.Background(), "user@example.com", op, func(ctx context.Context) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected effect error, got %v", err)
	}
	if op.State != domain.OperationFailed {
		t.Errorf("expected state %s, got %s", domain.OperationFailed, op.State)
	}
	if got := notifier.CountBySeverity(service.SeverityError); got != 1 {
		t.Errorf("expected 1 error notification, got %d", got)
	}
}
