package domain

import "time"

// TransactionKind represents the type of a wallet transaction.
type TransactionKind string

const (
	KindPayment     TransactionKind = "PAYMENT"
	KindBalanceAdd  TransactionKind = "BALANCE_ADD"
	KindMobileTopUp TransactionKind = "MOBILE_TOPUP"
	KindGasPayment  TransactionKind = "GAS_PAYMENT"
)

// TransactionStatus represents the persisted status of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "PENDING"
	TransactionStatusSuccess TransactionStatus = "SUCCESS"
	TransactionStatusFailed  TransactionStatus = "FAILED"
)

// Transaction represents a recorded wallet movement.
type Transaction struct {
	ID             string
	UserID         string
	Email          string
	Kind           TransactionKind
	Status         TransactionStatus
	Amount         float64
	Counterparty   string // recipient card, phone number or service account
	IdempotencyKey string
	CreatedAt      time.Time
}

// OperationState represents the in-flight state of a submitted form action.
type OperationState string

const (
	OperationIdle       OperationState = "IDLE"
	OperationSubmitting OperationState = "SUBMITTING"
	OperationSucceeded  OperationState = "SUCCEEDED"
	OperationFailed     OperationState = "FAILED"
)

// FormInput is the snapshot of what the user entered when submitting.
// Card number and expiry carry their display form (space-grouped, MM/YY).
type FormInput struct {
	Amount     string
	CardNumber string
	Expiry     string
	CVV        string
	Email      string // balance-add only
	Account    string // mobile number or gas account (service forms)
	Service    string // operator or gas provider id (service forms)
}

// Operation is one attempted form action. It is mutated only by the
// transaction runner and discarded once the submitting form goes away.
type Operation struct {
	ID    string
	Kind  TransactionKind
	State OperationState
	Input FormInput
}
