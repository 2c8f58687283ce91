package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"wallet/internal/domain"
)

// NotificationSeverity represents the severity of a notification.
type NotificationSeverity string

const (
	SeverityInfo    NotificationSeverity = "INFO"
	SeveritySuccess NotificationSeverity = "SUCCESS"
	SeverityError   NotificationSeverity = "ERROR"
)

// Notification is a fire-and-forget message surfaced to the user.
type Notification struct {
	Severity    NotificationSeverity
	RecipientID string
	Title       string
	Message     string
	CreatedAt   time.Time
}

// Notifier delivers notifications to users.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotificationService delivers user-facing toasts/alerts.
type NotificationService struct {
	// In a real system, this would have:
	// - Push notification client (FCM, APNS)
	// - Email client
	// - WebSocket connections for real-time delivery
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// Notify delivers a notification (log-backed implementation).
func (s *NotificationService) Notify(ctx context.Context, n Notification) {
	log.Printf("[NOTIFICATION] Severity=%s, Recipient=%s, Title=%s, Message=%s",
		n.Severity, n.RecipientID, n.Title, n.Message)
}

// Toast builders. All user-facing wording is assembled here so the runner
// and any future delivery channel quote identical messages.

func paymentSuccessNotification(recipientID, amount string) Notification {
	return Notification{
		Severity:    SeveritySuccess,
		RecipientID: recipientID,
		Title:       "Payment Successful",
		Message:     fmt.Sprintf("Payment of $%s has been processed successfully.", amount),
		CreatedAt:   time.Now(),
	}
}

func balanceAddedNotification(recipientID string) Notification {
	return Notification{
		Severity:    SeveritySuccess,
		RecipientID: recipientID,
		Title:       "Balance Added",
		Message:     "Balance added successfully!",
		CreatedAt:   time.Now(),
	}
}

func mobileTopUpNotification(recipientID, amount, account string) Notification {
	return Notification{
		Severity:    SeveritySuccess,
		RecipientID: recipientID,
		Title:       "Mobile Top-up Successful",
		Message:     fmt.Sprintf("%s AZN added to %s", amount, account),
		CreatedAt:   time.Now(),
	}
}

func gasPaymentNotification(recipientID, amount, account string) Notification {
	return Notification{
		Severity:    SeveritySuccess,
		RecipientID: recipientID,
		Title:       "Gas Payment Successful",
		Message:     fmt.Sprintf("%s AZN paid for account %s", amount, account),
		CreatedAt:   time.Now(),
	}
}

func validationFailureNotification(recipientID, message string) Notification {
	return Notification{
		Severity:    SeverityError,
		RecipientID: recipientID,
		Title:       "Missing Information",
		Message:     message,
		CreatedAt:   time.Now(),
	}
}

func operationFailureNotification(recipientID string, kind domain.TransactionKind) Notification {
	return Notification{
		Severity:    SeverityError,
		RecipientID: recipientID,
		Title:       "Payment Failed",
		Message:     "Your " + kindLabel(kind) + " could not be processed. Please try again.",
		CreatedAt:   time.Now(),
	}
}

func kindLabel(kind domain.TransactionKind) string {
	switch kind {
	case domain.KindBalanceAdd:
		return "top-up"
	case domain.KindMobileTopUp:
		return "mobile top-up"
	case domain.KindGasPayment:
		return "gas payment"
	default:
		return "payment"
	}
}
