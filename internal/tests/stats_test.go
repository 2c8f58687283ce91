package tests

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"wallet/internal/domain"
	"wallet/internal/redis"
	"wallet/internal/repository"
	"wallet/internal/service"
)

func seedStatsData(accounts *MockAccountRepository, transactions *MockTransactionRepository) {
	accounts.AddAccount(&domain.Account{
		ID:         "acc-1",
		UserID:     "user-1",
		Email:      "user@example.com",
		CardNumber: "4111111111111111",
		Balance:    250,
		CreatedAt:  time.Now(),
	})

	rows := []struct {
		kind   domain.TransactionKind
		amount float64
	}{
		{kind: domain.KindBalanceAdd, amount: 500},
		{kind: domain.KindPayment, amount: 120},
		{kind: domain.KindMobileTopUp, amount: 30},
	}
	for i, row := range rows {
		transactions.AddTransaction(&domain.Transaction{
			ID:        "tx-" + string(rune('a'+i)),
			Email:     "user@example.com",
			Kind:      row.kind,
			Status:    domain.TransactionStatusSuccess,
			Amount:    row.amount,
			CreatedAt: time.Now(),
		})
	}
}

func TestDashboard_BatchesMetricsAndCaches(t *testing.T) {
	t.Parallel()

	accounts := NewMockAccountRepository()
	transactions := NewMockTransactionRepository()
	cache := NewMockStatsCache()
	seedStatsData(accounts, transactions)

	svc := service.NewStatsService(accounts, transactions, cache)

	stats, err := svc.Dashboard(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	if stats.Balance != 250 {
		t.Errorf("Balance = %v, want 250", stats.Balance)
	}
	if stats.CardNumber != "4111111111111111" {
		t.Errorf("CardNumber = %q", stats.CardNumber)
	}
	if stats.TransactionCount != 3 {
		t.Errorf("TransactionCount = %d, want 3", stats.TransactionCount)
	}
	if stats.TransactionTotal != 650 {
		t.Errorf("TransactionTotal = %v, want 650", stats.TransactionTotal)
	}
	if stats.Income != 500 {
		t.Errorf("Income = %v, want 500", stats.Income)
	}
	if stats.Expense != 150 {
		t.Errorf("Expense = %v, want 150", stats.Expense)
	}
	if got := atomic.LoadInt32(&cache.SetCallCount); got != 1 {
		t.Errorf("expected stats cached once, got %d sets", got)
	}
}

func TestDashboard_ServesFromCache(t *testing.T) {
	t.Parallel()

	accounts := NewMockAccountRepository()
	transactions := NewMockTransactionRepository()
	cache := NewMockStatsCache()

	// No account is seeded: only a cache hit can satisfy the read.
	if err := cache.SetStats(context.Background(), "user@example.com", &redis.CachedStats{
		Balance:          99,
		CardNumber:       "4222222222222222",
		TransactionCount: 7,
		TransactionTotal: 700,
		Income:           400,
		Expense:          300,
	}); err != nil {
		t.Fatalf("SetStats failed: %v", err)
	}

	svc := service.NewStatsService(accounts, transactions, cache)

	stats, err := svc.Dashboard(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if stats.Balance != 99 || stats.TransactionCount != 7 {
		t.Errorf("expected cached values, got %+v", stats)
	}
}

func TestDashboard_UnknownAccount(t *testing.T) {
	t.Parallel()

	svc := service.NewStatsService(NewMockAccountRepository(), NewMockTransactionRepository(), NewMockStatsCache())

	if _, err := svc.Dashboard(context.Background(), "nobody@example.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDashboard_InvalidationForcesRecompute(t *testing.T) {
	t.Parallel()

	accounts := NewMockAccountRepository()
	transactions := NewMockTransactionRepository()
	cache := NewMockStatsCache()
	seedStatsData(accounts, transactions)

	svc := service.NewStatsService(accounts, transactions, cache)

	if _, err := svc.Dashboard(context.Background(), "user@example.com"); err != nil {
		t.Fatalf("first read failed: %v", err)
	}

	// The balance changes and the cache is invalidated, as the payment flows do.
	if err := accounts.Deposit(context.Background(), "4111111111111111", 50); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if err := cache.InvalidateStats(context.Background(), "user@example.com"); err != nil {
		t.Fatalf("InvalidateStats failed: %v", err)
	}

	stats, err := svc.Dashboard(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if stats.Balance != 300 {
		t.Errorf("expected recomputed balance 300, got %v", stats.Balance)
	}
	if got := atomic.LoadInt32(&cache.SetCallCount); got != 2 {
		t.Errorf("expected 2 cache sets, got %d", got)
	}
}
