package service

import (
	"context"

	"wallet/internal/domain"
	"wallet/internal/redis"
	"wallet/internal/repository"
)

// DashboardStats is the batched read behind the dashboard: one call replaces
// the per-metric polls the views used to fire independently.
type DashboardStats struct {
	Balance          float64
	CardNumber       string
	TransactionCount int
	TransactionTotal float64
	Income           float64
	Expense          float64
}

// StatsService serves dashboard metrics with a short-lived Redis cache.
type StatsService struct {
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	cache           redis.StatsCacheInterface
}

// NewStatsService creates a new StatsService.
func NewStatsService(accountRepo repository.AccountRepository, transactionRepo repository.TransactionRepository, cache redis.StatsCacheInterface) *StatsService {
	return &StatsService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

// Dashboard returns the viewer's stats in one batched query set.
func (s *StatsService) Dashboard(ctx context.Context, email string) (*DashboardStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetStats(ctx, email); err == nil && cached != nil {
			return &DashboardStats{
				Balance:          cached.Balance,
				CardNumber:       cached.CardNumber,
				TransactionCount: cached.TransactionCount,
				TransactionTotal: cached.TransactionTotal,
				Income:           cached.Income,
				Expense:          cached.Expense,
			}, nil
		}
	}

	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	totals, err := s.transactionRepo.TotalsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	income, err := s.transactionRepo.SumByKind(ctx, email, domain.KindBalanceAdd)
	if err != nil {
		return nil, err
	}

	expense := totals.Volume - income

	stats := &DashboardStats{
		Balance:          account.Balance,
		CardNumber:       account.CardNumber,
		TransactionCount: totals.Count,
		TransactionTotal: totals.Volume,
		Income:           income,
		Expense:          expense,
	}

	if s.cache != nil {
		_ = s.cache.SetStats(ctx, email, &redis.CachedStats{
			Balance:          stats.Balance,
			CardNumber:       stats.CardNumber,
			TransactionCount: stats.TransactionCount,
			TransactionTotal: stats.TransactionTotal,
			Income:           stats.Income,
			Expense:          stats.Expense,
		})
	}

	return stats, nil
}
