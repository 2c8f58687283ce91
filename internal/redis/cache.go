package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsCacheTTL keeps dashboard reads cheap without hiding fresh payments
// for long.
const StatsCacheTTL = 30 * time.Second

const statsCachePrefix = "cache:stats:"

// CachedStats is the cached dashboard snapshot for one user.
type CachedStats struct {
	Balance          float64 `json:"balance"`
	CardNumber       string  `json:"card_number"`
	TransactionCount int     `json:"transaction_count"`
	TransactionTotal float64 `json:"transaction_total"`
	Income           float64 `json:"income"`
	Expense          float64 `json:"expense"`
}

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// GetStats retrieves a dashboard snapshot from cache.
func (s *CacheStore) GetStats(ctx context.Context, email string) (*CachedStats, error) {
	data, err := s.client.Get(ctx, statsCachePrefix+email).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var stats CachedStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SetStats stores a dashboard snapshot in cache.
func (s *CacheStore) SetStats(ctx context.Context, email string, stats *CachedStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statsCachePrefix+email, data, StatsCacheTTL).Err()
}

// InvalidateStats drops the cached snapshot after a balance-changing write.
func (s *CacheStore) InvalidateStats(ctx context.Context, email string) error {
	return s.client.Del(ctx, statsCachePrefix+email).Err()
}
