package redis

import "context"

// SessionStoreInterface defines the interface for session operations.
type SessionStoreInterface interface {
	Put(ctx context.Context, token string, session StoredSession) error
	Get(ctx context.Context, token string) (*StoredSession, error)
	Delete(ctx context.Context, token string) error
}

// StatsCacheInterface defines the interface for dashboard stat caching.
type StatsCacheInterface interface {
	GetStats(ctx context.Context, email string) (*CachedStats, error)
	SetStats(ctx context.Context, email string, stats *CachedStats) error
	InvalidateStats(ctx context.Context, email string) error
}

// Ensure concrete types implement interfaces.
var (
	_ SessionStoreInterface = (*SessionStore)(nil)
	_ StatsCacheInterface   = (*CacheStore)(nil)
)
