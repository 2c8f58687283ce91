package tests

import (
	"context"
	"sync"
	"sync/atomic"

	"wallet/internal/domain"
	"wallet/internal/redis"
	"wallet/internal/repository"
	"wallet/internal/service"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User // keyed by email

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	m.users[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ID == id {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ──────────────────────────────────────────────
// MOCK ACCOUNT REPOSITORY
// ──────────────────────────────────────────────

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account // keyed by card number

	// Counters for verification
	WithdrawCallCount int32
	DepositCallCount  int32

	// Error injection
	WithdrawError error
	DepositError  error
}

// NewMockAccountRepository creates a new mock account repository.
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// AddAccount seeds an account into the mock repository.
func (m *MockAccountRepository) AddAccount(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.CardNumber] = account
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.CardNumber] = account
	return nil
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.accounts {
		if a.Email == email {
			copy := *a
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockAccountRepository) GetByCardNumber(ctx context.Context, cardNumber string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[cardNumber]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *account
	return &copy, nil
}

func (m *MockAccountRepository) Withdraw(ctx context.Context, cardNumber string, amount float64) error {
	atomic.AddInt32(&m.WithdrawCallCount, 1)
	if m.WithdrawError != nil {
		return m.WithdrawError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[cardNumber]
	if !ok {
		return repository.ErrNotFound
	}
	if account.Balance < amount {
		return repository.ErrInsufficientFunds
	}
	account.Balance -= amount
	return nil
}

func (m *MockAccountRepository) Deposit(ctx context.Context, cardNumber string, amount float64) error {
	atomic.AddInt32(&m.DepositCallCount, 1)
	if m.DepositError != nil {
		return m.DepositError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[cardNumber]
	if !ok {
		return repository.ErrNotFound
	}
	account.Balance += amount
	return nil
}

// Balance returns the current balance for test assertions.
func (m *MockAccountRepository) Balance(cardNumber string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[cardNumber]; ok {
		return a.Balance
	}
	return 0
}

// ──────────────────────────────────────────────
// MOCK TRANSACTION REPOSITORY
// ──────────────────────────────────────────────

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu  sync.RWMutex
	txs []*domain.Transaction

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockTransactionRepository creates a new mock transaction repository.
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// AddTransaction seeds a transaction into the mock repository.
func (m *MockTransactionRepository) AddTransaction(tx *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txs = append(m.txs, tx)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *tx
	m.txs = append(m.txs, &copy)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, tx := range m.txs {
		if tx.ID == id {
			copy := *tx
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockTransactionRepository) GetByIdempotencyKey(ctx context.Context, email, key string) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, tx := range m.txs {
		if tx.Email == email && tx.IdempotencyKey == key {
			copy := *tx
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockTransactionRepository) UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tx := range m.txs {
		if tx.ID == id {
			tx.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *MockTransactionRepository) ListByEmail(ctx context.Context, email string, limit int) ([]*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	// Newest first: the mock appends in order, so walk backwards.
	for i := len(m.txs) - 1; i >= 0 && len(out) < limit; i-- {
		if m.txs[i].Email == email {
			copy := *m.txs[i]
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (m *MockTransactionRepository) TotalsByEmail(ctx context.Context, email string) (repository.Totals, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var totals repository.Totals
	for _, tx := range m.txs {
		if tx.Email == email && tx.Status == domain.TransactionStatusSuccess {
			totals.Count++
			totals.Volume += tx.Amount
		}
	}
	return totals, nil
}

func (m *MockTransactionRepository) SumByKind(ctx context.Context, email string, kind domain.TransactionKind) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum float64
	for _, tx := range m.txs {
		if tx.Email == email && tx.Kind == kind && tx.Status == domain.TransactionStatusSuccess {
			sum += tx.Amount
		}
	}
	return sum, nil
}

// Count returns the number of stored transactions for test assertions.
func (m *MockTransactionRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.txs)
}

// ──────────────────────────────────────────────
// MOCK NOTIFIER
// ──────────────────────────────────────────────

// MockNotifier records notifications for assertions.
type MockNotifier struct {
	mu            sync.Mutex
	notifications []service.Notification
}

// NewMockNotifier creates a new mock notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Notify(ctx context.Context, n service.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, n)
}

// All returns a copy of every recorded notification.
func (m *MockNotifier) All() []service.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]service.Notification, len(m.notifications))
	copy(out, m.notifications)
	return out
}

// CountBySeverity returns how many notifications carry the given severity.
func (m *MockNotifier) CountBySeverity(severity service.NotificationSeverity) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, notif := range m.notifications {
		if notif.Severity == severity {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────
// MOCK SESSION STORE
// ──────────────────────────────────────────────

// MockSessionStore is an in-memory implementation of the session store.
type MockSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]redis.StoredSession
}

// NewMockSessionStore creates a new mock session store.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		sessions: make(map[string]redis.StoredSession),
	}
}

func (m *MockSessionStore) Put(ctx context.Context, token string, session redis.StoredSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = session
	return nil
}

func (m *MockSessionStore) Get(ctx context.Context, token string) (*redis.StoredSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// ──────────────────────────────────────────────
// MOCK STATS CACHE
// ──────────────────────────────────────────────

// MockStatsCache is an in-memory implementation of the stats cache.
type MockStatsCache struct {
	mu    sync.RWMutex
	stats map[string]*redis.CachedStats

	// Counters for verification
	SetCallCount        int32
	InvalidateCallCount int32
}

// NewMockStatsCache creates a new mock stats cache.
func NewMockStatsCache() *MockStatsCache {
	return &MockStatsCache{
		stats: make(map[string]*redis.CachedStats),
	}
}

func (m *MockStatsCache) GetStats(ctx context.Context, email string) (*redis.CachedStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.stats[email]; ok {
		copy := *s
		return &copy, nil
	}
	return nil, nil
}

func (m *MockStatsCache) SetStats(ctx context.Context, email string, stats *redis.CachedStats) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *stats
	m.stats[email] = &copy
	return nil
}

func (m *MockStatsCache) InvalidateStats(ctx context.Context, email string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stats, email)
	return nil
}

// ──────────────────────────────────────────────
// STUB PROCESSORS
// ──────────────────────────────────────────────

// CountingProcessor approves instantly and counts invocations.
type CountingProcessor struct {
	CallCount int32
}

func (p *CountingProcessor) Process(ctx context.Context, op *domain.Operation) (bool, error) {
	atomic.AddInt32(&p.CallCount, 1)
	return true, nil
}

// DecliningProcessor refuses every operation without error.
type DecliningProcessor struct{}

func (p *DecliningProcessor) Process(ctx context.Context, op *domain.Operation) (bool, error) {
	return false, nil
}

// BlockingProcessor holds operations until released, to exercise the
// in-flight guard.
type BlockingProcessor struct {
	Started chan struct{}
	Release chan struct{}
}

// NewBlockingProcessor creates a new blocking processor.
func NewBlockingProcessor() *BlockingProcessor {
	return &BlockingProcessor{
		Started: make(chan struct{}, 1),
		Release: make(chan struct{}),
	}
}

func (p *BlockingProcessor) Process(ctx context.Context, op *domain.Operation) (bool, error) {
	p.Started <- struct{}{}
	select {
	case <-p.Release:
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Interface conformance checks.
var (
	_ repository.UserRepository        = (*MockUserRepository)(nil)
	_ repository.AccountRepository     = (*MockAccountRepository)(nil)
	_ repository.TransactionRepository = (*MockTransactionRepository)(nil)
	_ service.Notifier                 = (*MockNotifier)(nil)
	_ redis.SessionStoreInterface      = (*MockSessionStore)(nil)
	_ redis.StatsCacheInterface        = (*MockStatsCache)(nil)
	_ service.Processor                = (*CountingProcessor)(nil)
	_ service.Processor                = (*DecliningProcessor)(nil)
	_ service.Processor                = (*BlockingProcessor)(nil)
)
