package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"wallet/internal/domain"
	"wallet/internal/redis"
	"wallet/internal/repository"
)

// AuthService handles signup, login and session resolution. Sessions are
// opaque tokens in Redis; there is no ambient logged-in user anywhere.
type AuthService struct {
	userRepo    repository.UserRepository
	accountRepo repository.AccountRepository
	sessions    redis.SessionStoreInterface
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, accountRepo repository.AccountRepository, sessions redis.SessionStoreInterface) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		sessions:    sessions,
	}
}

// SignupRequest contains the parameters for registering a user.
type SignupRequest struct {
	FullName string
	Email    string
	Password string
}

// Signup registers a user and opens a zero-balance account with a freshly
// issued card number, then starts a session.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*domain.Session, error) {
	if strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Password) == "" {
		return nil, ErrMissingSignupField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	account := &domain.Account{
		ID:         uuid.New().String(),
		UserID:     user.ID,
		Email:      user.Email,
		CardNumber: newCardNumber(),
		Balance:    0,
		CreatedAt:  time.Now(),
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return s.startSession(ctx, user)
}

// Login verifies credentials and starts a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.startSession(ctx, user)
}

// Resolve maps a bearer token to its session.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	stored, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, ErrSessionNotFound
	}

	return &domain.Session{
		Token:     token,
		UserID:    stored.UserID,
		Email:     stored.Email,
		CreatedAt: stored.CreatedAt,
	}, nil
}

// Logout revokes a session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *AuthService) startSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	session := &domain.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: time.Now(),
	}

	err := s.sessions.Put(ctx, session.Token, redis.StoredSession{
		UserID:    session.UserID,
		Email:     session.Email,
		CreatedAt: session.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// newCardNumber issues a 16-digit card number. Not a payment-network PAN;
// uniqueness is enforced by the accounts table.
func newCardNumber() string {
	var b strings.Builder
	b.WriteString("4") // keep the familiar leading digit
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, "%d", rand.Intn(10))
	}
	return b.String()
}
