package tests

import (
	"context"
	"errors"
	"testing"

	"wallet/internal/service"
)

type authFixture struct {
	users    *MockUserRepository
	accounts *MockAccountRepository
	sessions *MockSessionStore
	svc      *service.AuthService
}

func newAuthFixture() *authFixture {
	users := NewMockUserRepository()
	accounts := NewMockAccountRepository()
	sessions := NewMockSessionStore()
	return &authFixture{
		users:    users,
		accounts: accounts,
		sessions: sessions,
		svc:      service.NewAuthService(users, accounts, sessions),
	}
}

func TestSignup_CreatesUserAccountAndSession(t *testing.T) {
	t.Parallel()

	f := newAuthFixture()

	session, err := f.svc.Signup(context.Background(), service.SignupRequest{
		FullName: "Test User",
		Email:    "user@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if session.Token == "" {
		t.Error("expected a session token")
	}
	if session.Email != "user@example.com" {
		t.Errorf("expected session email user@example.com, got %s", session.Email)
	}

	user, err := f.users.GetByEmail(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password must be stored hashed, not in clear")
	}

	account, err := f.accounts.GetByEmail(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("account not opened: %v", err)
	}
	if len(account.CardNumber) != 16 {
		t.Errorf("expected a 16-digit card number, got %q", account.CardNumber)
	}
	if account.Balance != 0 {
		t.Errorf("new account must start at zero balance, got %v", account.Balance)
	}

	resolved, err := f.svc.Resolve(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.UserID != user.ID {
		t.Errorf("resolved session user %s, want %s", resolved.UserID, user.ID)
	}
}

func TestSignup_MissingFields(t *testing.T) {
	t.Parallel()

	f := newAuthFixture()

	testCases := []service.SignupRequest{
		{FullName: "", Email: "a@b.co", Password: "pw"},
		{FullName: "Name", Email: "", Password: "pw"},
		{FullName: "Name", Email: "a@b.co", Password: "   "},
	}
	for _, req := range testCases {
		if _, err := f.svc.Signup(context.Background(), req); !errors.Is(err, service.ErrMissingSignupField) {
			t.Errorf("Signup(%+v): expected ErrMissingSignupField, got %v", req, err)
		}
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	f := newAuthFixture()
	req := service.SignupRequest{FullName: "Test User", Email: "user@example.com", Password: "hunter22"}

	if _, err := f.svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := f.svc.Signup(context.Background(), req); !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	f := newAuthFixture()
	if _, err := f.svc.Signup(context.Background(), service.SignupRequest{
		FullName: "Test User",
		Email:    "user@example.com",
		Password: "hunter22",
	}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	session, err := f.svc.Login(context.Background(), "user@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if session.Token == "" {
		t.Error("expected a session token")
	}

	if _, err := f.svc.Login(context.Background(), "user@example.com", "wrong"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.svc.Login(context.Background(), "nobody@example.com", "hunter22"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := f.svc.Login(context.Background(), "", ""); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("blank credentials: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogout_RevokesSession(t *testing.T) {
	t.Parallel()

	f := newAuthFixture()
	session, err := f.svc.Signup(context.Background(), service.SignupRequest{
		FullName: "Test User",
		Email:    "user@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if err := f.svc.Logout(context.Background(), session.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := f.svc.Resolve(context.Background(), session.Token); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after logout, got %v", err)
	}
}

func TestResolve_EmptyOrUnknownToken(t *testing.T) {
	t.Parallel()

	f := newAuthFixture()

	if _, err := f.svc.Resolve(context.Background(), ""); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("empty token: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := f.svc.Resolve(context.Background(), "no-such-token"); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("unknown token: expected ErrSessionNotFound, got %v", err)
	}
}
