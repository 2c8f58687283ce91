package domain

import "time"

// User represents an account holder.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Session represents an authenticated session resolved from a bearer token.
type Session struct {
	Token     string
	UserID    string
	Email     string
	CreatedAt time.Time
}
