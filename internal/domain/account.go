package domain

import "time"

// Account holds the stored value behind a user's card.
type Account struct {
	ID         string
	UserID     string
	Email      string
	CardNumber string // 16 digits, no separators
	Balance    float64
	CreatedAt  time.Time
}
