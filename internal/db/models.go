package db

import (
	"time"

	"github.com/google/uuid"
)

// User is an account created on first login through an identity provider.
// A user is keyed by (Provider, ProviderUserID); logging in again refreshes the profile fields.
type User struct {
	ID             string    `json:"id" db:"id"`
	Provider       string    `json:"provider" db:"provider"`
	ProviderUserID string    `json:"-" db:"provider_user_id"`
	Username       string    `json:"username" db:"username"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Picture        string    `json:"picture" db:"picture"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
	LastLoginAt    time.Time `json:"last_login_at" db:"last_login_at"`
}

// Ping is a timestamped check-in posted by a user
type Ping struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewUser creates a new User with a generated UUID
func NewUser(provider, providerUserID string) *User {
	now := time.Now().UTC()
	return &User{
		ID:             uuid.New().String(),
		Provider:       provider,
		ProviderUserID: providerUserID,
		CreatedAt:      now,
		UpdatedAt:      now,
		LastLoginAt:    now,
	}
}

// NewPing creates a new Ping with a generated UUID
func NewPing(userID, message string) *Ping {
	return &Ping{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}
