package domain

import (
	"context"

	"github.com/houseping/internal/db"
)

// ============================================================================
// Primary Ports (Application Use Cases)
// ============================================================================

// UserService defines the primary port for account use cases
type UserService interface {
	LoginWithIdentity(ctx context.Context, identity Identity) (*db.User, error)
	GetUser(ctx context.Context, userID string) (*db.User, error)
}

// PingService defines the primary port for ping use cases
type PingService interface {
	CreatePing(ctx context.Context, userID string, req CreatePingRequest) (*db.Ping, error)
	ListPings(ctx context.Context, userID string, limit int) ([]*db.Ping, error)
	GetPing(ctx context.Context, userID, pingID string) (*db.Ping, error)
	DeletePing(ctx context.Context, userID, pingID string) error
	Summary(ctx context.Context, userID string) (*PingSummary, error)
}

// ============================================================================
// Secondary Ports (Infrastructure)
// ============================================================================

// UserRepository is implemented by *db.DB
type UserRepository interface {
	UpsertUser(ctx context.Context, user *db.User) (*db.User, error)
	GetUser(ctx context.Context, id string) (*db.User, error)
}

// PingRepository is implemented by *db.DB
type PingRepository interface {
	CreatePing(ctx context.Context, ping *db.Ping) error
	ListPingsByUser(ctx context.Context, userID string, limit int) ([]*db.Ping, error)
	GetPing(ctx context.Context, id string) (*db.Ping, error)
	CountPingsByUser(ctx context.Context, userID string) (int, error)
	DeletePing(ctx context.Context, userID, id string) error
}

// ============================================================================
// Request/Response Types
// ============================================================================

// Identity is the subset of an identity provider's userinfo response that we keep
type Identity struct {
	Provider string
	Subject  string
	Username string
	Name     string
	Email    string
	Picture  string
}

// CreatePingRequest represents the request to post a ping
type CreatePingRequest struct {
	Message string `json:"message"`
}

// PingSummary is the count and most recent ping of one user
type PingSummary struct {
	Count  int      `json:"count"`
	Latest *db.Ping `json:"latest"`
}
