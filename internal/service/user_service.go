package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/houseping/internal/db"
	"github.com/houseping/internal/domain"
)

// userService implements the UserService interface
type userService struct {
	users  domain.UserRepository
	logger *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(users domain.UserRepository, logger *slog.Logger) domain.UserService {
	return &userService{
		users:  users,
		logger: logger,
	}
}

// LoginWithIdentity creates the account on first login and refreshes its profile afterwards
func (s *userService) LoginWithIdentity(ctx context.Context, identity domain.Identity) (*db.User, error) {
	if strings.TrimSpace(identity.Provider) == "" || strings.TrimSpace(identity.Subject) == "" {
		return nil, domain.NewDomainError(domain.ErrProfileInvalid.Code, domain.ErrProfileInvalid.Message,
			fmt.Errorf("identity requires provider and subject"))
	}

	user := db.NewUser(identity.Provider, identity.Subject)
	user.Username = identity.Username
	user.Name = identity.Name
	user.Email = identity.Email
	user.Picture = identity.Picture

	stored, err := s.users.UpsertUser(ctx, user)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to upsert user", "provider", identity.Provider, "error", err)
		return nil, domain.WrapDatabaseOperation("upsert user", err)
	}

	s.logger.InfoContext(ctx, "user logged in", "userID", stored.ID, "provider", stored.Provider)
	return stored, nil
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(ctx context.Context, userID string) (*db.User, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, domain.WrapUserNotFound(userID, err)
		}
		s.logger.ErrorContext(ctx, "failed to get user", "userID", userID, "error", err)
		return nil, domain.WrapDatabaseOperation("get user", err)
	}
	return user, nil
}
