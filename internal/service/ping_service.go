package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/houseping/internal/db"
	"github.com/houseping/internal/domain"
	"github.com/houseping/internal/validation"
)

// pingService implements the PingService interface
type pingService struct {
	pings  domain.PingRepository
	logger *slog.Logger
}

// NewPingService creates a new ping service
func NewPingService(pings domain.PingRepository, logger *slog.Logger) domain.PingService {
	return &pingService{
		pings:  pings,
		logger: logger,
	}
}

// CreatePing posts a check-in for the user
func (s *pingService) CreatePing(ctx context.Context, userID string, req domain.CreatePingRequest) (*db.Ping, error) {
	message, err := validation.NormalizePingMessage(req.Message)
	if err != nil {
		s.logger.WarnContext(ctx, "invalid ping message", "userID", userID, "error", err)
		return nil, domain.WrapValidationError("message", err)
	}

	ping := db.NewPing(userID, message)
	if err := s.pings.CreatePing(ctx, ping); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, domain.WrapUserNotFound(userID, err)
		}
		s.logger.ErrorContext(ctx, "failed to create ping", "userID", userID, "error", err)
		return nil, domain.WrapDatabaseOperation("create ping", err)
	}

	s.logger.InfoContext(ctx, "ping created", "pingID", ping.ID, "userID", userID)
	return ping, nil
}

// ListPings returns the user's pings, newest first
func (s *pingService) ListPings(ctx context.Context, userID string, limit int) ([]*db.Ping, error) {
	limit, err := validation.NormalizeLimit(limit)
	if err != nil {
		return nil, domain.WrapValidationError("limit", err)
	}

	pings, err := s.pings.ListPingsByUser(ctx, userID, limit)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list pings", "userID", userID, "error", err)
		return nil, domain.WrapDatabaseOperation("list pings", err)
	}
	return pings, nil
}

// GetPing returns one of the user's pings. Pings of other users are reported as not found.
func (s *pingService) GetPing(ctx context.Context, userID, pingID string) (*db.Ping, error) {
	if err := validation.ValidateID(pingID); err != nil {
		return nil, domain.WrapValidationError("ping id", err)
	}

	ping, err := s.pings.GetPing(ctx, pingID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, domain.WrapPingNotFound(pingID, err)
		}
		s.logger.ErrorContext(ctx, "failed to get ping", "pingID", pingID, "error", err)
		return nil, domain.WrapDatabaseOperation("get ping", err)
	}
	if ping.UserID != userID {
		return nil, domain.WrapPingNotFound(pingID, nil)
	}
	return ping, nil
}

// DeletePing removes one of the user's pings
func (s *pingService) DeletePing(ctx context.Context, userID, pingID string) error {
	if err := validation.ValidateID(pingID); err != nil {
		return domain.WrapValidationError("ping id", err)
	}

	if err := s.pings.DeletePing(ctx, userID, pingID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return domain.WrapPingNotFound(pingID, err)
		}
		s.logger.ErrorContext(ctx, "failed to delete ping", "pingID", pingID, "error", err)
		return domain.WrapDatabaseOperation("delete ping", err)
	}

	s.logger.InfoContext(ctx, "ping deleted", "pingID", pingID, "userID", userID)
	return nil
}

// Summary returns how many pings the user has posted and the latest one
func (s *pingService) Summary(ctx context.Context, userID string) (*domain.PingSummary, error) {
	count, err := s.pings.CountPingsByUser(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to count pings", "userID", userID, "error", err)
		return nil, domain.WrapDatabaseOperation("count pings", err)
	}

	summary := &domain.PingSummary{Count: count}
	if count == 0 {
		return summary, nil
	}

	latest, err := s.pings.ListPingsByUser(ctx, userID, 1)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get latest ping", "userID", userID, "error", err)
		return nil, domain.WrapDatabaseOperation("latest ping", err)
	}
	if len(latest) > 0 {
		summary.Latest = latest[0]
	}
	return summary, nil
}
