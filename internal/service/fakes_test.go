package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/houseping/internal/db"
)

var errStoreDown = errors.New("connection refused")

// memoryStore is an in-memory UserRepository and PingRepository
type memoryStore struct {
	mu    sync.Mutex
	users map[string]*db.User
	pings map[string]*db.Ping
	err   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users: make(map[string]*db.User),
		pings: make(map[string]*db.Ping),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (m *memoryStore) UpsertUser(ctx context.Context, user *db.User) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	for _, existing := range m.users {
		if existing.Provider == user.Provider && existing.ProviderUserID == user.ProviderUserID {
			existing.Username = user.Username
			existing.Name = user.Name
			existing.Email = user.Email
			existing.Picture = user.Picture
			existing.UpdatedAt = user.UpdatedAt
			existing.LastLoginAt = user.LastLoginAt
			stored := *existing
			return &stored, nil
		}
	}

	stored := *user
	m.users[user.ID] = &stored
	result := stored
	return &result, nil
}

func (m *memoryStore) GetUser(ctx context.Context, id string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	result := *user
	return &result, nil
}

func (m *memoryStore) CreatePing(ctx context.Context, ping *db.Ping) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[ping.UserID]; !ok {
		return db.ErrNotFound
	}
	stored := *ping
	m.pings[ping.ID] = &stored
	return nil
}

func (m *memoryStore) ListPingsByUser(ctx context.Context, userID string, limit int) ([]*db.Ping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	var pings []*db.Ping
	for _, p := range m.pings {
		if p.UserID == userID {
			copied := *p
			pings = append(pings, &copied)
		}
	}
	sort.Slice(pings, func(i, j int) bool {
		return pings[i].CreatedAt.After(pings[j].CreatedAt)
	})
	if len(pings) > limit {
		pings = pings[:limit]
	}
	return pings, nil
}

func (m *memoryStore) GetPing(ctx context.Context, id string) (*db.Ping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	ping, ok := m.pings[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	result := *ping
	return &result, nil
}

func (m *memoryStore) CountPingsByUser(ctx context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	count := 0
	for _, p := range m.pings {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *memoryStore) DeletePing(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	ping, ok := m.pings[id]
	if !ok || ping.UserID != userID {
		return db.ErrNotFound
	}
	delete(m.pings, id)
	return nil
}
