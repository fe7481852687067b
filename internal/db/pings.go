package db

import (
	"context"
	"fmt"
)

const pingColumns = "id, user_id, message, created_at"

func scanPing(row interface{ Scan(dest ...any) error }) (*Ping, error) {
	ping := &Ping{}
	if err := row.Scan(&ping.ID, &ping.UserID, &ping.Message, &ping.CreatedAt); err != nil {
		return nil, translateErr(err)
	}
	return ping, nil
}

// CreatePing stores a new ping. A ping for a user that does not exist yields ErrNotFound.
func (db *DB) CreatePing(ctx context.Context, ping *Ping) error {
	_, err := db.Exec(ctx,
		"INSERT INTO pings ("+pingColumns+") VALUES ($1, $2, $3, $4)",
		ping.ID, ping.UserID, ping.Message, ping.CreatedAt,
	)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("user %s: %w", ping.UserID, ErrNotFound)
	}
	return err
}

// ListPingsByUser returns the user's most recent pings, newest first
func (db *DB) ListPingsByUser(ctx context.Context, userID string, limit int) ([]*Ping, error) {
	rows, err := db.Query(ctx,
		"SELECT "+pingColumns+" FROM pings WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pings := make([]*Ping, 0, limit)
	for rows.Next() {
		ping, err := scanPing(rows)
		if err != nil {
			return nil, err
		}
		pings = append(pings, ping)
	}

	return pings, rows.Err()
}

// GetPing retrieves a ping by ID
func (db *DB) GetPing(ctx context.Context, id string) (*Ping, error) {
	row := db.QueryRow(ctx, "SELECT "+pingColumns+" FROM pings WHERE id = $1", id)
	return scanPing(row)
}

// CountPingsByUser returns how many pings the user has posted
func (db *DB) CountPingsByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := db.QueryRow(ctx, "SELECT COUNT(*) FROM pings WHERE user_id = $1", userID).Scan(&count)
	return count, err
}

// DeletePing removes a ping owned by userID. Someone else's ping is reported as ErrNotFound.
func (db *DB) DeletePing(ctx context.Context, userID, id string) error {
	tag, err := db.Exec(ctx, "DELETE FROM pings WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
