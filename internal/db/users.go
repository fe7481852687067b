package db

import (
	"context"
)

const userColumns = "id, provider, provider_user_id, username, name, email, picture, created_at, updated_at, last_login_at"

func scanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	user := &User{}
	err := row.Scan(&user.ID, &user.Provider, &user.ProviderUserID, &user.Username, &user.Name,
		&user.Email, &user.Picture, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return user, nil
}

// UpsertUser inserts the user or, when (provider, provider_user_id) already exists,
// refreshes its profile fields and login time. The stored row is returned, so the ID
// of an existing user wins over the freshly generated one.
func (db *DB) UpsertUser(ctx context.Context, user *User) (*User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (`+userColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (provider, provider_user_id) DO UPDATE SET
			username = EXCLUDED.username,
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			picture = EXCLUDED.picture,
			updated_at = EXCLUDED.updated_at,
			last_login_at = EXCLUDED.last_login_at
		 RETURNING `+userColumns,
		user.ID, user.Provider, user.ProviderUserID, user.Username, user.Name,
		user.Email, user.Picture, user.CreatedAt, user.UpdatedAt, user.LastLoginAt,
	)
	return scanUser(row)
}

// GetUser retrieves a user by ID
func (db *DB) GetUser(ctx context.Context, id string) (*User, error) {
	row := db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row)
}
