package users

import (
	"context"
	"database/sql"
	"errors"

	"attendease/internal/model"
)

// Repository reads user accounts from Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetByUsername looks a user up case-insensitively. Returns nil when no
// account matches.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, full_name, role, created_at
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`, username)
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
