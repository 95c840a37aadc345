package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Quotable/internal/core/users"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.Repository {
	return &postgresUserRepo{db: db}
}

// GetByID retrieves a user by their verified identity
func (r *postgresUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	query := `
		SELECT id, handle, is_anonymous, created_at
		FROM users
		WHERE id = $1
	`

	var user users.User

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Handle, &user.IsAnonymous, &user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
