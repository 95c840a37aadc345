package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Quotable/internal/core/quotes"
)

type postgresQuoteRepo struct {
	db *sql.DB
}

// NewQuoteRepository creates a new PostgreSQL quote repository
func NewQuoteRepository(db *sql.DB) quotes.Repository {
	return &postgresQuoteRepo{db: db}
}

// Create inserts a new quote and fills the server-assigned fields
func (r *postgresQuoteRepo) Create(ctx context.Context, quote *quotes.Quote) error {
	query := `
		INSERT INTO quotes (quote, author, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, likes, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query, quote.Text, quote.Author, quote.UserID).Scan(
		&quote.ID, &quote.Likes, &quote.CreatedAt, &quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}

	return nil
}

// GetByID retrieves a quote by id
func (r *postgresQuoteRepo) GetByID(ctx context.Context, id int64) (*quotes.Quote, error) {
	query := `
		SELECT id, quote, author, likes, user_id, created_at, updated_at
		FROM quotes
		WHERE id = $1
	`

	var quote quotes.Quote

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&quote.ID, &quote.Text, &quote.Author, &quote.Likes,
		&quote.UserID, &quote.CreatedAt, &quote.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, quotes.ErrQuoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	return &quote, nil
}

// Delete removes a quote. Vote rows go with it via ON DELETE CASCADE.
func (r *postgresQuoteRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return quotes.ErrQuoteNotFound
	}

	return nil
}
