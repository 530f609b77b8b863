package repository

import (
	"context"
	"fmt"

	"roastery/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// contactRepository implements ContactRepository using PostgreSQL.
type contactRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewContactRepository creates a new PostgreSQL-backed contact message repository.
func NewContactRepository(pool *pgxpool.Pool, logger zerolog.Logger) ContactRepository {
	return &contactRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "contact").Logger(),
	}
}

// Create inserts a new contact message and fills its ID and CreatedAt.
func (r *contactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, message)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, msg.Name, msg.Email, msg.Message).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create contact message")
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	return nil
}

// ListAll retrieves all contact messages, newest first.
func (r *contactRepository) ListAll(ctx context.Context) ([]model.ContactMessage, error) {
	query := `
		SELECT id, name, email, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query contact messages")
		return nil, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer rows.Close()

	var messages []model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan contact message row")
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating contact message rows")
		return nil, fmt.Errorf("error iterating contact messages: %w", err)
	}

	return messages, nil
}
