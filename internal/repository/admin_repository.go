package repository

import (
	"context"
	"errors"
	"fmt"

	"roastery/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// adminUserRepository implements AdminUserRepository using PostgreSQL.
type adminUserRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAdminUserRepository creates a new PostgreSQL-backed admin user repository.
func NewAdminUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) AdminUserRepository {
	return &adminUserRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "admin_user").Logger(),
	}
}

// GetByUsername retrieves an admin user by username. Returns nil when absent.
func (r *adminUserRepository) GetByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	query := `
		SELECT id, username, password_hash
		FROM admin_users
		WHERE username = $1
	`

	var u model.AdminUser
	err := r.pool.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("username", username).Msg("admin user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("username", username).Msg("failed to query admin user")
		return nil, fmt.Errorf("failed to query admin user: %w", err)
	}

	return &u, nil
}
