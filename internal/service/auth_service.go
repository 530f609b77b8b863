package service

import (
	"context"
	"fmt"

	"roastery/internal/auth"
	"roastery/internal/model"
	"roastery/internal/repository"

	"github.com/rs/zerolog"
)

// authService implements AuthService.
type authService struct {
	adminRepo repository.AdminUserRepository
	issuer    *auth.TokenIssuer
	logger    zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(adminRepo repository.AdminUserRepository, issuer *auth.TokenIssuer, logger zerolog.Logger) AuthService {
	return &authService{
		adminRepo: adminRepo,
		issuer:    issuer,
		logger:    logger.With().Str("service", "auth").Logger(),
	}
}

// Login verifies the credentials against the stored bcrypt hash and
// issues a signed, time-limited token. Unknown users and wrong passwords
// produce the same error.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to look up admin user: %w", err)
	}

	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.Warn().Str("username", username).Msg("failed admin login attempt")
		return "", model.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("username", username).Msg("admin logged in")
	return token, nil
}
