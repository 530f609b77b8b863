package service

import (
	"context"
	"fmt"
	"strings"

	"roastery/internal/model"
	"roastery/internal/repository"

	"github.com/rs/zerolog"
)

// contactService implements ContactService.
type contactService struct {
	repo   repository.ContactRepository
	logger zerolog.Logger
}

// NewContactService creates a new contact service.
func NewContactService(repo repository.ContactRepository, logger zerolog.Logger) ContactService {
	return &contactService{
		repo:   repo,
		logger: logger.With().Str("service", "contact").Logger(),
	}
}

// Submit validates and stores a contact message.
func (s *contactService) Submit(ctx context.Context, msg *model.ContactMessage) error {
	if msg == nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "Message payload is required")
	}
	if strings.TrimSpace(msg.Name) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Name is required")
	}
	if strings.TrimSpace(msg.Email) == "" {
		return model.ErrMissingEmail
	}
	if strings.TrimSpace(msg.Message) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Message is required")
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return fmt.Errorf("failed to store contact message: %w", err)
	}

	s.logger.Info().Int64("message_id", msg.ID).Msg("contact message stored")
	return nil
}

// ListAll retrieves all contact messages, newest first.
func (s *contactService) ListAll(ctx context.Context) ([]model.ContactMessage, error) {
	messages, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return messages, nil
}
