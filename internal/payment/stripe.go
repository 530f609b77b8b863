// Package payment wraps the Stripe API behind a narrow interface so the
// checkout and webhook services can be tested without network calls.
package payment

import (
	"context"
	"fmt"

	"roastery/internal/config"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
)

// Client is the boundary to the payment provider.
type Client interface {
	// CreateCheckoutSession opens a hosted checkout session and returns it.
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)

	// SessionLineItems lists the line items of an existing session. Used
	// only by the webhook reconciliation fallback when metadata is missing.
	SessionLineItems(ctx context.Context, sessionID string) ([]*stripe.LineItem, error)

	// VerifyWebhook checks the Stripe-Signature header against the webhook
	// secret and returns the parsed event. Payload content must not be
	// trusted before this succeeds.
	VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error)
}

type stripeClient struct {
	api           *client.API
	webhookSecret string
	logger        zerolog.Logger
}

// NewClient creates a Stripe-backed payment client.
func NewClient(cfg config.StripeConfig, logger zerolog.Logger) Client {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &stripeClient{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
		logger:        logger.With().Str("component", "payment").Logger(),
	}
}

func (c *stripeClient) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	params.Context = ctx

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to create checkout session")
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	c.logger.Debug().Str("session_id", session.ID).Msg("checkout session created")
	return session, nil
}

func (c *stripeClient) SessionLineItems(ctx context.Context, sessionID string) ([]*stripe.LineItem, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	params.Context = ctx

	var items []*stripe.LineItem
	iter := c.api.CheckoutSessions.ListLineItems(params)
	for iter.Next() {
		items = append(items, iter.LineItem())
	}
	if err := iter.Err(); err != nil {
		c.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to list session line items")
		return nil, fmt.Errorf("failed to list session line items: %w", err)
	}

	return items, nil
}

func (c *stripeClient) VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return stripe.Event{}, fmt.Errorf("webhook signature verification failed: %w", err)
	}
	return event, nil
}
