package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"roastery/internal/payment"
	"roastery/internal/service"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v81"
)

// maxWebhookBody caps the webhook payload size. Stripe events are small;
// anything larger is not a legitimate delivery.
const maxWebhookBody = 64 * 1024

// WebhookHandler receives payment provider event deliveries.
type WebhookHandler struct {
	orders   service.OrderService
	payments payment.Client
	logger   zerolog.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(orders service.OrderService, payments payment.Client, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		orders:   orders,
		payments: payments,
		logger:   logger.With().Str("handler", "webhook").Logger(),
	}
}

// Handle processes POST /api/stripe/webhook deliveries. The signature is
// verified before any payload content is trusted. Only completed checkout
// sessions create orders; every other event type is acknowledged and
// ignored. Duplicate deliveries are acknowledged without creating a
// second order so Stripe stops retrying.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read payload", h.logger)
		return
	}

	event, err := h.payments.VerifyWebhook(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		h.logger.Warn().Err(err).Msg("webhook signature verification failed")
		writeError(w, http.StatusBadRequest, "invalid signature", h.logger)
		return
	}

	if event.Type != "checkout.session.completed" {
		h.logger.Debug().Str("event_type", string(event.Type)).Msg("ignoring webhook event")
		writeJSON(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	if event.Data == nil {
		writeError(w, http.StatusBadRequest, "malformed event payload", h.logger)
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		writeError(w, http.StatusBadRequest, "malformed event payload", h.logger)
		return
	}

	order, created, err := h.orders.ProcessCompletedSession(r.Context(), &session)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", session.ID).Msg("failed to process completed session")
		writeError(w, http.StatusInternalServerError, "failed to process event", h.logger)
		return
	}

	if !created {
		h.logger.Info().Str("session_id", session.ID).Msg("duplicate webhook delivery ignored")
	} else {
		h.logger.Info().
			Str("session_id", session.ID).
			Str("order_id", order.ID.String()).
			Float64("total", order.TotalAmount).
			Msg("order created from webhook")
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
