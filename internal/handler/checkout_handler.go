package handler

import (
	"encoding/json"
	"net/http"

	"roastery/internal/model"
	"roastery/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler starts hosted payment sessions.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Create handles POST /api/checkout requests. On success the response
// carries the hosted payment page URL; no order exists yet at this point.
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	url, err := h.service.CreateSession(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "failed to create checkout session", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.CheckoutResponse{CheckoutURL: url})
}
