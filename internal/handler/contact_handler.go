package handler

import (
	"encoding/json"
	"net/http"

	"roastery/internal/model"
	"roastery/internal/service"

	"github.com/rs/zerolog"
)

// ContactHandler handles storefront contact form submissions.
type ContactHandler struct {
	service service.ContactService
	logger  zerolog.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(service service.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  logger.With().Str("handler", "contact").Logger(),
	}
}

// Create handles POST /api/contact requests.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var msg model.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.Submit(r.Context(), &msg); err != nil {
		writeServiceError(w, err, "failed to store message", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}
