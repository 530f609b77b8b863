package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"roastery/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeServiceError maps a service failure to a response: domain errors
// carry a client-safe message and become 400s, anything else is a 500
// with the fallback message.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, http.StatusBadRequest, domainErr.Message, logger)
		return
	}
	logger.Error().Err(err).Msg(fallback)
	writeError(w, http.StatusInternalServerError, fallback, logger)
}
