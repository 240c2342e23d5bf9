package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, envelope Envelope, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func success(w http.ResponseWriter, data any, logger *slog.Logger) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data}, logger)
}

func failure(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, Envelope{Success: false, Error: message}, logger)
}

func badRequest(w http.ResponseWriter, message string, logger *slog.Logger) {
	failure(w, http.StatusBadRequest, message, logger)
}

func notFound(w http.ResponseWriter, message string, logger *slog.Logger) {
	failure(w, http.StatusNotFound, message, logger)
}

// internalError logs err and answers 500 without leaking it.
func internalError(w http.ResponseWriter, err error, logger *slog.Logger) {
	logger.Error("unhandled error", "error", err)
	failure(w, http.StatusInternalServerError, "internal server error", logger)
}
