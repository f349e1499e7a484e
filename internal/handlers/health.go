package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// Version is stamped at build time with -ldflags "-X ...handlers.Version=..."
var Version = "dev"

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger   *slog.Logger
	sessions sessionCounter
}

type sessionCounter interface {
	Len() int
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(sessions sessionCounter, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger:   logger,
		sessions: sessions,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	Version        string    `json:"version"`
	ActiveSessions int       `json:"activeSessions"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:         "healthy",
		Timestamp:      time.Now().UTC(),
		Version:        Version,
		ActiveSessions: h.sessions.Len(),
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
