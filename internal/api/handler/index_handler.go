package handler

import (
	"context"
	"customer-service/internal/api/handler/dto"
	"log/slog"
	"net/http"
	"time"
)

const (
	serviceName    = "Customer REST API Service"
	serviceVersion = "1.0"

	healthCheckTimeout = 2 * time.Second
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type IndexHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewIndexHandler serves the root and health endpoints. db may be nil, in which case
// health always reports ok.
func NewIndexHandler(db Pinger, l *slog.Logger) *IndexHandler {
	return &IndexHandler{
		db:     db,
		logger: l.With("component", "IndexHandler"),
	}
}

// Index handles GET /
// @Summary Service information
// @Tags Service
// @Produce json
// @Success 200 {object} dto.IndexResponse "Service name, version and resource path"
// @Router / [get]
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, dto.IndexResponse{
		Name:    serviceName,
		Version: serviceVersion,
		Paths:   "/customers",
	})
}

// Health handles GET /health
// @Summary Health check
// @Tags Service
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service and database are reachable"
// @Failure 503 {object} dto.HealthResponse "Database is unreachable"
// @Router /health [get]
func (h *IndexHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.WarnContext(r.Context(), "Health check failed", slog.Any("error", err))
			respondJSON(w, http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
			return
		}
	}
	respondJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}
