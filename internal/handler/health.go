package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dukerupert/vendas/internal/middleware"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler answers liveness probes by pinging the database.
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

// ServeHTTP handles GET /health
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		middleware.GetLogger(r.Context()).Error("health check failed", "error", err)
		Text(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	Text(w, http.StatusOK, "OK")
}

// Banner handles GET /
func Banner(w http.ResponseWriter, r *http.Request) {
	Text(w, http.StatusOK, "API de Vendas está operacional!")
}
