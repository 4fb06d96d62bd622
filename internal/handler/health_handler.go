package handler

import (
	"context"
	"net/http"
	"time"

	"hackadmin/internal/container"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	base
	container *container.Container
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(container *container.Container) *HealthHandler {
	return &HealthHandler{base: base{logger: container.GetLogger()}, container: container}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Version      string            `json:"version"`
	Service      string            `json:"service"`
	Backend      string            `json:"backend"`
	Dependencies map[string]string `json:"dependencies"`
}

// Check handles GET /health. Optional dependencies never make the service
// unhealthy; they are reported as degraded.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := h.container.Health(ctx)
	status := "healthy"
	for _, s := range deps {
		if s == "unhealthy" {
			status = "degraded"
		}
	}

	h.respondJSON(w, http.StatusOK, HealthResponse{
		Status:       status,
		Timestamp:    time.Now().UTC(),
		Version:      "1.0.0",
		Service:      "hackadmin",
		Backend:      h.container.Backend.BaseURL(),
		Dependencies: deps,
	})
}
