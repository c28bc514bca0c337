package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/napowa/napowa-server/internal/api/http/respond"
	"github.com/napowa/napowa-server/internal/logger"
)

const readinessTimeout = 2 * time.Second

// Pinger is a dependency whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health serves liveness and readiness probes.
type Health struct {
	checks map[string]Pinger
	logger *logger.Logger
}

// NewHealth creates a Health handler probing the given named dependencies.
func NewHealth(checks map[string]Pinger, logger *logger.Logger) *Health {
	return &Health{checks: checks, logger: logger}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Live handles GET /healthz.
func (h *Health) Live(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Ready handles GET /readyz. Any failing dependency makes the service unready.
func (h *Health) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	results := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			h.logger.Warn("Health handler: dependency unavailable", "dependency", name, "error", err.Error())
			results[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	body := healthResponse{Status: "ready", Checks: results}
	if status != http.StatusOK {
		body.Status = "unavailable"
	}
	respond.JSON(w, status, body)
}
