package handlers

import (
	"net/http"

	"github.com/alfagnish/usuarios-api/internal/config"
	"github.com/alfagnish/usuarios-api/internal/events"
	"github.com/alfagnish/usuarios-api/internal/users"
)

// SystemHandler serves the root greeting and the health check.
type SystemHandler struct {
	cfg   *config.Config
	store *users.Store
	hub   *events.Hub
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(cfg *config.Config, store *users.Store, hub *events.Hub) *SystemHandler {
	return &SystemHandler{cfg: cfg, store: store, hub: hub}
}

// Greeting answers the site root.
func (h *SystemHandler) Greeting(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "Hello world")
}

// Health reports that the process is serving along with a few counters.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"name":        h.cfg.Name,
		"env":         h.cfg.Env,
		"users":       h.store.Len(),
		"subscribers": h.hub.Subscribers(),
	})
}
