package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/mklimuk/trip-pilot/pkg/travel"
)

// Loader produces a dashboard snapshot.
type Loader interface {
	LoadAll(ctx context.Context) (*travel.DashboardData, error)
}

// Handler holds dependencies for API handlers and the latest snapshot.
type Handler struct {
	Service Loader

	mu   sync.RWMutex
	data *travel.DashboardData
}

// NewHandler creates a Handler around the travel service.
func NewHandler(service Loader) *Handler {
	return &Handler{Service: service}
}

// Refresh loads a fresh snapshot and caches it. The file watcher calls
// this after a debounced change burst.
func (h *Handler) Refresh(ctx context.Context) error {
	data, err := h.Service.LoadAll(ctx)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.data = data
	h.mu.Unlock()
	return nil
}

// HandleGetDashboard handles GET /dashboard, loading on first access.
func (h *Handler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	data := h.data
	h.mu.RUnlock()

	if data == nil {
		if err := h.Refresh(r.Context()); err != nil {
			http.Error(w, fmt.Sprintf("Failed to load dashboard: %v", err), http.StatusInternalServerError)
			return
		}
		h.mu.RLock()
		data = h.data
		h.mu.RUnlock()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("api: encode dashboard: %v", err)
	}
}

// HandleRefresh handles POST /refresh, forcing a reload.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.Refresh(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("Refresh failed: %v", err), http.StatusInternalServerError)
		return
	}

	h.mu.RLock()
	data := h.data
	h.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":      "refreshed",
		"trips":       len(data.Trips),
		"lastRefresh": data.LastRefresh,
	})
}

// HandleHealthz handles GET /healthz.
func (h *Handler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
