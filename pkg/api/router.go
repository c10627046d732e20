package api

import "net/http"

// NewRouter creates a new HTTP router
func NewRouter(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /dashboard", h.HandleGetDashboard)
	mux.HandleFunc("POST /refresh", h.HandleRefresh)
	mux.HandleFunc("GET /healthz", h.HandleHealthz)

	return mux
}
