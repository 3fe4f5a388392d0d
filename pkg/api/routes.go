package api

import "net/http"

// registerRoutes registers all API routes with the provided mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Items
	mux.HandleFunc("POST /api/items", s.handleCreateItem)
	mux.HandleFunc("GET /api/items", s.handleListItems)
	mux.HandleFunc("GET /api/items/{id}", s.handleGetItem)
	mux.HandleFunc("PUT /api/items/{id}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /api/items/{id}", s.handleDeleteItem)

	// Operations
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /admin/stats", s.handleStats)
	mux.HandleFunc("POST /admin/reset", s.handleReset)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Registry.Handler())
	}
}
