package api

import (
	"net/http"

	"github.com/getmockd/itemd/pkg/items"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime int    `json:"uptime"`
}

// StatsResponse is returned by GET /admin/stats.
type StatsResponse struct {
	Items      int                  `json:"items"`
	NextID     int64                `json:"nextId"`
	Uptime     int                  `json:"uptime"`
	Operations *items.StatsSnapshot `json:"operations,omitempty"`
}

// ResetResponse is returned by POST /admin/reset.
type ResetResponse struct {
	Status string `json:"status"`
	Items  int    `json:"items"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status: "healthy",
		Uptime: s.Uptime(),
	})
}

// handleStats handles GET /admin/stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{
		Items:  s.store.Count(),
		NextID: s.store.NextID(),
		Uptime: s.Uptime(),
	}
	if s.stats != nil {
		snap := s.stats.Snapshot()
		resp.Operations = &snap
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

// handleReset handles POST /admin/reset.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	count := s.store.Reset()
	s.log.Info("item store reset", "items", count)
	s.writeJSON(w, r, http.StatusOK, ResetResponse{Status: "reset", Items: count})
}
