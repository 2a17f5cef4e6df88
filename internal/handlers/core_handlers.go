package handlers

import (
	"net/http"

	"activity-hub/internal/api"
	"activity-hub/internal/engine/actors"
	"activity-hub/internal/models"
)

// HandleHealth handles health check requests
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, appErr := s.ask(&actors.HealthMsg{})
		if appErr != nil {
			s.writeAppError(w, appErr)
			return
		}
		stats := result.(*models.StoreStats)

		writeJSON(w, http.StatusOK, &api.HealthResponse{
			Status:     "healthy",
			Users:      stats.Users,
			Posts:      stats.Posts,
			Comments:   stats.Comments,
			ServerTime: stats.ServerTime,
		})
	}
}

// HandleAdminStats handles GET /admin/stats
func (s *Server) HandleAdminStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, &actors.GetStatsMsg{ActorID: callerID(r)})
	}
}

// HandleAdminReset handles POST /admin/reset
func (s *Server) HandleAdminReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, &actors.ResetStoreMsg{ActorID: callerID(r)})
	}
}
