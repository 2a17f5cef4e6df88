package handlers

import (
	"net/http"

	"activity-hub/internal/engine/actors"
	"activity-hub/internal/query"
)

// HandleListNotifications handles GET /notifications?limit=&offset=&unreadOnly=
func (s *Server) HandleListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset, err := pagination(r, query.DefaultNotificationLimit)
		if err != nil {
			writeErr(w, err)
			return
		}
		s.respond(w, &actors.ListNotificationsMsg{
			ActorID:    callerID(r),
			UnreadOnly: queryBool(r, "unreadOnly"),
			Limit:      limit,
			Offset:     offset,
		})
	}
}

func (s *Server) HandleMarkNotificationRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseIDParam(r, "id")
		if err != nil {
			writeErr(w, err)
			return
		}
		s.respondEmpty(w, &actors.MarkNotificationReadMsg{ActorID: callerID(r), NotificationID: id})
	}
}

func (s *Server) HandleMarkAllNotificationsRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respondEmpty(w, &actors.MarkAllNotificationsReadMsg{ActorID: callerID(r)})
	}
}
