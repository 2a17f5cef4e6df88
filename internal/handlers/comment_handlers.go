package handlers

import (
	"net/http"

	"activity-hub/internal/api"
	"activity-hub/internal/engine/actors"
)

// HandleGetPostComments handles GET /posts/{id}/comments
func (s *Server) HandleGetPostComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseIDParam(r, "id")
		if err != nil {
			writeErr(w, err)
			return
		}
		s.respond(w, &actors.GetCommentsMsg{PostID: id})
	}
}

// HandleCreateComment handles POST /comments
func (s *Server) HandleCreateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateCommentRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		// A zero parentId is treated as a top-level comment.
		if req.ParentID != nil && *req.ParentID == 0 {
			req.ParentID = nil
		}
		s.respond(w, &actors.CreateCommentMsg{
			ActorID:  callerID(r),
			PostID:   req.PostID,
			ParentID: req.ParentID,
			Content:  req.Content,
		})
	}
}
