package handlers

import (
	"net/http"

	"activity-hub/internal/api"
	"activity-hub/internal/engine/actors"
	"activity-hub/internal/models"
	"activity-hub/internal/query"
)

// issue answers login and register with the user and a fresh token.
func (s *Server) issue(w http.ResponseWriter, msg interface{}) {
	result, appErr := s.ask(msg)
	if appErr != nil {
		s.writeAppError(w, appErr)
		return
	}
	user := result.(*models.PublicUser)
	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		s.Logger.Errorf("HTTP Handler: failed to issue token for user %d: %v", user.ID, err)
		WriteResponse(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, &models.AuthResponse{User: user, Token: token})
}

// HandleLogin handles POST /auth/login
func (s *Server) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		s.Logger.Debugf("HTTP Handler: login request for %s", req.Email)
		s.issue(w, &actors.LoginMsg{Email: req.Email, Password: req.Password})
	}
}

// HandleRegister handles POST /auth/register
func (s *Server) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.RegisterUserRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		s.issue(w, &actors.RegisterMsg{Email: req.Email, Password: req.Password, Username: req.Username})
	}
}

// HandleLogout handles POST /auth/logout. Tokens are stateless, so there is
// nothing to revoke.
func (s *Server) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, struct{}{})
	}
}

func (s *Server) HandleGetCurrentUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, &actors.GetCurrentUserMsg{ActorID: callerID(r)})
	}
}

func (s *Server) HandleGetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseIDParam(r, "id")
		if err != nil {
			writeErr(w, err)
			return
		}
		s.respond(w, &actors.GetUserMsg{UserID: id})
	}
}

func (s *Server) HandleUpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.UpdateProfileRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		s.respond(w, &actors.UpdateProfileMsg{
			ActorID:                callerID(r),
			Username:               req.Username,
			Avatar:                 req.Avatar,
			Bio:                    req.Bio,
			FavoriteSubcategoryIDs: req.FavoriteSubcategoryIDs,
		})
	}
}

func (s *Server) HandleChangePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.ChangePasswordRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		s.respondEmpty(w, &actors.ChangePasswordMsg{
			ActorID:         callerID(r),
			CurrentPassword: req.CurrentPassword,
			NewPassword:     req.NewPassword,
		})
	}
}

// HandleListUsers handles GET /users?search=&limit=&offset=
func (s *Server) HandleListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset, err := pagination(r, query.DefaultUserLimit)
		if err != nil {
			writeErr(w, err)
			return
		}
		s.respond(w, &actors.ListUsersMsg{
			Search: r.URL.Query().Get("search"),
			Limit:  limit,
			Offset: offset,
		})
	}
}

// HandleFollow handles POST and DELETE /users/{id}/follow
func (s *Server) HandleFollow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, err := ParseIDParam(r, "id")
		if err != nil {
			writeErr(w, err)
			return
		}
		if r.Method == http.MethodDelete {
			s.respondEmpty(w, &actors.UnfollowUserMsg{ActorID: callerID(r), TargetID: target})
			return
		}
		s.respondEmpty(w, &actors.FollowUserMsg{ActorID: callerID(r), TargetID: target})
	}
}

func (s *Server) HandleGetFavorites() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, &actors.GetFavoritesMsg{ActorID: callerID(r)})
	}
}

// HandleFavorite handles POST and DELETE /users/me/favorites/subcategories/{id}
func (s *Server) HandleFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseIDParam(r, "id")
		if err != nil {
			writeErr(w, err)
			return
		}
		if r.Method == http.MethodDelete {
			s.respondEmpty(w, &actors.RemoveFavoriteMsg{ActorID: callerID(r), SubcategoryID: id})
			return
		}
		s.respondEmpty(w, &actors.AddFavoriteMsg{ActorID: callerID(r), SubcategoryID: id})
	}
}
