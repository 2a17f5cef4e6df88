package handlers

import (
	"net/http"

	"activity-hub/internal/middleware"

	"github.com/gorilla/mux"
)

// Routes builds the router. /metrics is only mounted when exposeMetrics is
// set and the server has a collector.
func (s *Server) Routes(exposeMetrics bool) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)

	r.HandleFunc("/health", s.HandleHealth()).Methods("GET")
	r.HandleFunc("/ws", s.HandleWebSocket()).Methods("GET")
	if exposeMetrics && s.Metrics != nil {
		r.Handle("/metrics", s.Metrics.Handler()).Methods("GET")
	}

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.NotFoundHandler = http.HandlerFunc(notFound)
	apiRouter.Use(func(next http.Handler) http.Handler {
		return middleware.SimulatedLatency(s.SimulatedLatency, next)
	})

	// Auth
	apiRouter.HandleFunc("/auth/login", s.HandleLogin()).Methods("POST")
	apiRouter.HandleFunc("/auth/register", s.HandleRegister()).Methods("POST")
	apiRouter.HandleFunc("/auth/logout", s.HandleLogout()).Methods("POST")

	// Users
	apiRouter.HandleFunc("/users", s.HandleListUsers()).Methods("GET")
	apiRouter.HandleFunc("/users/me", s.HandleGetCurrentUser()).Methods("GET")
	apiRouter.HandleFunc("/users/me", s.HandleUpdateProfile()).Methods("PUT")
	apiRouter.HandleFunc("/users/me/password", s.HandleChangePassword()).Methods("PUT")
	apiRouter.HandleFunc("/users/me/favorites/subcategories", s.HandleGetFavorites()).Methods("GET")
	apiRouter.HandleFunc("/users/me/favorites/subcategories/{id:[0-9]+}", s.HandleFavorite()).Methods("POST", "DELETE")
	apiRouter.HandleFunc("/users/me/bookmarks", s.HandleGetBookmarks()).Methods("GET")
	apiRouter.HandleFunc("/users/me/bookmarks/{postId:[0-9]+}", s.HandleBookmark()).Methods("POST", "DELETE")
	apiRouter.HandleFunc("/users/{id:[0-9]+}", s.HandleGetUser()).Methods("GET")
	apiRouter.HandleFunc("/users/{id:[0-9]+}/follow", s.HandleFollow()).Methods("POST", "DELETE")

	// Categories
	apiRouter.HandleFunc("/categories", s.HandleMainCategories()).Methods("GET")
	apiRouter.HandleFunc("/categories/tree", s.HandleCategoryTree()).Methods("GET")
	apiRouter.HandleFunc("/categories/{id:[0-9]+}/subcategories", s.HandleCategorySubcategories()).Methods("GET")
	apiRouter.HandleFunc("/subcategories", s.HandleListSubcategories()).Methods("GET")
	apiRouter.HandleFunc("/subcategories", s.HandleCreateSubcategory()).Methods("POST")
	apiRouter.HandleFunc("/subcategories/{id:[0-9]+}/approve", s.HandleApproveSubcategory()).Methods("PATCH")
	apiRouter.HandleFunc("/tags", s.HandleTags()).Methods("GET")

	// Posts
	apiRouter.HandleFunc("/posts", s.HandleListPosts()).Methods("GET")
	apiRouter.HandleFunc("/posts", s.HandleCreatePost()).Methods("POST")
	apiRouter.HandleFunc("/posts/{id:[0-9]+}", s.HandleGetPost()).Methods("GET")
	apiRouter.HandleFunc("/posts/{id:[0-9]+}", s.HandleUpdatePost()).Methods("PUT")
	apiRouter.HandleFunc("/posts/{id:[0-9]+}", s.HandleDeletePost()).Methods("DELETE")
	apiRouter.HandleFunc("/posts/{id:[0-9]+}/like", s.HandleLike()).Methods("POST", "DELETE")
	apiRouter.HandleFunc("/posts/{id:[0-9]+}/comments", s.HandleGetPostComments()).Methods("GET")

	// Comments
	apiRouter.HandleFunc("/comments", s.HandleCreateComment()).Methods("POST")

	// Notifications
	apiRouter.HandleFunc("/notifications", s.HandleListNotifications()).Methods("GET")
	apiRouter.HandleFunc("/notifications/read-all", s.HandleMarkAllNotificationsRead()).Methods("PATCH")
	apiRouter.HandleFunc("/notifications/{id:[0-9]+}/read", s.HandleMarkNotificationRead()).Methods("PATCH")

	// Search
	apiRouter.HandleFunc("/search", s.HandleSearch()).Methods("GET")

	// Admin
	apiRouter.HandleFunc("/admin/stats", s.HandleAdminStats()).Methods("GET")
	apiRouter.HandleFunc("/admin/reset", s.HandleAdminReset()).Methods("POST")

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	WriteResponse(w, "Not found", http.StatusNotFound)
}
