package handlers

import (
	"net/http"

	"activity-hub/internal/api"
	"activity-hub/internal/engine/actors"
	"activity-hub/internal/query"
)

// HandleListPosts handles GET /posts with the filters of query.PostCriteria.
func (s *Server) HandleListPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria, err := postCriteria(r)
		if err != nil {
			writeErr(w, err)
			return
		}
		s.respond(w, &actors.ListPostsMsg{Criteria: criteria})
	}
}

func postCriteria(r *http.Request) (query.PostCriteria, error) {
	var (
		c   query.PostCriteria
		err error
	)
	q := r.URL.Query()
	if c.SubcategoryID, err = queryInt64(r, "subcategoryId"); err != nil {
		return c, err
	}
	if c.UserID, err = queryInt64(r, "userId"); err != nil {
		return c, err
	}
	if c.DateFrom, err = queryTime(r, "dateFrom"); err != nil {
		return c, err
	}
	if c.DateTo, err = queryTime(r, "dateTo"); err != nil {
		return c, err
	}
	if c.Limit, c.Offset, err = pagination(r, query.DefaultPostLimit); err != nil {
		return c, err
	}
	c.Tag = q.Get("tag")
	c.Search = q.Get("search")
	c.SortBy = query.SortByDate
	if sortBy := q.Get("sortBy"); sortBy != "" {
		c.SortBy = query.SortOrder(sortBy)
	}
	return c, nil
}

// HandleGetPost handles GET /posts/{id}. isLiked and isBookmarked are false
// for anonymous callers.
func (s *Server) HandleGetPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseIDParam(r, "id")
		if err != nil {
			writeErr(w, err)
			return
		}
		s.respond(w, &actors.GetPostMsg{ActorID: callerID(r), PostID: id})
	}
}

func (s *Server) HandleCreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.CreatePostRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		s.respond(w, &actors.CreatePostMsg{
			ActorID:       callerID(r),
			Title:         req.Title,
			Content:       req.Content,
			SubcategoryID: req.SubcategoryID,
			Tags:          req.Tags,
			Media:         req.Media,
			Location:      req.Location,
		})
	}
}

func (s *Server) HandleUpdatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseIDParam(r, "id")
		if err != nil {
			writeErr(w, err)
			return
		}
		var req api.UpdatePostRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		s.respond(w, &actors.UpdatePostMsg{
			ActorID:       callerID(r),
			PostID:        id,
			Title:         req.Title,
			Content:       req.Content,
			SubcategoryID: req.SubcategoryID,
			Tags:          req.Tags,
			Media:         req.Media,
			Location:      req.Location,
		})
	}
}

func (s *Server) HandleDeletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseIDParam(r, "id")
		if err != nil {
			writeErr(w, err)
			return
		}
		s.respondEmpty(w, &actors.DeletePostMsg{ActorID: callerID(r), PostID: id})
	}
}

// HandleLike handles POST and DELETE /posts/{id}/like
func (s *Server) HandleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseIDParam(r, "id")
		if err != nil {
			writeErr(w, err)
			return
		}
		if r.Method == http.MethodDelete {
			s.respond(w, &actors.UnlikePostMsg{ActorID: callerID(r), PostID: id})
			return
		}
		s.respond(w, &actors.LikePostMsg{ActorID: callerID(r), PostID: id})
	}
}

func (s *Server) HandleGetBookmarks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, &actors.GetBookmarksMsg{ActorID: callerID(r)})
	}
}

// HandleBookmark handles POST and DELETE /users/me/bookmarks/{postId}
func (s *Server) HandleBookmark() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseIDParam(r, "postId")
		if err != nil {
			writeErr(w, err)
			return
		}
		if r.Method == http.MethodDelete {
			s.respond(w, &actors.UnbookmarkPostMsg{ActorID: callerID(r), PostID: id})
			return
		}
		s.respond(w, &actors.BookmarkPostMsg{ActorID: callerID(r), PostID: id})
	}
}

// HandleSearch handles GET /search?q=&categoryId=&tag=&limit=. categoryId
// narrows the post results to one subcategory.
func (s *Server) HandleSearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subID, err := queryInt64(r, "categoryId")
		if err != nil {
			writeErr(w, err)
			return
		}
		limit, err := queryInt(r, "limit", query.DefaultSearchLimit)
		if err != nil {
			writeErr(w, err)
			return
		}
		s.respond(w, &actors.SearchMsg{Criteria: query.SearchCriteria{
			Query:         r.URL.Query().Get("q"),
			SubcategoryID: subID,
			Tag:           r.URL.Query().Get("tag"),
			Limit:         limit,
		}})
	}
}
