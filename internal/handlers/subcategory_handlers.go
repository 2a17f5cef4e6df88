package handlers

import (
	"net/http"

	"activity-hub/internal/api"
	"activity-hub/internal/engine/actors"
	"activity-hub/internal/models"
	"activity-hub/internal/query"
)

// HandleMainCategories serves the fixed list of main categories.
func (s *Server) HandleMainCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.MainCategories)
	}
}

func (s *Server) HandleCategoryTree() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, &actors.GetCategoryTreeMsg{})
	}
}

// HandleCategorySubcategories handles GET /categories/{id}/subcategories
func (s *Server) HandleCategorySubcategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseIDParam(r, "id")
		if err != nil {
			writeErr(w, err)
			return
		}
		s.respond(w, &actors.ListSubcategoriesMsg{MainCategoryID: &id})
	}
}

// HandleListSubcategories handles GET /subcategories?mainCategoryId=&showAll=
func (s *Server) HandleListSubcategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mainID, err := queryInt64(r, "mainCategoryId")
		if err != nil {
			writeErr(w, err)
			return
		}
		s.respond(w, &actors.ListSubcategoriesMsg{MainCategoryID: mainID, ShowAll: queryBool(r, "showAll")})
	}
}

func (s *Server) HandleCreateSubcategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateSubcategoryRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, err)
			return
		}
		s.respond(w, &actors.CreateSubcategoryMsg{
			ActorID:        callerID(r),
			Name:           req.Name,
			Description:    req.Description,
			MainCategoryID: req.MainCategoryID,
			Tags:           req.Tags,
		})
	}
}

// HandleApproveSubcategory handles PATCH /subcategories/{id}/approve
func (s *Server) HandleApproveSubcategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ParseIDParam(r, "id")
		if err != nil {
			writeErr(w, err)
			return
		}
		s.respond(w, &actors.ApproveSubcategoryMsg{ActorID: callerID(r), SubcategoryID: id})
	}
}

// HandleTags handles GET /tags?subcategoryId=&limit=
func (s *Server) HandleTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subID, err := queryInt64(r, "subcategoryId")
		if err != nil {
			writeErr(w, err)
			return
		}
		limit, err := queryInt(r, "limit", query.DefaultTagLimit)
		if err != nil {
			writeErr(w, err)
			return
		}
		s.respond(w, &actors.GetTagsMsg{SubcategoryID: subID, Limit: limit})
	}
}
