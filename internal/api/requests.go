package api

import "activity-hub/internal/models"

// LoginRequest represents a request to log in a user
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUserRequest represents a request to register a new user
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// UpdateProfileRequest lists the profile fields a user may change. Absent
// fields are left alone; anything else in the body is ignored.
type UpdateProfileRequest struct {
	Username               *string  `json:"username"`
	Avatar                 *string  `json:"avatar"`
	Bio                    *string  `json:"bio"`
	FavoriteSubcategoryIDs *[]int64 `json:"favoriteSubcategoryIds"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// CreateSubcategoryRequest represents a request to submit a subcategory
type CreateSubcategoryRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	MainCategoryID int64    `json:"mainCategoryId"`
	Tags           []string `json:"tags"`
}

// CreatePostRequest represents a request to create a new post
type CreatePostRequest struct {
	Title         string           `json:"title"`
	Content       string           `json:"content"`
	SubcategoryID int64            `json:"subcategoryId"`
	Tags          []string         `json:"tags"`
	Media         models.Media     `json:"media"`
	Location      *models.Location `json:"location"`
}

// UpdatePostRequest changes only the fields present in the body.
type UpdatePostRequest struct {
	Title         *string          `json:"title"`
	Content       *string          `json:"content"`
	SubcategoryID *int64           `json:"subcategoryId"`
	Tags          *[]string        `json:"tags"`
	Media         *models.Media    `json:"media"`
	Location      *models.Location `json:"location"`
}

// CreateCommentRequest represents a request to comment on a post, or to
// reply to a comment when ParentID is set.
type CreateCommentRequest struct {
	Content  string `json:"content"`
	PostID   int64  `json:"postId"`
	ParentID *int64 `json:"parentId,omitempty"`
}

