package models

import (
	"time"
)

// Role is a user's global permission level.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// User is the stored user record. HashedPassword is kept in snapshots but
// never leaves the server; handlers respond with PublicUser instead.
type User struct {
	ID                     int64     `json:"id"`
	Email                  string    `json:"email"`
	HashedPassword         string    `json:"passwordHash"`
	Username               string    `json:"username"`
	Avatar                 string    `json:"avatar"`
	Bio                    string    `json:"bio"`
	CreatedAt              time.Time `json:"createdAt"`
	FavoriteSubcategoryIDs []int64   `json:"favoriteSubcategoryIds"`
	Role                   Role      `json:"role"`
}

// IsStaff reports whether the user holds a global moderator or admin role.
func (u *User) IsStaff() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}

// UserStats are derived on read and never stored.
type UserStats struct {
	PostsCount     int `json:"postsCount"`
	FollowersCount int `json:"followersCount"`
	FollowingCount int `json:"followingCount"`
	LikesCount     int `json:"likesCount"`
}

// PublicUser is a User without credentials, optionally with stats.
type PublicUser struct {
	ID                     int64      `json:"id"`
	Email                  string     `json:"email"`
	Username               string     `json:"username"`
	Avatar                 string     `json:"avatar"`
	Bio                    string     `json:"bio"`
	CreatedAt              time.Time  `json:"createdAt"`
	FavoriteSubcategoryIDs []int64    `json:"favoriteSubcategoryIds"`
	Role                   Role       `json:"role"`
	Stats                  *UserStats `json:"stats,omitempty"`
}

// Public strips the password hash.
func (u *User) Public() *PublicUser {
	favorites := make([]int64, len(u.FavoriteSubcategoryIDs))
	copy(favorites, u.FavoriteSubcategoryIDs)
	return &PublicUser{
		ID:                     u.ID,
		Email:                  u.Email,
		Username:               u.Username,
		Avatar:                 u.Avatar,
		Bio:                    u.Bio,
		CreatedAt:              u.CreatedAt,
		FavoriteSubcategoryIDs: favorites,
		Role:                   u.Role,
	}
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	User  *PublicUser `json:"user"`
	Token string      `json:"token"`
}

type UserPage struct {
	Users []*PublicUser `json:"users"`
	Total int           `json:"total"`
}
