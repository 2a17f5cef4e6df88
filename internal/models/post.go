package models

import (
	"time"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Route struct {
	Points   []LatLng `json:"points"`
	Distance *float64 `json:"distance,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
}

type Media struct {
	Photos          []string `json:"photos"`
	Route           *Route   `json:"route,omitempty"`
	SpotifyPlaylist string   `json:"spotifyPlaylist,omitempty"`
}

type Location struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

// Post is an activity post. LikesCount and CommentsCount are denormalized
// counters maintained by the like and comment handlers.
type Post struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	AuthorID      int64     `json:"authorId"`
	SubcategoryID int64     `json:"subcategoryId"`
	Tags          []string  `json:"tags"`
	Media         Media     `json:"media"`
	Location      *Location `json:"location,omitempty"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PostDetails is a post as seen by a particular caller.
type PostDetails struct {
	*Post
	IsLiked      bool `json:"isLiked"`
	IsBookmarked bool `json:"isBookmarked"`
}

type PostPage struct {
	Posts []*Post `json:"posts"`
	Total int     `json:"total"`
}

// LikeState is the server-confirmed like state after a like or unlike.
type LikeState struct {
	PostID     int64 `json:"postId"`
	LikesCount int   `json:"likesCount"`
	IsLiked    bool  `json:"isLiked"`
}

type BookmarkState struct {
	PostID       int64 `json:"postId"`
	IsBookmarked bool  `json:"isBookmarked"`
}

// Clone copies the post so it can leave the store actor safely.
func (p *Post) Clone() *Post {
	cp := *p
	cp.Tags = append([]string{}, p.Tags...)
	cp.Media.Photos = append([]string{}, p.Media.Photos...)
	return &cp
}

func ClonePosts(posts []*Post) []*Post {
	out := make([]*Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}
