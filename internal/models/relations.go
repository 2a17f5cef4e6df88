package models

// PostLike, Bookmark and Subscription are join records with set semantics:
// a pair appears at most once.
type PostLike struct {
	UserID int64 `json:"userId"`
	PostID int64 `json:"postId"`
}

type Bookmark struct {
	UserID int64 `json:"userId"`
	PostID int64 `json:"postId"`
}

type Subscription struct {
	FollowerID  int64 `json:"followerId"`
	FollowingID int64 `json:"followingId"`
}
