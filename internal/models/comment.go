package models

import (
	"time"
)

// Comment on a post. ParentID is nil for top-level comments.
type Comment struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	AuthorID   int64     `json:"authorId"`
	PostID     int64     `json:"postId"`
	ParentID   *int64    `json:"parentId"`
	LikesCount int       `json:"likesCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CommentNode is a comment with its replies, built at read time.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

func (c *Comment) Clone() *Comment {
	cp := *c
	return &cp
}
