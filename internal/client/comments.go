package client

import (
	"context"
	"fmt"

	"activity-hub/internal/api"
	"activity-hub/internal/models"
)

// Comments returns the nested comment tree of a post.
func (c *Client) Comments(ctx context.Context, postID int64) ([]*models.CommentNode, error) {
	var tree []*models.CommentNode
	if err := c.Do(ctx, "GET", fmt.Sprintf("/posts/%d/comments", postID), nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// CreateComment posts a top-level comment, or a reply when parentID is set.
func (c *Client) CreateComment(ctx context.Context, postID int64, parentID *int64, content string) (*models.Comment, error) {
	var comment models.Comment
	req := &api.CreateCommentRequest{Content: content, PostID: postID, ParentID: parentID}
	if err := c.Do(ctx, "POST", "/comments", req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
