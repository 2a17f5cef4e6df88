package query

import (
	"errors"
	"fmt"

	"activity-hub/internal/models"
)

// ErrCommentCycle is wrapped by CommentTree when a parent chain loops.
var ErrCommentCycle = errors.New("comment parent chain is cyclic")

// CommentTree returns the top-level comments of a post, each carrying its
// replies recursively, all in insertion order. Comments whose parent chain
// never reaches a top-level comment are not part of the tree. Reaching the
// same comment id twice (a loop, or duplicate ids in restored data) is
// reported as ErrCommentCycle instead of recursing forever.
func CommentTree(comments []*models.Comment, postID int64) ([]*models.CommentNode, error) {
	children := make(map[int64][]*models.Comment)
	var roots []*models.Comment
	for _, c := range comments {
		if c.PostID != postID {
			continue
		}
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	visited := make(map[int64]bool)
	var build func(c *models.Comment) (*models.CommentNode, error)
	build = func(c *models.Comment) (*models.CommentNode, error) {
		if visited[c.ID] {
			return nil, fmt.Errorf("%w: comment %d reached twice", ErrCommentCycle, c.ID)
		}
		visited[c.ID] = true

		node := &models.CommentNode{Comment: *c, Replies: []*models.CommentNode{}}
		for _, child := range children[c.ID] {
			childNode, err := build(child)
			if err != nil {
				return nil, err
			}
			node.Replies = append(node.Replies, childNode)
		}
		return node, nil
	}

	tree := make([]*models.CommentNode, 0, len(roots))
	for _, root := range roots {
		node, err := build(root)
		if err != nil {
			return nil, err
		}
		tree = append(tree, node)
	}
	return tree, nil
}
