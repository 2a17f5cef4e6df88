package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-hub/internal/models"
)

func comment(id, postID int64, parent *int64) *models.Comment {
	return &models.Comment{ID: id, PostID: postID, ParentID: parent, Content: "c"}
}

func TestCommentTreeNesting(t *testing.T) {
	comments := []*models.Comment{
		comment(1, 1, nil),
		comment(2, 1, i64(1)),
		comment(3, 1, nil),
		comment(4, 2, nil),
		comment(5, 1, i64(2)),
		comment(6, 1, i64(1)),
	}

	tree, err := CommentTree(comments, 1)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	assert.Equal(t, int64(1), tree[0].ID)
	require.Len(t, tree[0].Replies, 2)
	assert.Equal(t, int64(2), tree[0].Replies[0].ID)
	assert.Equal(t, int64(6), tree[0].Replies[1].ID)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, int64(5), tree[0].Replies[0].Replies[0].ID)

	assert.Equal(t, int64(3), tree[1].ID)
	assert.NotNil(t, tree[1].Replies)
	assert.Empty(t, tree[1].Replies)
}

func TestCommentTreeIsIdempotent(t *testing.T) {
	comments := []*models.Comment{
		comment(1, 1, nil),
		comment(2, 1, i64(1)),
		comment(3, 1, i64(2)),
	}
	first, err := CommentTree(comments, 1)
	require.NoError(t, err)
	second, err := CommentTree(comments, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCommentTreeIgnoresRepliesFromOtherPosts(t *testing.T) {
	comments := []*models.Comment{
		comment(1, 1, nil),
		comment(2, 2, i64(1)),
	}
	tree, err := CommentTree(comments, 1)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Empty(t, tree[0].Replies)
}

func TestCommentTreeUnknownPost(t *testing.T) {
	tree, err := CommentTree([]*models.Comment{comment(1, 1, nil)}, 42)
	require.NoError(t, err)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestCommentTreeDetachedLoopIsSkipped(t *testing.T) {
	comments := []*models.Comment{
		comment(1, 1, nil),
		comment(2, 1, i64(3)),
		comment(3, 1, i64(2)),
		comment(4, 1, i64(4)),
	}
	tree, err := CommentTree(comments, 1)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Empty(t, tree[0].Replies)
}

func TestCommentTreeDuplicateIDsAreAnIntegrityError(t *testing.T) {
	// A restored snapshot with colliding ids makes comment 1 its own
	// descendant.
	comments := []*models.Comment{
		comment(1, 1, nil),
		comment(2, 1, i64(1)),
		comment(1, 1, i64(2)),
	}
	_, err := CommentTree(comments, 1)
	assert.ErrorIs(t, err, ErrCommentCycle)
}
