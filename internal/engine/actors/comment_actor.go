package actors

import (
	"errors"
	"strings"
	"time"

	"activity-hub/internal/models"
	"activity-hub/internal/notify"
	"activity-hub/internal/query"
	"activity-hub/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Message types for comment operations
type (
	// GetCommentsMsg returns the nested tree of a post's comments. An unknown
	// post has no comments.
	GetCommentsMsg struct {
		PostID int64
	}

	CreateCommentMsg struct {
		ActorID  int64
		PostID   int64
		ParentID *int64
		Content  string
	}
)

func (a *StoreActor) handleGetComments(context actor.Context, msg *GetCommentsMsg) {
	startTime := time.Now()
	defer a.observe("get_comments", startTime)

	tree, err := query.CommentTree(a.store.Comments, msg.PostID)
	if err != nil {
		if errors.Is(err, query.ErrCommentCycle) {
			a.logger.Errorf("StoreActor: Comments of post %d are corrupt: %v", msg.PostID, err)
			context.Respond(utils.NewAppError(utils.ErrDataIntegrity, "data integrity error", err))
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDataIntegrity, "Failed to build comment tree", err))
		return
	}
	context.Respond(tree)
}

func (a *StoreActor) handleCreateComment(context actor.Context, msg *CreateCommentMsg) {
	startTime := time.Now()
	defer a.observe("create_comment", startTime)

	author, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	if strings.TrimSpace(msg.Content) == "" {
		context.Respond(utils.NewInvalidInputError("Content is required"))
		return
	}
	post := a.store.PostByID(msg.PostID)
	if post == nil {
		context.Respond(utils.NewNotFoundError("Post"))
		return
	}

	var parent *models.Comment
	if msg.ParentID != nil {
		parent = a.store.CommentByID(*msg.ParentID)
		if parent == nil {
			context.Respond(utils.NewNotFoundError("Parent comment"))
			return
		}
		if parent.PostID != post.ID {
			context.Respond(utils.NewInvalidInputError("Parent comment belongs to another post"))
			return
		}
	}

	var parentID *int64
	if parent != nil {
		id := parent.ID
		parentID = &id
	}
	comment := a.store.AddComment(&models.Comment{
		Content:    msg.Content,
		AuthorID:   author.ID,
		PostID:     post.ID,
		ParentID:   parentID,
		LikesCount: 0,
		CreatedAt:  a.store.Now(),
	})
	post.CommentsCount++

	created := notify.CommentAdded(a.store, author, post, comment, parent)
	a.persist(context)
	a.deliver(created)

	a.logger.Infof("StoreActor: Comment %d added to post %d by user %d", comment.ID, post.ID, author.ID)
	context.Respond(comment.Clone())
}
