package actors

import (
	"time"

	"activity-hub/internal/models"
	"activity-hub/internal/store"
	"activity-hub/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

// Notifier is told about every notification right after it is stored.
type Notifier interface {
	Notify(n *models.Notification)
}

// StoreActor owns the entity store. Every read and write goes through its
// mailbox, so each request sees the effects of all earlier ones and no two
// requests touch the store at the same time. A request that fails midway
// keeps whatever it already wrote.
//
// Replies are either a value or a *utils.AppError. Values never alias the
// records the actor keeps mutating.
type StoreActor struct {
	store      *store.Store
	metrics    *utils.MetricsCollector
	logger     *zap.SugaredLogger
	persistPID *actor.PID
	notifier   Notifier
}

// NewStoreActor wires a store actor. persistPID and notifier may be nil.
func NewStoreActor(s *store.Store, metrics *utils.MetricsCollector, logger *zap.SugaredLogger, persistPID *actor.PID, notifier Notifier) actor.Actor {
	return &StoreActor{
		store:      s,
		metrics:    metrics,
		logger:     logger,
		persistPID: persistPID,
		notifier:   notifier,
	}
}

// Receive dispatches on the message type. Handlers live next to their
// messages in user_actor.go, subcategory_actor.go, post_actor.go,
// comment_actor.go, notification_actor.go and admin_actor.go.
func (a *StoreActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		a.logger.Infof("StoreActor started")
	case *actor.Stopping:
		a.logger.Infof("StoreActor stopping")
	case *actor.Stopped:
		a.logger.Infof("StoreActor stopped")
	case *actor.Restarting:
		a.logger.Warnf("StoreActor restarting")

	// Users and auth
	case *LoginMsg:
		a.handleLogin(context, msg)
	case *RegisterMsg:
		a.handleRegister(context, msg)
	case *GetCurrentUserMsg:
		a.handleGetCurrentUser(context, msg)
	case *GetUserMsg:
		a.handleGetUser(context, msg)
	case *UpdateProfileMsg:
		a.handleUpdateProfile(context, msg)
	case *ChangePasswordMsg:
		a.handleChangePassword(context, msg)
	case *ListUsersMsg:
		a.handleListUsers(context, msg)
	case *FollowUserMsg:
		a.handleFollow(context, msg)
	case *UnfollowUserMsg:
		a.handleUnfollow(context, msg)
	case *GetFavoritesMsg:
		a.handleGetFavorites(context, msg)
	case *AddFavoriteMsg:
		a.handleAddFavorite(context, msg)
	case *RemoveFavoriteMsg:
		a.handleRemoveFavorite(context, msg)

	// Categories
	case *GetCategoryTreeMsg:
		a.handleGetCategoryTree(context)
	case *ListSubcategoriesMsg:
		a.handleListSubcategories(context, msg)
	case *CreateSubcategoryMsg:
		a.handleCreateSubcategory(context, msg)
	case *ApproveSubcategoryMsg:
		a.handleApproveSubcategory(context, msg)
	case *GetTagsMsg:
		a.handleGetTags(context, msg)

	// Posts
	case *ListPostsMsg:
		a.handleListPosts(context, msg)
	case *GetPostMsg:
		a.handleGetPost(context, msg)
	case *CreatePostMsg:
		a.handleCreatePost(context, msg)
	case *UpdatePostMsg:
		a.handleUpdatePost(context, msg)
	case *DeletePostMsg:
		a.handleDeletePost(context, msg)
	case *LikePostMsg:
		a.handleLikePost(context, msg)
	case *UnlikePostMsg:
		a.handleUnlikePost(context, msg)
	case *BookmarkPostMsg:
		a.handleBookmarkPost(context, msg)
	case *UnbookmarkPostMsg:
		a.handleUnbookmarkPost(context, msg)
	case *GetBookmarksMsg:
		a.handleGetBookmarks(context, msg)
	case *SearchMsg:
		a.handleSearch(context, msg)

	// Comments
	case *GetCommentsMsg:
		a.handleGetComments(context, msg)
	case *CreateCommentMsg:
		a.handleCreateComment(context, msg)

	// Notifications
	case *ListNotificationsMsg:
		a.handleListNotifications(context, msg)
	case *MarkNotificationReadMsg:
		a.handleMarkNotificationRead(context, msg)
	case *MarkAllNotificationsReadMsg:
		a.handleMarkAllNotificationsRead(context, msg)

	// Admin
	case *GetStatsMsg:
		a.handleGetStats(context, msg)
	case *ResetStoreMsg:
		a.handleResetStore(context, msg)
	case *HealthMsg:
		a.handleHealth(context)

	default:
		a.logger.Warnf("StoreActor: Unknown message type: %T", msg)
	}
}

// requireUser resolves the caller. A missing or unknown id is a 401.
func (a *StoreActor) requireUser(userID int64) (*models.User, *utils.AppError) {
	if userID == 0 {
		return nil, utils.NewUnauthorizedError("Unauthorized")
	}
	user := a.store.UserByID(userID)
	if user == nil {
		return nil, utils.NewUnauthorizedError("Unauthorized")
	}
	return user, nil
}

// persist hands a full snapshot to the persist actor. Failures are logged
// and never reach the caller.
func (a *StoreActor) persist(context actor.Context) {
	if a.persistPID == nil {
		return
	}
	data, err := a.store.Snapshot()
	if err != nil {
		a.logger.Errorf("StoreActor: Failed to encode snapshot: %v", err)
		return
	}
	context.Send(a.persistPID, &SaveSnapshotMsg{Data: data})
}

func (a *StoreActor) deliver(notifications []*models.Notification) {
	if a.notifier == nil {
		return
	}
	for _, n := range notifications {
		a.notifier.Notify(n.Clone())
	}
}

func (a *StoreActor) observe(operation string, start time.Time) {
	if a.metrics != nil {
		a.metrics.AddOperationLatency(operation, time.Since(start))
	}
}
