package actors

import (
	"strings"
	"time"

	"activity-hub/internal/models"
	"activity-hub/internal/notify"
	"activity-hub/internal/query"
	"activity-hub/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Message types for post operations
type (
	ListPostsMsg struct {
		Criteria query.PostCriteria
	}

	// GetPostMsg carries the optional caller so the reply can say whether
	// they liked or bookmarked the post.
	GetPostMsg struct {
		ActorID int64
		PostID  int64
	}

	CreatePostMsg struct {
		ActorID       int64
		Title         string
		Content       string
		SubcategoryID int64
		Tags          []string
		Media         models.Media
		Location      *models.Location
	}

	// UpdatePostMsg changes only the non-nil fields.
	UpdatePostMsg struct {
		ActorID       int64
		PostID        int64
		Title         *string
		Content       *string
		SubcategoryID *int64
		Tags          *[]string
		Media         *models.Media
		Location      *models.Location
	}

	DeletePostMsg struct {
		ActorID int64
		PostID  int64
	}

	LikePostMsg struct {
		ActorID int64
		PostID  int64
	}

	UnlikePostMsg struct {
		ActorID int64
		PostID  int64
	}

	BookmarkPostMsg struct {
		ActorID int64
		PostID  int64
	}

	UnbookmarkPostMsg struct {
		ActorID int64
		PostID  int64
	}

	GetBookmarksMsg struct {
		ActorID int64
	}

	SearchMsg struct {
		Criteria query.SearchCriteria
	}
)

func (a *StoreActor) handleListPosts(context actor.Context, msg *ListPostsMsg) {
	startTime := time.Now()
	defer a.observe("list_posts", startTime)

	page := query.ListPosts(a.store.Posts, msg.Criteria)
	page.Posts = models.ClonePosts(page.Posts)
	context.Respond(page)
}

func (a *StoreActor) handleGetPost(context actor.Context, msg *GetPostMsg) {
	post := a.store.PostByID(msg.PostID)
	if post == nil {
		context.Respond(utils.NewNotFoundError("Post"))
		return
	}
	details := &models.PostDetails{Post: post.Clone()}
	if msg.ActorID != 0 {
		details.IsLiked = a.store.HasLike(msg.ActorID, post.ID)
		details.IsBookmarked = a.store.HasBookmark(msg.ActorID, post.ID)
	}
	context.Respond(details)
}

// checkSubcategory enforces that posts only land in approved subcategories.
func (a *StoreActor) checkSubcategory(id int64) *utils.AppError {
	sc := a.store.SubcategoryByID(id)
	if sc == nil {
		return utils.NewNotFoundError("Subcategory")
	}
	if !sc.IsApproved {
		return utils.NewInvalidInputError("Subcategory is not approved")
	}
	return nil
}

// canModify reports whether the user may edit or delete the post: its
// author, any global moderator or admin, or a moderator of the post's
// subcategory.
func (a *StoreActor) canModify(user *models.User, post *models.Post) bool {
	if post.AuthorID == user.ID || user.IsStaff() {
		return true
	}
	sc := a.store.SubcategoryByID(post.SubcategoryID)
	return sc != nil && sc.HasModerator(user.ID)
}

func (a *StoreActor) handleCreatePost(context actor.Context, msg *CreatePostMsg) {
	startTime := time.Now()
	defer a.observe("create_post", startTime)

	author, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	if appErr := a.checkSubcategory(msg.SubcategoryID); appErr != nil {
		context.Respond(appErr)
		return
	}
	if strings.TrimSpace(msg.Title) == "" {
		context.Respond(utils.NewInvalidInputError("Title is required"))
		return
	}

	now := a.store.Now()
	post := &models.Post{
		Title:         msg.Title,
		Content:       msg.Content,
		AuthorID:      author.ID,
		SubcategoryID: msg.SubcategoryID,
		Tags:          append([]string{}, msg.Tags...),
		Media:         msg.Media,
		Location:      msg.Location,
		LikesCount:    0,
		CommentsCount: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	a.store.AddPost(post)
	a.persist(context)

	a.logger.Infof("StoreActor: Created post %d in subcategory %d by user %d", post.ID, post.SubcategoryID, author.ID)
	context.Respond(post.Clone())
}

func (a *StoreActor) handleUpdatePost(context actor.Context, msg *UpdatePostMsg) {
	startTime := time.Now()
	defer a.observe("update_post", startTime)

	user, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	post := a.store.PostByID(msg.PostID)
	if post == nil {
		context.Respond(utils.NewNotFoundError("Post"))
		return
	}
	if !a.canModify(user, post) {
		context.Respond(utils.NewForbiddenError())
		return
	}
	if msg.SubcategoryID != nil && *msg.SubcategoryID != post.SubcategoryID {
		if appErr := a.checkSubcategory(*msg.SubcategoryID); appErr != nil {
			context.Respond(appErr)
			return
		}
	}
	if msg.Title != nil && strings.TrimSpace(*msg.Title) == "" {
		context.Respond(utils.NewInvalidInputError("Title is required"))
		return
	}

	if msg.Title != nil {
		post.Title = *msg.Title
	}
	if msg.Content != nil {
		post.Content = *msg.Content
	}
	if msg.SubcategoryID != nil {
		post.SubcategoryID = *msg.SubcategoryID
	}
	if msg.Tags != nil {
		post.Tags = append([]string{}, (*msg.Tags)...)
	}
	if msg.Media != nil {
		post.Media = *msg.Media
		if post.Media.Photos == nil {
			post.Media.Photos = []string{}
		}
	}
	if msg.Location != nil {
		post.Location = msg.Location
	}
	post.UpdatedAt = a.store.Now()
	a.persist(context)

	a.logger.Infof("StoreActor: Post %d updated by user %d", post.ID, user.ID)
	context.Respond(post.Clone())
}

func (a *StoreActor) handleDeletePost(context actor.Context, msg *DeletePostMsg) {
	startTime := time.Now()
	defer a.observe("delete_post", startTime)

	user, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	post := a.store.PostByID(msg.PostID)
	if post == nil {
		context.Respond(utils.NewNotFoundError("Post"))
		return
	}
	if !a.canModify(user, post) {
		context.Respond(utils.NewForbiddenError())
		return
	}

	a.store.DeletePost(post.ID)
	a.persist(context)

	a.logger.Infof("StoreActor: Post %d deleted by user %d", post.ID, user.ID)
	context.Respond(true)
}

func (a *StoreActor) handleLikePost(context actor.Context, msg *LikePostMsg) {
	startTime := time.Now()
	defer a.observe("like_post", startTime)

	user, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	post := a.store.PostByID(msg.PostID)
	if post == nil {
		context.Respond(utils.NewNotFoundError("Post"))
		return
	}
	if !a.store.AddLike(user.ID, post.ID) {
		context.Respond(utils.NewDuplicateError("Already liked"))
		return
	}
	post.LikesCount++

	created := notify.PostLiked(a.store, user, post)
	a.persist(context)
	a.deliver(created)

	context.Respond(&models.LikeState{PostID: post.ID, LikesCount: post.LikesCount, IsLiked: true})
}

func (a *StoreActor) handleUnlikePost(context actor.Context, msg *UnlikePostMsg) {
	startTime := time.Now()
	defer a.observe("unlike_post", startTime)

	user, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	post := a.store.PostByID(msg.PostID)
	if post == nil {
		context.Respond(utils.NewNotFoundError("Post"))
		return
	}
	if !a.store.RemoveLike(user.ID, post.ID) {
		context.Respond(utils.NewInvalidInputError("Not liked"))
		return
	}
	if post.LikesCount > 0 {
		post.LikesCount--
	}
	a.persist(context)

	context.Respond(&models.LikeState{PostID: post.ID, LikesCount: post.LikesCount, IsLiked: false})
}

func (a *StoreActor) handleBookmarkPost(context actor.Context, msg *BookmarkPostMsg) {
	user, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	if a.store.PostByID(msg.PostID) == nil {
		context.Respond(utils.NewNotFoundError("Post"))
		return
	}
	if !a.store.AddBookmark(user.ID, msg.PostID) {
		context.Respond(utils.NewDuplicateError("Already bookmarked"))
		return
	}
	a.persist(context)

	context.Respond(&models.BookmarkState{PostID: msg.PostID, IsBookmarked: true})
}

// handleUnbookmarkPost does not require the post to still exist, so a
// bookmark can always be removed.
func (a *StoreActor) handleUnbookmarkPost(context actor.Context, msg *UnbookmarkPostMsg) {
	user, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	if !a.store.RemoveBookmark(user.ID, msg.PostID) {
		context.Respond(utils.NewInvalidInputError("Not bookmarked"))
		return
	}
	a.persist(context)

	context.Respond(&models.BookmarkState{PostID: msg.PostID, IsBookmarked: false})
}

func (a *StoreActor) handleGetBookmarks(context actor.Context, msg *GetBookmarksMsg) {
	user, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	posts := a.store.BookmarkedPosts(user.ID)
	context.Respond(query.BookmarkedPage(models.ClonePosts(posts)))
}

func (a *StoreActor) handleSearch(context actor.Context, msg *SearchMsg) {
	startTime := time.Now()
	defer a.observe("search", startTime)

	results := query.Search(a.store.Posts, a.store.Users, a.store.Subcategories, msg.Criteria)
	results.Posts = models.ClonePosts(results.Posts)
	results.Subcategories = models.CloneSubcategories(results.Subcategories)
	context.Respond(results)
}
