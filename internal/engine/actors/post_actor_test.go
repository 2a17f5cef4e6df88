package actors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-hub/internal/models"
	"activity-hub/internal/query"
	"activity-hub/internal/utils"
)

func postIDs(posts []*models.Post) []int64 {
	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func TestCreatePostRequiresApprovedSubcategory(t *testing.T) {
	env := newTestEnv(t)

	appErr := requireAppError(t, env.ask(t, &CreatePostMsg{
		ActorID: diverPro, Title: "Waves", SubcategoryID: 4,
	}), utils.ErrInvalidInput)
	assert.Equal(t, "Subcategory is not approved", appErr.Message)

	requireAppError(t, env.ask(t, &CreatePostMsg{ActorID: diverPro, Title: "Nowhere", SubcategoryID: 99}), utils.ErrNotFound)
	assert.Len(t, env.store.Posts, 4)

	result := env.ask(t, &CreatePostMsg{
		ActorID: diverPro, Title: "Night dive", Content: "Bioluminescence", SubcategoryID: 2,
		Tags: []string{"diving", "night"},
	})
	post, ok := result.(*models.Post)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, int64(5), post.ID)
	assert.Equal(t, diverPro, post.AuthorID)
	assert.Zero(t, post.LikesCount)
	assert.Zero(t, post.CommentsCount)
	assert.Equal(t, []string{}, post.Media.Photos)
}

func TestListPostsByPopularity(t *testing.T) {
	env := newTestEnv(t)

	page := env.ask(t, &ListPostsMsg{Criteria: query.PostCriteria{
		SortBy: query.SortByPopularity, Limit: 2,
	}}).(*models.PostPage)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, []int64{1, 3}, postIDs(page.Posts))

	page = env.ask(t, &ListPostsMsg{Criteria: query.PostCriteria{Limit: 20}}).(*models.PostPage)
	assert.Equal(t, []int64{1, 2, 4, 3}, postIDs(page.Posts))
}

func TestLikeTransitions(t *testing.T) {
	env := newTestEnv(t)

	state := env.ask(t, &LikePostMsg{ActorID: diverPro, PostID: 1}).(*models.LikeState)
	assert.Equal(t, 246, state.LikesCount)
	assert.True(t, state.IsLiked)

	appErr := requireAppError(t, env.ask(t, &LikePostMsg{ActorID: diverPro, PostID: 1}), utils.ErrDuplicate)
	assert.Equal(t, "Already liked", appErr.Message)
	assert.Equal(t, 246, env.store.PostByID(1).LikesCount)

	delivered := env.notifier.all()
	require.Len(t, delivered, 1)
	assert.Equal(t, models.NotificationLike, delivered[0].Type)
	assert.Equal(t, motoTraveler, delivered[0].UserID)
	assert.False(t, delivered[0].IsRead)

	details := env.ask(t, &GetPostMsg{ActorID: diverPro, PostID: 1}).(*models.PostDetails)
	assert.True(t, details.IsLiked)
	assert.False(t, details.IsBookmarked)

	state = env.ask(t, &UnlikePostMsg{ActorID: diverPro, PostID: 1}).(*models.LikeState)
	assert.Equal(t, 245, state.LikesCount)
	assert.False(t, state.IsLiked)

	appErr = requireAppError(t, env.ask(t, &UnlikePostMsg{ActorID: diverPro, PostID: 1}), utils.ErrInvalidInput)
	assert.Equal(t, "Not liked", appErr.Message)
	requireAppError(t, env.ask(t, &LikePostMsg{ActorID: diverPro, PostID: 42}), utils.ErrNotFound)
}

func TestSelfLikeIsSilent(t *testing.T) {
	env := newTestEnv(t)
	before := len(env.store.Notifications)

	env.ask(t, &LikePostMsg{ActorID: motoTraveler, PostID: 1})

	assert.Len(t, env.store.Notifications, before)
	assert.Empty(t, env.notifier.all())
}

func TestPostMutationGate(t *testing.T) {
	env := newTestEnv(t)
	title := "Edited"

	// A stranger may not touch someone else's post.
	requireAppError(t, env.ask(t, &UpdatePostMsg{ActorID: bikeTraveler, PostID: 1, Title: &title}), utils.ErrForbidden)
	requireAppError(t, env.ask(t, &DeletePostMsg{ActorID: diverPro, PostID: 1}), utils.ErrForbidden)

	// Global moderator
	post := env.ask(t, &UpdatePostMsg{ActorID: moderator, PostID: 2, Title: &title}).(*models.Post)
	assert.Equal(t, title, post.Title)

	// Moderator of the post's subcategory
	post = env.ask(t, &UpdatePostMsg{ActorID: motoTraveler, PostID: 3, Title: &title}).(*models.Post)
	assert.Equal(t, title, post.Title)

	// Moving a post re-checks approval
	unapproved := int64(4)
	requireAppError(t, env.ask(t, &UpdatePostMsg{ActorID: motoTraveler, PostID: 1, SubcategoryID: &unapproved}), utils.ErrInvalidInput)
	assert.Equal(t, int64(1), env.store.PostByID(1).SubcategoryID)

	requireAppError(t, env.ask(t, &UpdatePostMsg{ActorID: motoTraveler, PostID: 77, Title: &title}), utils.ErrNotFound)
}

func TestDeletePostCascades(t *testing.T) {
	env := newTestEnv(t)
	env.ask(t, &LikePostMsg{ActorID: diverPro, PostID: 1})
	env.ask(t, &BookmarkPostMsg{ActorID: diverPro, PostID: 1})

	assert.Equal(t, true, env.ask(t, &DeletePostMsg{ActorID: motoTraveler, PostID: 1}))

	requireAppError(t, env.ask(t, &GetPostMsg{PostID: 1}), utils.ErrNotFound)
	tree := env.ask(t, &GetCommentsMsg{PostID: 1}).([]*models.CommentNode)
	assert.Empty(t, tree)
	assert.False(t, env.store.HasLike(diverPro, 1))
	page := env.ask(t, &GetBookmarksMsg{ActorID: diverPro}).(*models.PostPage)
	assert.Zero(t, page.Total)
}

func TestBookmarks(t *testing.T) {
	env := newTestEnv(t)

	state := env.ask(t, &BookmarkPostMsg{ActorID: bikeTraveler, PostID: 2}).(*models.BookmarkState)
	assert.True(t, state.IsBookmarked)

	appErr := requireAppError(t, env.ask(t, &BookmarkPostMsg{ActorID: bikeTraveler, PostID: 2}), utils.ErrDuplicate)
	assert.Equal(t, "Already bookmarked", appErr.Message)
	requireAppError(t, env.ask(t, &BookmarkPostMsg{ActorID: bikeTraveler, PostID: 50}), utils.ErrNotFound)

	page := env.ask(t, &GetBookmarksMsg{ActorID: bikeTraveler}).(*models.PostPage)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, []int64{2}, postIDs(page.Posts))

	state = env.ask(t, &UnbookmarkPostMsg{ActorID: bikeTraveler, PostID: 2}).(*models.BookmarkState)
	assert.False(t, state.IsBookmarked)
	appErr = requireAppError(t, env.ask(t, &UnbookmarkPostMsg{ActorID: bikeTraveler, PostID: 2}), utils.ErrInvalidInput)
	assert.Equal(t, "Not bookmarked", appErr.Message)
}

func TestResponsesDoNotAliasTheStore(t *testing.T) {
	env := newTestEnv(t)

	page := env.ask(t, &ListPostsMsg{Criteria: query.PostCriteria{Limit: 1}}).(*models.PostPage)
	require.Len(t, page.Posts, 1)
	page.Posts[0].Title = "mutated"
	page.Posts[0].Tags[0] = "mutated"

	assert.NotEqual(t, "mutated", env.store.PostByID(page.Posts[0].ID).Title)
	assert.NotEqual(t, "mutated", env.store.PostByID(page.Posts[0].ID).Tags[0])
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)

	results := env.ask(t, &SearchMsg{Criteria: query.SearchCriteria{
		Query: "caucasus", Limit: query.DefaultSearchLimit,
	}}).(*models.SearchResults)
	assert.ElementsMatch(t, []int64{1, 4}, postIDs(results.Posts))
	require.Len(t, results.Users, 1)
	assert.Equal(t, bikeTraveler, results.Users[0].ID)

	results = env.ask(t, &SearchMsg{Criteria: query.SearchCriteria{Limit: query.DefaultSearchLimit}}).(*models.SearchResults)
	assert.Len(t, results.Posts, 4)
	assert.Len(t, results.Users, 5)
	assert.Len(t, results.Subcategories, 5)
}
