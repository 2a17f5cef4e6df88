package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"activity-hub/internal/models"
	"activity-hub/internal/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(store.Options{
		PasswordCost: bcrypt.MinCost,
		Now:          func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return s
}

func TestPostLikedSkipsSelfLike(t *testing.T) {
	s := newStore(t)
	before := len(s.Notifications)

	assert.Empty(t, PostLiked(s, s.UserByID(1), s.PostByID(1)))
	assert.Len(t, s.Notifications, before)

	created := PostLiked(s, s.UserByID(2), s.PostByID(1))
	require.Len(t, created, 1)
	n := created[0]
	assert.Equal(t, int64(1), n.UserID)
	assert.Equal(t, int64(2), n.SourceUserID)
	assert.Equal(t, "Diver_Pro", n.SourceUserName)
	assert.Equal(t, models.NotificationLike, n.Type)
	assert.False(t, n.IsRead)
	require.NotNil(t, n.PostID)
	assert.Equal(t, int64(1), *n.PostID)
	assert.Equal(t, int64(4), n.ID)
	assert.Len(t, s.Notifications, before+1)
}

func TestSubcategorySubmittedReachesEveryModerator(t *testing.T) {
	s := newStore(t)
	second := s.AddUser(&models.User{Email: "mod2@example.com", Username: "Mod2", Role: models.RoleModerator})

	creator := s.UserByID(3)
	sc := s.AddSubcategory(&models.Subcategory{Name: "Kayaking", MainCategoryID: 2, CreatedByUserID: creator.ID})

	created := SubcategorySubmitted(s, creator, sc)
	require.Len(t, created, 2)
	recipients := []int64{created[0].UserID, created[1].UserID}
	assert.ElementsMatch(t, []int64{4, second.ID}, recipients)
	for _, n := range created {
		assert.Equal(t, models.NotificationModeration, n.Type)
		assert.Equal(t, creator.ID, n.SourceUserID)
		require.NotNil(t, n.SubcategoryID)
		assert.Equal(t, sc.ID, *n.SubcategoryID)
	}
}

func TestSubcategorySubmittedSilentWhenApproved(t *testing.T) {
	s := newStore(t)
	sc := &models.Subcategory{ID: 99, Name: "x", IsApproved: true}
	assert.Empty(t, SubcategorySubmitted(s, s.UserByID(4), sc))
}

func TestSubcategoryApproved(t *testing.T) {
	s := newStore(t)
	created := SubcategoryApproved(s, s.UserByID(4), s.SubcategoryByID(4))
	require.Len(t, created, 1)
	assert.Equal(t, int64(2), created[0].UserID)
	assert.Equal(t, int64(4), created[0].SourceUserID)
	assert.Contains(t, created[0].Message, "Surfing")
}

func TestCommentAdded(t *testing.T) {
	s := newStore(t)
	post := s.PostByID(1)
	parent := s.CommentByID(1) // by user 2

	t.Run("reply by third party notifies post author and parent author", func(t *testing.T) {
		c := s.AddComment(&models.Comment{PostID: 1, AuthorID: 3, ParentID: &parent.ID})
		created := CommentAdded(s, s.UserByID(3), post, c, parent)
		require.Len(t, created, 2)
		assert.Equal(t, int64(1), created[0].UserID)
		assert.Equal(t, int64(2), created[1].UserID)
		assert.Equal(t, c.ID, *created[1].CommentID)
	})

	t.Run("post author replying to someone notifies only the parent author", func(t *testing.T) {
		c := s.AddComment(&models.Comment{PostID: 1, AuthorID: 1, ParentID: &parent.ID})
		created := CommentAdded(s, s.UserByID(1), post, c, parent)
		require.Len(t, created, 1)
		assert.Equal(t, int64(2), created[0].UserID)
	})

	t.Run("own comment on own post notifies nobody", func(t *testing.T) {
		c := s.AddComment(&models.Comment{PostID: 1, AuthorID: 1})
		assert.Empty(t, CommentAdded(s, s.UserByID(1), post, c, nil))
	})
}

func TestUserFollowed(t *testing.T) {
	s := newStore(t)
	created := UserFollowed(s, s.UserByID(2), s.UserByID(3))
	require.Len(t, created, 1)
	assert.Equal(t, models.NotificationFollow, created[0].Type)
	assert.Equal(t, int64(3), created[0].UserID)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short...", excerpt("short"))
	assert.Equal(t, 33, len([]rune(excerpt("An unforgettable moto tour through the Caucasus"))))
}
