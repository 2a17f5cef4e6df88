package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-hub/internal/models"
)

var base = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func post(id int64, likes int, daysAfterBase int, tags ...string) *models.Post {
	return &models.Post{
		ID:            id,
		Title:         "Post",
		AuthorID:      1,
		SubcategoryID: 1,
		Tags:          tags,
		LikesCount:    likes,
		CreatedAt:     base.AddDate(0, 0, daysAfterBase),
	}
}

func ids(posts []*models.Post) []int64 {
	out := make([]int64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func i64(v int64) *int64 { return &v }

func TestListPostsPopularity(t *testing.T) {
	posts := []*models.Post{post(1, 5, 0), post(2, 20, 1), post(3, 10, 2)}

	page := ListPosts(posts, PostCriteria{SortBy: SortByPopularity, Limit: 2})
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, []int64{2, 3}, ids(page.Posts))

	next := ListPosts(posts, PostCriteria{SortBy: SortByPopularity, Limit: 2, Offset: 2})
	assert.Equal(t, 3, next.Total)
	assert.Equal(t, []int64{1}, ids(next.Posts))

	// input order is untouched
	assert.Equal(t, []int64{1, 2, 3}, ids(posts))
}

func TestListPostsStableTies(t *testing.T) {
	posts := []*models.Post{post(1, 7, 0), post(2, 9, 0), post(3, 7, 0), post(4, 7, 0)}

	page := ListPosts(posts, PostCriteria{SortBy: SortByPopularity, Limit: 10})
	assert.Equal(t, []int64{2, 1, 3, 4}, ids(page.Posts))

	byDate := ListPosts(posts, PostCriteria{SortBy: SortByDate, Limit: 10})
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(byDate.Posts))
}

func TestListPostsDefaultSortIsNewestFirst(t *testing.T) {
	posts := []*models.Post{post(1, 0, 0), post(2, 0, 5), post(3, 0, 2)}
	page := ListPosts(posts, PostCriteria{Limit: DefaultPostLimit})
	assert.Equal(t, []int64{2, 3, 1}, ids(page.Posts))
}

func TestListPostsFilters(t *testing.T) {
	a := post(1, 0, 0, "moto", "Mountains")
	a.Title = "Caucasus Loop"
	b := post(2, 0, 3, "diving")
	b.AuthorID = 2
	b.SubcategoryID = 2
	c := post(3, 0, 6, "moto")
	c.Content = "Long ride through the MOUNTAINS"
	posts := []*models.Post{a, b, c}

	tests := []struct {
		name     string
		criteria PostCriteria
		want     []int64
	}{
		{"subcategory", PostCriteria{SubcategoryID: i64(1)}, []int64{3, 1}},
		{"author", PostCriteria{UserID: i64(2)}, []int64{2}},
		{"exact tag", PostCriteria{Tag: "moto"}, []int64{3, 1}},
		{"tag is case sensitive", PostCriteria{Tag: "Moto"}, []int64{}},
		{"search title", PostCriteria{Search: "caucasus"}, []int64{1}},
		{"search content and tags", PostCriteria{Search: "mountain"}, []int64{3, 1}},
		{"empty search matches all", PostCriteria{Search: ""}, []int64{3, 2, 1}},
		{"inclusive from", PostCriteria{DateFrom: timePtr(base.AddDate(0, 0, 3))}, []int64{3, 2}},
		{"inclusive to", PostCriteria{DateTo: timePtr(base.AddDate(0, 0, 3))}, []int64{2, 1}},
		{"unknown subcategory", PostCriteria{SubcategoryID: i64(99)}, []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.criteria.Limit = 10
			page := ListPosts(posts, tt.criteria)
			assert.Equal(t, tt.want, ids(page.Posts))
			assert.Equal(t, len(tt.want), page.Total)
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestPaginateLength(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	for limit := 0; limit <= 9; limit++ {
		for offset := 0; offset <= 9; offset++ {
			want := limit
			if rest := len(items) - offset; rest < want {
				want = rest
			}
			if want < 0 {
				want = 0
			}
			assert.Len(t, Paginate(items, limit, offset), want, "limit=%d offset=%d", limit, offset)
		}
	}
	assert.NotNil(t, Paginate([]int(nil), 5, 0))
	assert.Empty(t, Paginate(items, -1, -3))
}

func TestListSubcategories(t *testing.T) {
	subs := []*models.Subcategory{
		{ID: 1, MainCategoryID: 1, IsApproved: true},
		{ID: 2, MainCategoryID: 2, IsApproved: false},
		{ID: 3, MainCategoryID: 2, IsApproved: true},
	}
	assert.Len(t, ListSubcategories(subs, nil, false), 2)
	assert.Len(t, ListSubcategories(subs, nil, true), 3)
	assert.Len(t, ListSubcategories(subs, i64(2), false), 1)
	assert.Len(t, ListSubcategories(subs, i64(2), true), 2)
	assert.Empty(t, ListSubcategories(subs, i64(6), true))

	tree := CategoryTree(subs)
	require.Len(t, tree, len(models.MainCategories))
	assert.Len(t, tree[1].Subcategories, 2)
}

func TestListNotifications(t *testing.T) {
	notes := []*models.Notification{
		{ID: 1, UserID: 1, IsRead: false, CreatedAt: base},
		{ID: 2, UserID: 1, IsRead: true, CreatedAt: base.Add(time.Hour)},
		{ID: 3, UserID: 2, IsRead: false, CreatedAt: base},
		{ID: 4, UserID: 1, IsRead: false, CreatedAt: base.Add(2 * time.Hour)},
	}

	page := ListNotifications(notes, NotificationCriteria{UserID: 1, Limit: 1})
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.UnreadCount)
	require.Len(t, page.Notifications, 1)
	assert.Equal(t, int64(4), page.Notifications[0].ID)

	unread := ListNotifications(notes, NotificationCriteria{UserID: 1, UnreadOnly: true, Limit: 10})
	assert.Equal(t, 2, unread.Total)
	assert.Equal(t, 2, unread.UnreadCount)

	none := ListNotifications(notes, NotificationCriteria{UserID: 9, Limit: 10})
	assert.Equal(t, 0, none.Total)
	assert.NotNil(t, none.Notifications)
}

func TestSearch(t *testing.T) {
	var posts []*models.Post
	for i := int64(1); i <= 15; i++ {
		posts = append(posts, post(i, 0, 0, "trip"))
	}
	var users []*models.User
	for i := int64(1); i <= 8; i++ {
		users = append(users, &models.User{ID: i, Username: "traveler", HashedPassword: "secret"})
	}
	subs := []*models.Subcategory{
		{ID: 1, Name: "Road trips"},
		{ID: 2, Name: "Diving", Tags: []string{"underwater"}},
	}

	res := Search(posts, users, subs, SearchCriteria{Query: "TRIP", Limit: DefaultSearchLimit})
	assert.Len(t, res.Posts, 10)
	assert.Empty(t, res.Users)
	require.Len(t, res.Subcategories, 1)
	assert.Equal(t, int64(1), res.Subcategories[0].ID)

	everything := Search(posts, users, subs, SearchCriteria{Limit: DefaultSearchLimit})
	assert.Len(t, everything.Posts, 10)
	assert.Len(t, everything.Users, 5)
	assert.Len(t, everything.Subcategories, 2)

	water := Search(posts, users, subs, SearchCriteria{Query: "water", Limit: DefaultSearchLimit})
	assert.Empty(t, water.Posts)
	assert.Len(t, water.Subcategories, 1)
}

func TestListUsersHidesPasswords(t *testing.T) {
	users := []*models.User{
		{ID: 1, Username: "Moto", Email: "a@example.com", HashedPassword: "x"},
		{ID: 2, Username: "Diver", Email: "b@example.com", Bio: "reefs"},
	}
	page := ListUsers(users, "REEF", 10, 0)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Users, 1)
	assert.Equal(t, int64(2), page.Users[0].ID)

	all := ListUsers(users, "", DefaultUserLimit, 0)
	assert.Equal(t, 2, all.Total)
}

func TestTags(t *testing.T) {
	subs := []*models.Subcategory{
		{ID: 1, Tags: []string{"moto", "travel", "mountains"}},
		{ID: 2, Tags: []string{"diving"}},
		{ID: 3, Tags: []string{"car", "travel"}},
		{ID: 6, Tags: []string{"mountains"}},
	}

	tags := Tags(subs, nil, DefaultTagLimit)
	require.Len(t, tags, 5)
	assert.Equal(t, models.TagCount{Tag: "travel", Count: 2}, tags[0])
	assert.Equal(t, models.TagCount{Tag: "mountains", Count: 2}, tags[1])
	assert.Equal(t, "moto", tags[2].Tag)

	assert.Len(t, Tags(subs, i64(3), DefaultTagLimit), 2)
	assert.Len(t, Tags(subs, nil, 1), 1)
}

func TestFavoriteSubcategories(t *testing.T) {
	subs := []*models.Subcategory{{ID: 1}, {ID: 2}, {ID: 3}}
	favs := FavoriteSubcategories(subs, []int64{3, 1, 42})
	require.Len(t, favs, 2)
	assert.Equal(t, int64(1), favs[0].ID)
	assert.Equal(t, int64(3), favs[1].ID)
}
