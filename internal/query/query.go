// Package query selects, filters, sorts and paginates store collections.
// Every function is pure: it reads the slices it is given and returns new
// slices without mutating the input.
package query

import (
	"sort"
	"strings"
	"time"

	"activity-hub/internal/models"
)

const (
	DefaultPostLimit         = 20
	DefaultNotificationLimit = 10
	DefaultUserLimit         = 10
	DefaultSearchLimit       = 10
	DefaultTagLimit          = 50

	searchUserLimit        = 5
	searchSubcategoryLimit = 5
)

type SortOrder string

const (
	SortByDate       SortOrder = "date"
	SortByPopularity SortOrder = "popularity"
)

// Paginate returns items[offset:offset+limit] clamped to the slice bounds.
// The result is never nil.
func Paginate[T any](items []T, limit, offset int) []T {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(items) {
		offset = len(items)
	}
	end := offset + limit
	if end > len(items) || end < offset {
		end = len(items)
	}
	page := make([]T, end-offset)
	copy(page, items[offset:end])
	return page
}

func containsFold(haystack, needleLower string) bool {
	return strings.Contains(strings.ToLower(haystack), needleLower)
}

func anyContainsFold(values []string, needleLower string) bool {
	for _, v := range values {
		if containsFold(v, needleLower) {
			return true
		}
	}
	return false
}

func hasString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// PostCriteria holds the optional filters of ListPosts. Nil pointers and
// empty strings mean "no filter".
type PostCriteria struct {
	SubcategoryID *int64
	UserID        *int64
	Tag           string
	Search        string
	DateFrom      *time.Time
	DateTo        *time.Time
	SortBy        SortOrder
	Limit         int
	Offset        int
}

// matchesText reports whether the post's title, content or any tag contains
// the lowercased needle.
func matchesText(p *models.Post, needleLower string) bool {
	return containsFold(p.Title, needleLower) ||
		containsFold(p.Content, needleLower) ||
		anyContainsFold(p.Tags, needleLower)
}

// FilterPosts applies every filter of c but neither sorts nor paginates.
func FilterPosts(posts []*models.Post, c PostCriteria) []*models.Post {
	search := strings.ToLower(c.Search)
	filtered := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if c.SubcategoryID != nil && p.SubcategoryID != *c.SubcategoryID {
			continue
		}
		if c.UserID != nil && p.AuthorID != *c.UserID {
			continue
		}
		if c.Tag != "" && !hasString(p.Tags, c.Tag) {
			continue
		}
		if search != "" && !matchesText(p, search) {
			continue
		}
		if c.DateFrom != nil && p.CreatedAt.Before(*c.DateFrom) {
			continue
		}
		if c.DateTo != nil && p.CreatedAt.After(*c.DateTo) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// SortPosts orders posts in place. Ties keep their relative order. An
// unrecognised order leaves the slice untouched.
func SortPosts(posts []*models.Post, order SortOrder) {
	switch order {
	case SortByPopularity:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].LikesCount > posts[j].LikesCount
		})
	case SortByDate, "":
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	}
}

// ListPosts filters, sorts and paginates. Total counts the filtered set.
func ListPosts(posts []*models.Post, c PostCriteria) *models.PostPage {
	filtered := FilterPosts(posts, c)
	SortPosts(filtered, c.SortBy)
	return &models.PostPage{
		Posts: Paginate(filtered, c.Limit, c.Offset),
		Total: len(filtered),
	}
}

// ListSubcategories hides unapproved subcategories unless showAll is set.
func ListSubcategories(subs []*models.Subcategory, mainCategoryID *int64, showAll bool) []*models.Subcategory {
	result := []*models.Subcategory{}
	for _, sc := range subs {
		if !showAll && !sc.IsApproved {
			continue
		}
		if mainCategoryID != nil && sc.MainCategoryID != *mainCategoryID {
			continue
		}
		result = append(result, sc)
	}
	return result
}

// CategoryTree groups every subcategory, approved or not, under its main
// category.
func CategoryTree(subs []*models.Subcategory) []models.CategoryTreeNode {
	tree := make([]models.CategoryTreeNode, 0, len(models.MainCategories))
	for _, mc := range models.MainCategories {
		id := mc.ID
		tree = append(tree, models.CategoryTreeNode{
			MainCategory:  mc,
			Subcategories: ListSubcategories(subs, &id, true),
		})
	}
	return tree
}

// NotificationCriteria selects one user's notifications.
type NotificationCriteria struct {
	UserID     int64
	UnreadOnly bool
	Limit      int
	Offset     int
}

// ListNotifications returns newest first. UnreadCount covers every unread
// notification of the user, independent of paging and UnreadOnly.
func ListNotifications(notifications []*models.Notification, c NotificationCriteria) *models.NotificationPage {
	var (
		selected []*models.Notification
		unread   int
	)
	for _, n := range notifications {
		if n.UserID != c.UserID {
			continue
		}
		if !n.IsRead {
			unread++
		}
		if c.UnreadOnly && n.IsRead {
			continue
		}
		selected = append(selected, n)
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].CreatedAt.After(selected[j].CreatedAt)
	})
	return &models.NotificationPage{
		Notifications: Paginate(selected, c.Limit, c.Offset),
		Total:         len(selected),
		UnreadCount:   unread,
	}
}

// ListUsers matches search against username, email and bio.
func ListUsers(users []*models.User, search string, limit, offset int) *models.UserPage {
	needle := strings.ToLower(search)
	var matched []*models.PublicUser
	for _, u := range users {
		if needle != "" &&
			!containsFold(u.Username, needle) &&
			!containsFold(u.Email, needle) &&
			!containsFold(u.Bio, needle) {
			continue
		}
		matched = append(matched, u.Public())
	}
	return &models.UserPage{
		Users: Paginate(matched, limit, offset),
		Total: len(matched),
	}
}

// SearchCriteria drives Search. SubcategoryID and Tag narrow only the post
// results.
type SearchCriteria struct {
	Query         string
	SubcategoryID *int64
	Tag           string
	Limit         int
}

// Search runs independent substring matches over posts, users and
// subcategories. An empty query matches everything.
func Search(posts []*models.Post, users []*models.User, subs []*models.Subcategory, c SearchCriteria) *models.SearchResults {
	needle := strings.ToLower(c.Query)

	var foundPosts []*models.Post
	for _, p := range posts {
		if needle != "" && !matchesText(p, needle) {
			continue
		}
		if c.SubcategoryID != nil && p.SubcategoryID != *c.SubcategoryID {
			continue
		}
		if c.Tag != "" && !hasString(p.Tags, c.Tag) {
			continue
		}
		foundPosts = append(foundPosts, p)
	}

	var foundUsers []*models.PublicUser
	for _, u := range users {
		if needle == "" || containsFold(u.Username, needle) || containsFold(u.Bio, needle) {
			foundUsers = append(foundUsers, u.Public())
		}
	}

	var foundSubs []*models.Subcategory
	for _, sc := range subs {
		if needle == "" ||
			containsFold(sc.Name, needle) ||
			containsFold(sc.Description, needle) ||
			anyContainsFold(sc.Tags, needle) {
			foundSubs = append(foundSubs, sc)
		}
	}

	return &models.SearchResults{
		Posts:         Paginate(foundPosts, c.Limit, 0),
		Users:         Paginate(foundUsers, searchUserLimit, 0),
		Subcategories: Paginate(foundSubs, searchSubcategoryLimit, 0),
	}
}

// Tags counts how many subcategories carry each tag, most common first.
// Equal counts keep first-seen order.
func Tags(subs []*models.Subcategory, subcategoryID *int64, limit int) []models.TagCount {
	var counts []models.TagCount
	index := make(map[string]int)
	for _, sc := range subs {
		if subcategoryID != nil && sc.ID != *subcategoryID {
			continue
		}
		for _, tag := range sc.Tags {
			if i, ok := index[tag]; ok {
				counts[i].Count++
				continue
			}
			index[tag] = len(counts)
			counts = append(counts, models.TagCount{Tag: tag, Count: 1})
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return Paginate(counts, limit, 0)
}

// BookmarkedPage wraps the bookmarked posts in the {posts,total} shape.
func BookmarkedPage(posts []*models.Post) *models.PostPage {
	if posts == nil {
		posts = []*models.Post{}
	}
	return &models.PostPage{Posts: posts, Total: len(posts)}
}

// FavoriteSubcategories returns the subcategories whose id is in ids, in
// store order. Unknown ids are ignored.
func FavoriteSubcategories(subs []*models.Subcategory, ids []int64) []*models.Subcategory {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	result := []*models.Subcategory{}
	for _, sc := range subs {
		if wanted[sc.ID] {
			result = append(result, sc)
		}
	}
	return result
}
