// Package store holds the in-memory entity collections of ActivityHub.
//
// A Store is not safe for concurrent use. The engine gives exclusive
// ownership of one Store to the store actor, which processes one request at a
// time; every mutation is therefore visible to the next request. Multi-step
// writes are not transactional: if a handler fails halfway, earlier steps
// stay applied.
package store

import (
	"fmt"
	"strings"
	"time"

	"activity-hub/internal/auth"
	"activity-hub/internal/models"
)

// Collection names a group of records with its own id sequence.
type Collection string

const (
	Users         Collection = "users"
	Subcategories Collection = "subcategories"
	Posts         Collection = "posts"
	Comments      Collection = "comments"
	Notifications Collection = "notifications"
)

type Options struct {
	// PasswordCost is the bcrypt cost used for seeded and new passwords.
	PasswordCost int
	// Now defaults to time.Now.
	Now func() time.Time
}

type Store struct {
	Users         []*models.User
	Subcategories []*models.Subcategory
	Posts         []*models.Post
	Comments      []*models.Comment
	Notifications []*models.Notification
	PostLikes     []models.PostLike
	Bookmarks     []models.Bookmark
	Subscriptions []models.Subscription

	// last id handed out per collection; never decreases
	counters map[Collection]int64

	passwordCost int
	now          func() time.Time
}

// New builds a store populated with seed data.
func New(opts Options) (*Store, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Store{
		passwordCost: opts.PasswordCost,
		now:          opts.Now,
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset discards every record and reloads the seed data.
func (s *Store) Reset() error {
	data := seedData()
	hash, err := auth.HashPassword(SeedPassword, s.passwordCost)
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}
	for _, u := range data.users {
		u.HashedPassword = hash
	}

	s.Users = data.users
	s.Subcategories = data.subcategories
	s.Posts = data.posts
	s.Comments = data.comments
	s.Notifications = data.notifications
	s.PostLikes = []models.PostLike{}
	s.Bookmarks = []models.Bookmark{}
	s.Subscriptions = []models.Subscription{}
	s.counters = make(map[Collection]int64)
	s.syncCounters()
	return nil
}

func (s *Store) Now() time.Time {
	return s.now().UTC()
}

func (s *Store) PasswordCost() int {
	return s.passwordCost
}

func (s *Store) nextID(c Collection) int64 {
	s.counters[c]++
	return s.counters[c]
}

// syncCounters raises each counter to at least the largest id present.
func (s *Store) syncCounters() {
	raise := func(c Collection, id int64) {
		if id > s.counters[c] {
			s.counters[c] = id
		}
	}
	for _, u := range s.Users {
		raise(Users, u.ID)
	}
	for _, sc := range s.Subcategories {
		raise(Subcategories, sc.ID)
	}
	for _, p := range s.Posts {
		raise(Posts, p.ID)
	}
	for _, c := range s.Comments {
		raise(Comments, c.ID)
	}
	for _, n := range s.Notifications {
		raise(Notifications, n.ID)
	}
}

// Users

func (s *Store) UserByID(id int64) *models.User {
	for _, u := range s.Users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *Store) UserByEmail(email string) *models.User {
	for _, u := range s.Users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

func (s *Store) AddUser(u *models.User) *models.User {
	u.ID = s.nextID(Users)
	if u.FavoriteSubcategoryIDs == nil {
		u.FavoriteSubcategoryIDs = []int64{}
	}
	s.Users = append(s.Users, u)
	return u
}

func (s *Store) Moderators() []*models.User {
	var mods []*models.User
	for _, u := range s.Users {
		if u.Role == models.RoleModerator {
			mods = append(mods, u)
		}
	}
	return mods
}

// UserStats derives the counters shown on a profile.
func (s *Store) UserStats(userID int64) *models.UserStats {
	stats := &models.UserStats{}
	for _, p := range s.Posts {
		if p.AuthorID == userID {
			stats.PostsCount++
			stats.LikesCount += p.LikesCount
		}
	}
	for _, sub := range s.Subscriptions {
		if sub.FollowingID == userID {
			stats.FollowersCount++
		}
		if sub.FollowerID == userID {
			stats.FollowingCount++
		}
	}
	return stats
}

// Subcategories

func (s *Store) SubcategoryByID(id int64) *models.Subcategory {
	for _, sc := range s.Subcategories {
		if sc.ID == id {
			return sc
		}
	}
	return nil
}

func (s *Store) AddSubcategory(sc *models.Subcategory) *models.Subcategory {
	sc.ID = s.nextID(Subcategories)
	if sc.Moderators == nil {
		sc.Moderators = []int64{}
	}
	if sc.Tags == nil {
		sc.Tags = []string{}
	}
	s.Subcategories = append(s.Subcategories, sc)
	return sc
}

// Posts

func (s *Store) PostByID(id int64) *models.Post {
	for _, p := range s.Posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AddPost puts the post at the front, so insertion order is newest first.
func (s *Store) AddPost(p *models.Post) *models.Post {
	p.ID = s.nextID(Posts)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Media.Photos == nil {
		p.Media.Photos = []string{}
	}
	posts := make([]*models.Post, 0, len(s.Posts)+1)
	posts = append(posts, p)
	s.Posts = append(posts, s.Posts...)
	return p
}

// DeletePost removes a post together with its comments, likes and bookmarks.
// It reports whether the post existed.
func (s *Store) DeletePost(id int64) bool {
	idx := -1
	for i, p := range s.Posts {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	s.Posts = append(s.Posts[:idx], s.Posts[idx+1:]...)

	comments := s.Comments[:0]
	for _, c := range s.Comments {
		if c.PostID != id {
			comments = append(comments, c)
		}
	}
	s.Comments = comments

	likes := s.PostLikes[:0]
	for _, l := range s.PostLikes {
		if l.PostID != id {
			likes = append(likes, l)
		}
	}
	s.PostLikes = likes

	bookmarks := s.Bookmarks[:0]
	for _, b := range s.Bookmarks {
		if b.PostID != id {
			bookmarks = append(bookmarks, b)
		}
	}
	s.Bookmarks = bookmarks
	return true
}

// Comments

func (s *Store) CommentByID(id int64) *models.Comment {
	for _, c := range s.Comments {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *Store) AddComment(c *models.Comment) *models.Comment {
	c.ID = s.nextID(Comments)
	s.Comments = append(s.Comments, c)
	return c
}

// Notifications

func (s *Store) NotificationByID(id int64) *models.Notification {
	for _, n := range s.Notifications {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (s *Store) AddNotification(n *models.Notification) *models.Notification {
	n.ID = s.nextID(Notifications)
	s.Notifications = append(s.Notifications, n)
	return n
}

// MarkAllRead marks every unread notification of the user and returns how
// many changed.
func (s *Store) MarkAllRead(userID int64) int {
	changed := 0
	for _, n := range s.Notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			changed++
		}
	}
	return changed
}

// Likes

func (s *Store) HasLike(userID, postID int64) bool {
	for _, l := range s.PostLikes {
		if l.UserID == userID && l.PostID == postID {
			return true
		}
	}
	return false
}

// AddLike records the pair unless it is already present.
func (s *Store) AddLike(userID, postID int64) bool {
	if s.HasLike(userID, postID) {
		return false
	}
	s.PostLikes = append(s.PostLikes, models.PostLike{UserID: userID, PostID: postID})
	return true
}

func (s *Store) RemoveLike(userID, postID int64) bool {
	for i, l := range s.PostLikes {
		if l.UserID == userID && l.PostID == postID {
			s.PostLikes = append(s.PostLikes[:i], s.PostLikes[i+1:]...)
			return true
		}
	}
	return false
}

// Bookmarks

func (s *Store) HasBookmark(userID, postID int64) bool {
	for _, b := range s.Bookmarks {
		if b.UserID == userID && b.PostID == postID {
			return true
		}
	}
	return false
}

func (s *Store) AddBookmark(userID, postID int64) bool {
	if s.HasBookmark(userID, postID) {
		return false
	}
	s.Bookmarks = append(s.Bookmarks, models.Bookmark{UserID: userID, PostID: postID})
	return true
}

func (s *Store) RemoveBookmark(userID, postID int64) bool {
	for i, b := range s.Bookmarks {
		if b.UserID == userID && b.PostID == postID {
			s.Bookmarks = append(s.Bookmarks[:i], s.Bookmarks[i+1:]...)
			return true
		}
	}
	return false
}

// BookmarkedPosts returns the user's bookmarked posts in bookmark order.
func (s *Store) BookmarkedPosts(userID int64) []*models.Post {
	posts := []*models.Post{}
	for _, b := range s.Bookmarks {
		if b.UserID != userID {
			continue
		}
		if p := s.PostByID(b.PostID); p != nil {
			posts = append(posts, p)
		}
	}
	return posts
}

// Subscriptions

func (s *Store) IsFollowing(followerID, followingID int64) bool {
	for _, sub := range s.Subscriptions {
		if sub.FollowerID == followerID && sub.FollowingID == followingID {
			return true
		}
	}
	return false
}

func (s *Store) AddSubscription(followerID, followingID int64) bool {
	if s.IsFollowing(followerID, followingID) {
		return false
	}
	s.Subscriptions = append(s.Subscriptions, models.Subscription{FollowerID: followerID, FollowingID: followingID})
	return true
}

func (s *Store) RemoveSubscription(followerID, followingID int64) bool {
	for i, sub := range s.Subscriptions {
		if sub.FollowerID == followerID && sub.FollowingID == followingID {
			s.Subscriptions = append(s.Subscriptions[:i], s.Subscriptions[i+1:]...)
			return true
		}
	}
	return false
}

// Stats reports collection sizes.
func (s *Store) Stats() *models.StoreStats {
	return &models.StoreStats{
		Users:         len(s.Users),
		Subcategories: len(s.Subcategories),
		Posts:         len(s.Posts),
		Comments:      len(s.Comments),
		Notifications: len(s.Notifications),
		Likes:         len(s.PostLikes),
		Bookmarks:     len(s.Bookmarks),
		Subscriptions: len(s.Subscriptions),
		ServerTime:    s.Now(),
	}
}
