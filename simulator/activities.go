package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"activity-hub/internal/api"
)

var themes = []string{
	"mountains", "coast", "desert", "forest", "city",
	"islands", "lakes", "canyons", "glaciers", "villages",
}

// SimulateActivities hands every user to a worker once per tick until ctx is
// done. A user is never processed by two workers at once.
func (s *Simulator) SimulateActivities(ctx context.Context) {
	s.logger.Infof("Starting activities simulation...")

	ticker := time.NewTicker(s.config.TickInterval)
	defer ticker.Stop()

	jobs := make(chan *SimulatedUser, len(s.users))
	var busy sync.Map

	var wg sync.WaitGroup
	for i := 0; i < s.config.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for user := range jobs {
				s.act(ctx, user)
				busy.Delete(user.ID)
			}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		case <-ticker.C:
			s.mu.RLock()
			for _, user := range s.users {
				if _, running := busy.LoadOrStore(user.ID, true); running {
					continue
				}
				select {
				case jobs <- user:
				default: // Don't block if channel is full
					busy.Delete(user.ID)
				}
			}
			s.mu.RUnlock()
		}
	}
}

// act rolls each activity once for user.
func (s *Simulator) act(ctx context.Context, user *SimulatedUser) {
	perTick := s.config.TickInterval.Hours()

	if s.chance(s.config.PostFrequency * perTick) {
		s.createPost(ctx, user)
	}
	if s.chance(s.config.CommentFrequency * perTick) {
		s.comment(ctx, user)
	}
	if s.chance(s.config.LikeFrequency * perTick) {
		s.like(ctx, user)
	}
	if s.chance(s.config.BookmarkFrequency * perTick) {
		s.bookmark(ctx, user)
	}
	if s.chance(s.config.FollowFrequency * perTick) {
		s.follow(ctx, user)
	}
	if s.chance(s.config.NotificationCheckRate) {
		s.readNotifications(ctx, user)
	}
}

func (s *Simulator) createPost(ctx context.Context, user *SimulatedUser) {
	s.mu.RLock()
	subcategoryID := s.subcategories[s.intn(len(s.subcategories))]
	s.mu.RUnlock()

	theme := themes[s.intn(len(themes))]
	post, err := user.Client.CreatePost(ctx, &api.CreatePostRequest{
		Title:         fmt.Sprintf("Trip to the %s by %s", theme, user.Username),
		Content:       fmt.Sprintf("Notes from %s, %s", user.Username, time.Now().Format(time.RFC3339)),
		SubcategoryID: subcategoryID,
		Tags:          []string{theme, "travel"},
	})
	if err != nil {
		return
	}

	s.mu.Lock()
	s.posts = append(s.posts, post.ID)
	s.mu.Unlock()
	user.Posts = append(user.Posts, post.ID)

	s.stats.mu.Lock()
	s.stats.TotalPosts++
	s.stats.mu.Unlock()
}

// comment replies to an existing comment ReplyRate of the time, otherwise
// starts a new thread.
func (s *Simulator) comment(ctx context.Context, user *SimulatedUser) {
	postID, ok := s.pickPost()
	if !ok {
		return
	}

	var parentID *int64
	if s.chance(s.config.ReplyRate) {
		tree, err := user.Client.Comments(ctx, postID)
		if err == nil && len(tree) > 0 {
			id := tree[s.intn(len(tree))].ID
			parentID = &id
		}
	}

	content := fmt.Sprintf("Comment from %s at %s", user.Username, time.Now().Format(time.RFC3339))
	if _, err := user.Client.CreateComment(ctx, postID, parentID, content); err != nil {
		return
	}

	s.stats.mu.Lock()
	s.stats.TotalComments++
	if parentID != nil {
		s.stats.TotalReplies++
	}
	s.stats.mu.Unlock()
}

func (s *Simulator) like(ctx context.Context, user *SimulatedUser) {
	postID, ok := s.pickPost()
	if !ok || user.Liked[postID] {
		return
	}
	state, err := user.Client.Like(ctx, postID)
	if err != nil {
		return
	}
	user.Liked[postID] = state.IsLiked

	s.stats.mu.Lock()
	s.stats.TotalLikes++
	s.stats.mu.Unlock()
}

func (s *Simulator) bookmark(ctx context.Context, user *SimulatedUser) {
	postID, ok := s.pickPost()
	if !ok || user.Bookmarked[postID] {
		return
	}
	state, err := user.Client.Bookmark(ctx, postID)
	if err != nil {
		return
	}
	user.Bookmarked[postID] = state.IsBookmarked

	s.stats.mu.Lock()
	s.stats.TotalBookmarks++
	s.stats.mu.Unlock()
}

func (s *Simulator) follow(ctx context.Context, user *SimulatedUser) {
	s.mu.RLock()
	target := s.users[s.intn(len(s.users))]
	s.mu.RUnlock()

	if target.ID == user.ID || user.Following[target.ID] {
		return
	}
	if err := user.Client.Follow(ctx, target.ID); err != nil {
		return
	}
	user.Following[target.ID] = true

	s.stats.mu.Lock()
	s.stats.TotalFollows++
	s.stats.mu.Unlock()
}

func (s *Simulator) readNotifications(ctx context.Context, user *SimulatedUser) {
	page, err := user.Client.Notifications(ctx, true, 0, 0)
	if err != nil || page.UnreadCount == 0 {
		return
	}
	if err := user.Client.MarkAllNotificationsRead(ctx); err != nil {
		return
	}

	s.stats.mu.Lock()
	s.stats.NotificationsRead += page.UnreadCount
	s.stats.mu.Unlock()
}

// pickPost draws a post with a Zipf distribution over creation order.
func (s *Simulator) pickPost() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.posts) == 0 {
		return 0, false
	}
	return s.posts[s.zipfIndex(len(s.posts))], true
}

func (s *Simulator) zipfIndex(n int) int {
	if n <= 1 {
		return 0
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return int(rand.NewZipf(s.rng, s.config.ZipfS, 1, uint64(n-1)).Uint64())
}

func (s *Simulator) intn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}

func (s *Simulator) chance(p float64) bool {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64() < p
}
