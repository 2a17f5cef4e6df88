package store

import (
	"encoding/json"
	"fmt"

	"activity-hub/internal/models"
)

// snapshot is the persisted form of a Store. A nil collection means the
// collection was not part of the snapshot.
type snapshot struct {
	Users         *[]*models.User         `json:"users,omitempty"`
	Subcategories *[]*models.Subcategory  `json:"subcategories,omitempty"`
	Posts         *[]*models.Post         `json:"posts,omitempty"`
	Comments      *[]*models.Comment      `json:"comments,omitempty"`
	Notifications *[]*models.Notification `json:"notifications,omitempty"`
	PostLikes     *[]models.PostLike      `json:"postLikes,omitempty"`
	Bookmarks     *[]models.Bookmark      `json:"bookmarks,omitempty"`
	Subscriptions *[]models.Subscription  `json:"subscriptions,omitempty"`
	Counters      map[Collection]int64    `json:"counters,omitempty"`
}

// Snapshot encodes every collection and the id counters as JSON.
func (s *Store) Snapshot() ([]byte, error) {
	counters := make(map[Collection]int64, len(s.counters))
	for k, v := range s.counters {
		counters[k] = v
	}
	data, err := json.Marshal(snapshot{
		Users:         &s.Users,
		Subcategories: &s.Subcategories,
		Posts:         &s.Posts,
		Comments:      &s.Comments,
		Notifications: &s.Notifications,
		PostLikes:     &s.PostLikes,
		Bookmarks:     &s.Bookmarks,
		Subscriptions: &s.Subscriptions,
		Counters:      counters,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// Overlay applies a snapshot on top of the current contents. Each collection
// present in the snapshot replaces the current one; absent collections are
// left alone. Counters never move backwards.
func (s *Store) Overlay(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}
	if err := snap.validate(); err != nil {
		return err
	}

	if snap.Users != nil {
		s.Users = *snap.Users
		for _, u := range s.Users {
			if u.FavoriteSubcategoryIDs == nil {
				u.FavoriteSubcategoryIDs = []int64{}
			}
		}
	}
	if snap.Subcategories != nil {
		s.Subcategories = *snap.Subcategories
	}
	if snap.Posts != nil {
		s.Posts = *snap.Posts
	}
	if snap.Comments != nil {
		s.Comments = *snap.Comments
	}
	if snap.Notifications != nil {
		s.Notifications = *snap.Notifications
	}
	if snap.PostLikes != nil {
		s.PostLikes = *snap.PostLikes
	}
	if snap.Bookmarks != nil {
		s.Bookmarks = *snap.Bookmarks
	}
	if snap.Subscriptions != nil {
		s.Subscriptions = *snap.Subscriptions
	}

	for c, v := range snap.Counters {
		if v > s.counters[c] {
			s.counters[c] = v
		}
	}
	s.syncCounters()
	return nil
}

func (snap *snapshot) validate() error {
	switch {
	case hasNull(snap.Users):
		return fmt.Errorf("decoding snapshot: null entry in %s", Users)
	case hasNull(snap.Subcategories):
		return fmt.Errorf("decoding snapshot: null entry in %s", Subcategories)
	case hasNull(snap.Posts):
		return fmt.Errorf("decoding snapshot: null entry in %s", Posts)
	case hasNull(snap.Comments):
		return fmt.Errorf("decoding snapshot: null entry in %s", Comments)
	case hasNull(snap.Notifications):
		return fmt.Errorf("decoding snapshot: null entry in %s", Notifications)
	}
	return nil
}

func hasNull[T any](items *[]*T) bool {
	if items == nil {
		return false
	}
	for _, item := range *items {
		if item == nil {
			return true
		}
	}
	return false
}
