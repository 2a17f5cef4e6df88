package models

import "time"

type SearchResults struct {
	Posts         []*Post        `json:"posts"`
	Users         []*PublicUser  `json:"users"`
	Subcategories []*Subcategory `json:"subcategories"`
}

// StoreStats reports collection sizes.
type StoreStats struct {
	Users         int       `json:"users"`
	Subcategories int       `json:"subcategories"`
	Posts         int       `json:"posts"`
	Comments      int       `json:"comments"`
	Notifications int       `json:"notifications"`
	Likes         int       `json:"likes"`
	Bookmarks     int       `json:"bookmarks"`
	Subscriptions int       `json:"subscriptions"`
	ServerTime    time.Time `json:"serverTime"`
}
