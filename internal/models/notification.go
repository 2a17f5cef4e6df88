package models

import "time"

type NotificationType string

const (
	NotificationLike       NotificationType = "like"
	NotificationComment    NotificationType = "comment"
	NotificationFollow     NotificationType = "follow"
	NotificationMention    NotificationType = "mention"
	NotificationModeration NotificationType = "moderation"
)

// Notification is addressed to UserID. The source user fields are a snapshot
// taken when the notification was created and are not re-joined on read.
type Notification struct {
	ID               int64            `json:"id"`
	Type             NotificationType `json:"type"`
	UserID           int64            `json:"userId"`
	SourceUserID     int64            `json:"sourceUserId"`
	SourceUserName   string           `json:"sourceUserName"`
	SourceUserAvatar string           `json:"sourceUserAvatar"`
	PostID           *int64           `json:"postId,omitempty"`
	CommentID        *int64           `json:"commentId,omitempty"`
	SubcategoryID    *int64           `json:"subcategoryId,omitempty"`
	Message          string           `json:"message"`
	IsRead           bool             `json:"isRead"`
	CreatedAt        time.Time        `json:"createdAt"`
}

type NotificationPage struct {
	Notifications []*Notification `json:"notifications"`
	Total         int             `json:"total"`
	UnreadCount   int             `json:"unreadCount"`
}

func (n *Notification) Clone() *Notification {
	cp := *n
	return &cp
}

func CloneNotifications(notifications []*Notification) []*Notification {
	out := make([]*Notification, len(notifications))
	for i, n := range notifications {
		out[i] = n.Clone()
	}
	return out
}
