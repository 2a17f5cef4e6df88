// Package notify appends notification records for the mutations that fan
// out to other users. Each function runs inside the handler that triggered
// it and returns the notifications it created, possibly none.
package notify

import (
	"fmt"

	"activity-hub/internal/models"
	"activity-hub/internal/store"
)

const titleExcerptLen = 30

func excerpt(title string) string {
	runes := []rune(title)
	if len(runes) > titleExcerptLen {
		runes = runes[:titleExcerptLen]
	}
	return string(runes) + "..."
}

func ref(v int64) *int64 { return &v }

func push(s *store.Store, recipient int64, source *models.User, kind models.NotificationType, message string) *models.Notification {
	return s.AddNotification(&models.Notification{
		Type:             kind,
		UserID:           recipient,
		SourceUserID:     source.ID,
		SourceUserName:   source.Username,
		SourceUserAvatar: source.Avatar,
		Message:          message,
		IsRead:           false,
		CreatedAt:        s.Now(),
	})
}

// SubcategorySubmitted notifies every user with the moderator role that a
// subcategory awaits approval. Nothing is sent when the subcategory was
// auto-approved.
func SubcategorySubmitted(s *store.Store, creator *models.User, sc *models.Subcategory) []*models.Notification {
	if sc.IsApproved {
		return nil
	}
	var created []*models.Notification
	for _, mod := range s.Moderators() {
		n := push(s, mod.ID, creator, models.NotificationModeration,
			fmt.Sprintf("New subcategory %q awaits approval", sc.Name))
		n.SubcategoryID = ref(sc.ID)
		created = append(created, n)
	}
	return created
}

// SubcategoryApproved tells the creator their subcategory went live.
func SubcategoryApproved(s *store.Store, approver *models.User, sc *models.Subcategory) []*models.Notification {
	creator := s.UserByID(sc.CreatedByUserID)
	if creator == nil {
		return nil
	}
	n := push(s, creator.ID, approver, models.NotificationModeration,
		fmt.Sprintf("Your subcategory %q has been approved", sc.Name))
	n.SubcategoryID = ref(sc.ID)
	return []*models.Notification{n}
}

// CommentAdded notifies the post author and, for replies, the author of the
// parent comment. Nobody is notified about their own comment.
func CommentAdded(s *store.Store, commenter *models.User, post *models.Post, c *models.Comment, parent *models.Comment) []*models.Notification {
	var created []*models.Notification
	if post.AuthorID != commenter.ID {
		n := push(s, post.AuthorID, commenter, models.NotificationComment,
			fmt.Sprintf("commented on your post %q", excerpt(post.Title)))
		n.PostID = ref(post.ID)
		n.CommentID = ref(c.ID)
		created = append(created, n)
	}
	if parent != nil && parent.AuthorID != commenter.ID {
		n := push(s, parent.AuthorID, commenter, models.NotificationComment, "replied to your comment")
		n.PostID = ref(post.ID)
		n.CommentID = ref(c.ID)
		created = append(created, n)
	}
	return created
}

// PostLiked notifies the post author unless they liked their own post.
func PostLiked(s *store.Store, liker *models.User, post *models.Post) []*models.Notification {
	if post.AuthorID == liker.ID {
		return nil
	}
	n := push(s, post.AuthorID, liker, models.NotificationLike,
		fmt.Sprintf("liked your post %q", excerpt(post.Title)))
	n.PostID = ref(post.ID)
	return []*models.Notification{n}
}

func UserFollowed(s *store.Store, follower, followed *models.User) []*models.Notification {
	return []*models.Notification{
		push(s, followed.ID, follower, models.NotificationFollow, "started following you"),
	}
}
