package actors

import (
	"activity-hub/internal/models"
	"activity-hub/internal/query"
	"activity-hub/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

type (
	ListNotificationsMsg struct {
		ActorID    int64
		UnreadOnly bool
		Limit      int
		Offset     int
	}

	MarkNotificationReadMsg struct {
		ActorID        int64
		NotificationID int64
	}

	MarkAllNotificationsReadMsg struct {
		ActorID int64
	}
)

func (a *StoreActor) handleListNotifications(context actor.Context, msg *ListNotificationsMsg) {
	user, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	page := query.ListNotifications(a.store.Notifications, query.NotificationCriteria{
		UserID:     user.ID,
		UnreadOnly: msg.UnreadOnly,
		Limit:      msg.Limit,
		Offset:     msg.Offset,
	})
	page.Notifications = models.CloneNotifications(page.Notifications)
	context.Respond(page)
}

// handleMarkNotificationRead only lets the recipient mark a notification.
func (a *StoreActor) handleMarkNotificationRead(context actor.Context, msg *MarkNotificationReadMsg) {
	user, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	n := a.store.NotificationByID(msg.NotificationID)
	if n == nil {
		context.Respond(utils.NewNotFoundError("Notification"))
		return
	}
	if n.UserID != user.ID {
		context.Respond(utils.NewForbiddenError())
		return
	}
	if !n.IsRead {
		n.IsRead = true
		a.persist(context)
	}
	context.Respond(true)
}

func (a *StoreActor) handleMarkAllNotificationsRead(context actor.Context, msg *MarkAllNotificationsReadMsg) {
	user, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	if changed := a.store.MarkAllRead(user.ID); changed > 0 {
		a.logger.Debugf("StoreActor: Marked %d notifications read for user %d", changed, user.ID)
		a.persist(context)
	}
	context.Respond(true)
}
