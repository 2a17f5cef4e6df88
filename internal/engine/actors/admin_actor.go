package actors

import (
	"activity-hub/internal/models"
	"activity-hub/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

type (
	GetStatsMsg struct {
		ActorID int64
	}

	// ResetStoreMsg drops every change and restores the seed data. The
	// stored snapshot is deleted as well.
	ResetStoreMsg struct {
		ActorID int64
	}

	// HealthMsg is answered without authentication.
	HealthMsg struct{}
)

func (a *StoreActor) requireAdmin(userID int64) *utils.AppError {
	user, appErr := a.requireUser(userID)
	if appErr != nil {
		return appErr
	}
	if user.Role != models.RoleAdmin {
		return utils.NewForbiddenError()
	}
	return nil
}

func (a *StoreActor) handleGetStats(context actor.Context, msg *GetStatsMsg) {
	if appErr := a.requireAdmin(msg.ActorID); appErr != nil {
		context.Respond(appErr)
		return
	}
	context.Respond(a.store.Stats())
}

func (a *StoreActor) handleHealth(context actor.Context) {
	context.Respond(a.store.Stats())
}

func (a *StoreActor) handleResetStore(context actor.Context, msg *ResetStoreMsg) {
	if appErr := a.requireAdmin(msg.ActorID); appErr != nil {
		context.Respond(appErr)
		return
	}
	if err := a.store.Reset(); err != nil {
		a.logger.Errorf("StoreActor: Reset failed: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to reset store", err))
		return
	}
	if a.persistPID != nil {
		context.Send(a.persistPID, &DeleteSnapshotMsg{})
	}

	a.logger.Infof("StoreActor: Store reset to seed data by user %d", msg.ActorID)
	context.Respond(a.store.Stats())
}
