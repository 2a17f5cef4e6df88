package actors

import (
	"strings"
	"time"

	"activity-hub/internal/models"
	"activity-hub/internal/notify"
	"activity-hub/internal/query"
	"activity-hub/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

type (
	GetCategoryTreeMsg struct{}

	// ListSubcategoriesMsg lists approved subcategories, or all of them when
	// ShowAll is set. MainCategoryID narrows to one main category.
	ListSubcategoriesMsg struct {
		MainCategoryID *int64
		ShowAll        bool
	}

	CreateSubcategoryMsg struct {
		ActorID        int64
		Name           string
		Description    string
		MainCategoryID int64
		Tags           []string
	}

	ApproveSubcategoryMsg struct {
		ActorID       int64
		SubcategoryID int64
	}

	// GetTagsMsg limits are taken as given; the HTTP layer fills defaults.
	GetTagsMsg struct {
		SubcategoryID *int64
		Limit         int
	}
)

func (a *StoreActor) handleGetCategoryTree(context actor.Context) {
	tree := query.CategoryTree(a.store.Subcategories)
	for i := range tree {
		tree[i].Subcategories = models.CloneSubcategories(tree[i].Subcategories)
	}
	context.Respond(tree)
}

func (a *StoreActor) handleListSubcategories(context actor.Context, msg *ListSubcategoriesMsg) {
	subs := query.ListSubcategories(a.store.Subcategories, msg.MainCategoryID, msg.ShowAll)
	context.Respond(models.CloneSubcategories(subs))
}

func (a *StoreActor) handleCreateSubcategory(context actor.Context, msg *CreateSubcategoryMsg) {
	startTime := time.Now()
	defer a.observe("create_subcategory", startTime)

	creator, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	name := strings.TrimSpace(msg.Name)
	if name == "" {
		context.Respond(utils.NewInvalidInputError("Name is required"))
		return
	}
	if _, ok := models.FindMainCategory(msg.MainCategoryID); !ok {
		context.Respond(utils.NewNotFoundError("Main category"))
		return
	}

	tags := msg.Tags
	if tags == nil {
		tags = []string{}
	}
	sc := &models.Subcategory{
		Name:            name,
		Description:     msg.Description,
		MainCategoryID:  msg.MainCategoryID,
		CreatedByUserID: creator.ID,
		IsApproved:      creator.IsStaff(),
		Moderators:      []int64{},
		Tags:            append([]string{}, tags...),
		CreatedAt:       a.store.Now(),
	}
	if sc.IsApproved {
		sc.Moderators = []int64{creator.ID}
	}
	a.store.AddSubcategory(sc)

	created := notify.SubcategorySubmitted(a.store, creator, sc)
	a.persist(context)
	a.deliver(created)

	a.logger.Infof("StoreActor: Created subcategory %d (%s), approved=%v", sc.ID, sc.Name, sc.IsApproved)
	context.Respond(sc.Clone())
}

func (a *StoreActor) handleApproveSubcategory(context actor.Context, msg *ApproveSubcategoryMsg) {
	startTime := time.Now()
	defer a.observe("approve_subcategory", startTime)

	approver, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	if !approver.IsStaff() {
		context.Respond(utils.NewForbiddenError())
		return
	}
	sc := a.store.SubcategoryByID(msg.SubcategoryID)
	if sc == nil {
		context.Respond(utils.NewNotFoundError("Subcategory"))
		return
	}

	sc.IsApproved = true
	if !sc.HasModerator(approver.ID) {
		moderators := make([]int64, 0, len(sc.Moderators)+1)
		moderators = append(moderators, sc.Moderators...)
		sc.Moderators = append(moderators, approver.ID)
	}

	created := notify.SubcategoryApproved(a.store, approver, sc)
	a.persist(context)
	a.deliver(created)

	a.logger.Infof("StoreActor: Subcategory %d approved by user %d", sc.ID, approver.ID)
	context.Respond(sc.Clone())
}

func (a *StoreActor) handleGetTags(context actor.Context, msg *GetTagsMsg) {
	context.Respond(query.Tags(a.store.Subcategories, msg.SubcategoryID, msg.Limit))
}
