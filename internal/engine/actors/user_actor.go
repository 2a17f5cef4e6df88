package actors

import (
	"strings"
	"time"

	"activity-hub/internal/auth"
	"activity-hub/internal/models"
	"activity-hub/internal/notify"
	"activity-hub/internal/query"
	"activity-hub/internal/utils"

	"github.com/asaskevich/govalidator"
	"github.com/asynkron/protoactor-go/actor"
)

// Message types for user operations. ActorID is the authenticated caller,
// zero when the request carried no usable token.
type (
	LoginMsg struct {
		Email    string
		Password string
	}

	RegisterMsg struct {
		Email    string
		Password string
		Username string
	}

	GetCurrentUserMsg struct {
		ActorID int64
	}

	GetUserMsg struct {
		UserID int64
	}

	// UpdateProfileMsg changes only the non-nil fields.
	UpdateProfileMsg struct {
		ActorID                int64
		Username               *string
		Avatar                 *string
		Bio                    *string
		FavoriteSubcategoryIDs *[]int64
	}

	ChangePasswordMsg struct {
		ActorID         int64
		CurrentPassword string
		NewPassword     string
	}

	ListUsersMsg struct {
		Search string
		Limit  int
		Offset int
	}

	FollowUserMsg struct {
		ActorID  int64
		TargetID int64
	}

	UnfollowUserMsg struct {
		ActorID  int64
		TargetID int64
	}

	GetFavoritesMsg struct {
		ActorID int64
	}

	AddFavoriteMsg struct {
		ActorID       int64
		SubcategoryID int64
	}

	RemoveFavoriteMsg struct {
		ActorID       int64
		SubcategoryID int64
	}
)

func (a *StoreActor) handleLogin(context actor.Context, msg *LoginMsg) {
	startTime := time.Now()
	defer a.observe("login", startTime)

	user := a.store.UserByEmail(msg.Email)
	if user == nil || !auth.CheckPassword(user.HashedPassword, msg.Password) {
		a.logger.Infof("StoreActor: Login failed for %s", msg.Email)
		context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "Invalid credentials", nil))
		return
	}

	a.logger.Infof("StoreActor: Login successful for user %d", user.ID)
	context.Respond(user.Public())
}

func (a *StoreActor) handleRegister(context actor.Context, msg *RegisterMsg) {
	startTime := time.Now()
	defer a.observe("register", startTime)

	email := strings.TrimSpace(msg.Email)
	username := strings.TrimSpace(msg.Username)
	if email == "" || msg.Password == "" || username == "" {
		context.Respond(utils.NewInvalidInputError("Email, password and username are required"))
		return
	}
	if !govalidator.IsEmail(email) {
		context.Respond(utils.NewInvalidInputError("Invalid email"))
		return
	}
	if a.store.UserByEmail(email) != nil {
		context.Respond(utils.NewDuplicateError("Email already exists"))
		return
	}

	hash, err := auth.HashPassword(msg.Password, a.store.PasswordCost())
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Password cannot be used", err))
		return
	}

	user := a.store.AddUser(&models.User{
		Email:                  email,
		HashedPassword:         hash,
		Username:               username,
		CreatedAt:              a.store.Now(),
		FavoriteSubcategoryIDs: []int64{},
		Role:                   models.RoleUser,
	})
	a.persist(context)

	a.logger.Infof("StoreActor: Registered user %d (%s)", user.ID, user.Email)
	context.Respond(user.Public())
}

func (a *StoreActor) withStats(user *models.User) *models.PublicUser {
	public := user.Public()
	public.Stats = a.store.UserStats(user.ID)
	return public
}

func (a *StoreActor) handleGetCurrentUser(context actor.Context, msg *GetCurrentUserMsg) {
	user, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	context.Respond(a.withStats(user))
}

func (a *StoreActor) handleGetUser(context actor.Context, msg *GetUserMsg) {
	user := a.store.UserByID(msg.UserID)
	if user == nil {
		context.Respond(utils.NewNotFoundError("User"))
		return
	}
	context.Respond(a.withStats(user))
}

func (a *StoreActor) handleUpdateProfile(context actor.Context, msg *UpdateProfileMsg) {
	startTime := time.Now()
	defer a.observe("update_profile", startTime)

	user, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}

	if msg.Username != nil {
		username := strings.TrimSpace(*msg.Username)
		if username == "" {
			context.Respond(utils.NewInvalidInputError("Username cannot be empty"))
			return
		}
		user.Username = username
	}
	if msg.Avatar != nil {
		user.Avatar = *msg.Avatar
	}
	if msg.Bio != nil {
		user.Bio = *msg.Bio
	}
	if msg.FavoriteSubcategoryIDs != nil {
		user.FavoriteSubcategoryIDs = uniqueIDs(*msg.FavoriteSubcategoryIDs)
	}
	a.persist(context)

	context.Respond(user.Public())
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (a *StoreActor) handleChangePassword(context actor.Context, msg *ChangePasswordMsg) {
	startTime := time.Now()
	defer a.observe("change_password", startTime)

	user, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	if !auth.CheckPassword(user.HashedPassword, msg.CurrentPassword) {
		context.Respond(utils.NewInvalidInputError("Current password is incorrect"))
		return
	}
	if msg.NewPassword == "" {
		context.Respond(utils.NewInvalidInputError("New password is required"))
		return
	}

	hash, err := auth.HashPassword(msg.NewPassword, a.store.PasswordCost())
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Password cannot be used", err))
		return
	}
	user.HashedPassword = hash
	a.persist(context)

	a.logger.Infof("StoreActor: Password changed for user %d", user.ID)
	context.Respond(true)
}

func (a *StoreActor) handleListUsers(context actor.Context, msg *ListUsersMsg) {
	context.Respond(query.ListUsers(a.store.Users, msg.Search, msg.Limit, msg.Offset))
}

func (a *StoreActor) handleFollow(context actor.Context, msg *FollowUserMsg) {
	startTime := time.Now()
	defer a.observe("follow", startTime)

	follower, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	target := a.store.UserByID(msg.TargetID)
	if target == nil {
		context.Respond(utils.NewNotFoundError("User"))
		return
	}
	if target.ID == follower.ID {
		context.Respond(utils.NewInvalidInputError("Cannot follow yourself"))
		return
	}
	if !a.store.AddSubscription(follower.ID, target.ID) {
		context.Respond(utils.NewDuplicateError("Already following"))
		return
	}

	created := notify.UserFollowed(a.store, follower, target)
	a.persist(context)
	a.deliver(created)

	context.Respond(true)
}

func (a *StoreActor) handleUnfollow(context actor.Context, msg *UnfollowUserMsg) {
	startTime := time.Now()
	defer a.observe("unfollow", startTime)

	follower, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	if a.store.UserByID(msg.TargetID) == nil {
		context.Respond(utils.NewNotFoundError("User"))
		return
	}
	if !a.store.RemoveSubscription(follower.ID, msg.TargetID) {
		context.Respond(utils.NewInvalidInputError("Not following"))
		return
	}
	a.persist(context)

	context.Respond(true)
}

func (a *StoreActor) handleGetFavorites(context actor.Context, msg *GetFavoritesMsg) {
	user, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	favorites := query.FavoriteSubcategories(a.store.Subcategories, user.FavoriteSubcategoryIDs)
	context.Respond(models.CloneSubcategories(favorites))
}

func (a *StoreActor) handleAddFavorite(context actor.Context, msg *AddFavoriteMsg) {
	user, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	if a.store.SubcategoryByID(msg.SubcategoryID) == nil {
		context.Respond(utils.NewNotFoundError("Subcategory"))
		return
	}
	for _, id := range user.FavoriteSubcategoryIDs {
		if id == msg.SubcategoryID {
			context.Respond(true)
			return
		}
	}
	favorites := make([]int64, 0, len(user.FavoriteSubcategoryIDs)+1)
	favorites = append(favorites, user.FavoriteSubcategoryIDs...)
	user.FavoriteSubcategoryIDs = append(favorites, msg.SubcategoryID)
	a.persist(context)

	context.Respond(true)
}

func (a *StoreActor) handleRemoveFavorite(context actor.Context, msg *RemoveFavoriteMsg) {
	user, appErr := a.requireUser(msg.ActorID)
	if appErr != nil {
		context.Respond(appErr)
		return
	}
	favorites := make([]int64, 0, len(user.FavoriteSubcategoryIDs))
	for _, id := range user.FavoriteSubcategoryIDs {
		if id != msg.SubcategoryID {
			favorites = append(favorites, id)
		}
	}
	if len(favorites) != len(user.FavoriteSubcategoryIDs) {
		user.FavoriteSubcategoryIDs = favorites
		a.persist(context)
	}

	context.Respond(true)
}
