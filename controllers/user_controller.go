package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/papacapim/server/auth"
	"github.com/papacapim/server/models"
	"github.com/papacapim/server/store"
	"github.com/papacapim/server/utils"
)

const profileCacheTTL = time.Hour

// UserController manages accounts.
type UserController struct {
	st            *store.Store
	registerLimit int
}

// NewUserController creates a UserController; registerLimit caps successful sign-ups per IP per day.
func NewUserController(st *store.Store, registerLimit int) *UserController {
	return &UserController{st: st, registerLimit: registerLimit}
}

type createUserRequest struct {
	User struct {
		Login                string `json:"login" binding:"required,min=3,max=64"`
		Name                 string `json:"name" binding:"required,min=3,max=100"`
		Password             string `json:"password" binding:"required,min=6,max=72"`
		PasswordConfirmation string `json:"password_confirmation" binding:"required"`
	} `json:"user"`
}

type updateUserRequest struct {
	User struct {
		Login                *string `json:"login" binding:"omitempty,min=3,max=64"`
		Name                 *string `json:"name" binding:"omitempty,min=3,max=100"`
		Password             *string `json:"password" binding:"omitempty,min=6,max=72"`
		PasswordConfirmation *string `json:"password_confirmation"`
	} `json:"user"`
}

// Create registers a new user.
func (u *UserController) Create(ctx *gin.Context) {
	ip := ctx.ClientIP()
	if !utils.RegistrationDailyLimitCheck(ip, u.registerLimit) {
		utils.Error(ctx, http.StatusTooManyRequests, 42902, "daily registration limit reached")
		return
	}

	var req createUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}
	login := strings.TrimSpace(req.User.Login)
	if !validLogin(login) {
		utils.Error(ctx, http.StatusBadRequest, 40007, "login may only contain letters, digits and ._-")
		return
	}
	if req.User.Password != req.User.PasswordConfirmation {
		utils.Error(ctx, http.StatusBadRequest, 40002, "passwords do not match")
		return
	}

	hash, err := utils.HashPassword(req.User.Password)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	user := models.User{Login: login, Name: strings.TrimSpace(req.User.Name), PasswordHash: hash}
	if err := u.st.CreateUser(reqCtx(ctx), &user); err != nil {
		if store.IsUniqueViolation(err) {
			utils.Error(ctx, http.StatusBadRequest, 40003, "login already exists")
			return
		}
		utils.Fail(ctx, err)
		return
	}
	utils.RegistrationDailyRecord(ip)

	utils.Created(ctx, user)
}

// List returns a page of users, optionally filtered by ?search.
func (u *UserController) List(ctx *gin.Context) {
	page, ok := parsePage(ctx)
	if !ok {
		return
	}
	users, err := u.st.ListUsers(reqCtx(ctx), page, strings.TrimSpace(ctx.Query("search")))
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, users)
}

// Show returns the public profile for :login.
func (u *UserController) Show(ctx *gin.Context) {
	login := ctx.Param("login")
	key := utils.UserCacheKey(login)
	if b, ok := utils.CacheGetBytes(key); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	user, err := u.st.UserByLogin(reqCtx(ctx), login)
	if !found(ctx, err, 40401, "user not found") {
		return
	}

	utils.CacheSetJSON(key, user, profileCacheTTL)
	utils.Success(ctx, user)
}

// Update changes the acting user's login, name or password. A new password ends every session.
func (u *UserController) Update(ctx *gin.Context) {
	target, ok := findUser(ctx, u.st, ctx.Param("login"))
	if !ok {
		return
	}
	if err := auth.Authorize(actingLogin(ctx), target.Login); err != nil {
		utils.Error(ctx, http.StatusForbidden, 40301, "you can only update your own account")
		return
	}

	var req updateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	var ch store.UserChanges
	if req.User.Login != nil {
		login := strings.TrimSpace(*req.User.Login)
		if !validLogin(login) {
			utils.Error(ctx, http.StatusBadRequest, 40007, "login may only contain letters, digits and ._-")
			return
		}
		ch.Login = &login
	}
	if req.User.Name != nil {
		name := strings.TrimSpace(*req.User.Name)
		ch.Name = &name
	}
	if req.User.Password != nil {
		if req.User.PasswordConfirmation == nil || *req.User.Password != *req.User.PasswordConfirmation {
			utils.Error(ctx, http.StatusBadRequest, 40002, "passwords do not match")
			return
		}
		hash, err := utils.HashPassword(*req.User.Password)
		if err != nil {
			utils.Fail(ctx, err)
			return
		}
		ch.PasswordHash = &hash
	}

	oldLogin := target.Login
	if err := u.st.UpdateUser(reqCtx(ctx), &target, ch); err != nil {
		if store.IsUniqueViolation(err) {
			utils.Error(ctx, http.StatusBadRequest, 40003, "login already exists")
			return
		}
		utils.Fail(ctx, err)
		return
	}
	utils.CacheDelete(utils.UserCacheKey(oldLogin), utils.UserCacheKey(target.Login))

	utils.Created(ctx, target)
}

// Delete removes the acting user's account along with everything it owns.
func (u *UserController) Delete(ctx *gin.Context) {
	target, ok := findUser(ctx, u.st, ctx.Param("login"))
	if !ok {
		return
	}
	if err := auth.Authorize(actingLogin(ctx), target.Login); err != nil {
		utils.Error(ctx, http.StatusForbidden, 40302, "you can only delete your own account")
		return
	}

	if err := u.st.DeleteUser(reqCtx(ctx), target.ID); err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.CacheDelete(utils.UserCacheKey(target.Login))

	utils.NoContent(ctx)
}
