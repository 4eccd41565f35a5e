package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/papacapim/server/store"
	"github.com/papacapim/server/utils"
)

// FollowerController manages follow edges between users.
type FollowerController struct {
	st *store.Store
}

// NewFollowerController creates a new FollowerController instance.
func NewFollowerController(st *store.Store) *FollowerController {
	return &FollowerController{st: st}
}

// Create makes the acting user follow :login. Following twice is a 204 no-op.
func (f *FollowerController) Create(ctx *gin.Context) {
	target, err := f.st.UserByLogin(reqCtx(ctx), ctx.Param("login"))
	if !found(ctx, err, 40401, "user not found") {
		return
	}
	acting := actingLogin(ctx)
	if acting == target.Login {
		utils.Error(ctx, http.StatusBadRequest, 40005, "cannot follow yourself")
		return
	}

	edge, err := f.st.Follow(reqCtx(ctx), acting, target.Login)
	if err != nil {
		if store.IsUniqueViolation(err) {
			utils.NoContent(ctx)
			return
		}
		utils.Fail(ctx, err)
		return
	}
	utils.Created(ctx, edge)
}

// List returns the users following :login, oldest follow first. An unknown login has none.
func (f *FollowerController) List(ctx *gin.Context) {
	users, err := f.st.FollowersOf(reqCtx(ctx), ctx.Param("login"))
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, users)
}

// Delete removes the acting user's edge to :login. The trailing id is not consulted.
func (f *FollowerController) Delete(ctx *gin.Context) {
	if err := f.st.Unfollow(reqCtx(ctx), actingLogin(ctx), ctx.Param("login")); err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.NoContent(ctx)
}
