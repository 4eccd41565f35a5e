package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/papacapim/server/store"
	"github.com/papacapim/server/utils"
)

// LikeController manages likes on posts.
type LikeController struct {
	st *store.Store
}

// NewLikeController creates a new LikeController instance.
func NewLikeController(st *store.Store) *LikeController {
	return &LikeController{st: st}
}

// Create likes post :id as the acting user. Liking twice is a 204 no-op.
func (l *LikeController) Create(ctx *gin.Context) {
	post, ok := findPost(ctx, l.st, "id")
	if !ok {
		return
	}
	like, err := l.st.Like(reqCtx(ctx), actingLogin(ctx), post.ID)
	if err != nil {
		if store.IsUniqueViolation(err) {
			utils.NoContent(ctx)
			return
		}
		utils.Fail(ctx, err)
		return
	}
	utils.Created(ctx, like)
}

// List returns the likes of post :id in the order they were given.
func (l *LikeController) List(ctx *gin.Context) {
	postID, ok := postIDParam(ctx, "id")
	if !ok {
		return
	}
	likes, err := l.st.LikesFor(reqCtx(ctx), postID)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, likes)
}

// Delete withdraws the acting user's like on post :id; :likeId is not consulted.
func (l *LikeController) Delete(ctx *gin.Context) {
	id, ok := parseUint(ctx.Param("id"))
	if !ok {
		utils.NoContent(ctx)
		return
	}
	if err := l.st.Unlike(reqCtx(ctx), actingLogin(ctx), id); err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.NoContent(ctx)
}
