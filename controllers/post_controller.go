package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/papacapim/server/auth"
	"github.com/papacapim/server/feed"
	"github.com/papacapim/server/middleware"
	"github.com/papacapim/server/models"
	"github.com/papacapim/server/store"
	"github.com/papacapim/server/utils"
)

// PostController manages posts and replies.
type PostController struct {
	st   *store.Store
	feed *feed.Composer
}

// NewPostController creates a new PostController instance.
func NewPostController(st *store.Store, composer *feed.Composer) *PostController {
	return &PostController{st: st, feed: composer}
}

// Create publishes a top-level post by the acting user.
func (p *PostController) Create(ctx *gin.Context) {
	var req struct {
		Post struct {
			Message string `json:"message" binding:"required"`
		} `json:"post"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}
	p.publish(ctx, req.Post.Message, nil)
}

// CreateReply answers post :id. The parent must exist.
func (p *PostController) CreateReply(ctx *gin.Context) {
	parent, ok := findPost(ctx, p.st, "id")
	if !ok {
		return
	}

	var req struct {
		Reply struct {
			Message string `json:"message" binding:"required"`
		} `json:"reply"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}
	p.publish(ctx, req.Reply.Message, &parent.ID)
}

func (p *PostController) publish(ctx *gin.Context, raw string, parentID *uint) {
	msg, ok := cleanMessage(ctx, raw)
	if !ok {
		return
	}
	post := models.Post{UserLogin: actingLogin(ctx), PostID: parentID, Message: msg}
	if err := p.st.CreatePost(reqCtx(ctx), &post); err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Created(ctx, post)
}

// List returns the timeline. ?feed=1 narrows it to followed authors and needs a session.
func (p *PostController) List(ctx *gin.Context) {
	page, ok := parsePage(ctx)
	if !ok {
		return
	}
	feedMode := false
	if raw := strings.TrimSpace(ctx.Query("feed")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40008, "feed must be an integer")
			return
		}
		feedMode = n == 1
	}

	posts, err := p.feed.ListPosts(reqCtx(ctx), feed.Query{
		Page:   page,
		Feed:   feedMode,
		Search: ctx.Query("search"),
		Token:  ctx.GetHeader(middleware.SessionHeader),
	})
	if errors.Is(err, auth.ErrUnauthenticated) {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "invalid session")
		return
	}
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, posts)
}

// ListByUser returns the posts written by :login.
func (p *PostController) ListByUser(ctx *gin.Context) {
	page, ok := parsePage(ctx)
	if !ok {
		return
	}
	posts, err := p.feed.ListUserPosts(reqCtx(ctx), ctx.Param("login"), page)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, posts)
}

// ListReplies returns the direct replies to post :id; an unknown post has none.
func (p *PostController) ListReplies(ctx *gin.Context) {
	page, ok := parsePage(ctx)
	if !ok {
		return
	}
	parentID, ok := postIDParam(ctx, "id")
	if !ok {
		return
	}
	posts, err := p.feed.ListReplies(reqCtx(ctx), parentID, page)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, posts)
}

// Delete removes the acting user's post together with its replies and likes.
func (p *PostController) Delete(ctx *gin.Context) {
	post, ok := findPost(ctx, p.st, "id")
	if !ok {
		return
	}
	if err := auth.Authorize(actingLogin(ctx), post.UserLogin); err != nil {
		utils.Error(ctx, http.StatusForbidden, 40303, "you can only delete your own posts")
		return
	}
	if err := p.st.DeletePost(reqCtx(ctx), post.ID); err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.NoContent(ctx)
}
