package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/papacapim/server/models"
	"github.com/papacapim/server/store"
	"github.com/papacapim/server/utils"
)

// SessionController signs users in and out.
type SessionController struct {
	st *store.Store
}

// NewSessionController creates a new SessionController instance.
func NewSessionController(st *store.Store) *SessionController {
	return &SessionController{st: st}
}

// Create verifies the credentials and opens a new session.
func (s *SessionController) Create(ctx *gin.Context) {
	var req struct {
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	user, err := s.st.UserByLogin(reqCtx(ctx), req.Login)
	if errors.Is(err, store.ErrNotFound) {
		utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid login or password")
		return
	}
	if err != nil {
		utils.Fail(ctx, err)
		return
	}

	ok, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid login or password")
		return
	}

	token, err := utils.IssueToken()
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	sess := models.Session{UserLogin: user.Login, Token: token, IP: ctx.ClientIP()}
	if err := s.st.CreateSession(reqCtx(ctx), &sess); err != nil {
		utils.Fail(ctx, err)
		return
	}

	utils.Success(ctx, sess)
}

// Delete ends a session by id. It needs no token and succeeds for unknown ids.
func (s *SessionController) Delete(ctx *gin.Context) {
	id, ok := parseUint(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40006, "invalid session id")
		return
	}
	if err := s.st.DeleteSession(reqCtx(ctx), id); err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.NoContent(ctx)
}
