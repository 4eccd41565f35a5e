package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/papacapim/server/middleware"
	"github.com/papacapim/server/models"
	"github.com/papacapim/server/store"
	"github.com/papacapim/server/utils"
)

// parsePage reads ?page. Absent means 1; anything but a positive integer is a 400.
func parsePage(ctx *gin.Context) (store.Page, bool) {
	raw := strings.TrimSpace(ctx.Query("page"))
	if raw == "" {
		return 1, true
	}
	p, err := strconv.Atoi(raw)
	if err != nil || p < 1 {
		utils.Error(ctx, http.StatusBadRequest, 40004, "page must be a positive integer")
		return 0, false
	}
	return store.Page(p), true
}

func parseUint(raw string) (uint, bool) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// actingLogin is the login SessionRequired resolved for this request.
func actingLogin(ctx *gin.Context) string {
	login, _ := middleware.ActingLogin(ctx)
	return login
}

// findUser resolves a numeric id first and falls back to the login, so purely numeric
// logins still work. It answers 404 or 500 itself and reports whether to continue.
func findUser(ctx *gin.Context, st *store.Store, ref string) (models.User, bool) {
	var (
		u   models.User
		err = store.ErrNotFound
	)
	if id, ok := parseUint(ref); ok {
		u, err = st.UserByID(reqCtx(ctx), id)
	}
	if errors.Is(err, store.ErrNotFound) {
		u, err = st.UserByLogin(reqCtx(ctx), ref)
	}
	return u, found(ctx, err, 40401, "user not found")
}

// postIDParam reads a numeric post id from the :name path segment, answering 400 otherwise.
func postIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, ok := parseUint(ctx.Param(name))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40009, "invalid post id")
	}
	return id, ok
}

// findPost loads the post named by the :name path segment.
func findPost(ctx *gin.Context, st *store.Store, name string) (models.Post, bool) {
	id, ok := parseUint(ctx.Param(name))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40402, "post not found")
		return models.Post{}, false
	}
	p, err := st.PostByID(reqCtx(ctx), id)
	return p, found(ctx, err, 40402, "post not found")
}

func found(ctx *gin.Context, err error, code int, message string) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, store.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, code, message)
	default:
		utils.Fail(ctx, err)
	}
	return false
}

// cleanMessage strips markup and enforces the length bounds of posts and replies.
func cleanMessage(ctx *gin.Context, raw string) (string, bool) {
	msg := strings.TrimSpace(utils.Sanitize(raw))
	if msg == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "message cannot be empty")
		return "", false
	}
	if utf8.RuneCountInString(msg) > models.MaxMessageLength {
		utils.Error(ctx, http.StatusBadRequest, 40022, "message is too long")
		return "", false
	}
	return msg, true
}

// validLogin allows letters, digits and "._-"; logins end up in URL paths.
func validLogin(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.':
		default:
			return false
		}
	}
	return s != ""
}

func reqCtx(ctx *gin.Context) context.Context {
	return ctx.Request.Context()
}
