package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/papacapim/server/auth"
	"github.com/papacapim/server/utils"
)

const (
	// SessionHeader carries the opaque session token.
	SessionHeader = "X-Session-Token"
	// ContextLoginKey stores the resolved login inside the Gin context.
	ContextLoginKey = "user_login"
)

// TokenResolver resolves a session token into the acting login.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

// SessionRequired rejects the request with 401 unless X-Session-Token names a live session.
func SessionRequired(resolver TokenResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		login, err := resolver.Resolve(ctx.Request.Context(), ctx.GetHeader(SessionHeader))
		if errors.Is(err, auth.ErrUnauthenticated) {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "invalid session")
			ctx.Abort()
			return
		}
		if err != nil {
			utils.Fail(ctx, err)
			return
		}

		ctx.Set(ContextLoginKey, login)
		ctx.Next()
	}
}

// ActingLogin returns the login set by SessionRequired.
func ActingLogin(ctx *gin.Context) (string, bool) {
	login := ctx.GetString(ContextLoginKey)
	return login, login != ""
}
