package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/papacapim/server/utils"
)

// ErrorHandler answers 500 for any error a handler attached without writing a response.
func ErrorHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		if len(ctx.Errors) == 0 {
			return
		}
		for _, e := range ctx.Errors {
			utils.Logger.Error("request failed",
				zap.String("method", ctx.Request.Method),
				zap.String("path", ctx.FullPath()),
				zap.String(utils.RequestIDKey, ctx.GetString(utils.RequestIDKey)),
				zap.Error(e.Err),
			)
		}
		if !ctx.Writer.Written() {
			ctx.JSON(http.StatusInternalServerError, utils.ErrorResponse{Code: 50000, Message: "internal server error"})
		}
	}
}
