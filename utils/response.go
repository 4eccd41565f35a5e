package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every 4xx/5xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Respond writes data as JSON with the given status code.
func Respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, data)
}

// Success returns a 200 with data as the body.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusOK, data)
}

// Created returns a 201 with data as the body.
func Created(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusCreated, data)
}

// NoContent returns an empty 204.
func NoContent(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	ctx.JSON(status, ErrorResponse{Code: code, Message: message})
}

// Fail hands an unexpected error to the top-level error handler, which answers 500.
func Fail(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	ctx.Abort()
}
