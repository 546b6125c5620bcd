package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the single error shape returned by every route.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody acknowledges a mutation; ID is set for creations.
type MessageBody struct {
	Message string `json:"message"`
	ID      *int64 `json:"id,omitempty"`
}

// JSON writes data with the given status, defaulting to 200.
func JSON[T any](ctx *gin.Context, status int, data T) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}

// Error aborts the chain and writes {"error": message}.
func Error(ctx *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, ErrorBody{Error: message})
}

func Message(ctx *gin.Context, message string) {
	JSON(ctx, http.StatusOK, MessageBody{Message: message})
}

func Created(ctx *gin.Context, message string, id int64) {
	JSON(ctx, http.StatusOK, MessageBody{Message: message, ID: &id})
}
