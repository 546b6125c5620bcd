package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-auth-api/internal/application"
	"github.com/oksasatya/users-auth-api/pkg/helpers"
	"github.com/oksasatya/users-auth-api/pkg/response"
	"github.com/oksasatya/users-auth-api/pkg/validation"
)

const (
	msgServerError     = "Server error"
	msgEmailTaken      = "Email already exists"
	msgInvalidCreds    = "Invalid credentials"
	msgUserNotFound    = "User not found"
	msgInvalidUserID   = "Invalid user id"
	msgInvalidBody     = "Invalid request body"
	msgPasswordTooLong = "Password must be at most 72 bytes"
)

// writeError maps application errors to HTTP responses. required is the
// route's message for missing fields. Unclassified errors are logged and
// answered with a generic 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error, required string) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, required)
	case errors.Is(err, application.ErrPasswordTooLong):
		response.Error(c, http.StatusBadRequest, msgPasswordTooLong)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error(c, http.StatusBadRequest, msgEmailTaken)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, msgInvalidCreds)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, msgUserNotFound)
	default:
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		})
		response.Error(c, http.StatusInternalServerError, msgServerError)
	}
}

// writeBindError answers a failed ShouldBindJSON. An empty body or missing
// required fields get the route's message; anything else is malformed.
func writeBindError(c *gin.Context, logger *logrus.Logger, err error, required string) {
	if logger != nil {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"details":    validation.ToDetails(err),
		}).Debug("invalid payload")
	}
	if errors.Is(err, io.EOF) || len(validation.MissingFields(err)) > 0 {
		response.Error(c, http.StatusBadRequest, required)
		return
	}
	response.Error(c, http.StatusBadRequest, msgInvalidBody)
}
