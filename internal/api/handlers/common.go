package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerlens/careerlens/internal/utils"
)

// Failure bodies carry the text under "error" for analysis routes and under
// "message" for auth and profile routes.
const (
	keyError   = "error"
	keyMessage = "message"
)

const ctxUsername = "username"

func writeError(c *gin.Context, key string, err error, fallback string) {
	status := utils.HTTPStatus(err)
	_ = c.Error(err)

	msg := fallback
	var ae *utils.AppError
	if errors.As(err, &ae) && ae.Message != "" {
		msg = ae.Message
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	c.JSON(status, gin.H{"ok": false, key: msg})
}

func badRequest(c *gin.Context, key, op, msg string, err error) {
	writeError(c, key, utils.E(utils.CodeInvalidArgument, op, msg, err), msg)
}

// setUsername exposes the acting username to the request logger.
func setUsername(c *gin.Context, username string) {
	if username != "" {
		c.Set(ctxUsername, username)
	}
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": "healthy"})
}
