// Package httpserver exposes the messaging HTTP API and its access-control guard.
package httpserver

import (
	"github.com/gin-gonic/gin"

	"github.com/messagely/server/internal/model"
)

const (
	identityKey = "msgly.username"
	messageKey  = "msgly.message"
)

// setIdentity stores the verified username in the request context.
func setIdentity(c *gin.Context, username string) {
	c.Set(identityKey, username)
}

// Identity fetches the verified username from the request context.
func Identity(c *gin.Context) (string, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

// setMessage stashes a guard-fetched message for the handler.
func setMessage(c *gin.Context, m *model.MessageView) {
	c.Set(messageKey, m)
}

// messageFromCtx fetches the guard-resolved message.
func messageFromCtx(c *gin.Context) (*model.MessageView, bool) {
	v, ok := c.Get(messageKey)
	if !ok {
		return nil, false
	}
	m, ok := v.(*model.MessageView)
	return m, ok
}
