package httpserver

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/messagely/server/internal/errs"
	"github.com/messagely/server/internal/service"
	"github.com/messagely/server/internal/token"
)

// Authenticate resolves the request identity from "Authorization: Bearer <token>".
// A missing or unverifiable token leaves the request anonymous; rejection is a
// policy decision taken downstream, never here.
func Authenticate(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			c.Next()
			return
		}
		claims, err := tokens.Verify(raw)
		if err != nil {
			// unverifiable token == no token
			c.Next()
			return
		}
		setIdentity(c, claims.Username)
		c.Next()
	}
}

// bearerToken extracts the credential from an Authorization header value.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// RequireLogin admits only requests with a verified identity.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Identity(c); !ok {
			abortError(c, errs.ErrUnauthenticated)
			return
		}
		c.Next()
	}
}

// RequireSameUser admits only the user named by the :username path parameter.
func RequireSameUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := Identity(c)
		if !ok || user != c.Param("username") {
			abortError(c, errs.ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// RequireParticipant loads the message named by the :id path parameter and
// admits only its sender or recipient. Existence is checked before identity:
// an absent message is 404 for everyone. The loaded message is stashed in the
// context for the handler.
func RequireParticipant(messages service.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			abortError(c, fmt.Errorf("bad message id: %w", errs.ErrValidation))
			return
		}
		msg, err := messages.Get(c.Request.Context(), id)
		if err != nil {
			abortError(c, err)
			return
		}
		user, ok := Identity(c)
		if !ok || (msg.From.Username != user && msg.To.Username != user) {
			abortError(c, errs.ErrUnauthorized)
			return
		}
		setMessage(c, msg)
		c.Next()
	}
}

// RequestLogger logs one line per request, tagged with a generated request ID.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		var reqID string
		if id, err := uuid.NewV4(); err == nil {
			reqID = id.String()
			c.Header("X-Request-Id", reqID)
		}

		c.Next()

		log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("dur", time.Since(start)),
			zap.String("client", c.ClientIP()),
			zap.String("request_id", reqID),
		)
	}
}

// Recover converts handler panics into plain 500 responses.
func Recover(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic",
					zap.Any("reason", r),
					zap.ByteString("stack", debug.Stack()),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody(http.StatusInternalServerError, "internal server error"))
			}
		}()
		c.Next()
	}
}
