package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/messagely/server/internal/errs"
)

// statusFor maps sentinel errors to HTTP status codes. Anything unmapped is a
// storage or internal failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(status int, message string) gin.H {
	return gin.H{"error": gin.H{"message": message, "status": status}}
}

// abortError writes a structured error response and stops the handler chain.
// Internal failures get a generic message; their detail stays in the logs.
func abortError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(status, errorBody(status, msg))
}
