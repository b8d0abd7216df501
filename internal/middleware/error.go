package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Gangulr/finace/internal/errors"
	"github.com/Gangulr/finace/internal/logger"
)

// ErrorHandler renders the last error attached with c.Error as the JSON
// error envelope, unless a response was already written.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		appErr := apperrors.From(c.Errors.Last().Err)
		LogError(c, appErr)
		c.JSON(appErr.StatusCode, appErr.Envelope())
	}
}

// LogError records the internal cause of a failed request. Rule violations
// carry no cause and are not logged.
func LogError(c *gin.Context, appErr *apperrors.AppError) {
	if appErr.Internal == nil {
		return
	}
	l := logger.Named("http")
	log := l.Errorw
	if appErr.StatusCode < http.StatusInternalServerError {
		log = l.Warnw
	}
	log("request failed",
		"code", appErr.Code,
		"status", appErr.StatusCode,
		"error", appErr.Internal.Error(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", RequestID(c),
	)
}
