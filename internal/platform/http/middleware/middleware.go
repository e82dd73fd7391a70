// Package middleware provides the Gin middleware shared by every route.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"course_api/internal/api"
	"course_api/internal/platform/logging"
)

// HeaderRequestID is read from the request and echoed on the response.
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLen = 128

// RequestID propagates X-Request-ID, generating a UUID when the client sent
// none, and stores it in the request context for logging.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// AccessLog writes one line per request after it completes.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		slog.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
			"remote_addr", c.ClientIP(),
		)
	}
}

// ErrorHandler renders 500 for errors attached with c.Error by handlers that
// did not write a response themselves. Details are logged, never returned.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			slog.ErrorContext(c.Request.Context(), "request failed",
				"error", e.Err, "method", c.Request.Method, "path", c.Request.URL.Path)
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(http.StatusInternalServerError, api.MessageResponse{Message: api.MsgInternalServerError})
	}
}

// Recovery turns a panic into a logged 500 response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.ErrorContext(c.Request.Context(), "panic recovered",
			"panic", recovered, "method", c.Request.Method, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, api.MessageResponse{Message: api.MsgInternalServerError})
	})
}

// NoRoute answers unknown paths with 404.
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, api.MessageResponse{Message: api.MsgRouteNotFound})
}
