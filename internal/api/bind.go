package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"course_api/internal/platform/validation"
)

// BindJSON decodes the request body into dst. An empty body leaves dst at its
// zero value so that field validation reports what is missing.
// On a malformed body it writes a 400 response and returns false.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		slog.WarnContext(c.Request.Context(), "request body rejected",
			"error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: []string{MsgInvalidJSON}})
		return false
	}
	return true
}

// RespondValidation writes a 400 response listing every failed field if err
// is a *validation.Error, and reports whether it did so.
func RespondValidation(c *gin.Context, err error) bool {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return false
	}
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: verr.Messages()})
	return true
}
