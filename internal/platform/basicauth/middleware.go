package basicauth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"course_api/internal/api"
	"course_api/internal/feature/users/domain/entity"
	"course_api/internal/feature/users/usecase"
)

// AccessDenied is the only body returned for a failed authentication, whatever the cause.
const AccessDenied = "Access Denied"

// Verifier checks an email/password pair against stored credentials.
// Credential failures must wrap usecase.ErrInvalidCredentials; any other
// error is treated as a server failure.
type Verifier interface {
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
}

// AuthRequired returns a Gin middleware that authenticates the request with
// Basic credentials and restricts access to authenticated users only.
func AuthRequired(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorizationヘッダーを解析
		creds, ok := ParseAuthorization(c.GetHeader("Authorization"))
		if !ok {
			slog.WarnContext(c.Request.Context(), "authentication failed",
				"reason", "auth_header_missing", "remote_addr", c.ClientIP())
			deny(c)
			return
		}

		// 2. 資格情報を検証（監査ログはVerifier側で出力）
		user, err := verifier.Authenticate(c.Request.Context(), creds.Name, creds.Pass)
		if err != nil {
			if errors.Is(err, usecase.ErrInvalidCredentials) {
				deny(c)
				return
			}
			// Storage failure: let the error middleware render 500.
			_ = c.Error(err)
			c.Abort()
			return
		}

		// 3. ユーザーをリクエストコンテキストに格納
		SetCurrentUser(c, user)
		c.Next()
	}
}

func deny(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, api.MessageResponse{Message: AccessDenied})
}
