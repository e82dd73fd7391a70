// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"course_api/internal/api"
	"course_api/internal/feature/users/domain/entity"
	"course_api/internal/feature/users/transport/http/dto"
	"course_api/internal/feature/users/usecase"
	"course_api/internal/platform/basicauth"
)

// UserUsecase はユーザー登録のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
}

// UserHandler はユーザー操作のHTTPリクエストを処理します。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Current は認証済みユーザーの情報を返します。
// AuthRequiredミドルウェアの後段でのみ使用します。
func (h *UserHandler) Current(c *gin.Context) {
	user, ok := basicauth.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.MessageResponse{Message: basicauth.AccessDenied})
		return
	}
	c.JSON(http.StatusOK, dto.NewCurrentUserResponse(user))
}

// Create はユーザー登録APIエンドポイントを処理します。
// - 不正なJSONは400を返却
// - バリデーションエラー（メール重複を含む）は全項目を400で返却
// - 成功時はLocation: / 付きで201を返却
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !api.BindJSON(c, &req) {
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		if api.RespondValidation(c, err) {
			slog.Info("user registration rejected", "error", err, "remote_addr", c.ClientIP())
			return
		}
		_ = c.Error(err)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.Header("Location", "/")
	c.Status(http.StatusCreated)
}
