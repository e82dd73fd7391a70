// Package handler はcoursesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"course_api/internal/api"
	"course_api/internal/feature/courses/domain/entity"
	"course_api/internal/feature/courses/transport/http/dto"
	"course_api/internal/feature/courses/usecase"
	"course_api/internal/platform/basicauth"
)

// MsgCourseNotFound is the body message of a 404 for a missing course.
const MsgCourseNotFound = "Course not found"

// CourseUsecase はコースに関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type CourseUsecase interface {
	List(ctx context.Context) ([]entity.Course, error)
	Get(ctx context.Context, id uint) (*entity.Course, error)
	Create(ctx context.Context, ownerID uint, in usecase.CourseInput) (*entity.Course, error)
	Update(ctx context.Context, userID, id uint, in usecase.CourseInput) error
	Delete(ctx context.Context, userID, id uint) error
}

// CourseHandler はコースに関するHTTPリクエストを処理します。
type CourseHandler struct {
	uc CourseUsecase
}

// NewCourseHandler は新しい CourseHandler を作成します。
func NewCourseHandler(uc CourseUsecase) *CourseHandler {
	return &CourseHandler{uc: uc}
}

// List はコース一覧（所有者情報付き）を返します。
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.uc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCourseList(courses))
}

// Get は指定IDのコースを1件返します。存在しない場合は404です。
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := courseID(c)
	if !ok {
		return
	}
	course, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCourseResponse(*course))
}

// Create は認証済みユーザーを所有者としてコースを作成します。
// 成功時は Location: <リクエストパス>/<id> 付きで201を返却します。
func (h *CourseHandler) Create(c *gin.Context) {
	user, ok := basicauth.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.MessageResponse{Message: basicauth.AccessDenied})
		return
	}
	var req dto.CourseRequest
	if !api.BindJSON(c, &req) {
		return
	}

	course, err := h.uc.Create(c.Request.Context(), user.ID, req.ToInput())
	if err != nil {
		h.fail(c, err)
		return
	}

	location := strings.TrimSuffix(c.Request.URL.Path, "/") + "/" + strconv.FormatUint(uint64(course.ID), 10)
	c.Header("Location", location)
	c.Status(http.StatusCreated)
}

// Update は所有者のみがコースを更新できます。成功時は204です。
func (h *CourseHandler) Update(c *gin.Context) {
	user, ok := basicauth.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.MessageResponse{Message: basicauth.AccessDenied})
		return
	}
	id, ok := courseID(c)
	if !ok {
		return
	}
	var req dto.CourseRequest
	if !api.BindJSON(c, &req) {
		return
	}

	if err := h.uc.Update(c.Request.Context(), user.ID, id, req.ToInput()); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete は所有者のみがコースを削除できます。成功時は204です。
func (h *CourseHandler) Delete(c *gin.Context) {
	user, ok := basicauth.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.MessageResponse{Message: basicauth.AccessDenied})
		return
	}
	id, ok := courseID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), user.ID, id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// fail maps usecase errors onto responses. Unknown errors go to the error middleware.
func (h *CourseHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, api.MessageResponse{Message: MsgCourseNotFound})
	case errors.Is(err, usecase.ErrForbidden):
		c.Status(http.StatusForbidden)
	case errors.Is(err, usecase.ErrOwnerNotFound):
		// 認証後にユーザーが削除された場合
		c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{Errors: []string{"The course owner does not exist."}})
	default:
		if !api.RespondValidation(c, err) {
			_ = c.Error(err)
		}
	}
}

// courseID binds the :id path parameter. A non-numeric id is reported as 404.
func courseID(c *gin.Context) (uint, bool) {
	var id uint
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil || id == 0 {
		slog.Debug("invalid course id", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusNotFound, api.MessageResponse{Message: MsgCourseNotFound})
		return 0, false
	}
	return id, true
}
