package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	coursehandler "course_api/internal/feature/courses/transport/handler"
	userhandler "course_api/internal/feature/users/transport/handler"
	"course_api/internal/platform/basicauth"
	"course_api/internal/platform/http/handler"
	"course_api/internal/platform/http/middleware"
	"course_api/internal/platform/ratelimiter"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Users   *userhandler.UserHandler
	Courses *coursehandler.CourseHandler
	Health  *handler.HealthHandler
}

// Options controls the cross-cutting middleware.
type Options struct {
	// Verifier authenticates Basic credentials on protected routes.
	Verifier basicauth.Verifier
	// Limiter throttles protected routes per client IP. nil disables it.
	Limiter *ratelimiter.RateLimiter
	CORS    bool
}

// apiPrefixes are the mount points of the API routes.
var apiPrefixes = []string{"/", "/api"}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()

	if opts.CORS {
		r.Use(cors.Default())
	}
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
	)

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	protected := []gin.HandlerFunc{}
	if opts.Limiter != nil {
		protected = append(protected, opts.Limiter.Middleware())
	}
	protected = append(protected, basicauth.AuthRequired(opts.Verifier))

	for _, prefix := range apiPrefixes {
		g := r.Group(prefix)

		// 認証不要
		// 新規ユーザー登録
		g.POST("/users", h.Users.Create)
		g.GET("/courses", h.Courses.List)
		g.GET("/courses/:id", h.Courses.Get)

		// 認証必須のルート
		// → Authorization: Basic ヘッダーが必要になる
		auth := g.Group("", protected...)
		{
			auth.GET("/users", h.Users.Current)
			auth.POST("/courses", h.Courses.Create)
			auth.PUT("/courses/:id", h.Courses.Update)
			auth.DELETE("/courses/:id", h.Courses.Delete)
		}
	}

	r.NoRoute(middleware.NoRoute)
	return r
}
