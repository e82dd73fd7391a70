package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"course_api/internal/app/di"
	"course_api/internal/app/router"
	coursehandler "course_api/internal/feature/courses/transport/handler"
	courseusecase "course_api/internal/feature/courses/usecase"
	useradapters "course_api/internal/feature/users/adapters"
	userhandler "course_api/internal/feature/users/transport/handler"
	userusecase "course_api/internal/feature/users/usecase"
	"course_api/internal/platform/config"
	"course_api/internal/platform/db"
	platformhttp "course_api/internal/platform/http"
	"course_api/internal/platform/http/handler"
	"course_api/internal/platform/logging"
	"course_api/internal/platform/ratelimiter"
	"course_api/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.SetDefault(cfg.Log, os.Stdout)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB
	gdb, err := db.Open(cfg.DB)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	slog.Info("DB connection successful", "driver", cfg.DB.Driver)

	// マイグレーション（SQLiteは常に実行）
	if cfg.DB.RunMigrations || cfg.DB.Driver == db.DriverSQLite {
		if err := di.Migrate(gdb); err != nil {
			return err
		}
		slog.Info("database migrated")
	}

	// Redis（未設定・接続失敗時はキャッシュなしで動作）
	rdb, err := redis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := useradapters.NewUserRepository(gdb)
	courseRepo := di.NewCourseRepository(rdb, gdb, cfg.CourseCacheTTL)

	// Usecase
	userUC := userusecase.NewUserUsecase(userRepo, cfg.BcryptCost)
	courseUC := courseusecase.NewCourseUsecase(courseRepo)

	// ルータ生成
	r := router.NewRouter(router.Handlers{
		Users:   userhandler.NewUserHandler(userUC),
		Courses: coursehandler.NewCourseHandler(courseUC),
		Health:  handler.NewHealthHandler(sqlDB),
	}, router.Options{
		Verifier: userUC,
		Limiter:  ratelimiter.NewRateLimiter(cfg.AuthRateLimit, time.Minute),
		CORS:     cfg.CORSEnabled,
	})

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", cfg.Addr())
	if err != nil {
		return err
	}
	return platformhttp.Serve(ctx, platformhttp.NewServer(cfg.Addr(), r), ln, shutdownTimeout)
}
