package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// NewServer はAPI用に設定されたHTTPサーバーを作成します。
//
// 設定:
//   - ReadHeaderTimeout: ヘッダー読み込みの最大時間（Slowloris対策）
//   - ReadTimeout / WriteTimeout: リクエスト全体の読み書きの最大時間
//   - IdleTimeout: keep-alive接続の維持期間
//
// 注意:
//   - http.Serverのゼロ値にはタイムアウトがないため、常にこのコンストラクタを使用すること
func NewServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
}

// Serve runs srv on ln until ctx is canceled, then shuts it down gracefully,
// waiting at most shutdownTimeout for in-flight requests.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	grp, ctx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		slog.Info("HTTP server listening", "addr", ln.Addr().String())
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	grp.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		slog.Info("HTTP server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return grp.Wait()
}
