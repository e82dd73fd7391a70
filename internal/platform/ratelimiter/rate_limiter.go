// Package ratelimiter limits how often a client may attempt authentication.
package ratelimiter

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"course_api/internal/api"
)

// RateLimiter は、キーごと（クライアントIPなど）に固定ウィンドウで操作の頻度を制限します。
type RateLimiter struct {
	mu       sync.Mutex
	limit    int           // interval あたりの上限
	interval time.Duration // どの単位でリセットするか
	windows  map[string]*window
	now      func() time.Time
}

type window struct {
	count     int
	lastReset time.Time
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// limit が0以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
		now:      time.Now,
	}
}

// Allow はキーの呼び出しを1回記録し、上限内であればtrueを返します。
// 上限を超えた場合はウィンドウがリセットされるまでの残り時間も返します。
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	if rl.limit <= 0 {
		return true, 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	// interval を過ぎたらカウントリセット
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		w = &window{lastReset: now}
		rl.windows[key] = w
		rl.sweep(now)
	}

	w.count++
	if w.count > rl.limit {
		return false, rl.interval - now.Sub(w.lastReset)
	}
	return true, 0
}

// sweep drops expired windows so the map does not grow with every client seen.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}

// Middleware rejects requests over the limit with 429, keyed by client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retryAfter := rl.Allow(c.ClientIP())
		if ok {
			c.Next()
			return
		}
		slog.WarnContext(c.Request.Context(), "[RATE LIMIT] request rejected",
			"remote_addr", c.ClientIP(), "limit", rl.limit, "retry_after", retryAfter)
		seconds := int(retryAfter.Round(time.Second) / time.Second)
		if seconds < 1 {
			seconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(seconds))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, api.MessageResponse{Message: api.MsgTooManyRequests})
	}
}
