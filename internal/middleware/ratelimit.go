package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"summit-ticketing/internal/config"
	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/utils"
)

// RateLimiter enforces a fixed window per client IP ahead of every route.
// With Redis available the window is shared across instances (INCR + EXPIRE);
// otherwise a local window map is used. Redis errors fail open.
type RateLimiter struct {
	cfg    config.RateLimitConfig
	redis  *redis.Client
	log    *logger.Logger
	mu     sync.Mutex
	local  map[string]*window
	nowFn  func() time.Time
}

type window struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client, log *logger.Logger) *RateLimiter {
	return &RateLimiter{
		cfg:   cfg,
		redis: rdb,
		log:   log,
		local: make(map[string]*window),
		nowFn: time.Now,
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		allowed, remaining := rl.allow(r, ip)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.cfg.MaxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.cfg.Window.Seconds())))
			utils.WriteError(w, http.StatusTooManyRequests,
				"Too many requests, please try again later", "rate_limit_exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(r *http.Request, ip string) (bool, int) {
	if rl.redis != nil {
		if allowed, remaining, err := rl.allowRedis(r, ip); err == nil {
			return allowed, remaining
		}
		// fall through to the local window on Redis errors
	}
	return rl.allowLocal(ip)
}

func (rl *RateLimiter) allowRedis(r *http.Request, ip string) (bool, int, error) {
	ctx := r.Context()
	key := "ratelimit:" + ip

	count, err := rl.redis.Incr(ctx, key).Result()
	if err != nil {
		rl.log.Warn("RATELIMIT", fmt.Sprintf("Redis error for %s: %v", ip, err))
		return true, 0, err
	}
	if count == 1 {
		rl.redis.Expire(ctx, key, rl.cfg.Window)
	}

	remaining := rl.cfg.MaxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return int(count) <= rl.cfg.MaxRequests, remaining, nil
}

func (rl *RateLimiter) allowLocal(ip string) (bool, int) {
	now := rl.nowFn()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	win, ok := rl.local[ip]
	if !ok || now.After(win.resetAt) {
		win = &window{resetAt: now.Add(rl.cfg.Window)}
		rl.local[ip] = win
	}
	win.count++

	remaining := rl.cfg.MaxRequests - win.count
	if remaining < 0 {
		remaining = 0
	}
	return win.count <= rl.cfg.MaxRequests, remaining
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
