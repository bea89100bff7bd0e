package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"activity-platform/internal/config"
	"activity-platform/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var fixedWindowScript = redis.NewScript(`
-- KEYS[1] = counter key
-- ARGV[1] = limit (int)
-- ARGV[2] = window_ms (int)
--
-- Returns:
--  1 if allowed
--  0 if rejected (limit reached within the window)
local current = redis.call('INCR', KEYS[1])
if current == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[2])
else
  -- Ensure TTL exists even if the key survived without one
  if redis.call('PTTL', KEYS[1]) < 0 then
    redis.call('PEXPIRE', KEYS[1], ARGV[2])
  end
end

if current > tonumber(ARGV[1]) then
  return 0
end
return 1
`)

// Limiter is a fixed-window counter keyed by caller, backed by Redis.
// The window is atomic (Lua) so concurrent attempts cannot overshoot.
type Limiter struct {
	rdb      *redis.Client
	attempts int
	window   time.Duration
	prefix   string
}

func NewLoginLimiter(rdb *redis.Client, cfg config.RateLimitConfig) *Limiter {
	return &Limiter{
		rdb:      rdb,
		attempts: cfg.LoginAttempts,
		window:   cfg.LoginWindow,
		prefix:   "ratelimit:login:",
	}
}

// Allow reports whether one more attempt for key fits in the current window.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	if key == "" {
		return false, fmt.Errorf("key is required")
	}

	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{l.prefix + key}, l.attempts, l.window.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// Allower reports whether one more attempt for a key is admissible.
type Allower interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Middleware throttles by client IP. Limiter errors fail open: an unreachable
// Redis must not take logins down with it, only the throttle.
func Middleware(l Allower) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.FromGin(c).Error("login rate limit check failed", "err", err)
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
			return
		}
		c.Next()
	}
}
