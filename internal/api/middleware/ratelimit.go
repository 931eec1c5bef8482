package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ispcore/ipam/internal/adapter"
	apierrors "github.com/ispcore/ipam/internal/api/shared/errors"
	"github.com/ispcore/ipam/internal/logger"
)

// RateLimitConfig caps requests per client IP
type RateLimitConfig struct {
	PerMinute int
	Burst     int
}

// rateLimiter shares a GCRA budget through Redis and falls back to an
// in-process token bucket per client while Redis is unreachable
type rateLimiter struct {
	config      RateLimitConfig
	distributed adapter.RedisRateLimiter
	local       sync.Map // client ip -> *rate.Limiter
}

// RateLimit returns a gin middleware limiting each client IP.
// A nil distributed limiter keeps every budget in process.
func RateLimit(cfg RateLimitConfig, distributed adapter.RedisRateLimiter) gin.HandlerFunc {
	if cfg.PerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.PerMinute
	}

	rl := &rateLimiter{config: cfg, distributed: distributed}
	return rl.handle
}

func (rl *rateLimiter) handle(c *gin.Context) {
	key := "ratelimit:api:" + c.ClientIP()

	allowed, remaining, retryAfter := rl.allow(c, key)
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	if !allowed {
		c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
		c.AbortWithStatusJSON(http.StatusTooManyRequests,
			apierrors.Envelope(apierrors.NewTooManyRequestsError("Rate limit exceeded")))
		return
	}

	c.Next()
}

func (rl *rateLimiter) allow(c *gin.Context, key string) (bool, int, time.Duration) {
	if rl.distributed != nil {
		limit := redis_rate.Limit{
			Rate:   rl.config.PerMinute,
			Burst:  rl.config.Burst,
			Period: time.Minute,
		}
		res, err := rl.distributed.Allow(c.Request.Context(), key, limit)
		if err == nil {
			return res.Allowed > 0, res.Remaining, res.RetryAfter
		}
		logger.WarnCtx(c.Request.Context(), "Distributed rate limiter unavailable, using local limiter", zap.Error(err))
	}

	v, _ := rl.local.LoadOrStore(key, rate.NewLimiter(rate.Limit(float64(rl.config.PerMinute)/60), rl.config.Burst))
	limiter := v.(*rate.Limiter)
	if !limiter.Allow() {
		return false, 0, time.Duration(float64(time.Second) * 60 / float64(rl.config.PerMinute))
	}
	return true, int(limiter.Tokens()), 0
}
