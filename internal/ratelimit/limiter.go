// Package ratelimit implements fixed-window request limits backed by Redis.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "ratelimit"

// Limiter counts requests per scope and client in fixed windows.
// A nil *Limiter allows everything.
type Limiter struct {
	rdb    *redis.Client
	window time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func New(rdb *redis.Client, window time.Duration, logger *zap.Logger) *Limiter {
	return &Limiter{
		rdb:    rdb,
		window: window,
		logger: logger,
		now:    time.Now,
	}
}

// Result describes the state of one window after a request was counted.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Allow counts one hit for client in scope and reports whether it fits into limit.
func (l *Limiter) Allow(ctx context.Context, scope, client string, limit int) (Result, error) {
	now := l.now()
	start := now.Truncate(l.window)
	key := fmt.Sprintf("%s:%s:%s:%d", keyPrefix, scope, client, start.Unix())

	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.PExpire(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return Result{Allowed: true}, fmt.Errorf("ошибка обновления счетчика запросов: %w", err)
	}

	count := int(incr.Val())
	return Result{
		Allowed:    count <= limit,
		Remaining:  max(limit-count, 0),
		RetryAfter: start.Add(l.window).Sub(now),
	}, nil
}

// Middleware rejects requests over limit with 429 and message. Redis failures
// let the request through.
func (l *Limiter) Middleware(scope string, limit int, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil || limit <= 0 {
			c.Next()
			return
		}

		res, err := l.Allow(c.Request.Context(), scope, c.ClientIP(), limit)
		if err != nil {
			l.logger.Warn("лимитер недоступен, запрос пропущен",
				zap.String("scope", scope),
				zap.Error(err))
			c.Next()
			return
		}

		c.Header("RateLimit-Limit", strconv.Itoa(limit))
		c.Header("RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
			l.logger.Info("превышен лимит запросов",
				zap.String("scope", scope),
				zap.String("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": message})
			return
		}

		c.Next()
	}
}
