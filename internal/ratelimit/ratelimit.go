package ratelimit

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"siscav/internal/cache"
	apperrors "siscav/internal/errors"
)

const keyPrefix = "ratelimit:"

// Limiter enforces a fixed-window request quota per client key, counted in
// redis so the quota holds across replicas. When redis is unavailable the
// limiter fails open: blunting credential stuffing is not worth taking logins
// down with the cache.
type Limiter struct {
	cache  *cache.Client
	max    int64
	window time.Duration
}

// New creates a limiter allowing max requests per window.
func New(c *cache.Client, max int, window time.Duration) *Limiter {
	return &Limiter{cache: c, max: int64(max), window: window}
}

// Allow reports whether the request identified by key fits in the current
// window.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	n, _ := l.cache.IncrWithTTL(ctx, keyPrefix+key, l.window)
	if n == 0 {
		// redis unavailable; fail open
		return true
	}
	return n <= l.max
}

// Middleware limits requests per client address, answering 429 over quota.
func (l *Limiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.Request().Context(), c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, apperrors.ErrorResponse{
					Error: "too many requests",
					Code:  "RATE_LIMITED",
				})
			}
			return next(c)
		}
	}
}
