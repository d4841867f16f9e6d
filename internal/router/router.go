// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/train-seat-reservation/internal/config"
	"github.com/iliyamo/train-seat-reservation/internal/handler"
	"github.com/iliyamo/train-seat-reservation/internal/middleware"
)

// RegisterRoutes wires the health check and the four inventory
// endpoints onto the provided Echo instance. The seat listing sits
// behind the Redis response cache; the reserve endpoint sits behind
// the token-bucket rate limiter. Both middlewares degrade to
// pass-through when rdb is nil.
func RegisterRoutes(e *echo.Echo, h *handler.BookingHandler, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	e.POST("/initialize", h.Initialize)
	e.GET("/seats", h.ListSeats, middleware.NewRedisCache(cacheCfg, rdb))
	e.POST("/reserve", h.Reserve, middleware.NewTokenBucket(rlCfg, rdb))
	e.POST("/reset", h.Reset)
}
