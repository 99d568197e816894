package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/uni-portal/database"
	"github.com/sahilchouksey/uni-portal/utils/cache"
	"github.com/sahilchouksey/uni-portal/utils/response"
)

// HealthHandler reports dependency status
type HealthHandler struct {
	store database.Storage
	cache *cache.RedisCache
}

// NewHealthHandler creates a health handler; redisCache may be nil
func NewHealthHandler(store database.Storage, redisCache *cache.RedisCache) *HealthHandler {
	return &HealthHandler{store: store, cache: redisCache}
}

// Ping handles GET /ping
func (h *HealthHandler) Ping(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":   "ok",
		"database": "ok",
		"time":     time.Now().UTC(),
	}

	if err := h.store.HealthCheck(); err != nil {
		return response.ServiceUnavailable(c, "Database unavailable: "+err.Error())
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			status["cache"] = err.Error()
		} else {
			status["cache"] = "ok"
		}
	}

	return response.Success(c, status)
}
