package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/depomarket/retail-service/internal/config"
	apperrors "github.com/depomarket/retail-service/pkg/errorutil"
)

// RateLimiter bounds public submission endpoints with a fixed window
// counter per client IP kept in redis. Fails open: when redis is down the
// request goes through and the failure is logged.
func RateLimiter(client *redis.Client, cfg config.RateLimitConfig, logger *zap.Logger) fiber.Handler {
	window := time.Duration(cfg.WindowSeconds) * time.Second
	if window <= 0 {
		window = time.Minute
	}
	limit := int64(cfg.Requests)
	if limit <= 0 {
		limit = 20
	}

	return func(c *fiber.Ctx) error {
		if !cfg.Enabled || client == nil {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:%s:%d", c.IP(), time.Now().Unix()/int64(window.Seconds()))
		count, err := client.Incr(c.UserContext(), key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			client.Expire(c.UserContext(), key, window)
		}
		if count > limit {
			return apperrors.NewRateLimited("too many requests, try again later")
		}
		return c.Next()
	}
}
