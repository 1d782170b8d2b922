package http

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/goagent-api/internal/application/dto"
	"github.com/jhoicas/goagent-api/pkg/logger"
)

// SignupRateLimit limita por IP. limiter nil = sin límite. Si el limitador falla
// la petición pasa (fail-open) y se registra el error.
func SignupRateLimit(limiter SignupLimiter, log *logger.Logger) fiber.Handler {
	if limiter == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		allowed, retryAfter, err := limiter.Allow(c.UserContext(), c.IP())
		if err != nil {
			log.Warn().Err(err).Str("ip", c.IP()).Msg("ratelimit: limitador no disponible, se permite la petición")
			return c.Next()
		}
		if !allowed {
			secs := int(math.Ceil(retryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "Too many signup attempts, please try again later",
			})
		}
		return c.Next()
	}
}
