package api

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// RateLimit rejects requests beyond perSecond sustained with the given
// burst. The budget is shared by every client of the route group. A burst
// below 1 is raised to 1.
func RateLimit(perSecond, burst int) fiber.Handler {
	if burst < 1 {
		burst = 1
	}
	lim := rate.NewLimiter(rate.Limit(perSecond), burst)
	return func(c *fiber.Ctx) error {
		if !lim.Allow() {
			return writeError(c, fiber.StatusTooManyRequests, "Too many requests. Please try again shortly.")
		}
		return c.Next()
	}
}
