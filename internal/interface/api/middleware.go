package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"eticket-service/internal/infrastructure/ratelimit"
)

// RateLimit rejects clients, keyed by remote address, that exceed their bucket
func RateLimit(limiter *ratelimit.ClientLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, ErrorResponse{
					Error:   "rate_limited",
					Message: "Too many requests",
					Code:    http.StatusTooManyRequests,
				})
			}
			return next(c)
		}
	}
}
