package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"eticket-service/internal/infrastructure/ratelimit"
)

// NewServer builds the echo instance with every route registered.
// metricsHandler is mounted at /metrics.
func NewServer(h *TicketHandler, limiter *ratelimit.ClientLimiter, metricsHandler http.Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	api := e.Group("/api/v1", RateLimit(limiter))
	api.POST("/tickets/parse", h.Parse)
	api.GET("/tickets/:number", h.GetTicket)
	api.GET("/reservations/:code", h.GetReservation)

	e.GET("/health", HealthHandler)
	e.GET("/metrics", echo.WrapHandler(metricsHandler))

	return e
}
