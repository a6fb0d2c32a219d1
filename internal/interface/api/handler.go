package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"eticket-service/internal/domain/repository"
	"eticket-service/internal/infrastructure/cache"
	"eticket-service/pkg/eticket"
	"eticket-service/pkg/logger"
	"eticket-service/pkg/metrics"
)

type TicketHandler struct {
	parser  *eticket.Parser
	cache   cache.Cache
	tickets repository.TicketRecordRepository
	metrics *metrics.Metrics
	logger  logger.Logger
}

func NewTicketHandler(
	parser *eticket.Parser,
	c cache.Cache,
	tickets repository.TicketRecordRepository,
	m *metrics.Metrics,
	log logger.Logger,
) *TicketHandler {
	return &TicketHandler{
		parser:  parser,
		cache:   c,
		tickets: tickets,
		metrics: m,
		logger:  log,
	}
}

// Parse handles POST /api/v1/tickets/parse. With ?legacy=true the fields
// are the legacy map with every known field present.
func (h *TicketHandler) Parse(c echo.Context) error {
	ctx := c.Request().Context()

	var req ParseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if strings.TrimSpace(req.PlainText) == "" && strings.TrimSpace(req.HTMLText) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "plain_text or html_text is required",
			Code:    http.StatusBadRequest,
		})
	}

	legacy, _ := strconv.ParseBool(c.QueryParam("legacy"))
	variant := "canonical"
	if legacy {
		variant = "legacy"
	}

	raw := eticket.RawInput{PlainText: req.PlainText, HTMLText: req.HTMLText}
	key := cache.Key(raw, variant, h.parser.Fingerprint())

	if cached, found := h.cache.Get(ctx, key); found {
		c.Response().Header().Set("X-Cache", "HIT")
		return c.JSONBlob(http.StatusOK, cached)
	}

	result := h.parser.Parse(raw)
	h.metrics.TicketsParsed.WithLabelValues(string(result.Ticket.SourceSystem)).Inc()
	if result.Ticket.SourceSystem == eticket.Unrecognized {
		h.metrics.ParseErrors.WithLabelValues("unrecognized").Inc()
	}

	resp := ParseResponse{Ticket: result.Ticket, Fields: result.Fields}
	if legacy {
		resp.Fields = result.Legacy
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		h.metrics.ErrorsCount.WithLabelValues("encode").Inc()
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "encode_error",
			Message: "Failed to encode ticket: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	if err := h.cache.Set(ctx, key, payload); err != nil {
		h.logger.Warn("Failed to cache parse response", "error", err)
	}

	c.Response().Header().Set("X-Cache", "MISS")
	return c.JSONBlob(http.StatusOK, payload)
}

// GetTicket handles GET /api/v1/tickets/:number
func (h *TicketHandler) GetTicket(c echo.Context) error {
	number := strings.Join(strings.Fields(c.Param("number")), "")

	record, err := h.tickets.FindByTicketNumber(c.Request().Context(), number)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "No ticket with number " + number,
				Code:    http.StatusNotFound,
			})
		}
		return h.internalError(c, "find_ticket", err)
	}

	return c.JSON(http.StatusOK, newTicketResponse(record))
}

// GetReservation handles GET /api/v1/reservations/:code
func (h *TicketHandler) GetReservation(c echo.Context) error {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))

	records, err := h.tickets.FindByReservationCode(c.Request().Context(), code)
	if err != nil {
		return h.internalError(c, "find_reservation", err)
	}

	out := make([]TicketResponse, 0, len(records))
	for _, r := range records {
		out = append(out, newTicketResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TicketHandler) internalError(c echo.Context, operation string, err error) error {
	h.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	h.logger.Error("Request failed", "operation", operation, "error", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "Failed to load ticket",
		Code:    http.StatusInternalServerError,
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
