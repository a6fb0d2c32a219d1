package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eticket-service/internal/domain/entity"
	"eticket-service/internal/domain/repository"
	mock_repository "eticket-service/internal/domain/repository/mocks"
	"eticket-service/internal/infrastructure/cache"
	"eticket-service/internal/infrastructure/ratelimit"
	"eticket-service/pkg/eticket"
	"eticket-service/pkg/logger"
	"eticket-service/pkg/metrics"
)

const receipt = `Electronic Ticket Receipt
Prepared For
GARCIA/MARIA ELENA (LIMA PERU)
Reservation Code: XKJ7PQ
Ticket Number: 5442100000001
Issue Date: 10 Jan 2025

Itinerary Details
12 Feb 2025
LATAM AIRLINES GROUP
LA 2401
Lima, Peru
Cusco, Peru
10:30
11:45

Fare and Payment Details
Fare: USD 200.00
Taxes: USD 49.99
Total: USD 250.00
`

type memoryCache struct {
	entries map[string][]byte
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	data, ok := m.entries[key]
	return data, ok
}

func (m *memoryCache) Set(_ context.Context, key string, payload []byte) error {
	m.entries[key] = payload
	return nil
}

func (m *memoryCache) Close() error { return nil }

func newTestServer(t *testing.T, c cache.Cache, tickets repository.TicketRecordRepository, rps float64, burst int) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	h := NewTicketHandler(
		eticket.NewParser(eticket.DefaultConfig()),
		c,
		tickets,
		metrics.NewMetricsWithRegistry("eticket_api_test", reg),
		logger.NewNopLogger(),
	)
	limiter := ratelimit.NewClientLimiter(ratelimit.RateLimitConfig{RequestsPerSecond: rps, BurstSize: burst})
	return NewServer(h, limiter, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}

func doJSON(srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, text string) string {
	data, err := json.Marshal(ParseRequest{PlainText: text})
	require.NoError(t, err)
	return string(data)
}

func TestParse(t *testing.T) {
	srv := newTestServer(t, cache.NewNoOpCache(), nil, 100, 100)

	rec := doJSON(srv, http.MethodPost, "/api/v1/tickets/parse", parseBody(t, receipt))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	var resp struct {
		Ticket map[string]interface{} `json:"ticket"`
		Fields map[string]string      `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "FORMAT_B", resp.Ticket["source_system"])
	assert.Equal(t, "5442100000001", resp.Ticket["ticket_number"])
	assert.Equal(t, "250.00", resp.Ticket["total_amount"])
	assert.Len(t, resp.Ticket["segments"], 1)
	assert.Equal(t, "XKJ7PQ", resp.Fields[eticket.FieldBReservationCode])
	assert.NotContains(t, resp.Fields, eticket.FieldBIssuingAgent)
}

func TestParse_Legacy(t *testing.T) {
	srv := newTestServer(t, cache.NewNoOpCache(), nil, 100, 100)

	rec := doJSON(srv, http.MethodPost, "/api/v1/tickets/parse?legacy=true", parseBody(t, receipt))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, eticket.NotFound, resp.Fields[eticket.FieldBIssuingAgent])
}

func TestParse_Unrecognized(t *testing.T) {
	srv := newTestServer(t, cache.NewNoOpCache(), nil, 100, 100)

	rec := doJSON(srv, http.MethodPost, "/api/v1/tickets/parse", parseBody(t, "Your hotel booking"))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Ticket map[string]interface{} `json:"ticket"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "UNRECOGNIZED", resp.Ticket["source_system"])
	assert.Equal(t, []interface{}{"GDS not recognized"}, resp.Ticket["errors"])
}

func TestParse_BadRequests(t *testing.T) {
	srv := newTestServer(t, cache.NewNoOpCache(), nil, 100, 100)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{"plain_text":`, "invalid_request"},
		{"no document", `{"plain_text":"  ","html_text":""}`, "validation_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(srv, http.MethodPost, "/api/v1/tickets/parse", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Error)
		})
	}
}

func TestParse_CacheHit(t *testing.T) {
	c := &memoryCache{entries: map[string][]byte{}}
	srv := newTestServer(t, c, nil, 100, 100)
	body := parseBody(t, receipt)

	first := doJSON(srv, http.MethodPost, "/api/v1/tickets/parse", body)
	require.Equal(t, http.StatusOK, first.Code)
	require.Len(t, c.entries, 1)

	second := doJSON(srv, http.MethodPost, "/api/v1/tickets/parse", body)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestGetTicket(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tickets := mock_repository.NewMockTicketRecordRepository(ctrl)
	srv := newTestServer(t, cache.NewNoOpCache(), tickets, 100, 100)

	tickets.EXPECT().FindByTicketNumber(gomock.Any(), "3082345678901").Return(&entity.TicketRecord{
		TicketKey:    "3082345678901",
		SourceSystem: "FORMAT_A",
		TicketNumber: "3082345678901",
		Consistency:  "OK",
		SegmentCount: 2,
		Normalized:   map[string]interface{}{"ticket_number": "3082345678901"},
	}, nil)
	tickets.EXPECT().FindByTicketNumber(gomock.Any(), "999").Return(nil, repository.ErrTicketNotFound)
	tickets.EXPECT().FindByTicketNumber(gomock.Any(), "500").Return(nil, errors.New("socket closed"))

	rec := doJSON(srv, http.MethodGet, "/api/v1/tickets/308%202345678901", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TicketResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "FORMAT_A", resp.SourceSystem)
	assert.Equal(t, "OK", resp.AmountConsistency)
	assert.Equal(t, 2, resp.SegmentCount)
	assert.Equal(t, "3082345678901", resp.Ticket["ticket_number"])

	assert.Equal(t, http.StatusNotFound, doJSON(srv, http.MethodGet, "/api/v1/tickets/999", "").Code)
	assert.Equal(t, http.StatusInternalServerError, doJSON(srv, http.MethodGet, "/api/v1/tickets/500", "").Code)
}

func TestGetReservation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tickets := mock_repository.NewMockTicketRecordRepository(ctrl)
	srv := newTestServer(t, cache.NewNoOpCache(), tickets, 100, 100)

	tickets.EXPECT().FindByReservationCode(gomock.Any(), "ABC123").Return([]*entity.TicketRecord{
		{TicketKey: "1", PassengerName: "PEREZ/ANA"},
		{TicketKey: "2", PassengerName: "PEREZ/JOSE"},
	}, nil)

	rec := doJSON(srv, http.MethodGet, "/api/v1/reservations/abc123", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []TicketResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "PEREZ/JOSE", resp[1].PassengerName)
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, cache.NewNoOpCache(), nil, 0.001, 1)
	body := parseBody(t, receipt)

	assert.Equal(t, http.StatusOK, doJSON(srv, http.MethodPost, "/api/v1/tickets/parse", body).Code)

	rec := doJSON(srv, http.MethodPost, "/api/v1/tickets/parse", body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limited", resp.Error)

	// health and metrics are not limited
	assert.Equal(t, http.StatusOK, doJSON(srv, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, doJSON(srv, http.MethodGet, "/metrics", "").Code)
}
