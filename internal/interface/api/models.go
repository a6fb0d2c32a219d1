package api

import (
	"time"

	"eticket-service/internal/domain/entity"
	"eticket-service/pkg/eticket"
)

// ParseRequest carries one document. At least one rendition is required.
type ParseRequest struct {
	PlainText string `json:"plain_text"`
	HTMLText  string `json:"html_text"`
}

type ParseResponse struct {
	Ticket eticket.NormalizedTicket `json:"ticket"`
	Fields map[string]string        `json:"fields"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// TicketResponse is the API view of a stored ticket
type TicketResponse struct {
	TicketKey         string                 `json:"ticket_key"`
	EmailID           string                 `json:"email_id,omitempty"`
	SourceSystem      string                 `json:"source_system"`
	TicketNumber      string                 `json:"ticket_number,omitempty"`
	ReservationCode   string                 `json:"reservation_code,omitempty"`
	PassengerName     string                 `json:"passenger_name,omitempty"`
	AmountConsistency string                 `json:"amount_consistency"`
	SegmentCount      int                    `json:"segment_count"`
	Ticket            map[string]interface{} `json:"ticket"`
	LegacyFields      map[string]string      `json:"legacy_fields"`
	Warnings          []string               `json:"warnings"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

func newTicketResponse(r *entity.TicketRecord) TicketResponse {
	return TicketResponse{
		TicketKey:         r.TicketKey,
		EmailID:           r.EmailID,
		SourceSystem:      r.SourceSystem,
		TicketNumber:      r.TicketNumber,
		ReservationCode:   r.ReservationCode,
		PassengerName:     r.PassengerName,
		AmountConsistency: r.Consistency,
		SegmentCount:      r.SegmentCount,
		Ticket:            r.Normalized,
		LegacyFields:      r.LegacyFields,
		Warnings:          r.Warnings,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
