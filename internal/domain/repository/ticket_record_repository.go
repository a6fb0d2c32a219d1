package repository

import (
	"context"
	"errors"

	"eticket-service/internal/domain/entity"
)

//go:generate mockgen -destination=mocks/mock_ticket_record_repository.go -source=ticket_record_repository.go

// ErrTicketNotFound is returned when no stored ticket matches a lookup
var ErrTicketNotFound = errors.New("ticket not found")

// TicketRecordRepository defines the interface for parsed ticket storage
type TicketRecordRepository interface {
	Upsert(ctx context.Context, record *entity.TicketRecord) error
	FindByTicketNumber(ctx context.Context, ticketNumber string) (*entity.TicketRecord, error)
	FindByReservationCode(ctx context.Context, reservationCode string) ([]*entity.TicketRecord, error)
}
