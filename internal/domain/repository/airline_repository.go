package repository

import (
	"context"
	"errors"

	"eticket-service/internal/domain/entity"
)

//go:generate mockgen -destination=mocks/mock_airline_repository.go -source=airline_repository.go

// ErrAirlineNotFound is returned when no airline has the requested code
var ErrAirlineNotFound = errors.New("airline not found")

// AirlineRepository defines the interface for airline reference lookups
type AirlineRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airline, error)
}
