package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"eticket-service/internal/domain/entity"
	"eticket-service/internal/usecase"
)

type processorFunc func(ctx context.Context, email *entity.Email) error

func (f processorFunc) ProcessTicketEmail(ctx context.Context, email *entity.Email) error {
	return f(ctx, email)
}

func TestTicketHandlerAdapter_CanHandle(t *testing.T) {
	a := usecase.NewTicketHandlerAdapter(nil, "ticket", []string{"E-Ticket", "", "boleto electrónico"})

	tests := []struct {
		subject string
		want    bool
	}{
		{"Your e-ticket receipt", true},
		{"BOLETO ELECTRÓNICO 308 2345678901", true},
		{"Itinerary change", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			assert.Equal(t, tt.want, a.CanHandle(tt.subject))
		})
	}
	assert.Equal(t, "ticket", a.Name())
}

func TestTicketHandlerAdapter_Process(t *testing.T) {
	wantErr := errors.New("boom")
	var got *entity.Email

	a := usecase.NewTicketHandlerAdapter(processorFunc(func(_ context.Context, email *entity.Email) error {
		got = email
		return wantErr
	}), "ticket", nil)

	email := ticketEmail("msg-1")
	assert.ErrorIs(t, a.Process(context.Background(), email), wantErr)
	assert.Same(t, email, got)
}
