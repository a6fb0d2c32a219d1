package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eticket-service/internal/domain/entity"
	"eticket-service/internal/domain/repository"
	mock_repository "eticket-service/internal/domain/repository/mocks"
	"eticket-service/internal/usecase"
	"eticket-service/pkg/logger"
)

type processorMocks struct {
	emails   *mock_repository.MockEmailRepository
	tickets  *mock_repository.MockTicketRecordRepository
	airlines *mock_repository.MockAirlineRepository
}

func newProcessor(t *testing.T) (*usecase.TicketProcessor, processorMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := processorMocks{
		emails:   mock_repository.NewMockEmailRepository(ctrl),
		tickets:  mock_repository.NewMockTicketRecordRepository(ctrl),
		airlines: mock_repository.NewMockAirlineRepository(ctrl),
	}
	p := usecase.NewTicketProcessor(newTestParser(), m.emails, m.tickets, m.airlines, newTestMetrics(), logger.NewNopLogger())
	return p, m
}

func TestTicketProcessor_ProcessTicketEmail(t *testing.T) {
	ctx := context.Background()
	p, m := newProcessor(t)

	m.airlines.EXPECT().GetByCode(gomock.Any(), "V0").Return(&entity.Airline{Code: "V0", Name: "CONVIASA"}, nil)
	m.airlines.EXPECT().GetByCode(gomock.Any(), "CM").Return(nil, repository.ErrAirlineNotFound)

	var stored *entity.TicketRecord
	m.tickets.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record *entity.TicketRecord) error {
			stored = record
			return nil
		})

	m.emails.EXPECT().UpdateProcessStepsByEmailID(gomock.Any(), "msg-1", entity.ProcessSteps{
		FormatDetected: "FORMAT_A",
		FieldsFound:    10,
		SegmentsParsed: 2,
		TicketStored:   true,
	}).Return(nil)

	m.emails.EXPECT().MarkAsProcessedByEmailID(gomock.Any(), "msg-1", entity.StatusCompleted, "FORMAT_A", "", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, _, _ string, data map[string]interface{}) error {
			assert.Equal(t, "3082345678901", data["ticketKey"])
			assert.Equal(t, "OK", data["amountConsistency"])
			return nil
		})

	require.NoError(t, p.ProcessTicketEmail(ctx, ticketEmail("msg-1")))

	require.NotNil(t, stored)
	assert.Equal(t, "3082345678901", stored.TicketKey)
	assert.Equal(t, "ABC123", stored.ReservationCode)
	assert.Equal(t, "PEREZ/JOSE", stored.PassengerName)
	assert.Equal(t, 2, stored.SegmentCount)
	assert.Equal(t, "PEREZ/JOSE", stored.LegacyFields["NOMBRE_DEL_PASAJERO"])

	segments := stored.Normalized["segments"].([]interface{})
	first := segments[0].(map[string]interface{})
	second := segments[1].(map[string]interface{})
	assert.Equal(t, "CONVIASA", first["marketing_airline"])
	assert.Nil(t, second["marketing_airline"])
}

func TestTicketProcessor_CachesAirlineLookups(t *testing.T) {
	ctx := context.Background()
	p, m := newProcessor(t)

	m.airlines.EXPECT().GetByCode(gomock.Any(), "V0").Return(&entity.Airline{Name: "CONVIASA"}, nil).Times(1)
	m.airlines.EXPECT().GetByCode(gomock.Any(), "CM").Return(nil, repository.ErrAirlineNotFound).Times(1)
	m.tickets.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.emails.EXPECT().UpdateProcessStepsByEmailID(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.emails.EXPECT().MarkAsProcessedByEmailID(gomock.Any(), gomock.Any(), entity.StatusCompleted, gomock.Any(), "", gomock.Any()).Return(nil).Times(2)

	require.NoError(t, p.ProcessTicketEmail(ctx, ticketEmail("msg-1")))
	require.NoError(t, p.ProcessTicketEmail(ctx, ticketEmail("msg-2")))
}

func TestTicketProcessor_AirlineLookupFailureIsRetried(t *testing.T) {
	ctx := context.Background()
	p, m := newProcessor(t)

	dbErr := errors.New("connection refused")
	m.airlines.EXPECT().GetByCode(gomock.Any(), gomock.Any()).Return(nil, dbErr).Times(4)
	m.tickets.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.emails.EXPECT().UpdateProcessStepsByEmailID(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.emails.EXPECT().MarkAsProcessedByEmailID(gomock.Any(), gomock.Any(), entity.StatusCompleted, gomock.Any(), "", gomock.Any()).Return(nil).Times(2)

	require.NoError(t, p.ProcessTicketEmail(ctx, ticketEmail("msg-1")))
	require.NoError(t, p.ProcessTicketEmail(ctx, ticketEmail("msg-2")))
}

func TestTicketProcessor_UnrecognizedIsSkipped(t *testing.T) {
	ctx := context.Background()
	p, m := newProcessor(t)

	email := &entity.Email{EmailID: "msg-9", Subject: "boleto", Body: "Your hotel booking is confirmed."}

	m.emails.EXPECT().UpdateProcessStepsByEmailID(gomock.Any(), "msg-9", entity.ProcessSteps{FormatDetected: "UNRECOGNIZED"}).Return(nil)
	m.emails.EXPECT().MarkAsProcessedByEmailID(gomock.Any(), "msg-9", entity.StatusSkipped, "ticket", "GDS not recognized", gomock.Any()).Return(nil)

	require.NoError(t, p.ProcessTicketEmail(ctx, email))
}

func TestTicketProcessor_StoreFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	emails := mock_repository.NewMockEmailRepository(ctrl)
	tickets := mock_repository.NewMockTicketRecordRepository(ctrl)
	p := usecase.NewTicketProcessor(newTestParser(), emails, tickets, nil, newTestMetrics(), logger.NewNopLogger())

	tickets.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("write conflict"))

	err := p.ProcessTicketEmail(ctx, ticketEmail("msg-1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3082345678901")
}

func TestTicketProcessor_TicketKeyFallbacks(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "reservation and passenger",
			body: "Electronic Ticket Receipt\nPrepared For\nTORRES/ANA\nReservation Code: QWERTY\n",
			want: "QWERTY:TORRES/ANA",
		},
		{
			name: "email id",
			body: "Electronic Ticket Receipt\nReservation Code: QWERTY\n",
			want: "email:msg-7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, m := newProcessor(t)

			m.tickets.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, record *entity.TicketRecord) error {
					assert.Equal(t, tt.want, record.TicketKey)
					assert.Contains(t, record.Warnings, "ticket number not found")
					return nil
				})
			m.emails.EXPECT().UpdateProcessStepsByEmailID(gomock.Any(), "msg-7", gomock.Any()).Return(nil)
			m.emails.EXPECT().MarkAsProcessedByEmailID(gomock.Any(), "msg-7", entity.StatusCompleted, "FORMAT_B", "", gomock.Any()).Return(nil)

			email := &entity.Email{EmailID: "msg-7", Body: tt.body}
			require.NoError(t, p.ProcessTicketEmail(ctx, email))
		})
	}
}
