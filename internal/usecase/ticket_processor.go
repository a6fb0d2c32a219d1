package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"eticket-service/internal/domain/entity"
	"eticket-service/internal/domain/repository"
	"eticket-service/pkg/eticket"
	"eticket-service/pkg/logger"
	"eticket-service/pkg/metrics"
)

// TicketProcessor parses stored ticket emails and keeps one record per ticket
type TicketProcessor struct {
	parser      *eticket.Parser
	emailRepo   repository.EmailRepository
	ticketRepo  repository.TicketRecordRepository
	airlineRepo repository.AirlineRepository
	metrics     *metrics.Metrics
	logger      logger.Logger

	// airline names by designator; "" caches a known miss
	mu       sync.RWMutex
	airlines map[string]string
}

// NewTicketProcessor creates a new ticket processor. airlineRepo may be nil,
// in which case carrier codes are left as printed.
func NewTicketProcessor(
	parser *eticket.Parser,
	emailRepo repository.EmailRepository,
	ticketRepo repository.TicketRecordRepository,
	airlineRepo repository.AirlineRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *TicketProcessor {
	return &TicketProcessor{
		parser:      parser,
		emailRepo:   emailRepo,
		ticketRepo:  ticketRepo,
		airlineRepo: airlineRepo,
		metrics:     metrics,
		logger:      logger,
		airlines:    make(map[string]string),
	}
}

// ProcessTicketEmail parses one email, stores the ticket and marks the email
// COMPLETED. Documents in no known layout are marked SKIPPED.
func (tp *TicketProcessor) ProcessTicketEmail(ctx context.Context, email *entity.Email) error {
	start := time.Now()
	defer func() {
		tp.metrics.ProcessingTime.Observe(time.Since(start).Seconds())
	}()
	tp.metrics.EmailsProcessed.Inc()

	result := tp.parser.Parse(eticket.RawInput{
		PlainText: email.Body,
		HTMLText:  email.HTMLBody,
	})
	ticket := result.Ticket

	steps := entity.ProcessSteps{
		FormatDetected: string(ticket.SourceSystem),
		FieldsFound:    len(result.Fields),
		SegmentsParsed: len(ticket.Segments),
	}

	if ticket.SourceSystem == eticket.Unrecognized {
		tp.metrics.ParseErrors.WithLabelValues("unrecognized").Inc()
		tp.saveSteps(ctx, email.EmailID, steps)

		tp.logger.Info("Email is not a known e-ticket layout", "emailID", email.EmailID)
		return tp.emailRepo.MarkAsProcessedByEmailID(
			ctx,
			email.EmailID,
			entity.StatusSkipped,
			"ticket",
			eticket.ErrGDSNotRecognized,
			map[string]interface{}{"reason": "gds_not_recognized"},
		)
	}

	ticket = tp.withAirlineNames(ctx, ticket)

	record, err := newTicketRecord(email.EmailID, ticket, result.Legacy)
	if err != nil {
		tp.metrics.ErrorsCount.WithLabelValues("encode").Inc()
		return err
	}

	if err := tp.ticketRepo.Upsert(ctx, record); err != nil {
		tp.metrics.ErrorsCount.WithLabelValues("store").Inc()
		return fmt.Errorf("failed to store ticket %s: %w", record.TicketKey, err)
	}
	steps.TicketStored = true
	tp.saveSteps(ctx, email.EmailID, steps)

	tp.metrics.TicketsParsed.WithLabelValues(string(ticket.SourceSystem)).Inc()
	if ticket.Consistency.Status == eticket.StatusMismatch {
		tp.metrics.AmountMismatches.Inc()
	}
	if len(ticket.Errors) > 0 {
		tp.metrics.ParseErrors.WithLabelValues("incomplete").Inc()
	}

	tp.logger.Info("Ticket stored",
		"emailID", email.EmailID,
		"ticketKey", record.TicketKey,
		"source", ticket.SourceSystem,
		"segments", len(ticket.Segments),
		"warnings", len(ticket.Errors))

	return tp.emailRepo.MarkAsProcessedByEmailID(
		ctx,
		email.EmailID,
		entity.StatusCompleted,
		string(ticket.SourceSystem),
		"",
		map[string]interface{}{
			"ticketKey":         record.TicketKey,
			"sourceSystem":      record.SourceSystem,
			"segmentCount":      record.SegmentCount,
			"amountConsistency": record.Consistency,
			"warnings":          record.Warnings,
		},
	)
}

func (tp *TicketProcessor) saveSteps(ctx context.Context, emailID string, steps entity.ProcessSteps) {
	if err := tp.emailRepo.UpdateProcessStepsByEmailID(ctx, emailID, steps); err != nil {
		tp.logger.Warn("Failed to save process steps", "emailID", emailID, "error", err)
	}
}

// withAirlineNames names flights and the issuing airline that only carry a
// two-character designator
func (tp *TicketProcessor) withAirlineNames(ctx context.Context, ticket eticket.NormalizedTicket) eticket.NormalizedTicket {
	if tp.airlineRepo == nil {
		return ticket
	}

	lookup := func(code string) (string, bool) {
		name := tp.airlineName(ctx, code)
		return name, name != ""
	}

	ticket = ticket.WithAirlineNames(lookup)
	if ticket.IssuingAirline != nil && len(strings.TrimSpace(*ticket.IssuingAirline)) == 2 {
		if name, ok := lookup(strings.TrimSpace(*ticket.IssuingAirline)); ok {
			ticket.IssuingAirline = &name
		}
	}
	return ticket
}

// airlineName returns "" when the designator is unknown or the lookup failed
func (tp *TicketProcessor) airlineName(ctx context.Context, code string) string {
	code = strings.ToUpper(code)

	tp.mu.RLock()
	name, ok := tp.airlines[code]
	tp.mu.RUnlock()
	if ok {
		return name
	}

	airline, err := tp.airlineRepo.GetByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, repository.ErrAirlineNotFound) {
			// Transient; try again on the next ticket
			tp.metrics.ErrorsCount.WithLabelValues("airline_lookup").Inc()
			tp.logger.Warn("Failed to get airline", "code", code, "error", err)
			return ""
		}
		tp.logger.Debug("Unknown airline designator", "code", code)
	} else {
		name = airline.Name
	}

	tp.mu.Lock()
	tp.airlines[code] = name
	tp.mu.Unlock()
	return name
}

// ticketKey identifies a ticket across re-sent emails: the ticket number,
// else booking and passenger, else the email itself
func ticketKey(emailID string, ticket eticket.NormalizedTicket) string {
	if ticket.TicketNumber != nil && *ticket.TicketNumber != "" {
		return *ticket.TicketNumber
	}
	if ticket.ReservationCode != nil && ticket.PassengerName != nil {
		return fmt.Sprintf("%s:%s", *ticket.ReservationCode, *ticket.PassengerName)
	}
	return "email:" + emailID
}

func newTicketRecord(emailID string, ticket eticket.NormalizedTicket, legacy map[string]string) (*entity.TicketRecord, error) {
	doc, err := ticket.Document()
	if err != nil {
		return nil, fmt.Errorf("failed to encode ticket: %w", err)
	}

	return &entity.TicketRecord{
		TicketKey:       ticketKey(emailID, ticket),
		EmailID:         emailID,
		SourceSystem:    string(ticket.SourceSystem),
		TicketNumber:    deref(ticket.TicketNumber),
		ReservationCode: deref(ticket.ReservationCode),
		PassengerName:   deref(ticket.PassengerName),
		Consistency:     string(ticket.Consistency.Status),
		SegmentCount:    len(ticket.Segments),
		Normalized:      doc,
		LegacyFields:    legacy,
		Warnings:        ticket.Errors,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
