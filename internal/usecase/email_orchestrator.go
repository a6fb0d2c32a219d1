package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eticket-service/internal/domain/entity"
	"eticket-service/internal/domain/repository"
	"eticket-service/pkg/logger"
)

// pendingBatchSize bounds how many stored emails one sweep picks up
const pendingBatchSize = 100

// EmailOrchestrator manages email processing with multiple handlers
type EmailOrchestrator struct {
	emailRepo   repository.EmailRepository
	router      SubjectRouter
	workerCount int
	logger      logger.Logger
}

// NewEmailOrchestrator creates a new email orchestrator. Pending sweeps run
// on workerCount goroutines, at least one.
func NewEmailOrchestrator(
	emailRepo repository.EmailRepository,
	router SubjectRouter,
	workerCount int,
	logger logger.Logger,
) *EmailOrchestrator {
	if workerCount < 1 {
		workerCount = 1
	}
	return &EmailOrchestrator{
		emailRepo:   emailRepo,
		router:      router,
		workerCount: workerCount,
		logger:      logger,
	}
}

// ProcessEmail processes a single email immediately after fetching
func (o *EmailOrchestrator) ProcessEmail(ctx context.Context, email *entity.Email) error {
	handler := o.router.GetHandler(email.Subject)
	if handler == nil {
		o.logger.Debug("No handler found for email",
			"subject", email.Subject,
			"emailID", email.EmailID)

		// Not an error, the subject just is not a ticket
		return o.emailRepo.MarkAsProcessedByEmailID(
			ctx,
			email.EmailID,
			entity.StatusSkipped,
			"none",
			"No matching handler found",
			map[string]interface{}{
				"subject": email.Subject,
				"reason":  "no_matching_template",
			},
		)
	}

	handlerName := handler.Name()
	o.logger.Info("Processing email with handler",
		"emailID", email.EmailID,
		"handler", handlerName,
		"subject", email.Subject)

	if err := o.emailRepo.UpdateStatusByEmailID(ctx, email.EmailID, entity.StatusProcessing, time.Now()); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	if err := handler.Process(ctx, email); err != nil {
		o.logger.Error("Handler failed to process email",
			"emailID", email.EmailID,
			"handler", handlerName,
			"error", err)

		// The failure lives on the row; the caller moves on to the next email
		if markErr := o.emailRepo.MarkAsProcessedByEmailID(
			ctx,
			email.EmailID,
			entity.StatusFailed,
			handlerName,
			err.Error(),
			nil,
		); markErr != nil {
			o.logger.Error("Failed to mark email as failed", "emailID", email.EmailID, "error", markErr)
		}
		return nil
	}

	o.logger.Info("Email processed successfully",
		"emailID", email.EmailID,
		"handler", handlerName)

	return nil
}

// ProcessPendingEmails processes any emails that were missed or failed. One
// bad email never stops the rest of the batch.
func (o *EmailOrchestrator) ProcessPendingEmails(ctx context.Context) error {
	if err := o.emailRepo.ResetProcessingEmails(ctx); err != nil {
		o.logger.Error("Failed to reset stale emails", "error", err)
	}

	emails, err := o.emailRepo.FindUnprocessed(ctx, pendingBatchSize)
	if err != nil {
		return fmt.Errorf("failed to find unprocessed emails: %w", err)
	}

	if len(emails) == 0 {
		return nil
	}

	workers := o.workerCount
	if workers > len(emails) {
		workers = len(emails)
	}
	o.logger.Info("Processing pending emails", "count", len(emails), "workers", workers)

	jobs := make(chan *entity.Email)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for email := range jobs {
				if err := o.ProcessEmail(ctx, email); err != nil {
					o.logger.Error("Failed to process pending email",
						"emailID", email.EmailID,
						"error", err)
				}
			}
		}()
	}

enqueue:
	for _, email := range emails {
		select {
		case jobs <- email:
		case <-ctx.Done():
			break enqueue
		}
	}
	close(jobs)
	wg.Wait()

	return ctx.Err()
}
