package repository

import (
	"context"
	"time"

	"eticket-service/internal/domain/entity"
)

//go:generate mockgen -destination=mocks/mock_email_repository.go -source=email_repository.go

// EmailRepository defines the interface for email storage operations
type EmailRepository interface {
	Save(ctx context.Context, email *entity.Email) error
	FindUnprocessed(ctx context.Context, limit int) ([]*entity.Email, error)
	GetLastEmail(ctx context.Context) (*entity.Email, error)
	ResetProcessingEmails(ctx context.Context) error
	FindByEmailID(ctx context.Context, emailID string) (*entity.Email, error)
	FindByEmailIDs(ctx context.Context, emailIDs []string) (map[string]*entity.Email, error)
	UpdateStatusByEmailID(ctx context.Context, emailID string, status string, startedAt time.Time) error
	UpdateProcessStepsByEmailID(ctx context.Context, emailID string, steps entity.ProcessSteps) error
	MarkAsProcessedByEmailID(ctx context.Context, emailID, status, processorType, errorDetail string, extractedData map[string]interface{}) error
}
