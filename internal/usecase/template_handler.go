package usecase

import (
	"context"

	"eticket-service/internal/domain/entity"
)

//go:generate mockgen -destination=mocks/mock_template_handler.go -source=template_handler.go

// TemplateHandler defines the interface for email template handlers
type TemplateHandler interface {
	// CanHandle determines if this handler can process the given email subject
	CanHandle(subject string) bool

	// Name identifies the handler in logs and on the processed email row
	Name() string

	// Process processes the email and records the outcome on it
	Process(ctx context.Context, email *entity.Email) error
}

// SubjectRouter routes emails to the appropriate handler based on subject
type SubjectRouter interface {
	// Register registers a handler for specific subject patterns
	Register(handler TemplateHandler)

	// GetHandler returns the appropriate handler for a given subject
	GetHandler(subject string) TemplateHandler
}
