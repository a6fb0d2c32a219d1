package usecase

import (
	"context"
	"strings"

	"eticket-service/internal/domain/entity"
)

// TicketEmailProcessor is the part of TicketProcessor the adapter needs
type TicketEmailProcessor interface {
	ProcessTicketEmail(ctx context.Context, email *entity.Email) error
}

// TicketHandlerAdapter adapts a TicketEmailProcessor to TemplateHandler
type TicketHandlerAdapter struct {
	processor TicketEmailProcessor
	name      string
	patterns  []string
}

// NewTicketHandlerAdapter creates a handler for subjects containing any of patterns
func NewTicketHandlerAdapter(processor TicketEmailProcessor, name string, patterns []string) *TicketHandlerAdapter {
	return &TicketHandlerAdapter{
		processor: processor,
		name:      name,
		patterns:  patterns,
	}
}

// CanHandle matches the subject case-insensitively
func (a *TicketHandlerAdapter) CanHandle(subject string) bool {
	subject = strings.ToLower(subject)
	for _, pattern := range a.patterns {
		if pattern == "" {
			continue
		}
		if strings.Contains(subject, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

func (a *TicketHandlerAdapter) Name() string {
	return a.name
}

// Process hands both renditions of the email to the processor
func (a *TicketHandlerAdapter) Process(ctx context.Context, email *entity.Email) error {
	return a.processor.ProcessTicketEmail(ctx, email)
}
