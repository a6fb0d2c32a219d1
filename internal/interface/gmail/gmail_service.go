package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"eticket-service/internal/domain/entity"
	"eticket-service/internal/domain/repository"
	"eticket-service/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// lookback re-reads a few days before the newest stored email so late
// deliveries are not lost; stored ids are skipped
const lookback = 3 * 24 * time.Hour

// EmailProcessor is what the poller hands new emails to
type EmailProcessor interface {
	ProcessEmail(ctx context.Context, email *entity.Email) error
	ProcessPendingEmails(ctx context.Context) error
}

// GmailService polls a mailbox for ticket emails and processes them immediately
type GmailService struct {
	gmailService    *gmail.Service
	emailRepo       repository.EmailRepository
	processor       EmailProcessor
	subjectPatterns []string
	logger          logger.Logger
	pollInterval    time.Duration
}

// NewGmailService creates a new Gmail service
func NewGmailService(
	ctx context.Context,
	tokenSource oauth2.TokenSource,
	emailRepo repository.EmailRepository,
	processor EmailProcessor,
	subjectPatterns []string,
	logger logger.Logger,
	pollInterval time.Duration,
) (*GmailService, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}

	return &GmailService{
		gmailService:    service,
		emailRepo:       emailRepo,
		processor:       processor,
		subjectPatterns: subjectPatterns,
		logger:          logger,
		pollInterval:    pollInterval,
	}, nil
}

// StartPolling drains pending emails once, then polls until ctx is done
func (s *GmailService) StartPolling(ctx context.Context) {
	if err := s.processor.ProcessPendingEmails(ctx); err != nil {
		s.logger.Error("Failed to process pending emails on startup", "error", err)
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Gmail polling stopped")
			return
		case <-ticker.C:
			s.logger.Info("Polling Gmail for new emails")
			if err := s.FetchAndProcessEmails(ctx); err != nil {
				s.logger.Error("Error polling Gmail", "error", err)
			}
		}
	}
}

// FetchAndProcessEmails stores ticket emails received after the newest stored
// one and processes each right away
func (s *GmailService) FetchAndProcessEmails(ctx context.Context) error {
	lastEmail, err := s.emailRepo.GetLastEmail(ctx)
	if err != nil {
		s.logger.Error("Failed to get last email", "error", err)
	}

	var fetchFrom time.Time
	if lastEmail != nil && !lastEmail.ReceivedAt.IsZero() {
		fetchFrom = lastEmail.ReceivedAt
	}

	query := buildQuery(fetchFrom, time.Now(), s.subjectPatterns)
	s.logger.Info("Querying Gmail", "query", query)

	var messages []*gmail.Message
	err = s.gmailService.Users.Messages.List("me").Q(query).Pages(ctx, func(resp *gmail.ListMessagesResponse) error {
		messages = append(messages, resp.Messages...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}

	if len(messages) == 0 {
		s.logger.Debug("No new messages found")
		return nil
	}

	emailIDs := make([]string, len(messages))
	for i, msg := range messages {
		emailIDs[i] = msg.Id
	}

	existingEmails, err := s.emailRepo.FindByEmailIDs(ctx, emailIDs)
	if err != nil {
		s.logger.Error("Failed to batch check existing emails", "error", err)
		existingEmails = make(map[string]*entity.Email)
	}

	newCount, processedCount, skippedCount := 0, 0, 0

	for _, msg := range messages {
		if _, exists := existingEmails[msg.Id]; exists {
			skippedCount++
			continue
		}

		fullMsg, err := s.gmailService.Users.Messages.Get("me", msg.Id).Format("full").Context(ctx).Do()
		if err != nil {
			s.logger.Error("Failed to get message", "emailID", msg.Id, "error", err)
			continue
		}

		email, err := convertToEmail(fullMsg)
		if err != nil {
			s.logger.Error("Failed to convert message", "emailID", msg.Id, "error", err)
			continue
		}

		if !matchesSubject(email.Subject, s.subjectPatterns) {
			s.logger.Debug("Email doesn't match subject filter", "subject", email.Subject)
			skippedCount++
			continue
		}

		if err := s.emailRepo.Save(ctx, email); err != nil {
			s.logger.Error("Failed to save email", "emailID", email.EmailID, "error", err)
			continue
		}
		newCount++

		if err := s.processor.ProcessEmail(ctx, email); err != nil {
			s.logger.Error("Failed to process email", "emailID", email.EmailID, "error", err)
		} else {
			processedCount++
		}
	}

	s.logger.Info("Email fetch and process completed",
		"totalMessages", len(messages),
		"skipped", skippedCount,
		"newEmails", newCount,
		"processedEmails", processedCount)

	return nil
}

// buildQuery restricts the listing to recent mail whose subject carries one
// of the patterns. A zero from starts six months before now.
func buildQuery(from, now time.Time, patterns []string) string {
	if from.IsZero() {
		from = now.AddDate(0, -6, 0)
	} else {
		from = from.Add(-lookback)
	}

	query := fmt.Sprintf("after:%s", from.Format("2006/01/02"))

	var subjects []string
	for _, p := range patterns {
		p = strings.TrimSpace(strings.ReplaceAll(p, `"`, ""))
		if p != "" {
			subjects = append(subjects, fmt.Sprintf("subject:%q", p))
		}
	}
	if len(subjects) > 0 {
		query += " {" + strings.Join(subjects, " ") + "}"
	}
	return query
}

// matchesSubject reports whether subject contains a pattern, ignoring case.
// No patterns accepts every subject.
func matchesSubject(subject string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	subject = strings.ToLower(subject)
	for _, p := range patterns {
		if p != "" && strings.Contains(subject, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// convertToEmail converts a Gmail message to a PENDING email, taking the
// first text/plain and text/html parts found depth first
func convertToEmail(msg *gmail.Message) (*entity.Email, error) {
	if msg.Payload == nil {
		return nil, fmt.Errorf("message %s has no payload", msg.Id)
	}

	email := &entity.Email{
		EmailID:       msg.Id,
		Labels:        msg.LabelIds,
		ProcessStatus: entity.StatusPending,
		ReceivedAt:    time.UnixMilli(msg.InternalDate).UTC(),
	}

	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "From":
			email.From = header.Value
		case "To":
			email.To = header.Value
		case "Subject":
			email.Subject = header.Value
		}
	}

	if err := collectBodies(msg.Payload, email); err != nil {
		return nil, fmt.Errorf("failed to decode message %s: %w", msg.Id, err)
	}
	return email, nil
}

func collectBodies(part *gmail.MessagePart, email *entity.Email) error {
	if part.Filename == "" && part.Body != nil && part.Body.Data != "" {
		switch {
		case strings.HasPrefix(part.MimeType, "text/plain") && email.Body == "":
			data, err := decodeBody(part.Body.Data)
			if err != nil {
				return err
			}
			email.Body = data
		case strings.HasPrefix(part.MimeType, "text/html") && email.HTMLBody == "":
			data, err := decodeBody(part.Body.Data)
			if err != nil {
				return err
			}
			email.HTMLBody = data
		}
	}

	for _, child := range part.Parts {
		if err := collectBodies(child, email); err != nil {
			return err
		}
	}
	return nil
}

// decodeBody accepts Gmail's base64url data with or without padding
func decodeBody(data string) (string, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(strings.TrimRight(data, "="))
		if err != nil {
			return "", err
		}
	}
	return string(decoded), nil
}
