package router

import (
	"regexp"
	"strings"

	"eticket-service/internal/usecase"
	"eticket-service/pkg/logger"
)

// replyPrefix matches the reply and forward markers mail clients stack in
// front of a subject, in English and Spanish.
var replyPrefix = regexp.MustCompile(`(?i)^(?:\s*(?:re|fw|fwd|rv|res|enc)\s*:\s*)+`)

// SubjectRouter routes ticket emails to handlers by subject. The first
// registered handler that accepts a subject wins.
type SubjectRouter struct {
	handlers []usecase.TemplateHandler
	names    map[string]struct{}
	logger   logger.Logger
}

func NewSubjectRouter(logger logger.Logger) *SubjectRouter {
	return &SubjectRouter{
		names:  make(map[string]struct{}),
		logger: logger,
	}
}

// Register appends a handler. A second handler with an already registered
// name is ignored.
func (r *SubjectRouter) Register(handler usecase.TemplateHandler) {
	name := handler.Name()
	if _, dup := r.names[name]; dup {
		r.logger.Warn("Handler already registered, ignoring", "handler", name)
		return
	}
	r.names[name] = struct{}{}
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered handler", "handler", name)
}

// GetHandler returns the handler for a subject, nil when none accepts it.
// Forwarded tickets ("Fwd: RV: ...") are matched on the original subject.
func (r *SubjectRouter) GetHandler(subject string) usecase.TemplateHandler {
	subject = cleanSubject(subject)
	for _, handler := range r.handlers {
		if handler.CanHandle(subject) {
			return handler
		}
	}
	r.logger.Debug("No handler for subject", "subject", subject)
	return nil
}

func cleanSubject(subject string) string {
	subject = replyPrefix.ReplaceAllString(subject, "")
	return strings.Join(strings.Fields(subject), " ")
}
