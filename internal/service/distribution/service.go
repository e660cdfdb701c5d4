package distribution

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"

	"github.com/recapkit/recap/internal/service"
	"github.com/recapkit/recap/mailer"
)

const defaultSubject = "Meeting Summary"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// InvalidRecipientsError names every malformed address in the request
// so the caller can correct them. The send is all-or-nothing: nothing
// goes out while any address is invalid.
type InvalidRecipientsError struct {
	Recipients []string
}

func (e *InvalidRecipientsError) Error() string {
	return fmt.Sprintf("invalid email addresses: %s", strings.Join(e.Recipients, ", "))
}

func (e *InvalidRecipientsError) Unwrap() error {
	return service.ErrInvalidInput
}

// Service validates a distribution request and hands one message to
// the mail relay. It never touches the record store.
type Service struct {
	mailer mailer.Mailer
}

func (s *Service) Distribute(ctx context.Context, recipients []string, subject string, body string, meetingTitle string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", service.ErrInvalidInput)
	}

	var invalid []string
	for _, recipient := range recipients {
		if !emailPattern.MatchString(recipient) {
			invalid = append(invalid, recipient)
		}
	}
	if len(invalid) > 0 {
		return &InvalidRecipientsError{Recipients: invalid}
	}

	if len(strings.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: summary body is required", service.ErrInvalidInput)
	}

	subject = strings.TrimSpace(subject)
	if len(subject) == 0 {
		subject = defaultSubject
		if title := strings.TrimSpace(meetingTitle); len(title) > 0 {
			subject = fmt.Sprintf("%s: %s", defaultSubject, title)
		}
	}

	msg := mailer.Message{
		To:      recipients,
		Subject: subject,
		Text:    textBody(body, meetingTitle),
		HTML:    htmlBody(body, meetingTitle),
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "email delivery failed", "error", err, "recipients", len(recipients))
		return service.ErrDelivery
	}

	return nil
}

func textBody(body string, meetingTitle string) string {
	var sb strings.Builder

	if title := strings.TrimSpace(meetingTitle); len(title) > 0 {
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}

	sb.WriteString(body)
	sb.WriteString("\n\n--\nShared via Recap")

	return sb.String()
}

func htmlBody(body string, meetingTitle string) string {
	var sb strings.Builder

	sb.WriteString("<div>")

	if title := strings.TrimSpace(meetingTitle); len(title) > 0 {
		sb.WriteString(fmt.Sprintf("<h2>%s</h2>", html.EscapeString(title)))
	}

	escaped := html.EscapeString(body)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	sb.WriteString(fmt.Sprintf("<p>%s</p>", escaped))

	sb.WriteString("<hr><p><em>Shared via Recap</em></p></div>")

	return sb.String()
}

func New(m mailer.Mailer) *Service {
	if m == nil {
		panic("mailer is required")
	}

	return &Service{
		mailer: m,
	}
}
