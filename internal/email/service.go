package email

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/afrikoop/server/internal/config"
	"github.com/afrikoop/server/internal/domain/content"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Service sends transactional email through the Resend API.
type Service struct {
	client *resend.Client
	config config.EmailConfig
	logger zerolog.Logger
}

// NewService returns nil when no API key or recipient is configured,
// which disables notifications without special-casing callers.
func NewService(cfg config.EmailConfig, logger zerolog.Logger) *Service {
	if cfg.ResendAPIKey == "" || cfg.ContactTo == "" {
		return nil
	}
	return &Service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
		logger: logger.With().Str("component", "email").Logger(),
	}
}

var _ content.Notifier = (*Service)(nil)

// NotifyContactMessage forwards a contact-form submission to the
// configured admin address.
func (s *Service) NotifyContactMessage(ctx context.Context, message content.ContactMessage) error {
	subject := fmt.Sprintf("New contact message from %s", message.Name)
	body := fmt.Sprintf(
		"<p><strong>From:</strong> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(message.Name),
		html.EscapeString(message.Email),
		html.EscapeString(message.Message),
	)
	return s.send(ctx, s.config.ContactTo, subject, body)
}

func (s *Service) send(ctx context.Context, to, subject, htmlBody string) error {
	params := &resend.SendEmailRequest{
		From:    s.config.From,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		var rateLimitErr *resend.RateLimitError
		if errors.As(err, &rateLimitErr) {
			s.logger.Warn().
				Str("limit", rateLimitErr.Limit).
				Str("reset", rateLimitErr.Reset).
				Msg("resend rate limit exceeded")
			return fmt.Errorf("email rate limit exceeded: %w", err)
		}
		return fmt.Errorf("resend API error: %w", err)
	}

	s.logger.Info().Str("email_id", sent.Id).Msg("contact notification sent")
	return nil
}
