package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/afrikoop/server/internal/sanitize"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Notifier delivers a copy of a contact message to the site admins.
// Delivery failures are logged, never surfaced to the submitter.
type Notifier interface {
	NotifyContactMessage(ctx context.Context, message ContactMessage) error
}

// ValidationError reports a single invalid contact-form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ContactParams carries a contact-form submission.
type ContactParams struct {
	Name    string `validate:"required,max=200"`
	Email   string `validate:"required,email,max=254"`
	Message string `validate:"required,max=10000"`
}

type Service struct {
	repo     Repository
	notifier Notifier
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewService builds the content service. notifier may be nil when no
// email backend is configured.
func NewService(repo Repository, notifier Notifier, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		validate: validator.New(),
		logger:   logger.With().Str("component", "content").Logger(),
	}
}

func (s *Service) Mission(ctx context.Context) (*MissionPage, error) {
	page, err := s.repo.GetMissionPage(ctx)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return defaultMissionPage(), nil
		}
		return nil, fmt.Errorf("load mission page: %w", err)
	}
	// Bodies are admin-authored rich text rendered by the browser.
	page.BodyEN = sanitize.HTML(page.BodyEN)
	page.BodyJA = sanitize.HTML(page.BodyJA)
	return page, nil
}

func (s *Service) CleaningService(ctx context.Context) (*CleaningPage, error) {
	page, err := s.repo.GetCleaningPage(ctx)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return defaultCleaningPage(), nil
		}
		return nil, fmt.Errorf("load cleaning page: %w", err)
	}
	return page, nil
}

func (s *Service) EventsPage(ctx context.Context) (*EventsPageSettings, error) {
	settings, err := s.repo.GetEventsPageSettings(ctx)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return defaultEventsPageSettings(), nil
		}
		return nil, fmt.Errorf("load events page settings: %w", err)
	}
	return settings, nil
}

// SubmitContact validates, sanitizes, and stores a contact message,
// then notifies admins when a notifier is configured.
func (s *Service) SubmitContact(ctx context.Context, params ContactParams) (*ContactMessage, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Email = strings.TrimSpace(params.Email)
	params.Message = strings.TrimSpace(params.Message)

	if err := s.validate.Struct(params); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			field := invalid[0]
			return nil, ValidationError{Field: field.Field(), Message: "failed " + field.Tag() + " validation"}
		}
		return nil, fmt.Errorf("validate contact message: %w", err)
	}

	message := ContactMessage{
		ID:      uuid.NewString(),
		Name:    sanitize.Text(params.Name),
		Email:   params.Email,
		Message: sanitize.Text(params.Message),
		SentAt:  time.Now().UTC(),
	}
	if err := s.repo.CreateContactMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("store contact message: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyContactMessage(ctx, message); err != nil {
			s.logger.Error().Err(err).Str("message_id", message.ID).Msg("contact notification failed")
		}
	}

	s.logger.Info().Str("message_id", message.ID).Msg("contact message received")
	return &message, nil
}

// Translations merges the key/text maps for the requested namespaces.
// Later namespaces override earlier ones on duplicate keys. The
// returned time is the newest updated_at across all rows, for ETags.
func (s *Service) Translations(ctx context.Context, lang string, namespaces []string) (map[string]string, time.Time, error) {
	if len(namespaces) == 0 {
		namespaces = []string{"common"}
	}

	merged := make(map[string]string)
	var latest time.Time
	for _, namespace := range namespaces {
		namespace = strings.TrimSpace(namespace)
		if namespace == "" {
			continue
		}
		rows, updated, err := s.repo.GetTranslations(ctx, lang, namespace)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("load translations %q: %w", namespace, err)
		}
		for key, text := range rows {
			merged[key] = text
		}
		if updated.After(latest) {
			latest = updated
		}
	}

	// UI labels from the site text singleton override translation rows
	// of the same key. Absent settings mean the frontend uses its own
	// bundled defaults.
	siteText, err := s.repo.GetSiteText(ctx)
	if err != nil && !errors.Is(err, ErrNotConfigured) {
		return nil, time.Time{}, fmt.Errorf("load site text: %w", err)
	}
	if siteText != nil {
		for key, text := range siteText.Labels(lang) {
			merged[key] = text
		}
		if siteText.UpdatedAt.After(latest) {
			latest = siteText.UpdatedAt
		}
	}
	return merged, latest, nil
}
