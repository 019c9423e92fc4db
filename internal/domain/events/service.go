package events

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/afrikoop/server/internal/domain/ids"
	"github.com/rs/zerolog"
)

const (
	DefaultPageSize = 9
	MaxPageSize     = 100
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

func (s *Service) List(ctx context.Context, params ListParams) (ListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = DefaultPageSize
	}
	if params.PageSize > MaxPageSize {
		params.PageSize = MaxPageSize
	}
	return s.repo.List(ctx, params)
}

func (s *Service) Get(ctx context.Context, publicID string) (*Event, error) {
	if err := ids.ValidateULID(publicID); err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByPublicID(ctx, publicID)
}

// RegisterForEvent records that the user attends the event. The
// capacity and uniqueness invariants are enforced atomically by the
// repository transaction.
func (s *Service) RegisterForEvent(ctx context.Context, userID, publicID string) (*Registration, error) {
	if err := ids.ValidateULID(publicID); err != nil {
		return nil, ErrNotFound
	}

	registration, err := s.repo.CreateRegistration(ctx, userID, publicID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("event", publicID).
		Str("registration", registration.ID).
		Msg("registration created")
	return registration, nil
}

func (s *Service) ListRegistrationsForUser(ctx context.Context, userID string) ([]Registration, error) {
	registrations, err := s.repo.ListRegistrationsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return registrations, nil
}

// ParseListParams reads page, page_size, and past from query values.
// Unparseable numbers fall back to defaults rather than erroring, and
// page_size is clamped to [1, MaxPageSize].
func ParseListParams(values url.Values) ListParams {
	params := ListParams{Page: 1, PageSize: DefaultPageSize}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			params.Page = parsed
		}
	}
	if raw := strings.TrimSpace(values.Get("page_size")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			switch {
			case parsed < 1:
				params.PageSize = DefaultPageSize
			case parsed > MaxPageSize:
				params.PageSize = MaxPageSize
			default:
				params.PageSize = parsed
			}
		}
	}
	params.IncludePast = strings.EqualFold(strings.TrimSpace(values.Get("past")), "true")
	return params
}

// ParseLang normalizes the lang query parameter. Empty string means
// "both languages".
func ParseLang(values url.Values) string {
	switch strings.ToLower(strings.TrimSpace(values.Get("lang"))) {
	case LangEnglish:
		return LangEnglish
	case LangJapanese:
		return LangJapanese
	default:
		return ""
	}
}
