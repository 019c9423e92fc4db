package content

import (
	"context"
	"errors"
	"time"
)

// ErrNotConfigured signals that admins have not created the requested
// page yet. Callers fall back to bundled defaults instead of erroring.
var ErrNotConfigured = errors.New("content not configured")

type Repository interface {
	GetMissionPage(ctx context.Context) (*MissionPage, error)
	GetCleaningPage(ctx context.Context) (*CleaningPage, error)
	GetEventsPageSettings(ctx context.Context) (*EventsPageSettings, error)

	CreateContactMessage(ctx context.Context, message ContactMessage) error

	// GetTranslations returns the key/text map for one language and
	// namespace, plus the newest updated_at for ETag generation. The
	// zero time means no rows matched.
	GetTranslations(ctx context.Context, lang, namespace string) (map[string]string, time.Time, error)

	// GetSiteText returns the UI label singleton, or ErrNotConfigured
	// when admins have not created it.
	GetSiteText(ctx context.Context) (*SiteText, error)
}
