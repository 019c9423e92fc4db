package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	mission      *MissionPage
	cleaning     *CleaningPage
	eventsPage   *EventsPageSettings
	stored       []ContactMessage
	translations map[string]map[string]string // namespace -> key -> text
	siteText     *SiteText
	updatedAt    time.Time
	failStore    error
}

func (s *stubRepo) GetMissionPage(context.Context) (*MissionPage, error) {
	if s.mission == nil {
		return nil, ErrNotConfigured
	}
	return s.mission, nil
}

func (s *stubRepo) GetCleaningPage(context.Context) (*CleaningPage, error) {
	if s.cleaning == nil {
		return nil, ErrNotConfigured
	}
	return s.cleaning, nil
}

func (s *stubRepo) GetEventsPageSettings(context.Context) (*EventsPageSettings, error) {
	if s.eventsPage == nil {
		return nil, ErrNotConfigured
	}
	return s.eventsPage, nil
}

func (s *stubRepo) CreateContactMessage(_ context.Context, message ContactMessage) error {
	if s.failStore != nil {
		return s.failStore
	}
	s.stored = append(s.stored, message)
	return nil
}

func (s *stubRepo) GetSiteText(context.Context) (*SiteText, error) {
	if s.siteText == nil {
		return nil, ErrNotConfigured
	}
	return s.siteText, nil
}

func (s *stubRepo) GetTranslations(_ context.Context, _, namespace string) (map[string]string, time.Time, error) {
	rows, ok := s.translations[namespace]
	if !ok {
		return nil, time.Time{}, nil
	}
	return rows, s.updatedAt, nil
}

type recordingNotifier struct {
	notified []ContactMessage
	err      error
}

func (n *recordingNotifier) NotifyContactMessage(_ context.Context, message ContactMessage) error {
	n.notified = append(n.notified, message)
	return n.err
}

func TestMissionFallsBackToDefaults(t *testing.T) {
	svc := NewService(&stubRepo{}, nil, zerolog.Nop())

	page, err := svc.Mission(context.Background())
	require.NoError(t, err)
	require.Equal(t, "House of Bijou", page.TitleEN)
	require.NotEmpty(t, page.BodyJA)
}

func TestMissionReturnsConfiguredPage(t *testing.T) {
	repo := &stubRepo{mission: &MissionPage{
		TitleEN: "Our Mission",
		BodyEN:  "<p>Together.</p><script>alert(1)</script>",
	}}
	svc := NewService(repo, nil, zerolog.Nop())

	page, err := svc.Mission(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Our Mission", page.TitleEN)
	// Admin bodies keep safe markup but lose scripts.
	require.Equal(t, "<p>Together.</p>", page.BodyEN)
}

func TestCleaningDefaultsIncludeFeatures(t *testing.T) {
	svc := NewService(&stubRepo{}, nil, zerolog.Nop())

	page, err := svc.CleaningService(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Features, 4)
	require.Equal(t, "primary", page.Features[0].Color)
}

func TestEventsPageDefaults(t *testing.T) {
	svc := NewService(&stubRepo{}, nil, zerolog.Nop())

	settings, err := svc.EventsPage(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Upcoming Events", settings.TitleEN)
}

func TestSubmitContactStoresSanitizedMessage(t *testing.T) {
	repo := &stubRepo{}
	notifier := &recordingNotifier{}
	svc := NewService(repo, notifier, zerolog.Nop())

	message, err := svc.SubmitContact(context.Background(), ContactParams{
		Name:    "  Amara <b>K</b>  ",
		Email:   "amara@example.org",
		Message: "<script>x</script>Hello there",
	})
	require.NoError(t, err)
	require.NotEmpty(t, message.ID)
	require.Equal(t, "Amara K", message.Name)
	require.Equal(t, "Hello there", message.Message)
	require.Len(t, repo.stored, 1)
	require.Len(t, notifier.notified, 1)
}

func TestSubmitContactValidation(t *testing.T) {
	svc := NewService(&stubRepo{}, nil, zerolog.Nop())

	cases := []struct {
		name   string
		params ContactParams
		field  string
	}{
		{"missing name", ContactParams{Email: "a@b.org", Message: "hi"}, "Name"},
		{"bad email", ContactParams{Name: "A", Email: "nope", Message: "hi"}, "Email"},
		{"missing message", ContactParams{Name: "A", Email: "a@b.org"}, "Message"},
		{"whitespace only", ContactParams{Name: "  ", Email: "a@b.org", Message: "hi"}, "Name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SubmitContact(context.Background(), tc.params)
			var invalid ValidationError
			require.ErrorAs(t, err, &invalid)
			require.Equal(t, tc.field, invalid.Field)
		})
	}
}

func TestSubmitContactNotifierFailureIsNotFatal(t *testing.T) {
	repo := &stubRepo{}
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := NewService(repo, notifier, zerolog.Nop())

	_, err := svc.SubmitContact(context.Background(), ContactParams{
		Name: "A", Email: "a@b.org", Message: "hello",
	})
	require.NoError(t, err)
	require.Len(t, repo.stored, 1)
}

func TestTranslationsMergesNamespaces(t *testing.T) {
	updated := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubRepo{
		translations: map[string]map[string]string{
			"common": {"home": "Home", "login": "Login"},
			"navbar": {"home": "Start", "events": "Events"},
		},
		updatedAt: updated,
	}
	svc := NewService(repo, nil, zerolog.Nop())

	merged, latest, err := svc.Translations(context.Background(), "en", []string{"common", "navbar"})
	require.NoError(t, err)
	require.Equal(t, updated, latest)
	// Later namespaces win on duplicate keys.
	require.Equal(t, "Start", merged["home"])
	require.Equal(t, "Login", merged["login"])
	require.Equal(t, "Events", merged["events"])
}

func TestTranslationsMergesSiteText(t *testing.T) {
	rowsUpdated := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	labelsUpdated := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubRepo{
		translations: map[string]map[string]string{
			"common": {"home": "Start", "welcome": "Welcome"},
		},
		siteText: &SiteText{
			HomeEN:       "Home",
			HomeJA:       "ホーム",
			LoginEN:      "Login",
			InstagramURL: "https://instagram.com/afrikoop",
			UpdatedAt:    labelsUpdated,
		},
		updatedAt: rowsUpdated,
	}
	svc := NewService(repo, nil, zerolog.Nop())

	merged, latest, err := svc.Translations(context.Background(), "en", nil)
	require.NoError(t, err)
	// Labels override rows of the same key; other rows survive.
	require.Equal(t, "Home", merged["home"])
	require.Equal(t, "Welcome", merged["welcome"])
	require.Equal(t, "https://instagram.com/afrikoop", merged["instagram_url"])
	require.Equal(t, labelsUpdated, latest)

	ja, _, err := svc.Translations(context.Background(), "ja", nil)
	require.NoError(t, err)
	require.Equal(t, "ホーム", ja["home"])
	// Blank Japanese labels fall back to English.
	require.Equal(t, "Login", ja["login"])
}

func TestTranslationsWithoutSiteText(t *testing.T) {
	repo := &stubRepo{
		translations: map[string]map[string]string{"common": {"home": "Home"}},
	}
	svc := NewService(repo, nil, zerolog.Nop())

	merged, _, err := svc.Translations(context.Background(), "en", nil)
	require.NoError(t, err)
	require.NotContains(t, merged, "login")
	require.NotContains(t, merged, "instagram_url")
}

func TestTranslationsDefaultsToCommon(t *testing.T) {
	repo := &stubRepo{
		translations: map[string]map[string]string{"common": {"home": "Home"}},
	}
	svc := NewService(repo, nil, zerolog.Nop())

	merged, _, err := svc.Translations(context.Background(), "en", nil)
	require.NoError(t, err)
	require.Equal(t, "Home", merged["home"])
}
