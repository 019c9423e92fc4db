package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/afrikoop/server/internal/domain/content"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubContentRepo struct {
	mission      func(ctx context.Context) (*content.MissionPage, error)
	cleaning     func(ctx context.Context) (*content.CleaningPage, error)
	eventsPage   func(ctx context.Context) (*content.EventsPageSettings, error)
	createMsg    func(ctx context.Context, msg content.ContactMessage) error
	translations func(ctx context.Context, lang, namespace string) (map[string]string, time.Time, error)
	siteText     func(ctx context.Context) (*content.SiteText, error)
}

func (s *stubContentRepo) GetMissionPage(ctx context.Context) (*content.MissionPage, error) {
	if s.mission == nil {
		return nil, content.ErrNotConfigured
	}
	return s.mission(ctx)
}

func (s *stubContentRepo) GetCleaningPage(ctx context.Context) (*content.CleaningPage, error) {
	if s.cleaning == nil {
		return nil, content.ErrNotConfigured
	}
	return s.cleaning(ctx)
}

func (s *stubContentRepo) GetEventsPageSettings(ctx context.Context) (*content.EventsPageSettings, error) {
	if s.eventsPage == nil {
		return nil, content.ErrNotConfigured
	}
	return s.eventsPage(ctx)
}

func (s *stubContentRepo) CreateContactMessage(ctx context.Context, msg content.ContactMessage) error {
	if s.createMsg == nil {
		return nil
	}
	return s.createMsg(ctx, msg)
}

func (s *stubContentRepo) GetTranslations(ctx context.Context, lang, namespace string) (map[string]string, time.Time, error) {
	if s.translations == nil {
		return map[string]string{}, time.Time{}, nil
	}
	return s.translations(ctx, lang, namespace)
}

func (s *stubContentRepo) GetSiteText(ctx context.Context) (*content.SiteText, error) {
	if s.siteText == nil {
		return nil, content.ErrNotConfigured
	}
	return s.siteText(ctx)
}

func newContentHandler(repo *stubContentRepo) *ContentHandler {
	service := content.NewService(repo, nil, zerolog.Nop())
	return NewContentHandler(service, "test")
}

func TestMissionFallsBackToDefault(t *testing.T) {
	handler := newContentHandler(&stubContentRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/mission?lang=en", nil)
	rec := httptest.NewRecorder()
	handler.Mission(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "House of Bijou", body["title"])
	require.Nil(t, body["hero_image"])
	require.NotContains(t, body, "title_ja")
}

func TestMissionBilingualByDefault(t *testing.T) {
	handler := newContentHandler(&stubContentRepo{
		mission: func(context.Context) (*content.MissionPage, error) {
			return &content.MissionPage{
				TitleEN:   "Our Mission",
				TitleJA:   "私たちのミッション",
				BodyEN:    "Solidarity.",
				BodyJA:    "連帯。",
				HeroImage: "https://cdn.example.com/hero.jpg",
				UpdatedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/mission", nil)
	rec := httptest.NewRecorder()
	handler.Mission(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Our Mission", body["title_en"])
	require.Equal(t, "私たちのミッション", body["title_ja"])
	require.Equal(t, "https://cdn.example.com/hero.jpg", body["hero_image"])
	require.Equal(t, "2026-05-01T00:00:00Z", body["updated_at"])
}

func TestCleaningServiceJapaneseFallback(t *testing.T) {
	handler := newContentHandler(&stubContentRepo{
		cleaning: func(context.Context) (*content.CleaningPage, error) {
			return &content.CleaningPage{
				TitleJA:       "清掃",
				DescriptionJA: "説明",
				Features: []content.CleaningFeature{
					{TextEN: "English only", Color: "primary"},
				},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cleaning-service?lang=ja", nil)
	rec := httptest.NewRecorder()
	handler.CleaningService(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "清掃", body["title"])

	features, ok := body["features"].([]any)
	require.True(t, ok)
	require.Len(t, features, 1)
	feature := features[0].(map[string]any)
	// Blank Japanese text falls back to English.
	require.Equal(t, "English only", feature["text"])
}

func TestCleaningServiceGalleryCappedAtThree(t *testing.T) {
	gallery := make([]content.CleaningGalleryImage, 5)
	for i := range gallery {
		gallery[i] = content.CleaningGalleryImage{URL: fmt.Sprintf("https://cdn.example.com/%d.jpg", i)}
	}
	handler := newContentHandler(&stubContentRepo{
		cleaning: func(context.Context) (*content.CleaningPage, error) {
			return &content.CleaningPage{TitleEN: "Cleaning", Gallery: gallery}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cleaning-service?lang=en", nil)
	rec := httptest.NewRecorder()
	handler.CleaningService(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body["gallery"], 3)
}

func TestEventsPageDefault(t *testing.T) {
	handler := newContentHandler(&stubContentRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/events-page?lang=ja", nil)
	rec := httptest.NewRecorder()
	handler.EventsPage(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "イベント情報", body["title"])
}

func TestContactCreated(t *testing.T) {
	var stored content.ContactMessage
	handler := newContentHandler(&stubContentRepo{
		createMsg: func(_ context.Context, msg content.ContactMessage) error {
			stored = msg
			return nil
		},
	})

	rec := postJSON(t, handler.Contact, "/api/contact", map[string]string{
		"name":    "  Alice <script>alert(1)</script>  ",
		"email":   "alice@example.com",
		"message": "Hello!",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), "Message received. Thank you!")
	require.NotContains(t, stored.Name, "<script>")
	require.Equal(t, "alice@example.com", stored.Email)
}

func TestContactValidation(t *testing.T) {
	handler := newContentHandler(&stubContentRepo{})

	rec := postJSON(t, handler.Contact, "/api/contact", map[string]string{
		"name":    "Alice",
		"email":   "not-an-email",
		"message": "Hello!",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestI18nMergesNamespaces(t *testing.T) {
	handler := newContentHandler(&stubContentRepo{
		translations: func(_ context.Context, lang, namespace string) (map[string]string, time.Time, error) {
			require.Equal(t, "ja", lang)
			switch namespace {
			case "common":
				return map[string]string{"greeting": "こんにちは", "farewell": "さようなら"},
					time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), nil
			case "events":
				return map[string]string{"greeting": "ようこそ"},
					time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), nil
			}
			return nil, time.Time{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/i18n/ja?ns=common,events", nil)
	req.SetPathValue("lang", "ja")
	rec := httptest.NewRecorder()
	handler.I18n(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// Later namespaces win on duplicate keys.
	require.Equal(t, "ようこそ", body["greeting"])
	require.Equal(t, "さようなら", body["farewell"])

	etag := rec.Header().Get("ETag")
	expected := fmt.Sprintf("W/%q", fmt.Sprintf("i18n-ja-%d", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC).Unix()))
	require.Equal(t, expected, etag)
}

func TestI18nNamespaceRoute(t *testing.T) {
	handler := newContentHandler(&stubContentRepo{
		translations: func(_ context.Context, lang, namespace string) (map[string]string, time.Time, error) {
			require.Equal(t, "en", lang)
			require.Equal(t, "events", namespace)
			return map[string]string{"register": "Register"}, time.Time{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/i18n/en/events", nil)
	req.SetPathValue("lang", "en")
	req.SetPathValue("namespace", "events")
	rec := httptest.NewRecorder()
	handler.I18nNamespace(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// No rows timestamp, no ETag.
	require.Empty(t, rec.Header().Get("ETag"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Register", body["register"])
}
