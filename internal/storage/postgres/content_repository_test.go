package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/afrikoop/server/internal/domain/content"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestContentNotConfigured(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	repo := store.Content()

	_, err := repo.GetMissionPage(ctx)
	require.ErrorIs(t, err, content.ErrNotConfigured)

	_, err = repo.GetCleaningPage(ctx)
	require.ErrorIs(t, err, content.ErrNotConfigured)

	_, err = repo.GetEventsPageSettings(ctx)
	require.ErrorIs(t, err, content.ErrNotConfigured)

	_, err = repo.GetSiteText(ctx)
	require.ErrorIs(t, err, content.ErrNotConfigured)
}

func TestContentSiteTextColumnDefaults(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	// Admins create the row; every label has a sensible default.
	_, err := store.Pool().Exec(ctx, `
INSERT INTO site_text_settings (instagram_url) VALUES ('https://instagram.com/afrikoop')
`)
	require.NoError(t, err)

	text, err := store.Content().GetSiteText(ctx)
	require.NoError(t, err)
	require.Equal(t, "Home", text.HomeEN)
	require.Equal(t, "ホーム", text.HomeJA)
	require.Equal(t, "Cleaning", text.CleaningShortEN)
	require.Equal(t, "https://instagram.com/afrikoop", text.InstagramURL)
	require.False(t, text.UpdatedAt.IsZero())
}

func TestContentMissionNewestRowWins(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, err := store.Pool().Exec(ctx, `
INSERT INTO mission_pages (title_en, body_en, updated_at) VALUES
  ('Old Mission', 'old', now() - interval '1 day'),
  ('New Mission', 'new', now())
`)
	require.NoError(t, err)

	page, err := store.Content().GetMissionPage(ctx)
	require.NoError(t, err)
	require.Equal(t, "New Mission", page.TitleEN)
	require.Equal(t, "new", page.BodyEN)
}

func TestContentCleaningPageWithChildren(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	var pageID int64
	err := store.Pool().QueryRow(ctx, `
INSERT INTO cleaning_pages (title_en, title_ja, description_en, cta_en)
VALUES ('Cleaning', '清掃', 'desc', 'Book now')
RETURNING id
`).Scan(&pageID)
	require.NoError(t, err)

	_, err = store.Pool().Exec(ctx, `
INSERT INTO cleaning_features (page_id, text_en, color, sort_order) VALUES
  ($1, 'Second', 'accent', 2),
  ($1, 'First', 'primary', 1)
`, pageID)
	require.NoError(t, err)

	_, err = store.Pool().Exec(ctx, `
INSERT INTO cleaning_gallery_images (page_id, url, caption_en, sort_order)
VALUES ($1, 'https://cdn.example.com/1.jpg', 'Before', 1)
`, pageID)
	require.NoError(t, err)

	page, err := store.Content().GetCleaningPage(ctx)
	require.NoError(t, err)
	require.Equal(t, "Cleaning", page.TitleEN)
	require.Len(t, page.Features, 2)
	// Ordered by sort_order.
	require.Equal(t, "First", page.Features[0].TextEN)
	require.Equal(t, "Second", page.Features[1].TextEN)
	require.Len(t, page.Gallery, 1)
	require.Equal(t, "Before", page.Gallery[0].CaptionEN)
}

func TestContentContactMessageStored(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	message := content.ContactMessage{
		ID:      uuid.NewString(),
		Name:    "Alice",
		Email:   "alice@example.com",
		Message: "Hello!",
		SentAt:  time.Now().UTC(),
	}
	require.NoError(t, store.Content().CreateContactMessage(ctx, message))

	var count int
	require.NoError(t, store.Pool().QueryRow(ctx, `
SELECT count(*) FROM contact_messages WHERE email = 'alice@example.com'
`).Scan(&count))
	require.Equal(t, 1, count)
}

func TestContentTranslationsFallback(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, err := store.Pool().Exec(ctx, `
INSERT INTO translatable_strings (namespace, key, text_en, text_ja, updated_at) VALUES
  ('common', 'greeting', 'Hello', 'こんにちは', now()),
  ('common', 'farewell', 'Goodbye', '', now() - interval '1 hour'),
  ('events', 'register', 'Register', '登録', now())
`)
	require.NoError(t, err)

	repo := store.Content()

	ja, latest, err := repo.GetTranslations(ctx, "ja", "common")
	require.NoError(t, err)
	require.Equal(t, "こんにちは", ja["greeting"])
	// Blank Japanese falls back to English.
	require.Equal(t, "Goodbye", ja["farewell"])
	require.False(t, latest.IsZero())
	require.NotContains(t, ja, "register")

	en, _, err := repo.GetTranslations(ctx, "en", "common")
	require.NoError(t, err)
	require.Equal(t, "Hello", en["greeting"])

	empty, zero, err := repo.GetTranslations(ctx, "en", "missing")
	require.NoError(t, err)
	require.Empty(t, empty)
	require.True(t, zero.IsZero())
}
