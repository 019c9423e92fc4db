package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/afrikoop/server/internal/domain/content"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContentRepository struct {
	pool *pgxpool.Pool
}

// Admin-managed pages are singletons in practice but stored as rows;
// the newest row wins.

func (r *ContentRepository) GetMissionPage(ctx context.Context) (*content.MissionPage, error) {
	row := r.pool.QueryRow(ctx, `
SELECT title_en, title_ja, body_en, body_ja, hero_image, updated_at
  FROM mission_pages
 ORDER BY updated_at DESC
 LIMIT 1
`)

	var page content.MissionPage
	err := row.Scan(&page.TitleEN, &page.TitleJA, &page.BodyEN, &page.BodyJA, &page.HeroImage, &page.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, content.ErrNotConfigured
		}
		return nil, fmt.Errorf("get mission page: %w", err)
	}
	return &page, nil
}

func (r *ContentRepository) GetCleaningPage(ctx context.Context) (*content.CleaningPage, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, title_en, title_ja, description_en, description_ja, cta_en, cta_ja, image, updated_at
  FROM cleaning_pages
 ORDER BY updated_at DESC
 LIMIT 1
`)

	var (
		pageID int64
		page   content.CleaningPage
	)
	err := row.Scan(
		&pageID,
		&page.TitleEN, &page.TitleJA,
		&page.DescriptionEN, &page.DescriptionJA,
		&page.CTAEN, &page.CTAJA,
		&page.Image, &page.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, content.ErrNotConfigured
		}
		return nil, fmt.Errorf("get cleaning page: %w", err)
	}

	page.Features, err = r.cleaningFeatures(ctx, pageID)
	if err != nil {
		return nil, err
	}
	page.Gallery, err = r.cleaningGallery(ctx, pageID)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *ContentRepository) cleaningFeatures(ctx context.Context, pageID int64) ([]content.CleaningFeature, error) {
	rows, err := r.pool.Query(ctx, `
SELECT text_en, text_ja, color
  FROM cleaning_features
 WHERE page_id = $1
 ORDER BY sort_order ASC, id ASC
`, pageID)
	if err != nil {
		return nil, fmt.Errorf("list cleaning features: %w", err)
	}
	defer rows.Close()

	var features []content.CleaningFeature
	for rows.Next() {
		var feature content.CleaningFeature
		if err := rows.Scan(&feature.TextEN, &feature.TextJA, &feature.Color); err != nil {
			return nil, fmt.Errorf("scan cleaning feature: %w", err)
		}
		features = append(features, feature)
	}
	return features, rows.Err()
}

func (r *ContentRepository) cleaningGallery(ctx context.Context, pageID int64) ([]content.CleaningGalleryImage, error) {
	rows, err := r.pool.Query(ctx, `
SELECT url, caption_en, caption_ja
  FROM cleaning_gallery_images
 WHERE page_id = $1
 ORDER BY sort_order ASC, id ASC
`, pageID)
	if err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	defer rows.Close()

	var images []content.CleaningGalleryImage
	for rows.Next() {
		var image content.CleaningGalleryImage
		if err := rows.Scan(&image.URL, &image.CaptionEN, &image.CaptionJA); err != nil {
			return nil, fmt.Errorf("scan gallery image: %w", err)
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

func (r *ContentRepository) GetEventsPageSettings(ctx context.Context) (*content.EventsPageSettings, error) {
	row := r.pool.QueryRow(ctx, `
SELECT title_en, title_ja, subtitle_en, subtitle_ja, hero_image, updated_at
  FROM events_page_settings
 ORDER BY updated_at DESC
 LIMIT 1
`)

	var settings content.EventsPageSettings
	err := row.Scan(
		&settings.TitleEN, &settings.TitleJA,
		&settings.SubtitleEN, &settings.SubtitleJA,
		&settings.HeroImage, &settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, content.ErrNotConfigured
		}
		return nil, fmt.Errorf("get events page settings: %w", err)
	}
	return &settings, nil
}

func (r *ContentRepository) CreateContactMessage(ctx context.Context, message content.ContactMessage) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO contact_messages (id, name, email, message, sent_at)
VALUES ($1, $2, $3, $4, $5)
`, message.ID, message.Name, message.Email, message.Message, message.SentAt)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

func (r *ContentRepository) GetSiteText(ctx context.Context) (*content.SiteText, error) {
	row := r.pool.QueryRow(ctx, `
SELECT home_en, home_ja, events_en, events_ja,
       cleaning_en, cleaning_ja, cleaning_short_en, cleaning_short_ja,
       login_en, login_ja, register_en, register_ja, logout_en, logout_ja,
       browse_events_en, browse_events_ja, learn_more_en, learn_more_ja,
       instagram_url, updated_at
  FROM site_text_settings
 ORDER BY updated_at DESC
 LIMIT 1
`)

	var text content.SiteText
	err := row.Scan(
		&text.HomeEN, &text.HomeJA,
		&text.EventsEN, &text.EventsJA,
		&text.CleaningEN, &text.CleaningJA,
		&text.CleaningShortEN, &text.CleaningShortJA,
		&text.LoginEN, &text.LoginJA,
		&text.RegisterEN, &text.RegisterJA,
		&text.LogoutEN, &text.LogoutJA,
		&text.BrowseEventsEN, &text.BrowseEventsJA,
		&text.LearnMoreEN, &text.LearnMoreJA,
		&text.InstagramURL, &text.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, content.ErrNotConfigured
		}
		return nil, fmt.Errorf("get site text: %w", err)
	}
	return &text, nil
}

// GetTranslations resolves one namespace to a flat key/text map.
// Japanese falls back to English per key when the translation is blank.
func (r *ContentRepository) GetTranslations(ctx context.Context, lang, namespace string) (map[string]string, time.Time, error) {
	rows, err := r.pool.Query(ctx, `
SELECT key,
       CASE WHEN $1 = 'ja' AND text_ja <> '' THEN text_ja ELSE text_en END,
       updated_at
  FROM translatable_strings
 WHERE namespace = $2
`, lang, namespace)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("list translations: %w", err)
	}
	defer rows.Close()

	translations := make(map[string]string)
	var latest time.Time
	for rows.Next() {
		var (
			key, text string
			updatedAt time.Time
		)
		if err := rows.Scan(&key, &text, &updatedAt); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan translation: %w", err)
		}
		translations[key] = text
		if updatedAt.After(latest) {
			latest = updatedAt
		}
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("list translations: %w", err)
	}
	return translations, latest, nil
}
