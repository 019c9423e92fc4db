package content

import "time"

// MissionPage is the coop's mission statement. Stored bilingually, the
// newest row wins when several revisions exist.
type MissionPage struct {
	TitleEN   string
	TitleJA   string
	BodyEN    string
	BodyJA    string
	HeroImage string
	UpdatedAt time.Time
}

// CleaningFeature is one bullet on the cleaning-service page. Color
// picks the brand palette dot rendered before the text.
type CleaningFeature struct {
	TextEN string
	TextJA string
	Color  string
}

type CleaningGalleryImage struct {
	URL       string
	CaptionEN string
	CaptionJA string
}

type CleaningPage struct {
	TitleEN       string
	TitleJA       string
	DescriptionEN string
	DescriptionJA string
	CTAEN         string
	CTAJA         string
	Image         string
	Features      []CleaningFeature
	Gallery       []CleaningGalleryImage
	UpdatedAt     time.Time
}

// EventsPageSettings is the hero section of the events page.
type EventsPageSettings struct {
	TitleEN    string
	TitleJA    string
	SubtitleEN string
	SubtitleJA string
	HeroImage  string
	UpdatedAt  time.Time
}

// SiteText is the admin-edited singleton of frontend UI labels. When
// no row exists the frontend falls back to its bundled defaults, so
// there is no server-side default for it.
type SiteText struct {
	HomeEN          string
	HomeJA          string
	EventsEN        string
	EventsJA        string
	CleaningEN      string
	CleaningJA      string
	CleaningShortEN string
	CleaningShortJA string
	LoginEN         string
	LoginJA         string
	RegisterEN      string
	RegisterJA      string
	LogoutEN        string
	LogoutJA        string
	BrowseEventsEN  string
	BrowseEventsJA  string
	LearnMoreEN     string
	LearnMoreJA     string
	InstagramURL    string
	UpdatedAt       time.Time
}

// Labels flattens the settings into translation keys for the i18n
// payload. Blank Japanese labels fall back to English.
func (s SiteText) Labels(lang string) map[string]string {
	pick := func(en, ja string) string {
		if lang == "ja" && ja != "" {
			return ja
		}
		return en
	}
	return map[string]string{
		"home":           pick(s.HomeEN, s.HomeJA),
		"events":         pick(s.EventsEN, s.EventsJA),
		"cleaning":       pick(s.CleaningEN, s.CleaningJA),
		"cleaning_short": pick(s.CleaningShortEN, s.CleaningShortJA),
		"login":          pick(s.LoginEN, s.LoginJA),
		"register":       pick(s.RegisterEN, s.RegisterJA),
		"logout":         pick(s.LogoutEN, s.LogoutJA),
		"browse_events":  pick(s.BrowseEventsEN, s.BrowseEventsJA),
		"learn_more":     pick(s.LearnMoreEN, s.LearnMoreJA),
		"instagram_url":  s.InstagramURL,
	}
}

type ContactMessage struct {
	ID      string
	Name    string
	Email   string
	Message string
	SentAt  time.Time
}
