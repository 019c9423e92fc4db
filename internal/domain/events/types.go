package events

import "time"

// Languages served by the site. Anything else returns both translations.
const (
	LangEnglish  = "en"
	LangJapanese = "ja"
)

// Event is a community event or volunteer opportunity. Nil Capacity
// means unlimited signups.
type Event struct {
	ID            int64
	PublicID      string
	TitleEN       string
	TitleJA       string
	DescriptionEN string
	DescriptionJA string
	StartTime     time.Time
	Location      string
	Capacity      *int
	Registered    int
	Images        []EventImage
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AvailableSlots returns the remaining capacity, or nil when unlimited.
// Never negative, even if capacity was lowered after signups.
func (e Event) AvailableSlots() *int {
	if e.Capacity == nil {
		return nil
	}
	remaining := *e.Capacity - e.Registered
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// IsFull reports whether the capacity has been reached.
func (e Event) IsFull() bool {
	return e.Capacity != nil && e.Registered >= *e.Capacity
}

// Title returns the title for the requested language, falling back to
// English when the Japanese translation is blank.
func (e Event) Title(lang string) string {
	if lang == LangJapanese && e.TitleJA != "" {
		return e.TitleJA
	}
	return e.TitleEN
}

// Description returns the description for the requested language with
// the same fallback as Title.
func (e Event) Description(lang string) string {
	if lang == LangJapanese && e.DescriptionJA != "" {
		return e.DescriptionJA
	}
	return e.DescriptionEN
}

// EventImage is an optional illustration attached to an event. Both
// captions are always served; the frontend picks by language.
type EventImage struct {
	URL       string
	CaptionEN string
	CaptionJA string
	SortOrder int
}

// Registration ties one user to one event. At most one may exist per
// (user, event) pair.
type Registration struct {
	ID            string
	UserID        string
	EventID       int64
	EventPublicID string
	CreatedAt     time.Time
}

type ListParams struct {
	Page        int
	PageSize    int
	IncludePast bool
}

type ListResult struct {
	Events     []Event
	Page       int
	PageSize   int
	Total      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}
