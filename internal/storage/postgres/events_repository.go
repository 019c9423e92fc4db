package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/afrikoop/server/internal/api/pagination"
	"github.com/afrikoop/server/internal/domain/events"
	"github.com/afrikoop/server/internal/domain/ids"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventsRepository struct {
	pool *pgxpool.Pool
}

// CreateEventParams carries an admin-created event. Events are written
// through the CLI, not the public API.
type CreateEventParams struct {
	TitleEN       string
	TitleJA       string
	DescriptionEN string
	DescriptionJA string
	StartTime     time.Time
	Location      string
	Capacity      *int
}

func (r *EventsRepository) CreateEvent(ctx context.Context, params CreateEventParams) (*events.Event, error) {
	publicID, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("generate event id: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO events (public_id, title_en, title_ja, description_en, description_ja, start_time, location, capacity)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at, updated_at
`, publicID, params.TitleEN, params.TitleJA, params.DescriptionEN, params.DescriptionJA,
		params.StartTime, params.Location, params.Capacity)

	event := events.Event{
		PublicID:      publicID,
		TitleEN:       params.TitleEN,
		TitleJA:       params.TitleJA,
		DescriptionEN: params.DescriptionEN,
		DescriptionJA: params.DescriptionJA,
		StartTime:     params.StartTime,
		Location:      params.Location,
		Capacity:      params.Capacity,
	}
	if err := row.Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return &event, nil
}

const eventColumns = `
e.id, e.public_id, e.title_en, e.title_ja, e.description_en, e.description_ja,
e.start_time, e.location, e.capacity,
(SELECT count(*) FROM event_registrations r WHERE r.event_id = e.id) AS registered,
e.created_at, e.updated_at`

func (r *EventsRepository) List(ctx context.Context, params events.ListParams) (events.ListResult, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
SELECT count(*) FROM events e WHERE ($1 OR e.start_time >= now())
`, params.IncludePast).Scan(&total)
	if err != nil {
		return events.ListResult{}, fmt.Errorf("count events: %w", err)
	}

	window := pagination.Paginate(total, params.Page, params.PageSize)
	result := events.ListResult{
		Events:     []events.Event{},
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: window.TotalPages,
		HasNext:    params.Page < window.TotalPages,
		HasPrev:    params.Page > 1,
	}
	if window.Limit == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+eventColumns+`
  FROM events e
 WHERE ($1 OR e.start_time >= now())
 ORDER BY e.start_time ASC, e.id ASC
 LIMIT $2 OFFSET $3
`, params.IncludePast, window.Limit, window.Offset)
	if err != nil {
		return events.ListResult{}, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return events.ListResult{}, fmt.Errorf("scan event: %w", err)
		}
		result.Events = append(result.Events, event)
	}
	if err := rows.Err(); err != nil {
		return events.ListResult{}, fmt.Errorf("list events: %w", err)
	}
	if err := r.attachImages(ctx, result.Events); err != nil {
		return events.ListResult{}, err
	}
	return result, nil
}

func (r *EventsRepository) GetByPublicID(ctx context.Context, publicID string) (*events.Event, error) {
	row := r.pool.QueryRow(ctx, `
SELECT`+eventColumns+`
  FROM events e
 WHERE e.public_id = $1
`, publicID)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	single := []events.Event{event}
	if err := r.attachImages(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

// AddEventImage attaches an image to the event identified by publicID.
// Like CreateEvent this is an admin write path used by the CLI only.
func (r *EventsRepository) AddEventImage(ctx context.Context, publicID string, image events.EventImage) error {
	tag, err := r.pool.Exec(ctx, `
INSERT INTO event_images (event_id, url, caption_en, caption_ja, sort_order)
SELECT id, $2, $3, $4, $5 FROM events WHERE public_id = $1
`, publicID, image.URL, image.CaptionEN, image.CaptionJA, image.SortOrder)
	if err != nil {
		return fmt.Errorf("insert event image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

// attachImages loads the images for a page of events in one query and
// distributes them in sort order.
func (r *EventsRepository) attachImages(ctx context.Context, page []events.Event) error {
	if len(page) == 0 {
		return nil
	}

	eventIDs := make([]int64, len(page))
	index := make(map[int64]*events.Event, len(page))
	for i := range page {
		eventIDs[i] = page[i].ID
		index[page[i].ID] = &page[i]
	}

	rows, err := r.pool.Query(ctx, `
SELECT event_id, url, caption_en, caption_ja, sort_order
  FROM event_images
 WHERE event_id = ANY($1)
 ORDER BY event_id, sort_order ASC, id ASC
`, eventIDs)
	if err != nil {
		return fmt.Errorf("list event images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			eventID int64
			image   events.EventImage
		)
		if err := rows.Scan(&eventID, &image.URL, &image.CaptionEN, &image.CaptionJA, &image.SortOrder); err != nil {
			return fmt.Errorf("scan event image: %w", err)
		}
		if event, ok := index[eventID]; ok {
			event.Images = append(event.Images, image)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list event images: %w", err)
	}
	return nil
}

// CreateRegistration runs the duplicate check, the capacity check, and
// the insert inside one transaction. The event row is locked FOR
// UPDATE so concurrent signups for the last slot serialize; the unique
// constraint on (user_id, event_id) backstops the duplicate check.
func (r *EventsRepository) CreateRegistration(ctx context.Context, userID, publicID string) (*events.Registration, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		eventID  int64
		capacity *int
	)
	err = tx.QueryRow(ctx, `
SELECT id, capacity FROM events WHERE public_id = $1 FOR UPDATE
`, publicID).Scan(&eventID, &capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("lock event: %w", err)
	}

	var exists bool
	err = tx.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM event_registrations WHERE user_id = $1 AND event_id = $2)
`, userID, eventID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check existing registration: %w", err)
	}
	if exists {
		return nil, events.ErrAlreadyRegistered
	}

	if capacity != nil {
		var registered int
		err = tx.QueryRow(ctx, `
SELECT count(*) FROM event_registrations WHERE event_id = $1
`, eventID).Scan(&registered)
		if err != nil {
			return nil, fmt.Errorf("count registrations: %w", err)
		}
		if registered >= *capacity {
			return nil, events.ErrEventFull
		}
	}

	registration := events.Registration{
		ID:            uuid.NewString(),
		UserID:        userID,
		EventID:       eventID,
		EventPublicID: publicID,
	}
	err = tx.QueryRow(ctx, `
INSERT INTO event_registrations (id, user_id, event_id)
VALUES ($1, $2, $3)
RETURNING created_at
`, registration.ID, userID, eventID).Scan(&registration.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, events.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &registration, nil
}

func (r *EventsRepository) ListRegistrationsForUser(ctx context.Context, userID string) ([]events.Registration, error) {
	rows, err := r.pool.Query(ctx, `
SELECT r.id, r.user_id, r.event_id, e.public_id, r.created_at
  FROM event_registrations r
  JOIN events e ON e.id = r.event_id
 WHERE r.user_id = $1
 ORDER BY r.created_at DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	registrations := []events.Registration{}
	for rows.Next() {
		var registration events.Registration
		if err := rows.Scan(
			&registration.ID,
			&registration.UserID,
			&registration.EventID,
			&registration.EventPublicID,
			&registration.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		registrations = append(registrations, registration)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return registrations, nil
}

func scanEvent(row pgx.Row) (events.Event, error) {
	var event events.Event
	err := row.Scan(
		&event.ID,
		&event.PublicID,
		&event.TitleEN,
		&event.TitleJA,
		&event.DescriptionEN,
		&event.DescriptionJA,
		&event.StartTime,
		&event.Location,
		&event.Capacity,
		&event.Registered,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	return event, err
}
