package postgres

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/afrikoop/server/internal/domain/accounts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Integration tests run against the database named by
// TEST_DATABASE_URL and are skipped when it is unset:
//
//	TEST_DATABASE_URL=postgres://localhost:5432/afrikoop_test?sslmode=disable go test ./internal/storage/postgres/

var (
	sharedOnce    sync.Once
	sharedInitErr error
	sharedPool    *pgxpool.Pool
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	sharedOnce.Do(func() {
		if err := MigrateUp(dbURL, "migrations"); err != nil {
			sharedInitErr = err
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		sharedPool, sharedInitErr = pgxpool.New(ctx, dbURL)
	})
	require.NoError(t, sharedInitErr)

	resetDatabase(t, sharedPool)

	store, err := NewStore(sharedPool)
	require.NoError(t, err)
	return store
}

func resetDatabase(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()
	_, err := pool.Exec(ctx, `
TRUNCATE event_registrations, event_images, auth_tokens, users, events,
         mission_pages, cleaning_features, cleaning_gallery_images, cleaning_pages,
         events_page_settings, contact_messages, translatable_strings, site_text_settings
RESTART IDENTITY CASCADE
`)
	require.NoError(t, err)
}

func seedUser(t *testing.T, store *Store, username string) *accounts.User {
	t.Helper()
	user, err := store.Accounts().CreateUser(context.Background(), accounts.CreateUserParams{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$12$notarealhashnotarealhashnotarealhash",
	})
	require.NoError(t, err)
	return user
}

func seedEvent(t *testing.T, store *Store, title string, start time.Time, capacity *int) string {
	t.Helper()
	event, err := store.Events().CreateEvent(context.Background(), CreateEventParams{
		TitleEN:   title,
		StartTime: start,
		Capacity:  capacity,
	})
	require.NoError(t, err)
	return event.PublicID
}
