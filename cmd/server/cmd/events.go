package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/afrikoop/server/internal/config"
	"github.com/afrikoop/server/internal/domain/events"
	"github.com/afrikoop/server/internal/storage/postgres"
	"github.com/spf13/cobra"
)

var (
	eventTitleEN       string
	eventTitleJA       string
	eventDescriptionEN string
	eventDescriptionJA string
	eventStart         string
	eventLocation      string
	eventCapacity      int

	eventsListPast bool

	imageURL       string
	imageCaptionEN string
	imageCaptionJA string
	imageSortOrder int
)

// eventsCmd manages the catalog directly against the database. Events
// have no write API; admins create them here.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage the event catalog",
	Long: `Create and list events directly in the database.

Examples:
  # Create a capacity-limited event
  server events create --title "Beach Cleanup" --title-ja "ビーチクリーンアップ" \
      --start 2026-09-12T09:00:00Z --location "Zushi Beach" --capacity 20

  # List upcoming events
  server events list

  # List everything, past included
  server events list --past

  # Attach an image to an event
  server events add-image 01HQZX3Y4K6F7G8H9J0K1M2N3P \
      --url https://cdn.afrikoop.org/events/beach.jpg --caption "Last year's cleanup"`,
}

var eventsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an event",
	RunE: func(cmd *cobra.Command, args []string) error {
		if eventTitleEN == "" {
			return fmt.Errorf("--title is required")
		}
		start, err := time.Parse(time.RFC3339, eventStart)
		if err != nil {
			return fmt.Errorf("--start must be RFC 3339 (e.g. 2026-09-12T09:00:00Z): %w", err)
		}

		var capacity *int
		if eventCapacity > 0 {
			capacity = &eventCapacity
		}

		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		event, err := store.Events().CreateEvent(cmd.Context(), postgres.CreateEventParams{
			TitleEN:       eventTitleEN,
			TitleJA:       eventTitleJA,
			DescriptionEN: eventDescriptionEN,
			DescriptionJA: eventDescriptionJA,
			StartTime:     start,
			Location:      eventLocation,
			Capacity:      capacity,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created event %s (%s)\n", event.PublicID, event.TitleEN)
		return nil
	},
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		result, err := store.Events().List(cmd.Context(), events.ListParams{
			Page:        1,
			PageSize:    events.MaxPageSize,
			IncludePast: eventsListPast,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d event(s)\n", result.Total)
		for _, event := range result.Events {
			capacity := "unlimited"
			if event.Capacity != nil {
				capacity = fmt.Sprintf("%d/%d", event.Registered, *event.Capacity)
			}
			fmt.Fprintf(out, "%s  %s  %-30s  %s\n",
				event.PublicID, event.StartTime.UTC().Format(time.RFC3339), event.TitleEN, capacity)
		}
		return nil
	},
}

var eventsAddImageCmd = &cobra.Command{
	Use:   "add-image <event-id>",
	Short: "Attach an image to an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if imageURL == "" {
			return fmt.Errorf("--url is required")
		}

		store, cleanup, err := openStore()
		if err != nil {
			return err
		}
		defer cleanup()

		err = store.Events().AddEventImage(cmd.Context(), args[0], events.EventImage{
			URL:       imageURL,
			CaptionEN: imageCaptionEN,
			CaptionJA: imageCaptionJA,
			SortOrder: imageSortOrder,
		})
		if err != nil {
			if errors.Is(err, events.ErrNotFound) {
				return fmt.Errorf("no event with id %s", args[0])
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "attached image to event %s\n", args[0])
		return nil
	},
}

func openStore() (*postgres.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config error: %w", err)
	}

	pool, err := postgres.NewPool(context.Background(), cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	store, err := postgres.NewStore(pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return store, pool.Close, nil
}

func init() {
	eventsCreateCmd.Flags().StringVar(&eventTitleEN, "title", "", "event title (English)")
	eventsCreateCmd.Flags().StringVar(&eventTitleJA, "title-ja", "", "event title (Japanese)")
	eventsCreateCmd.Flags().StringVar(&eventDescriptionEN, "description", "", "event description (English)")
	eventsCreateCmd.Flags().StringVar(&eventDescriptionJA, "description-ja", "", "event description (Japanese)")
	eventsCreateCmd.Flags().StringVar(&eventStart, "start", "", "start time (RFC 3339)")
	eventsCreateCmd.Flags().StringVar(&eventLocation, "location", "", "event location")
	eventsCreateCmd.Flags().IntVar(&eventCapacity, "capacity", 0, "capacity (0 means unlimited)")

	eventsListCmd.Flags().BoolVar(&eventsListPast, "past", false, "include past events")

	eventsAddImageCmd.Flags().StringVar(&imageURL, "url", "", "image URL")
	eventsAddImageCmd.Flags().StringVar(&imageCaptionEN, "caption", "", "image caption (English)")
	eventsAddImageCmd.Flags().StringVar(&imageCaptionJA, "caption-ja", "", "image caption (Japanese)")
	eventsAddImageCmd.Flags().IntVar(&imageSortOrder, "sort", 0, "sort order within the event")

	eventsCmd.AddCommand(eventsCreateCmd)
	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsAddImageCmd)
	rootCmd.AddCommand(eventsCmd)
}
