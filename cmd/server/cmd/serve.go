package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/afrikoop/server/internal/api"
	"github.com/afrikoop/server/internal/config"
	"github.com/afrikoop/server/internal/domain/content"
	"github.com/afrikoop/server/internal/email"
	"github.com/afrikoop/server/internal/storage/postgres"
	"github.com/spf13/cobra"
)

var (
	// Server flags (override config/env)
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server and begin accepting API requests.

Configuration comes from environment variables; DATABASE_URL is
required. The server shuts down gracefully on SIGINT/SIGTERM.

Examples:
  # Start with default configuration
  server serve

  # Start on a specific host and port
  server serve --host 127.0.0.1 --port 9090

  # Start with debug logging
  server serve --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Str("version", Version).Str("environment", cfg.Environment).Msg("starting afrikoop server")

	pool, err := postgres.NewPool(context.Background(), cfg.Database)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	store, err := postgres.NewStore(pool)
	if err != nil {
		return err
	}

	// A nil *email.Service must not end up as a non-nil Notifier
	// interface, so only assign when configured.
	var notifier content.Notifier
	if svc := email.NewService(cfg.Email, logger); svc != nil {
		notifier = svc
		logger.Info().Msg("contact email notifications enabled")
	} else {
		logger.Warn().Msg("email not configured; contact messages are stored only")
	}

	router := api.NewRouter(cfg, logger, api.Dependencies{
		Accounts: store.Accounts(),
		Events:   store.Events(),
		Content:  store.Content(),
		Notifier: notifier,
		DB:       pool,
	})
	defer router.Close()

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
