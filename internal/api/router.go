package api

import (
	"net/http"

	"github.com/afrikoop/server/internal/api/handlers"
	"github.com/afrikoop/server/internal/api/middleware"
	"github.com/afrikoop/server/internal/config"
	"github.com/afrikoop/server/internal/domain/accounts"
	"github.com/afrikoop/server/internal/domain/content"
	"github.com/afrikoop/server/internal/domain/events"
	"github.com/afrikoop/server/internal/metrics"
	"github.com/rs/zerolog"
)

// Dependencies carries everything the router needs that is owned by
// the caller: repositories, the optional notifier, and the database
// handle for readiness checks.
type Dependencies struct {
	Accounts accounts.Repository
	Events   events.Repository
	Content  content.Repository
	Notifier content.Notifier
	DB       handlers.Pinger
}

// Router is the assembled HTTP surface. Close stops the background
// rate-limiter cleanup.
type Router struct {
	handler http.Handler
	limiter *middleware.RateLimiter
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.handler.ServeHTTP(w, r)
}

func (rt *Router) Close() {
	rt.limiter.Stop()
}

func NewRouter(cfg config.Config, logger zerolog.Logger, deps Dependencies) *Router {
	accountsService := accounts.NewService(deps.Accounts, logger)
	eventsService := events.NewService(deps.Events, logger)
	contentService := content.NewService(deps.Content, deps.Notifier, logger)

	authHandler := handlers.NewAuthHandler(accountsService, cfg.Environment)
	eventsHandler := handlers.NewEventsHandler(eventsService, cfg.Environment)
	contentHandler := handlers.NewContentHandler(contentService, cfg.Environment)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	public := limiter.Tier(middleware.TierPublic)
	authTier := limiter.Tier(middleware.TierAuth)
	requireAuth := middleware.TokenAuth(accountsService, cfg.Environment)

	mux := http.NewServeMux()

	mux.Handle("POST /api/auth/register", authTier(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/auth/login", authTier(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/auth/logout", public(http.HandlerFunc(authHandler.Logout)))

	mux.Handle("GET /api/events", public(http.HandlerFunc(eventsHandler.List)))
	mux.Handle("GET /api/events/{id}", public(http.HandlerFunc(eventsHandler.Get)))
	mux.Handle("POST /api/events/{id}/register", public(requireAuth(http.HandlerFunc(eventsHandler.Register))))
	mux.Handle("GET /api/registrations", public(requireAuth(http.HandlerFunc(eventsHandler.MyRegistrations))))

	mux.Handle("GET /api/mission", public(http.HandlerFunc(contentHandler.Mission)))
	mux.Handle("GET /api/cleaning-service", public(http.HandlerFunc(contentHandler.CleaningService)))
	mux.Handle("GET /api/events-page", public(http.HandlerFunc(contentHandler.EventsPage)))
	mux.Handle("POST /api/contact", authTier(http.HandlerFunc(contentHandler.Contact)))

	mux.Handle("GET /api/i18n/{lang}", public(http.HandlerFunc(contentHandler.I18n)))
	mux.Handle("GET /api/i18n/{lang}/{namespace}", public(http.HandlerFunc(contentHandler.I18nNamespace)))

	// Probes and metrics skip rate limiting.
	mux.HandleFunc("GET /healthz", healthHandler.Healthz)
	mux.HandleFunc("GET /readyz", healthHandler.Readyz)
	mux.Handle("GET /metrics", metrics.Handler())

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = middleware.RequestLogging(logger)(handler)

	return &Router{handler: handler, limiter: limiter}
}
