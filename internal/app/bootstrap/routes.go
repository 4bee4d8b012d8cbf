// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	authfeature "github.com/volunteerhub/volunteerhub/internal/app/features/auth"
	dashboardfeature "github.com/volunteerhub/volunteerhub/internal/app/features/dashboard"
	eventsfeature "github.com/volunteerhub/volunteerhub/internal/app/features/events"
	healthfeature "github.com/volunteerhub/volunteerhub/internal/app/features/health"
	notificationsfeature "github.com/volunteerhub/volunteerhub/internal/app/features/notifications"
	postsfeature "github.com/volunteerhub/volunteerhub/internal/app/features/posts"
	realtimefeature "github.com/volunteerhub/volunteerhub/internal/app/features/realtime"
	registrationsfeature "github.com/volunteerhub/volunteerhub/internal/app/features/registrations"
	userstore "github.com/volunteerhub/volunteerhub/internal/app/store/users"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/app/system/i18n"
	"github.com/volunteerhub/volunteerhub/internal/app/system/ratelimit"
	"github.com/volunteerhub/volunteerhub/internal/app/system/wsticket"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. VolunteerHub is a JSON API: the session
// middleware runs globally, then each feature mounts its own subrouter.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	translator := i18n.NewTranslator(appCfg.DefaultLocale, logger)
	loginLimiter := ratelimit.New(appCfg.LoginRateLimit, appCfg.LoginRateWindow)
	ticketIssuer := wsticket.NewIssuer([]byte(appCfg.RealtimeTicketKey))

	db := deps.MongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(r chi.Router) {
		authHandler := authfeature.NewHandler(userstore.New(db), sessionMgr, logger)
		r.Mount("/auth", authfeature.Routes(authHandler, sessionMgr, loginLimiter))

		dashboardAssembler := dashboardfeature.NewAssembler(
			dashboardfeature.NewMongoSource(db), translator, logger)
		dashboardHandler := dashboardfeature.NewHandler(dashboardAssembler, logger)
		r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

		eventsHandler := eventsfeature.NewHandler(db, translator, logger)
		r.Mount("/events", eventsfeature.Routes(eventsHandler, sessionMgr))

		registrationsHandler := registrationsfeature.NewHandler(db, translator, logger)
		r.Mount("/registrations", registrationsfeature.Routes(registrationsHandler, sessionMgr))

		postsHandler := postsfeature.NewHandler(db, translator, logger)
		r.Mount("/posts", postsfeature.Routes(postsHandler, sessionMgr))

		notificationsHandler := notificationsfeature.NewHandler(db, logger)
		r.Mount("/notifications", notificationsfeature.Routes(notificationsHandler, sessionMgr))
	})

	// Ticket minting for the external push gateway.
	realtimeHandler := realtimefeature.NewHandler(ticketIssuer, logger)
	r.Mount("/realtime", realtimefeature.Routes(realtimeHandler, sessionMgr))

	return r, nil
}
