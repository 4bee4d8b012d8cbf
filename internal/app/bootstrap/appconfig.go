// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, log
// level); AppConfig is everything specific to VolunteerHub. Values come from
// environment variables, config files, or flags, loaded in LoadConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // secret for signing session cookies
	SessionName   string // cookie name
	SessionDomain string // cookie domain (blank means current host)

	// Realtime push gateway
	RealtimeTicketKey string // shared signing key for realtime tickets

	// Localization
	DefaultLocale string // source locale for user-facing strings

	// Login rate limiting
	LoginRateLimit  int
	LoginRateWindow time.Duration

	// Admin bootstrap: creates or promotes this account to ADMIN on startup.
	// Both empty means no bootstrap.
	AdminEmail    string
	AdminPassword string
}
