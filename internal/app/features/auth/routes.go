package auth

import (
	"github.com/go-chi/chi/v5"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/app/system/ratelimit"
)

// Routes mounts the session endpoints. Login and register are rate limited
// per client IP; credential stuffing is the cheap attack here.
func Routes(h *Handler, sm *auth.SessionManager, limiter *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.Post("/logout", h.Logout)
	r.With(sm.RequireSignedIn).Get("/me", h.Me)
	return r
}
