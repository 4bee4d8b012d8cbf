package posts

import (
	"github.com/go-chi/chi/v5"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
)

// Routes mounts the discussion endpoints. Everything requires sign-in.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/events/{eventID}", h.List)
	r.Post("/events/{eventID}", h.Create)
	r.Delete("/{postID}", h.Delete)

	r.Get("/{postID}/comments", h.Comments)
	r.Post("/{postID}/comments", h.Comment)

	r.Post("/{postID}/like", h.Like)
	r.Delete("/{postID}/like", h.Unlike)

	return r
}
