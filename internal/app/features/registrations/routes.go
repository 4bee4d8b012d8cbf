package registrations

import (
	"github.com/go-chi/chi/v5"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
)

// Routes mounts the registration endpoints.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/mine", h.ListMine)

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireRole(models.RoleVolunteer))
		r.Post("/events/{eventID}", h.Register)
		r.Delete("/events/{eventID}", h.Cancel)
	})

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireRole(models.RoleEventManager, models.RoleAdmin))
		r.Get("/events/{eventID}", h.ListForEvent)
		r.Post("/{id}/approve", h.Approve)
		r.Post("/{id}/reject", h.Reject)
		r.Post("/{id}/complete", h.Complete)
	})

	return r
}
