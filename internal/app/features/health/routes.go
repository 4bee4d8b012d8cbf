package health

import "github.com/go-chi/chi/v5"

// Routes mounts the health endpoint. No auth; load balancers call this.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	return r
}
