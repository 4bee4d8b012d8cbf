package dashboard

import (
	"context"
	"net/http"

	"github.com/volunteerhub/volunteerhub/internal/app/system/authz"
	"github.com/volunteerhub/volunteerhub/internal/app/system/i18n"
	"github.com/volunteerhub/volunteerhub/internal/app/system/respond"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type Handler struct {
	assembler *Assembler
	log       *zap.Logger
}

func NewHandler(assembler *Assembler, log *zap.Logger) *Handler {
	return &Handler{assembler: assembler, log: log}
}

// Get serves GET /api/dashboard for the signed-in user.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	locale := i18n.MatchLocale(r.Header.Get("Accept-Language"))
	resp, err := h.assembler.Assemble(ctx, userID, role, locale)
	if err != nil {
		h.log.Error("dashboard assembly failed",
			zap.String("role", role),
			zap.String("user_id", userID.Hex()),
			zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load dashboard")
		return
	}

	respond.JSON(w, http.StatusOK, resp)
}
