// Package notifications exposes the per-user notification inbox.
package notifications

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	notificationstore "github.com/volunteerhub/volunteerhub/internal/app/store/notifications"
	"github.com/volunteerhub/volunteerhub/internal/app/system/authz"
	"github.com/volunteerhub/volunteerhub/internal/app/system/respond"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// listLimit caps how many notifications one fetch returns. Older read
// notifications simply age out of view.
const listLimit = 50

type Handler struct {
	notify *notificationstore.Store
	log    *zap.Logger
}

func NewHandler(db *mongo.Database, log *zap.Logger) *Handler {
	return &Handler{notify: notificationstore.New(db), log: log}
}

// List returns the caller's notifications, unread first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ns, err := h.notify.ListByUser(ctx, userID, listLimit)
	if err != nil {
		h.log.Error("notification list failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not list notifications")
		return
	}
	respond.JSON(w, http.StatusOK, ns)
}

// MarkRead marks one of the caller's notifications read.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.notify.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusNotFound, "notification not found")
			return
		}
		h.log.Error("notification update failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update notification")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// MarkAllRead marks every unread notification of the caller read.
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.notify.MarkAllRead(ctx, userID)
	if err != nil {
		h.log.Error("notification bulk update failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update notifications")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]int64{"updated": n})
}
