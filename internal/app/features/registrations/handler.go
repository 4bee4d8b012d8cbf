// Package registrations handles volunteer signup for events and the
// manager-side review of those signups.
package registrations

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	eventstore "github.com/volunteerhub/volunteerhub/internal/app/store/events"
	notificationstore "github.com/volunteerhub/volunteerhub/internal/app/store/notifications"
	registrationstore "github.com/volunteerhub/volunteerhub/internal/app/store/registrations"
	"github.com/volunteerhub/volunteerhub/internal/app/system/authz"
	"github.com/volunteerhub/volunteerhub/internal/app/system/i18n"
	"github.com/volunteerhub/volunteerhub/internal/app/system/respond"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	regs       *registrationstore.Store
	events     *eventstore.Store
	notify     *notificationstore.Store
	translator *i18n.Translator
	log        *zap.Logger
}

func NewHandler(db *mongo.Database, tr *i18n.Translator, log *zap.Logger) *Handler {
	return &Handler{
		regs:       registrationstore.New(db),
		events:     eventstore.New(db),
		notify:     notificationstore.New(db),
		translator: tr,
		log:        log,
	}
}

// Register signs the calling volunteer up for an APPROVED event. The
// registration starts PENDING; capacity is checked against APPROVED
// registrations only.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "eventID"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := h.events.GetByID(ctx, eventID)
	if err != nil {
		h.notFoundOrError(w, err, "could not load event")
		return
	}
	if ev.Status != models.EventApproved {
		respond.Error(w, http.StatusNotFound, "event not found")
		return
	}

	if ev.Capacity != nil {
		approved, err := h.regs.CountApprovedForEvent(ctx, eventID)
		if err != nil {
			h.log.Error("capacity check failed", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "could not register")
			return
		}
		if approved >= int64(*ev.Capacity) {
			respond.Error(w, http.StatusConflict, "event is full")
			return
		}
	}

	reg, err := h.regs.Create(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, registrationstore.ErrAlreadyRegistered) {
			respond.Error(w, http.StatusConflict, "already registered for this event")
			return
		}
		h.log.Error("registration create failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not register")
		return
	}
	respond.JSON(w, http.StatusCreated, reg)
}

// Cancel withdraws the caller's registration by deleting the row.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "eventID"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.regs.Cancel(ctx, userID, eventID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusNotFound, "registration not found")
			return
		}
		h.log.Error("registration cancel failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not cancel registration")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// ListMine returns the caller's registrations, newest first.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	regs, err := h.regs.ListByUser(ctx, userID)
	if err != nil {
		h.log.Error("registration list failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not list registrations")
		return
	}
	respond.JSON(w, http.StatusOK, regs)
}

// ListForEvent returns all registrations for an event. Event owner or admin.
func (h *Handler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "eventID"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := h.events.GetByID(ctx, eventID)
	if err != nil {
		h.notFoundOrError(w, err, "could not load event")
		return
	}
	if !authz.CanManageEvent(r, ev.ManagerID) {
		respond.Error(w, http.StatusForbidden, "not your event")
		return
	}

	regs, err := h.regs.ListByEvent(ctx, eventID)
	if err != nil {
		h.log.Error("registration list failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not list registrations")
		return
	}
	respond.JSON(w, http.StatusOK, regs)
}

// Approve moves a registration to APPROVED and notifies the volunteer.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, models.RegistrationApproved, models.NotifyRegistrationApproved, "notify_registration_approved")
}

// Reject moves a registration to REJECTED and notifies the volunteer.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, models.RegistrationRejected, models.NotifyRegistrationRejected, "notify_registration_rejected")
}

// Complete marks a registration COMPLETED, crediting the volunteer's hours.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, models.RegistrationCompleted, "", "")
}

func (h *Handler) review(w http.ResponseWriter, r *http.Request, status, notifyType, msgKey string) {
	regID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid registration id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reg, err := h.regs.GetByID(ctx, regID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusNotFound, "registration not found")
			return
		}
		h.log.Error("registration load failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load registration")
		return
	}

	ev, err := h.events.GetByID(ctx, reg.EventID)
	if err != nil {
		h.notFoundOrError(w, err, "could not load event")
		return
	}
	if !authz.CanManageEvent(r, ev.ManagerID) {
		respond.Error(w, http.StatusForbidden, "not your event")
		return
	}

	if err := h.regs.SetStatus(ctx, regID, status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusNotFound, "registration not found")
			return
		}
		h.log.Error("registration status update failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update registration")
		return
	}

	if notifyType != "" {
		msg := h.translator.T(i18n.DefaultLocale, msgKey, map[string]any{"Title": ev.Title})
		if err := h.notify.Create(ctx, models.Notification{
			UserID:  reg.UserID,
			Type:    notifyType,
			Message: msg,
			RefID:   &ev.ID,
		}); err != nil {
			h.log.Warn("notification write failed", zap.Error(err), zap.String("registration_id", regID.Hex()))
		}
	}

	updated, err := h.regs.GetByID(ctx, regID)
	if err != nil {
		h.log.Error("registration reload failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load registration")
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *Handler) notFoundOrError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.Error(w, http.StatusNotFound, "event not found")
		return
	}
	h.log.Error(msg, zap.Error(err))
	respond.Error(w, http.StatusInternalServerError, msg)
}
