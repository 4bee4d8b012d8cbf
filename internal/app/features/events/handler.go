// Package events exposes the event lifecycle: create, edit, moderate, browse.
package events

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	eventstore "github.com/volunteerhub/volunteerhub/internal/app/store/events"
	notificationstore "github.com/volunteerhub/volunteerhub/internal/app/store/notifications"
	"github.com/volunteerhub/volunteerhub/internal/app/store/queries/eventcounts"
	userstore "github.com/volunteerhub/volunteerhub/internal/app/store/users"
	"github.com/volunteerhub/volunteerhub/internal/app/system/authz"
	"github.com/volunteerhub/volunteerhub/internal/app/system/i18n"
	"github.com/volunteerhub/volunteerhub/internal/app/system/paging"
	"github.com/volunteerhub/volunteerhub/internal/app/system/respond"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	db         *mongo.Database
	events     *eventstore.Store
	users      *userstore.Store
	notify     *notificationstore.Store
	translator *i18n.Translator
	log        *zap.Logger
}

func NewHandler(db *mongo.Database, tr *i18n.Translator, log *zap.Logger) *Handler {
	return &Handler{
		db:         db,
		events:     eventstore.New(db),
		users:      userstore.New(db),
		notify:     notificationstore.New(db),
		translator: tr,
		log:        log,
	}
}

type eventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	Capacity    *int      `json:"capacity"`
}

type eventResponse struct {
	models.Event
	Manager models.ManagerSummary `json:"manager"`
	Count   eventcounts.Counts    `json:"_count"`
}

type listResponse struct {
	Events []eventResponse `json:"events"`
	paging.Result
}

// List returns events visible to the caller, newest first, paginated.
// Filters: status (admin only, others are pinned to APPROVED), category,
// mine=true (manager's own events regardless of status).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	role, _, userID, _ := authz.UserCtx(r)
	q := r.URL.Query()

	base := eventstore.WhereForRole(role)
	var f eventstore.ListFilter
	f.Category = q.Get("category")
	if role == models.RoleAdmin {
		f.Status = q.Get("status")
	}
	if q.Get("mine") == "true" && (role == models.RoleEventManager || role == models.RoleAdmin) {
		// Owners see their own events in every status.
		base = bson.M{}
		f.ManagerID = userID
	}

	page := paging.ParsePage(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	evs, err := h.events.List(ctx, base, f, paging.Skip(page), paging.LimitPlusOne())
	if err != nil {
		h.log.Error("event list failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not list events")
		return
	}
	pageInfo := paging.TrimPage(&evs, page)

	cards, err := h.annotate(ctx, evs)
	if err != nil {
		h.log.Error("event annotation failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not list events")
		return
	}

	respond.JSON(w, http.StatusOK, listResponse{Events: cards, Result: pageInfo})
}

// Get returns one event. Non-admins only see APPROVED events unless they own
// the event.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := h.events.GetByID(ctx, id)
	if err != nil {
		h.notFoundOrError(w, err, "could not load event")
		return
	}

	role, _, userID, _ := authz.UserCtx(r)
	if ev.Status != models.EventApproved && role != models.RoleAdmin && ev.ManagerID != userID {
		respond.Error(w, http.StatusNotFound, "event not found")
		return
	}

	cards, err := h.annotate(ctx, []models.Event{*ev})
	if err != nil {
		h.log.Error("event annotation failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load event")
		return
	}
	respond.JSON(w, http.StatusOK, cards[0])
}

// Create submits a new event for approval. Managers only; the event always
// starts PENDING regardless of who creates it.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req eventRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := h.events.Create(ctx, models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		ManagerID:   userID,
		Capacity:    req.Capacity,
	})
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusCreated, ev)
}

// Update edits an event. Owner or admin.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req eventRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := h.events.GetByID(ctx, id)
	if err != nil {
		h.notFoundOrError(w, err, "could not load event")
		return
	}
	if !authz.CanManageEvent(r, ev.ManagerID) {
		respond.Error(w, http.StatusForbidden, "not your event")
		return
	}

	if err := h.events.UpdateFields(ctx, id, eventstore.Update{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Capacity:    req.Capacity,
	}); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusNotFound, "event not found")
			return
		}
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.events.GetByID(ctx, id)
	if err != nil {
		h.notFoundOrError(w, err, "could not load event")
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

// Approve moves a PENDING event to APPROVED and notifies its manager.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, models.EventApproved, models.NotifyEventApproved, "notify_event_approved")
}

// Reject moves a PENDING event to REJECTED and notifies its manager.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, models.EventRejected, models.NotifyEventRejected, "notify_event_rejected")
}

func (h *Handler) moderate(w http.ResponseWriter, r *http.Request, status, notifyType, msgKey string) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := h.events.GetByID(ctx, id)
	if err != nil {
		h.notFoundOrError(w, err, "could not load event")
		return
	}

	if err := h.events.SetStatus(ctx, id, status); err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			respond.Error(w, http.StatusNotFound, "event not found")
		case errors.Is(err, eventstore.ErrNotPending):
			respond.Error(w, http.StatusConflict, "event is not pending")
		default:
			h.log.Error("event status update failed", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "could not update event")
		}
		return
	}

	// Notification failure does not undo the moderation decision.
	msg := h.translator.T(i18n.DefaultLocale, msgKey, map[string]any{"Title": ev.Title})
	if err := h.notify.Create(ctx, models.Notification{
		UserID:  ev.ManagerID,
		Type:    notifyType,
		Message: msg,
		RefID:   &ev.ID,
	}); err != nil {
		h.log.Warn("notification write failed", zap.Error(err), zap.String("event_id", id.Hex()))
	}

	updated, err := h.events.GetByID(ctx, id)
	if err != nil {
		h.notFoundOrError(w, err, "could not load event")
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

// Delete removes an event. Owner or admin.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev, err := h.events.GetByID(ctx, id)
	if err != nil {
		h.notFoundOrError(w, err, "could not load event")
		return
	}
	if !authz.CanManageEvent(r, ev.ManagerID) {
		respond.Error(w, http.StatusForbidden, "not your event")
		return
	}

	if err := h.events.Delete(ctx, id); err != nil {
		h.notFoundOrError(w, err, "could not delete event")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// annotate attaches manager summaries and _count blocks to events.
func (h *Handler) annotate(ctx context.Context, evs []models.Event) ([]eventResponse, error) {
	ids := make([]primitive.ObjectID, len(evs))
	mgrSet := map[primitive.ObjectID]struct{}{}
	for i, ev := range evs {
		ids[i] = ev.ID
		mgrSet[ev.ManagerID] = struct{}{}
	}
	mgrIDs := make([]primitive.ObjectID, 0, len(mgrSet))
	for id := range mgrSet {
		mgrIDs = append(mgrIDs, id)
	}

	regCounts, err := eventcounts.ApprovedRegistrations(ctx, h.db, ids)
	if err != nil {
		return nil, err
	}
	postCounts, err := eventcounts.Posts(ctx, h.db, ids)
	if err != nil {
		return nil, err
	}
	managers, err := h.users.Summaries(ctx, mgrIDs)
	if err != nil {
		return nil, err
	}

	out := make([]eventResponse, len(evs))
	for i, ev := range evs {
		out[i] = eventResponse{
			Event:   ev,
			Manager: managers[ev.ManagerID],
			Count: eventcounts.Counts{
				Registrations: regCounts[ev.ID],
				Posts:         postCounts[ev.ID],
			},
		}
	}
	return out, nil
}

func (h *Handler) notFoundOrError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.Error(w, http.StatusNotFound, "event not found")
		return
	}
	h.log.Error(msg, zap.Error(err))
	respond.Error(w, http.StatusInternalServerError, msg)
}
