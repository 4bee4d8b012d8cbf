// Package posts exposes the per-event discussion feed: posts, comments, likes.
package posts

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	commentstore "github.com/volunteerhub/volunteerhub/internal/app/store/comments"
	eventstore "github.com/volunteerhub/volunteerhub/internal/app/store/events"
	likestore "github.com/volunteerhub/volunteerhub/internal/app/store/likes"
	notificationstore "github.com/volunteerhub/volunteerhub/internal/app/store/notifications"
	poststore "github.com/volunteerhub/volunteerhub/internal/app/store/posts"
	registrationstore "github.com/volunteerhub/volunteerhub/internal/app/store/registrations"
	userstore "github.com/volunteerhub/volunteerhub/internal/app/store/users"
	"github.com/volunteerhub/volunteerhub/internal/app/system/authz"
	"github.com/volunteerhub/volunteerhub/internal/app/system/i18n"
	"github.com/volunteerhub/volunteerhub/internal/app/system/paging"
	"github.com/volunteerhub/volunteerhub/internal/app/system/respond"
	"github.com/volunteerhub/volunteerhub/internal/app/system/sanitize"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	posts      *poststore.Store
	comments   *commentstore.Store
	likes      *likestore.Store
	events     *eventstore.Store
	regs       *registrationstore.Store
	users      *userstore.Store
	notify     *notificationstore.Store
	translator *i18n.Translator
	log        *zap.Logger
}

func NewHandler(db *mongo.Database, tr *i18n.Translator, log *zap.Logger) *Handler {
	return &Handler{
		posts:      poststore.New(db),
		comments:   commentstore.New(db),
		likes:      likestore.New(db),
		events:     eventstore.New(db),
		regs:       registrationstore.New(db),
		users:      userstore.New(db),
		notify:     notificationstore.New(db),
		translator: tr,
		log:        log,
	}
}

type contentRequest struct {
	Content string `json:"content"`
}

type postResponse struct {
	models.Post
	Author models.ManagerSummary `json:"author"`
	Count  struct {
		Comments int64 `json:"comments"`
		Likes    int64 `json:"likes"`
	} `json:"_count"`
}

type feedResponse struct {
	Posts []postResponse `json:"posts"`
	paging.Result
}

// Create adds a post under an APPROVED event. Content passes the UGC
// sanitizer before it is stored. Approved registrants of the event get a
// new-post notification; the author does not.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req contentRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	content := sanitize.Content(req.Content)
	if content == "" {
		respond.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ev := h.approvedEvent(ctx, w, eventID)
	if ev == nil {
		return
	}

	post, err := h.posts.Create(ctx, eventID, userID, content)
	if err != nil {
		h.log.Error("post create failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not create post")
		return
	}

	h.notifyRegistrants(ctx, ev, userID, post.ID)

	respond.JSON(w, http.StatusCreated, post)
}

// List returns an event's posts newest first with author names and
// comment/like counts, paginated.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "eventID"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}
	page := paging.ParsePage(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if h.approvedEvent(ctx, w, eventID) == nil {
		return
	}

	posts, err := h.posts.ListByEvent(ctx, eventID, paging.Skip(page), paging.LimitPlusOne())
	if err != nil {
		h.log.Error("post list failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not list posts")
		return
	}
	pageInfo := paging.TrimPage(&posts, page)

	postIDs := make([]primitive.ObjectID, len(posts))
	authorSet := map[primitive.ObjectID]struct{}{}
	for i, p := range posts {
		postIDs[i] = p.ID
		authorSet[p.AuthorID] = struct{}{}
	}
	authorIDs := make([]primitive.ObjectID, 0, len(authorSet))
	for id := range authorSet {
		authorIDs = append(authorIDs, id)
	}

	commentCounts, err := h.comments.CountByPosts(ctx, postIDs)
	if err != nil {
		h.log.Error("comment counts failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not list posts")
		return
	}
	likeCounts, err := h.likes.CountByPosts(ctx, postIDs)
	if err != nil {
		h.log.Error("like counts failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not list posts")
		return
	}
	authors, err := h.users.Summaries(ctx, authorIDs)
	if err != nil {
		h.log.Error("author lookup failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not list posts")
		return
	}

	out := make([]postResponse, len(posts))
	for i, p := range posts {
		out[i].Post = p
		out[i].Author = authors[p.AuthorID]
		out[i].Count.Comments = commentCounts[p.ID]
		out[i].Count.Likes = likeCounts[p.ID]
	}
	respond.JSON(w, http.StatusOK, feedResponse{Posts: out, Result: pageInfo})
}

// Delete removes a post. Author, event owner, or admin.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postID"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid post id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, err := h.posts.GetByID(ctx, postID)
	if err != nil {
		h.postNotFoundOrError(w, err)
		return
	}

	_, _, userID, _ := authz.UserCtx(r)
	allowed := post.AuthorID == userID
	if !allowed {
		ev, err := h.events.GetByID(ctx, post.EventID)
		if err == nil {
			allowed = authz.CanManageEvent(r, ev.ManagerID)
		}
	}
	if !allowed {
		respond.Error(w, http.StatusForbidden, "not your post")
		return
	}

	if err := h.posts.Delete(ctx, postID); err != nil {
		h.postNotFoundOrError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Comment adds a comment to a post.
func (h *Handler) Comment(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postID"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req contentRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	content := sanitize.Content(req.Content)
	if content == "" {
		respond.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.posts.GetByID(ctx, postID); err != nil {
		h.postNotFoundOrError(w, err)
		return
	}

	comment, err := h.comments.Create(ctx, postID, userID, content)
	if err != nil {
		h.log.Error("comment create failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not create comment")
		return
	}
	respond.JSON(w, http.StatusCreated, comment)
}

// Comments lists a post's comments, oldest first.
func (h *Handler) Comments(w http.ResponseWriter, r *http.Request) {
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postID"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid post id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	comments, err := h.comments.ListByPost(ctx, postID)
	if err != nil {
		h.log.Error("comment list failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not list comments")
		return
	}
	respond.JSON(w, http.StatusOK, comments)
}

// Like records a like on a post. Liking twice is a 409.
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postID"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid post id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.posts.GetByID(ctx, postID); err != nil {
		h.postNotFoundOrError(w, err)
		return
	}

	like, err := h.likes.Create(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, likestore.ErrAlreadyLiked) {
			respond.Error(w, http.StatusConflict, "post already liked")
			return
		}
		h.log.Error("like create failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not like post")
		return
	}
	respond.JSON(w, http.StatusCreated, like)
}

// Unlike deletes the caller's like on a post.
func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	postID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postID"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid post id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.likes.Delete(ctx, postID, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusNotFound, "like not found")
			return
		}
		h.log.Error("unlike failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not unlike post")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "unliked"})
}

// approvedEvent loads an event and writes the error response itself when the
// event is missing or not APPROVED. Returns nil when a response was written.
func (h *Handler) approvedEvent(ctx context.Context, w http.ResponseWriter, eventID primitive.ObjectID) *models.Event {
	ev, err := h.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusNotFound, "event not found")
			return nil
		}
		h.log.Error("event load failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load event")
		return nil
	}
	if ev.Status != models.EventApproved {
		respond.Error(w, http.StatusNotFound, "event not found")
		return nil
	}
	return ev
}

// notifyRegistrants fans a new-post notification out to the event's approved
// registrants, minus the author. Failures are logged, not surfaced.
func (h *Handler) notifyRegistrants(ctx context.Context, ev *models.Event, authorID, postID primitive.ObjectID) {
	regs, err := h.regs.ListByEvent(ctx, ev.ID)
	if err != nil {
		h.log.Warn("registrant lookup failed", zap.Error(err))
		return
	}
	var userIDs []primitive.ObjectID
	for _, reg := range regs {
		if reg.Status == models.RegistrationApproved && reg.UserID != authorID {
			userIDs = append(userIDs, reg.UserID)
		}
	}

	title := strings.TrimSpace(ev.Title)
	msg := h.translator.T(i18n.DefaultLocale, "notify_new_post", map[string]any{"Title": title})
	if err := h.notify.CreateMany(ctx, userIDs, models.Notification{
		Type:    models.NotifyNewPost,
		Message: msg,
		RefID:   &postID,
	}); err != nil {
		h.log.Warn("notification fan-out failed", zap.Error(err))
	}
}

func (h *Handler) postNotFoundOrError(w http.ResponseWriter, err error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		respond.Error(w, http.StatusNotFound, "post not found")
		return
	}
	h.log.Error("post load failed", zap.Error(err))
	respond.Error(w, http.StatusInternalServerError, "could not load post")
}
