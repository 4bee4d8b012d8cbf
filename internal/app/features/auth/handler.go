// Package auth exposes the session endpoints: register, login, logout, me.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/volunteerhub/volunteerhub/internal/app/store/users"
	"github.com/volunteerhub/volunteerhub/internal/app/system/auth"
	"github.com/volunteerhub/volunteerhub/internal/app/system/respond"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	users    *userstore.Store
	sessions *auth.SessionManager
	log      *zap.Logger
}

func NewHandler(users *userstore.Store, sessions *auth.SessionManager, log *zap.Logger) *Handler {
	return &Handler{users: users, sessions: sessions, log: log}
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:       u.ID.Hex(),
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// Register creates an account. Self-service signup is limited to VOLUNTEER
// and EVENT_MANAGER; admins are provisioned out of band.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))
	if req.Role == "" {
		req.Role = models.RoleVolunteer
	}
	if req.Role == models.RoleAdmin || !models.IsValidRole(req.Role) {
		respond.Error(w, http.StatusBadRequest, "role must be VOLUNTEER or EVENT_MANAGER")
		return
	}
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Email) == "" {
		respond.Error(w, http.StatusBadRequest, "fullName and email are required")
		return
	}
	if len(req.Password) < 8 {
		respond.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error("password hashing failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not create account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.users.Create(ctx, models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			respond.Error(w, http.StatusConflict, "email already in use")
			return
		}
		h.log.Error("user create failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not create account")
		return
	}

	if err := h.signIn(w, r, &user); err != nil {
		h.log.Error("session write failed after register", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not create session")
		return
	}
	respond.JSON(w, http.StatusCreated, toUserResponse(&user))
}

// Login verifies credentials and writes the session cookie. Bad email and
// bad password return the same message, so accounts are not enumerable.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.log.Error("user lookup failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not sign in")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := h.signIn(w, r, user); err != nil {
		h.log.Error("session write failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not create session")
		return
	}
	respond.JSON(w, http.StatusOK, toUserResponse(user))
}

// Logout clears the session cookie. Always succeeds, even when not signed in.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(w, r); err != nil {
		h.log.Warn("session clear failed", zap.Error(err))
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// Me returns the signed-in user's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := primitive.ObjectIDFromHex(su.ID)
	if err != nil {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	user, err := h.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		h.log.Error("user lookup failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load profile")
		return
	}
	respond.JSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, u *models.User) error {
	return h.sessions.SignIn(w, r, auth.SessionUser{
		ID:   u.ID.Hex(),
		Name: u.FullName,
		Role: u.Role,
	})
}
