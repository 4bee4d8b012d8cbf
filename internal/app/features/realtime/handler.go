// Package realtime issues connection tickets for the external push gateway.
// The gateway holds the socket connections; this app only vouches for users.
package realtime

import (
	"net/http"

	"github.com/volunteerhub/volunteerhub/internal/app/system/authz"
	"github.com/volunteerhub/volunteerhub/internal/app/system/respond"
	"github.com/volunteerhub/volunteerhub/internal/app/system/wsticket"
	"go.uber.org/zap"
)

type Handler struct {
	issuer *wsticket.Issuer
	log    *zap.Logger
}

func NewHandler(issuer *wsticket.Issuer, log *zap.Logger) *Handler {
	return &Handler{issuer: issuer, log: log}
}

type ticketResponse struct {
	Ticket    string `json:"ticket"`
	ExpiresIn int    `json:"expiresIn"` // seconds
}

// Ticket mints a short-lived signed ticket the client presents to the push
// gateway when opening its socket.
func (h *Handler) Ticket(w http.ResponseWriter, r *http.Request) {
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ticket, err := h.issuer.Mint(userID.Hex(), role)
	if err != nil {
		h.log.Error("ticket mint failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not mint ticket")
		return
	}
	respond.JSON(w, http.StatusOK, ticketResponse{
		Ticket:    ticket,
		ExpiresIn: int(wsticket.TTL.Seconds()),
	})
}
