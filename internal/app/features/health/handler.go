// Package health reports process and database liveness.
package health

import (
	"context"
	"net/http"

	"github.com/volunteerhub/volunteerhub/internal/app/system/respond"
	"github.com/volunteerhub/volunteerhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type Handler struct {
	client *mongo.Client
	log    *zap.Logger
}

func NewHandler(client *mongo.Client, log *zap.Logger) *Handler {
	return &Handler{client: client, log: log}
}

// Check pings mongo and reports overall status. 503 when the database is
// unreachable, so load balancers can rotate the instance out.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	status := map[string]string{"status": "ok", "mongo": "ok"}
	code := http.StatusOK
	if err := h.client.Ping(ctx, readpref.Primary()); err != nil {
		h.log.Warn("health: mongo ping failed", zap.Error(err))
		status["status"] = "degraded"
		status["mongo"] = "unreachable"
		code = http.StatusServiceUnavailable
	}
	respond.JSON(w, code, status)
}
