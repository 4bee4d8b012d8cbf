// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	commentstore "github.com/volunteerhub/volunteerhub/internal/app/store/comments"
	eventstore "github.com/volunteerhub/volunteerhub/internal/app/store/events"
	likestore "github.com/volunteerhub/volunteerhub/internal/app/store/likes"
	notificationstore "github.com/volunteerhub/volunteerhub/internal/app/store/notifications"
	poststore "github.com/volunteerhub/volunteerhub/internal/app/store/posts"
	registrationstore "github.com/volunteerhub/volunteerhub/internal/app/store/registrations"
	userstore "github.com/volunteerhub/volunteerhub/internal/app/store/users"
	"go.uber.org/zap"
)

// EnsureSchema creates every store's indexes. Safe to run on every startup;
// index creation is idempotent.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	type indexed interface {
		EnsureIndexes(ctx context.Context) error
	}
	stores := map[string]indexed{
		"users":         userstore.New(db),
		"events":        eventstore.New(db),
		"registrations": registrationstore.New(db),
		"posts":         poststore.New(db),
		"comments":      commentstore.New(db),
		"likes":         likestore.New(db),
		"notifications": notificationstore.New(db),
	}
	for name, s := range stores {
		if err := s.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes for %s: %w", name, err)
		}
	}

	logger.Info("database indexes ensured", zap.Int("stores", len(stores)))
	return nil
}
