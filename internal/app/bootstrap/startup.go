// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/ripple/internal/app/system/normalize"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
			return err
		}
	}
	return nil
}

// ensureAdmin promotes the account registered under email to the admin
// role. Accounts register themselves, so an unknown email is logged and
// skipped rather than treated as fatal; startup order must not depend
// on registration order.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	email = normalize.Email(email)
	accounts := deps.RippleMongoDatabase.Collection("accounts")

	res, err := accounts.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{
			"role":       "admin",
			"updated_at": time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		logger.Warn("admin account not found; register it and restart to promote",
			zap.String("email", email))
		return nil
	}

	logger.Info("admin account ensured", zap.String("email", email))
	return nil
}
