// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountsfeature "github.com/dalemusser/ripple/internal/app/features/accounts"
	healthfeature "github.com/dalemusser/ripple/internal/app/features/health"
	postsfeature "github.com/dalemusser/ripple/internal/app/features/posts"
	socialfeature "github.com/dalemusser/ripple/internal/app/features/social"
	"github.com/dalemusser/ripple/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Ripple creates the bearer token manager, applies the token middleware
// globally, and mounts the feature routers: accounts, the follow graph
// under /users, posts, and health.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewManager(appCfg.TokenKey, appCfg.TokenTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.RippleMongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads the caller identity into context
	// when a valid bearer token is present. Handlers read it via
	// auth.CurrentUser(r).
	r.Use(tokens.LoadUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.RippleMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded avatars and post photos, served straight from local
	// storage with pre-compressed file support.
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))

	// Accounts: register, login, profile, avatar, deactivate
	accountsHandler := accountsfeature.NewHandler(db, tokens, deps.Storage, logger)
	r.Mount("/accounts", accountsfeature.Routes(accountsHandler))

	// Posts: feed, creation, engagement
	postsHandler := postsfeature.NewHandler(db, deps.Storage, logger)
	r.Mount("/posts", postsfeature.Routes(postsHandler))

	// Follow graph and per-user post listings, both under /users
	socialHandler := socialfeature.NewHandler(db, logger)
	r.Mount("/users", socialfeature.Routes(socialHandler, postsHandler.ServeByAuthor))

	return r, nil
}
