// internal/app/features/accounts/handler.go
package accounts

import (
	"net/http"

	accountstore "github.com/dalemusser/ripple/internal/app/store/accounts"
	"github.com/dalemusser/ripple/internal/app/system/auth"
	"github.com/dalemusser/ripple/internal/app/system/httpjson"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for account registration,
// login, and profile management. It holds the DB handle, stores, and
// logger provided by WAFFLE DBDeps / Startup.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Accounts *accountstore.Store
	Tokens   *auth.Manager
	Storage  storage.Store
}

func NewHandler(db *mongo.Database, tokens *auth.Manager, store storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Accounts: accountstore.New(db),
		Tokens:   tokens,
		Storage:  store,
	}
}

// currentAccountID resolves the caller identity to an ObjectID.
// Returns false (and writes a 401) when the request is anonymous or
// the token subject is malformed.
func currentAccountID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Fail(w, http.StatusUnauthorized, "authentication required")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		httpjson.Fail(w, http.StatusUnauthorized, "invalid identity")
		return primitive.NilObjectID, false
	}
	return id, true
}
