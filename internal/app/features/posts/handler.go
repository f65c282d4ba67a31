// internal/app/features/posts/handler.go
package posts

import (
	"net/http"

	accountstore "github.com/dalemusser/ripple/internal/app/store/accounts"
	graphstore "github.com/dalemusser/ripple/internal/app/store/graph"
	poststore "github.com/dalemusser/ripple/internal/app/store/posts"
	"github.com/dalemusser/ripple/internal/app/system/auth"
	"github.com/dalemusser/ripple/internal/app/system/httpjson"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for posts: creation, the feed,
// and engagement (likes and comments).
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Posts    *poststore.Store
	Graph    *graphstore.Store
	Accounts *accountstore.Store
	Storage  storage.Store
}

func NewHandler(db *mongo.Database, store storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Posts:    poststore.New(db),
		Graph:    graphstore.New(db, logger),
		Accounts: accountstore.New(db),
		Storage:  store,
	}
}

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

func pathObjectID(w http.ResponseWriter, r *http.Request, name, label string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid "+label)
		return primitive.NilObjectID, false
	}
	return id, true
}
