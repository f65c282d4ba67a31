// internal/app/features/social/handler.go
package social

import (
	"net/http"

	graphstore "github.com/dalemusser/ripple/internal/app/store/graph"
	"github.com/dalemusser/ripple/internal/app/system/auth"
	"github.com/dalemusser/ripple/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for the follow graph:
// follow/unfollow, suggestions, and connections.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Graph *graphstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Log:   logger,
		Graph: graphstore.New(db, logger),
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

// pathID parses the {id} chi URL parameter as an ObjectID.
func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid account id")
		return primitive.NilObjectID, false
	}
	return id, true
}
