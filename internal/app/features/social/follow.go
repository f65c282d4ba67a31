package social

import (
	"context"
	"errors"
	"net/http"

	graphstore "github.com/dalemusser/ripple/internal/app/store/graph"
	"github.com/dalemusser/ripple/internal/app/system/httpjson"
	"github.com/dalemusser/ripple/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleFollow handles POST /users/{id}/follow.
func (h *Handler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	h.handleEdge(w, r, true)
}

// HandleUnfollow handles PUT /users/{id}/unfollow.
func (h *Handler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	h.handleEdge(w, r, false)
}

func (h *Handler) handleEdge(w http.ResponseWriter, r *http.Request, follow bool) {
	actor, ok := currentAccountID(w, r)
	if !ok {
		return
	}
	target, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var err error
	if follow {
		err = h.Graph.Follow(ctx, actor, target)
	} else {
		err = h.Graph.Unfollow(ctx, actor, target)
	}
	switch {
	case err == nil:
	case errors.Is(err, graphstore.ErrSelfFollow):
		httpjson.Fail(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, graphstore.ErrNotFound):
		httpjson.Fail(w, http.StatusNotFound, "account not found")
		return
	default:
		httpjson.Internal(w, h.Log, "follow: edge update failed", err)
		return
	}

	h.Log.Info("follow edge updated",
		zap.String("actor", actor.Hex()),
		zap.String("target", target.Hex()),
		zap.Bool("following", follow))

	conn, err := h.Graph.ConnectionsOf(ctx, actor)
	if err != nil {
		httpjson.Internal(w, h.Log, "follow: reload connections failed", err)
		return
	}
	httpjson.OK(w, http.StatusOK, conn)
}
