package social

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	graphstore "github.com/dalemusser/ripple/internal/app/store/graph"
	"github.com/dalemusser/ripple/internal/app/system/httpjson"
	"github.com/dalemusser/ripple/internal/app/system/paging"
	"github.com/dalemusser/ripple/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
)

// defaultSuggestionLimit bounds the discovery list when the caller
// does not ask for a specific size.
const defaultSuggestionLimit = 10

// ServeSuggestions handles GET /users/suggestions?limit=N.
func (h *Handler) ServeSuggestions(w http.ResponseWriter, r *http.Request) {
	viewer, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	limit := defaultSuggestionLimit
	if raw := query.Get(r, "limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > paging.MaxPageSize {
		limit = paging.MaxPageSize
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	got, err := h.Graph.Suggestions(ctx, viewer, int64(limit))
	if err != nil {
		if errors.Is(err, graphstore.ErrNotFound) {
			httpjson.Fail(w, http.StatusNotFound, "account not found")
			return
		}
		httpjson.Internal(w, h.Log, "suggestions failed", err)
		return
	}
	httpjson.OK(w, http.StatusOK, got)
}

// ServeConnections handles GET /users/{id}/connections.
func (h *Handler) ServeConnections(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentAccountID(w, r); !ok {
		return
	}
	target, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	conn, err := h.Graph.ConnectionsOf(ctx, target)
	if err != nil {
		if errors.Is(err, graphstore.ErrNotFound) {
			httpjson.Fail(w, http.StatusNotFound, "account not found")
			return
		}
		httpjson.Internal(w, h.Log, "connections failed", err)
		return
	}
	httpjson.OK(w, http.StatusOK, conn)
}
