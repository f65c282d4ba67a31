package posts

import (
	"context"
	"errors"
	"net/http"

	accountstore "github.com/dalemusser/ripple/internal/app/store/accounts"
	graphstore "github.com/dalemusser/ripple/internal/app/store/graph"
	"github.com/dalemusser/ripple/internal/app/system/httpjson"
	"github.com/dalemusser/ripple/internal/app/system/paging"
	"github.com/dalemusser/ripple/internal/app/system/timeouts"
)

// ServeFeed handles GET /posts/feed?page=N&limit=M: one page of posts
// by the viewer and everyone they follow, newest first.
func (h *Handler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	viewer, ok := currentAccountID(w, r)
	if !ok {
		return
	}
	params := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	audience, err := h.Graph.Audience(ctx, viewer)
	if err != nil {
		if errors.Is(err, graphstore.ErrNotFound) {
			httpjson.Fail(w, http.StatusNotFound, "account not found")
			return
		}
		httpjson.Internal(w, h.Log, "feed: audience failed", err)
		return
	}

	page, total, err := h.Posts.Feed(ctx, audience, params)
	if err != nil {
		httpjson.Internal(w, h.Log, "feed: query failed", err)
		return
	}

	views, err := h.render(ctx, viewer, page)
	if err != nil {
		httpjson.Internal(w, h.Log, "feed: render failed", err)
		return
	}
	httpjson.Page(w, views, total, params.Meta(total))
}

// ServeByAuthor handles GET /users/{id}/posts: one page of a single
// account's posts, newest first.
func (h *Handler) ServeByAuthor(w http.ResponseWriter, r *http.Request) {
	viewer, ok := currentAccountID(w, r)
	if !ok {
		return
	}
	author, ok := pathObjectID(w, r, "id", "account id")
	if !ok {
		return
	}
	params := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Accounts.GetByID(ctx, author); err != nil {
		if errors.Is(err, accountstore.ErrNotFound) {
			httpjson.Fail(w, http.StatusNotFound, "account not found")
			return
		}
		httpjson.Internal(w, h.Log, "posts by author: load account failed", err)
		return
	}

	page, total, err := h.Posts.ByAuthor(ctx, author, params)
	if err != nil {
		httpjson.Internal(w, h.Log, "posts by author: query failed", err)
		return
	}

	views, err := h.render(ctx, viewer, page)
	if err != nil {
		httpjson.Internal(w, h.Log, "posts by author: render failed", err)
		return
	}
	httpjson.Page(w, views, total, params.Meta(total))
}
