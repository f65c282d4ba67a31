package posts

import (
	"context"
	"errors"
	"net/http"

	poststore "github.com/dalemusser/ripple/internal/app/store/posts"
	"github.com/dalemusser/ripple/internal/app/system/httpjson"
	"github.com/dalemusser/ripple/internal/app/system/limits"
	"github.com/dalemusser/ripple/internal/app/system/timeouts"
)

type commentRequest struct {
	Text string `json:"text"`
}

// HandleComment handles PUT /posts/{id}/comment.
func (h *Handler) HandleComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentAccountID(w, r)
	if !ok {
		return
	}
	postID, ok := pathObjectID(w, r, "id", "post id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	var req commentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.Posts.AddComment(ctx, postID, actor, req.Text)
	switch {
	case err == nil:
	case errors.Is(err, poststore.ErrInvalidInput):
		httpjson.Fail(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, poststore.ErrNotFound):
		httpjson.Fail(w, http.StatusNotFound, "post not found")
		return
	default:
		httpjson.Internal(w, h.Log, "comment: add failed", err)
		return
	}

	view, err := h.renderOne(ctx, actor, post)
	if err != nil {
		httpjson.Internal(w, h.Log, "comment: render failed", err)
		return
	}
	httpjson.OK(w, http.StatusOK, view)
}

// HandleUncomment handles PUT /posts/{id}/comments/{commentID}/uncomment.
// Only the comment's author may remove it; the post author gets a 403
// like anyone else.
func (h *Handler) HandleUncomment(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentAccountID(w, r)
	if !ok {
		return
	}
	postID, ok := pathObjectID(w, r, "id", "post id")
	if !ok {
		return
	}
	commentID, ok := pathObjectID(w, r, "commentID", "comment id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, err := h.Posts.RemoveComment(ctx, postID, commentID, actor)
	switch {
	case err == nil:
	case errors.Is(err, poststore.ErrNotFound):
		httpjson.Fail(w, http.StatusNotFound, "post not found")
		return
	case errors.Is(err, poststore.ErrCommentNotFound):
		httpjson.Fail(w, http.StatusNotFound, "comment not found")
		return
	case errors.Is(err, poststore.ErrNotCommentAuthor):
		httpjson.Fail(w, http.StatusForbidden, err.Error())
		return
	default:
		httpjson.Internal(w, h.Log, "uncomment: remove failed", err)
		return
	}

	view, err := h.renderOne(ctx, actor, post)
	if err != nil {
		httpjson.Internal(w, h.Log, "uncomment: render failed", err)
		return
	}
	httpjson.OK(w, http.StatusOK, view)
}
