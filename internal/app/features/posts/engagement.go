package posts

import (
	"context"
	"errors"
	"net/http"

	poststore "github.com/dalemusser/ripple/internal/app/store/posts"
	"github.com/dalemusser/ripple/internal/app/system/httpjson"
	"github.com/dalemusser/ripple/internal/app/system/timeouts"
	"github.com/dalemusser/ripple/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleLike handles PUT /posts/{id}/like. Liking a post twice is a
// 409, never a double count.
func (h *Handler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.handleReaction(w, r, h.Posts.Like, poststore.ErrAlreadyLiked)
}

// HandleUnlike handles PUT /posts/{id}/unlike.
func (h *Handler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	h.handleReaction(w, r, h.Posts.Unlike, poststore.ErrNotLiked)
}

func (h *Handler) handleReaction(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, primitive.ObjectID, primitive.ObjectID) (*models.Post, error),
	conflict error,
) {
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

	post, err := op(ctx, postID, actor)
	switch {
	case err == nil:
	case errors.Is(err, poststore.ErrNotFound):
		httpjson.Fail(w, http.StatusNotFound, "post not found")
		return
	case errors.Is(err, conflict):
		httpjson.Fail(w, http.StatusConflict, err.Error())
		return
	default:
		httpjson.Internal(w, h.Log, "reaction update failed", err)
		return
	}

	view, err := h.renderOne(ctx, actor, post)
	if err != nil {
		httpjson.Internal(w, h.Log, "reaction: render failed", err)
		return
	}
	httpjson.OK(w, http.StatusOK, view)
}
