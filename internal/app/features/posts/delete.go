package posts

import (
	"context"
	"errors"
	"net/http"

	poststore "github.com/dalemusser/ripple/internal/app/store/posts"
	"github.com/dalemusser/ripple/internal/app/system/httpjson"
	"github.com/dalemusser/ripple/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /posts/{id}. Author-only; the attached
// photo (if any) is removed from blob storage after the document goes.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	deleted, err := h.Posts.Delete(ctx, postID, actor)
	switch {
	case err == nil:
	case errors.Is(err, poststore.ErrNotFound):
		httpjson.Fail(w, http.StatusNotFound, "post not found")
		return
	case errors.Is(err, poststore.ErrNotPostAuthor):
		httpjson.Fail(w, http.StatusForbidden, err.Error())
		return
	default:
		httpjson.Internal(w, h.Log, "post delete failed", err)
		return
	}

	if deleted.Photo != "" {
		if err := h.Storage.Delete(ctx, deleted.Photo); err != nil {
			h.Log.Warn("post delete: photo cleanup failed",
				zap.String("key", deleted.Photo), zap.Error(err))
		}
	}

	h.Log.Info("post deleted",
		zap.String("post_id", postID.Hex()),
		zap.String("author", actor.Hex()))

	httpjson.OK(w, http.StatusOK, map[string]string{"id": postID.Hex()})
}
