package posts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	poststore "github.com/dalemusser/ripple/internal/app/store/posts"
	"github.com/dalemusser/ripple/internal/app/system/httpjson"
	"github.com/dalemusser/ripple/internal/app/system/limits"
	"github.com/dalemusser/ripple/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// HandleCreate handles POST /posts. The body is a multipart form with
// a required "text" field and an optional "photo" file.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxPostFormSize)
	if err := r.ParseMultipartForm(limits.MaxPostFormSize); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "post form too large or malformed")
		return
	}

	photoKey := ""
	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedPhotoExts[ext] {
			httpjson.Fail(w, http.StatusBadRequest, "photo must be a jpg, png, gif, or webp image")
			return
		}
		now := time.Now().UTC()
		photoKey = fmt.Sprintf("posts/%04d/%02d/%s%s", now.Year(), now.Month(), uuid.New().String()[:8], ext)

		opts := &storage.PutOptions{ContentType: header.Header.Get("Content-Type")}
		if err := h.Storage.Put(ctx, photoKey, file, opts); err != nil {
			httpjson.Internal(w, h.Log, "post create: photo upload failed", err)
			return
		}
	}

	created, err := h.Posts.Create(ctx, actor, r.FormValue("text"), photoKey)
	if err != nil {
		// The text was rejected; don't leave the photo orphaned.
		if photoKey != "" {
			if delErr := h.Storage.Delete(ctx, photoKey); delErr != nil {
				h.Log.Warn("post create: orphan photo cleanup failed",
					zap.String("key", photoKey), zap.Error(delErr))
			}
		}
		if errors.Is(err, poststore.ErrInvalidInput) {
			httpjson.Fail(w, http.StatusBadRequest, err.Error())
			return
		}
		httpjson.Internal(w, h.Log, "post create failed", err)
		return
	}

	h.Log.Info("post created",
		zap.String("post_id", created.ID.Hex()),
		zap.String("author", actor.Hex()))

	view, err := h.renderOne(ctx, actor, &created)
	if err != nil {
		httpjson.Internal(w, h.Log, "post create: render failed", err)
		return
	}
	httpjson.OK(w, http.StatusCreated, view)
}
