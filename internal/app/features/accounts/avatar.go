package accounts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	accountstore "github.com/dalemusser/ripple/internal/app/store/accounts"
	"github.com/dalemusser/ripple/internal/app/system/httpjson"
	"github.com/dalemusser/ripple/internal/app/system/limits"
	"github.com/dalemusser/ripple/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var allowedAvatarExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// HandleUploadAvatar handles POST /accounts/me/avatar with a
// multipart form carrying an "avatar" file.
func (h *Handler) HandleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxAvatarSize)
	if err := r.ParseMultipartForm(limits.MaxAvatarSize); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "avatar file too large or malformed form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedAvatarExts[ext] {
		httpjson.Fail(w, http.StatusBadRequest, "avatar must be a jpg, png, gif, or webp image")
		return
	}

	// Unique path: avatars/YYYY/MM/uuid.ext
	now := time.Now().UTC()
	key := fmt.Sprintf("avatars/%04d/%02d/%s%s", now.Year(), now.Month(), uuid.New().String()[:8], ext)

	opts := &storage.PutOptions{ContentType: header.Header.Get("Content-Type")}
	if err := h.Storage.Put(ctx, key, file, opts); err != nil {
		httpjson.Internal(w, h.Log, "avatar: upload failed", err)
		return
	}

	if err := h.Accounts.SetAvatar(ctx, actor, key); err != nil {
		if errors.Is(err, accountstore.ErrNotFound) {
			httpjson.Fail(w, http.StatusNotFound, "account not found")
			return
		}
		httpjson.Internal(w, h.Log, "avatar: save key failed", err)
		return
	}

	h.Log.Info("avatar updated",
		zap.String("account_id", actor.Hex()),
		zap.String("key", key))

	httpjson.OK(w, http.StatusOK, map[string]string{"avatar": key})
}
