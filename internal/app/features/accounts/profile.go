package accounts

import (
	"context"
	"errors"
	"net/http"

	accountstore "github.com/dalemusser/ripple/internal/app/store/accounts"
	"github.com/dalemusser/ripple/internal/app/system/httpjson"
	"github.com/dalemusser/ripple/internal/app/system/limits"
	"github.com/dalemusser/ripple/internal/app/system/timeouts"
)

// ServeMe handles GET /accounts/me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Accounts.GetByID(ctx, actor)
	if err != nil {
		if errors.Is(err, accountstore.ErrNotFound) {
			httpjson.Fail(w, http.StatusNotFound, "account not found")
			return
		}
		httpjson.Internal(w, h.Log, "me: load account failed", err)
		return
	}
	httpjson.OK(w, http.StatusOK, a)
}

type profileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
}

// HandleUpdateProfile handles PATCH /accounts/me.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	var req profileRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.Accounts.UpdateProfile(ctx, actor, accountstore.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	})
	switch {
	case err == nil:
	case errors.Is(err, accountstore.ErrInvalidInput):
		httpjson.Fail(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, accountstore.ErrNotFound):
		httpjson.Fail(w, http.StatusNotFound, "account not found")
		return
	default:
		httpjson.Internal(w, h.Log, "profile: update failed", err)
		return
	}

	a, err := h.Accounts.GetByID(ctx, actor)
	if err != nil {
		httpjson.Internal(w, h.Log, "profile: reload failed", err)
		return
	}
	httpjson.OK(w, http.StatusOK, a)
}

// HandleDeactivate handles POST /accounts/me/deactivate. The account
// stays in the graph; it just stops authenticating and surfacing in
// suggestions.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentAccountID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Accounts.SetActive(ctx, actor, false); err != nil {
		if errors.Is(err, accountstore.ErrNotFound) {
			httpjson.Fail(w, http.StatusNotFound, "account not found")
			return
		}
		httpjson.Internal(w, h.Log, "deactivate failed", err)
		return
	}
	httpjson.OK(w, http.StatusOK, map[string]string{"status": "disabled"})
}
