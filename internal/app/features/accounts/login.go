package accounts

import (
	"context"
	"errors"
	"net/http"

	accountstore "github.com/dalemusser/ripple/internal/app/store/accounts"
	"github.com/dalemusser/ripple/internal/app/system/auth"
	"github.com/dalemusser/ripple/internal/app/system/httpjson"
	"github.com/dalemusser/ripple/internal/app/system/limits"
	"github.com/dalemusser/ripple/internal/app/system/timeouts"
	"github.com/dalemusser/ripple/internal/domain/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string         `json:"token"`
	Account models.Account `json:"account"`
}

func identityOf(a *models.Account) auth.Identity {
	return auth.Identity{
		ID:       a.ID.Hex(),
		Username: a.Username,
		Name:     a.FirstName + " " + a.LastName,
		Role:     a.Role,
	}
}

// HandleLogin handles POST /accounts/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.Fail(w, http.StatusBadRequest, "email and password are required")
		return
	}

	a, err := h.Accounts.Authenticate(ctx, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, accountstore.ErrBadCredentials):
		httpjson.Fail(w, http.StatusUnauthorized, err.Error())
		return
	case errors.Is(err, accountstore.ErrDisabled):
		httpjson.Fail(w, http.StatusForbidden, err.Error())
		return
	default:
		httpjson.Internal(w, h.Log, "login: authenticate failed", err)
		return
	}

	token, err := h.Tokens.Issue(identityOf(a))
	if err != nil {
		httpjson.Internal(w, h.Log, "login: token issue failed", err)
		return
	}

	httpjson.OK(w, http.StatusOK, loginResponse{Token: token, Account: *a})
}
