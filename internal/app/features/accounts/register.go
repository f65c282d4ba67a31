package accounts

import (
	"context"
	"errors"
	"net/http"

	accountstore "github.com/dalemusser/ripple/internal/app/store/accounts"
	"github.com/dalemusser/ripple/internal/app/system/httpjson"
	"github.com/dalemusser/ripple/internal/app/system/limits"
	"github.com/dalemusser/ripple/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
}

// HandleRegister handles POST /accounts/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Accounts.Create(ctx, accountstore.NewAccount{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
	})
	switch {
	case err == nil:
	case errors.Is(err, accountstore.ErrInvalidInput):
		httpjson.Fail(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, accountstore.ErrDuplicateUsername),
		errors.Is(err, accountstore.ErrDuplicateEmail):
		httpjson.Fail(w, http.StatusConflict, err.Error())
		return
	default:
		httpjson.Internal(w, h.Log, "register: create account failed", err)
		return
	}

	h.Log.Info("account registered",
		zap.String("account_id", created.ID.Hex()),
		zap.String("username", created.Username))

	token, err := h.Tokens.Issue(identityOf(&created))
	if err != nil {
		httpjson.Internal(w, h.Log, "register: token issue failed", err)
		return
	}

	httpjson.OK(w, http.StatusCreated, loginResponse{Token: token, Account: created})
}
