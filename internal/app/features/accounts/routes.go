// internal/app/features/accounts/routes.go
package accounts

import (
	"github.com/dalemusser/ripple/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all account routes under the path where the caller
// mounts it. Typically: r.Mount("/accounts", accounts.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/me", h.ServeMe)
		pr.Patch("/me", h.HandleUpdateProfile)
		pr.Post("/me/avatar", h.HandleUploadAvatar)
		pr.Post("/me/deactivate", h.HandleDeactivate)
	})

	return r
}
