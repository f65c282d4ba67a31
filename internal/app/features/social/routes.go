// internal/app/features/social/routes.go
package social

import (
	"net/http"

	"github.com/dalemusser/ripple/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the follow-graph routes. The per-user post listing
// lives under /users too, so the posts feature hands its handler in
// rather than mounting a second router on the same path. Typically:
// r.Mount("/users", social.Routes(handler, postsHandler.ServeByAuthor))
func Routes(h *Handler, postsByAuthor http.HandlerFunc) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/suggestions", h.ServeSuggestions)
		pr.Get("/{id}/connections", h.ServeConnections)
		pr.Get("/{id}/posts", postsByAuthor)
		pr.Post("/{id}/follow", h.HandleFollow)
		pr.Put("/{id}/unfollow", h.HandleUnfollow)
	})

	return r
}
