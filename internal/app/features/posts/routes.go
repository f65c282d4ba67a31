// internal/app/features/posts/routes.go
package posts

import (
	"github.com/dalemusser/ripple/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all post routes. Typically:
// r.Mount("/posts", posts.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/feed", h.ServeFeed)
		pr.Post("/", h.HandleCreate)
		pr.Delete("/{id}", h.HandleDelete)

		pr.Put("/{id}/like", h.HandleLike)
		pr.Put("/{id}/unlike", h.HandleUnlike)
		pr.Put("/{id}/comment", h.HandleComment)
		pr.Put("/{id}/comments/{commentID}/uncomment", h.HandleUncomment)
	})

	return r
}
