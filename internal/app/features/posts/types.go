// internal/app/features/posts/types.go
package posts

import (
	"context"
	"time"

	"github.com/dalemusser/ripple/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostView is the response shape for a post: author references are
// resolved to profiles so clients never see bare ObjectIDs for people.
type PostView struct {
	ID        primitive.ObjectID   `json:"id"`
	Author    models.Profile       `json:"posted_by"`
	Text      string               `json:"text"`
	Photo     string               `json:"photo,omitempty"`
	Likes     []primitive.ObjectID `json:"likes"`
	LikeCount int                  `json:"like_count"`
	Liked     bool                 `json:"liked"`
	Comments  []CommentView        `json:"comments"`
	CreatedAt time.Time            `json:"created_at"`
}

// CommentView is a comment with its author resolved to a profile.
type CommentView struct {
	ID        primitive.ObjectID `json:"id"`
	Author    models.Profile     `json:"posted_by"`
	Text      string             `json:"text"`
	CreatedAt time.Time          `json:"created_at"`
}

// render resolves author profiles for a batch of posts in a single
// accounts query. viewer determines the Liked flag.
func (h *Handler) render(ctx context.Context, viewer primitive.ObjectID, posts []models.Post) ([]PostView, error) {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, p := range posts {
		idSet[p.PostedBy] = struct{}{}
		for _, c := range p.Comments {
			idSet[c.PostedBy] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	profiles, err := h.Accounts.Profiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		v := PostView{
			ID:        p.ID,
			Author:    profiles[p.PostedBy],
			Text:      p.Text,
			Photo:     p.Photo,
			Likes:     p.Likes,
			LikeCount: len(p.Likes),
			Liked:     p.LikedBy(viewer),
			Comments:  make([]CommentView, 0, len(p.Comments)),
			CreatedAt: p.CreatedAt,
		}
		if v.Likes == nil {
			v.Likes = []primitive.ObjectID{}
		}
		for _, c := range p.Comments {
			v.Comments = append(v.Comments, CommentView{
				ID:        c.ID,
				Author:    profiles[c.PostedBy],
				Text:      c.Text,
				CreatedAt: c.CreatedAt,
			})
		}
		views = append(views, v)
	}
	return views, nil
}

// renderOne is the single-post variant of render.
func (h *Handler) renderOne(ctx context.Context, viewer primitive.ObjectID, post *models.Post) (PostView, error) {
	views, err := h.render(ctx, viewer, []models.Post{*post})
	if err != nil {
		return PostView{}, err
	}
	return views[0], nil
}
