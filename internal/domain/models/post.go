// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a unit of content with its engagement embedded: the likes
// array holds each liker's account ID at most once, and comments keep
// insertion order with a stable ID per comment.
type Post struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	PostedBy primitive.ObjectID   `bson:"posted_by" json:"posted_by"`
	Text     string               `bson:"text" json:"text"`
	Photo    string               `bson:"photo,omitempty" json:"photo,omitempty"` // blob store key
	Likes    []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments []Comment            `bson:"comments" json:"comments"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Comment is a sub-document of Post. Only the comment's own author may
// remove it; the post's author gets no override.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	PostedBy  primitive.ObjectID `bson:"posted_by" json:"posted_by"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// LikedBy reports whether the given account has liked the post.
func (p *Post) LikedBy(id primitive.ObjectID) bool {
	for _, l := range p.Likes {
		if l == id {
			return true
		}
	}
	return false
}
