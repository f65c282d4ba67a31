package poststore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/ripple/internal/app/system/htmlsanitize"
	"github.com/dalemusser/ripple/internal/app/system/inputval"
	"github.com/dalemusser/ripple/internal/app/system/paging"
	"github.com/dalemusser/ripple/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("posts")}
}

var (
	// ErrNotFound is returned when no post matches the lookup.
	ErrNotFound = errors.New("post not found")

	// ErrInvalidInput wraps field validation failures.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyLiked is returned when the actor already likes the post.
	ErrAlreadyLiked = errors.New("post already liked")

	// ErrNotLiked is returned when unliking a post the actor never liked.
	ErrNotLiked = errors.New("post not liked")

	// ErrCommentNotFound is returned when the comment does not exist on the post.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrNotCommentAuthor is returned when someone other than the
	// commenter tries to remove a comment.
	ErrNotCommentAuthor = errors.New("only the comment author can remove it")

	// ErrNotPostAuthor is returned when someone other than the author
	// tries to delete a post.
	ErrNotPostAuthor = errors.New("only the post author can delete it")
)

// Create inserts a new post by author. Text is required (1-1000 chars
// after trimming); photo is an optional blob store key.
func (s *Store) Create(ctx context.Context, author primitive.ObjectID, text, photo string) (models.Post, error) {
	clean, ok := inputval.PostText(htmlsanitize.Strip(text))
	if !ok {
		return models.Post{}, fmt.Errorf("%w: post text must be 1-%d chars", ErrInvalidInput, inputval.PostTextMax)
	}

	now := time.Now().UTC()
	p := models.Post{
		ID:        primitive.NewObjectID(),
		PostedBy:  author,
		Text:      clean,
		Photo:     photo,
		Likes:     []primitive.ObjectID{},
		Comments:  []models.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// GetByID loads a post by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Delete removes a post. Only the author may delete; anyone else gets
// ErrNotPostAuthor. Returns the deleted post so the caller can clean
// up attached blobs.
func (s *Store) Delete(ctx context.Context, id, actor primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id, "posted_by": actor}).Decode(&p)
	if err == nil {
		return &p, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	// Not deleted: missing post or wrong actor.
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return nil, ErrNotPostAuthor
}

// Like records that actor likes the post. The filter excludes posts
// the actor already likes, so the check and the write are one atomic
// update; concurrent duplicate likes cannot both match.
func (s *Store) Like(ctx context.Context, id, actor primitive.ObjectID) (*models.Post, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "likes": bson.M{"$ne": actor}},
		bson.M{
			"$addToSet": bson.M{"likes": actor},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		// Absent post vs already-liked.
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrAlreadyLiked
	}
	return s.GetByID(ctx, id)
}

// Unlike removes actor's like. Mirror of Like: the filter requires the
// like to be present, so removal is atomic.
func (s *Store) Unlike(ctx context.Context, id, actor primitive.ObjectID) (*models.Post, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "likes": actor},
		bson.M{
			"$pull": bson.M{"likes": actor},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrNotLiked
	}
	return s.GetByID(ctx, id)
}

// AddComment appends a comment by actor and returns the refreshed post.
func (s *Store) AddComment(ctx context.Context, id, actor primitive.ObjectID, text string) (*models.Post, error) {
	clean, ok := inputval.CommentText(htmlsanitize.Strip(text))
	if !ok {
		return nil, fmt.Errorf("%w: comment text must be 1-%d chars", ErrInvalidInput, inputval.CommentMax)
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		PostedBy:  actor,
		Text:      clean,
		CreatedAt: time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// RemoveComment deletes a comment. The filter matches only when the
// comment exists AND actor wrote it, so the ownership check and the
// removal are one atomic update.
func (s *Store) RemoveComment(ctx context.Context, id, commentID, actor primitive.ObjectID) (*models.Post, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id": id,
			"comments": bson.M{"$elemMatch": bson.M{
				"_id":       commentID,
				"posted_by": actor,
			}},
		},
		bson.M{
			"$pull": bson.M{"comments": bson.M{"_id": commentID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		// Missing post, missing comment, or wrong actor.
		var p models.Post
		proj := options.FindOne().SetProjection(bson.M{"comments": 1})
		if err := s.c.FindOne(ctx, bson.M{"_id": id}, proj).Decode(&p); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, ErrNotFound
			}
			return nil, err
		}
		for _, c := range p.Comments {
			if c.ID == commentID {
				return nil, ErrNotCommentAuthor
			}
		}
		return nil, ErrCommentNotFound
	}
	return s.GetByID(ctx, id)
}

// Feed returns one page of posts by the audience authors in reverse
// chronological order, plus the total match count. The _id tiebreak
// keeps the ordering total when timestamps collide.
func (s *Store) Feed(ctx context.Context, audience []primitive.ObjectID, p paging.Params) ([]models.Post, int64, error) {
	return s.page(ctx, bson.M{"posted_by": bson.M{"$in": audience}}, p)
}

// ByAuthor returns one page of a single author's posts, newest first.
func (s *Store) ByAuthor(ctx context.Context, author primitive.ObjectID, p paging.Params) ([]models.Post, int64, error) {
	return s.page(ctx, bson.M{"posted_by": author}, p)
}

func (s *Store) page(ctx context.Context, filter bson.M, p paging.Params) ([]models.Post, int64, error) {
	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit64())
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	for cur.Next(ctx) {
		var post models.Post
		if err := cur.Decode(&post); err != nil {
			return nil, 0, err
		}
		posts = append(posts, post)
	}
	return posts, total, cur.Err()
}
