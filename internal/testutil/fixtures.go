package testutil

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/ripple/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Chained calls accumulate parameters on the same route context.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateAccount creates an active test account with the given handle.
// Email is derived from the username; the password is "password123".
func (f *Fixtures) CreateAccount(ctx context.Context, username string) models.Account {
	f.t.Helper()
	return f.createAccount(ctx, username, "active")
}

// CreateDisabledAccount creates a test account with disabled status.
func (f *Fixtures) CreateDisabledAccount(ctx context.Context, username string) models.Account {
	f.t.Helper()
	return f.createAccount(ctx, username, "disabled")
}

func (f *Fixtures) createAccount(ctx context.Context, username, status string) models.Account {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	a := models.Account{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   text.Fold(username),
		Email:        fmt.Sprintf("%s@example.com", text.Fold(username)),
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     username,
		FullNameCI:   text.Fold("Test " + username),
		Role:         "user",
		Status:       status,
		Following:    []primitive.ObjectID{},
		Followers:    []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("accounts").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test account: %v", err)
	}
	return a
}

// Follow wires a follow edge directly: target into actor.following,
// actor into target.followers.
func (f *Fixtures) Follow(ctx context.Context, actor, target primitive.ObjectID) {
	f.t.Helper()

	accounts := f.db.Collection("accounts")
	if _, err := accounts.UpdateOne(ctx, bson.M{"_id": actor},
		bson.M{"$addToSet": bson.M{"following": target}}); err != nil {
		f.t.Fatalf("failed to add following edge: %v", err)
	}
	if _, err := accounts.UpdateOne(ctx, bson.M{"_id": target},
		bson.M{"$addToSet": bson.M{"followers": actor}}); err != nil {
		f.t.Fatalf("failed to add followers edge: %v", err)
	}
}

// CreatePost creates a test post by the given author.
func (f *Fixtures) CreatePost(ctx context.Context, author primitive.ObjectID, postText string) models.Post {
	f.t.Helper()
	return f.CreatePostAt(ctx, author, postText, time.Now().UTC())
}

// CreatePostAt creates a test post with an explicit creation time, for
// tests that depend on feed ordering.
func (f *Fixtures) CreatePostAt(ctx context.Context, author primitive.ObjectID, postText string, at time.Time) models.Post {
	f.t.Helper()

	p := models.Post{
		ID:        primitive.NewObjectID(),
		PostedBy:  author,
		Text:      postText,
		Likes:     []primitive.ObjectID{},
		Comments:  []models.Comment{},
		CreatedAt: at,
		UpdatedAt: at,
	}
	if _, err := f.db.Collection("posts").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return p
}

// AddComment appends a comment by the given account to a post and
// returns the comment with its generated ID.
func (f *Fixtures) AddComment(ctx context.Context, postID, commenter primitive.ObjectID, commentText string) models.Comment {
	f.t.Helper()

	c := models.Comment{
		ID:        primitive.NewObjectID(),
		PostedBy:  commenter,
		Text:      commentText,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("posts").UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": c}}); err != nil {
		f.t.Fatalf("failed to add test comment: %v", err)
	}
	return c
}

// AddLike records a like by the given account on a post.
func (f *Fixtures) AddLike(ctx context.Context, postID, liker primitive.ObjectID) {
	f.t.Helper()

	if _, err := f.db.Collection("posts").UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"likes": liker}}); err != nil {
		f.t.Fatalf("failed to add test like: %v", err)
	}
}
