package graphstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/ripple/internal/app/system/txn"
	"github.com/dalemusser/ripple/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Store manages the follow graph: the following/followers adjacency
// arrays on accounts. Both sides of an edge are written together so
// the arrays stay mirror images of each other.
type Store struct {
	db  *mongo.Database
	c   *mongo.Collection
	log *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{db: db, c: db.Collection("accounts"), log: logger}
}

var (
	// ErrNotFound is returned when either end of the edge does not exist.
	ErrNotFound = errors.New("account not found")

	// ErrSelfFollow is returned when an account tries to follow itself.
	ErrSelfFollow = errors.New("cannot follow yourself")
)

// Follow adds target to actor's following list and actor to target's
// followers list. Re-following is an idempotent no-op: $addToSet never
// produces a duplicate edge even under concurrent requests.
func (s *Store) Follow(ctx context.Context, actor, target primitive.ObjectID) error {
	if actor == target {
		return ErrSelfFollow
	}
	return s.link(ctx, actor, target, "$addToSet")
}

// Unfollow removes the edge in both directions. Unfollowing someone
// the actor never followed is an idempotent no-op.
func (s *Store) Unfollow(ctx context.Context, actor, target primitive.ObjectID) error {
	if actor == target {
		return ErrSelfFollow
	}
	return s.link(ctx, actor, target, "$pull")
}

// link applies op ($addToSet or $pull) to both adjacency arrays inside
// a transaction, falling back to sequential writes on standalone Mongo.
// Both endpoints are verified before the first write: in the fallback
// mode there is no rollback, so a missing endpoint discovered mid-way
// would leave a one-sided edge behind.
func (s *Store) link(ctx context.Context, actor, target primitive.ObjectID, op string) error {
	return txn.Run(ctx, s.db, s.log, func(sc context.Context) error {
		n, err := s.c.CountDocuments(sc, bson.M{"_id": bson.M{"$in": bson.A{actor, target}}})
		if err != nil {
			return err
		}
		if n != 2 {
			return ErrNotFound
		}

		now := time.Now().UTC()

		res, err := s.c.UpdateOne(sc, bson.M{"_id": actor}, bson.M{
			op:     bson.M{"following": target},
			"$set": bson.M{"updated_at": now},
		})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}

		res, err = s.c.UpdateOne(sc, bson.M{"_id": target}, bson.M{
			op:     bson.M{"followers": actor},
			"$set": bson.M{"updated_at": now},
		})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Audience returns the set of author IDs whose posts appear in the
// viewer's feed: the viewer plus everyone they follow.
func (s *Store) Audience(ctx context.Context, viewer primitive.ObjectID) ([]primitive.ObjectID, error) {
	var a models.Account
	proj := options.FindOne().SetProjection(bson.M{"following": 1})
	if err := s.c.FindOne(ctx, bson.M{"_id": viewer}, proj).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	audience := make([]primitive.ObjectID, 0, len(a.Following)+1)
	audience = append(audience, viewer)
	audience = append(audience, a.Following...)
	return audience, nil
}

// Suggestion is a profile annotated for the discovery list.
type Suggestion struct {
	models.Profile
	IsFollowing bool `json:"isFollowing"`
}

// Suggestions lists active accounts the viewer does not already
// follow (and is not), newest accounts first.
func (s *Store) Suggestions(ctx context.Context, viewer primitive.ObjectID, limit int64) ([]Suggestion, error) {
	var a models.Account
	proj := options.FindOne().SetProjection(bson.M{"following": 1})
	if err := s.c.FindOne(ctx, bson.M{"_id": viewer}, proj).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	exclude := append(a.Following, viewer)
	opts := options.Find().
		SetProjection(bson.M{"username": 1, "first_name": 1, "last_name": 1, "avatar": 1}).
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{
		"_id":    bson.M{"$nin": exclude},
		"status": "active",
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Suggestion{}
	for cur.Next(ctx) {
		var p models.Profile
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, Suggestion{Profile: p})
	}
	return out, cur.Err()
}

// Connections holds both sides of an account's graph as profiles,
// ordered the way the adjacency arrays are (oldest edge first).
type Connections struct {
	Followers []models.Profile `json:"followers"`
	Following []models.Profile `json:"following"`
}

// ConnectionsOf resolves the account's followers and following arrays
// into profile lists. Edges pointing at accounts that have since
// disappeared are skipped rather than surfaced as holes.
func (s *Store) ConnectionsOf(ctx context.Context, id primitive.ObjectID) (Connections, error) {
	var a models.Account
	proj := options.FindOne().SetProjection(bson.M{"following": 1, "followers": 1})
	if err := s.c.FindOne(ctx, bson.M{"_id": id}, proj).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return Connections{}, ErrNotFound
		}
		return Connections{}, err
	}

	ids := make([]primitive.ObjectID, 0, len(a.Followers)+len(a.Following))
	ids = append(ids, a.Followers...)
	ids = append(ids, a.Following...)
	profiles, err := s.profiles(ctx, ids)
	if err != nil {
		return Connections{}, err
	}

	conn := Connections{
		Followers: make([]models.Profile, 0, len(a.Followers)),
		Following: make([]models.Profile, 0, len(a.Following)),
	}
	for _, fid := range a.Followers {
		if p, ok := profiles[fid]; ok {
			conn.Followers = append(conn.Followers, p)
		}
	}
	for _, fid := range a.Following {
		if p, ok := profiles[fid]; ok {
			conn.Following = append(conn.Following, p)
		}
	}
	return conn, nil
}

func (s *Store) profiles(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Profile, error) {
	result := make(map[primitive.ObjectID]models.Profile, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	proj := options.Find().SetProjection(bson.M{
		"username": 1, "first_name": 1, "last_name": 1, "avatar": 1,
	})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, proj)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var p models.Profile
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		result[p.ID] = p
	}
	return result, cur.Err()
}
