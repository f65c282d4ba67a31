package accountstore

// Terminology: Account Identifiers
//   - AccountID / id / _id: the MongoDB ObjectID that uniquely identifies an account
//   - Username: the human-readable handle, unique case-insensitively via username_ci

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/ripple/internal/app/system/htmlsanitize"
	"github.com/dalemusser/ripple/internal/app/system/inputval"
	"github.com/dalemusser/ripple/internal/app/system/normalize"
	"github.com/dalemusser/ripple/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("accounts")}
}

var (
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("account not found")

	// ErrDuplicateUsername is returned when the handle is already taken
	// (case-insensitive).
	ErrDuplicateUsername = errors.New("an account with this username already exists")

	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("an account with this email already exists")

	// ErrInvalidInput wraps field validation failures.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBadCredentials is returned when email/password verification fails.
	ErrBadCredentials = errors.New("invalid email or password")

	// ErrDisabled is returned when authenticating a deactivated account.
	ErrDisabled = errors.New("account is deactivated")
)

// NewAccount holds the fields accepted at registration.
type NewAccount struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Bio       string
}

// Create inserts a new account after normalizing & validating fields.
// The password is bcrypt-hashed; adjacency arrays start empty.
func (s *Store) Create(ctx context.Context, in NewAccount) (models.Account, error) {
	username := normalize.Username(in.Username)
	email := normalize.Email(in.Email)

	if !inputval.IsValidUsername(username) {
		return models.Account{}, fmt.Errorf("%w: username must be 3-30 letters, digits, or underscores", ErrInvalidInput)
	}
	if !inputval.IsValidEmail(email) {
		return models.Account{}, fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	if in.Password == "" {
		return models.Account{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	firstName := normalize.Name(in.FirstName)
	lastName := normalize.Name(in.LastName)
	if !inputval.IsValidName(firstName) || !inputval.IsValidName(lastName) {
		return models.Account{}, fmt.Errorf("%w: first and last name are required (max 50 chars)", ErrInvalidInput)
	}
	bio := htmlsanitize.Strip(strings.TrimSpace(in.Bio))
	if !inputval.IsValidBio(bio) {
		return models.Account{}, fmt.Errorf("%w: bio must be at most 500 chars", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, err
	}

	now := time.Now().UTC()
	a := models.Account{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   text.Fold(username),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		FullNameCI:   text.Fold(firstName + " " + lastName),
		Bio:          bio,
		Role:         "user",
		Status:       "active",
		Following:    []primitive.ObjectID{},
		Followers:    []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			if strings.Contains(err.Error(), "uniq_username_ci") {
				return models.Account{}, ErrDuplicateUsername
			}
			return models.Account{}, ErrDuplicateEmail
		}
		return models.Account{}, err
	}
	return a, nil
}

// GetByID loads an account by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	var a models.Account
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetByUsername looks up an account by case-insensitive handle.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	var a models.Account
	filter := bson.M{"username_ci": text.Fold(normalize.Username(username))}
	if err := s.c.FindOne(ctx, filter).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetByEmail looks up an account by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Authenticate verifies email/password and rejects deactivated
// accounts. Unknown email and wrong password both come back as
// ErrBadCredentials; the caller cannot probe which one it was.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	a, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	if a.Status != "active" {
		return nil, ErrDisabled
	}
	return a, nil
}

// ProfileUpdate holds the profile fields an account owner may change.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Bio       string
}

// UpdateProfile updates the account's profile fields.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	firstName := normalize.Name(upd.FirstName)
	lastName := normalize.Name(upd.LastName)
	if !inputval.IsValidName(firstName) || !inputval.IsValidName(lastName) {
		return fmt.Errorf("%w: first and last name are required (max 50 chars)", ErrInvalidInput)
	}
	bio := htmlsanitize.Strip(strings.TrimSpace(upd.Bio))
	if !inputval.IsValidBio(bio) {
		return fmt.Errorf("%w: bio must be at most 500 chars", ErrInvalidInput)
	}

	set := bson.M{
		"first_name":   firstName,
		"last_name":    lastName,
		"full_name_ci": text.Fold(firstName + " " + lastName),
		"bio":          bio,
		"updated_at":   time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAvatar stores the blob key for the account's avatar.
func (s *Store) SetAvatar(ctx context.Context, id primitive.ObjectID, key string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"avatar": key, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetActive flips the account status. Accounts are never hard-deleted:
// deactivated accounts keep their posts and graph edges referentially
// intact but stop authenticating and appearing in suggestions.
func (s *Store) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	status := "disabled"
	if active {
		status = "active"
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Profiles loads lightweight projections for a batch of account IDs in
// one query. Missing IDs are simply absent from the result map.
func (s *Store) Profiles(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Profile, error) {
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
