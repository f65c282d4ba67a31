// internal/domain/models/account.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account represents a registered user: identity, profile, and the
// follow-graph adjacency arrays.
//
// NOTE:
//   - Following/Followers must stay mutually consistent: B is in
//     A.Following exactly when A is in B.Followers. Both sides are
//     written together in graphstore; never mutate one array alone.
//   - PasswordHash is bson-only and must never reach a response body.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	UsernameCI   string             `bson:"username_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	FirstName    string             `bson:"first_name" json:"first_name"`
	LastName     string             `bson:"last_name" json:"last_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"-"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Avatar       string             `bson:"avatar,omitempty" json:"avatar,omitempty"` // blob store key
	Role         string             `bson:"role" json:"role"`                         // user | admin
	Status       string             `bson:"status" json:"status"`                     // active | disabled

	Following []primitive.ObjectID `bson:"following" json:"following"`
	Followers []primitive.ObjectID `bson:"followers" json:"followers"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Profile is the lightweight projection of an Account that is safe to
// embed in responses: no password hash, no adjacency arrays.
type Profile struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Username  string             `bson:"username" json:"username"`
	FirstName string             `bson:"first_name" json:"first_name"`
	LastName  string             `bson:"last_name" json:"last_name"`
	Avatar    string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
}

// Profile returns the lightweight projection of the account.
func (a *Account) Profile() Profile {
	return Profile{
		ID:        a.ID,
		Username:  a.Username,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Avatar:    a.Avatar,
	}
}
