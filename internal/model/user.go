package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account in MongoDB. Identity is immutable;
// profile fields may change. Users are never deleted.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FullName  string             `json:"fullName" bson:"full_name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// UserSummary is the public projection returned by listing endpoints
// and attached to delivered messages.
type UserSummary struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Summary strips the credential fields off a User.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID.Hex(),
		FullName: u.FullName,
		Email:    u.Email,
	}
}
