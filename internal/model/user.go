package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents an account holder identified by phone number. Email and
// username were dropped from the schema when the phone number became the
// single account identity.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	FirstName    string        `bson:"first_name"`
	LastName     string        `bson:"last_name"`
	PhoneNumber  string        `bson:"phone_number"`
	PasswordHash string        `bson:"password_hash"`
	Role         string        `bson:"role"`
	Active       bool          `bson:"active"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}
