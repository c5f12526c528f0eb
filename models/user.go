package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User holds the structure for the users collection in mongo. Every account on
// the roster is a user; the role decides what it may do.
type User struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details UserDetails        `json:"user" bson:"user"`
	Version int32              `json:"__v" bson:"__v"`
}

// UserDetails holds the structure for the inner user structure as defined in the user collection in mongo
type UserDetails struct {
	Name           string `json:"name" bson:"name"`
	Passport       string `json:"passport" bson:"passport"`
	Password       string `json:"password,omitempty" bson:"password"`
	Role           string `json:"role" bson:"role"`
	Rank           string `json:"rank,omitempty" bson:"rank,omitempty"`
	Age            int    `json:"age,omitempty" bson:"age,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
	Active         bool   `json:"active" bson:"active"`
	CreatedAt      string `json:"createdAt" bson:"createdAt"`
}

// Redacted returns a copy of the user without the password hash
func (u User) Redacted() User {
	u.Details.Password = ""
	return u
}
