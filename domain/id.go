package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID returns a fresh record identifier. Every storage backend uses the
// 24 character hex ObjectID form so tokens and client links stay portable.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID reports whether id is syntactically a record identifier.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
