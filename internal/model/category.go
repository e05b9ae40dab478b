package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Category is a catalog entry. CategoryID is the stable external id
// exposed over the API; the mongo ObjectID stays internal.
type Category struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	CategoryID  string        `bson:"id"`
	Name        string        `bson:"name"`
	Description string        `bson:"description,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}

// CategoryResponse is the API projection of a catalog entry.
type CategoryResponse struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}
