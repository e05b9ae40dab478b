package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UserInterests holds one user's selected category set. The whole set
// is replaced on every save.
type UserInterests struct {
	ID        bson.ObjectID   `bson:"_id,omitempty"`
	UserID    bson.ObjectID   `bson:"userId"`
	Interests []bson.ObjectID `bson:"interests"`
	CreatedAt time.Time       `bson:"createdAt"`
	UpdatedAt time.Time       `bson:"updatedAt"`
}

// SaveInterestsRequest carries the external category ids to store.
type SaveInterestsRequest struct {
	Interests []string `json:"interests"`
}
