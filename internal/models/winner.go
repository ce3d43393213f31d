package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Winner represents the result of binding one entry to one prize after a
// draw. For a fixed giveaway a user appears in at most one winner row.
// The whole set for a giveaway is deleted and regenerated on every draw.
type Winner struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GiveawayID primitive.ObjectID `bson:"giveawayId" json:"giveawayId"`
	PrizeID    primitive.ObjectID `bson:"prizeId" json:"prizeId"`
	EntryID    primitive.ObjectID `bson:"entryId" json:"entryId"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	Username   string             `bson:"username" json:"username"`
	WonAt      time.Time          `bson:"wonAt" json:"wonAt"`
}
