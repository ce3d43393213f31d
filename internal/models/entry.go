package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entry represents one giveaway application. Unique per (giveaway, user).
type Entry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GiveawayID primitive.ObjectID `bson:"giveawayId" json:"giveawayId"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	Username   string             `bson:"username" json:"username"`
	EnteredAt  time.Time          `bson:"enteredAt" json:"enteredAt"`
}
