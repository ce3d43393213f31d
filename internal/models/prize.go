package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prize represents a single prize tier of a giveaway. DisplayOrder defines
// allocation priority: lower values are filled first when entries are scarce.
type Prize struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GiveawayID   primitive.ObjectID `bson:"giveawayId" json:"giveawayId"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL     string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	WinnerCount  int                `bson:"winnerCount" json:"winnerCount"`
	DisplayOrder int                `bson:"displayOrder" json:"displayOrder"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
