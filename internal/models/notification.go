package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification delivery statuses
const (
	NotificationStatusSent   = "SENT"
	NotificationStatusFailed = "FAILED"
)

// Notification represents a draw-summary push recorded for auditing.
// Delivery is best effort; a FAILED row never fails the draw that produced it.
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GiveawayID  primitive.ObjectID `bson:"giveawayId" json:"giveawayId"`
	Title       string             `bson:"title" json:"title"`
	WinnerCount int                `bson:"winnerCount" json:"winnerCount"`
	EntryCount  int                `bson:"entryCount" json:"entryCount"`
	Status      string             `bson:"status" json:"status"` // SENT, FAILED
	Error       string             `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
