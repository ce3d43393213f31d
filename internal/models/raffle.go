package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RaffleStatus represents the status of a raffle calendar event
type RaffleStatus string

const (
	RaffleStatusActive RaffleStatus = "ACTIVE"
	RaffleStatusClosed RaffleStatus = "CLOSED"
)

// SlotOutcome represents the resolution of a single raffle application slot
type SlotOutcome string

const (
	SlotOutcomePending SlotOutcome = "PENDING"
	SlotOutcomeWon     SlotOutcome = "WON"
	SlotOutcomeLost    SlotOutcome = "LOST"
)

// RaffleEvent represents a calendar-scheduled sale event that members apply
// to with one or more lots. Outcomes are entered by the creator, not drawn.
type RaffleEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatorID   primitive.ObjectID `bson:"creatorId" json:"creatorId"`
	StartAt     time.Time          `bson:"startAt" json:"startAt"`
	EndAt       time.Time          `bson:"endAt" json:"endAt"`
	Status      RaffleStatus       `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RaffleSlot represents one application lot. Slots are fungible; allocation
// orders them only by insertion id.
type RaffleSlot struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RaffleID  primitive.ObjectID `bson:"raffleId" json:"raffleId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Outcome   SlotOutcome        `bson:"outcome" json:"outcome"`
	UnitPrice int                `bson:"unitPrice,omitempty" json:"unitPrice,omitempty"`
	Memo      string             `bson:"memo,omitempty" json:"memo,omitempty"`
	AppliedAt time.Time          `bson:"appliedAt" json:"appliedAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
