package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GiveawayStatus represents the stored lifecycle state of a giveaway
type GiveawayStatus string

const (
	GiveawayStatusDraft     GiveawayStatus = "DRAFT"
	GiveawayStatusActive    GiveawayStatus = "ACTIVE"
	GiveawayStatusEnded     GiveawayStatus = "ENDED"
	GiveawayStatusDrawn     GiveawayStatus = "DRAWN"
	GiveawayStatusCancelled GiveawayStatus = "CANCELLED"
)

// RequirementType selects which ledger window an entry requirement is checked against
type RequirementType string

const (
	RequirementNone          RequirementType = "NONE"
	RequirementCurrentMonth  RequirementType = "CURRENT_MONTH"
	RequirementPreviousMonth RequirementType = "PREVIOUS_MONTH"
	RequirementAllTime       RequirementType = "ALL_TIME"
)

// Giveaway represents a sponsor-funded giveaway event with an application
// window and one randomized draw.
type Giveaway struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title              string             `bson:"title" json:"title"`
	Description        string             `bson:"description" json:"description"`
	ImageURL           string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatorID          primitive.ObjectID `bson:"creatorId" json:"creatorId"`
	ShowCreator        bool               `bson:"showCreator" json:"showCreator"`
	StartAt            time.Time          `bson:"startAt" json:"startAt"`
	EndAt              time.Time          `bson:"endAt" json:"endAt"`
	Status             GiveawayStatus     `bson:"status" json:"status"`
	TotalEntries       int                `bson:"totalEntries" json:"totalEntries"`
	TotalWinners       int                `bson:"totalWinners" json:"totalWinners"`
	DrawnAt            *time.Time         `bson:"drawnAt,omitempty" json:"drawnAt,omitempty"`
	MinPoints          int                `bson:"minPoints" json:"minPoints"`
	RequirementType    RequirementType    `bson:"requirementType" json:"requirementType"`
	RequirementMessage string             `bson:"requirementMessage,omitempty" json:"requirementMessage,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EffectiveStatus derives the status shown to users from the stored status
// and the wall clock. DRAWN and CANCELLED are sticky; everything else is
// positional: before the window the event displays as DRAFT, inside it as
// ACTIVE, past it as ENDED. The stored status is never mutated by a read.
func EffectiveStatus(stored GiveawayStatus, now, startAt, endAt time.Time) GiveawayStatus {
	if stored == GiveawayStatusDrawn || stored == GiveawayStatusCancelled {
		return stored
	}
	if now.Before(startAt) {
		return GiveawayStatusDraft
	}
	if now.After(endAt) {
		return GiveawayStatusEnded
	}
	return GiveawayStatusActive
}

// EffectiveStatus returns the displayed status of this giveaway at time now.
func (g *Giveaway) EffectiveStatus(now time.Time) GiveawayStatus {
	return EffectiveStatus(g.Status, now, g.StartAt, g.EndAt)
}

// IsOpenForEntry reports whether new entries are accepted at time now.
func (g *Giveaway) IsOpenForEntry(now time.Time) bool {
	return g.EffectiveStatus(now) == GiveawayStatusActive
}
