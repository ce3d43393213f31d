package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityRecord represents one user's activity points for one calendar
// month. TotalPoints is the authoritative ledger balance for that month and
// is only ever incremented; old records are removed by retention cleanup.
type ActivityRecord struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	YearMonth        string             `bson:"yearMonth" json:"yearMonth"` // "2006-01"
	LoginCount       int                `bson:"loginCount" json:"loginCount"`
	ApplicationCount int                `bson:"applicationCount" json:"applicationCount"`
	TotalPoints      int                `bson:"totalPoints" json:"totalPoints"`
	LastLoginDate    string             `bson:"lastLoginDate,omitempty" json:"lastLoginDate,omitempty"` // "2006-01-02"
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EligibilityResult represents the outcome of an eligibility check against
// the points ledger.
type EligibilityResult struct {
	Eligible      bool   `json:"eligible"`
	CurrentPoints int    `json:"currentPoints"`
	Message       string `json:"message,omitempty"`
}
