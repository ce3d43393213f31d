package services

import (
	"context"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawService defines the interface for draw-related operations
type DrawService interface {
	// ManualDraw runs the draw for a giveaway on behalf of its creator.
	// The giveaway must be past its end boundary and not yet drawn.
	ManualDraw(ctx context.Context, giveawayID, requesterID primitive.ObjectID) (int, error)

	// Redraw discards the winner set of an already-drawn giveaway and
	// re-randomizes it. This is a conscious re-randomization, never a retry.
	Redraw(ctx context.Context, giveawayID, requesterID primitive.ObjectID) (int, error)

	// Draw executes the allocation for one giveaway without authorization
	// checks. Used by the scheduler sweep.
	Draw(ctx context.Context, giveawayID primitive.ObjectID) (int, error)

	// SweepDueEvents draws every giveaway whose end boundary passed more
	// than the grace window ago, returning the number drawn.
	SweepDueEvents(ctx context.Context) (int, error)

	// GetWinners returns the winner set of a giveaway.
	GetWinners(ctx context.Context, giveawayID primitive.ObjectID) ([]*models.Winner, error)
}

// GiveawayService defines the interface for giveaway lifecycle operations
type GiveawayService interface {
	Create(ctx context.Context, creatorID primitive.ObjectID, req *models.GiveawayRequest) (*models.Giveaway, error)
	Update(ctx context.Context, giveawayID, requesterID primitive.ObjectID, req *models.GiveawayRequest) (*models.Giveaway, error)
	Delete(ctx context.Context, giveawayID, requesterID primitive.ObjectID) error
	Cancel(ctx context.Context, giveawayID, requesterID primitive.ObjectID) error
	Get(ctx context.Context, giveawayID primitive.ObjectID, now time.Time) (*models.GiveawayDetail, error)
	List(ctx context.Context, page, limit int, now time.Time) ([]*models.GiveawayDetail, error)
}

// EntryService defines the interface for giveaway applications
type EntryService interface {
	Enter(ctx context.Context, giveawayID, userID primitive.ObjectID, username string) (*models.Entry, error)
	Cancel(ctx context.Context, giveawayID, userID primitive.ObjectID) error
}

// RaffleService defines the interface for raffle applications and outcomes
type RaffleService interface {
	CreateRaffle(ctx context.Context, creatorID primitive.ObjectID, req *models.RaffleRequest) (*models.RaffleEvent, error)
	Apply(ctx context.Context, raffleID, userID primitive.ObjectID, lotCount, unitPrice int, memo string) ([]*models.RaffleSlot, error)
	AllocateOutcome(ctx context.Context, raffleID, requesterID, userID primitive.ObjectID, wonCount int) (*models.AllocationResult, error)
}

// PointsService defines the interface for the activity points ledger
type PointsService interface {
	// AwardLogin credits the daily login award at most once per calendar day.
	AwardLogin(ctx context.Context, userID primitive.ObjectID, now time.Time) error
	AwardApplication(ctx context.Context, userID primitive.ObjectID, now time.Time) error
	CheckEligibility(ctx context.Context, userID primitive.ObjectID, minPoints int, reqType models.RequirementType, shortfallMessage string) (*models.EligibilityResult, error)
	CleanupOldRecords(ctx context.Context) (int64, error)
}

// NotificationService defines the interface for draw-summary notifications
type NotificationService interface {
	// NotifyDrawCompleted is best effort: failures are recorded and logged,
	// never returned to the draw path.
	NotifyDrawCompleted(ctx context.Context, giveaway *models.Giveaway, winnerCount, entryCount int)

	// ListForGiveaway returns the recorded notification attempts for one
	// giveaway, newest first.
	ListForGiveaway(ctx context.Context, giveawayID primitive.ObjectID) ([]*models.Notification, error)
}

// AuthService defines the interface for member registration and login
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Member, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GetMember(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
}
