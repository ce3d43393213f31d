package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by lookups that match no document, regardless of
// the backing store.
var ErrNotFound = errors.New("record not found")

// GiveawayRepository defines the interface for giveaway data operations
type GiveawayRepository interface {
	Create(ctx context.Context, giveaway *models.Giveaway) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Giveaway, error)
	Update(ctx context.Context, giveaway *models.Giveaway) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindAll(ctx context.Context, page, limit int) ([]*models.Giveaway, error)
	// FindDueForDraw returns giveaways whose end boundary passed before
	// cutoff and whose stored status is neither DRAWN nor CANCELLED.
	FindDueForDraw(ctx context.Context, cutoff time.Time) ([]*models.Giveaway, error)
	// MarkDrawn atomically flips the stored status to DRAWN and sets drawnAt,
	// but only if the status is not already DRAWN. It reports whether this
	// caller won the transition.
	MarkDrawn(ctx context.Context, id primitive.ObjectID, drawnAt time.Time) (bool, error)
	// RevertDrawn undoes a DRAWN claim after a failed winner generation,
	// setting the stored status back to ENDED and clearing drawnAt.
	RevertDrawn(ctx context.Context, id primitive.ObjectID) error
	UpdateTotalWinners(ctx context.Context, id primitive.ObjectID, total int) error
	UpdateTotalEntries(ctx context.Context, id primitive.ObjectID, total int) error
}

// PrizeRepository defines the interface for prize data operations
type PrizeRepository interface {
	// ReplaceForGiveaway deletes all prizes of the giveaway and inserts the
	// given batch. Prize lists are never diffed on edit.
	ReplaceForGiveaway(ctx context.Context, giveawayID primitive.ObjectID, prizes []*models.Prize) error
	// FindByGiveawayID returns prizes ordered by displayOrder ascending,
	// ties broken by insertion order.
	FindByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) ([]*models.Prize, error)
	DeleteByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) error
}

// EntryRepository defines the interface for entry data operations
type EntryRepository interface {
	Create(ctx context.Context, entry *models.Entry) error
	FindByGiveawayAndUser(ctx context.Context, giveawayID, userID primitive.ObjectID) (*models.Entry, error)
	FindByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) ([]*models.Entry, error)
	// Delete removes the entry for (giveaway, user) and reports whether a
	// row existed.
	Delete(ctx context.Context, giveawayID, userID primitive.ObjectID) (bool, error)
	CountByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) (int64, error)
	DeleteByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) error
}

// WinnerRepository defines the interface for winner data operations
type WinnerRepository interface {
	CreateMany(ctx context.Context, winners []*models.Winner) error
	FindByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) ([]*models.Winner, error)
	DeleteByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) error
}

// RaffleEventRepository defines the interface for raffle calendar events
type RaffleEventRepository interface {
	Create(ctx context.Context, raffle *models.RaffleEvent) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.RaffleEvent, error)
	Update(ctx context.Context, raffle *models.RaffleEvent) error
}

// RaffleSlotRepository defines the interface for raffle application slots
type RaffleSlotRepository interface {
	CreateMany(ctx context.Context, slots []*models.RaffleSlot) error
	// FindPending returns the user's pending slots for a raffle ordered by
	// insertion id ascending.
	FindPending(ctx context.Context, raffleID, userID primitive.ObjectID) ([]*models.RaffleSlot, error)
	CountByRaffleAndUser(ctx context.Context, raffleID, userID primitive.ObjectID) (int64, error)
	UpdateOutcomes(ctx context.Context, ids []primitive.ObjectID, outcome models.SlotOutcome) error
}

// ActivityRepository defines the interface for the monthly points ledger
type ActivityRepository interface {
	FindByUserAndMonth(ctx context.Context, userID primitive.ObjectID, yearMonth string) (*models.ActivityRecord, error)
	// AddLogin upserts the month record, incrementing loginCount and
	// totalPoints and stamping lastLoginDate with dayKey.
	AddLogin(ctx context.Context, userID primitive.ObjectID, yearMonth, dayKey string, points int) error
	// AddApplication upserts the month record, incrementing applicationCount
	// and totalPoints.
	AddApplication(ctx context.Context, userID primitive.ObjectID, yearMonth string, points int) error
	// SumPointsByUser returns the lifetime ledger balance across all months.
	SumPointsByUser(ctx context.Context, userID primitive.ObjectID) (int, error)
	// DeleteOlderThan removes records whose yearMonth sorts strictly below
	// the cutoff key, returning the number removed.
	DeleteOlderThan(ctx context.Context, cutoffYearMonth string) (int64, error)
}

// MemberRepository defines the interface for member data operations
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
}

// NotificationRepository defines the interface for notification records
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) ([]*models.Notification, error)
}
