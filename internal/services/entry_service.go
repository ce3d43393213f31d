package services

import (
	"context"
	"fmt"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure EntryServiceImpl implements EntryService
var _ EntryService = (*EntryServiceImpl)(nil)

// EntryServiceImpl records giveaway applications, one per (giveaway, user).
//
// The event's minimum-points requirement is declared on the event but not
// enforced here; clients pre-check it through the points service. Wiring the
// gate into this path is an open product question, not a bug.
type EntryServiceImpl struct {
	giveawayRepo repositories.GiveawayRepository
	entryRepo    repositories.EntryRepository
}

// NewEntryService creates a new EntryServiceImpl
func NewEntryService(
	giveawayRepo repositories.GiveawayRepository,
	entryRepo repositories.EntryRepository,
) *EntryServiceImpl {
	return &EntryServiceImpl{
		giveawayRepo: giveawayRepo,
		entryRepo:    entryRepo,
	}
}

// Enter applies a user to a giveaway
func (s *EntryServiceImpl) Enter(ctx context.Context, giveawayID, userID primitive.ObjectID, username string) (*models.Entry, error) {
	giveaway, err := s.giveawayRepo.FindByID(ctx, giveawayID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrGiveawayNotFound
		}
		slog.Error("Enter: failed to load giveaway", "error", err, "giveawayId", giveawayID)
		return nil, fmt.Errorf("failed to load giveaway: %w", err)
	}

	now := time.Now()
	if !giveaway.IsOpenForEntry(now) {
		return nil, ErrEventNotOpen
	}

	_, err = s.entryRepo.FindByGiveawayAndUser(ctx, giveawayID, userID)
	if err == nil {
		return nil, ErrAlreadyEntered
	}
	if err != repositories.ErrNotFound {
		slog.Error("Enter: failed to check existing entry", "error", err, "giveawayId", giveawayID, "userId", userID)
		return nil, fmt.Errorf("failed to check existing entry: %w", err)
	}

	entry := &models.Entry{
		GiveawayID: giveawayID,
		UserID:     userID,
		Username:   username,
		EnteredAt:  now,
	}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		slog.Error("Enter: failed to create entry", "error", err, "giveawayId", giveawayID, "userId", userID)
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	s.recomputeEntryCount(ctx, giveawayID)
	return entry, nil
}

// Cancel withdraws a user's entry while the giveaway is still open
func (s *EntryServiceImpl) Cancel(ctx context.Context, giveawayID, userID primitive.ObjectID) error {
	giveaway, err := s.giveawayRepo.FindByID(ctx, giveawayID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrGiveawayNotFound
		}
		return fmt.Errorf("failed to load giveaway: %w", err)
	}

	if !giveaway.IsOpenForEntry(time.Now()) {
		return ErrEventNotOpen
	}

	deleted, err := s.entryRepo.Delete(ctx, giveawayID, userID)
	if err != nil {
		slog.Error("Cancel: failed to delete entry", "error", err, "giveawayId", giveawayID, "userId", userID)
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if !deleted {
		return ErrEntryNotFound
	}

	s.recomputeEntryCount(ctx, giveawayID)
	return nil
}

// recomputeEntryCount refreshes the denormalized count from the source of
// truth. Counting beats incrementing here: it cannot drift.
func (s *EntryServiceImpl) recomputeEntryCount(ctx context.Context, giveawayID primitive.ObjectID) {
	count, err := s.entryRepo.CountByGiveawayID(ctx, giveawayID)
	if err != nil {
		slog.Error("Failed to recount entries", "error", err, "giveawayId", giveawayID)
		return
	}
	if err := s.giveawayRepo.UpdateTotalEntries(ctx, giveawayID, int(count)); err != nil {
		slog.Error("Failed to store entry count", "error", err, "giveawayId", giveawayID)
	}
}
