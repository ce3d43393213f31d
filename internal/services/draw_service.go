package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// DrawServiceImpl allocates giveaway prizes to entrants. One draw binds each
// selected entry to exactly one prize; a user can win at most once per
// giveaway because selected entries leave the pool.
type DrawServiceImpl struct {
	giveawayRepo repositories.GiveawayRepository
	prizeRepo    repositories.PrizeRepository
	entryRepo    repositories.EntryRepository
	winnerRepo   repositories.WinnerRepository
	notifier     NotificationService
	graceWindow  time.Duration
}

// NewDrawService creates a new DrawServiceImpl
func NewDrawService(
	giveawayRepo repositories.GiveawayRepository,
	prizeRepo repositories.PrizeRepository,
	entryRepo repositories.EntryRepository,
	winnerRepo repositories.WinnerRepository,
	notifier NotificationService,
	graceWindow time.Duration,
) *DrawServiceImpl {
	return &DrawServiceImpl{
		giveawayRepo: giveawayRepo,
		prizeRepo:    prizeRepo,
		entryRepo:    entryRepo,
		winnerRepo:   winnerRepo,
		notifier:     notifier,
		graceWindow:  graceWindow,
	}
}

// ManualDraw runs the draw on behalf of the giveaway's creator
func (s *DrawServiceImpl) ManualDraw(ctx context.Context, giveawayID, requesterID primitive.ObjectID) (int, error) {
	giveaway, err := s.giveawayRepo.FindByID(ctx, giveawayID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return 0, ErrGiveawayNotFound
		}
		slog.Error("ManualDraw: failed to load giveaway", "error", err, "giveawayId", giveawayID)
		return 0, fmt.Errorf("failed to load giveaway: %w", err)
	}

	if giveaway.CreatorID != requesterID {
		return 0, ErrNotCreator
	}
	if giveaway.Status == models.GiveawayStatusDrawn {
		return 0, ErrAlreadyDrawn
	}
	if giveaway.EffectiveStatus(time.Now()) != models.GiveawayStatusEnded {
		return 0, ErrEventNotEnded
	}

	return s.Draw(ctx, giveawayID)
}

// Draw executes the allocation for one giveaway.
//
// The transition to DRAWN is a single conditional update and only the caller
// that wins it proceeds to generate winners, so overlapping manual and
// scheduled triggers cannot both produce a winner set.
func (s *DrawServiceImpl) Draw(ctx context.Context, giveawayID primitive.ObjectID) (int, error) {
	giveaway, err := s.giveawayRepo.FindByID(ctx, giveawayID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return 0, ErrGiveawayNotFound
		}
		return 0, fmt.Errorf("failed to load giveaway: %w", err)
	}

	prizes, err := s.prizeRepo.FindByGiveawayID(ctx, giveawayID)
	if err != nil {
		slog.Error("Draw: failed to load prizes", "error", err, "giveawayId", giveawayID)
		return 0, fmt.Errorf("failed to load prizes: %w", err)
	}
	if len(prizes) == 0 {
		// Misconfigured event; the stored status stays untouched.
		return 0, ErrNoPrizes
	}

	entries, err := s.entryRepo.FindByGiveawayID(ctx, giveawayID)
	if err != nil {
		slog.Error("Draw: failed to load entries", "error", err, "giveawayId", giveawayID)
		return 0, fmt.Errorf("failed to load entries: %w", err)
	}

	claimed, err := s.giveawayRepo.MarkDrawn(ctx, giveawayID, time.Now())
	if err != nil {
		slog.Error("Draw: failed to claim draw", "error", err, "giveawayId", giveawayID)
		return 0, fmt.Errorf("failed to claim draw: %w", err)
	}
	if !claimed {
		return 0, ErrAlreadyDrawn
	}

	// A draw with zero entries is still a successful draw.
	if len(entries) == 0 {
		if err := s.giveawayRepo.UpdateTotalWinners(ctx, giveawayID, 0); err != nil {
			slog.Error("Draw: failed to persist zero-winner result", "error", err, "giveawayId", giveawayID)
		}
		slog.Info("Draw completed with no entries", "giveawayId", giveawayID)
		s.notifier.NotifyDrawCompleted(ctx, giveaway, 0, 0)
		return 0, nil
	}

	total, err := s.generateWinners(ctx, giveaway, prizes, entries)
	if err != nil {
		// The claim is undone so the event stays re-drawable.
		if revertErr := s.giveawayRepo.RevertDrawn(ctx, giveawayID); revertErr != nil {
			slog.Error("Draw: failed to revert claim after error", "error", revertErr, "giveawayId", giveawayID)
		}
		return 0, err
	}

	slog.Info("Draw completed", "giveawayId", giveawayID, "totalWinners", total, "totalEntries", len(entries))
	s.notifier.NotifyDrawCompleted(ctx, giveaway, total, len(entries))
	return total, nil
}

// Redraw re-randomizes an already-drawn giveaway. The previous winner set is
// discarded; a re-draw is never result-idempotent.
func (s *DrawServiceImpl) Redraw(ctx context.Context, giveawayID, requesterID primitive.ObjectID) (int, error) {
	giveaway, err := s.giveawayRepo.FindByID(ctx, giveawayID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return 0, ErrGiveawayNotFound
		}
		return 0, fmt.Errorf("failed to load giveaway: %w", err)
	}

	if giveaway.CreatorID != requesterID {
		return 0, ErrNotCreator
	}
	if giveaway.Status != models.GiveawayStatusDrawn {
		return 0, ErrNotDrawn
	}

	prizes, err := s.prizeRepo.FindByGiveawayID(ctx, giveawayID)
	if err != nil {
		return 0, fmt.Errorf("failed to load prizes: %w", err)
	}
	if len(prizes) == 0 {
		return 0, ErrNoPrizes
	}

	entries, err := s.entryRepo.FindByGiveawayID(ctx, giveawayID)
	if err != nil {
		return 0, fmt.Errorf("failed to load entries: %w", err)
	}

	if len(entries) == 0 {
		if err := s.winnerRepo.DeleteByGiveawayID(ctx, giveawayID); err != nil {
			return 0, fmt.Errorf("failed to delete winners: %w", err)
		}
		if err := s.giveawayRepo.UpdateTotalWinners(ctx, giveawayID, 0); err != nil {
			return 0, fmt.Errorf("failed to persist winner count: %w", err)
		}
		return 0, nil
	}

	total, err := s.generateWinners(ctx, giveaway, prizes, entries)
	if err != nil {
		return 0, err
	}

	slog.Info("Redraw completed", "giveawayId", giveawayID, "totalWinners", total)
	s.notifier.NotifyDrawCompleted(ctx, giveaway, total, len(entries))
	return total, nil
}

// SweepDueEvents draws every giveaway past its end boundary plus the grace
// window. Per-event failures are logged and skipped so one bad event cannot
// stall the sweep.
func (s *DrawServiceImpl) SweepDueEvents(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.graceWindow)
	due, err := s.giveawayRepo.FindDueForDraw(ctx, cutoff)
	if err != nil {
		slog.Error("SweepDueEvents: failed to list due giveaways", "error", err)
		return 0, fmt.Errorf("failed to list due giveaways: %w", err)
	}

	drawn := 0
	for _, giveaway := range due {
		if _, err := s.Draw(ctx, giveaway.ID); err != nil {
			// ErrAlreadyDrawn here means another trigger won the claim,
			// which is the guard doing its job.
			if err == ErrAlreadyDrawn {
				continue
			}
			slog.Error("SweepDueEvents: draw failed", "error", err, "giveawayId", giveaway.ID)
			continue
		}
		drawn++
	}
	return drawn, nil
}

// GetWinners returns the winner set of a giveaway
func (s *DrawServiceImpl) GetWinners(ctx context.Context, giveawayID primitive.ObjectID) ([]*models.Winner, error) {
	winners, err := s.winnerRepo.FindByGiveawayID(ctx, giveawayID)
	if err != nil {
		slog.Error("GetWinners: failed to load winners", "error", err, "giveawayId", giveawayID)
		return nil, fmt.Errorf("failed to load winners: %w", err)
	}
	return winners, nil
}

// generateWinners replaces the giveaway's winner set with a fresh random
// allocation and persists the resulting winner count.
func (s *DrawServiceImpl) generateWinners(
	ctx context.Context,
	giveaway *models.Giveaway,
	prizes []*models.Prize,
	entries []*models.Entry,
) (int, error) {
	if err := s.winnerRepo.DeleteByGiveawayID(ctx, giveaway.ID); err != nil {
		slog.Error("generateWinners: failed to delete previous winners", "error", err, "giveawayId", giveaway.ID)
		return 0, fmt.Errorf("failed to delete previous winners: %w", err)
	}

	winners := allocate(giveaway.ID, prizes, entries)

	if err := s.winnerRepo.CreateMany(ctx, winners); err != nil {
		slog.Error("generateWinners: failed to persist winners", "error", err, "giveawayId", giveaway.ID)
		return 0, fmt.Errorf("failed to persist winners: %w", err)
	}
	if err := s.giveawayRepo.UpdateTotalWinners(ctx, giveaway.ID, len(winners)); err != nil {
		slog.Error("generateWinners: failed to persist winner count", "error", err, "giveawayId", giveaway.ID)
		return 0, fmt.Errorf("failed to persist winner count: %w", err)
	}
	return len(winners), nil
}

// allocate draws entries uniformly at random without replacement, filling
// prizes in displayOrder priority. The pool is local to one invocation;
// removal is swap-and-truncate so each pick is O(1).
func allocate(giveawayID primitive.ObjectID, prizes []*models.Prize, entries []*models.Entry) []*models.Winner {
	pool := make([]*models.Entry, len(entries))
	copy(pool, entries)

	now := time.Now()
	var winners []*models.Winner
	for _, prize := range prizes {
		needed := prize.WinnerCount
		if needed > len(pool) {
			needed = len(pool)
		}

		for i := 0; i < needed; i++ {
			idx := rand.Intn(len(pool))
			entry := pool[idx]
			pool[idx] = pool[len(pool)-1]
			pool = pool[:len(pool)-1]

			winners = append(winners, &models.Winner{
				GiveawayID: giveawayID,
				PrizeID:    prize.ID,
				EntryID:    entry.ID,
				UserID:     entry.UserID,
				Username:   entry.Username,
				WonAt:      now,
			})
		}

		if len(pool) == 0 {
			break
		}
	}
	return winners
}
