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

// Compile-time check to ensure RaffleServiceImpl implements RaffleService
var _ RaffleService = (*RaffleServiceImpl)(nil)

// RaffleServiceImpl manages slot-based raffles: users buy lots, each lot is a
// slot, and the organizer later partitions pending slots into won and lost.
type RaffleServiceImpl struct {
	raffleRepo repositories.RaffleEventRepository
	slotRepo   repositories.RaffleSlotRepository
	pointsSvc  PointsService
}

// NewRaffleService creates a new RaffleServiceImpl
func NewRaffleService(
	raffleRepo repositories.RaffleEventRepository,
	slotRepo repositories.RaffleSlotRepository,
	pointsSvc PointsService,
) *RaffleServiceImpl {
	return &RaffleServiceImpl{
		raffleRepo: raffleRepo,
		slotRepo:   slotRepo,
		pointsSvc:  pointsSvc,
	}
}

// CreateRaffle creates a new raffle event
func (s *RaffleServiceImpl) CreateRaffle(ctx context.Context, creatorID primitive.ObjectID, req *models.RaffleRequest) (*models.RaffleEvent, error) {
	if !req.EndAt.After(req.StartAt) {
		return nil, ErrInvalidWindow
	}

	raffle := &models.RaffleEvent{
		CreatorID:   creatorID,
		Title:       req.Title,
		Description: req.Description,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Status:      models.RaffleStatusActive,
	}
	if err := s.raffleRepo.Create(ctx, raffle); err != nil {
		slog.Error("Failed to create raffle", "error", err)
		return nil, fmt.Errorf("failed to create raffle: %w", err)
	}
	return raffle, nil
}

// Apply purchases lotCount slots in a raffle for a user. Each lot becomes its
// own pending slot so the allocation step can decide per lot.
func (s *RaffleServiceImpl) Apply(ctx context.Context, raffleID, userID primitive.ObjectID, lotCount, unitPrice int, memo string) ([]*models.RaffleSlot, error) {
	if lotCount <= 0 {
		return nil, ErrInvalidLots
	}

	raffle, err := s.raffleRepo.FindByID(ctx, raffleID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrRaffleNotFound
		}
		return nil, fmt.Errorf("failed to load raffle: %w", err)
	}

	now := time.Now()
	if raffle.Status != models.RaffleStatusActive || now.Before(raffle.StartAt) || now.After(raffle.EndAt) {
		return nil, ErrEventNotOpen
	}

	existing, err := s.slotRepo.CountByRaffleAndUser(ctx, raffleID, userID)
	if err != nil {
		slog.Error("Apply: failed to count existing slots", "error", err, "raffleId", raffleID, "userId", userID)
		return nil, fmt.Errorf("failed to count existing slots: %w", err)
	}

	slots := make([]*models.RaffleSlot, 0, lotCount)
	for i := 0; i < lotCount; i++ {
		slots = append(slots, &models.RaffleSlot{
			RaffleID:  raffleID,
			UserID:    userID,
			Outcome:   models.SlotOutcomePending,
			UnitPrice: unitPrice,
			Memo:      memo,
			AppliedAt: now,
		})
	}
	if err := s.slotRepo.CreateMany(ctx, slots); err != nil {
		slog.Error("Apply: failed to create slots", "error", err, "raffleId", raffleID, "userId", userID)
		return nil, fmt.Errorf("failed to create slots: %w", err)
	}

	// Participation points are awarded once per raffle, on first purchase.
	// A points failure must not undo the purchase.
	if existing == 0 {
		if err := s.pointsSvc.AwardApplication(ctx, userID, now); err != nil {
			slog.Error("Failed to award application points", "error", err, "raffleId", raffleID, "userId", userID)
		}
	}

	return slots, nil
}

// AllocateOutcome partitions a raffle's pending slots into won and lost. The
// wonCount oldest slots win; every other pending slot loses, so no slot is
// left pending afterwards.
func (s *RaffleServiceImpl) AllocateOutcome(ctx context.Context, raffleID, requesterID, userID primitive.ObjectID, wonCount int) (*models.AllocationResult, error) {
	raffle, err := s.raffleRepo.FindByID(ctx, raffleID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrRaffleNotFound
		}
		return nil, fmt.Errorf("failed to load raffle: %w", err)
	}
	if raffle.CreatorID != requesterID {
		return nil, ErrNotCreator
	}

	pending, err := s.slotRepo.FindPending(ctx, raffleID, userID)
	if err != nil {
		slog.Error("AllocateOutcome: failed to load pending slots", "error", err, "raffleId", raffleID, "userId", userID)
		return nil, fmt.Errorf("failed to load pending slots: %w", err)
	}
	if len(pending) == 0 {
		return nil, ErrNoPendingSlots
	}
	if wonCount < 0 || wonCount > len(pending) {
		return nil, fmt.Errorf("%w: %d pending", ErrWonCountExceedsPending, len(pending))
	}

	result := &models.AllocationResult{
		WonIDs:  make([]string, 0, wonCount),
		LostIDs: make([]string, 0, len(pending)-wonCount),
	}
	wonIDs := make([]primitive.ObjectID, 0, wonCount)
	lostIDs := make([]primitive.ObjectID, 0, len(pending)-wonCount)
	for i, slot := range pending {
		if i < wonCount {
			wonIDs = append(wonIDs, slot.ID)
			result.WonIDs = append(result.WonIDs, slot.ID.Hex())
		} else {
			lostIDs = append(lostIDs, slot.ID)
			result.LostIDs = append(result.LostIDs, slot.ID.Hex())
		}
	}

	if len(wonIDs) > 0 {
		if err := s.slotRepo.UpdateOutcomes(ctx, wonIDs, models.SlotOutcomeWon); err != nil {
			slog.Error("AllocateOutcome: failed to mark won slots", "error", err, "raffleId", raffleID)
			return nil, fmt.Errorf("failed to mark won slots: %w", err)
		}
	}
	if len(lostIDs) > 0 {
		if err := s.slotRepo.UpdateOutcomes(ctx, lostIDs, models.SlotOutcomeLost); err != nil {
			slog.Error("AllocateOutcome: failed to mark lost slots", "error", err, "raffleId", raffleID)
			return nil, fmt.Errorf("failed to mark lost slots: %w", err)
		}
	}

	slog.Info("Raffle outcome allocated", "raffleId", raffleID, "userId", userID, "won", len(wonIDs), "lost", len(lostIDs))
	return result, nil
}
