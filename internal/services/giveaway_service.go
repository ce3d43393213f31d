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

// Compile-time check to ensure GiveawayServiceImpl implements GiveawayService
var _ GiveawayService = (*GiveawayServiceImpl)(nil)

// GiveawayServiceImpl manages the giveaway lifecycle. Events are stored
// ACTIVE at creation; the displayed status is always derived from the stored
// status and the clock, never written back on reads.
type GiveawayServiceImpl struct {
	giveawayRepo repositories.GiveawayRepository
	prizeRepo    repositories.PrizeRepository
	entryRepo    repositories.EntryRepository
	winnerRepo   repositories.WinnerRepository
}

// NewGiveawayService creates a new GiveawayServiceImpl
func NewGiveawayService(
	giveawayRepo repositories.GiveawayRepository,
	prizeRepo repositories.PrizeRepository,
	entryRepo repositories.EntryRepository,
	winnerRepo repositories.WinnerRepository,
) *GiveawayServiceImpl {
	return &GiveawayServiceImpl{
		giveawayRepo: giveawayRepo,
		prizeRepo:    prizeRepo,
		entryRepo:    entryRepo,
		winnerRepo:   winnerRepo,
	}
}

// Create creates a giveaway with its prize batch
func (s *GiveawayServiceImpl) Create(ctx context.Context, creatorID primitive.ObjectID, req *models.GiveawayRequest) (*models.Giveaway, error) {
	if err := validateGiveawayRequest(req); err != nil {
		return nil, err
	}

	giveaway := &models.Giveaway{
		Title:              req.Title,
		Description:        req.Description,
		ImageURL:           req.ImageURL,
		CreatorID:          creatorID,
		ShowCreator:        req.ShowCreator,
		StartAt:            req.StartAt,
		EndAt:              req.EndAt,
		Status:             models.GiveawayStatusActive,
		MinPoints:          req.MinPoints,
		RequirementType:    normalizeRequirement(req),
		RequirementMessage: req.RequirementMessage,
	}

	if err := s.giveawayRepo.Create(ctx, giveaway); err != nil {
		slog.Error("Create: failed to create giveaway", "error", err)
		return nil, fmt.Errorf("failed to create giveaway: %w", err)
	}

	if err := s.prizeRepo.ReplaceForGiveaway(ctx, giveaway.ID, prizesFromRequest(req)); err != nil {
		slog.Error("Create: failed to create prizes", "error", err, "giveawayId", giveaway.ID)
		return nil, fmt.Errorf("failed to create prizes: %w", err)
	}

	slog.Info("Giveaway created", "giveawayId", giveaway.ID, "creatorId", creatorID, "title", req.Title)
	return giveaway, nil
}

// Update edits a giveaway and replaces its entire prize batch
func (s *GiveawayServiceImpl) Update(ctx context.Context, giveawayID, requesterID primitive.ObjectID, req *models.GiveawayRequest) (*models.Giveaway, error) {
	if err := validateGiveawayRequest(req); err != nil {
		return nil, err
	}

	giveaway, err := s.loadOwned(ctx, giveawayID, requesterID)
	if err != nil {
		return nil, err
	}
	if giveaway.Status == models.GiveawayStatusDrawn {
		return nil, ErrAlreadyDrawn
	}

	giveaway.Title = req.Title
	giveaway.Description = req.Description
	giveaway.ImageURL = req.ImageURL
	giveaway.ShowCreator = req.ShowCreator
	giveaway.StartAt = req.StartAt
	giveaway.EndAt = req.EndAt
	giveaway.MinPoints = req.MinPoints
	giveaway.RequirementType = normalizeRequirement(req)
	giveaway.RequirementMessage = req.RequirementMessage

	if err := s.giveawayRepo.Update(ctx, giveaway); err != nil {
		slog.Error("Update: failed to update giveaway", "error", err, "giveawayId", giveawayID)
		return nil, fmt.Errorf("failed to update giveaway: %w", err)
	}

	// Prize edits are full delete-then-reinsert, never diffed.
	if err := s.prizeRepo.ReplaceForGiveaway(ctx, giveawayID, prizesFromRequest(req)); err != nil {
		slog.Error("Update: failed to replace prizes", "error", err, "giveawayId", giveawayID)
		return nil, fmt.Errorf("failed to replace prizes: %w", err)
	}

	return giveaway, nil
}

// Delete removes a giveaway and cascades to its prizes, entries and winners
func (s *GiveawayServiceImpl) Delete(ctx context.Context, giveawayID, requesterID primitive.ObjectID) error {
	if _, err := s.loadOwned(ctx, giveawayID, requesterID); err != nil {
		return err
	}

	if err := s.prizeRepo.DeleteByGiveawayID(ctx, giveawayID); err != nil {
		return fmt.Errorf("failed to delete prizes: %w", err)
	}
	if err := s.entryRepo.DeleteByGiveawayID(ctx, giveawayID); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}
	if err := s.winnerRepo.DeleteByGiveawayID(ctx, giveawayID); err != nil {
		return fmt.Errorf("failed to delete winners: %w", err)
	}
	if err := s.giveawayRepo.Delete(ctx, giveawayID); err != nil {
		slog.Error("Delete: failed to delete giveaway", "error", err, "giveawayId", giveawayID)
		return fmt.Errorf("failed to delete giveaway: %w", err)
	}

	slog.Info("Giveaway deleted", "giveawayId", giveawayID, "requesterId", requesterID)
	return nil
}

// Cancel moves a giveaway to its sticky CANCELLED state
func (s *GiveawayServiceImpl) Cancel(ctx context.Context, giveawayID, requesterID primitive.ObjectID) error {
	giveaway, err := s.loadOwned(ctx, giveawayID, requesterID)
	if err != nil {
		return err
	}
	if giveaway.Status == models.GiveawayStatusDrawn {
		return ErrAlreadyDrawn
	}

	giveaway.Status = models.GiveawayStatusCancelled
	if err := s.giveawayRepo.Update(ctx, giveaway); err != nil {
		return fmt.Errorf("failed to cancel giveaway: %w", err)
	}
	return nil
}

// Get returns one giveaway with its derived display status and prizes
func (s *GiveawayServiceImpl) Get(ctx context.Context, giveawayID primitive.ObjectID, now time.Time) (*models.GiveawayDetail, error) {
	giveaway, err := s.giveawayRepo.FindByID(ctx, giveawayID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrGiveawayNotFound
		}
		return nil, fmt.Errorf("failed to load giveaway: %w", err)
	}

	prizes, err := s.prizeRepo.FindByGiveawayID(ctx, giveawayID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prizes: %w", err)
	}

	return &models.GiveawayDetail{
		Giveaway:        giveaway,
		EffectiveStatus: giveaway.EffectiveStatus(now),
		Prizes:          prizes,
	}, nil
}

// List returns giveaways with derived display statuses
func (s *GiveawayServiceImpl) List(ctx context.Context, page, limit int, now time.Time) ([]*models.GiveawayDetail, error) {
	giveaways, err := s.giveawayRepo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list giveaways: %w", err)
	}

	details := make([]*models.GiveawayDetail, 0, len(giveaways))
	for _, giveaway := range giveaways {
		details = append(details, &models.GiveawayDetail{
			Giveaway:        giveaway,
			EffectiveStatus: giveaway.EffectiveStatus(now),
		})
	}
	return details, nil
}

func (s *GiveawayServiceImpl) loadOwned(ctx context.Context, giveawayID, requesterID primitive.ObjectID) (*models.Giveaway, error) {
	giveaway, err := s.giveawayRepo.FindByID(ctx, giveawayID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrGiveawayNotFound
		}
		return nil, fmt.Errorf("failed to load giveaway: %w", err)
	}
	if giveaway.CreatorID != requesterID {
		return nil, ErrNotCreator
	}
	return giveaway, nil
}

func validateGiveawayRequest(req *models.GiveawayRequest) error {
	if !req.EndAt.After(req.StartAt) {
		return ErrInvalidWindow
	}
	for _, prize := range req.Prizes {
		if prize.WinnerCount < 1 {
			return ErrInvalidPrize
		}
	}
	return nil
}

func normalizeRequirement(req *models.GiveawayRequest) models.RequirementType {
	if req.RequirementType == "" || req.MinPoints <= 0 {
		return models.RequirementNone
	}
	return req.RequirementType
}

func prizesFromRequest(req *models.GiveawayRequest) []*models.Prize {
	prizes := make([]*models.Prize, 0, len(req.Prizes))
	for _, p := range req.Prizes {
		prizes = append(prizes, &models.Prize{
			Name:         p.Name,
			Description:  p.Description,
			ImageURL:     p.ImageURL,
			WinnerCount:  p.WinnerCount,
			DisplayOrder: p.DisplayOrder,
		})
	}
	return prizes
}
