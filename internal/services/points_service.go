package services

import (
	"context"
	"fmt"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"github.com/clubhub/giveaway-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure PointsServiceImpl implements PointsService
var _ PointsService = (*PointsServiceImpl)(nil)

// PointsServiceImpl maintains the per-user monthly activity ledger and
// answers eligibility questions against it.
type PointsServiceImpl struct {
	activityRepo     repositories.ActivityRepository
	loginAward       int
	applicationAward int
	retentionMonths  int
}

// NewPointsService creates a new PointsServiceImpl
func NewPointsService(activityRepo repositories.ActivityRepository, loginAward, applicationAward, retentionMonths int) *PointsServiceImpl {
	return &PointsServiceImpl{
		activityRepo:     activityRepo,
		loginAward:       loginAward,
		applicationAward: applicationAward,
		retentionMonths:  retentionMonths,
	}
}

// AwardLogin grants login points at most once per calendar day
func (s *PointsServiceImpl) AwardLogin(ctx context.Context, userID primitive.ObjectID, now time.Time) error {
	yearMonth := utils.MonthKey(now)

	record, err := s.activityRepo.FindByUserAndMonth(ctx, userID, yearMonth)
	if err != nil && err != repositories.ErrNotFound {
		return fmt.Errorf("failed to load activity record: %w", err)
	}
	if record != nil && utils.SameDay(record.LastLoginDate, now) {
		// Already credited today.
		return nil
	}

	if err := s.activityRepo.AddLogin(ctx, userID, yearMonth, utils.DayKey(now), s.loginAward); err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}

// AwardApplication grants points for a raffle application
func (s *PointsServiceImpl) AwardApplication(ctx context.Context, userID primitive.ObjectID, now time.Time) error {
	if err := s.activityRepo.AddApplication(ctx, userID, utils.MonthKey(now), s.applicationAward); err != nil {
		return fmt.Errorf("failed to record application: %w", err)
	}
	return nil
}

// CheckEligibility evaluates a points requirement against the ledger. Any
// ledger read failure yields an ineligible result alongside the error, so a
// broken ledger never waves users through.
func (s *PointsServiceImpl) CheckEligibility(ctx context.Context, userID primitive.ObjectID, minPoints int, reqType models.RequirementType, shortfallMessage string) (*models.EligibilityResult, error) {
	if reqType == "" || reqType == models.RequirementNone || minPoints <= 0 {
		return &models.EligibilityResult{Eligible: true}, nil
	}

	now := time.Now()
	var points int
	switch reqType {
	case models.RequirementCurrentMonth:
		p, err := s.monthPoints(ctx, userID, utils.MonthKey(now))
		if err != nil {
			return &models.EligibilityResult{Eligible: false}, err
		}
		points = p
	case models.RequirementPreviousMonth:
		p, err := s.monthPoints(ctx, userID, utils.PreviousMonthKey(now))
		if err != nil {
			return &models.EligibilityResult{Eligible: false}, err
		}
		points = p
	case models.RequirementAllTime:
		total, err := s.activityRepo.SumPointsByUser(ctx, userID)
		if err != nil {
			slog.Error("Failed to sum points", "error", err, "userId", userID)
			return &models.EligibilityResult{Eligible: false}, fmt.Errorf("failed to sum points: %w", err)
		}
		points = total
	default:
		return &models.EligibilityResult{Eligible: false}, fmt.Errorf("unknown requirement type: %s", reqType)
	}

	result := &models.EligibilityResult{
		Eligible:      points >= minPoints,
		CurrentPoints: points,
	}
	if !result.Eligible {
		result.Message = shortfallMessage
	}
	return result, nil
}

func (s *PointsServiceImpl) monthPoints(ctx context.Context, userID primitive.ObjectID, yearMonth string) (int, error) {
	record, err := s.activityRepo.FindByUserAndMonth(ctx, userID, yearMonth)
	if err != nil {
		if err == repositories.ErrNotFound {
			return 0, nil
		}
		slog.Error("Failed to load activity record", "error", err, "userId", userID, "yearMonth", yearMonth)
		return 0, fmt.Errorf("failed to load activity record: %w", err)
	}
	return record.TotalPoints, nil
}

// CleanupOldRecords deletes ledger rows older than the retention window
func (s *PointsServiceImpl) CleanupOldRecords(ctx context.Context) (int64, error) {
	cutoff := utils.MonthKey(time.Now().AddDate(0, -s.retentionMonths, 0))
	deleted, err := s.activityRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old activity records: %w", err)
	}
	if deleted > 0 {
		slog.Info("Cleaned up old activity records", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}
