package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"github.com/clubhub/giveaway-backend/internal/repositories/memory"
	"github.com/clubhub/giveaway-backend/internal/utils"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPointsFixture(t *testing.T) (repositories.ActivityRepository, *PointsServiceImpl) {
	t.Helper()
	repo := memory.NewActivityRepository()
	return repo, NewPointsService(repo, 1, 3, 24)
}

func TestAwardLogin_OncePerDay(t *testing.T) {
	ctx := context.Background()
	repo, svc := newPointsFixture(t)
	userID := primitive.NewObjectID()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, svc.AwardLogin(ctx, userID, now))
	// Second login the same day is a no-op.
	require.NoError(t, svc.AwardLogin(ctx, userID, now.Add(4*time.Hour)))

	record, err := repo.FindByUserAndMonth(ctx, userID, "2026-09")
	require.NoError(t, err)
	require.Equal(t, 1, record.TotalPoints)
	require.Equal(t, 1, record.LoginCount)

	// The next day earns again.
	require.NoError(t, svc.AwardLogin(ctx, userID, now.AddDate(0, 0, 1)))
	record, err = repo.FindByUserAndMonth(ctx, userID, "2026-09")
	require.NoError(t, err)
	require.Equal(t, 2, record.TotalPoints)
	require.Equal(t, 2, record.LoginCount)
}

func TestAwardLogin_MonthRollover(t *testing.T) {
	ctx := context.Background()
	repo, svc := newPointsFixture(t)
	userID := primitive.NewObjectID()

	require.NoError(t, svc.AwardLogin(ctx, userID, time.Date(2026, 8, 31, 23, 0, 0, 0, time.UTC)))
	require.NoError(t, svc.AwardLogin(ctx, userID, time.Date(2026, 9, 1, 1, 0, 0, 0, time.UTC)))

	aug, err := repo.FindByUserAndMonth(ctx, userID, "2026-08")
	require.NoError(t, err)
	require.Equal(t, 1, aug.TotalPoints)

	sep, err := repo.FindByUserAndMonth(ctx, userID, "2026-09")
	require.NoError(t, err)
	require.Equal(t, 1, sep.TotalPoints)
}

func TestCheckEligibility_NoRequirement(t *testing.T) {
	ctx := context.Background()
	_, svc := newPointsFixture(t)

	result, err := svc.CheckEligibility(ctx, primitive.NewObjectID(), 0, models.RequirementNone, "")
	require.NoError(t, err)
	require.True(t, result.Eligible)

	// A positive threshold with no requirement type still passes.
	result, err = svc.CheckEligibility(ctx, primitive.NewObjectID(), 10, "", "")
	require.NoError(t, err)
	require.True(t, result.Eligible)
}

func TestCheckEligibility_CurrentMonth(t *testing.T) {
	ctx := context.Background()
	_, svc := newPointsFixture(t)
	userID := primitive.NewObjectID()
	now := time.Now()

	require.NoError(t, svc.AwardApplication(ctx, userID, now))

	result, err := svc.CheckEligibility(ctx, userID, 3, models.RequirementCurrentMonth, "need 3 points")
	require.NoError(t, err)
	require.True(t, result.Eligible)
	require.Equal(t, 3, result.CurrentPoints)

	result, err = svc.CheckEligibility(ctx, userID, 5, models.RequirementCurrentMonth, "need 5 points")
	require.NoError(t, err)
	require.False(t, result.Eligible)
	require.Equal(t, "need 5 points", result.Message)
}

func TestCheckEligibility_PreviousMonthAndAllTime(t *testing.T) {
	ctx := context.Background()
	_, svc := newPointsFixture(t)
	userID := primitive.NewObjectID()
	now := time.Now()
	lastMonth := now.AddDate(0, -1, 0)

	require.NoError(t, svc.AwardApplication(ctx, userID, lastMonth))
	require.NoError(t, svc.AwardLogin(ctx, userID, now))

	result, err := svc.CheckEligibility(ctx, userID, 3, models.RequirementPreviousMonth, "")
	require.NoError(t, err)
	require.True(t, result.Eligible)
	require.Equal(t, 3, result.CurrentPoints)

	result, err = svc.CheckEligibility(ctx, userID, 4, models.RequirementAllTime, "")
	require.NoError(t, err)
	require.True(t, result.Eligible)
	require.Equal(t, 4, result.CurrentPoints)
}

func TestCheckEligibility_MissingRecordCountsAsZero(t *testing.T) {
	ctx := context.Background()
	_, svc := newPointsFixture(t)

	result, err := svc.CheckEligibility(ctx, primitive.NewObjectID(), 1, models.RequirementCurrentMonth, "no points yet")
	require.NoError(t, err)
	require.False(t, result.Eligible)
	require.Equal(t, 0, result.CurrentPoints)
}

type failingActivityRepo struct {
	repositories.ActivityRepository
}

func (failingActivityRepo) FindByUserAndMonth(context.Context, primitive.ObjectID, string) (*models.ActivityRecord, error) {
	return nil, errors.New("ledger unavailable")
}

func TestCheckEligibility_FailsClosed(t *testing.T) {
	ctx := context.Background()
	svc := NewPointsService(failingActivityRepo{}, 1, 3, 24)

	result, err := svc.CheckEligibility(ctx, primitive.NewObjectID(), 1, models.RequirementCurrentMonth, "")
	require.Error(t, err)
	require.NotNil(t, result)
	require.False(t, result.Eligible)
}

func TestCleanupOldRecords(t *testing.T) {
	ctx := context.Background()
	repo, svc := newPointsFixture(t)
	userID := primitive.NewObjectID()
	now := time.Now()

	require.NoError(t, svc.AwardApplication(ctx, userID, now.AddDate(0, -30, 0)))
	require.NoError(t, svc.AwardApplication(ctx, userID, now))

	deleted, err := svc.CleanupOldRecords(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	_, err = repo.FindByUserAndMonth(ctx, userID, utils.MonthKey(now.AddDate(0, -30, 0)))
	require.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = repo.FindByUserAndMonth(ctx, userID, utils.MonthKey(now))
	require.NoError(t, err)
}
