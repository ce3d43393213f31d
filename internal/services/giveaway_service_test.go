package services

import (
	"context"
	"testing"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"github.com/clubhub/giveaway-backend/internal/repositories/memory"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type giveawayFixture struct {
	giveawayRepo repositories.GiveawayRepository
	prizeRepo    repositories.PrizeRepository
	entryRepo    repositories.EntryRepository
	winnerRepo   repositories.WinnerRepository
	svc          *GiveawayServiceImpl
}

func newGiveawayFixture(t *testing.T) *giveawayFixture {
	t.Helper()
	f := &giveawayFixture{
		giveawayRepo: memory.NewGiveawayRepository(),
		prizeRepo:    memory.NewPrizeRepository(),
		entryRepo:    memory.NewEntryRepository(),
		winnerRepo:   memory.NewWinnerRepository(),
	}
	f.svc = NewGiveawayService(f.giveawayRepo, f.prizeRepo, f.entryRepo, f.winnerRepo)
	return f
}

func validRequest() *models.GiveawayRequest {
	return &models.GiveawayRequest{
		Title:   "Spring Giveaway",
		StartAt: time.Now().Add(-1 * time.Hour),
		EndAt:   time.Now().Add(24 * time.Hour),
		Prizes: []models.PrizeRequest{
			{Name: "Grand prize", WinnerCount: 1, DisplayOrder: 0},
			{Name: "Runner up", WinnerCount: 3, DisplayOrder: 1},
		},
	}
}

func TestCreateGiveaway(t *testing.T) {
	ctx := context.Background()
	f := newGiveawayFixture(t)
	creatorID := primitive.NewObjectID()

	giveaway, err := f.svc.Create(ctx, creatorID, validRequest())
	require.NoError(t, err)
	require.Equal(t, models.GiveawayStatusActive, giveaway.Status)
	require.Equal(t, models.RequirementNone, giveaway.RequirementType)

	prizes, err := f.prizeRepo.FindByGiveawayID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Len(t, prizes, 2)
	require.Equal(t, "Grand prize", prizes[0].Name)
}

func TestCreateGiveaway_Validation(t *testing.T) {
	ctx := context.Background()
	f := newGiveawayFixture(t)
	creatorID := primitive.NewObjectID()

	req := validRequest()
	req.EndAt = req.StartAt
	_, err := f.svc.Create(ctx, creatorID, req)
	require.ErrorIs(t, err, ErrInvalidWindow)

	req = validRequest()
	req.Prizes[0].WinnerCount = 0
	_, err = f.svc.Create(ctx, creatorID, req)
	require.ErrorIs(t, err, ErrInvalidPrize)
}

func TestUpdateGiveaway_ReplacesPrizeBatch(t *testing.T) {
	ctx := context.Background()
	f := newGiveawayFixture(t)
	creatorID := primitive.NewObjectID()

	giveaway, err := f.svc.Create(ctx, creatorID, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Title = "Renamed"
	req.Prizes = []models.PrizeRequest{{Name: "Only prize", WinnerCount: 2, DisplayOrder: 0}}

	updated, err := f.svc.Update(ctx, giveaway.ID, creatorID, req)
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)

	prizes, err := f.prizeRepo.FindByGiveawayID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Len(t, prizes, 1)
	require.Equal(t, "Only prize", prizes[0].Name)
}

func TestUpdateGiveaway_OnlyCreator(t *testing.T) {
	ctx := context.Background()
	f := newGiveawayFixture(t)

	giveaway, err := f.svc.Create(ctx, primitive.NewObjectID(), validRequest())
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, giveaway.ID, primitive.NewObjectID(), validRequest())
	require.ErrorIs(t, err, ErrNotCreator)
}

func TestUpdateGiveaway_DrawnIsImmutable(t *testing.T) {
	ctx := context.Background()
	f := newGiveawayFixture(t)
	creatorID := primitive.NewObjectID()

	giveaway, err := f.svc.Create(ctx, creatorID, validRequest())
	require.NoError(t, err)

	claimed, err := f.giveawayRepo.MarkDrawn(ctx, giveaway.ID, time.Now())
	require.NoError(t, err)
	require.True(t, claimed)

	_, err = f.svc.Update(ctx, giveaway.ID, creatorID, validRequest())
	require.ErrorIs(t, err, ErrAlreadyDrawn)

	err = f.svc.Cancel(ctx, giveaway.ID, creatorID)
	require.ErrorIs(t, err, ErrAlreadyDrawn)
}

func TestCancelGiveaway_Sticky(t *testing.T) {
	ctx := context.Background()
	f := newGiveawayFixture(t)
	creatorID := primitive.NewObjectID()

	giveaway, err := f.svc.Create(ctx, creatorID, validRequest())
	require.NoError(t, err)
	require.NoError(t, f.svc.Cancel(ctx, giveaway.ID, creatorID))

	detail, err := f.svc.Get(ctx, giveaway.ID, time.Now())
	require.NoError(t, err)
	require.Equal(t, models.GiveawayStatusCancelled, detail.EffectiveStatus)

	// Cancelled does not flip back to a positional status after the window.
	detail, err = f.svc.Get(ctx, giveaway.ID, time.Now().Add(48*time.Hour))
	require.NoError(t, err)
	require.Equal(t, models.GiveawayStatusCancelled, detail.EffectiveStatus)
}

func TestDeleteGiveaway_Cascades(t *testing.T) {
	ctx := context.Background()
	f := newGiveawayFixture(t)
	creatorID := primitive.NewObjectID()

	giveaway, err := f.svc.Create(ctx, creatorID, validRequest())
	require.NoError(t, err)
	require.NoError(t, f.entryRepo.Create(ctx, &models.Entry{
		GiveawayID: giveaway.ID,
		UserID:     primitive.NewObjectID(),
	}))

	require.NoError(t, f.svc.Delete(ctx, giveaway.ID, creatorID))

	_, err = f.svc.Get(ctx, giveaway.ID, time.Now())
	require.ErrorIs(t, err, ErrGiveawayNotFound)

	count, err := f.entryRepo.CountByGiveawayID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, count)

	prizes, err := f.prizeRepo.FindByGiveawayID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Empty(t, prizes)
}

func TestGetGiveaway_DerivesDisplayStatus(t *testing.T) {
	ctx := context.Background()
	f := newGiveawayFixture(t)
	creatorID := primitive.NewObjectID()

	req := validRequest()
	giveaway, err := f.svc.Create(ctx, creatorID, req)
	require.NoError(t, err)

	detail, err := f.svc.Get(ctx, giveaway.ID, req.StartAt.Add(-2*time.Hour))
	require.NoError(t, err)
	require.Equal(t, models.GiveawayStatusDraft, detail.EffectiveStatus)

	detail, err = f.svc.Get(ctx, giveaway.ID, req.StartAt.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, models.GiveawayStatusActive, detail.EffectiveStatus)

	detail, err = f.svc.Get(ctx, giveaway.ID, req.EndAt.Add(time.Minute))
	require.NoError(t, err)
	require.Equal(t, models.GiveawayStatusEnded, detail.EffectiveStatus)

	// The stored status is untouched by reads.
	stored, err := f.giveawayRepo.FindByID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Equal(t, models.GiveawayStatusActive, stored.Status)
}

func TestCreateGiveaway_RequirementNormalization(t *testing.T) {
	ctx := context.Background()
	f := newGiveawayFixture(t)

	req := validRequest()
	req.MinPoints = 5
	req.RequirementType = models.RequirementCurrentMonth
	req.RequirementMessage = "earn more points"

	giveaway, err := f.svc.Create(ctx, primitive.NewObjectID(), req)
	require.NoError(t, err)
	require.Equal(t, models.RequirementCurrentMonth, giveaway.RequirementType)

	// A threshold of zero disables the requirement entirely.
	req = validRequest()
	req.MinPoints = 0
	req.RequirementType = models.RequirementAllTime

	giveaway, err = f.svc.Create(ctx, primitive.NewObjectID(), req)
	require.NoError(t, err)
	require.Equal(t, models.RequirementNone, giveaway.RequirementType)
}
