package services

import (
	"context"
	"testing"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"github.com/clubhub/giveaway-backend/internal/repositories/memory"
	"github.com/clubhub/giveaway-backend/pkg/notify"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type drawFixture struct {
	giveawayRepo repositories.GiveawayRepository
	prizeRepo    repositories.PrizeRepository
	entryRepo    repositories.EntryRepository
	winnerRepo   repositories.WinnerRepository
	sink         *notify.MockSink
	drawSvc      *DrawServiceImpl
}

func newDrawFixture(t *testing.T) *drawFixture {
	t.Helper()
	f := &drawFixture{
		giveawayRepo: memory.NewGiveawayRepository(),
		prizeRepo:    memory.NewPrizeRepository(),
		entryRepo:    memory.NewEntryRepository(),
		winnerRepo:   memory.NewWinnerRepository(),
		sink:         notify.NewMockSink(),
	}
	notifier := NewNotificationService(memory.NewNotificationRepository(), f.sink)
	f.drawSvc = NewDrawService(f.giveawayRepo, f.prizeRepo, f.entryRepo, f.winnerRepo, notifier, 5*time.Minute)
	return f
}

// endedGiveaway seeds a giveaway whose application window closed an hour ago.
func (f *drawFixture) endedGiveaway(t *testing.T, creatorID primitive.ObjectID, winnerCounts ...int) *models.Giveaway {
	t.Helper()
	ctx := context.Background()

	giveaway := &models.Giveaway{
		Title:     "Autumn Giveaway",
		CreatorID: creatorID,
		StartAt:   time.Now().Add(-24 * time.Hour),
		EndAt:     time.Now().Add(-1 * time.Hour),
		Status:    models.GiveawayStatusActive,
	}
	require.NoError(t, f.giveawayRepo.Create(ctx, giveaway))

	prizes := make([]*models.Prize, 0, len(winnerCounts))
	for i, count := range winnerCounts {
		prizes = append(prizes, &models.Prize{
			Name:         "Prize",
			WinnerCount:  count,
			DisplayOrder: i,
		})
	}
	require.NoError(t, f.prizeRepo.ReplaceForGiveaway(ctx, giveaway.ID, prizes))
	return giveaway
}

func (f *drawFixture) addEntries(t *testing.T, giveawayID primitive.ObjectID, n int) []*models.Entry {
	t.Helper()
	ctx := context.Background()

	entries := make([]*models.Entry, 0, n)
	for i := 0; i < n; i++ {
		entry := &models.Entry{
			GiveawayID: giveawayID,
			UserID:     primitive.NewObjectID(),
			Username:   "user",
			EnteredAt:  time.Now(),
		}
		require.NoError(t, f.entryRepo.Create(ctx, entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestDraw_WinnerCountMatchesPrizeTotal(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	giveaway := f.endedGiveaway(t, primitive.NewObjectID(), 2, 3)
	f.addEntries(t, giveaway.ID, 10)

	total, err := f.drawSvc.Draw(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Equal(t, 5, total)

	winners, err := f.winnerRepo.FindByGiveawayID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Len(t, winners, 5)

	stored, err := f.giveawayRepo.FindByID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Equal(t, models.GiveawayStatusDrawn, stored.Status)
	require.Equal(t, 5, stored.TotalWinners)
	require.NotNil(t, stored.DrawnAt)
}

func TestDraw_FewerEntriesThanPrizes(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	// First prize wants 2 winners, second wants 1, but only 3 entries exist
	// for a total demand of 3. With 2 entries the higher-priority prize is
	// filled first and the remainder goes unawarded.
	giveaway := f.endedGiveaway(t, primitive.NewObjectID(), 2, 1)
	f.addEntries(t, giveaway.ID, 2)

	total, err := f.drawSvc.Draw(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Equal(t, 2, total)

	winners, err := f.winnerRepo.FindByGiveawayID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Len(t, winners, 2)

	prizes, err := f.prizeRepo.FindByGiveawayID(ctx, giveaway.ID)
	require.NoError(t, err)
	for _, w := range winners {
		require.Equal(t, prizes[0].ID, w.PrizeID)
	}
}

func TestDraw_NoUserWinsTwice(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	giveaway := f.endedGiveaway(t, primitive.NewObjectID(), 3, 3, 3)
	f.addEntries(t, giveaway.ID, 9)

	total, err := f.drawSvc.Draw(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Equal(t, 9, total)

	winners, err := f.winnerRepo.FindByGiveawayID(ctx, giveaway.ID)
	require.NoError(t, err)
	seen := make(map[primitive.ObjectID]bool)
	for _, w := range winners {
		require.False(t, seen[w.UserID], "user won more than once")
		seen[w.UserID] = true
	}
}

func TestDraw_ExactDemandScenario(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	giveaway := f.endedGiveaway(t, primitive.NewObjectID(), 2, 1)
	entries := f.addEntries(t, giveaway.ID, 3)

	total, err := f.drawSvc.Draw(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Equal(t, 3, total)

	// Every entrant won exactly once.
	winners, err := f.winnerRepo.FindByGiveawayID(ctx, giveaway.ID)
	require.NoError(t, err)
	wonUsers := make(map[primitive.ObjectID]int)
	for _, w := range winners {
		wonUsers[w.UserID]++
	}
	require.Len(t, wonUsers, len(entries))
	for _, n := range wonUsers {
		require.Equal(t, 1, n)
	}
}

func TestDraw_ZeroEntriesStillCompletes(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	giveaway := f.endedGiveaway(t, primitive.NewObjectID(), 2)

	total, err := f.drawSvc.Draw(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Equal(t, 0, total)

	stored, err := f.giveawayRepo.FindByID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Equal(t, models.GiveawayStatusDrawn, stored.Status)
	require.Equal(t, 0, stored.TotalWinners)

	// The zero-winner draw is still announced.
	require.Len(t, f.sink.Pushed(), 1)
	require.Equal(t, 0, f.sink.Pushed()[0].WinnerCount)
}

func TestDraw_NoPrizesLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	giveaway := f.endedGiveaway(t, primitive.NewObjectID())
	f.addEntries(t, giveaway.ID, 4)

	_, err := f.drawSvc.Draw(ctx, giveaway.ID)
	require.ErrorIs(t, err, ErrNoPrizes)

	stored, err := f.giveawayRepo.FindByID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Equal(t, models.GiveawayStatusActive, stored.Status)
	require.Nil(t, stored.DrawnAt)
	require.Empty(t, f.sink.Pushed())
}

func TestDraw_SecondDrawRejected(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	giveaway := f.endedGiveaway(t, primitive.NewObjectID(), 1)
	f.addEntries(t, giveaway.ID, 5)

	_, err := f.drawSvc.Draw(ctx, giveaway.ID)
	require.NoError(t, err)

	_, err = f.drawSvc.Draw(ctx, giveaway.ID)
	require.ErrorIs(t, err, ErrAlreadyDrawn)

	winners, err := f.winnerRepo.FindByGiveawayID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Len(t, winners, 1)
}

func TestManualDraw_AuthorizationAndState(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	creatorID := primitive.NewObjectID()
	giveaway := f.endedGiveaway(t, creatorID, 1)
	f.addEntries(t, giveaway.ID, 3)

	_, err := f.drawSvc.ManualDraw(ctx, giveaway.ID, primitive.NewObjectID())
	require.ErrorIs(t, err, ErrNotCreator)

	total, err := f.drawSvc.ManualDraw(ctx, giveaway.ID, creatorID)
	require.NoError(t, err)
	require.Equal(t, 1, total)

	_, err = f.drawSvc.ManualDraw(ctx, giveaway.ID, creatorID)
	require.ErrorIs(t, err, ErrAlreadyDrawn)
}

func TestManualDraw_RejectsRunningEvent(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	creatorID := primitive.NewObjectID()

	giveaway := &models.Giveaway{
		Title:     "Still running",
		CreatorID: creatorID,
		StartAt:   time.Now().Add(-1 * time.Hour),
		EndAt:     time.Now().Add(1 * time.Hour),
		Status:    models.GiveawayStatusActive,
	}
	require.NoError(t, f.giveawayRepo.Create(ctx, giveaway))

	_, err := f.drawSvc.ManualDraw(ctx, giveaway.ID, creatorID)
	require.ErrorIs(t, err, ErrEventNotEnded)
}

func TestRedraw_ReplacesWinnerSet(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	creatorID := primitive.NewObjectID()
	giveaway := f.endedGiveaway(t, creatorID, 2)
	f.addEntries(t, giveaway.ID, 20)

	_, err := f.drawSvc.Draw(ctx, giveaway.ID)
	require.NoError(t, err)
	first, err := f.winnerRepo.FindByGiveawayID(ctx, giveaway.ID)
	require.NoError(t, err)

	// Redraw on a giveaway that was never drawn is rejected.
	fresh := f.endedGiveaway(t, creatorID, 1)
	_, err = f.drawSvc.Redraw(ctx, fresh.ID, creatorID)
	require.ErrorIs(t, err, ErrNotDrawn)

	total, err := f.drawSvc.Redraw(ctx, giveaway.ID, creatorID)
	require.NoError(t, err)
	require.Equal(t, 2, total)

	second, err := f.winnerRepo.FindByGiveawayID(ctx, giveaway.ID)
	require.NoError(t, err)
	require.Len(t, second, 2)
	for _, w := range second {
		require.NotContains(t, winnerIDs(first), w.ID)
	}
}

func TestSweepDueEvents_DrawsOnlyPastGrace(t *testing.T) {
	ctx := context.Background()
	f := newDrawFixture(t)
	creatorID := primitive.NewObjectID()

	due := f.endedGiveaway(t, creatorID, 1)
	f.addEntries(t, due.ID, 3)

	// Ended two minutes ago, still inside the five-minute grace window.
	recent := &models.Giveaway{
		Title:     "Just ended",
		CreatorID: creatorID,
		StartAt:   time.Now().Add(-24 * time.Hour),
		EndAt:     time.Now().Add(-2 * time.Minute),
		Status:    models.GiveawayStatusActive,
	}
	require.NoError(t, f.giveawayRepo.Create(ctx, recent))

	drawn, err := f.drawSvc.SweepDueEvents(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, drawn)

	stored, err := f.giveawayRepo.FindByID(ctx, recent.ID)
	require.NoError(t, err)
	require.NotEqual(t, models.GiveawayStatusDrawn, stored.Status)
}

func TestAllocate_PriorityOrder(t *testing.T) {
	giveawayID := primitive.NewObjectID()
	first := &models.Prize{ID: primitive.NewObjectID(), WinnerCount: 1, DisplayOrder: 0}
	second := &models.Prize{ID: primitive.NewObjectID(), WinnerCount: 5, DisplayOrder: 1}
	entries := []*models.Entry{
		{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID()},
	}

	winners := allocate(giveawayID, []*models.Prize{first, second}, entries)
	require.Len(t, winners, 1)
	require.Equal(t, first.ID, winners[0].PrizeID)
}

func winnerIDs(winners []*models.Winner) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(winners))
	for _, w := range winners {
		ids = append(ids, w.ID)
	}
	return ids
}
