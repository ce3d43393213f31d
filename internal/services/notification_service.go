package services

import (
	"context"
	"fmt"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"github.com/clubhub/giveaway-backend/pkg/notify"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure NotificationServiceImpl implements NotificationService
var _ NotificationService = (*NotificationServiceImpl)(nil)

// NotificationServiceImpl pushes draw summaries to the configured sink and
// records the attempt. Delivery is best effort; a failed push never fails
// the draw that triggered it.
type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	sink             notify.Sink
}

// NewNotificationService creates a new NotificationServiceImpl
func NewNotificationService(notificationRepo repositories.NotificationRepository, sink notify.Sink) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		sink:             sink,
	}
}

// NotifyDrawCompleted announces a completed draw
func (s *NotificationServiceImpl) NotifyDrawCompleted(ctx context.Context, giveaway *models.Giveaway, winnerCount, entryCount int) {
	summary := notify.DrawSummary{
		GiveawayID:  giveaway.ID.Hex(),
		Title:       giveaway.Title,
		WinnerCount: winnerCount,
		EntryCount:  entryCount,
	}

	record := &models.Notification{
		GiveawayID:  giveaway.ID,
		Title:       giveaway.Title,
		WinnerCount: winnerCount,
		EntryCount:  entryCount,
		Status:      models.NotificationStatusSent,
	}

	if err := s.sink.PushDrawSummary(summary); err != nil {
		slog.Error("Failed to push draw summary", "error", err, "giveawayId", giveaway.ID)
		record.Status = models.NotificationStatusFailed
		record.Error = err.Error()
	}

	if err := s.notificationRepo.Create(ctx, record); err != nil {
		slog.Error("Failed to record notification", "error", err, "giveawayId", giveaway.ID)
	}
}

// ListForGiveaway returns the recorded notification attempts for a giveaway
func (s *NotificationServiceImpl) ListForGiveaway(ctx context.Context, giveawayID primitive.ObjectID) ([]*models.Notification, error) {
	notifications, err := s.notificationRepo.FindByGiveawayID(ctx, giveawayID)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}
	return notifications, nil
}
