package memory

import (
	"context"
	"sync"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationRepository is an in-memory repositories.NotificationRepository
type NotificationRepository struct {
	mu            sync.RWMutex
	notifications []models.Notification
}

// NewNotificationRepository creates a new in-memory NotificationRepository
func NewNotificationRepository() repositories.NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) Create(_ context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if notification.ID.IsZero() {
		notification.ID = primitive.NewObjectID()
	}
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *NotificationRepository) FindByGiveawayID(_ context.Context, giveawayID primitive.ObjectID) ([]*models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found []*models.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].GiveawayID == giveawayID {
			notification := r.notifications[i]
			found = append(found, &notification)
		}
	}
	return found, nil
}
