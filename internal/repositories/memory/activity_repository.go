package memory

import (
	"context"
	"sync"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type activityKey struct {
	userID    primitive.ObjectID
	yearMonth string
}

// ActivityRepository is an in-memory repositories.ActivityRepository
type ActivityRepository struct {
	mu      sync.RWMutex
	records map[activityKey]models.ActivityRecord
}

// NewActivityRepository creates a new in-memory ActivityRepository
func NewActivityRepository() repositories.ActivityRepository {
	return &ActivityRepository{
		records: make(map[activityKey]models.ActivityRecord),
	}
}

func (r *ActivityRepository) FindByUserAndMonth(_ context.Context, userID primitive.ObjectID, yearMonth string) (*models.ActivityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[activityKey{userID, yearMonth}]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &record, nil
}

func (r *ActivityRepository) AddLogin(_ context.Context, userID primitive.ObjectID, yearMonth, dayKey string, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := r.upsertLocked(userID, yearMonth)
	record.LoginCount++
	record.TotalPoints += points
	record.LastLoginDate = dayKey
	record.UpdatedAt = time.Now()
	r.records[activityKey{userID, yearMonth}] = record
	return nil
}

func (r *ActivityRepository) AddApplication(_ context.Context, userID primitive.ObjectID, yearMonth string, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := r.upsertLocked(userID, yearMonth)
	record.ApplicationCount++
	record.TotalPoints += points
	record.UpdatedAt = time.Now()
	r.records[activityKey{userID, yearMonth}] = record
	return nil
}

func (r *ActivityRepository) SumPointsByUser(_ context.Context, userID primitive.ObjectID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for key, record := range r.records {
		if key.userID == userID {
			total += record.TotalPoints
		}
	}
	return total, nil
}

func (r *ActivityRepository) DeleteOlderThan(_ context.Context, cutoffYearMonth string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for key := range r.records {
		if key.yearMonth < cutoffYearMonth {
			delete(r.records, key)
			removed++
		}
	}
	return removed, nil
}

func (r *ActivityRepository) upsertLocked(userID primitive.ObjectID, yearMonth string) models.ActivityRecord {
	key := activityKey{userID, yearMonth}
	record, ok := r.records[key]
	if !ok {
		record = models.ActivityRecord{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			YearMonth: yearMonth,
			CreatedAt: time.Now(),
		}
	}
	return record
}
