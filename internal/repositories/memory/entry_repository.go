package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EntryRepository is an in-memory repositories.EntryRepository
type EntryRepository struct {
	mu      sync.RWMutex
	entries []models.Entry
}

// NewEntryRepository creates a new in-memory EntryRepository
func NewEntryRepository() repositories.EntryRepository {
	return &EntryRepository{}
}

func (r *EntryRepository) Create(_ context.Context, entry *models.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *EntryRepository) FindByGiveawayAndUser(_ context.Context, giveawayID, userID primitive.ObjectID) (*models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if r.entries[i].GiveawayID == giveawayID && r.entries[i].UserID == userID {
			entry := r.entries[i]
			return &entry, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *EntryRepository) FindByGiveawayID(_ context.Context, giveawayID primitive.ObjectID) ([]*models.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []*models.Entry
	for i := range r.entries {
		if r.entries[i].GiveawayID == giveawayID {
			entry := r.entries[i]
			entries = append(entries, &entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID.Hex() < entries[j].ID.Hex() })
	return entries, nil
}

func (r *EntryRepository) Delete(_ context.Context, giveawayID, userID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].GiveawayID == giveawayID && r.entries[i].UserID == userID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *EntryRepository) CountByGiveawayID(_ context.Context, giveawayID primitive.ObjectID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for i := range r.entries {
		if r.entries[i].GiveawayID == giveawayID {
			count++
		}
	}
	return count, nil
}

func (r *EntryRepository) DeleteByGiveawayID(_ context.Context, giveawayID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	for i := range r.entries {
		if r.entries[i].GiveawayID != giveawayID {
			kept = append(kept, r.entries[i])
		}
	}
	r.entries = kept
	return nil
}
