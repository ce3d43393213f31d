// Package memory provides in-memory repository implementations. They back
// the service tests and the mock-database run mode; the mongodb package is
// the production counterpart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GiveawayRepository is an in-memory repositories.GiveawayRepository
type GiveawayRepository struct {
	mu        sync.RWMutex
	giveaways map[primitive.ObjectID]models.Giveaway
}

// NewGiveawayRepository creates a new in-memory GiveawayRepository
func NewGiveawayRepository() repositories.GiveawayRepository {
	return &GiveawayRepository{
		giveaways: make(map[primitive.ObjectID]models.Giveaway),
	}
}

func (r *GiveawayRepository) Create(_ context.Context, giveaway *models.Giveaway) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if giveaway.ID.IsZero() {
		giveaway.ID = primitive.NewObjectID()
	}
	giveaway.CreatedAt = time.Now()
	giveaway.UpdatedAt = time.Now()
	r.giveaways[giveaway.ID] = *giveaway
	return nil
}

func (r *GiveawayRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Giveaway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	giveaway, ok := r.giveaways[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &giveaway, nil
}

func (r *GiveawayRepository) Update(_ context.Context, giveaway *models.Giveaway) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.giveaways[giveaway.ID]; !ok {
		return repositories.ErrNotFound
	}
	giveaway.UpdatedAt = time.Now()
	r.giveaways[giveaway.ID] = *giveaway
	return nil
}

func (r *GiveawayRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.giveaways, id)
	return nil
}

func (r *GiveawayRepository) FindAll(_ context.Context, page, limit int) ([]*models.Giveaway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*models.Giveaway, 0, len(r.giveaways))
	for id := range r.giveaways {
		giveaway := r.giveaways[id]
		all = append(all, &giveaway)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	start := (page - 1) * limit
	if start >= len(all) {
		return []*models.Giveaway{}, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *GiveawayRepository) FindDueForDraw(_ context.Context, cutoff time.Time) ([]*models.Giveaway, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var due []*models.Giveaway
	for id := range r.giveaways {
		giveaway := r.giveaways[id]
		if giveaway.Status == models.GiveawayStatusDrawn || giveaway.Status == models.GiveawayStatusCancelled {
			continue
		}
		if giveaway.EndAt.Before(cutoff) {
			due = append(due, &giveaway)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].EndAt.Before(due[j].EndAt) })
	return due, nil
}

func (r *GiveawayRepository) MarkDrawn(_ context.Context, id primitive.ObjectID, drawnAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	giveaway, ok := r.giveaways[id]
	if !ok {
		return false, repositories.ErrNotFound
	}
	if giveaway.Status == models.GiveawayStatusDrawn {
		return false, nil
	}
	giveaway.Status = models.GiveawayStatusDrawn
	giveaway.DrawnAt = &drawnAt
	giveaway.UpdatedAt = time.Now()
	r.giveaways[id] = giveaway
	return true, nil
}

func (r *GiveawayRepository) RevertDrawn(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	giveaway, ok := r.giveaways[id]
	if !ok || giveaway.Status != models.GiveawayStatusDrawn {
		return nil
	}
	giveaway.Status = models.GiveawayStatusEnded
	giveaway.DrawnAt = nil
	giveaway.UpdatedAt = time.Now()
	r.giveaways[id] = giveaway
	return nil
}

func (r *GiveawayRepository) UpdateTotalWinners(_ context.Context, id primitive.ObjectID, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	giveaway, ok := r.giveaways[id]
	if !ok {
		return repositories.ErrNotFound
	}
	giveaway.TotalWinners = total
	giveaway.UpdatedAt = time.Now()
	r.giveaways[id] = giveaway
	return nil
}

func (r *GiveawayRepository) UpdateTotalEntries(_ context.Context, id primitive.ObjectID, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	giveaway, ok := r.giveaways[id]
	if !ok {
		return repositories.ErrNotFound
	}
	giveaway.TotalEntries = total
	giveaway.UpdatedAt = time.Now()
	r.giveaways[id] = giveaway
	return nil
}
