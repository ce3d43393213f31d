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

// RaffleEventRepository is an in-memory repositories.RaffleEventRepository
type RaffleEventRepository struct {
	mu      sync.RWMutex
	raffles map[primitive.ObjectID]models.RaffleEvent
}

// NewRaffleEventRepository creates a new in-memory RaffleEventRepository
func NewRaffleEventRepository() repositories.RaffleEventRepository {
	return &RaffleEventRepository{
		raffles: make(map[primitive.ObjectID]models.RaffleEvent),
	}
}

func (r *RaffleEventRepository) Create(_ context.Context, raffle *models.RaffleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if raffle.ID.IsZero() {
		raffle.ID = primitive.NewObjectID()
	}
	raffle.CreatedAt = time.Now()
	raffle.UpdatedAt = time.Now()
	r.raffles[raffle.ID] = *raffle
	return nil
}

func (r *RaffleEventRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.RaffleEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	raffle, ok := r.raffles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &raffle, nil
}

func (r *RaffleEventRepository) Update(_ context.Context, raffle *models.RaffleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.raffles[raffle.ID]; !ok {
		return repositories.ErrNotFound
	}
	raffle.UpdatedAt = time.Now()
	r.raffles[raffle.ID] = *raffle
	return nil
}

// RaffleSlotRepository is an in-memory repositories.RaffleSlotRepository.
// The slice preserves insertion order, which FindPending relies on.
type RaffleSlotRepository struct {
	mu    sync.RWMutex
	slots []models.RaffleSlot
}

// NewRaffleSlotRepository creates a new in-memory RaffleSlotRepository
func NewRaffleSlotRepository() repositories.RaffleSlotRepository {
	return &RaffleSlotRepository{}
}

func (r *RaffleSlotRepository) CreateMany(_ context.Context, slots []*models.RaffleSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, slot := range slots {
		if slot.ID.IsZero() {
			slot.ID = primitive.NewObjectID()
		}
		r.slots = append(r.slots, *slot)
	}
	return nil
}

func (r *RaffleSlotRepository) FindPending(_ context.Context, raffleID, userID primitive.ObjectID) ([]*models.RaffleSlot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var pending []*models.RaffleSlot
	for i := range r.slots {
		slot := r.slots[i]
		if slot.RaffleID == raffleID && slot.UserID == userID && slot.Outcome == models.SlotOutcomePending {
			pending = append(pending, &slot)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID.Hex() < pending[j].ID.Hex() })
	return pending, nil
}

func (r *RaffleSlotRepository) CountByRaffleAndUser(_ context.Context, raffleID, userID primitive.ObjectID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for i := range r.slots {
		if r.slots[i].RaffleID == raffleID && r.slots[i].UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *RaffleSlotRepository) UpdateOutcomes(_ context.Context, ids []primitive.ObjectID, outcome models.SlotOutcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	for i := range r.slots {
		if wanted[r.slots[i].ID] {
			r.slots[i].Outcome = outcome
			r.slots[i].UpdatedAt = time.Now()
		}
	}
	return nil
}
