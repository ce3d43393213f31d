package memory

import (
	"context"
	"sync"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WinnerRepository is an in-memory repositories.WinnerRepository
type WinnerRepository struct {
	mu      sync.RWMutex
	winners []models.Winner
}

// NewWinnerRepository creates a new in-memory WinnerRepository
func NewWinnerRepository() repositories.WinnerRepository {
	return &WinnerRepository{}
}

func (r *WinnerRepository) CreateMany(_ context.Context, winners []*models.Winner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, winner := range winners {
		if winner.ID.IsZero() {
			winner.ID = primitive.NewObjectID()
		}
		r.winners = append(r.winners, *winner)
	}
	return nil
}

func (r *WinnerRepository) FindByGiveawayID(_ context.Context, giveawayID primitive.ObjectID) ([]*models.Winner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var winners []*models.Winner
	for i := range r.winners {
		if r.winners[i].GiveawayID == giveawayID {
			winner := r.winners[i]
			winners = append(winners, &winner)
		}
	}
	return winners, nil
}

func (r *WinnerRepository) DeleteByGiveawayID(_ context.Context, giveawayID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.winners[:0]
	for i := range r.winners {
		if r.winners[i].GiveawayID != giveawayID {
			kept = append(kept, r.winners[i])
		}
	}
	r.winners = kept
	return nil
}
