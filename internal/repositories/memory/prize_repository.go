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

// PrizeRepository is an in-memory repositories.PrizeRepository
type PrizeRepository struct {
	mu     sync.RWMutex
	prizes map[primitive.ObjectID]models.Prize
	seq    map[primitive.ObjectID]int // insertion order tiebreaker
	next   int
}

// NewPrizeRepository creates a new in-memory PrizeRepository
func NewPrizeRepository() repositories.PrizeRepository {
	return &PrizeRepository{
		prizes: make(map[primitive.ObjectID]models.Prize),
		seq:    make(map[primitive.ObjectID]int),
	}
}

func (r *PrizeRepository) ReplaceForGiveaway(_ context.Context, giveawayID primitive.ObjectID, prizes []*models.Prize) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id := range r.prizes {
		if r.prizes[id].GiveawayID == giveawayID {
			delete(r.prizes, id)
			delete(r.seq, id)
		}
	}
	for _, prize := range prizes {
		if prize.ID.IsZero() {
			prize.ID = primitive.NewObjectID()
		}
		prize.GiveawayID = giveawayID
		prize.CreatedAt = time.Now()
		r.prizes[prize.ID] = *prize
		r.seq[prize.ID] = r.next
		r.next++
	}
	return nil
}

func (r *PrizeRepository) FindByGiveawayID(_ context.Context, giveawayID primitive.ObjectID) ([]*models.Prize, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var prizes []*models.Prize
	for id := range r.prizes {
		if r.prizes[id].GiveawayID == giveawayID {
			prize := r.prizes[id]
			prizes = append(prizes, &prize)
		}
	}
	sort.Slice(prizes, func(i, j int) bool {
		if prizes[i].DisplayOrder != prizes[j].DisplayOrder {
			return prizes[i].DisplayOrder < prizes[j].DisplayOrder
		}
		return r.seq[prizes[i].ID] < r.seq[prizes[j].ID]
	})
	return prizes, nil
}

func (r *PrizeRepository) DeleteByGiveawayID(_ context.Context, giveawayID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id := range r.prizes {
		if r.prizes[id].GiveawayID == giveawayID {
			delete(r.prizes, id)
			delete(r.seq, id)
		}
	}
	return nil
}
