package memory

import (
	"context"
	"sync"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberRepository is an in-memory repositories.MemberRepository
type MemberRepository struct {
	mu      sync.RWMutex
	members map[primitive.ObjectID]models.Member
}

// NewMemberRepository creates a new in-memory MemberRepository
func NewMemberRepository() repositories.MemberRepository {
	return &MemberRepository{
		members: make(map[primitive.ObjectID]models.Member),
	}
}

func (r *MemberRepository) Create(_ context.Context, member *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if member.ID.IsZero() {
		member.ID = primitive.NewObjectID()
	}
	member.CreatedAt = time.Now()
	member.UpdatedAt = time.Now()
	r.members[member.ID] = *member
	return nil
}

func (r *MemberRepository) FindByEmail(_ context.Context, email string) (*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id := range r.members {
		if r.members[id].Email == email {
			member := r.members[id]
			return &member, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *MemberRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, ok := r.members[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &member, nil
}
