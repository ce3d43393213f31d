package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RaffleEventRepository implements the repositories.RaffleEventRepository interface
type RaffleEventRepository struct {
	collection *mongo.Collection
}

// NewRaffleEventRepository creates a new RaffleEventRepository
func NewRaffleEventRepository(db *mongo.Database) repositories.RaffleEventRepository {
	return &RaffleEventRepository{
		collection: db.Collection("raffle_events"),
	}
}

// Create creates a new raffle event
func (r *RaffleEventRepository) Create(ctx context.Context, raffle *models.RaffleEvent) error {
	raffle.CreatedAt = time.Now()
	raffle.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, raffle)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		raffle.ID = oid
	}
	return nil
}

// FindByID finds a raffle event by ID
func (r *RaffleEventRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RaffleEvent, error) {
	var raffle models.RaffleEvent
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&raffle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &raffle, nil
}

// Update replaces a raffle event document
func (r *RaffleEventRepository) Update(ctx context.Context, raffle *models.RaffleEvent) error {
	raffle.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": raffle.ID}, raffle)
	return err
}

// RaffleSlotRepository implements the repositories.RaffleSlotRepository interface
type RaffleSlotRepository struct {
	collection *mongo.Collection
}

// NewRaffleSlotRepository creates a new RaffleSlotRepository
func NewRaffleSlotRepository(db *mongo.Database) repositories.RaffleSlotRepository {
	return &RaffleSlotRepository{
		collection: db.Collection("raffle_slots"),
	}
}

// CreateMany inserts a batch of application slots
func (r *RaffleSlotRepository) CreateMany(ctx context.Context, slots []*models.RaffleSlot) error {
	if len(slots) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(slots))
	for _, slot := range slots {
		docs = append(docs, slot)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindPending finds the user's pending slots in insertion order. ObjectIDs
// are time-ordered, so _id ascending is insertion order.
func (r *RaffleSlotRepository) FindPending(ctx context.Context, raffleID, userID primitive.ObjectID) ([]*models.RaffleSlot, error) {
	filter := bson.M{
		"raffleId": raffleID,
		"userId":   userID,
		"outcome":  models.SlotOutcomePending,
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []*models.RaffleSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// CountByRaffleAndUser counts the user's slots for a raffle, any outcome
func (r *RaffleSlotRepository) CountByRaffleAndUser(ctx context.Context, raffleID, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"raffleId": raffleID, "userId": userID})
}

// UpdateOutcomes sets the outcome on the given slot ids
func (r *RaffleSlotRepository) UpdateOutcomes(ctx context.Context, ids []primitive.ObjectID, outcome models.SlotOutcome) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"outcome": outcome, "updatedAt": time.Now()}},
	)
	return err
}
