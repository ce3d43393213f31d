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

// GiveawayRepository implements the repositories.GiveawayRepository interface
type GiveawayRepository struct {
	collection *mongo.Collection
}

// NewGiveawayRepository creates a new GiveawayRepository
func NewGiveawayRepository(db *mongo.Database) repositories.GiveawayRepository {
	return &GiveawayRepository{
		collection: db.Collection("giveaways"),
	}
}

// Create creates a new giveaway
func (r *GiveawayRepository) Create(ctx context.Context, giveaway *models.Giveaway) error {
	giveaway.CreatedAt = time.Now()
	giveaway.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, giveaway)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		giveaway.ID = oid
	}
	return nil
}

// FindByID finds a giveaway by ID
func (r *GiveawayRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Giveaway, error) {
	var giveaway models.Giveaway
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&giveaway)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &giveaway, nil
}

// Update replaces a giveaway document
func (r *GiveawayRepository) Update(ctx context.Context, giveaway *models.Giveaway) error {
	giveaway.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": giveaway.ID}, giveaway)
	return err
}

// Delete deletes a giveaway
func (r *GiveawayRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// FindAll finds giveaways with pagination, newest first
func (r *GiveawayRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Giveaway, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var giveaways []*models.Giveaway
	if err := cursor.All(ctx, &giveaways); err != nil {
		return nil, err
	}
	return giveaways, nil
}

// FindDueForDraw finds giveaways past their end boundary and not yet in a
// terminal state
func (r *GiveawayRepository) FindDueForDraw(ctx context.Context, cutoff time.Time) ([]*models.Giveaway, error) {
	filter := bson.M{
		"endAt": bson.M{"$lt": cutoff},
		"status": bson.M{"$nin": bson.A{
			models.GiveawayStatusDrawn,
			models.GiveawayStatusCancelled,
		}},
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"endAt": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var giveaways []*models.Giveaway
	if err := cursor.All(ctx, &giveaways); err != nil {
		return nil, err
	}
	return giveaways, nil
}

// MarkDrawn performs the single conditional update that guards the draw
// critical section. The filter excludes DRAWN so only one caller can win the
// transition; ModifiedCount tells us whether that was us.
func (r *GiveawayRepository) MarkDrawn(ctx context.Context, id primitive.ObjectID, drawnAt time.Time) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": models.GiveawayStatusDrawn}},
		bson.M{"$set": bson.M{
			"status":    models.GiveawayStatusDrawn,
			"drawnAt":   drawnAt,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// RevertDrawn returns a claimed giveaway to ENDED after a failed winner
// generation
func (r *GiveawayRepository) RevertDrawn(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.GiveawayStatusDrawn},
		bson.M{
			"$set":   bson.M{"status": models.GiveawayStatusEnded, "updatedAt": time.Now()},
			"$unset": bson.M{"drawnAt": ""},
		},
	)
	return err
}

// UpdateTotalWinners sets the denormalized winner count
func (r *GiveawayRepository) UpdateTotalWinners(ctx context.Context, id primitive.ObjectID, total int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"totalWinners": total, "updatedAt": time.Now()}})
	return err
}

// UpdateTotalEntries sets the denormalized entry count
func (r *GiveawayRepository) UpdateTotalEntries(ctx context.Context, id primitive.ObjectID, total int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"totalEntries": total, "updatedAt": time.Now()}})
	return err
}
