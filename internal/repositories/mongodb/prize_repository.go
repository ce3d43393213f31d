package mongodb

import (
	"context"
	"time"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PrizeRepository implements the repositories.PrizeRepository interface
type PrizeRepository struct {
	collection *mongo.Collection
}

// NewPrizeRepository creates a new PrizeRepository
func NewPrizeRepository(db *mongo.Database) repositories.PrizeRepository {
	return &PrizeRepository{
		collection: db.Collection("prizes"),
	}
}

// ReplaceForGiveaway deletes the giveaway's prize batch and inserts the new
// one. Edits always resend the full list, so no diffing is attempted.
func (r *PrizeRepository) ReplaceForGiveaway(ctx context.Context, giveawayID primitive.ObjectID, prizes []*models.Prize) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"giveawayId": giveawayID}); err != nil {
		return err
	}
	if len(prizes) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(prizes))
	now := time.Now()
	for _, prize := range prizes {
		prize.GiveawayID = giveawayID
		prize.CreatedAt = now
		docs = append(docs, prize)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByGiveawayID finds prizes in allocation priority order
func (r *PrizeRepository) FindByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) ([]*models.Prize, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "displayOrder", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"giveawayId": giveawayID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prizes []*models.Prize
	if err := cursor.All(ctx, &prizes); err != nil {
		return nil, err
	}
	return prizes, nil
}

// DeleteByGiveawayID deletes all prizes of a giveaway
func (r *PrizeRepository) DeleteByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"giveawayId": giveawayID})
	return err
}
