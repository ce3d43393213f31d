package mongodb

import (
	"context"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WinnerRepository implements the repositories.WinnerRepository interface
type WinnerRepository struct {
	collection *mongo.Collection
}

// NewWinnerRepository creates a new WinnerRepository
func NewWinnerRepository(db *mongo.Database) repositories.WinnerRepository {
	return &WinnerRepository{
		collection: db.Collection("winners"),
	}
}

// CreateMany inserts a batch of winner rows
func (r *WinnerRepository) CreateMany(ctx context.Context, winners []*models.Winner) error {
	if len(winners) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(winners))
	for _, winner := range winners {
		docs = append(docs, winner)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByGiveawayID finds all winners for a giveaway
func (r *WinnerRepository) FindByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) ([]*models.Winner, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"giveawayId": giveawayID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var winners []*models.Winner
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, err
	}
	return winners, nil
}

// DeleteByGiveawayID deletes the whole winner set of a giveaway
func (r *WinnerRepository) DeleteByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"giveawayId": giveawayID})
	return err
}
