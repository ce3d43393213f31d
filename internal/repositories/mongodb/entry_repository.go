package mongodb

import (
	"context"
	"errors"

	"github.com/clubhub/giveaway-backend/internal/models"
	"github.com/clubhub/giveaway-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EntryRepository implements the repositories.EntryRepository interface.
// The collection carries a unique index on (giveawayId, userId) as a backstop
// for the duplicate check done in the service.
type EntryRepository struct {
	collection *mongo.Collection
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *mongo.Database) repositories.EntryRepository {
	return &EntryRepository{
		collection: db.Collection("entries"),
	}
}

// Create creates a new entry
func (r *EntryRepository) Create(ctx context.Context, entry *models.Entry) error {
	res, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid
	}
	return nil
}

// FindByGiveawayAndUser finds the entry for (giveaway, user)
func (r *EntryRepository) FindByGiveawayAndUser(ctx context.Context, giveawayID, userID primitive.ObjectID) (*models.Entry, error) {
	var entry models.Entry
	err := r.collection.FindOne(ctx, bson.M{"giveawayId": giveawayID, "userId": userID}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByGiveawayID finds all entries for a giveaway in insertion order
func (r *EntryRepository) FindByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) ([]*models.Entry, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"giveawayId": giveawayID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes the entry for (giveaway, user) and reports whether one existed
func (r *EntryRepository) Delete(ctx context.Context, giveawayID, userID primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"giveawayId": giveawayID, "userId": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

// CountByGiveawayID counts entries for a giveaway
func (r *EntryRepository) CountByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"giveawayId": giveawayID})
}

// DeleteByGiveawayID deletes all entries of a giveaway
func (r *EntryRepository) DeleteByGiveawayID(ctx context.Context, giveawayID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"giveawayId": giveawayID})
	return err
}
