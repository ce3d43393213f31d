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

// ActivityRepository implements the repositories.ActivityRepository
// interface. Records are keyed by (userId, yearMonth) and only ever grow;
// retention cleanup is the single path that removes them.
type ActivityRepository struct {
	collection *mongo.Collection
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *mongo.Database) repositories.ActivityRepository {
	return &ActivityRepository{
		collection: db.Collection("activities"),
	}
}

// FindByUserAndMonth finds the ledger record for one user and month
func (r *ActivityRepository) FindByUserAndMonth(ctx context.Context, userID primitive.ObjectID, yearMonth string) (*models.ActivityRecord, error) {
	var record models.ActivityRecord
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "yearMonth": yearMonth}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// AddLogin upserts the month record with a login award
func (r *ActivityRepository) AddLogin(ctx context.Context, userID primitive.ObjectID, yearMonth, dayKey string, points int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": userID, "yearMonth": yearMonth},
		bson.M{
			"$inc": bson.M{"loginCount": 1, "totalPoints": points},
			"$set": bson.M{"lastLoginDate": dayKey, "updatedAt": time.Now()},
			"$setOnInsert": bson.M{
				"userId":    userID,
				"yearMonth": yearMonth,
				"createdAt": time.Now(),
			},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// AddApplication upserts the month record with an application award
func (r *ActivityRepository) AddApplication(ctx context.Context, userID primitive.ObjectID, yearMonth string, points int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": userID, "yearMonth": yearMonth},
		bson.M{
			"$inc": bson.M{"applicationCount": 1, "totalPoints": points},
			"$set": bson.M{"updatedAt": time.Now()},
			"$setOnInsert": bson.M{
				"userId":    userID,
				"yearMonth": yearMonth,
				"createdAt": time.Now(),
			},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// SumPointsByUser sums totalPoints across all of the user's month records
func (r *ActivityRepository) SumPointsByUser(ctx context.Context, userID primitive.ObjectID) (int, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"userId": userID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$totalPoints"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total int `bson:"total"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, err
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Total, nil
}

// DeleteOlderThan removes month records below the cutoff key. Year-month
// keys sort lexicographically, so a string comparison is a date comparison.
func (r *ActivityRepository) DeleteOlderThan(ctx context.Context, cutoffYearMonth string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"yearMonth": bson.M{"$lt": cutoffYearMonth}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
