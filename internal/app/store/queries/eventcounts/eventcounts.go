// Package eventcounts provides the batched per-event annotation counts
// (_count in the API payload) without per-event query fan-out.
package eventcounts

import (
	"context"

	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the _count annotation attached to event payloads.
// Registrations is restricted to APPROVED status.
type Counts struct {
	Registrations int64 `json:"registrations"`
	Posts         int64 `json:"posts"`
}

// ApprovedRegistrations returns APPROVED registration counts keyed by event id.
func ApprovedRegistrations(ctx context.Context, db *mongo.Database, eventIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	return groupCount(ctx, db, "registrations", bson.M{
		"event_id": bson.M{"$in": eventIDs},
		"status":   models.RegistrationApproved,
	})
}

// Posts returns post counts keyed by event id.
func Posts(ctx context.Context, db *mongo.Database, eventIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	return groupCount(ctx, db, "posts", bson.M{
		"event_id": bson.M{"$in": eventIDs},
	})
}

func groupCount(ctx context.Context, db *mongo.Database, collection string, match bson.M) (map[primitive.ObjectID]int64, error) {
	result := make(map[primitive.ObjectID]int64)
	if ids, ok := match["event_id"].(bson.M); ok {
		if in, ok := ids["$in"].([]primitive.ObjectID); ok && len(in) == 0 {
			return result, nil
		}
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{"_id": "$event_id", "count": bson.M{"$sum": 1}}},
	}
	cur, err := db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			ID    primitive.ObjectID `bson:"_id"`
			Count int64              `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		result[row.ID] = row.Count
	}
	return result, cur.Err()
}
