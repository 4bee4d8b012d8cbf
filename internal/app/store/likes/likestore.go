package likestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrAlreadyLiked is returned when a user likes the same post twice.
var ErrAlreadyLiked = errors.New("post already liked")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("likes")}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_likes_post_user"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_likes_created"),
		},
	})
	return err
}

// Create records a like. Liking twice is a conflict, not an upsert.
func (s *Store) Create(ctx context.Context, postID, userID primitive.ObjectID) (models.Like, error) {
	like := models.Like{
		ID:        primitive.NewObjectID(),
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, like); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Like{}, ErrAlreadyLiked
		}
		return models.Like{}, err
	}
	return like, nil
}

// Delete removes a like (unlike). No history is retained.
func (s *Store) Delete(ctx context.Context, postID, userID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"post_id": postID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CountByPosts returns like counts keyed by post id.
func (s *Store) CountByPosts(ctx context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	result := make(map[primitive.ObjectID]int64, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	pipeline := []bson.M{
		{"$match": bson.M{"post_id": bson.M{"$in": postIDs}}},
		{"$group": bson.M{"_id": "$post_id", "count": bson.M{"$sum": 1}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
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
