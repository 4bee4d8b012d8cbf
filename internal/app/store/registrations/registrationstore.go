package registrationstore

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

var (
	// ErrAlreadyRegistered is returned when a user registers twice for the same event.
	ErrAlreadyRegistered = errors.New("user is already registered for this event")

	errBadStatus = errors.New(`status must be "PENDING"|"APPROVED"|"REJECTED"|"COMPLETED"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("registrations")}
}

// EnsureIndexes creates the unique (user, event) index and the lookup indexes
// used by the dashboard aggregations.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_registrations_user_event"),
		},
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_registrations_event_status"),
		},
	})
	return err
}

// Create registers a user for an event in PENDING status.
func (s *Store) Create(ctx context.Context, userID, eventID primitive.ObjectID) (models.Registration, error) {
	reg := models.Registration{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		EventID:   eventID,
		Status:    models.RegistrationPending,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, reg); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Registration{}, ErrAlreadyRegistered
		}
		return models.Registration{}, err
	}
	return reg, nil
}

// GetByID loads a registration.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Registration, error) {
	var reg models.Registration
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// GetByUserAndEvent returns the registration for a (user, event) pair,
// or mongo.ErrNoDocuments.
func (s *Store) GetByUserAndEvent(ctx context.Context, userID, eventID primitive.ObjectID) (*models.Registration, error) {
	var reg models.Registration
	filter := bson.M{"user_id": userID, "event_id": eventID}
	if err := s.c.FindOne(ctx, filter).Decode(&reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Cancel deletes the registration row for a (user, event) pair. There is no
// CANCELLED status; deletion is the cancellation.
func (s *Store) Cancel(ctx context.Context, userID, eventID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID, "event_id": eventID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetStatus updates a registration's status. Moving to COMPLETED also stamps
// completed_at; moving anywhere else clears it.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	switch status {
	case models.RegistrationPending, models.RegistrationApproved,
		models.RegistrationRejected, models.RegistrationCompleted:
	default:
		return errBadStatus
	}

	update := bson.M{"$set": bson.M{"status": status}}
	if status == models.RegistrationCompleted {
		update["$set"].(bson.M)["completed_at"] = time.Now().UTC()
	} else {
		update["$unset"] = bson.M{"completed_at": ""}
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListByEvent returns registrations for an event, newest first.
func (s *Store) ListByEvent(ctx context.Context, eventID primitive.ObjectID) ([]models.Registration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var regs []models.Registration
	if err := cur.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// ListByUser returns a user's registrations, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Registration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var regs []models.Registration
	if err := cur.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// CountApprovedForEvent counts APPROVED registrations for one event.
// Used for capacity checks at registration time.
func (s *Store) CountApprovedForEvent(ctx context.Context, eventID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"event_id": eventID,
		"status":   models.RegistrationApproved,
	})
}

// ApprovedIDsForUser returns, for the given events, the user's APPROVED
// registration ids keyed by event id. Events without one are absent.
func (s *Store) ApprovedIDsForUser(ctx context.Context, userID primitive.ObjectID, eventIDs []primitive.ObjectID) (map[primitive.ObjectID]primitive.ObjectID, error) {
	result := make(map[primitive.ObjectID]primitive.ObjectID)
	if len(eventIDs) == 0 {
		return result, nil
	}

	filter := bson.M{
		"user_id":  userID,
		"event_id": bson.M{"$in": eventIDs},
		"status":   models.RegistrationApproved,
	}
	opts := options.Find().SetProjection(bson.M{"event_id": 1})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			ID      primitive.ObjectID `bson:"_id"`
			EventID primitive.ObjectID `bson:"event_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		result[row.EventID] = row.ID
	}
	return result, cur.Err()
}
