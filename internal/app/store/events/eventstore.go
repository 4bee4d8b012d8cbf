package eventstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotPending is returned when approving or rejecting an event that
	// already left PENDING. Status transitions are monotonic.
	ErrNotPending = errors.New("event is not pending")

	errBadCategory = errors.New("unknown event category")
	errBadWindow   = errors.New("event end date must not precede start date")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

// EnsureIndexes creates indexes backing the dashboard pool queries and the
// manager/list views.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_events_status_created"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "start_date", Value: 1}},
			Options: options.Index().SetName("idx_events_status_start"),
		},
		{
			Keys:    bson.D{{Key: "manager_id", Value: 1}},
			Options: options.Index().SetName("idx_events_manager"),
		},
	})
	return err
}

// WhereForRole returns the base event filter for a role: admins see every
// event regardless of status, everyone else only APPROVED events.
func WhereForRole(role string) bson.M {
	if role == models.RoleAdmin {
		return bson.M{}
	}
	return bson.M{"status": models.EventApproved}
}

// Create inserts a new event in PENDING status.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	e.ID = primitive.NewObjectID()
	e.Title = strings.TrimSpace(e.Title)
	e.TitleCI = text.Fold(e.Title)
	e.Status = models.EventPending

	if !models.IsValidCategory(e.Category) {
		return models.Event{}, errBadCategory
	}
	if e.EndDate.Before(e.StartDate) {
		return models.Event{}, errBadWindow
	}

	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// GetByID loads an event by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Update holds the owner-editable fields of an event.
type Update struct {
	Title       string
	Description string
	Location    string
	StartDate   time.Time
	EndDate     time.Time
	Category    string
	ImageURL    string
	Capacity    *int
}

// UpdateFields applies an owner edit to the event.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) error {
	if !models.IsValidCategory(upd.Category) {
		return errBadCategory
	}
	if upd.EndDate.Before(upd.StartDate) {
		return errBadWindow
	}

	title := strings.TrimSpace(upd.Title)
	set := bson.M{
		"title":       title,
		"title_ci":    text.Fold(title),
		"description": upd.Description,
		"location":    upd.Location,
		"start_date":  upd.StartDate,
		"end_date":    upd.EndDate,
		"category":    upd.Category,
		"image_url":   upd.ImageURL,
		"capacity":    upd.Capacity,
		"updated_at":  time.Now().UTC(),
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetStatus moves a PENDING event to APPROVED or REJECTED. The filter pins
// the current status so the transition stays monotonic even under races.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if status != models.EventApproved && status != models.EventRejected {
		return errors.New("status must be APPROVED or REJECTED")
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.EventPending},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the event is gone or it already left PENDING.
		n, err := s.c.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if n == 0 {
			return mongo.ErrNoDocuments
		}
		return ErrNotPending
	}
	return nil
}

// Delete removes an event.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListFilter narrows the List query. Zero values mean "no constraint".
type ListFilter struct {
	Status    string
	Category  string
	ManagerID primitive.ObjectID
}

// List returns events matching the base filter plus the list filter,
// newest first. limit and skip implement look-ahead paging.
func (s *Store) List(ctx context.Context, base bson.M, f ListFilter, skip, limit int64) ([]models.Event, error) {
	filter := bson.M{}
	for k, v := range base {
		filter[k] = v
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if !f.ManagerID.IsZero() {
		filter["manager_id"] = f.ManagerID
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	return s.find(ctx, filter, opts)
}

// NewSince returns events created at or after since, newest first.
func (s *Store) NewSince(ctx context.Context, base bson.M, since time.Time, limit int64) ([]models.Event, error) {
	filter := bson.M{"created_at": bson.M{"$gte": since}}
	for k, v := range base {
		filter[k] = v
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	return s.find(ctx, filter, opts)
}

// ActiveAt returns events whose time window contains now, soonest start first.
func (s *Store) ActiveAt(ctx context.Context, base bson.M, now time.Time, limit int64) ([]models.Event, error) {
	filter := bson.M{
		"start_date": bson.M{"$lte": now},
		"end_date":   bson.M{"$gte": now},
	}
	for k, v := range base {
		filter[k] = v
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "start_date", Value: 1}}).
		SetLimit(limit)
	return s.find(ctx, filter, opts)
}

// TrendingPool returns up to limit candidates under the base filter alone.
// Newest first so ties later sort deterministically.
func (s *Store) TrendingPool(ctx context.Context, base bson.M, limit int64) ([]models.Event, error) {
	filter := bson.M{}
	for k, v := range base {
		filter[k] = v
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	return s.find(ctx, filter, opts)
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Event, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
