package dashboard

import (
	"context"
	"time"

	eventstore "github.com/volunteerhub/volunteerhub/internal/app/store/events"
	registrationstore "github.com/volunteerhub/volunteerhub/internal/app/store/registrations"
	"github.com/volunteerhub/volunteerhub/internal/app/store/queries/activitymetrics"
	"github.com/volunteerhub/volunteerhub/internal/app/store/queries/eventcounts"
	"github.com/volunteerhub/volunteerhub/internal/app/store/queries/statqueries"
	userstore "github.com/volunteerhub/volunteerhub/internal/app/store/users"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSource adapts the store layer to the Source interface.
type MongoSource struct {
	db        *mongo.Database
	events    *eventstore.Store
	regs      *registrationstore.Store
	users     *userstore.Store
	collector *activitymetrics.Collector
}

func NewMongoSource(db *mongo.Database) *MongoSource {
	return &MongoSource{
		db:        db,
		events:    eventstore.New(db),
		regs:      registrationstore.New(db),
		users:     userstore.New(db),
		collector: activitymetrics.New(db),
	}
}

func (s *MongoSource) NewEvents(ctx context.Context, base bson.M, since time.Time, limit int64) ([]models.Event, error) {
	return s.events.NewSince(ctx, base, since, limit)
}

func (s *MongoSource) ActiveEvents(ctx context.Context, base bson.M, now time.Time, limit int64) ([]models.Event, error) {
	return s.events.ActiveAt(ctx, base, now, limit)
}

func (s *MongoSource) TrendingPool(ctx context.Context, base bson.M, limit int64) ([]models.Event, error) {
	return s.events.TrendingPool(ctx, base, limit)
}

func (s *MongoSource) MetricsBatch(ctx context.Context, eventIDs []primitive.ObjectID, now time.Time, windowDays int) (map[primitive.ObjectID]activitymetrics.Metrics, error) {
	return s.collector.ComputeBatch(ctx, eventIDs, now, windowDays)
}

func (s *MongoSource) ApprovedRegistrationCounts(ctx context.Context, eventIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	return eventcounts.ApprovedRegistrations(ctx, s.db, eventIDs)
}

func (s *MongoSource) PostCounts(ctx context.Context, eventIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	return eventcounts.Posts(ctx, s.db, eventIDs)
}

func (s *MongoSource) ManagerSummaries(ctx context.Context, managerIDs []primitive.ObjectID) (map[primitive.ObjectID]models.ManagerSummary, error) {
	return s.users.Summaries(ctx, managerIDs)
}

func (s *MongoSource) MyApprovedRegistrations(ctx context.Context, userID primitive.ObjectID, eventIDs []primitive.ObjectID) (map[primitive.ObjectID]primitive.ObjectID, error) {
	return s.regs.ApprovedIDsForUser(ctx, userID, eventIDs)
}

func (s *MongoSource) VolunteerStats(ctx context.Context, userID primitive.ObjectID, now time.Time) (statqueries.VolunteerStats, error) {
	return statqueries.FetchVolunteerStats(ctx, s.db, userID, now)
}

func (s *MongoSource) ManagerStats(ctx context.Context, managerID primitive.ObjectID) (statqueries.ManagerStats, error) {
	return statqueries.FetchManagerStats(ctx, s.db, managerID)
}

func (s *MongoSource) AdminStats(ctx context.Context) (statqueries.AdminStats, error) {
	return statqueries.FetchAdminStats(ctx, s.db)
}
