package dashboard

import (
	"context"
	"time"

	"github.com/volunteerhub/volunteerhub/internal/app/store/queries/activitymetrics"
	"github.com/volunteerhub/volunteerhub/internal/app/store/queries/eventcounts"
	"github.com/volunteerhub/volunteerhub/internal/app/store/queries/statqueries"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pool and page sizing. Pools are over-fetched so prioritization still has
// headroom after filtering.
const (
	newPoolDays      = 30
	poolFetchLimit   = 20
	trendingPoolSize = 50
	trendingTopN     = 20
	sectionSize      = 5
)

// EventCard is one event as it appears in a dashboard section: the event
// itself plus derived annotations. Built fresh per request, never stored.
type EventCard struct {
	models.Event

	Manager models.ManagerSummary `json:"manager"`
	Count   eventcounts.Counts    `json:"_count"`

	// Trending-section annotations; zero values are omitted elsewhere.
	TrendingScore   float64                  `json:"trendingScore,omitempty"`
	GrowthIndicator string                   `json:"growthIndicator,omitempty"`
	RecentMetrics   *activitymetrics.Metrics `json:"recentMetrics,omitempty"`

	// MyRegistrationID is the caller's APPROVED registration for this event,
	// when the caller is a volunteer. Explicitly nil when absent, so "not
	// registered" is a visible contract rather than a missing sub-document.
	MyRegistrationID *primitive.ObjectID `json:"myRegistrationId,omitempty"`
}

// Response is the GET /dashboard payload.
type Response struct {
	NewEvents      []EventCard `json:"newEvents"`
	ActiveEvents   []EventCard `json:"activeEvents"`
	TrendingEvents []EventCard `json:"trendingEvents"`
	UserStats      any         `json:"userStats"`
}

// Source is the read-only data access the assembler depends on. The mongo
// implementation lives in mongosource.go; tests substitute a fake.
type Source interface {
	NewEvents(ctx context.Context, base bson.M, since time.Time, limit int64) ([]models.Event, error)
	ActiveEvents(ctx context.Context, base bson.M, now time.Time, limit int64) ([]models.Event, error)
	TrendingPool(ctx context.Context, base bson.M, limit int64) ([]models.Event, error)

	MetricsBatch(ctx context.Context, eventIDs []primitive.ObjectID, now time.Time, windowDays int) (map[primitive.ObjectID]activitymetrics.Metrics, error)
	ApprovedRegistrationCounts(ctx context.Context, eventIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error)
	PostCounts(ctx context.Context, eventIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error)
	ManagerSummaries(ctx context.Context, managerIDs []primitive.ObjectID) (map[primitive.ObjectID]models.ManagerSummary, error)
	MyApprovedRegistrations(ctx context.Context, userID primitive.ObjectID, eventIDs []primitive.ObjectID) (map[primitive.ObjectID]primitive.ObjectID, error)

	VolunteerStats(ctx context.Context, userID primitive.ObjectID, now time.Time) (statqueries.VolunteerStats, error)
	ManagerStats(ctx context.Context, managerID primitive.ObjectID) (statqueries.ManagerStats, error)
	AdminStats(ctx context.Context) (statqueries.AdminStats, error)
}
