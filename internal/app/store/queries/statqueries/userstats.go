// Package statqueries computes the role-specific statistics block of the
// dashboard. These are independent of the trending ranking.
package statqueries

import (
	"context"
	"time"

	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HoursPerCompletedEvent is the fixed credit a volunteer earns per completed
// registration. The product assumes four hours per event rather than deriving
// hours from actual event duration.
const HoursPerCompletedEvent = 4

// VolunteerStats is the stats block for VOLUNTEER users.
type VolunteerStats struct {
	TotalRegistrations int64 `json:"totalRegistrations"`
	CompletedEvents    int64 `json:"completedEvents"`
	UpcomingEvents     int64 `json:"upcomingEvents"`
	TotalHours         int64 `json:"totalHours"`
}

// ManagerStats is the stats block for EVENT_MANAGER users.
type ManagerStats struct {
	TotalEvents        int64 `json:"totalEvents"`
	ApprovedEvents     int64 `json:"approvedEvents"`
	PendingEvents      int64 `json:"pendingEvents"`
	TotalRegistrations int64 `json:"totalRegistrations"`
}

// AdminStats is the stats block for ADMIN users. Counts are global.
type AdminStats struct {
	TotalUsers         int64 `json:"totalUsers"`
	TotalEvents        int64 `json:"totalEvents"`
	TotalRegistrations int64 `json:"totalRegistrations"`
	PendingEvents      int64 `json:"pendingEvents"`
}

// FetchVolunteerStats computes a volunteer's registration statistics.
// "Upcoming" means an APPROVED registration for an event starting after now.
func FetchVolunteerStats(ctx context.Context, db *mongo.Database, userID primitive.ObjectID, now time.Time) (VolunteerStats, error) {
	regs := db.Collection("registrations")
	var out VolunteerStats
	var err error

	if out.TotalRegistrations, err = regs.CountDocuments(ctx, bson.M{"user_id": userID}); err != nil {
		return VolunteerStats{}, err
	}
	if out.CompletedEvents, err = regs.CountDocuments(ctx, bson.M{
		"user_id": userID,
		"status":  models.RegistrationCompleted,
	}); err != nil {
		return VolunteerStats{}, err
	}

	pipeline := []bson.M{
		{"$match": bson.M{"user_id": userID, "status": models.RegistrationApproved}},
		{"$lookup": bson.M{
			"from":         "events",
			"localField":   "event_id",
			"foreignField": "_id",
			"as":           "event",
		}},
		{"$unwind": "$event"},
		{"$match": bson.M{"event.start_date": bson.M{"$gt": now}}},
		{"$count": "count"},
	}
	cur, err := regs.Aggregate(ctx, pipeline)
	if err != nil {
		return VolunteerStats{}, err
	}
	defer cur.Close(ctx)
	if cur.Next(ctx) {
		var row struct {
			Count int64 `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return VolunteerStats{}, err
		}
		out.UpcomingEvents = row.Count
	}
	if err := cur.Err(); err != nil {
		return VolunteerStats{}, err
	}

	out.TotalHours = out.CompletedEvents * HoursPerCompletedEvent
	return out, nil
}

// FetchManagerStats computes event/registration statistics for a manager's
// own events.
func FetchManagerStats(ctx context.Context, db *mongo.Database, managerID primitive.ObjectID) (ManagerStats, error) {
	events := db.Collection("events")
	var out ManagerStats
	var err error

	if out.TotalEvents, err = events.CountDocuments(ctx, bson.M{"manager_id": managerID}); err != nil {
		return ManagerStats{}, err
	}
	if out.ApprovedEvents, err = events.CountDocuments(ctx, bson.M{
		"manager_id": managerID,
		"status":     models.EventApproved,
	}); err != nil {
		return ManagerStats{}, err
	}
	if out.PendingEvents, err = events.CountDocuments(ctx, bson.M{
		"manager_id": managerID,
		"status":     models.EventPending,
	}); err != nil {
		return ManagerStats{}, err
	}

	// APPROVED registrations across all owned events, via one join.
	pipeline := []bson.M{
		{"$match": bson.M{"status": models.RegistrationApproved}},
		{"$lookup": bson.M{
			"from":         "events",
			"localField":   "event_id",
			"foreignField": "_id",
			"as":           "event",
		}},
		{"$unwind": "$event"},
		{"$match": bson.M{"event.manager_id": managerID}},
		{"$count": "count"},
	}
	cur, err := db.Collection("registrations").Aggregate(ctx, pipeline)
	if err != nil {
		return ManagerStats{}, err
	}
	defer cur.Close(ctx)
	if cur.Next(ctx) {
		var row struct {
			Count int64 `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return ManagerStats{}, err
		}
		out.TotalRegistrations = row.Count
	}
	if err := cur.Err(); err != nil {
		return ManagerStats{}, err
	}

	return out, nil
}

// FetchAdminStats computes the global platform counts.
func FetchAdminStats(ctx context.Context, db *mongo.Database) (AdminStats, error) {
	var out AdminStats
	var err error

	if out.TotalUsers, err = db.Collection("users").CountDocuments(ctx, bson.M{}); err != nil {
		return AdminStats{}, err
	}
	if out.TotalEvents, err = db.Collection("events").CountDocuments(ctx, bson.M{}); err != nil {
		return AdminStats{}, err
	}
	if out.TotalRegistrations, err = db.Collection("registrations").CountDocuments(ctx, bson.M{}); err != nil {
		return AdminStats{}, err
	}
	if out.PendingEvents, err = db.Collection("events").CountDocuments(ctx, bson.M{
		"status": models.EventPending,
	}); err != nil {
		return AdminStats{}, err
	}

	return out, nil
}
