package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data. All writes go
// straight to collections so tests can stage states the stores would refuse
// to produce (for example an already-APPROVED event).
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		Email:        email,
		PasswordHash: "$2a$10$fixture.not.a.real.hash.000000000000000000000000000000",
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// EventOpts tweaks CreateEvent. Zero values fall back to a generic
// APPROVED event created now, running from yesterday to tomorrow.
type EventOpts struct {
	Status    string
	Category  string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	Capacity  *int
}

// CreateEvent inserts an event owned by managerID.
func (f *Fixtures) CreateEvent(ctx context.Context, title string, managerID primitive.ObjectID, opts EventOpts) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	if opts.Status == "" {
		opts.Status = models.EventApproved
	}
	if opts.Category == "" {
		opts.Category = models.CategoryCommunity
	}
	if opts.StartDate.IsZero() {
		opts.StartDate = now.AddDate(0, 0, -1)
	}
	if opts.EndDate.IsZero() {
		opts.EndDate = now.AddDate(0, 0, 1)
	}
	if opts.CreatedAt.IsZero() {
		opts.CreatedAt = now
	}

	ev := models.Event{
		ID:        primitive.NewObjectID(),
		Title:     title,
		TitleCI:   text.Fold(title),
		Location:  "Community Center",
		StartDate: opts.StartDate,
		EndDate:   opts.EndDate,
		Category:  opts.Category,
		Status:    opts.Status,
		ManagerID: managerID,
		Capacity:  opts.Capacity,
		CreatedAt: opts.CreatedAt,
		UpdatedAt: opts.CreatedAt,
	}
	if _, err := f.db.Collection("events").InsertOne(ctx, ev); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return ev
}

// CreateRegistration inserts a registration with the given status and
// creation time.
func (f *Fixtures) CreateRegistration(ctx context.Context, userID, eventID primitive.ObjectID, status string, createdAt time.Time) models.Registration {
	f.t.Helper()

	reg := models.Registration{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		EventID:   eventID,
		Status:    status,
		CreatedAt: createdAt,
	}
	if status == models.RegistrationCompleted {
		done := createdAt
		reg.CompletedAt = &done
	}
	if _, err := f.db.Collection("registrations").InsertOne(ctx, reg); err != nil {
		f.t.Fatalf("failed to create test registration: %v", err)
	}
	return reg
}

// CreatePost inserts a post under an event.
func (f *Fixtures) CreatePost(ctx context.Context, eventID, authorID primitive.ObjectID, createdAt time.Time) models.Post {
	f.t.Helper()

	post := models.Post{
		ID:        primitive.NewObjectID(),
		EventID:   eventID,
		AuthorID:  authorID,
		Content:   "fixture post",
		CreatedAt: createdAt,
	}
	if _, err := f.db.Collection("posts").InsertOne(ctx, post); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

// CreateComment inserts a comment under a post.
func (f *Fixtures) CreateComment(ctx context.Context, postID, authorID primitive.ObjectID, createdAt time.Time) models.Comment {
	f.t.Helper()

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   "fixture comment",
		CreatedAt: createdAt,
	}
	if _, err := f.db.Collection("comments").InsertOne(ctx, comment); err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}
	return comment
}

// CreateLike inserts a like on a post.
func (f *Fixtures) CreateLike(ctx context.Context, postID, userID primitive.ObjectID, createdAt time.Time) models.Like {
	f.t.Helper()

	like := models.Like{
		ID:        primitive.NewObjectID(),
		PostID:    postID,
		UserID:    userID,
		CreatedAt: createdAt,
	}
	if _, err := f.db.Collection("likes").InsertOne(ctx, like); err != nil {
		f.t.Fatalf("failed to create test like: %v", err)
	}
	return like
}
