package activitymetrics

import (
	"testing"
	"time"

	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"github.com/volunteerhub/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestComputeBatchCountsPerEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	now := time.Now().UTC()
	inWindow := now.AddDate(0, 0, -2)
	outOfWindow := now.AddDate(0, 0, -10)

	mgr := primitive.NewObjectID()
	evA := fx.CreateEvent(ctx, "A", mgr, testutil.EventOpts{})
	evB := fx.CreateEvent(ctx, "B", mgr, testutil.EventOpts{})

	// Event A: 2 approved registrations in window, 1 pending (ignored),
	// 1 approved outside the window (ignored).
	fx.CreateRegistration(ctx, primitive.NewObjectID(), evA.ID, models.RegistrationApproved, inWindow)
	fx.CreateRegistration(ctx, primitive.NewObjectID(), evA.ID, models.RegistrationApproved, inWindow)
	fx.CreateRegistration(ctx, primitive.NewObjectID(), evA.ID, models.RegistrationPending, inWindow)
	fx.CreateRegistration(ctx, primitive.NewObjectID(), evA.ID, models.RegistrationApproved, outOfWindow)

	// Event A: 1 post in window carrying 2 comments and 1 like in window,
	// plus 1 stale comment.
	post := fx.CreatePost(ctx, evA.ID, mgr, inWindow)
	fx.CreateComment(ctx, post.ID, primitive.NewObjectID(), inWindow)
	fx.CreateComment(ctx, post.ID, primitive.NewObjectID(), inWindow)
	fx.CreateComment(ctx, post.ID, primitive.NewObjectID(), outOfWindow)
	fx.CreateLike(ctx, post.ID, primitive.NewObjectID(), inWindow)

	collector := New(db)
	batch, err := collector.ComputeBatch(ctx, []primitive.ObjectID{evA.ID, evB.ID}, now, DefaultWindowDays)
	if err != nil {
		t.Fatalf("ComputeBatch: %v", err)
	}

	a := batch[evA.ID]
	want := Metrics{NewRegistrations: 2, NewPosts: 1, NewComments: 2, NewLikes: 1, TotalActivity: 6}
	if a != want {
		t.Errorf("event A metrics = %+v, want %+v", a, want)
	}

	// Event B had no activity but must still be present, zero-filled.
	b, ok := batch[evB.ID]
	if !ok {
		t.Fatal("event B missing from batch result")
	}
	if b != (Metrics{}) {
		t.Errorf("event B metrics = %+v, want zero", b)
	}
}

func TestComputeMatchesBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	now := time.Now().UTC()
	mgr := primitive.NewObjectID()
	ev := fx.CreateEvent(ctx, "A", mgr, testutil.EventOpts{})
	fx.CreateRegistration(ctx, primitive.NewObjectID(), ev.ID, models.RegistrationApproved, now.AddDate(0, 0, -1))

	collector := New(db)
	single, err := collector.Compute(ctx, ev.ID, now, DefaultWindowDays)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	batch, err := collector.ComputeBatch(ctx, []primitive.ObjectID{ev.ID}, now, DefaultWindowDays)
	if err != nil {
		t.Fatalf("ComputeBatch: %v", err)
	}
	if single != batch[ev.ID] {
		t.Errorf("Compute = %+v, ComputeBatch = %+v; want equal", single, batch[ev.ID])
	}
}

func TestComputeBatchEmptyInput(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	collector := New(db)
	batch, err := collector.ComputeBatch(ctx, nil, time.Now().UTC(), DefaultWindowDays)
	if err != nil {
		t.Fatalf("ComputeBatch: %v", err)
	}
	if len(batch) != 0 {
		t.Errorf("batch = %v, want empty map", batch)
	}
}
