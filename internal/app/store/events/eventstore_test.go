package eventstore

import (
	"errors"
	"testing"
	"time"

	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"github.com/volunteerhub/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestWhereForRole(t *testing.T) {
	adminFilter := WhereForRole(models.RoleAdmin)
	if len(adminFilter) != 0 {
		t.Errorf("admin filter = %v, want empty", adminFilter)
	}

	for _, role := range []string{models.RoleEventManager, models.RoleVolunteer, "UNKNOWN", ""} {
		f := WhereForRole(role)
		if f["status"] != models.EventApproved {
			t.Errorf("role %q filter = %v, want status=APPROVED", role, f)
		}
	}
}

func TestCreateForcesPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	now := time.Now().UTC()
	ev, err := store.Create(ctx, models.Event{
		Title:     "Beach Cleanup",
		Category:  models.CategoryEnvironment,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, 1),
		ManagerID: primitive.NewObjectID(),
		Status:    models.EventApproved, // must be ignored
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ev.Status != models.EventPending {
		t.Errorf("status = %q, want PENDING", ev.Status)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	now := time.Now().UTC()

	if _, err := store.Create(ctx, models.Event{
		Title: "x", Category: "PARTY", StartDate: now, EndDate: now,
	}); err == nil {
		t.Error("expected error for unknown category")
	}

	if _, err := store.Create(ctx, models.Event{
		Title: "x", Category: models.CategoryOther,
		StartDate: now, EndDate: now.AddDate(0, 0, -1),
	}); err == nil {
		t.Error("expected error for end date before start date")
	}
}

func TestSetStatusMonotonic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	fx := testutil.NewFixtures(t, db)
	mgr := primitive.NewObjectID()

	ev := fx.CreateEvent(ctx, "Pending Event", mgr, testutil.EventOpts{Status: models.EventPending})

	if err := store.SetStatus(ctx, ev.ID, models.EventApproved); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	// Approved events cannot be rejected afterwards.
	err := store.SetStatus(ctx, ev.ID, models.EventRejected)
	if !errors.Is(err, ErrNotPending) {
		t.Errorf("SetStatus on non-pending = %v, want ErrNotPending", err)
	}

	// Missing events are a different error.
	err = store.SetStatus(ctx, primitive.NewObjectID(), models.EventApproved)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("SetStatus on missing = %v, want ErrNoDocuments", err)
	}
}

func TestDashboardPools(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	fx := testutil.NewFixtures(t, db)
	mgr := primitive.NewObjectID()
	now := time.Now().UTC()

	recent := fx.CreateEvent(ctx, "Recent", mgr, testutil.EventOpts{
		CreatedAt: now.AddDate(0, 0, -2),
		StartDate: now.AddDate(0, 0, 10), EndDate: now.AddDate(0, 0, 11),
	})
	old := fx.CreateEvent(ctx, "Old", mgr, testutil.EventOpts{
		CreatedAt: now.AddDate(0, 0, -60),
		StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 1),
	})
	fx.CreateEvent(ctx, "Hidden", mgr, testutil.EventOpts{
		Status:    models.EventPending,
		CreatedAt: now,
	})

	base := WhereForRole(models.RoleVolunteer)

	newEvents, err := store.NewSince(ctx, base, now.AddDate(0, 0, -30), 20)
	if err != nil {
		t.Fatalf("NewSince: %v", err)
	}
	if len(newEvents) != 1 || newEvents[0].ID != recent.ID {
		t.Errorf("NewSince returned %d events, want only %q", len(newEvents), recent.Title)
	}

	active, err := store.ActiveAt(ctx, base, now, 20)
	if err != nil {
		t.Fatalf("ActiveAt: %v", err)
	}
	if len(active) != 1 || active[0].ID != old.ID {
		t.Errorf("ActiveAt returned %d events, want only %q", len(active), old.Title)
	}

	pool, err := store.TrendingPool(ctx, base, 50)
	if err != nil {
		t.Fatalf("TrendingPool: %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("TrendingPool returned %d events, want 2 (PENDING hidden)", len(pool))
	}
	// Newest first.
	if pool[0].ID != recent.ID {
		t.Errorf("TrendingPool[0] = %q, want %q", pool[0].Title, recent.Title)
	}
}

func TestListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	fx := testutil.NewFixtures(t, db)
	mine := primitive.NewObjectID()
	other := primitive.NewObjectID()

	fx.CreateEvent(ctx, "Mine Health", mine, testutil.EventOpts{Category: models.CategoryHealth})
	fx.CreateEvent(ctx, "Mine Other", mine, testutil.EventOpts{Category: models.CategoryOther})
	fx.CreateEvent(ctx, "Theirs", other, testutil.EventOpts{Category: models.CategoryHealth})

	evs, err := store.List(ctx, nil, ListFilter{ManagerID: mine, Category: models.CategoryHealth}, 0, 20)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(evs) != 1 || evs[0].Title != "Mine Health" {
		t.Errorf("List returned %d events, want only Mine Health", len(evs))
	}
}
