package userstore

import (
	"errors"
	"testing"

	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"github.com/volunteerhub/volunteerhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreateNormalizesAndRejectsDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	u, err := store.Create(ctx, models.User{
		FullName:     "  Nguyễn Văn An  ",
		Email:        "  An@Example.COM ",
		PasswordHash: "hash",
		Role:         models.RoleVolunteer,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.FullName != "Nguyễn Văn An" {
		t.Errorf("fullName = %q, want trimmed", u.FullName)
	}
	if u.Email != "an@example.com" {
		t.Errorf("email = %q, want lowercased", u.Email)
	}

	_, err = store.Create(ctx, models.User{
		FullName:     "Other",
		Email:        "AN@example.com",
		PasswordHash: "hash",
		Role:         models.RoleVolunteer,
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("duplicate Create = %v, want ErrDuplicateEmail", err)
	}

	if _, err := store.Create(ctx, models.User{
		FullName: "Bad", Email: "bad@example.com", Role: "SUPERVISOR",
	}); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestGetByEmailCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	if _, err := store.Create(ctx, models.User{
		FullName: "A", Email: "a@example.com", PasswordHash: "h", Role: models.RoleVolunteer,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	u, err := store.GetByEmail(ctx, " A@Example.Com ")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u.Email != "a@example.com" {
		t.Errorf("email = %q", u.Email)
	}

	if _, err := store.GetByEmail(ctx, "missing@example.com"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("GetByEmail missing = %v, want ErrNoDocuments", err)
	}
}

func TestSummaries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	fx := testutil.NewFixtures(t, db)

	a := fx.CreateUser(ctx, "Alice Manager", "alice@test.com", models.RoleEventManager)
	fx.CreateUser(ctx, "Bob Manager", "bob@test.com", models.RoleEventManager)

	got, err := store.Summaries(ctx, []primitive.ObjectID{a.ID, primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Summaries: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d summaries, want 1 (missing ids absent)", len(got))
	}
	if got[a.ID].FullName != "Alice Manager" {
		t.Errorf("summary fullName = %q", got[a.ID].FullName)
	}

	empty, err := store.Summaries(ctx, nil)
	if err != nil {
		t.Fatalf("Summaries(nil): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Summaries(nil) = %v, want empty", empty)
	}
}
