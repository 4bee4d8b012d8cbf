package dashboard

import (
	"testing"

	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func cardWithManager(id string, managerID primitive.ObjectID) EventCard {
	var c EventCard
	c.Title = id
	c.ManagerID = managerID
	return c
}

func titles(cards []EventCard) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Title
	}
	return out
}

func TestPrioritizeManagerOwnEventsFirst(t *testing.T) {
	me := primitive.NewObjectID()
	other := primitive.NewObjectID()

	cards := []EventCard{
		cardWithManager("1", me),
		cardWithManager("2", other),
		cardWithManager("3", me),
	}

	got := Prioritize(cards, me, models.RoleEventManager)
	want := []string{"1", "3", "2"}
	for i := range want {
		if got[i].Title != want[i] {
			t.Fatalf("order = %v, want %v", titles(got), want)
		}
	}
}

func TestPrioritizeVolunteerRegisteredFirst(t *testing.T) {
	me := primitive.NewObjectID()
	regID := primitive.NewObjectID()

	var a, b, c EventCard
	a.Title = "a"
	b.Title = "b"
	b.MyRegistrationID = &regID
	c.Title = "c"

	got := Prioritize([]EventCard{a, b, c}, me, models.RoleVolunteer)
	want := []string{"b", "a", "c"}
	for i := range want {
		if got[i].Title != want[i] {
			t.Fatalf("order = %v, want %v", titles(got), want)
		}
	}
}

func TestPrioritizeIsPermutation(t *testing.T) {
	me := primitive.NewObjectID()
	cards := []EventCard{
		cardWithManager("x", me),
		cardWithManager("y", primitive.NewObjectID()),
		cardWithManager("z", me),
	}

	got := Prioritize(cards, me, models.RoleEventManager)
	if len(got) != len(cards) {
		t.Fatalf("len = %d, want %d", len(got), len(cards))
	}
	seen := map[string]bool{}
	for _, c := range got {
		seen[c.Title] = true
	}
	for _, c := range cards {
		if !seen[c.Title] {
			t.Fatalf("card %q lost during prioritization", c.Title)
		}
	}
}

func TestPrioritizeIdempotent(t *testing.T) {
	me := primitive.NewObjectID()
	cards := []EventCard{
		cardWithManager("1", primitive.NewObjectID()),
		cardWithManager("2", me),
		cardWithManager("3", me),
	}

	once := Prioritize(cards, me, models.RoleEventManager)
	twice := Prioritize(once, me, models.RoleEventManager)
	for i := range once {
		if once[i].Title != twice[i].Title {
			t.Fatalf("second pass reordered: %v vs %v", titles(once), titles(twice))
		}
	}
}

func TestPrioritizeIdentityForAdminAndUnknown(t *testing.T) {
	me := primitive.NewObjectID()
	cards := []EventCard{
		cardWithManager("1", me),
		cardWithManager("2", primitive.NewObjectID()),
	}

	for _, role := range []string{models.RoleAdmin, "MODERATOR", ""} {
		got := Prioritize(cards, me, role)
		for i := range cards {
			if got[i].Title != cards[i].Title {
				t.Fatalf("role %q: order changed to %v", role, titles(got))
			}
		}
	}
}
