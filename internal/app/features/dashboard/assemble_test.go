package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/volunteerhub/volunteerhub/internal/app/store/queries/activitymetrics"
	"github.com/volunteerhub/volunteerhub/internal/app/store/queries/statqueries"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeSource serves canned data and records the query arguments it saw.
type fakeSource struct {
	newEvents    []models.Event
	activeEvents []models.Event
	pool         []models.Event
	metrics      map[primitive.ObjectID]activitymetrics.Metrics
	myRegs       map[primitive.ObjectID]primitive.ObjectID
	volStats     statqueries.VolunteerStats

	failMetrics bool

	gotSince      time.Time
	gotActiveNow  time.Time
	gotMetricsNow time.Time
	gotWindowDays int
	gotBase       bson.M
}

func (f *fakeSource) NewEvents(_ context.Context, base bson.M, since time.Time, _ int64) ([]models.Event, error) {
	f.gotBase = base
	f.gotSince = since
	return f.newEvents, nil
}

func (f *fakeSource) ActiveEvents(_ context.Context, _ bson.M, now time.Time, _ int64) ([]models.Event, error) {
	f.gotActiveNow = now
	return f.activeEvents, nil
}

func (f *fakeSource) TrendingPool(_ context.Context, _ bson.M, _ int64) ([]models.Event, error) {
	return f.pool, nil
}

func (f *fakeSource) MetricsBatch(_ context.Context, eventIDs []primitive.ObjectID, now time.Time, windowDays int) (map[primitive.ObjectID]activitymetrics.Metrics, error) {
	if f.failMetrics {
		return nil, errors.New("aggregation failed")
	}
	f.gotMetricsNow = now
	f.gotWindowDays = windowDays
	out := make(map[primitive.ObjectID]activitymetrics.Metrics, len(eventIDs))
	for _, id := range eventIDs {
		out[id] = f.metrics[id]
	}
	return out, nil
}

func (f *fakeSource) ApprovedRegistrationCounts(_ context.Context, _ []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	return map[primitive.ObjectID]int64{}, nil
}

func (f *fakeSource) PostCounts(_ context.Context, _ []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	return map[primitive.ObjectID]int64{}, nil
}

func (f *fakeSource) ManagerSummaries(_ context.Context, _ []primitive.ObjectID) (map[primitive.ObjectID]models.ManagerSummary, error) {
	return map[primitive.ObjectID]models.ManagerSummary{}, nil
}

func (f *fakeSource) MyApprovedRegistrations(_ context.Context, _ primitive.ObjectID, _ []primitive.ObjectID) (map[primitive.ObjectID]primitive.ObjectID, error) {
	return f.myRegs, nil
}

func (f *fakeSource) VolunteerStats(_ context.Context, _ primitive.ObjectID, _ time.Time) (statqueries.VolunteerStats, error) {
	return f.volStats, nil
}

func (f *fakeSource) ManagerStats(_ context.Context, _ primitive.ObjectID) (statqueries.ManagerStats, error) {
	return statqueries.ManagerStats{}, nil
}

func (f *fakeSource) AdminStats(_ context.Context) (statqueries.AdminStats, error) {
	return statqueries.AdminStats{}, nil
}

func fixedClock() (time.Time, func() time.Time) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	return now, func() time.Time { return now }
}

func newTestAssembler(src Source) (*Assembler, time.Time) {
	now, clock := fixedClock()
	a := NewAssembler(src, newTestTranslator(), zap.NewNop()).WithClock(clock)
	return a, now
}

func poolEvent(title string) models.Event {
	return models.Event{ID: primitive.NewObjectID(), Title: title}
}

func TestAssembleTrendingDropsZeroScoresAndSortsDescending(t *testing.T) {
	a := poolEvent("A")
	b := poolEvent("B")
	c := poolEvent("C")

	src := &fakeSource{
		pool: []models.Event{a, b, c},
		metrics: map[primitive.ObjectID]activitymetrics.Metrics{
			a.ID: {NewRegistrations: 1, TotalActivity: 1}, // score 3
			b.ID: {},                                      // score 0, dropped
			c.ID: {NewPosts: 5, TotalActivity: 5},         // score 10
		},
	}
	asm, _ := newTestAssembler(src)

	resp, err := asm.Assemble(context.Background(), primitive.NewObjectID(), models.RoleAdmin, "vi")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	got := titles(resp.TrendingEvents)
	want := []string{"C", "A"}
	if len(got) != len(want) {
		t.Fatalf("trending = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("trending = %v, want %v", got, want)
		}
	}
	if resp.TrendingEvents[0].TrendingScore != 10 {
		t.Fatalf("top score = %v, want 10", resp.TrendingEvents[0].TrendingScore)
	}
}

func TestAssembleTruncatesSections(t *testing.T) {
	var pool []models.Event
	metrics := map[primitive.ObjectID]activitymetrics.Metrics{}
	for i := 0; i < 12; i++ {
		ev := poolEvent(string(rune('a' + i)))
		pool = append(pool, ev)
		metrics[ev.ID] = activitymetrics.Metrics{NewLikes: int64(i + 1), TotalActivity: int64(i + 1)}
	}

	src := &fakeSource{newEvents: pool, activeEvents: pool, pool: pool, metrics: metrics}
	asm, _ := newTestAssembler(src)

	resp, err := asm.Assemble(context.Background(), primitive.NewObjectID(), models.RoleAdmin, "vi")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	for name, sec := range map[string][]EventCard{
		"newEvents":      resp.NewEvents,
		"activeEvents":   resp.ActiveEvents,
		"trendingEvents": resp.TrendingEvents,
	} {
		if len(sec) != sectionSize {
			t.Fatalf("%s has %d cards, want %d", name, len(sec), sectionSize)
		}
	}
}

func TestAssembleFailsFast(t *testing.T) {
	a := poolEvent("A")
	src := &fakeSource{pool: []models.Event{a}, failMetrics: true}
	asm, _ := newTestAssembler(src)

	resp, err := asm.Assemble(context.Background(), primitive.NewObjectID(), models.RoleAdmin, "vi")
	if err == nil {
		t.Fatal("expected error when metrics query fails")
	}
	if resp != nil {
		t.Fatal("expected nil response on failure, no partial dashboards")
	}
}

func TestAssembleUsesSingleCapturedNow(t *testing.T) {
	ev := poolEvent("A")
	src := &fakeSource{
		newEvents: []models.Event{ev},
		pool:      []models.Event{ev},
		metrics: map[primitive.ObjectID]activitymetrics.Metrics{
			ev.ID: {NewLikes: 1, TotalActivity: 1},
		},
	}
	asm, now := newTestAssembler(src)

	if _, err := asm.Assemble(context.Background(), primitive.NewObjectID(), models.RoleAdmin, "vi"); err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if !src.gotSince.Equal(now.AddDate(0, 0, -newPoolDays)) {
		t.Fatalf("new-events since = %v, want %v", src.gotSince, now.AddDate(0, 0, -newPoolDays))
	}
	if !src.gotActiveNow.Equal(now) {
		t.Fatalf("active-events now = %v, want %v", src.gotActiveNow, now)
	}
	if !src.gotMetricsNow.Equal(now) {
		t.Fatalf("metrics now = %v, want %v", src.gotMetricsNow, now)
	}
	if src.gotWindowDays != activitymetrics.DefaultWindowDays {
		t.Fatalf("window days = %d, want %d", src.gotWindowDays, activitymetrics.DefaultWindowDays)
	}
}

func TestAssembleVolunteerGetsRegistrationIDsAndStats(t *testing.T) {
	ev := poolEvent("A")
	regID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	src := &fakeSource{
		newEvents: []models.Event{ev},
		myRegs:    map[primitive.ObjectID]primitive.ObjectID{ev.ID: regID},
		volStats:  statqueries.VolunteerStats{CompletedEvents: 3, TotalHours: 12},
	}
	asm, _ := newTestAssembler(src)

	resp, err := asm.Assemble(context.Background(), userID, models.RoleVolunteer, "vi")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if len(resp.NewEvents) != 1 {
		t.Fatalf("newEvents = %d cards, want 1", len(resp.NewEvents))
	}
	card := resp.NewEvents[0]
	if card.MyRegistrationID == nil || *card.MyRegistrationID != regID {
		t.Fatalf("myRegistrationId = %v, want %v", card.MyRegistrationID, regID)
	}

	stats, ok := resp.UserStats.(statqueries.VolunteerStats)
	if !ok {
		t.Fatalf("userStats is %T, want VolunteerStats", resp.UserStats)
	}
	if stats.TotalHours != 12 {
		t.Fatalf("totalHours = %d, want 12", stats.TotalHours)
	}
}

func TestAssembleUnknownRoleHasNilStats(t *testing.T) {
	src := &fakeSource{}
	asm, _ := newTestAssembler(src)

	resp, err := asm.Assemble(context.Background(), primitive.NewObjectID(), "MODERATOR", "vi")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if resp.UserStats != nil {
		t.Fatalf("userStats = %v, want nil for unknown role", resp.UserStats)
	}
}

func TestAssembleNonAdminBaseFilter(t *testing.T) {
	src := &fakeSource{}
	asm, _ := newTestAssembler(src)

	if _, err := asm.Assemble(context.Background(), primitive.NewObjectID(), models.RoleVolunteer, "vi"); err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if src.gotBase["status"] != models.EventApproved {
		t.Fatalf("base filter = %v, want status=APPROVED", src.gotBase)
	}
}

func TestAssembleTrendingCardsCarryAnnotations(t *testing.T) {
	ev := poolEvent("A")
	src := &fakeSource{
		pool: []models.Event{ev},
		metrics: map[primitive.ObjectID]activitymetrics.Metrics{
			ev.ID: {NewRegistrations: 10, TotalActivity: 10},
		},
	}
	asm, _ := newTestAssembler(src)

	resp, err := asm.Assemble(context.Background(), primitive.NewObjectID(), models.RoleAdmin, "vi")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	card := resp.TrendingEvents[0]
	if card.TrendingScore != 30 {
		t.Fatalf("trendingScore = %v, want 30", card.TrendingScore)
	}
	if card.GrowthIndicator != "+10 thành viên / 7 ngày" {
		t.Fatalf("growthIndicator = %q", card.GrowthIndicator)
	}
	if card.RecentMetrics == nil || card.RecentMetrics.NewRegistrations != 10 {
		t.Fatalf("recentMetrics = %+v", card.RecentMetrics)
	}

	// Non-trending sections carry no trending annotations.
	if len(resp.NewEvents) != 0 {
		t.Fatalf("newEvents = %d cards, want 0", len(resp.NewEvents))
	}
}
