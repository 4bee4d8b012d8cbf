package dashboard

import (
	"context"
	"sort"
	"time"

	eventstore "github.com/volunteerhub/volunteerhub/internal/app/store/events"
	"github.com/volunteerhub/volunteerhub/internal/app/store/queries/activitymetrics"
	"github.com/volunteerhub/volunteerhub/internal/app/system/i18n"
	"github.com/volunteerhub/volunteerhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Assembler builds the full dashboard payload for one request. It holds no
// per-request state and is safe for concurrent use.
type Assembler struct {
	src        Source
	translator *i18n.Translator
	now        func() time.Time
	log        *zap.Logger
}

func NewAssembler(src Source, tr *i18n.Translator, log *zap.Logger) *Assembler {
	return &Assembler{src: src, translator: tr, now: time.Now, log: log}
}

// WithClock replaces the time source. Used by tests to pin "now".
func (a *Assembler) WithClock(now func() time.Time) *Assembler {
	a.now = now
	return a
}

// Assemble computes the three event sections plus the role stats block.
// Everything is derived from a single captured timestamp, so the new/active/
// trending windows of one response never disagree about when "now" is. Any
// query failure fails the whole request; there are no partial dashboards.
func (a *Assembler) Assemble(ctx context.Context, userID primitive.ObjectID, role, locale string) (*Response, error) {
	now := a.now().UTC()
	base := eventstore.WhereForRole(role)

	var (
		newEvents, activeEvents, pool []models.Event
		stats                         any
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		newEvents, err = a.src.NewEvents(gctx, base, now.AddDate(0, 0, -newPoolDays), poolFetchLimit)
		return err
	})
	g.Go(func() error {
		var err error
		activeEvents, err = a.src.ActiveEvents(gctx, base, now, poolFetchLimit)
		return err
	})
	g.Go(func() error {
		var err error
		pool, err = a.src.TrendingPool(gctx, base, trendingPoolSize)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = a.fetchStats(gctx, userID, role, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	poolIDs := eventIDs(pool)
	metrics, err := a.src.MetricsBatch(ctx, poolIDs, now, activitymetrics.DefaultWindowDays)
	if err != nil {
		return nil, err
	}

	trending := rankTrending(pool, metrics)

	ann, err := a.loadAnnotations(ctx, userID, role, newEvents, activeEvents, trending)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		NewEvents:      a.buildSection(newEvents, nil, ann, userID, role, locale),
		ActiveEvents:   a.buildSection(activeEvents, nil, ann, userID, role, locale),
		TrendingEvents: a.buildSection(trending, metrics, ann, userID, role, locale),
		UserStats:      stats,
	}
	return resp, nil
}

// rankTrending drops zero-score events, sorts the rest by score descending
// (ties keep pool order, which is newest first), and keeps the top slice.
func rankTrending(pool []models.Event, metrics map[primitive.ObjectID]activitymetrics.Metrics) []models.Event {
	ranked := make([]models.Event, 0, len(pool))
	for _, ev := range pool {
		if Score(metrics[ev.ID]) > 0 {
			ranked = append(ranked, ev)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(metrics[ranked[i].ID]) > Score(metrics[ranked[j].ID])
	})
	if len(ranked) > trendingTopN {
		ranked = ranked[:trendingTopN]
	}
	return ranked
}

// annotations carries the batched per-event lookups shared by all sections.
type annotations struct {
	regCounts map[primitive.ObjectID]int64
	postCnts  map[primitive.ObjectID]int64
	managers  map[primitive.ObjectID]models.ManagerSummary
	myRegs    map[primitive.ObjectID]primitive.ObjectID
}

func (a *Assembler) loadAnnotations(ctx context.Context, userID primitive.ObjectID, role string, sections ...[]models.Event) (*annotations, error) {
	idSet := map[primitive.ObjectID]struct{}{}
	mgrSet := map[primitive.ObjectID]struct{}{}
	for _, sec := range sections {
		for _, ev := range sec {
			idSet[ev.ID] = struct{}{}
			mgrSet[ev.ManagerID] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	mgrIDs := make([]primitive.ObjectID, 0, len(mgrSet))
	for id := range mgrSet {
		mgrIDs = append(mgrIDs, id)
	}

	ann := &annotations{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ann.regCounts, err = a.src.ApprovedRegistrationCounts(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		ann.postCnts, err = a.src.PostCounts(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		ann.managers, err = a.src.ManagerSummaries(gctx, mgrIDs)
		return err
	})
	if role == models.RoleVolunteer {
		g.Go(func() error {
			var err error
			ann.myRegs, err = a.src.MyApprovedRegistrations(gctx, userID, ids)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ann, nil
}

// buildSection turns events into cards, applies role prioritization, and
// truncates to the section size. metrics is non-nil only for trending.
func (a *Assembler) buildSection(evs []models.Event, metrics map[primitive.ObjectID]activitymetrics.Metrics, ann *annotations, userID primitive.ObjectID, role, locale string) []EventCard {
	cards := make([]EventCard, 0, len(evs))
	for _, ev := range evs {
		card := EventCard{
			Event:   ev,
			Manager: ann.managers[ev.ManagerID],
		}
		card.Count.Registrations = ann.regCounts[ev.ID]
		card.Count.Posts = ann.postCnts[ev.ID]

		if regID, ok := ann.myRegs[ev.ID]; ok {
			id := regID
			card.MyRegistrationID = &id
		}
		if metrics != nil {
			m := metrics[ev.ID]
			card.TrendingScore = Score(m)
			card.GrowthIndicator = GrowthIndicator(a.translator, locale, m, activitymetrics.DefaultWindowDays)
			card.RecentMetrics = &m
		}
		cards = append(cards, card)
	}

	cards = Prioritize(cards, userID, role)
	if len(cards) > sectionSize {
		cards = cards[:sectionSize]
	}
	return cards
}

func (a *Assembler) fetchStats(ctx context.Context, userID primitive.ObjectID, role string, now time.Time) (any, error) {
	switch role {
	case models.RoleVolunteer:
		return a.src.VolunteerStats(ctx, userID, now)
	case models.RoleEventManager:
		return a.src.ManagerStats(ctx, userID)
	case models.RoleAdmin:
		return a.src.AdminStats(ctx)
	default:
		a.log.Warn("dashboard stats skipped for unknown role", zap.String("role", role))
		return nil, nil
	}
}

func eventIDs(evs []models.Event) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, len(evs))
	for i, ev := range evs {
		ids[i] = ev.ID
	}
	return ids
}
