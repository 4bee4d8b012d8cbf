package dashboard

import (
	"testing"

	"github.com/volunteerhub/volunteerhub/internal/app/store/queries/activitymetrics"
	"github.com/volunteerhub/volunteerhub/internal/app/system/i18n"
	"go.uber.org/zap"
)

func newTestTranslator() *i18n.Translator {
	return i18n.NewTranslator(i18n.DefaultLocale, zap.NewNop())
}

func TestGrowthIndicatorRegistrationsWin(t *testing.T) {
	tr := newTestTranslator()
	m := activitymetrics.Metrics{
		NewRegistrations: 10,
		NewPosts:         3,
		NewComments:      2,
		TotalActivity:    15,
	}
	got := GrowthIndicator(tr, "vi", m, 7)
	want := "+10 thành viên / 7 ngày"
	if got != want {
		t.Fatalf("GrowthIndicator = %q, want %q", got, want)
	}
}

func TestGrowthIndicatorEnglish(t *testing.T) {
	tr := newTestTranslator()
	m := activitymetrics.Metrics{
		NewRegistrations: 10,
		TotalActivity:    10,
	}
	got := GrowthIndicator(tr, "en", m, 7)
	want := "+10 members / 7 days"
	if got != want {
		t.Fatalf("GrowthIndicator = %q, want %q", got, want)
	}
}

func TestGrowthIndicatorPostsFallback(t *testing.T) {
	tr := newTestTranslator()
	m := activitymetrics.Metrics{
		NewPosts:      4,
		NewComments:   9,
		NewLikes:      1,
		TotalActivity: 14,
	}
	got := GrowthIndicator(tr, "vi", m, 7)
	want := "+4 bài viết / 7 ngày"
	if got != want {
		t.Fatalf("GrowthIndicator = %q, want %q", got, want)
	}
}

func TestGrowthIndicatorGenericActivity(t *testing.T) {
	tr := newTestTranslator()
	m := activitymetrics.Metrics{
		NewComments:   3,
		NewLikes:      5,
		TotalActivity: 8,
	}
	got := GrowthIndicator(tr, "vi", m, 7)
	want := "+8 hoạt động / 7 ngày"
	if got != want {
		t.Fatalf("GrowthIndicator = %q, want %q", got, want)
	}
}

func TestGrowthIndicatorEmptyOnNoActivity(t *testing.T) {
	tr := newTestTranslator()
	if got := GrowthIndicator(tr, "vi", activitymetrics.Metrics{}, 7); got != "" {
		t.Fatalf("GrowthIndicator = %q, want empty", got)
	}
}

func TestGrowthIndicator24hTimeframe(t *testing.T) {
	tr := newTestTranslator()
	m := activitymetrics.Metrics{NewRegistrations: 2, TotalActivity: 2}

	got := GrowthIndicator(tr, "vi", m, 1)
	want := "+2 thành viên / 24h"
	if got != want {
		t.Fatalf("GrowthIndicator = %q, want %q", got, want)
	}

	got = GrowthIndicator(tr, "en", m, 1)
	want = "+2 members / 24h"
	if got != want {
		t.Fatalf("GrowthIndicator = %q, want %q", got, want)
	}
}
