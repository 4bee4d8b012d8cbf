package dashboard

import (
	"github.com/volunteerhub/volunteerhub/internal/app/store/queries/activitymetrics"
	"github.com/volunteerhub/volunteerhub/internal/app/system/i18n"
)

// GrowthIndicator renders the short label summarizing the dominant activity
// signal, or "" when there was no activity in the window.
//
// This is a precedence chain, not a priority score: registrations always win
// when present, regardless of how they compare to posts in magnitude.
func GrowthIndicator(t *i18n.Translator, locale string, m activitymetrics.Metrics, windowDays int) string {
	if m.TotalActivity == 0 {
		return ""
	}

	tf := timeframe(t, locale, windowDays)
	switch {
	case m.NewRegistrations > 0:
		return t.T(locale, "growth_members", map[string]any{
			"Count": m.NewRegistrations, "Timeframe": tf,
		})
	case m.NewPosts > 0:
		return t.T(locale, "growth_posts", map[string]any{
			"Count": m.NewPosts, "Timeframe": tf,
		})
	default:
		return t.T(locale, "growth_activity", map[string]any{
			"Count": m.TotalActivity, "Timeframe": tf,
		})
	}
}

func timeframe(t *i18n.Translator, locale string, windowDays int) string {
	if windowDays == 1 {
		return t.T(locale, "timeframe_24h", nil)
	}
	return t.T(locale, "timeframe_days", map[string]any{"Days": windowDays})
}
