package dashboard

import (
	"github.com/volunteerhub/volunteerhub/internal/app/store/queries/activitymetrics"
)

// Scoring weights. Fixed by product decision, not configurable at runtime:
// a registration is worth three likes, a post two, a comment one and a half.
const (
	weightRegistrations = 3
	weightPosts         = 2
	weightComments      = 1.5
	weightLikes         = 1
)

// Score maps window metrics to the trending scalar. Linear and separable;
// zero metrics yield zero score. There is deliberately no normalization by
// event age, capacity, or audience size.
func Score(m activitymetrics.Metrics) float64 {
	return float64(m.NewRegistrations)*weightRegistrations +
		float64(m.NewPosts)*weightPosts +
		float64(m.NewComments)*weightComments +
		float64(m.NewLikes)*weightLikes
}
