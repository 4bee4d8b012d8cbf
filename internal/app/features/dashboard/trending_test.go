package dashboard

import (
	"math"
	"testing"

	"github.com/volunteerhub/volunteerhub/internal/app/store/queries/activitymetrics"
)

func TestScoreWeightedSum(t *testing.T) {
	m := activitymetrics.Metrics{
		NewRegistrations: 10,
		NewPosts:         5,
		NewComments:      8,
		NewLikes:         15,
	}
	got := Score(m)
	want := 10*3 + 5*2 + 8*1.5 + 15*1.0 // 67
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Score = %v, want %v", got, want)
	}
}

func TestScoreZeroMetrics(t *testing.T) {
	if got := Score(activitymetrics.Metrics{}); got != 0 {
		t.Fatalf("Score of zero metrics = %v, want 0", got)
	}
}

func TestScoreLinearPerMetric(t *testing.T) {
	cases := []struct {
		name string
		m    activitymetrics.Metrics
		want float64
	}{
		{"registrations", activitymetrics.Metrics{NewRegistrations: 4}, 12},
		{"posts", activitymetrics.Metrics{NewPosts: 4}, 8},
		{"comments", activitymetrics.Metrics{NewComments: 4}, 6},
		{"likes", activitymetrics.Metrics{NewLikes: 4}, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.m); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("Score = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScorePositiveWhenAnyActivity(t *testing.T) {
	m := activitymetrics.Metrics{NewLikes: 1}
	if got := Score(m); got <= 0 {
		t.Fatalf("Score = %v, want > 0", got)
	}
}
