package signals

import (
	"math"
	"sort"
	"time"

	"MacroPulse/internal/domain/models"
)

// Downsample reduces points to at most maxPoints using uniform stride
// sampling, always keeping the exact first and last input elements.
// Stride sampling is not envelope preserving: a single-sample spike between
// chosen indices disappears from the output. O(maxPoints) beyond the length
// check.
//
// maxPoints < 2 is a degenerate configuration and returns the input
// unchanged, as does any input already within budget.
func Downsample(points []models.ChartPoint, maxPoints int) []models.ChartPoint {
	n := len(points)
	if maxPoints < 2 || n <= maxPoints {
		return points
	}

	out := make([]models.ChartPoint, 0, maxPoints)
	out = append(out, points[0])

	step := float64(n-1) / float64(maxPoints-1)
	for i := 1; i < maxPoints-1; i++ {
		idx := int(math.Round(float64(i) * step))
		if idx > n-1 {
			idx = n - 1
		}
		out = append(out, points[idx])
	}

	return append(out, points[n-1])
}

// Nearest returns the point whose timestamp is closest to target, ties broken
// toward the earlier point. Binary search over the ascending precondition,
// O(log N). An empty slice yields ok=false; ordering is not re-verified here.
func Nearest(points []models.ChartPoint, target time.Time) (models.ChartPoint, bool) {
	if len(points) == 0 {
		return models.ChartPoint{}, false
	}

	// First index with timestamp >= target.
	i := sort.Search(len(points), func(j int) bool {
		return !points[j].Timestamp.Before(target)
	})

	if i == 0 {
		return points[0], true
	}
	if i == len(points) {
		return points[len(points)-1], true
	}

	prev, cur := points[i-1], points[i]
	if cur.Timestamp.Sub(target) < target.Sub(prev.Timestamp) {
		return cur, true
	}
	return prev, true
}

// SamplesToChartPoints converts a fetched history to chart points.
func SamplesToChartPoints(samples []models.IndicatorSample) []models.ChartPoint {
	pts := make([]models.ChartPoint, len(samples))
	for i, s := range samples {
		pts[i] = models.ChartPoint{Timestamp: s.Timestamp, Value: s.Value}
	}
	return pts
}
