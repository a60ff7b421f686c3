package signals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroPulse/internal/domain/models"
)

func makePoints(n int) []models.ChartPoint {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	pts := make([]models.ChartPoint, n)
	for i := range pts {
		pts[i] = models.ChartPoint{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Value:     float64(i),
		}
	}
	return pts
}

func TestDownsampleLengthInvariant(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 10, 99, 100, 1000} {
		for _, maxPoints := range []int{2, 3, 10, 100, 500} {
			pts := makePoints(n)
			out := Downsample(pts, maxPoints)
			want := n
			if maxPoints < want {
				want = maxPoints
			}
			assert.Len(t, out, want, "n=%d maxPoints=%d", n, maxPoints)
		}
	}
}

func TestDownsamplePreservesEndpoints(t *testing.T) {
	pts := makePoints(1000)
	out := Downsample(pts, 50)
	require.Len(t, out, 50)
	assert.Equal(t, pts[0], out[0])
	assert.Equal(t, pts[999], out[49])
}

func TestDownsampleNoOpCases(t *testing.T) {
	pts := makePoints(10)

	// Already within budget: returned unchanged.
	out := Downsample(pts, 10)
	assert.Equal(t, pts, out)

	out = Downsample(pts, 100)
	assert.Equal(t, pts, out)

	// Degenerate configurations are no-ops, not errors.
	assert.Equal(t, pts, Downsample(pts, 1))
	assert.Equal(t, pts, Downsample(pts, 0))
	assert.Equal(t, pts, Downsample(pts, -5))
}

func TestDownsampleStrideIsMonotonic(t *testing.T) {
	pts := makePoints(777)
	out := Downsample(pts, 33)
	for i := 1; i < len(out); i++ {
		assert.False(t, out[i].Timestamp.Before(out[i-1].Timestamp))
	}
}

// bruteNearest is the linear-scan reference: minimum distance, ties toward
// the earlier point.
func bruteNearest(pts []models.ChartPoint, target time.Time) models.ChartPoint {
	best := pts[0]
	bestDist := absDuration(target.Sub(pts[0].Timestamp))
	for _, p := range pts[1:] {
		d := absDuration(target.Sub(p.Timestamp))
		if d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func TestNearestMatchesBruteForce(t *testing.T) {
	pts := makePoints(101)
	base := pts[0].Timestamp

	targets := []time.Time{
		base.Add(-24 * time.Hour),        // before first
		base,                             // exactly first
		base.Add(500 * time.Hour),        // far past last
		base.Add(17 * time.Hour),         // exact hit
		base.Add(17*time.Hour + 29*time.Minute),
		base.Add(17*time.Hour + 31*time.Minute),
		base.Add(17*time.Hour + 30*time.Minute), // exact midpoint: tie
	}

	for _, target := range targets {
		got, ok := Nearest(pts, target)
		require.True(t, ok)
		assert.Equal(t, bruteNearest(pts, target), got, "target=%v", target)
	}
}

func TestNearestTieBreaksEarlier(t *testing.T) {
	pts := makePoints(10)
	// Midpoint between index 3 and 4.
	target := pts[3].Timestamp.Add(30 * time.Minute)
	got, ok := Nearest(pts, target)
	require.True(t, ok)
	assert.Equal(t, pts[3], got)
}

func TestNearestEmpty(t *testing.T) {
	_, ok := Nearest(nil, time.Now())
	assert.False(t, ok)
}
