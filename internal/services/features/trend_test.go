package features

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"MacroPulse/internal/domain/models"
)

func linearCloses(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func TestDailyTrendRising(t *testing.T) {
	info := DailyTrend(linearCloses(100, 1.0, 365))

	assert.Equal(t, models.TimeframeDaily, info.Timeframe)
	assert.Equal(t, models.StrongUptrend, info.Direction)
	assert.Equal(t, models.TrendStrong, info.Strength)
	assert.True(t, info.HigherHighs)
	assert.True(t, info.HigherLows)
	assert.Greater(t, info.DaysInTrend, 300)
}

func TestDailyTrendFalling(t *testing.T) {
	info := DailyTrend(linearCloses(500, -1.0, 365))

	assert.Equal(t, models.StrongDowntrend, info.Direction)
	assert.Equal(t, models.TrendStrong, info.Strength)
	assert.False(t, info.HigherHighs)
	assert.False(t, info.HigherLows)
}

func TestDailyTrendShortHistory(t *testing.T) {
	info := DailyTrend(linearCloses(100, 0.1, 10))

	assert.Equal(t, models.Sideways, info.Direction)
	assert.Equal(t, models.TrendWeak, info.Strength)
	assert.Zero(t, info.DaysInTrend)
}

func TestSMAFlagsRising(t *testing.T) {
	flags := SMAFlagsFromCloses(linearCloses(100, 1.0, 365))

	assert.True(t, flags.Above21)
	assert.True(t, flags.Above50)
	assert.True(t, flags.Above200)
	// Trend has been up the whole series, so no recent cross.
	assert.False(t, flags.GoldenCross)
	assert.False(t, flags.DeathCross)
}

func TestSMAFlagsGoldenCross(t *testing.T) {
	// Long slow decline followed by a sharp 60-day recovery. The 50-day
	// average overtakes the 200-day inside the lookback window.
	closes := linearCloses(200, -0.3, 300)
	last := closes[len(closes)-1]
	for i := 1; i <= 60; i++ {
		closes = append(closes, last+2.0*float64(i))
	}

	flags := SMAFlagsFromCloses(closes)
	assert.True(t, flags.GoldenCross)
	assert.False(t, flags.DeathCross)
	assert.True(t, flags.Above200)
}

func TestSMAFlagsDeathCross(t *testing.T) {
	closes := linearCloses(50, 0.3, 300)
	last := closes[len(closes)-1]
	for i := 1; i <= 60; i++ {
		closes = append(closes, last-2.0*float64(i))
	}

	flags := SMAFlagsFromCloses(closes)
	assert.True(t, flags.DeathCross)
	assert.False(t, flags.GoldenCross)
	assert.False(t, flags.Above200)
}

func TestSMAFlagsShortSeries(t *testing.T) {
	flags := SMAFlagsFromCloses(linearCloses(100, 0.5, 30))

	assert.True(t, flags.Above21)
	assert.False(t, flags.Above50)
	assert.False(t, flags.Above200)
}
