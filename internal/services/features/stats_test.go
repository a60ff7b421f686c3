package features

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroPulse/internal/domain/models"
)

func history(values ...float64) []models.IndicatorSample {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.IndicatorSample, len(values))
	for i, v := range values {
		out[i] = models.IndicatorSample{Timestamp: base.AddDate(0, 0, i), Value: v}
	}
	return out
}

func TestComputeStat(t *testing.T) {
	c := NewComputer()
	stat, err := c.ComputeStat(context.Background(), models.IndicatorVIX, history(14, 16, 15, 17, 16, 15, 16))
	require.NoError(t, err)

	assert.Equal(t, models.IndicatorVIX, stat.Indicator)
	assert.Equal(t, 16.0, stat.CurrentValue)
	assert.InDelta(t, 15.571, stat.Mean, 0.001)
	assert.Greater(t, stat.StandardDeviation, 0.0)
	// Unremarkable reading: no rarity claim.
	assert.Nil(t, stat.Rarity)
}

func TestComputeStatRarityOnExtremes(t *testing.T) {
	c := NewComputer()
	// Flat history with one final spike pushes |z| past 2.
	vals := make([]float64, 0, 40)
	for i := 0; i < 39; i++ {
		vals = append(vals, 15+0.1*float64(i%3))
	}
	vals = append(vals, 25)

	stat, err := c.ComputeStat(context.Background(), models.IndicatorVIX, history(vals...))
	require.NoError(t, err)
	require.GreaterOrEqual(t, stat.ZScore, 2.0)
	require.NotNil(t, stat.Rarity)
	assert.Greater(t, *stat.Rarity, 1)
}

func TestComputeStatInsufficientHistory(t *testing.T) {
	c := NewComputer()
	_, err := c.ComputeStat(context.Background(), models.IndicatorM2, history(15))
	assert.Error(t, err)
}

func TestComputeStatZeroVariance(t *testing.T) {
	c := NewComputer()
	stat, err := c.ComputeStat(context.Background(), models.IndicatorDXY, history(100, 100, 100, 100))
	require.NoError(t, err)
	assert.Zero(t, stat.ZScore)
	assert.Nil(t, stat.Rarity)
}

func TestRarityFromZ(t *testing.T) {
	// ~1 in 22 at z=2, ~1 in 81 at z=2.5.
	assert.InDelta(t, 22, RarityFromZ(2.0), 1)
	assert.InDelta(t, 81, RarityFromZ(2.5), 2)
	assert.Equal(t, RarityFromZ(2.0), RarityFromZ(-2.0))
}

func TestMonthlyChangePercent(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	samples := []models.IndicatorSample{
		{Timestamp: base, Value: 100},
		{Timestamp: base.AddDate(0, 0, 15), Value: 104},
		{Timestamp: base.AddDate(0, 0, 31), Value: 102},
	}

	change, ok := MonthlyChangePercent(samples)
	require.True(t, ok)
	assert.InDelta(t, 2.0, change, 0.001)
}

func TestMonthlyChangePercentTooShort(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	samples := []models.IndicatorSample{
		{Timestamp: base, Value: 100},
		{Timestamp: base.AddDate(0, 0, 5), Value: 101},
	}
	_, ok := MonthlyChangePercent(samples)
	assert.False(t, ok)
}
