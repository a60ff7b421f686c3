package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroPulse/internal/domain/models"
)

func seedStore(t *testing.T, store *memHistoryStore, indicator models.IndicatorType, n int) []models.IndicatorSample {
	t.Helper()
	samples := dailySeries(20, n)
	require.NoError(t, store.StoreBatch(context.Background(), indicator, samples))
	return samples
}

func TestGetChartDownsamples(t *testing.T) {
	store := newMemHistoryStore()
	samples := seedStore(t, store, models.IndicatorVIX, 100)
	uc := NewChartUseCase(store, nil, 300)

	res, err := uc.GetChart(context.Background(), GetChartParams{
		Indicator: models.IndicatorVIX,
		Days:      120,
		MaxPoints: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, res.Count)
	require.Len(t, res.Points, 10)
	assert.True(t, res.Points[0].Timestamp.Equal(samples[0].Timestamp))
	assert.True(t, res.Points[9].Timestamp.Equal(samples[len(samples)-1].Timestamp))
}

func TestGetChartRejectsUnknownIndicator(t *testing.T) {
	uc := NewChartUseCase(newMemHistoryStore(), nil, 300)

	_, err := uc.GetChart(context.Background(), GetChartParams{Indicator: "gold"})
	require.Error(t, err)
}

func TestGetChartFallsBackToSource(t *testing.T) {
	store := newMemHistoryStore()
	store.failQ = true
	src := newStubSource()
	src.history[models.IndicatorVIX] = dailySeries(20, 50)
	uc := NewChartUseCase(store, src, 300)

	res, err := uc.GetChart(context.Background(), GetChartParams{
		Indicator: models.IndicatorVIX,
		Days:      60,
		MaxPoints: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, res.Count)
}

func TestGetNearestFindsScrubPoint(t *testing.T) {
	store := newMemHistoryStore()
	samples := seedStore(t, store, models.IndicatorDXY, 30)
	uc := NewChartUseCase(store, nil, 300)

	// Target slightly after the 10th sample, well before the 11th.
	target := samples[10].Timestamp.Add(2 * time.Hour)
	res, err := uc.GetNearest(context.Background(), NearestParams{
		Indicator: models.IndicatorDXY,
		Days:      60,
		Target:    target,
	})
	require.NoError(t, err)
	assert.True(t, res.Point.Timestamp.Equal(samples[10].Timestamp))
}

func TestGetNearestEmptyStore(t *testing.T) {
	uc := NewChartUseCase(newMemHistoryStore(), nil, 300)

	_, err := uc.GetNearest(context.Background(), NearestParams{
		Indicator: models.IndicatorM2,
		Days:      60,
		Target:    time.Now(),
	})
	require.Error(t, err)
}
