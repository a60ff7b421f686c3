package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/services/signals"
)

type stubCloses struct {
	closes []float64
	err    error
}

func (s *stubCloses) FetchCloses(context.Context, string, int) ([]float64, error) {
	return s.closes, s.err
}

func risingCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)
	}
	return out
}

func fallingCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1000 - float64(i)
	}
	return out
}

func TestGetTrendBullMarket(t *testing.T) {
	uc := NewTrendUseCase(&stubCloses{closes: risingCloses(365)}, signals.NewTrendSynthesizer())

	set, err := uc.GetTrend(context.Background(), "BTC")
	require.NoError(t, err)

	assert.Equal(t, "BTC", set.Symbol)
	assert.Equal(t, models.StrongUptrend, set.Daily.Direction)
	assert.Equal(t, models.StrongUptrend, set.Weekly.Direction)
	// Above 200 with no fresh golden cross synthesizes a plain uptrend.
	assert.Equal(t, models.Uptrend, set.Monthly.Direction)
	assert.Equal(t, models.TrendStrong, set.Monthly.Strength)
	assert.Equal(t, set.Daily.DaysInTrend*7, set.Weekly.DaysInTrend)
	assert.Equal(t, set.Daily.DaysInTrend*30, set.Monthly.DaysInTrend)
}

func TestGetTrendBearMarket(t *testing.T) {
	uc := NewTrendUseCase(&stubCloses{closes: fallingCloses(365)}, signals.NewTrendSynthesizer())

	set, err := uc.GetTrend(context.Background(), "BTC")
	require.NoError(t, err)

	assert.Equal(t, models.StrongDowntrend, set.Daily.Direction)
	assert.Equal(t, models.StrongDowntrend, set.Weekly.Direction)
	assert.Equal(t, models.Downtrend, set.Monthly.Direction)
	assert.False(t, set.Monthly.HigherHighs)
	assert.False(t, set.Monthly.HigherLows)
}

func TestGetTrendRequiresSymbol(t *testing.T) {
	uc := NewTrendUseCase(&stubCloses{}, signals.NewTrendSynthesizer())

	_, err := uc.GetTrend(context.Background(), "")
	require.Error(t, err)
}

func TestGetTrendPropagatesFetchFailure(t *testing.T) {
	uc := NewTrendUseCase(&stubCloses{err: fmt.Errorf("upstream down")}, signals.NewTrendSynthesizer())

	_, err := uc.GetTrend(context.Background(), "BTC")
	require.Error(t, err)
}
