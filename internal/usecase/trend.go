package usecase

import (
	"context"
	"fmt"

	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/services/features"
	"MacroPulse/internal/services/signals"
)

// CloseFetcher supplies a symbol's daily closing prices, ascending by time.
type CloseFetcher interface {
	FetchCloses(ctx context.Context, symbol string, days int) ([]float64, error)
}

// TrendUseCase derives the three displayed trend timeframes from one daily
// fetch: daily direction and SMA flags are computed from closes, weekly and
// monthly are synthesized from the daily view.
type TrendUseCase struct {
	closes CloseFetcher
	synth  *signals.TrendSynthesizer
	days   int
}

func NewTrendUseCase(closes CloseFetcher, synth *signals.TrendSynthesizer) *TrendUseCase {
	return &TrendUseCase{closes: closes, synth: synth, days: 365}
}

func (uc *TrendUseCase) GetTrend(ctx context.Context, symbol string) (*models.TrendSet, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}

	closes, err := uc.closes.FetchCloses(ctx, symbol, uc.days)
	if err != nil {
		return nil, fmt.Errorf("trend closes: %w", err)
	}
	if len(closes) == 0 {
		return nil, fmt.Errorf("no close data for %s", symbol)
	}

	daily := features.DailyTrend(closes)
	flags := features.SMAFlagsFromCloses(closes)

	set := uc.synth.Derive(symbol, daily, flags)
	return &set, nil
}
