package service

import (
	"context"

	"MacroPulse/internal/domain/models"
)

// StatComputer produces the distribution statistics for an indicator history.
type StatComputer interface {
	ComputeStat(ctx context.Context, indicator models.IndicatorType, history []models.IndicatorSample) (models.IndicatorStat, error)
}

// RiskScorer queries the external fair-value regression model for a symbol.
type RiskScorer interface {
	Score(ctx context.Context, symbol string) (models.RiskScore, error)
}
