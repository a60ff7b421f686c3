package usecase

import (
	"context"
	"fmt"
	"time"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	"MacroPulse/internal/services/signals"
	"MacroPulse/pkg/util"
)

// ChartUseCase serves downsampled chart series and nearest-point scrub
// lookups over the stored indicator history.
type ChartUseCase struct {
	store            domrepo.HistoryStore
	source           domrepo.HistorySource
	defaultMaxPoints int
}

func NewChartUseCase(store domrepo.HistoryStore, source domrepo.HistorySource, defaultMaxPoints int) *ChartUseCase {
	if defaultMaxPoints <= 0 {
		defaultMaxPoints = 300
	}
	return &ChartUseCase{store: store, source: source, defaultMaxPoints: defaultMaxPoints}
}

type GetChartParams struct {
	Indicator models.IndicatorType
	Days      int
	MaxPoints int
}

type GetChartResult struct {
	Indicator models.IndicatorType `json:"indicator"`
	From      time.Time            `json:"from"`
	To        time.Time            `json:"to"`
	Count     int                  `json:"count"`
	Points    []models.ChartPoint  `json:"points"`
}

func (uc *ChartUseCase) GetChart(ctx context.Context, p GetChartParams) (*GetChartResult, error) {
	if !p.Indicator.IsValid() {
		return nil, fmt.Errorf("unknown indicator %q", p.Indicator)
	}
	if p.Days <= 0 {
		p.Days = 365
	}
	if p.MaxPoints <= 0 {
		p.MaxPoints = uc.defaultMaxPoints
	}

	to := time.Now()
	from, to := util.AlignDayRange(to.AddDate(0, 0, -p.Days), to)

	points, err := uc.series(ctx, p.Indicator, from, to, p.Days)
	if err != nil {
		return nil, err
	}

	points = signals.Downsample(points, p.MaxPoints)
	return &GetChartResult{
		Indicator: p.Indicator,
		From:      from,
		To:        to,
		Count:     len(points),
		Points:    points,
	}, nil
}

type NearestParams struct {
	Indicator models.IndicatorType
	Days      int
	Target    time.Time
}

type NearestResult struct {
	Indicator models.IndicatorType `json:"indicator"`
	Point     models.ChartPoint    `json:"point"`
}

// GetNearest finds the stored point closest in time to the target. Ties
// resolve toward the earlier point.
func (uc *ChartUseCase) GetNearest(ctx context.Context, p NearestParams) (*NearestResult, error) {
	if !p.Indicator.IsValid() {
		return nil, fmt.Errorf("unknown indicator %q", p.Indicator)
	}
	if p.Days <= 0 {
		p.Days = 365
	}

	to := time.Now()
	from, to := util.AlignDayRange(to.AddDate(0, 0, -p.Days), to)

	points, err := uc.series(ctx, p.Indicator, from, to, p.Days)
	if err != nil {
		return nil, err
	}

	point, ok := signals.Nearest(points, p.Target)
	if !ok {
		return nil, fmt.Errorf("no data for %s", p.Indicator)
	}
	return &NearestResult{Indicator: p.Indicator, Point: point}, nil
}

// series reads from the durable store, falling back to the upstream source
// when the store has nothing for the window.
func (uc *ChartUseCase) series(ctx context.Context, indicator models.IndicatorType, from, to time.Time, days int) ([]models.ChartPoint, error) {
	samples, err := uc.store.Query(ctx, indicator, from, to, 0)
	if err != nil || len(samples) == 0 {
		if uc.source == nil {
			if err != nil {
				return nil, fmt.Errorf("query %s history: %w", indicator, err)
			}
			return nil, nil
		}
		samples, err = uc.source.FetchHistory(ctx, indicator, days)
		if err != nil {
			return nil, fmt.Errorf("fetch %s history: %w", indicator, err)
		}
	}
	return signals.SamplesToChartPoints(samples), nil
}
