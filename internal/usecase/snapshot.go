package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	domsvc "MacroPulse/internal/domain/service"
	"MacroPulse/internal/services/features"
	"MacroPulse/internal/services/signals"
	"MacroPulse/pkg/cache"
	"MacroPulse/pkg/logger"
)

const snapshotCacheKey = "snapshot:macro"

// Per-indicator correlation copy shown alongside each reading. Externally
// supplied belief, not computed here.
var indicatorCorrelation = map[models.IndicatorType]models.CorrelationStrength{
	models.IndicatorVIX: models.CorrelationStrong,
	models.IndicatorDXY: models.CorrelationVeryStrong,
	models.IndicatorM2:  models.CorrelationStrong,
}

// SnapshotUseCase builds the merged macro snapshot: per-indicator readings
// fetched in parallel, merged, and handed to the regime classifier. Partial
// failures degrade per indicator; classification proceeds with 2-of-3 data.
type SnapshotUseCase struct {
	source   domrepo.HistorySource
	stats    domsvc.StatComputer
	zscore   *signals.ZScoreClassifier
	regime   *signals.RegimeClassifier
	risk     domsvc.RiskScorer
	metrics  domrepo.Metrics
	cache    cache.Service
	log      *logger.Logger
	days     int
	cacheTTL time.Duration
	timeout  time.Duration
}

func NewSnapshotUseCase(
	source domrepo.HistorySource,
	stats domsvc.StatComputer,
	zscore *signals.ZScoreClassifier,
	regime *signals.RegimeClassifier,
	risk domsvc.RiskScorer,
	metrics domrepo.Metrics,
	cacheSvc cache.Service,
	log *logger.Logger,
	days int,
) *SnapshotUseCase {
	if days <= 0 {
		days = 365
	}
	return &SnapshotUseCase{
		source:   source,
		stats:    stats,
		zscore:   zscore,
		regime:   regime,
		risk:     risk,
		metrics:  metrics,
		cache:    cacheSvc,
		log:      log,
		days:     days,
		cacheTTL: 30 * time.Second,
		timeout:  10 * time.Second,
	}
}

type GetSnapshotParams struct {
	Days   int
	Symbol string
}

func (uc *SnapshotUseCase) GetSnapshot(ctx context.Context, p GetSnapshotParams) (*models.MacroSnapshot, error) {
	if p.Days <= 0 {
		p.Days = uc.days
	}
	if p.Symbol == "" {
		p.Symbol = "BTC"
	}

	if uc.cache != nil {
		var cached models.MacroSnapshot
		if err := uc.cache.Get(ctx, snapshotCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	snap := &models.MacroSnapshot{
		Timestamp: time.Now(),
		Errors:    map[string]string{},
	}

	type item struct {
		name    string
		reading *models.IndicatorReading
		input   *float64
		risk    *models.RiskScore
		err     error
	}
	ch := make(chan item, len(models.AllIndicators)+1)
	var wg sync.WaitGroup

	for _, ind := range models.AllIndicators {
		ind := ind
		wg.Add(1)
		go func() {
			defer wg.Done()
			reading, input, err := uc.readIndicator(ctx, ind, p.Days)
			ch <- item{name: string(ind), reading: reading, input: input, err: err}
		}()
	}
	if uc.risk != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			score, err := uc.risk.Score(ctx, p.Symbol)
			ch <- item{name: "risk", risk: &score, err: err}
		}()
	}

	go func() { wg.Wait(); close(ch) }()

	inputs := models.RegimeInputs{}
	for it := range ch {
		if it.err != nil {
			snap.Errors[it.name] = it.err.Error()
			continue
		}
		switch it.name {
		case string(models.IndicatorVIX):
			snap.VIX = it.reading
			inputs.VIXLevel = it.input
		case string(models.IndicatorDXY):
			snap.DXY = it.reading
			inputs.DXYChange = it.input
		case string(models.IndicatorM2):
			snap.M2 = it.reading
			inputs.M2Change = it.input
		case "risk":
			snap.Risk = it.risk
		}
	}

	snap.Regime = uc.regime.Classify(inputs)
	uc.metrics.RecordRegime(string(snap.Regime))

	if len(snap.Errors) == 0 {
		snap.Errors = nil
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, snapshotCacheKey, snap, uc.cacheTTL); err != nil {
			uc.log.Warn("snapshot cache set failed", logger.Error(err))
		}
	}
	return snap, nil
}

// readIndicator fetches one indicator's history and produces its classified
// reading plus the value the regime classifier consumes: the current level
// for VIX, the monthly percent change for DXY and M2.
func (uc *SnapshotUseCase) readIndicator(ctx context.Context, ind models.IndicatorType, days int) (*models.IndicatorReading, *float64, error) {
	history, err := uc.source.FetchHistory(ctx, ind, days)
	if err != nil {
		uc.metrics.RecordError("snapshot_fetch")
		return nil, nil, fmt.Errorf("fetch %s: %w", ind, err)
	}

	stat, err := uc.stats.ComputeStat(ctx, ind, history)
	if err != nil {
		uc.metrics.RecordError("snapshot_stat")
		return nil, nil, fmt.Errorf("stat %s: %w", ind, err)
	}

	reading := uc.zscore.Classify(stat)
	reading.Correlation = indicatorCorrelation[ind].String()
	uc.metrics.RecordIndicatorValue(string(ind), stat.CurrentValue)

	var input *float64
	switch ind {
	case models.IndicatorVIX:
		v := stat.CurrentValue
		input = &v
	default:
		if change, ok := features.MonthlyChangePercent(history); ok {
			input = &change
		}
	}
	return &reading, input, nil
}
