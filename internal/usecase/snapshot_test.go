package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/services/features"
	"MacroPulse/internal/services/signals"
	"MacroPulse/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func newSnapshotUC(t *testing.T, source *stubSource) *SnapshotUseCase {
	t.Helper()
	return NewSnapshotUseCase(
		source,
		features.NewComputer(),
		signals.NewZScoreClassifier(nil),
		signals.NewRegimeClassifier(signals.DefaultRegimeThresholds()),
		nil,
		stubMetrics{},
		nil,
		testLogger(t),
		365,
	)
}

func bullishSource() *stubSource {
	src := newStubSource()
	src.history[models.IndicatorVIX] = dailySeries(13, 60, 13)   // level < 15
	src.history[models.IndicatorDXY] = dailySeries(101, 60, 100) // ~ -1% monthly
	src.history[models.IndicatorM2] = dailySeries(100, 60, 102)  // ~ +2% monthly
	return src
}

func TestSnapshotAllBullish(t *testing.T) {
	uc := newSnapshotUC(t, bullishSource())

	snap, err := uc.GetSnapshot(context.Background(), GetSnapshotParams{})
	require.NoError(t, err)

	assert.Equal(t, models.RegimeRiskOn, snap.Regime)
	require.NotNil(t, snap.VIX)
	require.NotNil(t, snap.DXY)
	require.NotNil(t, snap.M2)
	assert.Nil(t, snap.Errors)
	assert.Equal(t, models.IndicatorVIX, snap.VIX.Stat.Indicator)
	assert.NotEmpty(t, snap.VIX.Correlation)
}

func TestSnapshotDegradesPerIndicator(t *testing.T) {
	src := bullishSource()
	src.fail[models.IndicatorM2] = true
	uc := newSnapshotUC(t, src)

	snap, err := uc.GetSnapshot(context.Background(), GetSnapshotParams{})
	require.NoError(t, err)

	// 2-of-3 still classifies; the failed indicator lands in Errors.
	assert.Equal(t, models.RegimeRiskOn, snap.Regime)
	assert.Nil(t, snap.M2)
	require.Contains(t, snap.Errors, "m2")
}

func TestSnapshotInsufficientData(t *testing.T) {
	src := bullishSource()
	src.fail[models.IndicatorDXY] = true
	src.fail[models.IndicatorM2] = true
	uc := newSnapshotUC(t, src)

	snap, err := uc.GetSnapshot(context.Background(), GetSnapshotParams{})
	require.NoError(t, err)

	assert.Equal(t, models.RegimeNoData, snap.Regime)
	assert.Len(t, snap.Errors, 2)
}

func TestSnapshotMixedVotes(t *testing.T) {
	src := bullishSource()
	src.history[models.IndicatorVIX] = dailySeries(30, 60, 30) // level > 25: bearish
	uc := newSnapshotUC(t, src)

	snap, err := uc.GetSnapshot(context.Background(), GetSnapshotParams{})
	require.NoError(t, err)

	assert.Equal(t, models.RegimeMixed, snap.Regime)
}
