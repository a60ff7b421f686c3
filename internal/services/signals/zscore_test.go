package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"MacroPulse/internal/domain/models"
)

func statWithZ(ind models.IndicatorType, z float64, rarity *int) models.IndicatorStat {
	return models.IndicatorStat{
		Indicator:         ind,
		CurrentValue:      20,
		Mean:              18,
		StandardDeviation: 2,
		ZScore:            z,
		Rarity:            rarity,
	}
}

func intPtr(n int) *int { return &n }

func TestZScoreTiers(t *testing.T) {
	c := NewZScoreClassifier(nil)

	assert.Equal(t, models.SignificanceExtreme, c.Classify(statWithZ(models.IndicatorVIX, 2.6, nil)).Level)
	assert.Equal(t, models.SignificanceSignificant, c.Classify(statWithZ(models.IndicatorVIX, 2.1, nil)).Level)
	assert.Equal(t, models.SignificanceNormal, c.Classify(statWithZ(models.IndicatorVIX, 1.0, nil)).Level)

	// Sign does not matter for the tier.
	assert.Equal(t, models.SignificanceExtreme, c.Classify(statWithZ(models.IndicatorDXY, -3.0, nil)).Level)
	assert.Equal(t, models.SignificanceSignificant, c.Classify(statWithZ(models.IndicatorM2, -2.2, nil)).Level)
}

func TestZScoreRaritySuppressedBelowSignificant(t *testing.T) {
	c := NewZScoreClassifier(nil)

	// Stat carries a rarity claim but the reading is sub-threshold.
	r := c.Classify(statWithZ(models.IndicatorVIX, 1.0, intPtr(40)))
	assert.Nil(t, r.Stat.Rarity)

	r = c.Classify(statWithZ(models.IndicatorVIX, 2.3, intPtr(40)))
	assert.NotNil(t, r.Stat.Rarity)
	assert.Equal(t, 40, *r.Stat.Rarity)
}

func TestZScorePerIndicatorOverride(t *testing.T) {
	c := NewZScoreClassifier(map[models.IndicatorType]ZScoreThresholds{
		models.IndicatorM2: {Significant: 2.0, Extreme: 3.0},
	})

	// 2.6 is extreme for VIX (default 2.5) but only significant for M2.
	assert.Equal(t, models.SignificanceExtreme, c.Classify(statWithZ(models.IndicatorVIX, 2.6, nil)).Level)
	assert.Equal(t, models.SignificanceSignificant, c.Classify(statWithZ(models.IndicatorM2, 2.6, nil)).Level)
}

func TestZScoreInterpretation(t *testing.T) {
	c := NewZScoreClassifier(nil)

	// High positive VIX is a bearish risk signal.
	r := c.Classify(statWithZ(models.IndicatorVIX, 2.2, nil))
	assert.Contains(t, r.Interpretation, "bearish")

	// High positive M2 is bullish with a lag.
	r = c.Classify(statWithZ(models.IndicatorM2, 2.2, nil))
	assert.Contains(t, r.Interpretation, "bullish")

	// Normal readings carry no interpretation.
	r = c.Classify(statWithZ(models.IndicatorVIX, 0.4, nil))
	assert.Empty(t, r.Interpretation)
}
